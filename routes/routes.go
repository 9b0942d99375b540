package routes

import (
	"net/http"

	"trippal/activities"
	"trippal/days"
	"trippal/export"
	"trippal/itinerary"
	"trippal/live"
	"trippal/ratelim"
	"trippal/trips"

	"github.com/julienschmidt/httprouter"
)

func AddTripRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/trips", trips.GetTrips)
	router.POST("/api/trips", rl.Limit(trips.CreateTrip))
	router.GET("/api/trips/:tripid", trips.GetTrip)
	router.PUT("/api/trips/:tripid", trips.UpdateTrip)
	router.DELETE("/api/trips/:tripid", rl.Limit(trips.DeleteTrip))
	router.GET("/api/trips/:tripid/budget", trips.GetBudget)
	router.PATCH("/api/trips/:tripid/budget", trips.UpdateBudget)
	router.GET("/api/search/trips", trips.SearchTrips)
}

// Board routes carry every ordering mutation; the raw day/activity CRUD
// below never touches ordering.
func AddItineraryRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/trips/:tripid/board", itinerary.GetBoard)
	router.POST("/api/trips/:tripid/board/days", rl.Limit(itinerary.AddDay))
	router.DELETE("/api/trips/:tripid/board/days/:dayid", rl.Limit(itinerary.RemoveDay))
	router.PUT("/api/trips/:tripid/board/days/:dayid/title", rl.Limit(itinerary.RenameDay))
	router.POST("/api/trips/:tripid/board/reorder", rl.Limit(itinerary.ReorderDays))
	router.POST("/api/trips/:tripid/board/days/:dayid/activities", rl.Limit(itinerary.AddActivity))
	router.POST("/api/trips/:tripid/board/days/:dayid/reorder", rl.Limit(itinerary.ReorderActivities))
	router.POST("/api/trips/:tripid/board/activities/:activityid/move", rl.Limit(itinerary.MoveActivity))
	router.DELETE("/api/trips/:tripid/board/activities/:activityid", rl.Limit(itinerary.RemoveActivity))
}

func AddDayRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/days", days.GetDays)
	router.GET("/api/days/:dayid", days.GetDay)
	router.POST("/api/days", rl.Limit(days.CreateDay))
	router.PUT("/api/days/:dayid", rl.Limit(days.UpdateDay))
	router.DELETE("/api/days/:dayid", rl.Limit(days.DeleteDay))
}

func AddActivityRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/activities", activities.GetActivities)
	router.GET("/api/activities/:activityid", activities.GetActivity)
	router.POST("/api/activities", rl.Limit(activities.CreateActivity))
	router.PUT("/api/activities/:activityid", rl.Limit(activities.UpdateActivity))
	router.DELETE("/api/activities/:activityid", rl.Limit(activities.DeleteActivity))

	router.POST("/api/activities/:activityid/expenses", rl.Limit(activities.AddExpense))
	router.DELETE("/api/activities/:activityid/expenses/:expenseid", rl.Limit(activities.DeleteExpense))
	router.POST("/api/activities/:activityid/reminders", rl.Limit(activities.AddReminder))
	router.PUT("/api/activities/:activityid/reminders/:reminderid", rl.Limit(activities.UpdateReminder))
	router.DELETE("/api/activities/:activityid/reminders/:reminderid", rl.Limit(activities.DeleteReminder))
	router.POST("/api/activities/:activityid/attachments", rl.Limit(activities.UploadAttachment))
	router.DELETE("/api/activities/:activityid/attachments/:attachmentid", rl.Limit(activities.DeleteAttachment))
}

func AddExportRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/trips/:tripid/export/pdf", rl.Limit(export.TripPDF))
}

func AddLiveRoutes(router *httprouter.Router, hub *live.Hub) {
	router.GET("/ws/board/:tripid", live.BoardFeedHandler(hub))
}

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/attachments/*filepath", http.Dir("static/attachments"))
}
