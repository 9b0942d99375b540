// days.go
package days

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"time"

	"trippal/db"
	"trippal/itinerary"
	"trippal/models"
	"trippal/rdx"
	"trippal/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// GET /api/days?tripId=
func GetDays(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := bson.M{}
	if tripID := r.URL.Query().Get("tripId"); tripID != "" {
		filter["tripid"] = tripID
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	days, err := utils.FindAndDecode[models.Day](ctx, db.DaysCollection, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching days")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, days)
}

// GET /api/days/:dayid
func GetDay(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	dayID := ps.ByName("dayid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var day models.Day
	if err := db.DaysCollection.FindOne(ctx, bson.M{"dayid": dayID}).Decode(&day); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Day not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, day)
}

// POST /api/days
func CreateDay(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var day models.Day
	if err := json.NewDecoder(r.Body).Decode(&day); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if day.TripID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "tripId is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var trip models.Trip
	if err := db.TripsCollection.FindOne(ctx, bson.M{"tripid": day.TripID}).Decode(&trip); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Trip not found")
		return
	}

	day.DayID = "day-" + utils.GetUUID()
	day.ActivityIDs = []string{}

	if _, err := db.DaysCollection.InsertOne(ctx, day); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error inserting day")
		return
	}
	newOrder := append(slices.Clone(trip.DayOrder), day.DayID)
	if _, err := db.TripsCollection.UpdateOne(ctx,
		bson.M{"tripid": day.TripID},
		bson.M{"$set": bson.M{"day_order": newOrder}}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating day order")
		return
	}
	rdx.InvalidateBoard(day.TripID)

	utils.RespondWithJSON(w, http.StatusCreated, day)
}

// PUT /api/days/:dayid
func UpdateDay(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	dayID := ps.ByName("dayid")

	var updated models.Day
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// activity_ids is owned by the board endpoints; raw updates may not
	// touch ordering
	update := bson.M{"$set": bson.M{
		"title": updated.Title,
		"date":  updated.Date,
	}}

	var day models.Day
	if err := db.DaysCollection.FindOne(ctx, bson.M{"dayid": dayID}).Decode(&day); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Day not found")
		return
	}
	if _, err := db.DaysCollection.UpdateOne(ctx, bson.M{"dayid": dayID}, update); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating day")
		return
	}
	rdx.InvalidateBoard(day.TripID)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Day updated successfully"})
}

// DELETE /api/days/:dayid
func DeleteDay(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	dayID := ps.ByName("dayid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var day models.Day
	if err := db.DaysCollection.FindOne(ctx, bson.M{"dayid": dayID}).Decode(&day); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Day not found")
		return
	}

	var trip models.Trip
	if err := db.TripsCollection.FindOne(ctx, bson.M{"tripid": day.TripID}).Decode(&trip); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Trip not found")
		return
	}
	if len(trip.DayOrder) <= 1 {
		utils.RespondWithError(w, http.StatusConflict, "Cannot remove the last day of a trip")
		return
	}

	newOrder := slices.DeleteFunc(slices.Clone(trip.DayOrder), func(id string) bool {
		return id == dayID
	})
	if err := itinerary.DeleteDayCascade(ctx, day.TripID, dayID, newOrder); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error deleting day")
		return
	}
	rdx.InvalidateBoard(day.TripID)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Day deleted successfully"})
}
