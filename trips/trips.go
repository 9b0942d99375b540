// trips.go
package trips

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"trippal/db"
	"trippal/models"
	"trippal/rdx"
	"trippal/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// GET /api/trips
func GetTrips(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	trips, err := utils.FindAndDecode[models.Trip](ctx, db.TripsCollection, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching trips")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, trips)
}

// POST /api/trips
func CreateTrip(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var trip models.Trip
	if err := json.NewDecoder(r.Body).Decode(&trip); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if trip.Title == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Title is required")
		return
	}

	trip.TripID = "trip-" + utils.GetUUID()
	trip.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	// every trip starts with one day; the board may never go below one
	firstDay := models.Day{
		DayID:       "day-" + utils.GetUUID(),
		TripID:      trip.TripID,
		Title:       "Day 1",
		Date:        trip.StartDate,
		ActivityIDs: []string{},
	}
	trip.DayOrder = []string{firstDay.DayID}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.TripsCollection.InsertOne(ctx, trip); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error inserting trip")
		return
	}
	if _, err := db.DaysCollection.InsertOne(ctx, firstDay); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error inserting first day")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, trip)
}

// GET /api/trips/:tripid
func GetTrip(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tripID := ps.ByName("tripid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var trip models.Trip
	if err := db.TripsCollection.FindOne(ctx, bson.M{"tripid": tripID}).Decode(&trip); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Trip not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, trip)
}

// PUT /api/trips/:tripid
func UpdateTrip(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tripID := ps.ByName("tripid")

	var updated models.Trip
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// day_order is owned by the board endpoints and never replaced here
	update := bson.M{"$set": bson.M{
		"title":      updated.Title,
		"location":   updated.Location,
		"start_date": updated.StartDate,
		"end_date":   updated.EndDate,
		"type":       updated.Type,
		"time_zone":  updated.TimeZone,
	}}

	res, err := db.TripsCollection.UpdateOne(ctx, bson.M{"tripid": tripID}, update)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating trip")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Trip not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Trip updated successfully"})
}

// DELETE /api/trips/:tripid
func DeleteTrip(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tripID := ps.ByName("tripid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.TripsCollection.DeleteOne(ctx, bson.M{"tripid": tripID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error deleting trip")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Trip not found")
		return
	}

	// cascade: a trip's days and activities go with it
	if _, err := db.DaysCollection.DeleteMany(ctx, bson.M{"tripid": tripID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error deleting trip days")
		return
	}
	if _, err := db.ActivitiesCollection.DeleteMany(ctx, bson.M{"tripid": tripID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error deleting trip activities")
		return
	}
	rdx.InvalidateBoard(tripID)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Trip deleted successfully"})
}

// GET /api/trips/search
func SearchTrips(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	filter := bson.M{}
	if start := query.Get("startDate"); start != "" {
		filter["start_date"] = start
	}
	if location := query.Get("location"); location != "" {
		filter["location"] = location
	}
	if tripType := query.Get("type"); tripType != "" {
		filter["type"] = tripType
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	trips, err := utils.FindAndDecode[models.Trip](ctx, db.TripsCollection, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching trips")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, trips)
}
