// activities.go
package activities

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"time"

	"trippal/db"
	"trippal/models"
	"trippal/rdx"
	"trippal/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// GET /api/activities?tripId=
func GetActivities(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := bson.M{}
	if tripID := r.URL.Query().Get("tripId"); tripID != "" {
		filter["tripid"] = tripID
	}
	if dayID := r.URL.Query().Get("dayId"); dayID != "" {
		filter["dayid"] = dayID
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	activities, err := utils.FindAndDecode[models.Activity](ctx, db.ActivitiesCollection, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching activities")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, activities)
}

// GET /api/activities/:activityid
func GetActivity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	activityID := ps.ByName("activityid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var act models.Activity
	if err := db.ActivitiesCollection.FindOne(ctx, bson.M{"activityid": activityID}).Decode(&act); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Activity not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, act)
}

// POST /api/activities
func CreateActivity(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var act models.Activity
	if err := json.NewDecoder(r.Body).Decode(&act); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if act.TripID == "" || act.DayID == "" || act.Content == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "tripId, dayId and content are required")
		return
	}
	if !models.ValidActivityType(act.Type) {
		act.Type = models.ActivityOther
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var day models.Day
	if err := db.DaysCollection.FindOne(ctx, bson.M{"dayid": act.DayID}).Decode(&day); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Day not found")
		return
	}

	act.ActivityID = "activity-" + utils.GetUUID()

	if _, err := db.ActivitiesCollection.InsertOne(ctx, act); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error inserting activity")
		return
	}
	// ownership lives in the day's ordered list
	newIDs := append(slices.Clone(day.ActivityIDs), act.ActivityID)
	if _, err := db.DaysCollection.UpdateOne(ctx,
		bson.M{"dayid": act.DayID},
		bson.M{"$set": bson.M{"activity_ids": newIDs}}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating day")
		return
	}
	rdx.InvalidateBoard(act.TripID)

	utils.RespondWithJSON(w, http.StatusCreated, act)
}

// PUT /api/activities/:activityid
func UpdateActivity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	activityID := ps.ByName("activityid")

	var updated models.Activity
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !models.ValidActivityType(updated.Type) {
		updated.Type = models.ActivityOther
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var act models.Activity
	if err := db.ActivitiesCollection.FindOne(ctx, bson.M{"activityid": activityID}).Decode(&act); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Activity not found")
		return
	}

	// ownership (dayid) only changes through the board's move endpoint
	update := bson.M{"$set": bson.M{
		"content":  updated.Content,
		"time":     updated.Time,
		"type":     updated.Type,
		"location": updated.Location,
		"notes":    updated.Notes,
	}}
	if _, err := db.ActivitiesCollection.UpdateOne(ctx, bson.M{"activityid": activityID}, update); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating activity")
		return
	}
	rdx.InvalidateBoard(act.TripID)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Activity updated successfully"})
}

// DELETE /api/activities/:activityid
func DeleteActivity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	activityID := ps.ByName("activityid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var act models.Activity
	if err := db.ActivitiesCollection.FindOne(ctx, bson.M{"activityid": activityID}).Decode(&act); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Activity not found")
		return
	}

	if _, err := db.ActivitiesCollection.DeleteOne(ctx, bson.M{"activityid": activityID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error deleting activity")
		return
	}
	if _, err := db.DaysCollection.UpdateOne(ctx,
		bson.M{"dayid": act.DayID},
		bson.M{"$pull": bson.M{"activity_ids": activityID}}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating day")
		return
	}
	rdx.InvalidateBoard(act.TripID)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Activity deleted successfully"})
}
