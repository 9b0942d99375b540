package trips

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"trippal/db"
	"trippal/models"
	"trippal/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// DayBudget is the spend recorded against one day's activities, broken
// down by currency.
type DayBudget struct {
	DayID  string             `json:"dayId"`
	Title  string             `json:"title"`
	Totals map[string]float64 `json:"totals"`
}

// BudgetSummary aggregates every expense attached to a trip's
// activities.
type BudgetSummary struct {
	TripID string             `json:"tripId"`
	Budget float64            `json:"budget"`
	Totals map[string]float64 `json:"totals"`
	Days   []DayBudget        `json:"days"`
}

// Summarize folds activity expenses into per-day and overall totals per
// currency, following the trip's day order.
func Summarize(trip models.Trip, days map[string]models.Day, activities []models.Activity) BudgetSummary {
	summary := BudgetSummary{
		TripID: trip.TripID,
		Budget: trip.Budget,
		Totals: map[string]float64{},
		Days:   []DayBudget{},
	}

	byDay := map[string]map[string]float64{}
	for _, act := range activities {
		for _, exp := range act.Expenses {
			if byDay[act.DayID] == nil {
				byDay[act.DayID] = map[string]float64{}
			}
			byDay[act.DayID][exp.Currency] += exp.Amount
			summary.Totals[exp.Currency] += exp.Amount
		}
	}

	for _, dayID := range trip.DayOrder {
		day, ok := days[dayID]
		if !ok {
			continue
		}
		totals := byDay[dayID]
		if totals == nil {
			totals = map[string]float64{}
		}
		summary.Days = append(summary.Days, DayBudget{DayID: dayID, Title: day.Title, Totals: totals})
	}
	return summary
}

// GET /api/trips/:tripid/budget
func GetBudget(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tripID := ps.ByName("tripid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var trip models.Trip
	if err := db.TripsCollection.FindOne(ctx, bson.M{"tripid": tripID}).Decode(&trip); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Trip not found")
		return
	}

	dayDocs, err := utils.FindAndDecode[models.Day](ctx, db.DaysCollection, bson.M{"tripid": tripID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching days")
		return
	}
	activities, err := utils.FindAndDecode[models.Activity](ctx, db.ActivitiesCollection, bson.M{"tripid": tripID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching activities")
		return
	}

	days := make(map[string]models.Day, len(dayDocs))
	for _, d := range dayDocs {
		days[d.DayID] = d
	}

	utils.RespondWithJSON(w, http.StatusOK, Summarize(trip, days, activities))
}

// PATCH /api/trips/:tripid/budget
func UpdateBudget(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tripID := ps.ByName("tripid")

	var req struct {
		Budget float64 `json:"budget"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Budget < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid budget")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.TripsCollection.UpdateOne(ctx,
		bson.M{"tripid": tripID},
		bson.M{"$set": bson.M{"budget": req.Budget}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating budget")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Trip not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"tripId": tripID, "budget": req.Budget})
}
