// details.go - expenses and reminders attached to an activity
package activities

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

func detailContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), 5*time.Second)
}

func findActivity(ctx context.Context, activityID string) (models.Activity, bool) {
	var act models.Activity
	err := db.ActivitiesCollection.FindOne(ctx, bson.M{"activityid": activityID}).Decode(&act)
	return act, err == nil
}

// POST /api/activities/:activityid/expenses
func AddExpense(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	activityID := ps.ByName("activityid")

	var exp models.Expense
	if err := json.NewDecoder(r.Body).Decode(&exp); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if exp.Amount <= 0 || exp.Currency == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Amount and currency are required")
		return
	}

	ctx, cancel := detailContext(r)
	defer cancel()

	act, ok := findActivity(ctx, activityID)
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "Activity not found")
		return
	}

	exp.ExpenseID = "expense-" + utils.GetUUID()
	exp.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	if _, err := db.ActivitiesCollection.UpdateOne(ctx,
		bson.M{"activityid": activityID},
		bson.M{"$push": bson.M{"expenses": exp}}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error adding expense")
		return
	}
	rdx.InvalidateBoard(act.TripID)

	utils.RespondWithJSON(w, http.StatusCreated, exp)
}

// DELETE /api/activities/:activityid/expenses/:expenseid
func DeleteExpense(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	activityID := ps.ByName("activityid")
	expenseID := ps.ByName("expenseid")

	ctx, cancel := detailContext(r)
	defer cancel()

	act, ok := findActivity(ctx, activityID)
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "Activity not found")
		return
	}

	res, err := db.ActivitiesCollection.UpdateOne(ctx,
		bson.M{"activityid": activityID},
		bson.M{"$pull": bson.M{"expenses": bson.M{"expenseid": expenseID}}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error deleting expense")
		return
	}
	if res.ModifiedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Expense not found")
		return
	}
	rdx.InvalidateBoard(act.TripID)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Expense deleted successfully"})
}

// POST /api/activities/:activityid/reminders
func AddReminder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	activityID := ps.ByName("activityid")

	var rem models.Reminder
	if err := json.NewDecoder(r.Body).Decode(&rem); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if rem.Time == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Time is required")
		return
	}

	ctx, cancel := detailContext(r)
	defer cancel()

	act, ok := findActivity(ctx, activityID)
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "Activity not found")
		return
	}

	rem.ReminderID = "reminder-" + utils.GetUUID()
	rem.Done = false

	if _, err := db.ActivitiesCollection.UpdateOne(ctx,
		bson.M{"activityid": activityID},
		bson.M{"$push": bson.M{"reminders": rem}}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error adding reminder")
		return
	}
	rdx.InvalidateBoard(act.TripID)

	utils.RespondWithJSON(w, http.StatusCreated, rem)
}

// PUT /api/activities/:activityid/reminders/:reminderid
func UpdateReminder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	activityID := ps.ByName("activityid")
	reminderID := ps.ByName("reminderid")

	var rem models.Reminder
	if err := json.NewDecoder(r.Body).Decode(&rem); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ctx, cancel := detailContext(r)
	defer cancel()

	act, ok := findActivity(ctx, activityID)
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "Activity not found")
		return
	}

	res, err := db.ActivitiesCollection.UpdateOne(ctx,
		bson.M{"activityid": activityID, "reminders.reminderid": reminderID},
		bson.M{"$set": bson.M{
			"reminders.$.time": rem.Time,
			"reminders.$.note": rem.Note,
			"reminders.$.done": rem.Done,
		}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating reminder")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Reminder not found")
		return
	}
	rdx.InvalidateBoard(act.TripID)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Reminder updated successfully"})
}

// DELETE /api/activities/:activityid/reminders/:reminderid
func DeleteReminder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	activityID := ps.ByName("activityid")
	reminderID := ps.ByName("reminderid")

	ctx, cancel := detailContext(r)
	defer cancel()

	act, ok := findActivity(ctx, activityID)
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "Activity not found")
		return
	}

	res, err := db.ActivitiesCollection.UpdateOne(ctx,
		bson.M{"activityid": activityID},
		bson.M{"$pull": bson.M{"reminders": bson.M{"reminderid": reminderID}}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error deleting reminder")
		return
	}
	if res.ModifiedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Reminder not found")
		return
	}
	rdx.InvalidateBoard(act.TripID)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Reminder deleted successfully"})
}
