// handlers.go
package itinerary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"trippal/models"
	"trippal/mq"
	"trippal/rdx"
	"trippal/utils"

	"github.com/julienschmidt/httprouter"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrUnknownTrip),
		errors.Is(err, ErrUnknownDay),
		errors.Is(err, ErrUnknownActivity):
		return http.StatusNotFound
	case errors.Is(err, ErrOutOfRange), errors.Is(err, ErrInvalidMove):
		return http.StatusBadRequest
	case errors.Is(err, ErrLastDay):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func boardContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), 5*time.Second)
}

// committed runs the post-persist bookkeeping every board mutation
// shares: drop the cached projection and publish the change event.
func committed(ctx context.Context, event models.BoardEvent) {
	rdx.InvalidateBoard(event.TripID)
	mq.Emit(ctx, event)
}

// POST /api/trips/:tripid/board/reorder
func ReorderDays(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tripID := ps.ByName("tripid")

	var req struct {
		Source      int `json:"source"`
		Destination int `json:"destination"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ctx, cancel := boardContext(r)
	defer cancel()

	snap, err := LoadSnapshot(ctx, tripID)
	if err != nil {
		utils.RespondWithError(w, statusFor(err), err.Error())
		return
	}

	store := NewStore(snap)
	if err := store.ReorderDays(req.Source, req.Destination); err != nil {
		utils.RespondWithError(w, statusFor(err), err.Error())
		return
	}

	next := store.Snapshot()
	if err := saveDayOrder(ctx, tripID, next.DayOrder); err != nil {
		store.Rollback()
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to persist day order")
		return
	}

	committed(ctx, models.BoardEvent{TripID: tripID, Action: "reorder-days"})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"dayOrder": next.DayOrder})
}

// POST /api/trips/:tripid/board/days/:dayid/reorder
func ReorderActivities(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tripID := ps.ByName("tripid")
	dayID := ps.ByName("dayid")

	var req struct {
		Source      int `json:"source"`
		Destination int `json:"destination"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ctx, cancel := boardContext(r)
	defer cancel()

	snap, err := LoadSnapshot(ctx, tripID)
	if err != nil {
		utils.RespondWithError(w, statusFor(err), err.Error())
		return
	}

	store := NewStore(snap)
	if err := store.ReorderActivities(dayID, req.Source, req.Destination); err != nil {
		utils.RespondWithError(w, statusFor(err), err.Error())
		return
	}

	next := store.Snapshot()
	if err := saveDayList(ctx, dayID, next.Days[dayID].ActivityIDs); err != nil {
		store.Rollback()
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to persist activity order")
		return
	}

	committed(ctx, models.BoardEvent{TripID: tripID, Action: "reorder-activities", DayID: dayID})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"activityIds": next.Days[dayID].ActivityIDs})
}

// POST /api/trips/:tripid/board/activities/:activityid/move
func MoveActivity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tripID := ps.ByName("tripid")
	activityID := ps.ByName("activityid")

	var req struct {
		FromDayID string `json:"fromDayId"`
		ToDayID   string `json:"toDayId"`
		DestIndex int    `json:"destIndex"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ctx, cancel := boardContext(r)
	defer cancel()

	snap, err := LoadSnapshot(ctx, tripID)
	if err != nil {
		utils.RespondWithError(w, statusFor(err), err.Error())
		return
	}

	store := NewStore(snap)
	if err := store.MoveActivity(activityID, req.FromDayID, req.ToDayID, req.DestIndex); err != nil {
		utils.RespondWithError(w, statusFor(err), err.Error())
		return
	}

	next := store.Snapshot()
	err = saveDayList(ctx, req.FromDayID, next.Days[req.FromDayID].ActivityIDs)
	if err == nil {
		err = saveDayList(ctx, req.ToDayID, next.Days[req.ToDayID].ActivityIDs)
	}
	if err == nil {
		err = saveActivityDay(ctx, activityID, req.ToDayID)
	}
	if err != nil {
		store.Rollback()
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to persist move")
		return
	}

	committed(ctx, models.BoardEvent{TripID: tripID, Action: "move-activity", DayID: req.ToDayID, ActivityID: activityID})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"fromActivityIds": next.Days[req.FromDayID].ActivityIDs,
		"toActivityIds":   next.Days[req.ToDayID].ActivityIDs,
	})
}

// POST /api/trips/:tripid/board/days
func AddDay(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tripID := ps.ByName("tripid")

	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ctx, cancel := boardContext(r)
	defer cancel()

	snap, err := LoadSnapshot(ctx, tripID)
	if err != nil {
		utils.RespondWithError(w, statusFor(err), err.Error())
		return
	}

	store := NewStore(snap)
	if req.Title == "" {
		req.Title = fmt.Sprintf("Day %d", len(snap.DayOrder)+1)
	}
	day := store.AddDay(req.Title)

	next := store.Snapshot()
	if err := insertDay(ctx, day); err == nil {
		err = saveDayOrder(ctx, tripID, next.DayOrder)
	} else {
		store.Rollback()
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to persist new day")
		return
	}
	if err != nil {
		store.Rollback()
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to persist day order")
		return
	}

	committed(ctx, models.BoardEvent{TripID: tripID, Action: "add-day", DayID: day.DayID})
	utils.RespondWithJSON(w, http.StatusCreated, day)
}

// DELETE /api/trips/:tripid/board/days/:dayid
func RemoveDay(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tripID := ps.ByName("tripid")
	dayID := ps.ByName("dayid")

	ctx, cancel := boardContext(r)
	defer cancel()

	snap, err := LoadSnapshot(ctx, tripID)
	if err != nil {
		utils.RespondWithError(w, statusFor(err), err.Error())
		return
	}

	store := NewStore(snap)
	if err := store.RemoveDay(dayID); err != nil {
		utils.RespondWithError(w, statusFor(err), err.Error())
		return
	}

	next := store.Snapshot()
	if err := DeleteDayCascade(ctx, tripID, dayID, next.DayOrder); err != nil {
		store.Rollback()
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete day")
		return
	}

	committed(ctx, models.BoardEvent{TripID: tripID, Action: "remove-day", DayID: dayID})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"dayOrder": next.DayOrder})
}

// PUT /api/trips/:tripid/board/days/:dayid/title
func RenameDay(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tripID := ps.ByName("tripid")
	dayID := ps.ByName("dayid")

	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Title is required")
		return
	}

	ctx, cancel := boardContext(r)
	defer cancel()

	snap, err := LoadSnapshot(ctx, tripID)
	if err != nil {
		utils.RespondWithError(w, statusFor(err), err.Error())
		return
	}

	store := NewStore(snap)
	if err := store.RenameDay(dayID, req.Title); err != nil {
		utils.RespondWithError(w, statusFor(err), err.Error())
		return
	}

	if err := saveDayTitle(ctx, dayID, req.Title); err != nil {
		store.Rollback()
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to persist title")
		return
	}

	committed(ctx, models.BoardEvent{TripID: tripID, Action: "rename-day", DayID: dayID})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"id": dayID, "title": req.Title})
}

// POST /api/trips/:tripid/board/days/:dayid/activities
func AddActivity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tripID := ps.ByName("tripid")
	dayID := ps.ByName("dayid")

	var draft ActivityDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if draft.Content == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Content is required")
		return
	}

	ctx, cancel := boardContext(r)
	defer cancel()

	snap, err := LoadSnapshot(ctx, tripID)
	if err != nil {
		utils.RespondWithError(w, statusFor(err), err.Error())
		return
	}

	store := NewStore(snap)
	act, err := store.AddActivity(dayID, draft)
	if err != nil {
		utils.RespondWithError(w, statusFor(err), err.Error())
		return
	}

	next := store.Snapshot()
	if err := insertActivity(ctx, act); err == nil {
		err = saveDayList(ctx, dayID, next.Days[dayID].ActivityIDs)
	}
	if err != nil {
		store.Rollback()
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to persist activity")
		return
	}

	committed(ctx, models.BoardEvent{TripID: tripID, Action: "add-activity", DayID: dayID, ActivityID: act.ActivityID})
	utils.RespondWithJSON(w, http.StatusCreated, act)
}

// DELETE /api/trips/:tripid/board/activities/:activityid?dayId=
func RemoveActivity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tripID := ps.ByName("tripid")
	activityID := ps.ByName("activityid")
	dayID := r.URL.Query().Get("dayId")
	if dayID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "dayId query parameter is required")
		return
	}

	ctx, cancel := boardContext(r)
	defer cancel()

	snap, err := LoadSnapshot(ctx, tripID)
	if err != nil {
		utils.RespondWithError(w, statusFor(err), err.Error())
		return
	}

	store := NewStore(snap)
	if err := store.RemoveActivity(activityID, dayID); err != nil {
		utils.RespondWithError(w, statusFor(err), err.Error())
		return
	}

	next := store.Snapshot()
	if err := deleteActivityDoc(ctx, activityID); err == nil {
		err = saveDayList(ctx, dayID, next.Days[dayID].ActivityIDs)
	}
	if err != nil {
		store.Rollback()
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete activity")
		return
	}

	committed(ctx, models.BoardEvent{TripID: tripID, Action: "remove-activity", DayID: dayID, ActivityID: activityID})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"activityIds": next.Days[dayID].ActivityIDs})
}
