package itinerary

import (
	"encoding/json"
	"net/http"

	"trippal/rdx"
	"trippal/utils"

	"github.com/julienschmidt/httprouter"
)

// GET /api/trips/:tripid/board
func GetBoard(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tripID := ps.ByName("tripid")

	if cached := rdx.GetCachedBoard(tripID); cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cached))
		return
	}

	ctx, cancel := boardContext(r)
	defer cancel()

	snap, err := LoadSnapshot(ctx, tripID)
	if err != nil {
		utils.RespondWithError(w, statusFor(err), err.Error())
		return
	}

	payload, err := json.Marshal(utils.M{
		"tripId": tripID,
		"days":   Project(snap),
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to encode board")
		return
	}

	rdx.CacheBoard(tripID, payload)
	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}
