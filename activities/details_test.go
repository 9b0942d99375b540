package activities

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"trippal/db"
	"trippal/rdx"

	"github.com/alicebob/miniredis/v2"
	"github.com/julienschmidt/httprouter"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

// stubBoardCache points rdx at an in-process redis seeded with a cached
// board for the trip.
func stubBoardCache(tb testing.TB, tripID string) *miniredis.Miniredis {
	tb.Helper()
	mr := miniredis.RunT(tb)
	rdx.Conn = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	rdx.CacheBoard(tripID, []byte(`{"tripId":"`+tripID+`"}`))
	if !mr.Exists("board:" + tripID) {
		tb.Fatal("cache was not seeded")
	}
	return mr
}

func activityDoc() bson.D {
	return bson.D{
		{Key: "activityid", Value: "A1"},
		{Key: "tripid", Value: "trip-1"},
		{Key: "dayid", Value: "D1"},
		{Key: "content", Value: "Louvre"},
	}
}

func updateOK() bson.D {
	return mtest.CreateSuccessResponse(
		bson.E{Key: "n", Value: 1},
		bson.E{Key: "nModified", Value: 1},
	)
}

// The cached board embeds each activity's reminders and attachments, so
// every detail mutation must drop it.
func TestReminderMutationsDropCachedBoard(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("add reminder", func(mt *mtest.T) {
		db.ActivitiesCollection = mt.Coll
		mr := stubBoardCache(mt, "trip-1")
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "trippaldb.activities", mtest.FirstBatch, activityDoc()),
			updateOK(),
		)

		req := httptest.NewRequest(http.MethodPost, "/api/activities/A1/reminders",
			strings.NewReader(`{"time":"09:00","note":"buy tickets"}`))
		w := httptest.NewRecorder()
		AddReminder(w, req, httprouter.Params{{Key: "activityid", Value: "A1"}})

		if w.Code != http.StatusCreated {
			mt.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
		}
		if ct := w.Header().Get("Content-Type"); ct != "application/json" {
			mt.Errorf("Content-Type = %q, want application/json", ct)
		}
		if mr.Exists("board:trip-1") {
			mt.Error("cached board survived reminder creation")
		}
	})

	mt.Run("update reminder", func(mt *mtest.T) {
		db.ActivitiesCollection = mt.Coll
		mr := stubBoardCache(mt, "trip-1")
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "trippaldb.activities", mtest.FirstBatch, activityDoc()),
			updateOK(),
		)

		req := httptest.NewRequest(http.MethodPut, "/api/activities/A1/reminders/reminder-1",
			strings.NewReader(`{"time":"10:00","note":"moved","done":true}`))
		w := httptest.NewRecorder()
		UpdateReminder(w, req, httprouter.Params{
			{Key: "activityid", Value: "A1"},
			{Key: "reminderid", Value: "reminder-1"},
		})

		if w.Code != http.StatusOK {
			mt.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
		}
		if mr.Exists("board:trip-1") {
			mt.Error("cached board survived reminder update")
		}
	})

	mt.Run("delete reminder", func(mt *mtest.T) {
		db.ActivitiesCollection = mt.Coll
		mr := stubBoardCache(mt, "trip-1")
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "trippaldb.activities", mtest.FirstBatch, activityDoc()),
			updateOK(),
		)

		req := httptest.NewRequest(http.MethodDelete, "/api/activities/A1/reminders/reminder-1", nil)
		w := httptest.NewRecorder()
		DeleteReminder(w, req, httprouter.Params{
			{Key: "activityid", Value: "A1"},
			{Key: "reminderid", Value: "reminder-1"},
		})

		if w.Code != http.StatusOK {
			mt.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
		}
		if mr.Exists("board:trip-1") {
			mt.Error("cached board survived reminder deletion")
		}
	})
}

func TestDeleteAttachmentDropsCachedBoard(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("delete attachment", func(mt *mtest.T) {
		db.ActivitiesCollection = mt.Coll
		mr := stubBoardCache(mt, "trip-1")

		doc := activityDoc()
		doc = append(doc, bson.E{Key: "attachments", Value: bson.A{
			bson.D{
				{Key: "attachmentid", Value: "attachment-1"},
				{Key: "name", Value: "map.jpg"},
				{Key: "path", Value: "/static/attachments/map.jpg"},
			},
		}})
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "trippaldb.activities", mtest.FirstBatch, doc),
			updateOK(),
		)

		req := httptest.NewRequest(http.MethodDelete, "/api/activities/A1/attachments/attachment-1", nil)
		w := httptest.NewRecorder()
		DeleteAttachment(w, req, httprouter.Params{
			{Key: "activityid", Value: "A1"},
			{Key: "attachmentid", Value: "attachment-1"},
		})

		if w.Code != http.StatusOK {
			mt.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
		}
		if mr.Exists("board:trip-1") {
			mt.Error("cached board survived attachment deletion")
		}
	})
}
