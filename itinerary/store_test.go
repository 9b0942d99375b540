package itinerary

import (
	"errors"
	"reflect"
	"testing"

	"trippal/models"
)

// three days, six activities, mirroring the shape a fresh trip ships with
func testSnapshot() Snapshot {
	snap := NewSnapshot("trip-1")
	snap.DayOrder = []string{"D1", "D2", "D3"}
	snap.Days = map[string]models.Day{
		"D1": {DayID: "D1", TripID: "trip-1", Title: "Day 1", ActivityIDs: []string{"A1", "A2", "A3"}},
		"D2": {DayID: "D2", TripID: "trip-1", Title: "Day 2", ActivityIDs: []string{"A4", "A5"}},
		"D3": {DayID: "D3", TripID: "trip-1", Title: "Day 3", ActivityIDs: []string{"A6"}},
	}
	for _, id := range []string{"A1", "A2", "A3"} {
		snap.Activities[id] = models.Activity{ActivityID: id, TripID: "trip-1", DayID: "D1", Content: id, Type: models.ActivityLeisure}
	}
	for _, id := range []string{"A4", "A5"} {
		snap.Activities[id] = models.Activity{ActivityID: id, TripID: "trip-1", DayID: "D2", Content: id, Type: models.ActivityMeal}
	}
	snap.Activities["A6"] = models.Activity{ActivityID: "A6", TripID: "trip-1", DayID: "D3", Content: "A6", Type: models.ActivityTravel}
	return snap
}

// checkInvariants verifies the permutation and exclusive-ownership
// invariants the Store promises after every operation.
func checkInvariants(t *testing.T, snap Snapshot) {
	t.Helper()

	if len(snap.DayOrder) != len(snap.Days) {
		t.Fatalf("day order has %d entries, days map has %d", len(snap.DayOrder), len(snap.Days))
	}
	seenDays := map[string]bool{}
	for _, dayID := range snap.DayOrder {
		if seenDays[dayID] {
			t.Fatalf("duplicate day id %s in order", dayID)
		}
		seenDays[dayID] = true
		if _, ok := snap.Days[dayID]; !ok {
			t.Fatalf("day id %s in order but not in map", dayID)
		}
	}

	owner := map[string]string{}
	for dayID, day := range snap.Days {
		for _, activityID := range day.ActivityIDs {
			if prev, taken := owner[activityID]; taken {
				t.Fatalf("activity %s owned by both %s and %s", activityID, prev, dayID)
			}
			owner[activityID] = dayID
		}
	}
	for activityID := range snap.Activities {
		if _, ok := owner[activityID]; !ok {
			t.Fatalf("activity %s in map but owned by no day", activityID)
		}
	}
	for activityID, dayID := range owner {
		act, ok := snap.Activities[activityID]
		if !ok {
			t.Fatalf("day %s lists unknown activity %s", dayID, activityID)
		}
		if act.DayID != dayID {
			t.Fatalf("activity %s back-pointer says %s, owner is %s", activityID, act.DayID, dayID)
		}
	}
}

func TestReorderDays(t *testing.T) {
	store := NewStore(testSnapshot())
	if err := store.ReorderDays(0, 2); err != nil {
		t.Fatal(err)
	}
	snap := store.Snapshot()
	if want := []string{"D2", "D3", "D1"}; !reflect.DeepEqual(snap.DayOrder, want) {
		t.Fatalf("day order = %v, want %v", snap.DayOrder, want)
	}
	checkInvariants(t, snap)
}

func TestReorderDaysOutOfRange(t *testing.T) {
	store := NewStore(testSnapshot())
	for _, c := range [][2]int{{-1, 0}, {0, 3}, {3, 0}, {0, -1}} {
		if err := store.ReorderDays(c[0], c[1]); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("ReorderDays(%d, %d) = %v, want ErrOutOfRange", c[0], c[1], err)
		}
	}
	if !reflect.DeepEqual(store.Snapshot().DayOrder, []string{"D1", "D2", "D3"}) {
		t.Fatal("failed reorder mutated state")
	}
}

func TestReorderDaysSameIndexIsNoOp(t *testing.T) {
	store := NewStore(testSnapshot())
	if err := store.ReorderDays(1, 1); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(store.Snapshot().DayOrder, []string{"D1", "D2", "D3"}) {
		t.Fatal("no-op reorder changed day order")
	}
	if store.Rollback() {
		t.Fatal("no-op reorder must not commit a snapshot")
	}
}

func TestReorderActivities(t *testing.T) {
	store := NewStore(testSnapshot())
	if err := store.ReorderActivities("D1", 2, 0); err != nil {
		t.Fatal(err)
	}
	snap := store.Snapshot()
	if want := []string{"A3", "A1", "A2"}; !reflect.DeepEqual(snap.Days["D1"].ActivityIDs, want) {
		t.Fatalf("activity order = %v, want %v", snap.Days["D1"].ActivityIDs, want)
	}
	checkInvariants(t, snap)
}

func TestReorderActivitiesUnknownDay(t *testing.T) {
	store := NewStore(testSnapshot())
	if err := store.ReorderActivities("D9", 0, 1); !errors.Is(err, ErrUnknownDay) {
		t.Fatalf("err = %v, want ErrUnknownDay", err)
	}
}

func TestReorderActivitiesSingleElement(t *testing.T) {
	store := NewStore(testSnapshot())
	if err := store.ReorderActivities("D3", 0, 0); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(store.Snapshot().Days["D3"].ActivityIDs, []string{"A6"}) {
		t.Fatal("single-element reorder changed the list")
	}
}

func TestMoveActivity(t *testing.T) {
	store := NewStore(testSnapshot())
	if err := store.MoveActivity("A1", "D1", "D2", 0); err != nil {
		t.Fatal(err)
	}
	snap := store.Snapshot()
	if want := []string{"A2", "A3"}; !reflect.DeepEqual(snap.Days["D1"].ActivityIDs, want) {
		t.Errorf("source day = %v, want %v", snap.Days["D1"].ActivityIDs, want)
	}
	if want := []string{"A1", "A4", "A5"}; !reflect.DeepEqual(snap.Days["D2"].ActivityIDs, want) {
		t.Errorf("destination day = %v, want %v", snap.Days["D2"].ActivityIDs, want)
	}
	if snap.Activities["A1"].DayID != "D2" {
		t.Errorf("back-pointer = %s, want D2", snap.Activities["A1"].DayID)
	}
	checkInvariants(t, snap)
}

func TestMoveActivitySameDayRejected(t *testing.T) {
	store := NewStore(testSnapshot())
	if err := store.MoveActivity("A1", "D1", "D1", 2); !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("err = %v, want ErrInvalidMove", err)
	}
	checkInvariants(t, store.Snapshot())
}

func TestMoveActivityUnknownDay(t *testing.T) {
	store := NewStore(testSnapshot())
	if err := store.MoveActivity("A1", "D9", "D2", 0); !errors.Is(err, ErrUnknownDay) {
		t.Fatalf("bad source day: err = %v, want ErrUnknownDay", err)
	}
	if err := store.MoveActivity("A1", "D1", "D9", 0); !errors.Is(err, ErrUnknownDay) {
		t.Fatalf("bad destination day: err = %v, want ErrUnknownDay", err)
	}
}

func TestMoveActivityNotInSourceDay(t *testing.T) {
	store := NewStore(testSnapshot())
	if err := store.MoveActivity("A6", "D1", "D2", 0); !errors.Is(err, ErrUnknownActivity) {
		t.Fatalf("err = %v, want ErrUnknownActivity", err)
	}
}

func TestMoveOnlyActivityLeavesEmptyDay(t *testing.T) {
	store := NewStore(testSnapshot())
	if err := store.MoveActivity("A6", "D3", "D1", 1); err != nil {
		t.Fatal(err)
	}
	snap := store.Snapshot()
	if len(snap.Days["D3"].ActivityIDs) != 0 {
		t.Fatalf("source day not empty: %v", snap.Days["D3"].ActivityIDs)
	}
	if want := []string{"A1", "A6", "A2", "A3"}; !reflect.DeepEqual(snap.Days["D1"].ActivityIDs, want) {
		t.Fatalf("destination day = %v, want %v", snap.Days["D1"].ActivityIDs, want)
	}
	checkInvariants(t, snap)
}

func TestAddDayAppends(t *testing.T) {
	store := NewStore(testSnapshot())
	day := store.AddDay("Day 4")
	snap := store.Snapshot()
	if len(snap.DayOrder) != 4 || snap.DayOrder[3] != day.DayID {
		t.Fatalf("day order = %v, want new day %s last", snap.DayOrder, day.DayID)
	}
	if got := snap.Days[day.DayID]; got.Title != "Day 4" || len(got.ActivityIDs) != 0 {
		t.Fatalf("new day = %+v", got)
	}
	checkInvariants(t, snap)
}

func TestRemoveDayCascades(t *testing.T) {
	store := NewStore(testSnapshot())
	if err := store.RemoveDay("D1"); err != nil {
		t.Fatal(err)
	}
	snap := store.Snapshot()
	if want := []string{"D2", "D3"}; !reflect.DeepEqual(snap.DayOrder, want) {
		t.Fatalf("day order = %v, want %v", snap.DayOrder, want)
	}
	for _, id := range []string{"A1", "A2", "A3"} {
		if _, ok := snap.Activities[id]; ok {
			t.Errorf("activity %s survived its day's deletion", id)
		}
	}
	checkInvariants(t, snap)
}

func TestRemoveLastDayFails(t *testing.T) {
	snap := NewSnapshot("trip-1")
	snap.DayOrder = []string{"D1"}
	snap.Days["D1"] = models.Day{DayID: "D1", TripID: "trip-1", Title: "Day 1", ActivityIDs: []string{"A1"}}
	snap.Activities["A1"] = models.Activity{ActivityID: "A1", TripID: "trip-1", DayID: "D1", Content: "A1", Type: models.ActivityOther}

	store := NewStore(snap)
	if err := store.RemoveDay("D1"); !errors.Is(err, ErrLastDay) {
		t.Fatalf("err = %v, want ErrLastDay", err)
	}
	after := store.Snapshot()
	if len(after.DayOrder) != 1 || len(after.Activities) != 1 {
		t.Fatal("failed removal mutated state")
	}
}

func TestRemoveUnknownDay(t *testing.T) {
	store := NewStore(testSnapshot())
	if err := store.RemoveDay("D9"); !errors.Is(err, ErrUnknownDay) {
		t.Fatalf("err = %v, want ErrUnknownDay", err)
	}
}

func TestRenameDay(t *testing.T) {
	store := NewStore(testSnapshot())
	if err := store.RenameDay("D2", "Day 2 - Exploration"); err != nil {
		t.Fatal(err)
	}
	if got := store.Snapshot().Days["D2"].Title; got != "Day 2 - Exploration" {
		t.Fatalf("title = %q", got)
	}
	if err := store.RenameDay("D9", "x"); !errors.Is(err, ErrUnknownDay) {
		t.Fatalf("err = %v, want ErrUnknownDay", err)
	}
}

func TestAddActivity(t *testing.T) {
	store := NewStore(testSnapshot())
	act, err := store.AddActivity("D2", ActivityDraft{Content: "Dinner Reservation", Time: "7:00 PM", Type: models.ActivityMeal})
	if err != nil {
		t.Fatal(err)
	}
	snap := store.Snapshot()
	day := snap.Days["D2"]
	if day.ActivityIDs[len(day.ActivityIDs)-1] != act.ActivityID {
		t.Fatalf("new activity not appended: %v", day.ActivityIDs)
	}
	if snap.Activities[act.ActivityID].DayID != "D2" {
		t.Fatal("back-pointer not set")
	}
	checkInvariants(t, snap)
}

func TestAddActivityDefaultsUnknownType(t *testing.T) {
	store := NewStore(testSnapshot())
	act, err := store.AddActivity("D1", ActivityDraft{Content: "???", Type: "skydiving"})
	if err != nil {
		t.Fatal(err)
	}
	if act.Type != models.ActivityOther {
		t.Fatalf("type = %s, want other", act.Type)
	}
}

func TestAddActivityUnknownDay(t *testing.T) {
	store := NewStore(testSnapshot())
	if _, err := store.AddActivity("D9", ActivityDraft{Content: "x"}); !errors.Is(err, ErrUnknownDay) {
		t.Fatalf("err = %v, want ErrUnknownDay", err)
	}
}

func TestRemoveActivity(t *testing.T) {
	store := NewStore(testSnapshot())
	if err := store.RemoveActivity("A2", "D1"); err != nil {
		t.Fatal(err)
	}
	snap := store.Snapshot()
	if want := []string{"A1", "A3"}; !reflect.DeepEqual(snap.Days["D1"].ActivityIDs, want) {
		t.Fatalf("activity list = %v, want %v", snap.Days["D1"].ActivityIDs, want)
	}
	if _, ok := snap.Activities["A2"]; ok {
		t.Fatal("activity still in map")
	}
	checkInvariants(t, snap)
}

func TestRemoveActivityWrongDay(t *testing.T) {
	store := NewStore(testSnapshot())
	// A4 lives in D2; a stale UI might still think it is in D1
	if err := store.RemoveActivity("A4", "D1"); !errors.Is(err, ErrUnknownActivity) {
		t.Fatalf("err = %v, want ErrUnknownActivity", err)
	}
	checkInvariants(t, store.Snapshot())
}

func TestRollbackRestoresPreviousSnapshot(t *testing.T) {
	store := NewStore(testSnapshot())
	if err := store.ReorderDays(0, 2); err != nil {
		t.Fatal(err)
	}
	if !store.Rollback() {
		t.Fatal("expected a snapshot to roll back to")
	}
	if !reflect.DeepEqual(store.Snapshot().DayOrder, []string{"D1", "D2", "D3"}) {
		t.Fatalf("day order after rollback = %v", store.Snapshot().DayOrder)
	}
	if store.Rollback() {
		t.Fatal("second rollback should have nothing to restore")
	}
}

func TestSnapshotCopiesAreIsolated(t *testing.T) {
	store := NewStore(testSnapshot())
	snap := store.Snapshot()
	snap.DayOrder[0] = "hacked"
	day := snap.Days["D1"]
	day.ActivityIDs[0] = "hacked"
	snap.Days["D1"] = day

	fresh := store.Snapshot()
	if fresh.DayOrder[0] != "D1" || fresh.Days["D1"].ActivityIDs[0] != "A1" {
		t.Fatal("mutating a returned snapshot leaked into the store")
	}
}
