package itinerary

import (
	"testing"

	"trippal/models"
)

func TestProjectResolvesInOrder(t *testing.T) {
	views := Project(testSnapshot())
	if len(views) != 3 {
		t.Fatalf("got %d day views, want 3", len(views))
	}
	if views[0].DayID != "D1" || views[1].DayID != "D2" || views[2].DayID != "D3" {
		t.Fatalf("day order wrong: %s %s %s", views[0].DayID, views[1].DayID, views[2].DayID)
	}
	got := views[0].Activities
	if len(got) != 3 || got[0].ActivityID != "A1" || got[1].ActivityID != "A2" || got[2].ActivityID != "A3" {
		t.Fatalf("activities of D1 out of order: %+v", got)
	}
}

func TestProjectSkipsDanglingActivityID(t *testing.T) {
	snap := testSnapshot()
	day := snap.Days["D2"]
	day.ActivityIDs = append(day.ActivityIDs, "A-gone")
	snap.Days["D2"] = day

	views := Project(snap)
	if len(views[1].Activities) != 2 {
		t.Fatalf("dangling id not skipped: %+v", views[1].Activities)
	}
}

func TestProjectSkipsDanglingDayID(t *testing.T) {
	snap := testSnapshot()
	snap.DayOrder = append(snap.DayOrder, "D-gone")

	views := Project(snap)
	if len(views) != 3 {
		t.Fatalf("dangling day id not skipped, got %d views", len(views))
	}
}

func TestProjectEmptyDay(t *testing.T) {
	snap := NewSnapshot("trip-1")
	snap.DayOrder = []string{"D1"}
	snap.Days["D1"] = models.Day{DayID: "D1", Title: "Day 1", ActivityIDs: []string{}}

	views := Project(snap)
	if len(views) != 1 {
		t.Fatalf("got %d views, want 1", len(views))
	}
	if views[0].Activities == nil || len(views[0].Activities) != 0 {
		t.Fatalf("empty day must project an empty, non-nil list: %#v", views[0].Activities)
	}
}
