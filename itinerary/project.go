package itinerary

import (
	"trippal/models"
)

// DayView is one day with its activities resolved in display order.
type DayView struct {
	DayID      string            `json:"id"`
	Title      string            `json:"title"`
	Date       string            `json:"date,omitempty"`
	Activities []models.Activity `json:"activities"`
}

// Project derives the ordered, fully resolved board from a snapshot.
// Read-side only; the snapshot is not touched.
//
// Dangling references are skipped rather than failing: a day id missing
// from Days, or an activity id missing from Activities, simply does not
// appear in the output. Cascading deletes and reorders issued by a
// front end can arrive interleaved, and a render in between must not
// crash on the gap.
func Project(snap Snapshot) []DayView {
	views := make([]DayView, 0, len(snap.DayOrder))
	for _, dayID := range snap.DayOrder {
		day, ok := snap.Days[dayID]
		if !ok {
			continue
		}
		acts := make([]models.Activity, 0, len(day.ActivityIDs))
		for _, activityID := range day.ActivityIDs {
			if act, ok := snap.Activities[activityID]; ok {
				acts = append(acts, act)
			}
		}
		views = append(views, DayView{
			DayID:      day.DayID,
			Title:      day.Title,
			Date:       day.Date,
			Activities: acts,
		})
	}
	return views
}
