package models

// BoardEvent describes one committed board mutation. Published on the
// board-events redis channel and forwarded to live feed subscribers.
type BoardEvent struct {
	TripID     string `json:"tripId"`
	Action     string `json:"action"` // reorder-days, reorder-activities, move-activity, add-day, remove-day, rename-day, add-activity, remove-activity
	DayID      string `json:"dayId,omitempty"`
	ActivityID string `json:"activityId,omitempty"`
	Timestamp  int64  `json:"timestamp"`
}
