package itinerary

import (
	"fmt"
	"slices"

	"trippal/models"
	"trippal/utils"
)

// Snapshot is one immutable value of the full board state: the global
// day ordering plus flat entity maps. Invariants the Store maintains:
// DayOrder is a duplicate-free permutation of the keys of Days, and
// every activity id appears in exactly one day's ActivityIDs.
type Snapshot struct {
	TripID     string
	DayOrder   []string
	Days       map[string]models.Day
	Activities map[string]models.Activity
}

// NewSnapshot returns an empty board for a trip.
func NewSnapshot(tripID string) Snapshot {
	return Snapshot{
		TripID:     tripID,
		DayOrder:   []string{},
		Days:       map[string]models.Day{},
		Activities: map[string]models.Activity{},
	}
}

// Clone deep-copies the snapshot. Mutating the copy can never alias
// into the original's order lists or entity records.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		TripID:     s.TripID,
		DayOrder:   slices.Clone(s.DayOrder),
		Days:       make(map[string]models.Day, len(s.Days)),
		Activities: make(map[string]models.Activity, len(s.Activities)),
	}
	for id, d := range s.Days {
		d.ActivityIDs = slices.Clone(d.ActivityIDs)
		out.Days[id] = d
	}
	for id, a := range s.Activities {
		a.Expenses = slices.Clone(a.Expenses)
		a.Reminders = slices.Clone(a.Reminders)
		a.Attachments = slices.Clone(a.Attachments)
		out.Activities[id] = a
	}
	return out
}

// ActivityDraft is the caller-supplied part of a new activity.
type ActivityDraft struct {
	Content  string              `json:"content"`
	Time     string              `json:"time,omitempty"`
	Type     models.ActivityType `json:"type"`
	Location string              `json:"location,omitempty"`
	Notes    string              `json:"notes,omitempty"`
}

// Store holds the current board snapshot for one planning session and
// applies invariant-preserving mutations. Every operation validates
// fully before touching state: it either commits a complete new
// snapshot or leaves the current one untouched. The previous snapshot
// is retained so a caller whose persistence write failed can roll the
// in-memory state back.
type Store struct {
	curr    Snapshot
	prev    Snapshot
	hasPrev bool
}

func NewStore(snap Snapshot) *Store {
	return &Store{curr: snap.Clone()}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	return s.curr.Clone()
}

// Rollback restores the snapshot from before the last committed
// mutation. Reports false when there is nothing to roll back to.
func (s *Store) Rollback() bool {
	if !s.hasPrev {
		return false
	}
	s.curr = s.prev
	s.hasPrev = false
	return true
}

func (s *Store) commit(next Snapshot) {
	s.prev = s.curr
	s.hasPrev = true
	s.curr = next
}

// ReorderDays moves the day at src to dst within the global day order.
func (s *Store) ReorderDays(src, dst int) error {
	n := len(s.curr.DayOrder)
	if src < 0 || src >= n || dst < 0 || dst >= n {
		return fmt.Errorf("%w: day order has %d entries, got %d -> %d", ErrOutOfRange, n, src, dst)
	}
	if src == dst {
		return nil
	}

	next := s.curr.Clone()
	next.DayOrder = Splice(next.DayOrder, src, dst)
	s.commit(next)
	return nil
}

// ReorderActivities moves an activity within one day's list.
func (s *Store) ReorderActivities(dayID string, src, dst int) error {
	day, ok := s.curr.Days[dayID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDay, dayID)
	}
	n := len(day.ActivityIDs)
	if src < 0 || src >= n || dst < 0 || dst >= n {
		return fmt.Errorf("%w: day %s has %d activities, got %d -> %d", ErrOutOfRange, dayID, n, src, dst)
	}
	if src == dst {
		return nil
	}

	next := s.curr.Clone()
	day = next.Days[dayID]
	day.ActivityIDs = Splice(day.ActivityIDs, src, dst)
	next.Days[dayID] = day
	s.commit(next)
	return nil
}

// MoveActivity relocates an activity from one day to another, inserting
// at destIndex (clamped). Moves within a single day are a caller error:
// they must go through ReorderActivities so there is exactly one
// bookkeeping path per gesture.
func (s *Store) MoveActivity(activityID, fromDayID, toDayID string, destIndex int) error {
	if fromDayID == toDayID {
		return fmt.Errorf("%w: %s", ErrInvalidMove, fromDayID)
	}
	from, ok := s.curr.Days[fromDayID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDay, fromDayID)
	}
	to, ok := s.curr.Days[toDayID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDay, toDayID)
	}
	if !slices.Contains(from.ActivityIDs, activityID) {
		return fmt.Errorf("%w: %s not in day %s", ErrUnknownActivity, activityID, fromDayID)
	}

	newFrom, newTo, err := Transfer(from.ActivityIDs, to.ActivityIDs, activityID, destIndex)
	if err != nil {
		return err
	}

	next := s.curr.Clone()
	from = next.Days[fromDayID]
	from.ActivityIDs = newFrom
	next.Days[fromDayID] = from

	to = next.Days[toDayID]
	to.ActivityIDs = newTo
	next.Days[toDayID] = to

	if act, ok := next.Activities[activityID]; ok {
		act.DayID = toDayID
		next.Activities[activityID] = act
	}
	s.commit(next)
	return nil
}

// AddDay appends a new empty day to the end of the day order.
func (s *Store) AddDay(title string) models.Day {
	day := models.Day{
		DayID:       "day-" + utils.GetUUID(),
		TripID:      s.curr.TripID,
		Title:       title,
		ActivityIDs: []string{},
	}

	next := s.curr.Clone()
	next.Days[day.DayID] = day
	next.DayOrder = append(next.DayOrder, day.DayID)
	s.commit(next)
	return day
}

// RemoveDay deletes a day and cascades deletion of every activity it
// owns. This is the only deletion path for a day; callers never remove
// activities by hand first. At least one day must always remain.
func (s *Store) RemoveDay(dayID string) error {
	day, ok := s.curr.Days[dayID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDay, dayID)
	}
	if len(s.curr.DayOrder) <= 1 {
		return ErrLastDay
	}

	next := s.curr.Clone()
	for _, activityID := range day.ActivityIDs {
		delete(next.Activities, activityID)
	}
	delete(next.Days, dayID)
	next.DayOrder = slices.DeleteFunc(next.DayOrder, func(id string) bool {
		return id == dayID
	})
	s.commit(next)
	return nil
}

// RenameDay updates a day's title.
func (s *Store) RenameDay(dayID, title string) error {
	if _, ok := s.curr.Days[dayID]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDay, dayID)
	}

	next := s.curr.Clone()
	day := next.Days[dayID]
	day.Title = title
	next.Days[dayID] = day
	s.commit(next)
	return nil
}

// AddActivity stores a new activity and appends it to the day's list.
// Drafts with an unrecognized type land in the "other" bucket.
func (s *Store) AddActivity(dayID string, draft ActivityDraft) (models.Activity, error) {
	if _, ok := s.curr.Days[dayID]; !ok {
		return models.Activity{}, fmt.Errorf("%w: %s", ErrUnknownDay, dayID)
	}

	kind := draft.Type
	if !models.ValidActivityType(kind) {
		kind = models.ActivityOther
	}
	act := models.Activity{
		ActivityID: "activity-" + utils.GetUUID(),
		TripID:     s.curr.TripID,
		DayID:      dayID,
		Content:    draft.Content,
		Time:       draft.Time,
		Type:       kind,
		Location:   draft.Location,
		Notes:      draft.Notes,
	}

	next := s.curr.Clone()
	next.Activities[act.ActivityID] = act
	day := next.Days[dayID]
	day.ActivityIDs = append(day.ActivityIDs, act.ActivityID)
	next.Days[dayID] = day
	s.commit(next)
	return act, nil
}

// RemoveActivity deletes an activity. The day must currently own it;
// this guards against stale UI state removing from the wrong day.
func (s *Store) RemoveActivity(activityID, dayID string) error {
	if _, ok := s.curr.Days[dayID]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDay, dayID)
	}
	if !slices.Contains(s.curr.Days[dayID].ActivityIDs, activityID) {
		return fmt.Errorf("%w: %s not in day %s", ErrUnknownActivity, activityID, dayID)
	}

	next := s.curr.Clone()
	delete(next.Activities, activityID)
	day := next.Days[dayID]
	day.ActivityIDs = slices.DeleteFunc(day.ActivityIDs, func(id string) bool {
		return id == activityID
	})
	next.Days[dayID] = day
	s.commit(next)
	return nil
}
