package models

// Day is a single day-bucket in an itinerary. ActivityIDs is
// order-significant and must never contain duplicates; an activity id
// appears in exactly one day's list at a time.
type Day struct {
	DayID       string   `json:"id" bson:"dayid"`
	TripID      string   `json:"tripId" bson:"tripid"`
	Title       string   `json:"title" bson:"title"`
	Date        string   `json:"date,omitempty" bson:"date,omitempty"`
	ActivityIDs []string `json:"activityIds" bson:"activity_ids"`
}

// ActivityType is the closed set of activity categories.
type ActivityType string

const (
	ActivityMeal       ActivityType = "meal"
	ActivityAttraction ActivityType = "attraction"
	ActivityLeisure    ActivityType = "leisure"
	ActivityTravel     ActivityType = "travel"
	ActivityOther      ActivityType = "other"
)

// ValidActivityType reports whether t is one of the known categories.
func ValidActivityType(t ActivityType) bool {
	switch t {
	case ActivityMeal, ActivityAttraction, ActivityLeisure, ActivityTravel, ActivityOther:
		return true
	}
	return false
}

// Activity is a single planned event. Ownership lives in the owning
// day's ActivityIDs; DayID is kept as a back-pointer for O(1) lookup.
type Activity struct {
	ActivityID  string       `json:"id" bson:"activityid"`
	TripID      string       `json:"tripId" bson:"tripid"`
	DayID       string       `json:"dayId" bson:"dayid"`
	Content     string       `json:"content" bson:"content"`
	Time        string       `json:"time,omitempty" bson:"time,omitempty"`
	Type        ActivityType `json:"type" bson:"type"`
	Location    string       `json:"location,omitempty" bson:"location,omitempty"`
	Notes       string       `json:"notes,omitempty" bson:"notes,omitempty"`
	Expenses    []Expense    `json:"expenses,omitempty" bson:"expenses,omitempty"`
	Reminders   []Reminder   `json:"reminders,omitempty" bson:"reminders,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty" bson:"attachments,omitempty"`
}

type Expense struct {
	ExpenseID   string  `json:"id" bson:"expenseid"`
	Amount      float64 `json:"amount" bson:"amount"`
	Description string  `json:"description" bson:"description"`
	Currency    string  `json:"currency" bson:"currency"`
	CreatedAt   string  `json:"createdAt" bson:"created_at"`
}

type Reminder struct {
	ReminderID string `json:"id" bson:"reminderid"`
	Time       string `json:"time" bson:"time"`
	Note       string `json:"note" bson:"note"`
	Done       bool   `json:"done" bson:"done"`
}

type Attachment struct {
	AttachmentID string `json:"id" bson:"attachmentid"`
	Name         string `json:"name" bson:"name"`
	Path         string `json:"path" bson:"path"`
	ThumbPath    string `json:"thumbPath,omitempty" bson:"thumb_path,omitempty"`
	ContentType  string `json:"contentType" bson:"content_type"`
	UploadedAt   string `json:"uploadedAt" bson:"uploaded_at"`
}
