package models

// Trip is the top-level planning document. DayOrder is the canonical
// ordering of the trip's day ids; every day id in it must exist in the
// days collection for this trip.
type Trip struct {
	TripID    string   `json:"id" bson:"tripid"`
	Title     string   `json:"title" bson:"title"`
	Location  string   `json:"location" bson:"location"`
	StartDate string   `json:"startDate" bson:"start_date"`
	EndDate   string   `json:"endDate" bson:"end_date"`
	Type      string   `json:"type" bson:"type"` // leisure, business, ...
	TimeZone  string   `json:"timeZone,omitempty" bson:"time_zone,omitempty"`
	Budget    float64  `json:"budget,omitempty" bson:"budget,omitempty"`
	DayOrder  []string `json:"dayOrder" bson:"day_order"`
	CreatedAt string   `json:"createdAt" bson:"created_at"`
}
