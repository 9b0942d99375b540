package itinerary

import "errors"

// Validation errors raised by Store operations before any mutation is
// applied. Handlers map these to 4xx responses; persistence failures
// are a separate category and must never be folded into these.
var (
	ErrOutOfRange      = errors.New("index out of range")
	ErrUnknownDay      = errors.New("unknown day")
	ErrUnknownActivity = errors.New("unknown activity")
	ErrLastDay         = errors.New("cannot remove the last day of a trip")
	ErrInvalidMove     = errors.New("same-day move must be a reorder")
	ErrUnknownTrip     = errors.New("unknown trip")
)
