package globals

import (
	"context"
)

// Context keys
type ContextKey string

const SessionIDKey ContextKey = "sessionId"

// Redis pub/sub channel carrying board change events.
const BoardEventsChannel = "board-events"

var Ctx = context.Background()
