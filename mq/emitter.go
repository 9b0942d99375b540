package mq

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"trippal/globals"
	"trippal/live"
	"trippal/models"
	"trippal/rdx"
)

// Emit publishes a committed board mutation to the board-events redis
// channel. Fire-and-forget: a publish failure is logged, never
// surfaced to the request that already committed.
func Emit(ctx context.Context, event models.BoardEvent) {
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().Unix()
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event: %v", err)
		return
	}

	if err := rdx.Conn.Publish(ctx, globals.BoardEventsChannel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish board event: %v", err)
	}
}

// StartBoardWorker consumes board events off redis and forwards each
// one to the live feed subscribers of its trip.
func StartBoardWorker(hub *live.Hub) {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, globals.BoardEventsChannel)
	ch := sub.Channel()

	log.Println("[BoardWorker] Listening for board events...")

	for msg := range ch {
		var event models.BoardEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[BoardWorker] Failed to parse event: %v", err)
			continue
		}
		hub.Broadcast(event.TripID, []byte(msg.Payload))
	}
}
