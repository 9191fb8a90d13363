// Package mq is the domain event bus: handlers publish fire-and-forget events
// to a Redis channel, and a worker folds them into derived state (the product
// autocomplete index and popularity counters).
package mq

import (
	"context"
	"encoding/json"
	"log"

	"vestra/models"
	"vestra/rdx"
)

// Channel carries every domain event.
const Channel = "shop-events"

// Emit publishes an event. Failures are logged only; the triggering request
// has already succeeded and derived state tolerates gaps.
func Emit(_ context.Context, eventName string, content models.Index) {
	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("mq: marshal %s failed: %v", eventName, err)
		return
	}

	if err := rdx.Conn.Publish(context.Background(), Channel, data).Err(); err != nil {
		log.Printf("mq: publish %s failed: %v", eventName, err)
	}
}
