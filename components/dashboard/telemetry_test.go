package dashboard

import (
	"context"
	"sync"
)

type recordedEvent struct {
	Event   string
	Payload map[string]any
}

// captureTelemetry collects Record calls for assertions.
type captureTelemetry struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (c *captureTelemetry) Record(_ context.Context, event string, payload map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, recordedEvent{Event: event, Payload: payload})
}

func (c *captureTelemetry) names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.events))
	for i, ev := range c.events {
		out[i] = ev.Event
	}
	return out
}

func (c *captureTelemetry) has(event string) bool {
	for _, name := range c.names() {
		if name == event {
			return true
		}
	}
	return false
}
