package realtime

import (
	"context"
	"fmt"

	"github.com/gorilla/websocket"
)

// DefaultEventsPath is where the backend exposes its event stream.
const DefaultEventsPath = "/ws/events/"

// Conn adapts a websocket connection into a Source. Unknown event kinds are
// skipped; a read error or context cancellation ends the stream with no
// reconnect (the event bridge simply goes inert).
type Conn struct {
	hub  *Hub
	ws   *websocket.Conn
	done chan struct{}
}

// Dial connects to the backend event stream at wsURL (a ws:// or wss:// URL)
// and starts pumping events.
func Dial(ctx context.Context, wsURL string) (*Conn, error) {
	ws, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("realtime: dial %s: %w", wsURL, err)
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	conn := &Conn{
		hub:  NewHub(),
		ws:   ws,
		done: make(chan struct{}),
	}
	go conn.readLoop(ctx)
	return conn, nil
}

// Subscribe implements Source.
func (c *Conn) Subscribe() (<-chan Event, func()) {
	return c.hub.Subscribe()
}

// Close tears down the connection and all subscriptions.
func (c *Conn) Close() error {
	err := c.ws.Close()
	<-c.done
	return err
}

func (c *Conn) readLoop(ctx context.Context) {
	defer close(c.done)
	defer c.hub.Close()
	go func() {
		select {
		case <-ctx.Done():
			c.ws.Close()
		case <-c.done:
		}
	}()
	for {
		var event Event
		if err := c.ws.ReadJSON(&event); err != nil {
			return
		}
		if !event.Kind.Known() {
			continue
		}
		c.hub.Publish(event)
	}
}
