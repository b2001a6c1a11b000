// Package realtime carries the server-pushed events the dashboard reacts to
// and the transports that deliver them.
package realtime

import "github.com/google/uuid"

// EventKind names the wire-level event types the backend publishes.
type EventKind string

const (
	// EventNewPayment signals a completed payment.
	EventNewPayment EventKind = "new_payment"
	// EventPaymentFailed signals a failed payment attempt.
	EventPaymentFailed EventKind = "payment_failed"
	// EventNewNotification signals a freshly created notification.
	EventNewNotification EventKind = "new_notification"
)

// Event is one server-pushed message.
type Event struct {
	ID      string    `json:"id,omitempty"`
	Kind    EventKind `json:"event"`
	Message string    `json:"message"`
}

// NewEvent builds an event with a fresh ID.
func NewEvent(kind EventKind, message string) Event {
	return Event{ID: uuid.NewString(), Kind: kind, Message: message}
}

// Known reports whether the kind is one the dashboard subscribes to.
func (k EventKind) Known() bool {
	switch k {
	case EventNewPayment, EventPaymentFailed, EventNewNotification:
		return true
	}
	return false
}

// Source is a subscribe-only stream of events. The returned cancel func
// releases the subscription; the channel closes when the source shuts down.
type Source interface {
	Subscribe() (<-chan Event, func())
}
