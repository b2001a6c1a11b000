package dashboard

import (
	"context"

	"github.com/eKidenge/pesaflow/pkg/dom"
)

// EventType names the user-interaction events the bootstrapper binds.
type EventType string

const (
	// EventClick fires when an element is activated.
	EventClick EventType = "click"
	// EventSubmit fires when a form is submitted.
	EventSubmit EventType = "submit"
	// EventInput fires on every keystroke into a field.
	EventInput EventType = "input"
	// EventScroll fires when the viewport position changes.
	EventScroll EventType = "scroll"
)

// ScrollState is the viewport geometry carried by scroll events.
type ScrollState struct {
	Top            float64
	ViewportHeight float64
	DocumentHeight float64
}

// Event is one dispatched interaction. Target is the element the event
// originated on; CurrentTarget is the element whose binding matched during
// bubbling.
type Event struct {
	Type          EventType
	Target        *dom.Element
	CurrentTarget *dom.Element
	Value         string
	Scroll        ScrollState

	defaultPrevented bool
}

// PreventDefault cancels the event's default action, e.g. a form submission
// or a delete navigation.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether a handler cancelled the default action.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// Handler reacts to a dispatched event.
type Handler func(ctx context.Context, ev *Event)

type binding struct {
	eventType EventType
	selector  string
	handler   Handler
}

// Dispatcher is the explicit event-to-handler registration table. Bindings
// with a selector are delegated: the event bubbles from its target to the
// document root and every binding whose selector matches an element on that
// path runs. Bindings with an empty selector run for every event of their
// type (scroll, for instance, has no meaningful target).
type Dispatcher struct {
	loop     *Loop
	bindings []binding
}

// NewDispatcher builds a dispatcher that posts handlers onto loop.
func NewDispatcher(loop *Loop) *Dispatcher {
	return &Dispatcher{loop: loop}
}

// Bind registers a handler for an event type and selector.
func (d *Dispatcher) Bind(eventType EventType, selector string, handler Handler) {
	if handler == nil {
		return
	}
	d.bindings = append(d.bindings, binding{
		eventType: eventType,
		selector:  selector,
		handler:   handler,
	})
}

// Dispatch posts the event onto the loop for handling.
func (d *Dispatcher) Dispatch(ctx context.Context, ev *Event) {
	d.loop.Post(func() { d.handle(ctx, ev) })
}

func (d *Dispatcher) handle(ctx context.Context, ev *Event) {
	for i := range d.bindings {
		b := d.bindings[i]
		if b.eventType != ev.Type {
			continue
		}
		if b.selector == "" {
			ev.CurrentTarget = ev.Target
			b.handler(ctx, ev)
			continue
		}
		for el := ev.Target; el != nil; el = el.Parent() {
			if el.Matches(b.selector) {
				ev.CurrentTarget = el
				b.handler(ctx, ev)
				break
			}
		}
	}
}
