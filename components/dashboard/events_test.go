package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eKidenge/pesaflow/pkg/dom"
)

func TestDispatcherDelegatesThroughAncestors(t *testing.T) {
	loop, _ := newTestLoop()
	doc := dom.NewDocument()

	form := doc.CreateElement("form", "needs-validation")
	button := doc.CreateElement("button")
	form.AppendChild(button)
	doc.Root.AppendChild(form)

	dispatcher := NewDispatcher(loop)
	var current *dom.Element
	dispatcher.Bind(EventSubmit, ".needs-validation", func(_ context.Context, ev *Event) {
		current = ev.CurrentTarget
	})

	dispatcher.Dispatch(context.Background(), &Event{Type: EventSubmit, Target: button})
	loop.Dispatch()

	assert.Same(t, form, current)
}

func TestDispatcherSkipsNonMatchingEvents(t *testing.T) {
	loop, _ := newTestLoop()
	doc := dom.NewDocument()
	button := doc.CreateElement("button", "copy-to-clipboard")
	doc.Root.AppendChild(button)

	dispatcher := NewDispatcher(loop)
	calls := 0
	dispatcher.Bind(EventClick, ".copy-to-clipboard", func(context.Context, *Event) { calls++ })

	other := doc.CreateElement("button", "something-else")
	doc.Root.AppendChild(other)
	dispatcher.Dispatch(context.Background(), &Event{Type: EventClick, Target: other})
	dispatcher.Dispatch(context.Background(), &Event{Type: EventSubmit, Target: button})
	loop.Dispatch()
	assert.Equal(t, 0, calls)

	dispatcher.Dispatch(context.Background(), &Event{Type: EventClick, Target: button})
	loop.Dispatch()
	assert.Equal(t, 1, calls)
}

func TestDispatcherEmptySelectorMatchesEveryEvent(t *testing.T) {
	loop, _ := newTestLoop()
	dispatcher := NewDispatcher(loop)

	var tops []float64
	dispatcher.Bind(EventScroll, "", func(_ context.Context, ev *Event) {
		tops = append(tops, ev.Scroll.Top)
	})

	dispatcher.Dispatch(context.Background(), &Event{Type: EventScroll, Scroll: ScrollState{Top: 10}})
	dispatcher.Dispatch(context.Background(), &Event{Type: EventScroll, Scroll: ScrollState{Top: 250}})
	loop.Dispatch()

	assert.Equal(t, []float64{10, 250}, tops)
}

func TestEventPreventDefault(t *testing.T) {
	ev := &Event{Type: EventSubmit}
	assert.False(t, ev.DefaultPrevented())
	ev.PreventDefault()
	assert.True(t, ev.DefaultPrevented())
}

func TestDispatcherRunsEveryMatchingBinding(t *testing.T) {
	loop, _ := newTestLoop()
	doc := dom.NewDocument()
	link := doc.CreateElement("a", "confirm-delete", "audit-link")
	doc.Root.AppendChild(link)

	dispatcher := NewDispatcher(loop)
	var seen []string
	dispatcher.Bind(EventClick, ".confirm-delete", func(context.Context, *Event) {
		seen = append(seen, "confirm")
	})
	dispatcher.Bind(EventClick, ".audit-link", func(context.Context, *Event) {
		seen = append(seen, "audit")
	})

	dispatcher.Dispatch(context.Background(), &Event{Type: EventClick, Target: link})
	loop.Dispatch()

	assert.Equal(t, []string{"confirm", "audit"}, seen)
}
