// Package debounce collapses bursts of calls into a single trailing
// invocation, mirroring the helper the PesaFlow front end exposes to other
// scripts.
package debounce

import (
	"sync"
	"time"
)

// Debounced wraps a callback so repeated calls within the wait window
// collapse to one trailing call carrying the arguments of the last call.
type Debounced[T any] struct {
	wait  time.Duration
	fn    func(T)
	clock Clock

	mu    sync.Mutex
	timer Timer
}

// Clock abstracts timer creation so tests can drive time deterministically.
type Clock interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is the subset of *time.Timer the debouncer needs.
type Timer interface {
	Stop() bool
}

type wallClock struct{}

func (wallClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// New builds a trailing-edge debouncer around fn.
func New[T any](wait time.Duration, fn func(T)) *Debounced[T] {
	return NewWithClock(wait, fn, wallClock{})
}

// NewWithClock builds a debouncer using the provided clock.
func NewWithClock[T any](wait time.Duration, fn func(T), clock Clock) *Debounced[T] {
	return &Debounced[T]{wait: wait, fn: fn, clock: clock}
}

// Call schedules fn to run wait after the most recent Call, replacing any
// pending invocation and its arguments.
func (d *Debounced[T]) Call(arg T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	// A timer that already started firing when it was replaced must not
	// clear the replacement's handle, or Stop could no longer cancel it.
	var scheduled Timer
	scheduled = d.clock.AfterFunc(d.wait, func() {
		d.mu.Lock()
		if d.timer == scheduled {
			d.timer = nil
		}
		d.mu.Unlock()
		d.fn(arg)
	})
	d.timer = scheduled
}

// Stop cancels any pending invocation.
func (d *Debounced[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
