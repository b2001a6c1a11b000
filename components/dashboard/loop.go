package dashboard

import (
	"context"
	"sync"
	"time"
)

// Clock supplies the loop's notion of now.
type Clock interface {
	Now() time.Time
}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

// Timer is a delayed task scheduled on a Loop.
type Timer struct {
	loop     *Loop
	deadline time.Time
	task     func()
	stopped  bool
}

// Stop cancels the timer if it has not fired yet.
func (t *Timer) Stop() {
	t.loop.mu.Lock()
	t.stopped = true
	t.loop.mu.Unlock()
}

// Loop is a single-dispatcher task queue. Every piece of dashboard state is
// mutated only from tasks running on the loop, and each task runs to
// completion before the next one starts, so handlers can check-then-set
// shared flags without locks.
type Loop struct {
	clock Clock
	spawn func(func())

	mu     sync.Mutex
	queue  []func()
	timers []*Timer
	wake   chan struct{}
}

// LoopOptions configures a Loop. Zero values select the wall clock and
// goroutine spawning.
type LoopOptions struct {
	Clock Clock
	Spawn func(func())
}

// NewLoop builds a loop.
func NewLoop(opts LoopOptions) *Loop {
	if opts.Clock == nil {
		opts.Clock = wallClock{}
	}
	if opts.Spawn == nil {
		opts.Spawn = func(fn func()) { go fn() }
	}
	return &Loop{
		clock: opts.Clock,
		spawn: opts.Spawn,
		wake:  make(chan struct{}, 1),
	}
}

// Post enqueues a task. Safe to call from any goroutine.
func (l *Loop) Post(task func()) {
	if task == nil {
		return
	}
	l.mu.Lock()
	l.queue = append(l.queue, task)
	l.mu.Unlock()
	l.signal()
}

// PostDelayed schedules a task to run once the given duration has elapsed.
func (l *Loop) PostDelayed(d time.Duration, task func()) *Timer {
	t := &Timer{loop: l, deadline: l.clock.Now().Add(d), task: task}
	l.mu.Lock()
	l.timers = append(l.timers, t)
	l.mu.Unlock()
	l.signal()
	return t
}

// Async runs work off the loop and, if work returns a completion, posts it
// back onto the loop. A nil completion means the work has nothing to apply.
func (l *Loop) Async(work func() func()) {
	l.spawn(func() {
		if done := work(); done != nil {
			l.Post(done)
		}
	})
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Dispatch runs queued tasks and due timers until nothing is runnable,
// returning the number of tasks executed.
func (l *Loop) Dispatch() int {
	ran := 0
	for {
		task := l.next()
		if task == nil {
			return ran
		}
		task()
		ran++
	}
}

func (l *Loop) next() func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) > 0 {
		task := l.queue[0]
		l.queue = l.queue[1:]
		return task
	}
	now := l.clock.Now()
	kept := l.timers[:0]
	var due func()
	for _, t := range l.timers {
		if t.stopped {
			continue
		}
		if due == nil && !t.deadline.After(now) {
			due = t.task
			continue
		}
		kept = append(kept, t)
	}
	l.timers = kept
	return due
}

func (l *Loop) nextDeadline() (time.Duration, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var next time.Time
	found := false
	for _, t := range l.timers {
		if t.stopped {
			continue
		}
		if !found || t.deadline.Before(next) {
			next = t.deadline
			found = true
		}
	}
	if !found {
		return 0, false
	}
	return next.Sub(l.clock.Now()), true
}

// Run dispatches tasks until ctx is cancelled, sleeping between bursts.
func (l *Loop) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		l.Dispatch()

		var timerC <-chan time.Time
		if wait, ok := l.nextDeadline(); ok {
			if wait <= 0 {
				continue
			}
			timerC = time.After(wait)
		}
		select {
		case <-ctx.Done():
			return
		case <-l.wake:
		case <-timerC:
		}
	}
}

// ManualClock is a settable clock for deterministic tests.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock starts a manual clock at the given instant.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the clock's current instant.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
