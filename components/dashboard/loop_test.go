package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLoop() (*Loop, *ManualClock) {
	clock := NewManualClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	loop := NewLoop(LoopOptions{
		Clock: clock,
		Spawn: func(fn func()) { fn() },
	})
	return loop, clock
}

func TestLoopDispatchRunsTasksInOrder(t *testing.T) {
	loop, _ := newTestLoop()

	var order []int
	loop.Post(func() { order = append(order, 1) })
	loop.Post(func() { order = append(order, 2) })
	loop.Post(func() { order = append(order, 3) })

	ran := loop.Dispatch()
	require.Equal(t, 3, ran)
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestLoopDispatchRunsTasksPostedByTasks(t *testing.T) {
	loop, _ := newTestLoop()

	var order []string
	loop.Post(func() {
		order = append(order, "outer")
		loop.Post(func() { order = append(order, "inner") })
	})

	loop.Dispatch()
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestLoopDelayedTaskFiresAfterDeadline(t *testing.T) {
	loop, clock := newTestLoop()

	fired := false
	loop.PostDelayed(5*time.Second, func() { fired = true })

	loop.Dispatch()
	assert.False(t, fired)

	clock.Advance(4 * time.Second)
	loop.Dispatch()
	assert.False(t, fired)

	clock.Advance(time.Second)
	loop.Dispatch()
	assert.True(t, fired)
}

func TestLoopStoppedTimerNeverFires(t *testing.T) {
	loop, clock := newTestLoop()

	fired := false
	timer := loop.PostDelayed(time.Second, func() { fired = true })
	timer.Stop()

	clock.Advance(time.Minute)
	loop.Dispatch()
	assert.False(t, fired)
}

func TestLoopAsyncPostsCompletion(t *testing.T) {
	loop, _ := newTestLoop()

	var applied bool
	loop.Async(func() func() {
		return func() { applied = true }
	})

	assert.False(t, applied)
	loop.Dispatch()
	assert.True(t, applied)
}

func TestLoopAsyncNilCompletionIsDropped(t *testing.T) {
	loop, _ := newTestLoop()

	loop.Async(func() func() { return nil })
	assert.Equal(t, 0, loop.Dispatch())
}

func TestLoopRunStopsOnCancel(t *testing.T) {
	loop := NewLoop(LoopOptions{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		loop.Run(ctx)
		close(done)
	}()

	ran := make(chan struct{})
	loop.Post(func() { close(ran) })
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("posted task never ran")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("run did not stop after cancel")
	}
}

func TestLoopRunFiresWallClockTimer(t *testing.T) {
	loop := NewLoop(LoopOptions{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)

	fired := make(chan struct{})
	loop.PostDelayed(10*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("delayed task never fired")
	}
}
