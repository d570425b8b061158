// Package simulate provides the one-shot delayed completion used to stand in
// for payment processing and authentication round-trips. The delay is
// cancellable: re-triggering an action or tearing down the session aborts
// the pending completion, so two completions can never race.
package simulate

import (
	"context"
	"time"
)

// Task is a pending one-shot completion.
type Task struct {
	cancel context.CancelFunc
	done   chan struct{}
	fired  bool
}

// After schedules fn to run once after delay. Cancelling the task or the
// parent context before the delay elapses prevents fn from running at all.
func After(ctx context.Context, delay time.Duration, fn func()) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(t.done)
		defer cancel()

		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-timer.C:
			t.fired = true
			fn()
		case <-ctx.Done():
		}
	}()

	return t
}

// Cancel aborts the pending completion. Safe to call more than once and
// after the task has already completed.
func (t *Task) Cancel() {
	t.cancel()
}

// Done is closed once the task has either completed or been cancelled.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Fired reports whether fn ran. Only meaningful after Done is closed.
func (t *Task) Fired() bool {
	select {
	case <-t.done:
		return t.fired
	default:
		return false
	}
}
