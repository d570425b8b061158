package simulate_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"lumina/pkg/simulate"

	"github.com/stretchr/testify/assert"
)

func TestAfter_FiresOnceAfterDelay(t *testing.T) {
	var fired int32
	task := simulate.After(context.Background(), 5*time.Millisecond, func() {
		atomic.AddInt32(&fired, 1)
	})

	<-task.Done()
	assert.True(t, task.Fired())
	assert.Equal(t, int32(1), atomic.LoadInt32(&fired))
}

func TestAfter_CancelPreventsCompletion(t *testing.T) {
	var fired int32
	task := simulate.After(context.Background(), 50*time.Millisecond, func() {
		atomic.AddInt32(&fired, 1)
	})

	task.Cancel()
	<-task.Done()
	assert.False(t, task.Fired())

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&fired), "cancelled task never fires")

	task.Cancel() // safe to cancel again
}

func TestAfter_ParentContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	task := simulate.After(ctx, 50*time.Millisecond, func() {
		t.Error("completion ran after parent cancellation")
	})

	cancel()
	<-task.Done()
	assert.False(t, task.Fired())
}

func TestFired_FalseWhilePending(t *testing.T) {
	task := simulate.After(context.Background(), 50*time.Millisecond, func() {})
	assert.False(t, task.Fired(), "not fired before the delay elapses")
	task.Cancel()
	<-task.Done()
}
