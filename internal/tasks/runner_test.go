package tasks

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunner_RunsEnqueuedTasks(t *testing.T) {
	r := NewRunner(4)
	var ran int32
	for i := 0; i < 3; i++ {
		r.Enqueue("count", func(ctx context.Context) error {
			atomic.AddInt32(&ran, 1)
			return nil
		})
	}
	r.Close()
	assert.Equal(t, int32(3), atomic.LoadInt32(&ran))
}

func TestRunner_FullQueueRunsInline(t *testing.T) {
	r := NewRunner(0)
	var ran int32
	r.Enqueue("inline", func(ctx context.Context) error {
		atomic.AddInt32(&ran, 1)
		return nil
	})
	// Unbuffered queue with a busy worker may hand off or run inline; either
	// way the task executes before Close returns.
	r.Close()
	assert.Equal(t, int32(1), atomic.LoadInt32(&ran))
}
