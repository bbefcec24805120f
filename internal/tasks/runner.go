package tasks

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Runner executes fire-and-forget side effects (notifications, emails) off the
// request path. Task failures are logged and never propagated to the caller
// that enqueued them.
type Runner struct {
	queue chan task
	done  chan struct{}
}

type task struct {
	name string
	fn   func(ctx context.Context) error
}

// NewRunner starts a runner with a single worker goroutine.
func NewRunner(buffer int) *Runner {
	r := &Runner{
		queue: make(chan task, buffer),
		done:  make(chan struct{}),
	}
	go r.loop()
	return r
}

func (r *Runner) loop() {
	defer close(r.done)
	for t := range r.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := t.fn(ctx); err != nil {
			log.Warn().Str("task", t.name).Err(err).Msg("Background task failed")
		}
		cancel()
	}
}

// Enqueue schedules fn; if the queue is full the task runs inline so the
// side effect is never silently dropped.
func (r *Runner) Enqueue(name string, fn func(ctx context.Context) error) {
	select {
	case r.queue <- task{name: name, fn: fn}:
	default:
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := fn(ctx); err != nil {
			log.Warn().Str("task", name).Err(err).Msg("Background task failed")
		}
	}
}

// Close drains the queue and stops the worker.
func (r *Runner) Close() {
	close(r.queue)
	<-r.done
}
