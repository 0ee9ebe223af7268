package runner

import (
	"context"
	"log"
	"time"

	"jobfire/internal/models"
	"jobfire/internal/queue"
)

// Invoker adapts the runner to the task queue's Dispatch signature and
// turns retry outcomes into re-enqueued invocations.
type Invoker struct {
	runner *Runner
	queue  queue.TaskQueue
}

func NewInvoker(r *Runner, taskQueue queue.TaskQueue) *Invoker {
	return &Invoker{
		runner: r,
		queue:  taskQueue,
	}
}

func (i *Invoker) Dispatch(ctx context.Context, inv queue.Invocation) {
	outcome := i.runner.Execute(ctx, inv)
	if outcome.Kind != models.OutcomeRetry {
		return
	}

	next := queue.Invocation{JobID: inv.JobID, Attempt: inv.Attempt + 1}
	at := time.Now().Add(outcome.Delay)
	if err := i.queue.ScheduleAt(ctx, next, at); err != nil {
		log.Printf("Invoker: failed to schedule retry for job %d: %v", inv.JobID, err)
	}
}
