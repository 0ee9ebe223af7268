package scheduler

import (
	"context"
	"log"
	"time"

	"jobfire/internal/errs"
	"jobfire/internal/models"
	"jobfire/internal/queue"
)

// EphemeralBackend registers triggers directly with the task queue's
// in-memory tables. Registrations are lost on restart and are rebuilt by
// replaying all active jobs through the job service.
type EphemeralBackend struct {
	queue queue.TaskQueue
}

func NewEphemeralBackend(taskQueue queue.TaskQueue) *EphemeralBackend {
	return &EphemeralBackend{queue: taskQueue}
}

func (b *EphemeralBackend) ScheduleOneOff(ctx context.Context, job *models.ScheduledJob) error {
	eta := job.OneOffRunTime
	if eta == nil || !eta.After(time.Now()) {
		log.Printf("scheduler: invalid or past one-off run time for job %d: %v", job.ID, eta)
		return nil
	}

	inv := queue.Invocation{JobID: job.ID}
	if err := b.queue.ScheduleAt(ctx, inv, *eta); err != nil {
		return &errs.ScheduleRegistrationError{JobID: job.ID, Err: err}
	}
	log.Printf("scheduler: one-off job %d scheduled at %v", job.ID, eta)
	return nil
}

func (b *EphemeralBackend) ScheduleCron(ctx context.Context, job *models.ScheduledJob) error {
	name := TriggerName(job.ID)
	inv := queue.Invocation{JobID: job.ID}

	if err := b.queue.ScheduleRecurring(ctx, name, inv, job.CronExpression); err != nil {
		return &errs.ScheduleRegistrationError{JobID: job.ID, Err: err}
	}
	log.Printf("scheduler: cron job %d registered with expression %q", job.ID, job.CronExpression)
	return nil
}

func (b *EphemeralBackend) RemoveJob(ctx context.Context, jobID int64) error {
	// One-shot timers have no handle in the task queue contract; a stray
	// one-off invocation is discarded by the runner's active/expiry gate.
	if err := b.queue.CancelRecurring(ctx, TriggerName(jobID)); err != nil {
		return &errs.ScheduleRegistrationError{JobID: jobID, Err: err}
	}
	return nil
}
