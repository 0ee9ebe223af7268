package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"jobfire/internal/constants"
	"jobfire/internal/errs"
	"jobfire/internal/models"
	"jobfire/internal/parser"
	"jobfire/internal/queue"
	"jobfire/internal/store"
)

// PersistentBackend writes cron registrations as durable trigger rows read
// by the dispatch loop, so recurring schedules survive restarts without any
// replay. One-off runs stay task-queue-native: they are a single delayed
// delivery and do not need a durable row of their own.
type PersistentBackend struct {
	triggers store.TriggerStore
	queue    queue.TaskQueue
}

func NewPersistentBackend(triggers store.TriggerStore, taskQueue queue.TaskQueue) *PersistentBackend {
	return &PersistentBackend{
		triggers: triggers,
		queue:    taskQueue,
	}
}

func (b *PersistentBackend) ScheduleOneOff(ctx context.Context, job *models.ScheduledJob) error {
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

func (b *PersistentBackend) ScheduleCron(ctx context.Context, job *models.ScheduledJob) error {
	minute, hour, dom, month, dow, err := parser.Fields(job.CronExpression)
	if err != nil {
		return &errs.ScheduleRegistrationError{JobID: job.ID, Err: err}
	}

	now := time.Now()
	next, err := parser.NextRun(job.CronExpression, now)
	if err != nil {
		return &errs.ScheduleRegistrationError{JobID: job.ID, Err: err}
	}

	payload, err := json.Marshal([]int64{job.ID})
	if err != nil {
		return &errs.ScheduleRegistrationError{JobID: job.ID, Err: fmt.Errorf("marshal payload: %w", err)}
	}

	trigger := &models.PeriodicTrigger{
		Name:       TriggerName(job.ID),
		Minute:     minute,
		Hour:       hour,
		DayOfMonth: dom,
		Month:      month,
		DayOfWeek:  dow,
		Target:     constants.RunJobTask,
		Payload:    payload,
		Enabled:    job.IsActive,
		Expires:    job.EndTime,
		NextFireAt: next,
	}

	if err := b.triggers.Upsert(ctx, trigger); err != nil {
		return &errs.ScheduleRegistrationError{JobID: job.ID, Err: err}
	}
	log.Printf("scheduler: cron job %d registered as %s", job.ID, trigger.Name)
	return nil
}

func (b *PersistentBackend) RemoveJob(ctx context.Context, jobID int64) error {
	if err := b.triggers.Remove(ctx, TriggerName(jobID)); err != nil {
		return &errs.ScheduleRegistrationError{JobID: jobID, Err: err}
	}
	return nil
}
