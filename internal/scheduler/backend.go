package scheduler

import (
	"context"
	"fmt"

	"jobfire/internal/constants"
	"jobfire/internal/models"
)

// Backend registers and removes triggers for jobs against a scheduling
// substrate. Two interchangeable implementations exist: the ephemeral one
// keeps registrations in the task queue's memory, the persistent one writes
// durable trigger rows. The variant is chosen at wiring time.
type Backend interface {
	// ScheduleOneOff arranges a single invocation at the job's one-off run
	// time. A past or unset time is a warning-level no-op.
	ScheduleOneOff(ctx context.Context, job *models.ScheduledJob) error

	// ScheduleCron registers the job's cron expression under its derived
	// trigger name. Re-registration replaces; it never duplicates.
	ScheduleCron(ctx context.Context, job *models.ScheduledJob) error

	// RemoveJob deregisters any trigger for the job id. Safe to call when
	// no trigger exists.
	RemoveJob(ctx context.Context, jobID int64) error
}

// TriggerName derives the idempotency key a job's triggers register under.
func TriggerName(jobID int64) string {
	return fmt.Sprintf("%s%d", constants.TriggerNamePrefix, jobID)
}
