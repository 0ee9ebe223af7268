package models

import (
	"time"

	"jobfire/internal/state"
)

// ExecutionLog is one append-only record of a single execution attempt.
// Logs cascade away with their owning job.
type ExecutionLog struct {
	ID           int64
	JobID        int64
	StartedAt    time.Time
	FinishedAt   *time.Time
	Status       state.JobStatus
	Result       *string
	ErrorMessage *string
}

// Duration derives the attempt's wall-clock duration once finished.
func (l *ExecutionLog) Duration() time.Duration {
	if l.FinishedAt == nil {
		return 0
	}
	return l.FinishedAt.Sub(l.StartedAt)
}
