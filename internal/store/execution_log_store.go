package store

import (
	"context"
	"time"

	"jobfire/internal/models"
	"jobfire/internal/state"
)

// ExecutionLogStore appends the per-attempt audit rows.
type ExecutionLogStore interface {
	// Append opens a running log row at invocation time and returns its id.
	Append(ctx context.Context, jobID int64, startedAt time.Time) (int64, error)

	// Finish closes the row with the attempt's terminal outcome.
	Finish(ctx context.Context, logID int64, status state.JobStatus, result, errMsg *string, finishedAt time.Time) error

	ListByJob(ctx context.Context, jobID int64, page, pageSize int) (*models.PaginationResult[models.ExecutionLog], error)

	Close() error
}
