package store

import (
	"context"
	"time"

	"jobfire/internal/models"
	"jobfire/internal/state"
)

// JobStore is the durable home of ScheduledJob rows. Every write validates
// the definition first; a violation rejects the write with no partial state.
type JobStore interface {
	// Create validates and inserts a job, returning its id.
	Create(ctx context.Context, job *models.ScheduledJob) (int64, error)

	// Update validates and rewrites the job's definition fields.
	Update(ctx context.Context, job *models.ScheduledJob) error

	// Delete removes the job; its execution logs cascade away with it.
	Delete(ctx context.Context, jobID int64) error

	// FindByID returns errs.ErrJobNotFound when the id resolves to no row.
	FindByID(ctx context.Context, jobID int64) (*models.ScheduledJob, error)

	// ListActive returns all jobs with is_active = true, used to rebuild
	// ephemeral trigger registrations after a restart.
	ListActive(ctx context.Context) ([]models.ScheduledJob, error)

	GetAll(ctx context.Context, page, pageSize int, status state.JobStatus) (*models.PaginationResult[models.ScheduledJob], error)

	CountByStatus(ctx context.Context) (map[state.JobStatus]int, error)

	// MarkRunning persists status=running and last_run_at before the
	// executable runs, so a crash mid-execution is observable.
	MarkRunning(ctx context.Context, jobID int64, startedAt time.Time) error

	// MarkSuccess stores the truncated result of the latest attempt.
	MarkSuccess(ctx context.Context, jobID int64, result string, ranAt time.Time) error

	// MarkFailure stores the truncated error message of the latest attempt.
	MarkFailure(ctx context.Context, jobID int64, errMsg string) error

	// UpdateNextRunTime persists the display-only next_run_at.
	UpdateNextRunTime(ctx context.Context, jobID int64, next time.Time) error

	SetActive(ctx context.Context, jobID int64, active bool) error

	Close() error
}
