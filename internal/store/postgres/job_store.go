package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"jobfire/internal/errs"
	"jobfire/internal/models"
	"jobfire/internal/state"
)

const jobColumns = `
	id, name, description, task_path, args, kwargs,
	one_off_run_time, cron_expression, end_time, max_retries,
	status, is_active, last_run_at, next_run_at,
	result, error_message, created_at, updated_at`

type PostgresJobStore struct {
	db *sql.DB
}

func NewPostgresJobStore(db *sql.DB) *PostgresJobStore {
	return &PostgresJobStore{db: db}
}

func (s *PostgresJobStore) Create(ctx context.Context, job *models.ScheduledJob) (int64, error) {
	if err := job.Validate(); err != nil {
		return 0, err
	}

	query := `
		INSERT INTO jobfire_schema.scheduled_jobs
			(name, description, task_path, args, kwargs,
			 one_off_run_time, cron_expression, end_time, max_retries,
			 status, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())
		RETURNING id
	`

	status := job.Status
	if status == "" {
		status = state.StatusPending
	}

	var jobID int64
	err := s.db.QueryRowContext(ctx, query,
		job.Name, job.Description, job.TaskPath, nullableJSON(job.Args), nullableJSON(job.Kwargs),
		job.OneOffRunTime, nullableString(job.CronExpression), job.EndTime, job.MaxRetries,
		status, job.IsActive,
	).Scan(&jobID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert scheduled job: %w", err)
	}

	job.ID = jobID
	job.Status = status
	return jobID, nil
}

func (s *PostgresJobStore) Update(ctx context.Context, job *models.ScheduledJob) error {
	if err := job.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE jobfire_schema.scheduled_jobs
		SET name = $1,
		    description = $2,
		    task_path = $3,
		    args = $4,
		    kwargs = $5,
		    one_off_run_time = $6,
		    cron_expression = $7,
		    end_time = $8,
		    max_retries = $9,
		    is_active = $10,
		    updated_at = now()
		WHERE id = $11
	`

	res, err := s.db.ExecContext(ctx, query,
		job.Name, job.Description, job.TaskPath, nullableJSON(job.Args), nullableJSON(job.Kwargs),
		job.OneOffRunTime, nullableString(job.CronExpression), job.EndTime, job.MaxRetries,
		job.IsActive, job.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update scheduled job: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return errs.ErrJobNotFound
	}
	return nil
}

func (s *PostgresJobStore) Delete(ctx context.Context, jobID int64) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM jobfire_schema.scheduled_jobs WHERE id = $1`, jobID)
	return err
}

func (s *PostgresJobStore) FindByID(ctx context.Context, jobID int64) (*models.ScheduledJob, error) {
	query := `SELECT` + jobColumns + `
		FROM jobfire_schema.scheduled_jobs
		WHERE id = $1`

	row := s.db.QueryRowContext(ctx, query, jobID)

	var job models.ScheduledJob
	if err := scanJob(row.Scan, &job); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (s *PostgresJobStore) ListActive(ctx context.Context) ([]models.ScheduledJob, error) {
	query := `SELECT` + jobColumns + `
		FROM jobfire_schema.scheduled_jobs
		WHERE is_active = TRUE
		ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []models.ScheduledJob
	for rows.Next() {
		var job models.ScheduledJob
		if err := scanJob(rows.Scan, &job); err != nil {
			log.Println("scan error:", err)
			continue
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (s *PostgresJobStore) GetAll(ctx context.Context, page, pageSize int, status state.JobStatus) (*models.PaginationResult[models.ScheduledJob], error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize

	var args []interface{}
	where := "TRUE"
	argIndex := 1
	if status != "" {
		where += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, status)
		argIndex++
	}

	countQuery := `SELECT COUNT(*) FROM jobfire_schema.scheduled_jobs WHERE ` + where
	selectQuery := fmt.Sprintf(`SELECT`+jobColumns+`
		FROM jobfire_schema.scheduled_jobs
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, where, argIndex, argIndex+1)

	var totalItems int
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&totalItems); err != nil {
		return nil, err
	}

	args = append(args, pageSize, offset)
	rows, err := s.db.QueryContext(ctx, selectQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []models.ScheduledJob
	for rows.Next() {
		var job models.ScheduledJob
		if err := scanJob(rows.Scan, &job); err != nil {
			log.Println("scan error:", err)
			continue
		}
		jobs = append(jobs, job)
	}

	totalPages := int(math.Ceil(float64(totalItems) / float64(pageSize)))
	return &models.PaginationResult[models.ScheduledJob]{
		Items:           jobs,
		TotalItems:      totalItems,
		Page:            page,
		PageSize:        pageSize,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}, nil
}

func (s *PostgresJobStore) CountByStatus(ctx context.Context) (map[state.JobStatus]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT status, COUNT(*) AS count
		FROM jobfire_schema.scheduled_jobs
		GROUP BY status
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[state.JobStatus]int)
	for rows.Next() {
		var status state.JobStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		result[status] = count
	}

	for _, status := range state.AllStatuses {
		if _, ok := result[status]; !ok {
			result[status] = 0
		}
	}
	return result, rows.Err()
}

func (s *PostgresJobStore) MarkRunning(ctx context.Context, jobID int64, startedAt time.Time) error {
	query := `
		UPDATE jobfire_schema.scheduled_jobs
		SET status = $1, last_run_at = $2, updated_at = now()
		WHERE id = $3
	`
	_, err := s.db.ExecContext(ctx, query, state.StatusRunning, startedAt, jobID)
	return err
}

func (s *PostgresJobStore) MarkSuccess(ctx context.Context, jobID int64, result string, ranAt time.Time) error {
	query := `
		UPDATE jobfire_schema.scheduled_jobs
		SET status = $1,
		    result = $2,
		    error_message = NULL,
		    last_run_at = $3,
		    updated_at = now()
		WHERE id = $4
	`
	_, err := s.db.ExecContext(ctx, query, state.StatusSuccess, result, ranAt, jobID)
	return err
}

func (s *PostgresJobStore) MarkFailure(ctx context.Context, jobID int64, errMsg string) error {
	query := `
		UPDATE jobfire_schema.scheduled_jobs
		SET status = $1, error_message = $2, updated_at = now()
		WHERE id = $3
	`
	_, err := s.db.ExecContext(ctx, query, state.StatusFailed, errMsg, jobID)
	return err
}

func (s *PostgresJobStore) UpdateNextRunTime(ctx context.Context, jobID int64, next time.Time) error {
	// A still-pending job is promoted to scheduled; a job that already ran
	// keeps its last attempt's status.
	query := `
		UPDATE jobfire_schema.scheduled_jobs
		SET next_run_at = $1,
		    status = CASE WHEN status = $2 THEN $3 ELSE status END,
		    updated_at = now()
		WHERE id = $4
	`
	_, err := s.db.ExecContext(ctx, query, next, state.StatusPending, state.StatusScheduled, jobID)
	return err
}

func (s *PostgresJobStore) SetActive(ctx context.Context, jobID int64, active bool) error {
	query := `
		UPDATE jobfire_schema.scheduled_jobs
		SET is_active = $1, updated_at = now()
		WHERE id = $2
	`
	_, err := s.db.ExecContext(ctx, query, active, jobID)
	return err
}

func (s *PostgresJobStore) Close() error {
	return s.db.Close()
}

func scanJob(scan func(dest ...any) error, job *models.ScheduledJob) error {
	var cronExpr sql.NullString
	err := scan(
		&job.ID, &job.Name, &job.Description, &job.TaskPath, &job.Args, &job.Kwargs,
		&job.OneOffRunTime, &cronExpr, &job.EndTime, &job.MaxRetries,
		&job.Status, &job.IsActive, &job.LastRunAt, &job.NextRunAt,
		&job.Result, &job.ErrorMessage, &job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		return err
	}
	job.CronExpression = cronExpr.String
	return nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableJSON(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return raw
}
