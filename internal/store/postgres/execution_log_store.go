package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"math"
	"time"

	"jobfire/internal/models"
	"jobfire/internal/state"
)

type PostgresExecutionLogStore struct {
	db *sql.DB
}

func NewPostgresExecutionLogStore(db *sql.DB) *PostgresExecutionLogStore {
	return &PostgresExecutionLogStore{db: db}
}

func (s *PostgresExecutionLogStore) Append(ctx context.Context, jobID int64, startedAt time.Time) (int64, error) {
	query := `
		INSERT INTO jobfire_schema.execution_logs (job_id, started_at, status)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var logID int64
	err := s.db.QueryRowContext(ctx, query, jobID, startedAt, state.StatusRunning).Scan(&logID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert execution log: %w", err)
	}
	return logID, nil
}

func (s *PostgresExecutionLogStore) Finish(ctx context.Context, logID int64, status state.JobStatus, result, errMsg *string, finishedAt time.Time) error {
	query := `
		UPDATE jobfire_schema.execution_logs
		SET status = $1, result = $2, error_message = $3, finished_at = $4
		WHERE id = $5
	`
	_, err := s.db.ExecContext(ctx, query, status, result, errMsg, finishedAt, logID)
	return err
}

func (s *PostgresExecutionLogStore) ListByJob(ctx context.Context, jobID int64, page, pageSize int) (*models.PaginationResult[models.ExecutionLog], error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize

	countQuery := `SELECT COUNT(*) FROM jobfire_schema.execution_logs WHERE job_id = $1`
	selectQuery := `
		SELECT id, job_id, started_at, finished_at, status, result, error_message
		FROM jobfire_schema.execution_logs
		WHERE job_id = $1
		ORDER BY started_at DESC
		LIMIT $2 OFFSET $3`

	var totalItems int
	if err := s.db.QueryRowContext(ctx, countQuery, jobID).Scan(&totalItems); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, selectQuery, jobID, pageSize, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.ExecutionLog
	for rows.Next() {
		var entry models.ExecutionLog
		err := rows.Scan(
			&entry.ID, &entry.JobID, &entry.StartedAt, &entry.FinishedAt,
			&entry.Status, &entry.Result, &entry.ErrorMessage,
		)
		if err != nil {
			log.Println("scan error:", err)
			continue
		}
		logs = append(logs, entry)
	}

	totalPages := int(math.Ceil(float64(totalItems) / float64(pageSize)))
	return &models.PaginationResult[models.ExecutionLog]{
		Items:           logs,
		TotalItems:      totalItems,
		Page:            page,
		PageSize:        pageSize,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}, nil
}

func (s *PostgresExecutionLogStore) Close() error {
	return s.db.Close()
}
