package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"math"
	"time"

	"jobfire/internal/models"
)

type PostgresTriggerStore struct {
	db *sql.DB
}

func NewPostgresTriggerStore(db *sql.DB) *PostgresTriggerStore {
	return &PostgresTriggerStore{db: db}
}

func (s *PostgresTriggerStore) Upsert(ctx context.Context, trigger *models.PeriodicTrigger) error {
	query := `
		INSERT INTO jobfire_schema.periodic_triggers
			(name, minute, hour, day_of_month, month, day_of_week,
			 target, payload, enabled, expires, next_fire_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())
		ON CONFLICT (name) DO UPDATE SET
			minute = $2,
			hour = $3,
			day_of_month = $4,
			month = $5,
			day_of_week = $6,
			target = $7,
			payload = $8,
			enabled = $9,
			expires = $10,
			next_fire_at = $11,
			updated_at = now()
	`

	_, err := s.db.ExecContext(ctx, query,
		trigger.Name, trigger.Minute, trigger.Hour, trigger.DayOfMonth, trigger.Month, trigger.DayOfWeek,
		trigger.Target, trigger.Payload, trigger.Enabled, trigger.Expires, trigger.NextFireAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert periodic trigger: %w", err)
	}
	return nil
}

func (s *PostgresTriggerStore) Remove(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM jobfire_schema.periodic_triggers WHERE name = $1`, name)
	return err
}

func (s *PostgresTriggerStore) FetchDue(ctx context.Context, now time.Time, page, pageSize int) (*models.PaginationResult[models.PeriodicTrigger], error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize

	where := `
		enabled = TRUE
		AND next_fire_at <= $1
		AND (expires IS NULL OR expires >= $1)
	`

	countQuery := `SELECT COUNT(*) FROM jobfire_schema.periodic_triggers WHERE ` + where
	selectQuery := `
		SELECT name, minute, hour, day_of_month, month, day_of_week,
		       target, payload, enabled, expires, last_fired_at, next_fire_at,
		       created_at, updated_at
		FROM jobfire_schema.periodic_triggers
		WHERE ` + where + `
		ORDER BY next_fire_at ASC
		LIMIT $2 OFFSET $3`

	var totalItems int
	if err := s.db.QueryRowContext(ctx, countQuery, now).Scan(&totalItems); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, selectQuery, now, pageSize, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var triggers []models.PeriodicTrigger
	for rows.Next() {
		var t models.PeriodicTrigger
		err := rows.Scan(
			&t.Name, &t.Minute, &t.Hour, &t.DayOfMonth, &t.Month, &t.DayOfWeek,
			&t.Target, &t.Payload, &t.Enabled, &t.Expires, &t.LastFiredAt, &t.NextFireAt,
			&t.CreatedAt, &t.UpdatedAt,
		)
		if err != nil {
			log.Println("scan error:", err)
			continue
		}
		triggers = append(triggers, t)
	}

	totalPages := int(math.Ceil(float64(totalItems) / float64(pageSize)))
	return &models.PaginationResult[models.PeriodicTrigger]{
		Items:           triggers,
		TotalItems:      totalItems,
		Page:            page,
		PageSize:        pageSize,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}, nil
}

func (s *PostgresTriggerStore) MarkFired(ctx context.Context, name string, firedAt, nextFireAt time.Time) error {
	query := `
		UPDATE jobfire_schema.periodic_triggers
		SET last_fired_at = $1, next_fire_at = $2, updated_at = now()
		WHERE name = $3
	`
	_, err := s.db.ExecContext(ctx, query, firedAt, nextFireAt, name)
	return err
}

func (s *PostgresTriggerStore) SetEnabled(ctx context.Context, name string, enabled bool) error {
	query := `
		UPDATE jobfire_schema.periodic_triggers
		SET enabled = $1, updated_at = now()
		WHERE name = $2
	`
	_, err := s.db.ExecContext(ctx, query, enabled, name)
	return err
}

func (s *PostgresTriggerStore) Close() error {
	return s.db.Close()
}
