package store

import (
	"context"
	"time"

	"jobfire/internal/models"
)

// TriggerStore persists cron trigger registrations for the persistent
// scheduler backend. Rows survive restarts; the dispatch loop reads them
// directly, so no replay is needed in that mode.
type TriggerStore interface {
	// Upsert inserts or replaces the registration keyed by its unique name.
	Upsert(ctx context.Context, trigger *models.PeriodicTrigger) error

	// Remove deletes the named registration; absent names are a no-op.
	Remove(ctx context.Context, name string) error

	// FetchDue pages through enabled, unexpired triggers with
	// next_fire_at <= now.
	FetchDue(ctx context.Context, now time.Time, page, pageSize int) (*models.PaginationResult[models.PeriodicTrigger], error)

	// MarkFired advances the trigger after a dispatch.
	MarkFired(ctx context.Context, name string, firedAt, nextFireAt time.Time) error

	SetEnabled(ctx context.Context, name string, enabled bool) error

	Close() error
}
