package mocks

import (
	"context"
	"time"

	"jobfire/internal/models"
)

// MockTriggerStore is a mock implementation of store.TriggerStore for testing.
type MockTriggerStore struct {
	UpsertFunc     func(ctx context.Context, trigger *models.PeriodicTrigger) error
	RemoveFunc     func(ctx context.Context, name string) error
	FetchDueFunc   func(ctx context.Context, now time.Time, page, pageSize int) (*models.PaginationResult[models.PeriodicTrigger], error)
	MarkFiredFunc  func(ctx context.Context, name string, firedAt, nextFireAt time.Time) error
	SetEnabledFunc func(ctx context.Context, name string, enabled bool) error
	CloseFunc      func() error
}

func (m *MockTriggerStore) Upsert(ctx context.Context, trigger *models.PeriodicTrigger) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, trigger)
	}
	return nil
}

func (m *MockTriggerStore) Remove(ctx context.Context, name string) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, name)
	}
	return nil
}

func (m *MockTriggerStore) FetchDue(ctx context.Context, now time.Time, page, pageSize int) (*models.PaginationResult[models.PeriodicTrigger], error) {
	if m.FetchDueFunc != nil {
		return m.FetchDueFunc(ctx, now, page, pageSize)
	}
	return &models.PaginationResult[models.PeriodicTrigger]{Items: []models.PeriodicTrigger{}}, nil
}

func (m *MockTriggerStore) MarkFired(ctx context.Context, name string, firedAt, nextFireAt time.Time) error {
	if m.MarkFiredFunc != nil {
		return m.MarkFiredFunc(ctx, name, firedAt, nextFireAt)
	}
	return nil
}

func (m *MockTriggerStore) SetEnabled(ctx context.Context, name string, enabled bool) error {
	if m.SetEnabledFunc != nil {
		return m.SetEnabledFunc(ctx, name, enabled)
	}
	return nil
}

func (m *MockTriggerStore) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}
