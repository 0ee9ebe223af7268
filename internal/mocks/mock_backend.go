package mocks

import (
	"context"

	"jobfire/internal/models"
)

// MockBackend is a mock implementation of scheduler.Backend for testing.
type MockBackend struct {
	ScheduleOneOffFunc func(ctx context.Context, job *models.ScheduledJob) error
	ScheduleCronFunc   func(ctx context.Context, job *models.ScheduledJob) error
	RemoveJobFunc      func(ctx context.Context, jobID int64) error
}

func (m *MockBackend) ScheduleOneOff(ctx context.Context, job *models.ScheduledJob) error {
	if m.ScheduleOneOffFunc != nil {
		return m.ScheduleOneOffFunc(ctx, job)
	}
	return nil
}

func (m *MockBackend) ScheduleCron(ctx context.Context, job *models.ScheduledJob) error {
	if m.ScheduleCronFunc != nil {
		return m.ScheduleCronFunc(ctx, job)
	}
	return nil
}

func (m *MockBackend) RemoveJob(ctx context.Context, jobID int64) error {
	if m.RemoveJobFunc != nil {
		return m.RemoveJobFunc(ctx, jobID)
	}
	return nil
}
