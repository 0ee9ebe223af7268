package mocks

import (
	"context"
	"time"

	"jobfire/internal/queue"
)

// MockTaskQueue is a mock implementation of queue.TaskQueue for testing.
type MockTaskQueue struct {
	ScheduleAtFunc        func(ctx context.Context, inv queue.Invocation, at time.Time) error
	ScheduleRecurringFunc func(ctx context.Context, name string, inv queue.Invocation, expression string) error
	CancelRecurringFunc   func(ctx context.Context, name string) error
}

func (m *MockTaskQueue) ScheduleAt(ctx context.Context, inv queue.Invocation, at time.Time) error {
	if m.ScheduleAtFunc != nil {
		return m.ScheduleAtFunc(ctx, inv, at)
	}
	return nil
}

func (m *MockTaskQueue) ScheduleRecurring(ctx context.Context, name string, inv queue.Invocation, expression string) error {
	if m.ScheduleRecurringFunc != nil {
		return m.ScheduleRecurringFunc(ctx, name, inv, expression)
	}
	return nil
}

func (m *MockTaskQueue) CancelRecurring(ctx context.Context, name string) error {
	if m.CancelRecurringFunc != nil {
		return m.CancelRecurringFunc(ctx, name)
	}
	return nil
}
