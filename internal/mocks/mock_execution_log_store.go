package mocks

import (
	"context"
	"time"

	"jobfire/internal/models"
	"jobfire/internal/state"
)

// MockExecutionLogStore is a mock implementation of store.ExecutionLogStore for testing.
type MockExecutionLogStore struct {
	AppendFunc    func(ctx context.Context, jobID int64, startedAt time.Time) (int64, error)
	FinishFunc    func(ctx context.Context, logID int64, status state.JobStatus, result, errMsg *string, finishedAt time.Time) error
	ListByJobFunc func(ctx context.Context, jobID int64, page, pageSize int) (*models.PaginationResult[models.ExecutionLog], error)
	CloseFunc     func() error
}

func (m *MockExecutionLogStore) Append(ctx context.Context, jobID int64, startedAt time.Time) (int64, error) {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, jobID, startedAt)
	}
	return 1, nil
}

func (m *MockExecutionLogStore) Finish(ctx context.Context, logID int64, status state.JobStatus, result, errMsg *string, finishedAt time.Time) error {
	if m.FinishFunc != nil {
		return m.FinishFunc(ctx, logID, status, result, errMsg, finishedAt)
	}
	return nil
}

func (m *MockExecutionLogStore) ListByJob(ctx context.Context, jobID int64, page, pageSize int) (*models.PaginationResult[models.ExecutionLog], error) {
	if m.ListByJobFunc != nil {
		return m.ListByJobFunc(ctx, jobID, page, pageSize)
	}
	return &models.PaginationResult[models.ExecutionLog]{Items: []models.ExecutionLog{}}, nil
}

func (m *MockExecutionLogStore) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}
