package mocks

import (
	"context"
	"time"

	"jobfire/internal/models"
	"jobfire/internal/state"
)

// MockJobStore is a mock implementation of store.JobStore for testing.
type MockJobStore struct {
	CreateFunc            func(ctx context.Context, job *models.ScheduledJob) (int64, error)
	UpdateFunc            func(ctx context.Context, job *models.ScheduledJob) error
	DeleteFunc            func(ctx context.Context, jobID int64) error
	FindByIDFunc          func(ctx context.Context, jobID int64) (*models.ScheduledJob, error)
	ListActiveFunc        func(ctx context.Context) ([]models.ScheduledJob, error)
	GetAllFunc            func(ctx context.Context, page, pageSize int, status state.JobStatus) (*models.PaginationResult[models.ScheduledJob], error)
	CountByStatusFunc     func(ctx context.Context) (map[state.JobStatus]int, error)
	MarkRunningFunc       func(ctx context.Context, jobID int64, startedAt time.Time) error
	MarkSuccessFunc       func(ctx context.Context, jobID int64, result string, ranAt time.Time) error
	MarkFailureFunc       func(ctx context.Context, jobID int64, errMsg string) error
	UpdateNextRunTimeFunc func(ctx context.Context, jobID int64, next time.Time) error
	SetActiveFunc         func(ctx context.Context, jobID int64, active bool) error
	CloseFunc             func() error
}

func (m *MockJobStore) Create(ctx context.Context, job *models.ScheduledJob) (int64, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, job)
	}
	return 1, nil
}

func (m *MockJobStore) Update(ctx context.Context, job *models.ScheduledJob) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, job)
	}
	return nil
}

func (m *MockJobStore) Delete(ctx context.Context, jobID int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, jobID)
	}
	return nil
}

func (m *MockJobStore) FindByID(ctx context.Context, jobID int64) (*models.ScheduledJob, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, jobID)
	}
	return &models.ScheduledJob{ID: jobID}, nil
}

func (m *MockJobStore) ListActive(ctx context.Context) ([]models.ScheduledJob, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	return []models.ScheduledJob{}, nil
}

func (m *MockJobStore) GetAll(ctx context.Context, page, pageSize int, status state.JobStatus) (*models.PaginationResult[models.ScheduledJob], error) {
	if m.GetAllFunc != nil {
		return m.GetAllFunc(ctx, page, pageSize, status)
	}
	return &models.PaginationResult[models.ScheduledJob]{Items: []models.ScheduledJob{}}, nil
}

func (m *MockJobStore) CountByStatus(ctx context.Context) (map[state.JobStatus]int, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx)
	}
	return make(map[state.JobStatus]int), nil
}

func (m *MockJobStore) MarkRunning(ctx context.Context, jobID int64, startedAt time.Time) error {
	if m.MarkRunningFunc != nil {
		return m.MarkRunningFunc(ctx, jobID, startedAt)
	}
	return nil
}

func (m *MockJobStore) MarkSuccess(ctx context.Context, jobID int64, result string, ranAt time.Time) error {
	if m.MarkSuccessFunc != nil {
		return m.MarkSuccessFunc(ctx, jobID, result, ranAt)
	}
	return nil
}

func (m *MockJobStore) MarkFailure(ctx context.Context, jobID int64, errMsg string) error {
	if m.MarkFailureFunc != nil {
		return m.MarkFailureFunc(ctx, jobID, errMsg)
	}
	return nil
}

func (m *MockJobStore) UpdateNextRunTime(ctx context.Context, jobID int64, next time.Time) error {
	if m.UpdateNextRunTimeFunc != nil {
		return m.UpdateNextRunTimeFunc(ctx, jobID, next)
	}
	return nil
}

func (m *MockJobStore) SetActive(ctx context.Context, jobID int64, active bool) error {
	if m.SetActiveFunc != nil {
		return m.SetActiveFunc(ctx, jobID, active)
	}
	return nil
}

func (m *MockJobStore) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}
