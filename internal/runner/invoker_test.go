package runner

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobfire/internal/handler"
	"jobfire/internal/mocks"
	"jobfire/internal/models"
	"jobfire/internal/queue"
)

func TestInvoker_Dispatch_ReenqueuesRetry(t *testing.T) {
	job := activeJob(10)
	jobs := &mocks.MockJobStore{
		FindByIDFunc: func(ctx context.Context, jobID int64) (*models.ScheduledJob, error) {
			return job, nil
		},
	}

	registry := handler.NewRegistry()
	require.NoError(t, registry.Register("math.add", func(args []any, kwargs map[string]any) (any, error) {
		return nil, errors.New("transient")
	}))

	var scheduled []queue.Invocation
	taskQueue := &mocks.MockTaskQueue{
		ScheduleAtFunc: func(ctx context.Context, inv queue.Invocation, at time.Time) error {
			scheduled = append(scheduled, inv)
			return nil
		},
	}

	r := newTestRunner(jobs, &mocks.MockExecutionLogStore{}, registry)
	inv := NewInvoker(r, taskQueue)

	inv.Dispatch(context.Background(), queue.Invocation{JobID: 10, Attempt: 0})

	require.Len(t, scheduled, 1)
	assert.Equal(t, int64(10), scheduled[0].JobID)
	assert.Equal(t, 1, scheduled[0].Attempt)
}

func TestInvoker_Dispatch_NoReenqueueOnSuccess(t *testing.T) {
	job := activeJob(11)
	jobs := &mocks.MockJobStore{
		FindByIDFunc: func(ctx context.Context, jobID int64) (*models.ScheduledJob, error) {
			return job, nil
		},
	}

	registry := handler.NewRegistry()
	require.NoError(t, registry.Register("math.add", addHandler))

	var scheduled bool
	taskQueue := &mocks.MockTaskQueue{
		ScheduleAtFunc: func(ctx context.Context, inv queue.Invocation, at time.Time) error {
			scheduled = true
			return nil
		},
	}

	r := newTestRunner(jobs, &mocks.MockExecutionLogStore{}, registry)
	inv := NewInvoker(r, taskQueue)

	inv.Dispatch(context.Background(), queue.Invocation{JobID: 11})
	assert.False(t, scheduled)
}

// A job with max_retries=2 runs exactly three times before going terminal.
func TestInvoker_RetryBound(t *testing.T) {
	job := &models.ScheduledJob{
		ID:             12,
		TaskPath:       "math.add",
		Args:           json.RawMessage(`[1]`),
		CronExpression: "* * * * *",
		IsActive:       true,
		MaxRetries:     2,
	}
	jobs := &mocks.MockJobStore{
		FindByIDFunc: func(ctx context.Context, jobID int64) (*models.ScheduledJob, error) {
			return job, nil
		},
	}

	var attempts atomic.Int32
	registry := handler.NewRegistry()
	require.NoError(t, registry.Register("math.add", func(args []any, kwargs map[string]any) (any, error) {
		attempts.Add(1)
		return nil, errors.New("never succeeds")
	}))

	r := newTestRunner(jobs, &mocks.MockExecutionLogStore{}, registry)

	var invoker *Invoker
	var reenqueues atomic.Int32
	taskQueue := &mocks.MockTaskQueue{
		ScheduleAtFunc: func(ctx context.Context, inv queue.Invocation, at time.Time) error {
			reenqueues.Add(1)
			invoker.Dispatch(ctx, inv)
			return nil
		},
	}
	invoker = NewInvoker(r, taskQueue)

	invoker.Dispatch(context.Background(), queue.Invocation{JobID: 12, Attempt: 0})

	assert.Equal(t, int32(3), attempts.Load())
	assert.Equal(t, int32(2), reenqueues.Load())
}

func TestInvoker_Dispatch_SwallowsSchedulingError(t *testing.T) {
	job := activeJob(13)
	jobs := &mocks.MockJobStore{
		FindByIDFunc: func(ctx context.Context, jobID int64) (*models.ScheduledJob, error) {
			return job, nil
		},
	}

	registry := handler.NewRegistry()
	require.NoError(t, registry.Register("math.add", func(args []any, kwargs map[string]any) (any, error) {
		return nil, errors.New("transient")
	}))

	taskQueue := &mocks.MockTaskQueue{
		ScheduleAtFunc: func(ctx context.Context, inv queue.Invocation, at time.Time) error {
			return errors.New("queue unavailable")
		},
	}

	r := newTestRunner(jobs, &mocks.MockExecutionLogStore{}, registry)
	invoker := NewInvoker(r, taskQueue)

	// Must not panic or propagate.
	invoker.Dispatch(context.Background(), queue.Invocation{JobID: 13})
}
