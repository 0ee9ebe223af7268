package runner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"jobfire/internal/errs"
	"jobfire/internal/handler"
	"jobfire/internal/models"
	"jobfire/internal/queue"
	"jobfire/internal/service"
	"jobfire/internal/state"
	"jobfire/internal/store"
)

// Runner executes one invocation of a job and reports the outcome
// explicitly. It never re-enqueues by itself; the queue adapter reads the
// returned Outcome and decides.
type Runner struct {
	jobs     store.JobStore
	logs     store.ExecutionLogStore
	handlers *handler.Registry
	service  *service.JobService
	backoff  time.Duration
}

func NewRunner(jobs store.JobStore, logs store.ExecutionLogStore, handlers *handler.Registry, jobService *service.JobService, backoff time.Duration) *Runner {
	return &Runner{
		jobs:     jobs,
		logs:     logs,
		handlers: handlers,
		service:  jobService,
		backoff:  backoff,
	}
}

// Execute runs a single attempt. Duplicate or stray invocations are safe:
// the load-and-gate step discards anything referencing a deleted, inactive
// or expired job without writing a log row.
func (r *Runner) Execute(ctx context.Context, inv queue.Invocation) models.Outcome {
	job, err := r.jobs.FindByID(ctx, inv.JobID)
	if err != nil {
		if errors.Is(err, errs.ErrJobNotFound) {
			log.Printf("Runner: job %d no longer exists, discarding invocation", inv.JobID)
		} else {
			log.Printf("Runner: failed to load job %d: %v", inv.JobID, err)
		}
		return models.Terminal(err)
	}

	now := time.Now()
	if !job.IsActive || job.Expired(now) {
		log.Printf("Runner: job %d inactive or expired, skipping", job.ID)
		return models.Skipped()
	}

	// Persist running state before the handler fires so a crash mid-run
	// leaves an observable running row rather than a stale status.
	if err := r.jobs.MarkRunning(ctx, job.ID, now); err != nil {
		log.Printf("Runner: failed to mark job %d running: %v", job.ID, err)
		return models.Terminal(err)
	}

	logID, err := r.logs.Append(ctx, job.ID, now)
	if err != nil {
		log.Printf("Runner: failed to append execution log for job %d: %v", job.ID, err)
		return models.Terminal(err)
	}

	fn, err := r.handlers.Resolve(job.TaskPath)
	if err != nil {
		// Unresolvable targets fail closed and never retry: the path will
		// not start resolving on its own.
		return r.finishTerminalFailure(ctx, job, logID, err)
	}

	args, kwargs, err := job.DecodeArgs()
	if err != nil {
		return r.finishTerminalFailure(ctx, job, logID, err)
	}

	result, err := invoke(fn, args, kwargs)
	if err != nil {
		return r.finishFailure(ctx, job, logID, inv.Attempt, err)
	}
	return r.finishSuccess(ctx, job, logID, result)
}

func (r *Runner) finishSuccess(ctx context.Context, job *models.ScheduledJob, logID int64, result string) models.Outcome {
	truncated := models.TruncateOutput(result)
	finishedAt := time.Now()

	if err := r.logs.Finish(ctx, logID, state.StatusSuccess, &truncated, nil, finishedAt); err != nil {
		log.Printf("Runner: failed to finish execution log %d: %v", logID, err)
	}
	if err := r.service.HandleJobSuccess(ctx, job, result, finishedAt); err != nil {
		log.Printf("Runner: failed to record success for job %d: %v", job.ID, err)
	}
	return models.Success(truncated)
}

func (r *Runner) finishFailure(ctx context.Context, job *models.ScheduledJob, logID int64, attempt int, execErr error) models.Outcome {
	r.recordFailure(ctx, job, logID, execErr)

	if attempt >= job.MaxRetries {
		log.Printf("Runner: job %d failed on attempt %d: %v (%v)", job.ID, attempt, execErr, errs.ErrRetryBudgetExhausted)
		return models.Terminal(execErr)
	}

	retryAt := time.Now().Add(r.backoff)
	if job.EndTime != nil && retryAt.After(*job.EndTime) {
		log.Printf("Runner: job %d retry at %v falls past end time, abandoning: %v", job.ID, retryAt, execErr)
		return models.Terminal(execErr)
	}

	attemptsLeft := job.MaxRetries - attempt
	log.Printf("Runner: job %d failed on attempt %d, retrying in %v (%d attempts left): %v", job.ID, attempt, r.backoff, attemptsLeft, execErr)
	return models.Retry(r.backoff, attemptsLeft, execErr)
}

func (r *Runner) finishTerminalFailure(ctx context.Context, job *models.ScheduledJob, logID int64, execErr error) models.Outcome {
	r.recordFailure(ctx, job, logID, execErr)
	log.Printf("Runner: job %d failed without retry: %v", job.ID, execErr)
	return models.Terminal(execErr)
}

func (r *Runner) recordFailure(ctx context.Context, job *models.ScheduledJob, logID int64, execErr error) {
	truncated := models.TruncateOutput(execErr.Error())
	if err := r.logs.Finish(ctx, logID, state.StatusFailed, nil, &truncated, time.Now()); err != nil {
		log.Printf("Runner: failed to finish execution log %d: %v", logID, err)
	}
	if err := r.service.HandleJobFailure(ctx, job, execErr.Error()); err != nil {
		log.Printf("Runner: failed to record failure for job %d: %v", job.ID, err)
	}
}

// invoke calls the handler, converting a panic into an ordinary error so a
// misbehaving handler cannot take the worker down.
func invoke(fn handler.Func, args []any, kwargs map[string]any) (result string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("handler panic: %v", rec)
		}
	}()

	ret, err := fn(args, kwargs)
	if err != nil {
		return "", err
	}
	if ret == nil {
		return "", nil
	}
	return fmt.Sprint(ret), nil
}
