package service

import (
	"context"
	"log"
	"sync"
	"time"

	"jobfire/internal/models"
	"jobfire/internal/parser"
	"jobfire/internal/scheduler"
	"jobfire/internal/store"
)

// JobService keeps the job table and the scheduling backend consistent.
// Refreshing a job is remove-then-register under a per-job mutex, so
// concurrent refreshes of the same job cannot interleave and leave a stale
// trigger behind.
type JobService struct {
	store   store.JobStore
	backend scheduler.Backend

	mutexes sync.Map
}

func NewJobService(jobStore store.JobStore, backend scheduler.Backend) *JobService {
	return &JobService{
		store:   jobStore,
		backend: backend,
	}
}

func (s *JobService) jobMutex(jobID int64) *sync.Mutex {
	m, _ := s.mutexes.LoadOrStore(jobID, &sync.Mutex{})
	return m.(*sync.Mutex)
}

// RefreshJob reconciles the job's trigger registration with its current
// definition. Scheduling failures are logged, never propagated: a bad
// registration must not fail the write that triggered the refresh.
func (s *JobService) RefreshJob(ctx context.Context, job *models.ScheduledJob) {
	mu := s.jobMutex(job.ID)
	mu.Lock()
	defer mu.Unlock()

	if err := s.backend.RemoveJob(ctx, job.ID); err != nil {
		log.Printf("JobService: failed to remove trigger for job %d: %v", job.ID, err)
	}

	if !job.IsActive {
		return
	}

	now := time.Now()
	switch {
	case job.OneOffRunTime != nil:
		if !job.OneOffRunTime.After(now) {
			return
		}
		if err := s.backend.ScheduleOneOff(ctx, job); err != nil {
			log.Printf("JobService: failed to schedule one-off job %d: %v", job.ID, err)
			return
		}
		s.persistNextRun(ctx, job.ID, *job.OneOffRunTime)
	case job.CronExpression != "":
		if err := s.backend.ScheduleCron(ctx, job); err != nil {
			log.Printf("JobService: failed to schedule cron job %d: %v", job.ID, err)
			return
		}
		next, err := parser.NextRun(job.CronExpression, now)
		if err != nil {
			log.Printf("JobService: invalid cron expression %q for job %d: %v", job.CronExpression, job.ID, err)
			return
		}
		s.persistNextRun(ctx, job.ID, next)
	}
}

// UnscheduleJob drops any trigger registration for the job id, e.g. after a
// delete or deactivation.
func (s *JobService) UnscheduleJob(ctx context.Context, jobID int64) {
	mu := s.jobMutex(jobID)
	mu.Lock()
	defer mu.Unlock()

	if err := s.backend.RemoveJob(ctx, jobID); err != nil {
		log.Printf("JobService: failed to remove trigger for job %d: %v", jobID, err)
	}
}

// HandleJobSuccess records a successful attempt on the job row.
func (s *JobService) HandleJobSuccess(ctx context.Context, job *models.ScheduledJob, result string, ranAt time.Time) error {
	truncated := models.TruncateOutput(result)
	if err := s.store.MarkSuccess(ctx, job.ID, truncated, ranAt); err != nil {
		return err
	}
	job.Result = &truncated
	job.ErrorMessage = nil
	return nil
}

// HandleJobFailure records a failed attempt on the job row.
func (s *JobService) HandleJobFailure(ctx context.Context, job *models.ScheduledJob, errMsg string) error {
	truncated := models.TruncateOutput(errMsg)
	if err := s.store.MarkFailure(ctx, job.ID, truncated); err != nil {
		return err
	}
	job.ErrorMessage = &truncated
	return nil
}

// ScheduleActiveJobs replays every active job through RefreshJob. With the
// ephemeral backend this rebuilds the in-memory trigger tables after a
// restart; with the persistent backend it is an idempotent reconciliation.
func (s *JobService) ScheduleActiveJobs(ctx context.Context) (int, error) {
	jobs, err := s.store.ListActive(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for i := range jobs {
		s.RefreshJob(ctx, &jobs[i])
		count++
	}
	log.Printf("JobService: scheduled %d active jobs", count)
	return count, nil
}

func (s *JobService) persistNextRun(ctx context.Context, jobID int64, next time.Time) {
	if err := s.store.UpdateNextRunTime(ctx, jobID, next); err != nil {
		log.Printf("JobService: failed to update next run time for job %d: %v", jobID, err)
	}
}
