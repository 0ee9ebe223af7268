package errs

import (
	"errors"
	"fmt"
)

// ErrJobNotFound is returned by stores when a job id resolves to no row.
var ErrJobNotFound = errors.New("job not found")

// ErrRetryBudgetExhausted signals that a failing attempt has no retries left.
var ErrRetryBudgetExhausted = errors.New("retry budget exhausted")

// ValidationError accumulates the reasons a write or config was rejected.
type ValidationError struct {
	Errors []error `json:"errors"`
}

func (v *ValidationError) Add(err error) {
	v.Errors = append(v.Errors, err)
}

func (v *ValidationError) HasError() bool {
	return len(v.Errors) > 0
}

func (v *ValidationError) Error() string {
	if len(v.Errors) == 0 {
		return ""
	}
	return fmt.Sprintf("%v", errors.Join(v.Errors...))
}

// TargetNotFoundError means a task path could not be resolved to a handler.
// It is terminal: a bad reference will not fix itself, so it is never retried.
type TargetNotFoundError struct {
	TaskPath string
}

func (e *TargetNotFoundError) Error() string {
	return fmt.Sprintf("handler for '%s' not found", e.TaskPath)
}

// ScheduleRegistrationError wraps a cron parse failure or backend I/O failure
// during trigger registration or removal. Callers log it and keep going so a
// scheduling failure for one job never blocks others.
type ScheduleRegistrationError struct {
	JobID int64
	Err   error
}

func (e *ScheduleRegistrationError) Error() string {
	return fmt.Sprintf("schedule registration for job %d failed: %v", e.JobID, e.Err)
}

func (e *ScheduleRegistrationError) Unwrap() error {
	return e.Err
}
