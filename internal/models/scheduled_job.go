package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"jobfire/internal/constants"
	"jobfire/internal/errs"
	"jobfire/internal/parser"
	"jobfire/internal/state"
)

// ScheduledJob is the job definition and its live state. The job row is the
// single source of truth; trigger registrations only carry the job id.
type ScheduledJob struct {
	ID          int64
	Name        string
	Description string

	// TaskPath references the executable unit of work, e.g. "notify.send_email".
	TaskPath string

	// Args is a JSON list of positional arguments, Kwargs a JSON object of
	// named arguments. Both are passed verbatim to the handler.
	Args   json.RawMessage
	Kwargs json.RawMessage

	// Exactly one of OneOffRunTime and CronExpression must be set.
	OneOffRunTime  *time.Time
	CronExpression string

	// EndTime gates execution: nothing fires after it, even when a cron
	// schedule would.
	EndTime *time.Time

	MaxRetries int

	Status   state.JobStatus
	IsActive bool

	LastRunAt *time.Time
	NextRunAt *time.Time

	Result       *string
	ErrorMessage *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate enforces the job definition invariants. Every store write goes
// through it; a violation rejects the write with no partial state.
func (j *ScheduledJob) Validate() error {
	vErr := &errs.ValidationError{}

	if j.TaskPath == "" {
		vErr.Add(errors.New("task path is required"))
	}

	hasOneOff := j.OneOffRunTime != nil
	hasCron := j.CronExpression != ""
	switch {
	case hasOneOff && hasCron:
		vErr.Add(errors.New("only one of one_off_run_time and cron_expression may be set"))
	case !hasOneOff && !hasCron:
		vErr.Add(errors.New("either one_off_run_time or cron_expression must be set"))
	}

	if hasCron {
		if err := parser.Validate(j.CronExpression); err != nil {
			vErr.Add(err)
		}
	}

	if j.MaxRetries < 0 {
		vErr.Add(errors.New("max retries must be non-negative"))
	}

	if vErr.HasError() {
		return vErr
	}
	return nil
}

// Expired reports whether the job's end time has passed.
func (j *ScheduledJob) Expired(now time.Time) bool {
	return j.EndTime != nil && now.After(*j.EndTime)
}

// DecodeArgs unmarshals the stored payloads into the shapes handlers take.
func (j *ScheduledJob) DecodeArgs() ([]any, map[string]any, error) {
	var args []any
	if len(j.Args) > 0 {
		if err := json.Unmarshal(j.Args, &args); err != nil {
			return nil, nil, fmt.Errorf("invalid args payload: %w", err)
		}
	}
	kwargs := map[string]any{}
	if len(j.Kwargs) > 0 {
		if err := json.Unmarshal(j.Kwargs, &kwargs); err != nil {
			return nil, nil, fmt.Errorf("invalid kwargs payload: %w", err)
		}
	}
	return args, kwargs, nil
}

// TruncateOutput bounds result and error payloads before persistence.
func TruncateOutput(s string) string {
	runes := []rune(s)
	if len(runes) <= constants.MaxOutputLength {
		return s
	}
	return string(runes[:constants.MaxOutputLength])
}
