package queue

import (
	"context"
	"time"
)

// Invocation is the payload a trigger delivers to the execution runner.
// Attempt is 0 for the first run of a trigger occurrence and increments on
// each retry re-enqueue.
type Invocation struct {
	JobID   int64 `json:"job_id"`
	Attempt int   `json:"attempt"`
}

// Dispatch is the execution target invocations are delivered to.
type Dispatch func(ctx context.Context, inv Invocation)

// TaskQueue is the contract consumed by the scheduler backends. Delivery is
// at-least-once: the runner must tolerate duplicate invocations for the same
// logical trigger occurrence.
type TaskQueue interface {
	// ScheduleAt arranges a single delivery of inv at the given instant.
	ScheduleAt(ctx context.Context, inv Invocation, at time.Time) error

	// ScheduleRecurring registers a recurring delivery under a name.
	// Registering the same name again replaces the existing registration.
	ScheduleRecurring(ctx context.Context, name string, inv Invocation, expression string) error

	// CancelRecurring removes the named registration. Removing a name that
	// was never registered is a no-op, not an error.
	CancelRecurring(ctx context.Context, name string) error
}
