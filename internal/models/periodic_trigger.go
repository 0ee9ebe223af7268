package models

import (
	"encoding/json"
	"strings"
	"time"
)

// PeriodicTrigger is a durable cron registration row used by the persistent
// scheduler backend. It carries only what is needed to re-resolve the job at
// fire time, never the job content itself.
type PeriodicTrigger struct {
	// Name is the derived trigger name, unique per job ("scheduler.job.<id>").
	Name string

	Minute     string
	Hour       string
	DayOfMonth string
	Month      string
	DayOfWeek  string

	// Target is the registered execution task the dispatcher invokes.
	Target string

	// Payload is the serialized argument list, i.e. [jobID].
	Payload json.RawMessage

	// Enabled mirrors the job's is_active flag.
	Enabled bool

	// Expires mirrors the job's end_time.
	Expires *time.Time

	LastFiredAt *time.Time
	NextFireAt  time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Expression joins the stored components back into a 5-field cron string.
func (t *PeriodicTrigger) Expression() string {
	return strings.Join([]string{t.Minute, t.Hour, t.DayOfMonth, t.Month, t.DayOfWeek}, " ")
}

// Expired reports whether the trigger's expiry has passed.
func (t *PeriodicTrigger) Expired(now time.Time) bool {
	return t.Expires != nil && now.After(*t.Expires)
}
