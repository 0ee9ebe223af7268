package parser

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// spec accepts the classic 5-field grammar (minute hour dom month dow).
// Descriptors like "@daily" are rejected on purpose: trigger rows persist the
// five components individually.
var spec = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Parse compiles a 5-field cron expression into a schedule.
func Parse(expr string) (cron.Schedule, error) {
	if len(strings.Fields(expr)) != 5 {
		return nil, fmt.Errorf("invalid cron expression: %q", expr)
	}
	schedule, err := spec.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}
	return schedule, nil
}

// Validate reports whether expr parses under the 5-field grammar.
func Validate(expr string) error {
	_, err := Parse(expr)
	return err
}

// NextRun returns the first time after 'from' the expression fires.
func NextRun(expr string, from time.Time) (time.Time, error) {
	schedule, err := Parse(expr)
	if err != nil {
		return time.Time{}, err
	}
	return schedule.Next(from), nil
}

// Fields splits a valid expression into its five components.
func Fields(expr string) (minute, hour, dayOfMonth, month, dayOfWeek string, err error) {
	if err = Validate(expr); err != nil {
		return "", "", "", "", "", err
	}
	parts := strings.Fields(expr)
	return parts[0], parts[1], parts[2], parts[3], parts[4], nil
}
