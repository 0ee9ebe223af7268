package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobfire/internal/constants"
)

func TestScheduledJob_Validate(t *testing.T) {
	future := time.Now().Add(time.Hour)

	tests := []struct {
		name    string
		job     ScheduledJob
		wantErr string
	}{
		{
			name: "valid one-off",
			job:  ScheduledJob{TaskPath: "math.add", OneOffRunTime: &future},
		},
		{
			name: "valid cron",
			job:  ScheduledJob{TaskPath: "math.add", CronExpression: "0 2 * * *"},
		},
		{
			name:    "both set",
			job:     ScheduledJob{TaskPath: "math.add", OneOffRunTime: &future, CronExpression: "0 2 * * *"},
			wantErr: "only one of",
		},
		{
			name:    "neither set",
			job:     ScheduledJob{TaskPath: "math.add"},
			wantErr: "either one_off_run_time or cron_expression",
		},
		{
			name:    "missing task path",
			job:     ScheduledJob{CronExpression: "0 2 * * *"},
			wantErr: "task path is required",
		},
		{
			name:    "invalid cron expression",
			job:     ScheduledJob{TaskPath: "math.add", CronExpression: "not valid"},
			wantErr: "invalid cron expression",
		},
		{
			name:    "negative max retries",
			job:     ScheduledJob{TaskPath: "math.add", CronExpression: "0 2 * * *", MaxRetries: -1},
			wantErr: "max retries",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.job.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestScheduledJob_Validate_CollectsAllErrors(t *testing.T) {
	job := ScheduledJob{MaxRetries: -2}
	err := job.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "task path is required")
	assert.Contains(t, err.Error(), "either one_off_run_time or cron_expression")
	assert.Contains(t, err.Error(), "max retries")
}

func TestScheduledJob_Expired(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	assert.False(t, (&ScheduledJob{}).Expired(now))
	assert.False(t, (&ScheduledJob{EndTime: &future}).Expired(now))
	assert.True(t, (&ScheduledJob{EndTime: &past}).Expired(now))
}

func TestScheduledJob_DecodeArgs(t *testing.T) {
	job := ScheduledJob{
		Args:   json.RawMessage(`[4, 6]`),
		Kwargs: json.RawMessage(`{"region": "us-east-1"}`),
	}

	args, kwargs, err := job.DecodeArgs()
	require.NoError(t, err)
	require.Len(t, args, 2)
	assert.Equal(t, 4.0, args[0])
	assert.Equal(t, 6.0, args[1])
	assert.Equal(t, "us-east-1", kwargs["region"])
}

func TestScheduledJob_DecodeArgs_Empty(t *testing.T) {
	job := ScheduledJob{}
	args, kwargs, err := job.DecodeArgs()
	require.NoError(t, err)
	assert.Empty(t, args)
	assert.Empty(t, kwargs)
}

func TestScheduledJob_DecodeArgs_Malformed(t *testing.T) {
	job := ScheduledJob{Args: json.RawMessage(`{not json`)}
	_, _, err := job.DecodeArgs()
	assert.Error(t, err)
}

func TestTruncateOutput(t *testing.T) {
	short := "everything fine"
	assert.Equal(t, short, TruncateOutput(short))

	long := strings.Repeat("x", constants.MaxOutputLength+100)
	truncated := TruncateOutput(long)
	assert.Len(t, truncated, constants.MaxOutputLength)

	// Rune boundary, not byte boundary.
	wide := strings.Repeat("é", constants.MaxOutputLength+1)
	assert.Equal(t, constants.MaxOutputLength, len([]rune(TruncateOutput(wide))))
}
