package state

import (
	"testing"
)

func TestJobStatus_String(t *testing.T) {
	tests := []struct {
		name     string
		status   JobStatus
		expected string
	}{
		{
			name:     "Pending status",
			status:   StatusPending,
			expected: "pending",
		},
		{
			name:     "Scheduled status",
			status:   StatusScheduled,
			expected: "scheduled",
		},
		{
			name:     "Running status",
			status:   StatusRunning,
			expected: "running",
		},
		{
			name:     "Success status",
			status:   StatusSuccess,
			expected: "success",
		},
		{
			name:     "Failed status",
			status:   StatusFailed,
			expected: "failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.status.String()
			if result != tt.expected {
				t.Errorf("String() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestIsValidTransition(t *testing.T) {
	tests := []struct {
		name     string
		from     JobStatus
		to       JobStatus
		expected bool
	}{
		{
			name:     "Valid: Pending to Scheduled",
			from:     StatusPending,
			to:       StatusScheduled,
			expected: true,
		},
		{
			name:     "Valid: Pending to Running",
			from:     StatusPending,
			to:       StatusRunning,
			expected: true,
		},
		{
			name:     "Valid: Scheduled to Running",
			from:     StatusScheduled,
			to:       StatusRunning,
			expected: true,
		},
		{
			name:     "Valid: Running to Success",
			from:     StatusRunning,
			to:       StatusSuccess,
			expected: true,
		},
		{
			name:     "Valid: Running to Failed",
			from:     StatusRunning,
			to:       StatusFailed,
			expected: true,
		},
		{
			name:     "Valid: Success to Running (recurring refire)",
			from:     StatusSuccess,
			to:       StatusRunning,
			expected: true,
		},
		{
			name:     "Valid: Failed to Running (retry)",
			from:     StatusFailed,
			to:       StatusRunning,
			expected: true,
		},
		{
			name:     "Invalid: Pending to Success",
			from:     StatusPending,
			to:       StatusSuccess,
			expected: false,
		},
		{
			name:     "Invalid: Success to Failed",
			from:     StatusSuccess,
			to:       StatusFailed,
			expected: false,
		},
		{
			name:     "Invalid: Scheduled to Success",
			from:     StatusScheduled,
			to:       StatusSuccess,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsValidTransition(tt.from, tt.to)
			if result != tt.expected {
				t.Errorf("IsValidTransition() = %v, want %v", result, tt.expected)
			}
		})
	}
}
