package state

type JobStatus string

const (
	StatusPending   JobStatus = "pending"
	StatusScheduled JobStatus = "scheduled"
	StatusRunning   JobStatus = "running"
	StatusSuccess   JobStatus = "success"
	StatusFailed    JobStatus = "failed"
)

func (s JobStatus) String() string {
	return string(s)
}

var AllStatuses = []JobStatus{
	StatusPending,
	StatusScheduled,
	StatusRunning,
	StatusSuccess,
	StatusFailed,
}

type Transition struct {
	From JobStatus
	To   JobStatus
}

// A job's persisted status reflects its most recent attempt, so terminal
// statuses transition back to running when a recurring trigger fires again.
var ValidTransitions = []Transition{
	{From: StatusPending, To: StatusScheduled},
	{From: StatusPending, To: StatusRunning},
	{From: StatusScheduled, To: StatusRunning},
	{From: StatusRunning, To: StatusSuccess},
	{From: StatusRunning, To: StatusFailed},
	{From: StatusSuccess, To: StatusRunning},
	{From: StatusFailed, To: StatusRunning},
}

func IsValidTransition(from, to JobStatus) bool {
	for _, t := range ValidTransitions {
		if t.From == from && t.To == to {
			return true
		}
	}
	return false
}
