package models

import "time"

type OutcomeKind int

const (
	// OutcomeSuccess: the attempt ran and succeeded.
	OutcomeSuccess OutcomeKind = iota + 1
	// OutcomeSkipped: the job was inactive, expired or deleted; nothing ran.
	OutcomeSkipped
	// OutcomeRetry: the attempt failed and a re-invocation should be enqueued.
	OutcomeRetry
	// OutcomeTerminal: the attempt failed with no further action.
	OutcomeTerminal
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeRetry:
		return "retry"
	case OutcomeTerminal:
		return "terminal"
	}
	return "unknown"
}

// Outcome is the explicit result of one runner invocation. The task-queue
// adapter interprets it to decide whether to re-enqueue; retries are never
// driven by panics or sentinel control flow.
type Outcome struct {
	Kind         OutcomeKind
	Result       string
	Delay        time.Duration
	AttemptsLeft int
	Err          error
}

func Success(result string) Outcome {
	return Outcome{Kind: OutcomeSuccess, Result: result}
}

func Skipped() Outcome {
	return Outcome{Kind: OutcomeSkipped}
}

func Retry(delay time.Duration, attemptsLeft int, err error) Outcome {
	return Outcome{Kind: OutcomeRetry, Delay: delay, AttemptsLeft: attemptsLeft, Err: err}
}

func Terminal(err error) Outcome {
	return Outcome{Kind: OutcomeTerminal, Err: err}
}
