package constants

const (
	MigrationLock = iota
	DispatchLock
	StartDispatcherLock
	RehydrateLock
)

var Locks = []int{
	MigrationLock,
	DispatchLock,
	StartDispatcherLock,
	RehydrateLock,
}

const (
	// MaxOutputLength bounds persisted result and error payloads.
	MaxOutputLength = 2048

	// TriggerNamePrefix is the idempotency-key prefix for trigger registrations.
	TriggerNamePrefix = "scheduler.job."

	// RunJobTask is the execution target registered triggers point at.
	RunJobTask = "scheduler.run_job"
)
