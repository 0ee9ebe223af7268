package lock

// DistributedLockManager guards process-singleton work (migrations, the
// persistent dispatch loop) across instances sharing the same storage.
type DistributedLockManager interface {
	Acquire(lockID int) error
	Release(lockID int) error
}
