package config

// BackendDriver selects how trigger registrations are held.
type BackendDriver int

const (
	// Ephemeral keeps registrations in the task queue's memory; they are
	// rebuilt by replaying active jobs at startup.
	Ephemeral BackendDriver = iota + 1
	// Persistent writes registrations to a durable trigger table polled by
	// the dispatch loop.
	Persistent
)

func (d BackendDriver) String() string {
	switch d {
	case Ephemeral:
		return "ephemeral"
	case Persistent:
		return "persistent"
	}
	return "unknown"
}

type StorageDriver int

const (
	Postgres StorageDriver = iota + 1
)

// String converts the StorageDriver enum to a human-readable string.
func (d StorageDriver) String() string {
	switch d {
	case Postgres:
		return "postgres"
	}
	return "unknown"
}

type MessageQueueDriver int

const (
	RabbitMQ MessageQueueDriver = iota + 1
)

func (d MessageQueueDriver) String() string {
	switch d {
	case RabbitMQ:
		return "rabbitmq"
	}
	return "unknown"
}
