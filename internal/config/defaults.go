package config

import "time"

const (
	DefaultWorkerCount      = 10
	DefaultDispatchInterval = 5  // seconds
	DefaultBatchSize        = 50 // triggers fetched per page

	DefaultRetryBackoff = 60 * time.Second

	DefaultBackendDriver = Ephemeral
	DefaultStorageDriver = Postgres
)
