package constants

import "time"

// Timeout and duration constants used throughout the application.
const (
	// ConnectTimeout is the maximum time allowed for establishing the initial
	// database connection, including the liveness ping.
	// Used in: cmd/veil/main.go
	// Default: 10 seconds
	ConnectTimeout = 10 * time.Second

	// QueryTimeout is the default per-query time limit when the configuration
	// does not override it.
	// Used in: config/config.go, cmd/veil/main.go
	// Default: 30 seconds
	QueryTimeout = 30 * time.Second

	// SlowQueryThreshold is the duration threshold for logging slow database
	// queries.
	// Used in: logging/logger.go
	// Default: 500 milliseconds
	SlowQueryThreshold = 500 * time.Millisecond
)
