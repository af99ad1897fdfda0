package constants

// Context keys for storing and retrieving values from contexts.
const (
	// ContextKeyRunID is the context key for storing the run identifier.
	// Used in: logging/logger.go
	// Purpose: correlating every log line emitted by one CLI invocation
	ContextKeyRunID = "run_id"
)
