package constants

import "time"

// Timeout and duration constants for the Oracle connection.
const (
	// DefaultConnectionTimeout bounds a single connect-and-ping attempt.
	// Used in: config/config.go, database/driver.go
	// Default: 10 seconds (oracle.connection-timeout)
	DefaultConnectionTimeout = 10 * time.Second

	// ReconnectBackoff is the delay added per failed attempt before reconnecting.
	// Used in: database/driver.go
	// Default: 250 milliseconds, growing linearly with the attempt number
	ReconnectBackoff = 250 * time.Millisecond

	// MetadataQueryTimeout bounds dictionary view queries (ALL_TABLES, ALL_TAB_COLUMNS).
	// Used in: database/inspector.go
	// Default: 30 seconds
	MetadataQueryTimeout = 30 * time.Second
)

// SlowQueryThreshold is the duration after which a dictionary query is logged as slow.
// Used in: logging/logger.go, database/inspector.go
// Default: 500 milliseconds
const SlowQueryThreshold = 500 * time.Millisecond
