package constants

// Regular expression patterns for validation.
const (
	// OracleIdentifierPattern is the regex pattern for unquoted Oracle object names.
	// Pattern: Must start with a letter, followed by letters, digits, '#', '$' or '_'.
	// Used in: database/inspector.go
	// Purpose: Owner and table names are bound as parameters, but are rejected
	// early when they could never name a dictionary object
	OracleIdentifierPattern = `^[a-zA-Z][a-zA-Z0-9#$_]*$`

	// MaxIdentifierLength is the longest Oracle identifier (12.2 and later).
	// Used in: database/inspector.go
	MaxIdentifierLength = 128
)
