package constants

// Database error detection patterns.
// These patterns classify driver errors by matching their messages.
// Used in: database/driver.go to decide whether a failed connect is retried
var (
	// ConnectionErrorPatterns contains error message patterns that indicate
	// network or listener problems worth a reconnect attempt.
	ConnectionErrorPatterns = []string{
		"connection refused",
		"connection reset",
		"no such host",
		"timeout",
		"deadline exceeded",
		"ORA-03113", // end-of-file on communication channel
		"ORA-03114", // not connected to ORACLE
		"ORA-12170", // TNS:Connect timeout occurred
		"ORA-12541", // TNS:no listener
		"ORA-12514", // TNS:listener does not currently know of service
	}

	// CredentialErrorPatterns contains error message patterns that no retry can fix.
	CredentialErrorPatterns = []string{
		"ORA-01017", // invalid username/password
		"ORA-28000", // account is locked
	}
)
