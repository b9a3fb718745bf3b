package constants

// Numeric limits of the source (Oracle) and host type systems.
const (
	// MaxDecimalPrecision is the largest precision the host decimal type can hold.
	// Used in: mapping/resolver.go, config/config.go, cli/commands.go
	// Default: 38 digits (decimal(38, s))
	MaxDecimalPrecision = 38

	// UndefinedScale marks a default scale that was not configured.
	// Used in: config/config.go, numeric/converter.go, mapping/resolver.go
	UndefinedScale = -1

	// OracleUnspecifiedScale is the scale the Oracle drivers report for a NUMBER
	// declared without precision or scale. The resolver treats it as NULL.
	// Used in: mapping/resolver.go
	OracleUnspecifiedScale = -127
)
