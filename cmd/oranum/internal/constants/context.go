package constants

// Context and log field keys.
const (
	// ContextKeyConnectorID is the context key and log field for the connector instance ID.
	// Used in: logging/logger.go, connector/connector.go
	ContextKeyConnectorID = "connector_id"
)
