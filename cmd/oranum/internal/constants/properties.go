package constants

// Catalog property names accepted by the connector configuration.
// Used in: config/load.go
const (
	PropAutoReconnect           = "oracle.auto-reconnect"
	PropMaxReconnects           = "oracle.max-reconnects"
	PropConnectionTimeout       = "oracle.connection-timeout"
	PropUnsupportedTypeStrategy = "unsupported-type.handling-strategy"
	PropSynonymsEnabled         = "oracle.synonyms.enabled"
	PropNumberExceedsLimits     = "oracle.number.exceeds-limits"
	PropNumberDefaultType       = "oracle.number.default-type"
	PropNumberRoundMode         = "oracle.number.round-mode"
	PropNumberZeroScaleType     = "oracle.number.type.zero-scale-type"
	PropNumberNullScaleType     = "oracle.number.type.null-scale-type"
	PropRatioDefaultScale       = "oracle.number.default-scale.ratio"
	PropDecimalDefaultScale     = "oracle.number.default-scale.decimal"
	PropDoubleDefaultScale      = "oracle.number.default-scale.double"
)

// PropertyOrder is the order in which properties are applied to a builder.
var PropertyOrder = []string{
	PropAutoReconnect,
	PropMaxReconnects,
	PropConnectionTimeout,
	PropUnsupportedTypeStrategy,
	PropSynonymsEnabled,
	PropNumberExceedsLimits,
	PropNumberDefaultType,
	PropNumberRoundMode,
	PropNumberZeroScaleType,
	PropNumberNullScaleType,
	PropDoubleDefaultScale,
	PropRatioDefaultScale,
	PropDecimalDefaultScale,
}
