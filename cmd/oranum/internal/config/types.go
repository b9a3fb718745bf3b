package config

import (
	"strings"

	"github.com/thalib/oranum/cmd/oranum/internal/constants"
	apperrors "github.com/thalib/oranum/cmd/oranum/internal/errors"
)

// UnsupportedTypeStrategy decides what happens to a column whose type cannot
// be mapped.
type UnsupportedTypeStrategy string

const (
	UnsupportedIgnore           UnsupportedTypeStrategy = "IGNORE"
	UnsupportedFail             UnsupportedTypeStrategy = "FAIL"
	UnsupportedConvertToVarchar UnsupportedTypeStrategy = "CONVERT_TO_VARCHAR"
)

var unsupportedTypeStrategies = []UnsupportedTypeStrategy{
	UnsupportedIgnore,
	UnsupportedFail,
	UnsupportedConvertToVarchar,
}

// ParseUnsupportedTypeStrategy parses a strategy name. Matching is case-sensitive.
func ParseUnsupportedTypeStrategy(s string) (UnsupportedTypeStrategy, error) {
	for _, v := range unsupportedTypeStrategies {
		if string(v) == s {
			return v, nil
		}
	}
	return "", apperrors.NewInvalidInputError(constants.PropUnsupportedTypeStrategy, s,
		"must be one of: "+join(unsupportedTypeStrategies))
}

// ExceedsLimitsMode decides what happens to a NUMBER whose precision or scale
// does not fit the host decimal type.
type ExceedsLimitsMode string

const (
	ExceedsRound            ExceedsLimitsMode = "ROUND"
	ExceedsFail             ExceedsLimitsMode = "FAIL"
	ExceedsConvertToVarchar ExceedsLimitsMode = "CONVERT_TO_VARCHAR"
)

var exceedsLimitsModes = []ExceedsLimitsMode{
	ExceedsRound,
	ExceedsFail,
	ExceedsConvertToVarchar,
}

// ParseExceedsLimitsMode parses a mode name. Matching is case-sensitive.
func ParseExceedsLimitsMode(s string) (ExceedsLimitsMode, error) {
	for _, v := range exceedsLimitsModes {
		if string(v) == s {
			return v, nil
		}
	}
	return "", apperrors.NewInvalidInputError(constants.PropNumberExceedsLimits, s,
		"must be one of: "+join(exceedsLimitsModes))
}

// NumberType is the host type family a NUMBER column is mapped to.
type NumberType string

const (
	// NumberTypeUnset means "no override, use the default handling".
	NumberTypeUnset   NumberType = ""
	NumberTypeDecimal NumberType = "DECIMAL"
	NumberTypeDouble  NumberType = "DOUBLE"
	NumberTypeInteger NumberType = "INTEGER"
)

// Types allowed for oracle.number.default-type.
var defaultNumberTypes = []NumberType{
	NumberTypeDecimal,
	NumberTypeDouble,
}

// Types allowed for the zero-scale and null-scale overrides, besides unset.
var overrideNumberTypes = []NumberType{
	NumberTypeDecimal,
	NumberTypeDouble,
	NumberTypeInteger,
}

// ParseDefaultNumberType parses the value of oracle.number.default-type.
func ParseDefaultNumberType(s string) (NumberType, error) {
	for _, v := range defaultNumberTypes {
		if string(v) == s {
			return v, nil
		}
	}
	return "", apperrors.NewInvalidInputError(constants.PropNumberDefaultType, s,
		"must be one of: "+join(defaultNumberTypes))
}

// ParseNumberTypeOverride parses a zero-scale or null-scale override. An
// empty string is accepted and means unset.
func ParseNumberTypeOverride(property, s string) (NumberType, error) {
	if s == "" {
		return NumberTypeUnset, nil
	}
	for _, v := range overrideNumberTypes {
		if string(v) == s {
			return v, nil
		}
	}
	return "", apperrors.NewInvalidInputError(property, s,
		"must be empty or one of: "+join(overrideNumberTypes))
}

func join[T ~string](values []T) string {
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = string(v)
	}
	return strings.Join(names, ", ")
}
