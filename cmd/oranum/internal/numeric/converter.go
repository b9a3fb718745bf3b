// Package numeric converts decoded Oracle NUMBER values into the host
// representations chosen for a column: a fixed-point decimal of known
// precision and scale, a double, a 64-bit integer, or text.
//
// Every function here is pure and safe for concurrent use.
package numeric

import (
	stderrors "errors"
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/thalib/oranum/cmd/oranum/internal/config"
	"github.com/thalib/oranum/cmd/oranum/internal/constants"
	"github.com/thalib/oranum/cmd/oranum/internal/decimal"
	apperrors "github.com/thalib/oranum/cmd/oranum/internal/errors"
)

// Kind is the host representation of a converted value.
type Kind int

const (
	KindFixed Kind = iota
	KindFloat
	KindInteger
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindFixed:
		return "fixed"
	case KindFloat:
		return "float"
	case KindInteger:
		return "integer"
	case KindText:
		return "text"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Target describes the representation a value is converted to. Precision and
// Scale apply to KindFixed; Scale alone applies to KindFloat, where
// constants.UndefinedScale means no rounding before the conversion.
type Target struct {
	Kind      Kind
	Precision int
	Scale     int
}

// FixedTarget returns a fixed-point target.
func FixedTarget(precision, scale int) Target {
	return Target{Kind: KindFixed, Precision: precision, Scale: scale}
}

// FloatTarget returns a floating-point target rounded to scale first.
func FloatTarget(scale int) Target {
	return Target{Kind: KindFloat, Scale: scale}
}

// IntegerTarget returns a 64-bit integer target.
func IntegerTarget() Target {
	return Target{Kind: KindInteger}
}

// TextTarget returns a text target.
func TextTarget() Target {
	return Target{Kind: KindText, Scale: constants.UndefinedScale}
}

// Policy is the part of the configuration that governs conversions.
type Policy struct {
	RoundMode     decimal.RoundingMode
	ExceedsLimits config.ExceedsLimitsMode
}

// PolicyFor returns the conversion policy of cfg.
func PolicyFor(cfg *config.Config) Policy {
	return Policy{
		RoundMode:     cfg.NumberRoundMode(),
		ExceedsLimits: cfg.NumberExceedsLimits(),
	}
}

// Value is a converted value. Only the fields of its Kind are set.
type Value struct {
	Kind Kind

	// KindFixed: the value is Unscaled × 10^-Scale.
	Unscaled *big.Int
	Scale    int

	Float float64
	Int   int64
	Text  string
}

// Decimal returns a fixed-point value as a Decimal.
func (v Value) Decimal() decimal.Decimal {
	if v.Unscaled == nil {
		return decimal.Zero()
	}
	return decimal.FromUnscaled(v.Unscaled, v.Scale)
}

// Interface returns the Go value of the representation: a decimal.Decimal,
// float64, int64 or string.
func (v Value) Interface() any {
	switch v.Kind {
	case KindFixed:
		return v.Decimal()
	case KindFloat:
		return v.Float
	case KindInteger:
		return v.Int
	default:
		return v.Text
	}
}

func (v Value) String() string {
	switch v.Kind {
	case KindFixed:
		return v.Decimal().String()
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindInteger:
		return strconv.FormatInt(v.Int, 10)
	default:
		return v.Text
	}
}

// RoundFixed rescales d to exactly scale fractional digits with mode and
// returns it as an unscaled integer plus scale. It fails with ExceedsLimits
// when the result has more than precision digits, and with ConversionInexact
// when mode is UNNECESSARY and digits would be lost.
func RoundFixed(d decimal.Decimal, precision, scale int, mode decimal.RoundingMode) (Value, error) {
	if precision <= 0 {
		return Value{}, apperrors.NewInvalidInputError("precision", precision, "must be positive")
	}

	rescaled, err := d.Rescale(scale, mode)
	if err != nil {
		return Value{}, err
	}
	if !rescaled.IsZero() && rescaled.Precision() > precision {
		return Value{}, apperrors.NewExceedsLimitsError(
			fmt.Sprintf("value %s needs %d digits, more than precision %d", rescaled, rescaled.Precision(), precision)).
			WithDetails(map[string]any{"value": d.String(), "precision": precision, "scale": scale})
	}

	return Value{Kind: KindFixed, Unscaled: rescaled.UnscaledValue(), Scale: scale}, nil
}

// RoundFloat rescales d to scale fractional digits with mode, then returns
// the float64 nearest to the rescaled value. With constants.UndefinedScale
// the value is converted without rounding.
func RoundFloat(d decimal.Decimal, scale int, mode decimal.RoundingMode) (Value, error) {
	src := d
	if scale != constants.UndefinedScale {
		rescaled, err := d.Rescale(scale, mode)
		if err != nil {
			return Value{}, err
		}
		src = rescaled
	}

	f, err := src.Float64()
	if err != nil || math.IsInf(f, 0) {
		return Value{}, apperrors.NewExceedsLimitsError(
			fmt.Sprintf("value %s is out of range for double", d))
	}
	return Value{Kind: KindFloat, Float: f}, nil
}

// RoundInteger rounds d to an integer with mode. It fails with ExceedsLimits
// outside the int64 range.
func RoundInteger(d decimal.Decimal, mode decimal.RoundingMode) (Value, error) {
	rescaled, err := d.Rescale(0, mode)
	if err != nil {
		return Value{}, err
	}

	u := rescaled.UnscaledValue()
	if !u.IsInt64() {
		return Value{}, apperrors.NewExceedsLimitsError(
			fmt.Sprintf("value %s is out of range for bigint", d))
	}
	return Value{Kind: KindInteger, Int: u.Int64()}, nil
}

// ToText returns the canonical text of d. Every digit, including trailing
// zeros, is kept.
func ToText(d decimal.Decimal) Value {
	return Value{Kind: KindText, Text: d.String()}
}

// Convert converts d to target under policy. A value too wide for its target
// falls back to text when policy.ExceedsLimits is CONVERT_TO_VARCHAR and
// fails otherwise. ConversionInexact errors are always returned.
func Convert(d decimal.Decimal, target Target, policy Policy) (Value, error) {
	var (
		v   Value
		err error
	)

	switch target.Kind {
	case KindFixed:
		v, err = RoundFixed(d, target.Precision, target.Scale, policy.RoundMode)
	case KindFloat:
		v, err = RoundFloat(d, target.Scale, policy.RoundMode)
	case KindInteger:
		v, err = RoundInteger(d, policy.RoundMode)
	case KindText:
		return ToText(d), nil
	default:
		return Value{}, apperrors.NewInvalidInputError("target", target.Kind, "unknown target kind")
	}

	if err != nil && stderrors.Is(err, apperrors.ErrExceedsLimits) &&
		policy.ExceedsLimits == config.ExceedsConvertToVarchar {
		return ToText(d), nil
	}
	return v, err
}
