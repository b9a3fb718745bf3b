package mapping

import (
	"fmt"
	"math"

	"github.com/thalib/oranum/cmd/oranum/internal/config"
	"github.com/thalib/oranum/cmd/oranum/internal/constants"
	"github.com/thalib/oranum/cmd/oranum/internal/decimal"
	apperrors "github.com/thalib/oranum/cmd/oranum/internal/errors"
	"github.com/thalib/oranum/cmd/oranum/internal/numeric"
)

// ColumnMapping is the resolved representation of one column.
type ColumnMapping struct {
	Column Column
	Type   HostType
	Target numeric.Target
	Policy numeric.Policy
}

// Read converts a value of the column. Errors carry the column name; a
// ConversionInexact error fails the column the same way exceeds-limits FAIL
// does.
func (m ColumnMapping) Read(d decimal.Decimal) (numeric.Value, error) {
	v, err := numeric.Convert(d, m.Target, m.Policy)
	if err != nil {
		return numeric.Value{}, fmt.Errorf("column %s: %w", m.Column.Name, err)
	}
	return v, nil
}

// Resolver maps columns under one Config. It holds no mutable state and is
// safe for concurrent use.
type Resolver struct {
	cfg    *config.Config
	policy numeric.Policy
}

// NewResolver creates a resolver for cfg.
func NewResolver(cfg *config.Config) *Resolver {
	return &Resolver{cfg: cfg, policy: numeric.PolicyFor(cfg)}
}

// Resolve maps col. ok is false when the column is skipped because its type
// is unsupported and the strategy is IGNORE.
func (r *Resolver) Resolve(col Column) (m ColumnMapping, ok bool, err error) {
	if !IsNumeric(col.DataType) {
		return ColumnMapping{}, false, apperrors.NewUnsupportedTypeError(col.Name, col.DataType)
	}

	if isFloating(col.DataType) {
		return r.double(col, nil), true, nil
	}

	scale := normalizedScale(col.Scale)
	unconstrained := col.Precision == nil || *col.Precision <= 0 || scale == nil

	switch r.numberType(scale, unconstrained) {
	case config.NumberTypeDouble:
		return r.double(col, scale), true, nil
	case config.NumberTypeInteger:
		return r.mapping(col, BigintType, numeric.IntegerTarget()), true, nil
	}

	if unconstrained {
		return r.unconstrainedDecimal(col, scale)
	}
	return r.constrainedDecimal(col, *col.Precision, *scale)
}

func normalizedScale(scale *int) *int {
	if scale == nil || *scale == constants.OracleUnspecifiedScale {
		return nil
	}
	return scale
}

// numberType picks the host type family. An explicit zero-scale override wins
// over the null-scale override and the default type.
func (r *Resolver) numberType(scale *int, unconstrained bool) config.NumberType {
	if scale != nil && *scale == 0 && r.cfg.NumberZeroScaleType() != config.NumberTypeUnset {
		return r.cfg.NumberZeroScaleType()
	}
	if unconstrained {
		if r.cfg.NumberNullScaleType() != config.NumberTypeUnset {
			return r.cfg.NumberNullScaleType()
		}
		return r.cfg.NumberTypeDefault()
	}
	return config.NumberTypeDecimal
}

func (r *Resolver) double(col Column, scale *int) ColumnMapping {
	s := constants.UndefinedScale
	switch {
	case r.cfg.HasDoubleDefaultScale():
		s = r.cfg.DoubleDefaultScale()
	case scale != nil && *scale >= 0:
		s = *scale
	}
	return r.mapping(col, DoubleType, numeric.FloatTarget(s))
}

// defaultScale returns the configured scale for a decimal of the maximum
// precision, if any.
func (r *Resolver) defaultScale() (int, bool) {
	if r.cfg.HasDecimalDefaultScale() {
		return r.cfg.DecimalDefaultScale(), true
	}
	if r.cfg.HasRatioDefaultScale() {
		return int(math.Round(r.cfg.RatioDefaultScale() * constants.MaxDecimalPrecision)), true
	}
	return 0, false
}

func (r *Resolver) unconstrainedDecimal(col Column, scale *int) (ColumnMapping, bool, error) {
	s, ok := r.defaultScale()
	if !ok {
		if scale == nil {
			return r.unsupported(col)
		}
		s = min(max(*scale, 0), constants.MaxDecimalPrecision)
	}
	p := constants.MaxDecimalPrecision
	return r.mapping(col, DecimalType(p, s), numeric.FixedTarget(p, s)), true, nil
}

func (r *Resolver) constrainedDecimal(col Column, precision, scale int) (ColumnMapping, bool, error) {
	p, s := precision, scale
	if s < 0 {
		p, s = p-s, 0
	}
	if s > p {
		p = s
	}

	if p <= constants.MaxDecimalPrecision {
		return r.mapping(col, DecimalType(p, s), numeric.FixedTarget(p, s)), true, nil
	}

	switch r.cfg.NumberExceedsLimits() {
	case config.ExceedsFail:
		return ColumnMapping{}, false, apperrors.NewExceedsLimitsError(
			fmt.Sprintf("column %s: precision %d exceeds the maximum of %d", col.Name, p, constants.MaxDecimalPrecision)).
			WithDetails(map[string]any{"column": col.Name, "precision": p, "scale": s})
	case config.ExceedsConvertToVarchar:
		return r.mapping(col, VarcharType, numeric.TextTarget()), true, nil
	}

	rounded, ok := r.defaultScale()
	if !ok {
		rounded = max(min(s, constants.MaxDecimalPrecision-(p-s)), 0)
	}
	return r.mapping(col, DecimalType(constants.MaxDecimalPrecision, rounded),
		numeric.FixedTarget(constants.MaxDecimalPrecision, rounded)), true, nil
}

func (r *Resolver) unsupported(col Column) (ColumnMapping, bool, error) {
	switch r.cfg.UnsupportedTypeStrategy() {
	case config.UnsupportedFail:
		return ColumnMapping{}, false, apperrors.NewUnsupportedTypeError(col.Name, col.String())
	case config.UnsupportedConvertToVarchar:
		return r.mapping(col, VarcharType, numeric.TextTarget()), true, nil
	default:
		return ColumnMapping{}, false, nil
	}
}

func (r *Resolver) mapping(col Column, t HostType, target numeric.Target) ColumnMapping {
	return ColumnMapping{Column: col, Type: t, Target: target, Policy: r.policy}
}
