// Package config provides the connector configuration: how NUMBER columns of
// unknown or excessive precision are typed and rounded, and the connection
// settings of the catalog. A Config is produced by a Builder, whose setters
// validate each value on write, and is immutable once built.
package config

import (
	"fmt"
	"math"
	"time"

	"github.com/thalib/oranum/cmd/oranum/internal/constants"
	"github.com/thalib/oranum/cmd/oranum/internal/decimal"
	apperrors "github.com/thalib/oranum/cmd/oranum/internal/errors"
)

const (
	// VersionMajor is the major version number
	VersionMajor = 1
	// VersionMinor is the minor version number
	VersionMinor = 4
)

// Version returns the version string in format {major}.{minor}
func Version() string {
	return fmt.Sprintf("%d.%d", VersionMajor, VersionMinor)
}

// Defaults contains all default configuration values
// centralized in one place to avoid hardcoded literals
var Defaults = struct {
	AutoReconnect           bool
	MaxReconnects           int
	ConnectionTimeout       time.Duration
	UnsupportedTypeStrategy UnsupportedTypeStrategy
	SynonymsEnabled         bool
	NumberExceedsLimits     ExceedsLimitsMode
	NumberTypeDefault       NumberType
	NumberRoundMode         decimal.RoundingMode
	NumberZeroScaleType     NumberType
	NumberNullScaleType     NumberType
	RatioDefaultScale       float64
	DecimalDefaultScale     int
	DoubleDefaultScale      int
}{
	AutoReconnect:           true,
	MaxReconnects:           3,
	ConnectionTimeout:       constants.DefaultConnectionTimeout,
	UnsupportedTypeStrategy: UnsupportedIgnore,
	SynonymsEnabled:         false,
	NumberExceedsLimits:     ExceedsRound,
	NumberTypeDefault:       NumberTypeDecimal,
	NumberRoundMode:         decimal.RoundHalfEven,
	NumberZeroScaleType:     NumberTypeUnset,
	NumberNullScaleType:     NumberTypeUnset,
	RatioDefaultScale:       constants.UndefinedScale,
	DecimalDefaultScale:     constants.UndefinedScale,
	DoubleDefaultScale:      constants.UndefinedScale,
}

type settings struct {
	autoReconnect           bool
	maxReconnects           int
	connectionTimeout       time.Duration
	unsupportedTypeStrategy UnsupportedTypeStrategy
	synonymsEnabled         bool
	numberExceedsLimits     ExceedsLimitsMode
	numberTypeDefault       NumberType
	numberRoundMode         decimal.RoundingMode
	numberZeroScaleType     NumberType
	numberNullScaleType     NumberType
	ratioDefaultScale       float64
	decimalDefaultScale     int
	doubleDefaultScale      int
}

func (s settings) ratioDefined() bool {
	return s.ratioDefaultScale != constants.UndefinedScale
}

func (s settings) decimalDefined() bool {
	return s.decimalDefaultScale != constants.UndefinedScale
}

// effectiveRoundMode fails when rounding is the declared answer to exceeded
// limits while the rounding mode forbids rounding.
func (s settings) effectiveRoundMode() (decimal.RoundingMode, error) {
	if s.numberExceedsLimits == ExceedsRound && s.numberRoundMode == decimal.RoundUnnecessary {
		return "", apperrors.NewConflictingConfigurationError(
			fmt.Sprintf("%s=%s cannot be combined with %s=%s",
				constants.PropNumberRoundMode, decimal.RoundUnnecessary,
				constants.PropNumberExceedsLimits, ExceedsRound),
			constants.PropNumberRoundMode, constants.PropNumberExceedsLimits)
	}
	return s.numberRoundMode, nil
}

func scaleConflict() error {
	return apperrors.NewConflictingConfigurationError(
		fmt.Sprintf("only one of %s and %s may be defined",
			constants.PropRatioDefaultScale, constants.PropDecimalDefaultScale),
		constants.PropRatioDefaultScale, constants.PropDecimalDefaultScale)
}

// Builder accumulates settings. Every setter validates its argument and leaves
// the builder untouched when it returns an error. A Builder is not safe for
// concurrent use.
type Builder struct {
	s settings
}

// NewBuilder returns a builder holding the defaults.
func NewBuilder() *Builder {
	return &Builder{s: settings{
		autoReconnect:           Defaults.AutoReconnect,
		maxReconnects:           Defaults.MaxReconnects,
		connectionTimeout:       Defaults.ConnectionTimeout,
		unsupportedTypeStrategy: Defaults.UnsupportedTypeStrategy,
		synonymsEnabled:         Defaults.SynonymsEnabled,
		numberExceedsLimits:     Defaults.NumberExceedsLimits,
		numberTypeDefault:       Defaults.NumberTypeDefault,
		numberRoundMode:         Defaults.NumberRoundMode,
		numberZeroScaleType:     Defaults.NumberZeroScaleType,
		numberNullScaleType:     Defaults.NumberNullScaleType,
		ratioDefaultScale:       Defaults.RatioDefaultScale,
		decimalDefaultScale:     Defaults.DecimalDefaultScale,
		doubleDefaultScale:      Defaults.DoubleDefaultScale,
	}}
}

// SetAutoReconnect enables or disables reconnecting after a failed ping.
func (b *Builder) SetAutoReconnect(enabled bool) {
	b.s.autoReconnect = enabled
}

// SetMaxReconnects sets how many extra connection attempts are made.
func (b *Builder) SetMaxReconnects(n int) error {
	if n < 0 {
		return apperrors.NewInvalidInputError(constants.PropMaxReconnects, n, "must not be negative")
	}
	b.s.maxReconnects = n
	return nil
}

// SetConnectionTimeout bounds each connection attempt. Zero disables the bound.
func (b *Builder) SetConnectionTimeout(d time.Duration) error {
	if d < 0 {
		return apperrors.NewInvalidInputError(constants.PropConnectionTimeout, d, "must not be negative")
	}
	b.s.connectionTimeout = d
	return nil
}

// SetUnsupportedTypeStrategy sets what happens to columns that cannot be mapped.
func (b *Builder) SetUnsupportedTypeStrategy(s UnsupportedTypeStrategy) error {
	v, err := ParseUnsupportedTypeStrategy(string(s))
	if err != nil {
		return err
	}
	b.s.unsupportedTypeStrategy = v
	return nil
}

// SetSynonymsEnabled enables listing and resolving synonyms.
func (b *Builder) SetSynonymsEnabled(enabled bool) {
	b.s.synonymsEnabled = enabled
}

// SetNumberExceedsLimits sets the handling of values wider than decimal(38).
func (b *Builder) SetNumberExceedsLimits(m ExceedsLimitsMode) error {
	v, err := ParseExceedsLimitsMode(string(m))
	if err != nil {
		return err
	}
	b.s.numberExceedsLimits = v
	return nil
}

// SetNumberTypeDefault sets the type of NUMBER columns declared without
// precision. Only DECIMAL and DOUBLE are accepted.
func (b *Builder) SetNumberTypeDefault(t NumberType) error {
	v, err := ParseDefaultNumberType(string(t))
	if err != nil {
		return err
	}
	b.s.numberTypeDefault = v
	return nil
}

// SetNumberRoundMode sets the rounding mode. The combination with the
// exceeds-limits mode is checked by EffectiveRoundMode and Build.
func (b *Builder) SetNumberRoundMode(m decimal.RoundingMode) error {
	v, err := decimal.ParseRoundingMode(string(m))
	if err != nil {
		return apperrors.NewInvalidInputError(constants.PropNumberRoundMode, string(m), err.Error())
	}
	b.s.numberRoundMode = v
	return nil
}

// SetNumberZeroScaleType overrides the type of NUMBER(p,0) columns. Empty clears it.
func (b *Builder) SetNumberZeroScaleType(t NumberType) error {
	v, err := ParseNumberTypeOverride(constants.PropNumberZeroScaleType, string(t))
	if err != nil {
		return err
	}
	b.s.numberZeroScaleType = v
	return nil
}

// SetNumberNullScaleType overrides the type of NUMBER columns without a scale. Empty clears it.
func (b *Builder) SetNumberNullScaleType(t NumberType) error {
	v, err := ParseNumberTypeOverride(constants.PropNumberNullScaleType, string(t))
	if err != nil {
		return err
	}
	b.s.numberNullScaleType = v
	return nil
}

// SetRatioDefaultScale sets the default scale as a fraction of the target
// precision, or clears it with constants.UndefinedScale. Any other value fails
// with a conflict while the decimal default scale is defined.
func (b *Builder) SetRatioDefaultScale(ratio float64) error {
	if ratio == constants.UndefinedScale {
		b.s.ratioDefaultScale = constants.UndefinedScale
		return nil
	}
	if b.s.decimalDefined() {
		return scaleConflict()
	}
	if math.IsNaN(ratio) || ratio < 0 || ratio > 1 {
		return apperrors.NewInvalidInputError(constants.PropRatioDefaultScale, ratio,
			"must be between 0 and 1, or -1 for undefined")
	}
	b.s.ratioDefaultScale = ratio
	return nil
}

// SetDecimalDefaultScale sets the default scale of unconstrained NUMBER
// columns, or clears it with constants.UndefinedScale. Any other value fails
// with a conflict while the ratio default scale is defined.
func (b *Builder) SetDecimalDefaultScale(scale int) error {
	if scale == constants.UndefinedScale {
		b.s.decimalDefaultScale = constants.UndefinedScale
		return nil
	}
	if b.s.ratioDefined() {
		return scaleConflict()
	}
	if scale < 0 || scale > constants.MaxDecimalPrecision {
		return apperrors.NewInvalidInputError(constants.PropDecimalDefaultScale, scale,
			fmt.Sprintf("must be between 0 and %d, or -1 for undefined", constants.MaxDecimalPrecision))
	}
	b.s.decimalDefaultScale = scale
	return nil
}

// SetDoubleDefaultScale sets the scale NUMBER values are rounded to before
// being converted to double, or clears it with constants.UndefinedScale.
func (b *Builder) SetDoubleDefaultScale(scale int) error {
	if scale != constants.UndefinedScale && scale < 0 {
		return apperrors.NewInvalidInputError(constants.PropDoubleDefaultScale, scale,
			"must not be negative, or -1 for undefined")
	}
	b.s.doubleDefaultScale = scale
	return nil
}

// EffectiveRoundMode returns the configured rounding mode, or a
// ConflictingConfiguration error when the exceeds-limits mode is ROUND and the
// rounding mode is UNNECESSARY.
func (b *Builder) EffectiveRoundMode() (decimal.RoundingMode, error) {
	return b.s.effectiveRoundMode()
}

// Build re-validates every cross-field constraint and returns an immutable
// Config. The builder may be reused afterwards.
func (b *Builder) Build() (*Config, error) {
	if _, err := b.s.effectiveRoundMode(); err != nil {
		return nil, err
	}
	if b.s.ratioDefined() && b.s.decimalDefined() {
		return nil, scaleConflict()
	}
	return &Config{s: b.s}, nil
}

// Config is a validated, read-only configuration. It is safe to share
// between goroutines.
type Config struct {
	s settings
}

// Default returns a Config holding the defaults.
func Default() *Config {
	cfg, err := NewBuilder().Build()
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) AutoReconnect() bool { return c.s.autoReconnect }
func (c *Config) MaxReconnects() int { return c.s.maxReconnects }
func (c *Config) ConnectionTimeout() time.Duration { return c.s.connectionTimeout }
func (c *Config) UnsupportedTypeStrategy() UnsupportedTypeStrategy { return c.s.unsupportedTypeStrategy }
func (c *Config) SynonymsEnabled() bool { return c.s.synonymsEnabled }
func (c *Config) NumberExceedsLimits() ExceedsLimitsMode { return c.s.numberExceedsLimits }
func (c *Config) NumberTypeDefault() NumberType { return c.s.numberTypeDefault }
func (c *Config) NumberZeroScaleType() NumberType { return c.s.numberZeroScaleType }
func (c *Config) NumberNullScaleType() NumberType { return c.s.numberNullScaleType }
func (c *Config) RatioDefaultScale() float64 { return c.s.ratioDefaultScale }
func (c *Config) DecimalDefaultScale() int { return c.s.decimalDefaultScale }
func (c *Config) DoubleDefaultScale() int { return c.s.doubleDefaultScale }

// NumberRoundMode returns the rounding mode. Build has already rejected the
// combinations EffectiveRoundMode would refuse.
func (c *Config) NumberRoundMode() decimal.RoundingMode { return c.s.numberRoundMode }

// HasRatioDefaultScale reports whether a ratio default scale is defined.
func (c *Config) HasRatioDefaultScale() bool { return c.s.ratioDefined() }

// HasDecimalDefaultScale reports whether a decimal default scale is defined.
func (c *Config) HasDecimalDefaultScale() bool { return c.s.decimalDefined() }

// HasDoubleDefaultScale reports whether a double default scale is defined.
func (c *Config) HasDoubleDefaultScale() bool {
	return c.s.doubleDefaultScale != constants.UndefinedScale
}

// ToBuilder returns a builder seeded with c's settings.
func (c *Config) ToBuilder() *Builder {
	return &Builder{s: c.s}
}
