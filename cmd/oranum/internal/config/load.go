package config

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/thalib/oranum/cmd/oranum/internal/constants"
	"github.com/thalib/oranum/cmd/oranum/internal/decimal"
	apperrors "github.com/thalib/oranum/cmd/oranum/internal/errors"
)

// Load reads a YAML catalog file and builds a Config from it.
// Keys may be written flat ("oracle.number.round-mode: UP") or nested; both
// resolve to the same property names. An empty path yields the defaults.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		return NewBuilder().Build()
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s", configPath)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	props := make(map[string]string, len(v.AllKeys()))
	for _, key := range v.AllKeys() {
		value, err := cast.ToStringE(v.Get(key))
		if err != nil {
			return nil, apperrors.NewInvalidInputError(key, v.Get(key), "must be a scalar value")
		}
		props[key] = value
	}

	cfg, err := FromProperties(props)
	if err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// FromProperties builds a Config from property names and raw string values.
// Unknown names are rejected.
func FromProperties(props map[string]string) (*Config, error) {
	b, err := BuilderFromProperties(props)
	if err != nil {
		return nil, err
	}
	return b.Build()
}

// BuilderFromProperties applies props to a builder holding the defaults
// without running the cross-field checks of Build.
func BuilderFromProperties(props map[string]string) (*Builder, error) {
	known := make(map[string]bool, len(constants.PropertyOrder))
	for _, key := range constants.PropertyOrder {
		known[key] = true
	}

	var unknown []string
	for key := range props {
		if !known[key] {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, apperrors.NewInvalidInputError("properties", strings.Join(unknown, ", "),
			"unknown configuration property")
	}

	b := NewBuilder()
	for _, key := range constants.PropertyOrder {
		raw, ok := props[key]
		if !ok {
			continue
		}
		if err := b.setProperty(key, strings.TrimSpace(raw)); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (b *Builder) setProperty(key, raw string) error {
	switch key {
	case constants.PropAutoReconnect:
		v, err := cast.ToBoolE(raw)
		if err != nil {
			return apperrors.NewInvalidInputError(key, raw, "must be true or false")
		}
		b.SetAutoReconnect(v)
	case constants.PropMaxReconnects:
		v, err := cast.ToIntE(raw)
		if err != nil {
			return apperrors.NewInvalidInputError(key, raw, "must be an integer")
		}
		return b.SetMaxReconnects(v)
	case constants.PropConnectionTimeout:
		// A bare number has no unit and is rejected.
		v, err := time.ParseDuration(raw)
		if err != nil {
			return apperrors.NewInvalidInputError(key, raw, "must be a duration such as 10s")
		}
		return b.SetConnectionTimeout(v)
	case constants.PropUnsupportedTypeStrategy:
		return b.SetUnsupportedTypeStrategy(UnsupportedTypeStrategy(raw))
	case constants.PropSynonymsEnabled:
		v, err := cast.ToBoolE(raw)
		if err != nil {
			return apperrors.NewInvalidInputError(key, raw, "must be true or false")
		}
		b.SetSynonymsEnabled(v)
	case constants.PropNumberExceedsLimits:
		return b.SetNumberExceedsLimits(ExceedsLimitsMode(raw))
	case constants.PropNumberDefaultType:
		return b.SetNumberTypeDefault(NumberType(raw))
	case constants.PropNumberRoundMode:
		return b.SetNumberRoundMode(decimal.RoundingMode(raw))
	case constants.PropNumberZeroScaleType:
		return b.SetNumberZeroScaleType(NumberType(raw))
	case constants.PropNumberNullScaleType:
		return b.SetNumberNullScaleType(NumberType(raw))
	case constants.PropRatioDefaultScale:
		v, err := cast.ToFloat64E(raw)
		if err != nil {
			return apperrors.NewInvalidInputError(key, raw, "must be a number")
		}
		return b.SetRatioDefaultScale(v)
	case constants.PropDecimalDefaultScale:
		v, err := cast.ToIntE(raw)
		if err != nil {
			return apperrors.NewInvalidInputError(key, raw, "must be an integer")
		}
		return b.SetDecimalDefaultScale(v)
	case constants.PropDoubleDefaultScale:
		v, err := cast.ToIntE(raw)
		if err != nil {
			return apperrors.NewInvalidInputError(key, raw, "must be an integer")
		}
		return b.SetDoubleDefaultScale(v)
	default:
		return apperrors.NewInvalidInputError("properties", key, "unknown configuration property")
	}
	return nil
}

// Properties returns c as property names and string values. Feeding the
// result back to FromProperties yields an equal Config.
func (c *Config) Properties() map[string]string {
	return map[string]string{
		constants.PropAutoReconnect:           strconv.FormatBool(c.s.autoReconnect),
		constants.PropMaxReconnects:           strconv.Itoa(c.s.maxReconnects),
		constants.PropConnectionTimeout:       c.s.connectionTimeout.String(),
		constants.PropUnsupportedTypeStrategy: string(c.s.unsupportedTypeStrategy),
		constants.PropSynonymsEnabled:         strconv.FormatBool(c.s.synonymsEnabled),
		constants.PropNumberExceedsLimits:     string(c.s.numberExceedsLimits),
		constants.PropNumberDefaultType:       string(c.s.numberTypeDefault),
		constants.PropNumberRoundMode:         string(c.s.numberRoundMode),
		constants.PropNumberZeroScaleType:     string(c.s.numberZeroScaleType),
		constants.PropNumberNullScaleType:     string(c.s.numberNullScaleType),
		constants.PropRatioDefaultScale:       strconv.FormatFloat(c.s.ratioDefaultScale, 'f', -1, 64),
		constants.PropDecimalDefaultScale:     strconv.Itoa(c.s.decimalDefaultScale),
		constants.PropDoubleDefaultScale:      strconv.Itoa(c.s.doubleDefaultScale),
	}
}
