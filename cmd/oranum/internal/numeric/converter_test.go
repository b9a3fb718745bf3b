package numeric

import (
	stderrors "errors"
	"math"
	"math/big"
	"testing"

	"github.com/thalib/oranum/cmd/oranum/internal/config"
	"github.com/thalib/oranum/cmd/oranum/internal/constants"
	"github.com/thalib/oranum/cmd/oranum/internal/decimal"
	apperrors "github.com/thalib/oranum/cmd/oranum/internal/errors"
)

func TestRoundFixed(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		precision    int
		scale        int
		mode         decimal.RoundingMode
		wantUnscaled int64
		wantText     string
	}{
		{"half even", "123.456", 38, 2, decimal.RoundHalfEven, 12346, "123.46"},
		{"down", "123.456", 38, 2, decimal.RoundDown, 12345, "123.45"},
		{"half even tie", "0.125", 10, 2, decimal.RoundHalfEven, 12, "0.12"},
		{"half up tie", "0.125", 10, 2, decimal.RoundHalfUp, 13, "0.13"},
		{"unnecessary exact", "123.40", 5, 2, decimal.RoundUnnecessary, 12340, "123.40"},
		{"widen scale", "5", 3, 2, decimal.RoundHalfEven, 500, "5.00"},
		{"negative", "-7.555", 10, 2, decimal.RoundHalfEven, -756, "-7.56"},
		{"exactly at precision", "99999.999", 7, 2, decimal.RoundDown, 9999999, "99999.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := RoundFixed(decimal.MustParse(tt.input), tt.precision, tt.scale, tt.mode)
			if err != nil {
				t.Fatalf("RoundFixed() error = %v", err)
			}
			if v.Kind != KindFixed {
				t.Errorf("Kind = %s, want fixed", v.Kind)
			}
			if v.Unscaled.Cmp(big.NewInt(tt.wantUnscaled)) != 0 {
				t.Errorf("Unscaled = %s, want %d", v.Unscaled, tt.wantUnscaled)
			}
			if v.Scale != tt.scale {
				t.Errorf("Scale = %d, want %d", v.Scale, tt.scale)
			}
			if v.String() != tt.wantText {
				t.Errorf("String() = %s, want %s", v.String(), tt.wantText)
			}
		})
	}
}

func TestRoundFixed_Unnecessary(t *testing.T) {
	_, err := RoundFixed(decimal.MustParse("123.456"), 38, 2, decimal.RoundUnnecessary)
	if !stderrors.Is(err, apperrors.ErrConversionInexact) {
		t.Fatalf("expected ConversionInexact, got %v", err)
	}
}

func TestRoundFixed_ExceedsPrecision(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		precision int
		scale     int
	}{
		{"integer digits", "123456789.123", 10, 2},
		{"carry adds a digit", "99.995", 4, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RoundFixed(decimal.MustParse(tt.input), tt.precision, tt.scale, decimal.RoundHalfUp)
			if !stderrors.Is(err, apperrors.ErrExceedsLimits) {
				t.Errorf("expected ExceedsLimits, got %v", err)
			}
		})
	}
}

func TestRoundFixed_InvalidPrecision(t *testing.T) {
	if _, err := RoundFixed(decimal.MustParse("1"), 0, 0, decimal.RoundHalfEven); !stderrors.Is(err, apperrors.ErrInvalidInput) {
		t.Errorf("expected InvalidInput, got %v", err)
	}
}

func TestRoundFixed_ZeroFitsAnyPrecision(t *testing.T) {
	v, err := RoundFixed(decimal.MustParse("0.0001"), 1, 2, decimal.RoundHalfEven)
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "0.00" {
		t.Errorf("String() = %s, want 0.00", v.String())
	}
}

func TestRoundFloat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		scale int
		mode  decimal.RoundingMode
		want  float64
	}{
		{"rounded", "123.456", 2, decimal.RoundHalfEven, 123.46},
		{"truncated", "123.456", 1, decimal.RoundDown, 123.4},
		{"undefined scale", "123.456", constants.UndefinedScale, decimal.RoundHalfEven, 123.456},
		{"scale zero", "2.5", 0, decimal.RoundHalfEven, 2},
		{"negative", "-0.125", 2, decimal.RoundHalfUp, -0.13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := RoundFloat(decimal.MustParse(tt.input), tt.scale, tt.mode)
			if err != nil {
				t.Fatalf("RoundFloat() error = %v", err)
			}
			if v.Kind != KindFloat || v.Float != tt.want {
				t.Errorf("RoundFloat() = %v (%s), want %v", v.Float, v.Kind, tt.want)
			}
		})
	}
}

func TestRoundFloat_OutOfRange(t *testing.T) {
	_, err := RoundFloat(decimal.MustParse("1E+400"), constants.UndefinedScale, decimal.RoundHalfEven)
	if !stderrors.Is(err, apperrors.ErrExceedsLimits) {
		t.Errorf("expected ExceedsLimits, got %v", err)
	}
}

func TestRoundFloat_Unnecessary(t *testing.T) {
	_, err := RoundFloat(decimal.MustParse("1.25"), 1, decimal.RoundUnnecessary)
	if !stderrors.Is(err, apperrors.ErrConversionInexact) {
		t.Errorf("expected ConversionInexact, got %v", err)
	}
}

func TestRoundInteger(t *testing.T) {
	tests := []struct {
		input string
		mode  decimal.RoundingMode
		want  int64
	}{
		{"42", decimal.RoundHalfEven, 42},
		{"42.5", decimal.RoundHalfEven, 42},
		{"43.5", decimal.RoundHalfEven, 44},
		{"-42.5", decimal.RoundHalfUp, -43},
		{"1E+3", decimal.RoundHalfEven, 1000},
		{"9223372036854775807", decimal.RoundHalfEven, math.MaxInt64},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := RoundInteger(decimal.MustParse(tt.input), tt.mode)
			if err != nil {
				t.Fatalf("RoundInteger() error = %v", err)
			}
			if v.Int != tt.want {
				t.Errorf("RoundInteger() = %d, want %d", v.Int, tt.want)
			}
		})
	}

	if _, err := RoundInteger(decimal.MustParse("9223372036854775808"), decimal.RoundHalfEven); !stderrors.Is(err, apperrors.ErrExceedsLimits) {
		t.Errorf("expected ExceedsLimits above int64, got %v", err)
	}
}

func TestToText(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"123.456000", "123.456000"},
		{"-0.50", "-0.50"},
		{"12345678901234567890123456789012345678901234", "12345678901234567890123456789012345678901234"},
		{"1E+5", "1E+5"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v := ToText(decimal.MustParse(tt.input))
			if v.Kind != KindText || v.Text != tt.want {
				t.Errorf("ToText(%s) = %q, want %q", tt.input, v.Text, tt.want)
			}
		})
	}
}

func TestConvert(t *testing.T) {
	round := Policy{RoundMode: decimal.RoundHalfEven, ExceedsLimits: config.ExceedsRound}
	varchar := Policy{RoundMode: decimal.RoundHalfEven, ExceedsLimits: config.ExceedsConvertToVarchar}
	strict := Policy{RoundMode: decimal.RoundUnnecessary, ExceedsLimits: config.ExceedsFail}

	t.Run("fixed", func(t *testing.T) {
		v, err := Convert(decimal.MustParse("123.456"), FixedTarget(10, 2), round)
		if err != nil || v.String() != "123.46" {
			t.Errorf("Convert() = %v, %v", v, err)
		}
	})

	t.Run("fixed too wide fails", func(t *testing.T) {
		_, err := Convert(decimal.MustParse("123456.7"), FixedTarget(5, 1), round)
		if !stderrors.Is(err, apperrors.ErrExceedsLimits) {
			t.Errorf("expected ExceedsLimits, got %v", err)
		}
	})

	t.Run("fixed too wide falls back to text", func(t *testing.T) {
		v, err := Convert(decimal.MustParse("123456.7"), FixedTarget(5, 1), varchar)
		if err != nil {
			t.Fatal(err)
		}
		if v.Kind != KindText || v.Text != "123456.7" {
			t.Errorf("Convert() = %+v, want text 123456.7", v)
		}
	})

	t.Run("integer too wide falls back to text", func(t *testing.T) {
		v, err := Convert(decimal.MustParse("1E+30"), IntegerTarget(), varchar)
		if err != nil {
			t.Fatal(err)
		}
		if v.Kind != KindText {
			t.Errorf("Kind = %s, want text", v.Kind)
		}
	})

	t.Run("inexact is not a fallback", func(t *testing.T) {
		p := Policy{RoundMode: decimal.RoundUnnecessary, ExceedsLimits: config.ExceedsConvertToVarchar}
		_, err := Convert(decimal.MustParse("123.456"), FixedTarget(10, 2), p)
		if !stderrors.Is(err, apperrors.ErrConversionInexact) {
			t.Errorf("expected ConversionInexact, got %v", err)
		}
	})

	t.Run("strict exact", func(t *testing.T) {
		v, err := Convert(decimal.MustParse("123.40"), FixedTarget(10, 2), strict)
		if err != nil || v.String() != "123.40" {
			t.Errorf("Convert() = %v, %v", v, err)
		}
	})

	t.Run("float", func(t *testing.T) {
		v, err := Convert(decimal.MustParse("2.675"), FloatTarget(2), round)
		if err != nil || v.Float != 2.68 {
			t.Errorf("Convert() = %v, %v", v.Float, err)
		}
	})

	t.Run("text", func(t *testing.T) {
		v, err := Convert(decimal.MustParse("123.456000"), TextTarget(), strict)
		if err != nil || v.Text != "123.456000" {
			t.Errorf("Convert() = %v, %v", v, err)
		}
	})

	t.Run("unknown kind", func(t *testing.T) {
		if _, err := Convert(decimal.MustParse("1"), Target{Kind: Kind(99)}, round); !stderrors.Is(err, apperrors.ErrInvalidInput) {
			t.Errorf("expected InvalidInput, got %v", err)
		}
	})
}

func TestPolicyFor(t *testing.T) {
	b := config.NewBuilder()
	if err := b.SetNumberExceedsLimits(config.ExceedsFail); err != nil {
		t.Fatal(err)
	}
	if err := b.SetNumberRoundMode(decimal.RoundUnnecessary); err != nil {
		t.Fatal(err)
	}
	cfg, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}

	p := PolicyFor(cfg)
	if p.RoundMode != decimal.RoundUnnecessary || p.ExceedsLimits != config.ExceedsFail {
		t.Errorf("PolicyFor() = %+v", p)
	}
}

func TestValueInterface(t *testing.T) {
	v, err := RoundFixed(decimal.MustParse("1.5"), 5, 2, decimal.RoundHalfEven)
	if err != nil {
		t.Fatal(err)
	}
	d, ok := v.Interface().(decimal.Decimal)
	if !ok || d.String() != "1.50" {
		t.Errorf("Interface() = %#v", v.Interface())
	}
	if s, ok := ToText(decimal.MustParse("7")).Interface().(string); !ok || s != "7" {
		t.Errorf("text Interface() = %#v", s)
	}
}
