// Package decimal provides exact decimal values as decoded from Oracle NUMBER
// columns. Values keep their own scale (digits after the decimal point) and are
// only ever rounded explicitly, through Rescale, with a named rounding mode.
package decimal

import (
	"database/sql/driver"
	"fmt"
	"math/big"
	"strings"

	"github.com/cockroachdb/apd/v3"
	"github.com/goccy/go-json"

	apperrors "github.com/thalib/oranum/cmd/oranum/internal/errors"
)

// Decimal is an immutable arbitrary-precision decimal: an unscaled integer
// and a scale. The zero value is 0.
type Decimal struct {
	d *apd.Decimal
}

// Zero returns a zero-valued Decimal.
func Zero() Decimal {
	return Decimal{d: apd.New(0, 0)}
}

// New creates a Decimal equal to coeff × 10^exponent.
func New(coeff int64, exponent int32) Decimal {
	return Decimal{d: apd.New(coeff, exponent)}
}

// FromUnscaled creates a Decimal from an unscaled integer and a scale,
// e.g. (12346, 2) is 123.46.
func FromUnscaled(unscaled *big.Int, scale int) Decimal {
	coeff := new(apd.BigInt).SetMathBigInt(unscaled)
	return Decimal{d: apd.NewWithBigInt(coeff, int32(-scale))}
}

// Parse parses a decimal literal. Exponent notation is accepted ("1.5E+3");
// NaN and infinities are not.
func Parse(s string) (Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero(), fmt.Errorf("invalid decimal value: empty string")
	}

	d, _, err := apd.NewFromString(s)
	if err != nil {
		return Zero(), fmt.Errorf("invalid decimal value '%s': %w", s, err)
	}
	if d.Form != apd.Finite {
		return Zero(), fmt.Errorf("invalid decimal value '%s': not a finite number", s)
	}

	return Decimal{d: d}, nil
}

// MustParse parses a string into a Decimal and panics on error.
// Use only for test fixtures or static values known to be valid.
func MustParse(s string) Decimal {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Decimal) apd() *apd.Decimal {
	if d.d == nil {
		return apd.New(0, 0)
	}
	return d.d
}

// Scale returns the number of digits after the decimal point. It is negative
// for values like 1.2E+3 whose unscaled integer omits trailing zeros.
func (d Decimal) Scale() int {
	return -int(d.apd().Exponent)
}

// Precision returns the number of digits of the unscaled integer (1 for zero).
func (d Decimal) Precision() int {
	return int(d.apd().NumDigits())
}

// UnscaledValue returns the signed unscaled integer, so that
// d == UnscaledValue() × 10^-Scale().
func (d Decimal) UnscaledValue() *big.Int {
	src := d.apd()
	u := src.Coeff.MathBigInt()
	if src.Negative {
		u.Neg(u)
	}
	return u
}

// Rescale returns d with exactly scale digits after the decimal point,
// padding with zeros or rounding with mode. RoundUnnecessary fails with a
// ConversionInexact error when any discarded digit is non-zero.
func (d Decimal) Rescale(scale int, mode RoundingMode) (Decimal, error) {
	rounder, ok := rounders[mode]
	if !ok {
		return Zero(), fmt.Errorf("unknown rounding mode %q", mode)
	}

	src := d.apd()
	exp := int32(-scale)

	// Quantize refuses results longer than the context precision; allow for
	// the padded zeros plus one carry digit.
	grow := int64(src.Exponent) - int64(exp)
	if grow < 0 {
		grow = 0
	}
	ctx := apd.BaseContext.WithPrecision(uint32(src.NumDigits() + grow + 1))
	ctx.Rounding = rounder

	res := new(apd.Decimal)
	cond, err := ctx.Quantize(res, src, exp)
	if err != nil {
		return Zero(), fmt.Errorf("rescale %s to scale %d: %w", d.String(), scale, err)
	}
	if mode == RoundUnnecessary && cond.Inexact() {
		return Zero(), apperrors.NewConversionInexactError(d.String(), scale)
	}
	if res.IsZero() {
		res.Negative = false
	}

	return Decimal{d: res}, nil
}

// Float64 returns the float64 nearest to d.
func (d Decimal) Float64() (float64, error) {
	return d.apd().Float64()
}

// String returns the canonical text of d. Digits, including trailing zeros,
// are kept exactly; exponent notation is used only for positive exponents and
// very small values (1E+3, 1.2E-8).
func (d Decimal) String() string {
	return d.apd().String()
}

// PlainString returns d without exponent notation.
func (d Decimal) PlainString() string {
	return d.apd().Text('f')
}

// IsZero returns true if the Decimal is zero.
func (d Decimal) IsZero() bool {
	return d.apd().IsZero()
}

// Sign returns the sign of the Decimal (-1 for negative, 0 for zero, +1 for positive).
func (d Decimal) Sign() int {
	return d.apd().Sign()
}

// Compare compares the numeric values of d and other, ignoring scale.
// Returns -1 if d < other, 0 if d == other, +1 if d > other.
func (d Decimal) Compare(other Decimal) int {
	return d.apd().Cmp(other.apd())
}

// Equal returns true if d and other are numerically equal (1.50 equals 1.5).
func (d Decimal) Equal(other Decimal) bool {
	return d.Compare(other) == 0
}

// MarshalJSON implements json.Marshaler.
// Decimals are serialized as JSON strings to preserve precision.
func (d Decimal) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
// Both JSON strings and bare JSON numbers are accepted.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	s := string(data)
	if strings.HasPrefix(s, `"`) {
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("failed to unmarshal decimal: %w", err)
		}
	}

	parsed, err := Parse(s)
	if err != nil {
		return err
	}

	d.d = parsed.d
	return nil
}

// Scan implements sql.Scanner for database reads.
func (d *Decimal) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		return fmt.Errorf("failed to scan decimal: NULL value (use NullDecimal)")
	case string:
		parsed, err := Parse(v)
		if err != nil {
			return fmt.Errorf("failed to scan decimal: %w", err)
		}
		d.d = parsed.d
		return nil
	case []byte:
		parsed, err := Parse(string(v))
		if err != nil {
			return fmt.Errorf("failed to scan decimal: %w", err)
		}
		d.d = parsed.d
		return nil
	case int64:
		d.d = apd.New(v, 0)
		return nil
	case float64:
		f, err := new(apd.Decimal).SetFloat64(v)
		if err != nil {
			return fmt.Errorf("failed to scan decimal: %w", err)
		}
		d.d = f
		return nil
	default:
		return fmt.Errorf("unsupported type for decimal scan: %T", value)
	}
}

// Value implements driver.Valuer for database writes.
func (d Decimal) Value() (driver.Value, error) {
	return d.String(), nil
}

// NullDecimal is a Decimal that may be NULL.
type NullDecimal struct {
	Decimal Decimal
	Valid   bool
}

// Scan implements sql.Scanner.
func (n *NullDecimal) Scan(value any) error {
	if value == nil {
		n.Decimal, n.Valid = Zero(), false
		return nil
	}
	n.Valid = true
	return n.Decimal.Scan(value)
}

// Value implements driver.Valuer.
func (n NullDecimal) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Decimal.Value()
}
