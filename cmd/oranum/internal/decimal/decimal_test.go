package decimal

import (
	stderrors "errors"
	"math/big"
	"testing"

	"github.com/goccy/go-json"

	apperrors "github.com/thalib/oranum/cmd/oranum/internal/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		wantStr       string
		wantScale     int
		wantPrecision int
		wantErr       bool
	}{
		// Valid inputs
		{name: "integer", input: "10", wantStr: "10", wantScale: 0, wantPrecision: 2},
		{name: "with decimals", input: "10.50", wantStr: "10.50", wantScale: 2, wantPrecision: 4},
		{name: "trailing zeros kept", input: "123.456000", wantStr: "123.456000", wantScale: 6, wantPrecision: 9},
		{name: "negative", input: "-42.75", wantStr: "-42.75", wantScale: 2, wantPrecision: 4},
		{name: "small", input: "0.01", wantStr: "0.01", wantScale: 2, wantPrecision: 1},
		{name: "zero with decimals", input: "0.00", wantStr: "0.00", wantScale: 2, wantPrecision: 1},
		{name: "exponent", input: "1E+3", wantStr: "1E+3", wantScale: -3, wantPrecision: 1},
		{name: "whitespace", input: "  10.50  ", wantStr: "10.50", wantScale: 2, wantPrecision: 4},
		{name: "forty digits", input: "1234567890123456789012345678901234567890", wantStr: "1234567890123456789012345678901234567890", wantScale: 0, wantPrecision: 40},

		// Invalid inputs
		{name: "non-numeric", input: "abc", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
		{name: "nan", input: "NaN", wantErr: true},
		{name: "infinity", input: "Infinity", wantErr: true},
		{name: "comma separator", input: "1,234.56", wantErr: true},
		{name: "multiple decimals", input: "1.2.3", wantErr: true},
		{name: "currency symbol", input: "$10.00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if d.String() != tt.wantStr {
				t.Errorf("Parse(%q).String() = %q, want %q", tt.input, d.String(), tt.wantStr)
			}
			if d.Scale() != tt.wantScale {
				t.Errorf("Parse(%q).Scale() = %d, want %d", tt.input, d.Scale(), tt.wantScale)
			}
			if d.Precision() != tt.wantPrecision {
				t.Errorf("Parse(%q).Precision() = %d, want %d", tt.input, d.Precision(), tt.wantPrecision)
			}
		})
	}
}

func TestPlainString(t *testing.T) {
	if got := MustParse("1E+3").PlainString(); got != "1000" {
		t.Errorf("PlainString() = %q, want 1000", got)
	}
	if got := MustParse("123.40").PlainString(); got != "123.40" {
		t.Errorf("PlainString() = %q, want 123.40", got)
	}
}

func TestRescale(t *testing.T) {
	tests := []struct {
		name  string
		input string
		scale int
		mode  RoundingMode
		want  string
	}{
		{"half even", "123.456", 2, RoundHalfEven, "123.46"},
		{"down", "123.456", 2, RoundDown, "123.45"},
		{"up", "123.451", 2, RoundUp, "123.46"},
		{"ceiling", "123.451", 2, RoundCeiling, "123.46"},
		{"floor", "123.459", 2, RoundFloor, "123.45"},
		{"half up", "123.455", 2, RoundHalfUp, "123.46"},
		{"half down", "123.455", 2, RoundHalfDown, "123.45"},

		{"half even tie to even down", "2.345", 2, RoundHalfEven, "2.34"},
		{"half even tie to even up", "2.355", 2, RoundHalfEven, "2.36"},
		{"half even not a tie", "2.3451", 2, RoundHalfEven, "2.35"},

		{"negative down", "-123.456", 2, RoundDown, "-123.45"},
		{"negative up", "-123.451", 2, RoundUp, "-123.46"},
		{"negative floor", "-123.451", 2, RoundFloor, "-123.46"},
		{"negative ceiling", "-123.459", 2, RoundCeiling, "-123.45"},

		{"pads zeros", "1.5", 4, RoundHalfEven, "1.5000"},
		{"integer pads zeros", "42", 2, RoundHalfEven, "42.00"},
		{"carry into new digit", "9.999", 2, RoundHalfUp, "10.00"},
		{"carry to scale zero", "99.5", 0, RoundHalfUp, "100"},
		{"negative zero normalized", "-0.001", 2, RoundHalfEven, "0.00"},
		{"negative scale", "1250", -2, RoundHalfEven, "1.2E+3"},
		{"unnecessary exact", "123.40", 2, RoundUnnecessary, "123.40"},
		{"unnecessary trailing zeros", "123.4000", 2, RoundUnnecessary, "123.40"},
		{"unnecessary widening", "7", 3, RoundUnnecessary, "7.000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MustParse(tt.input).Rescale(tt.scale, tt.mode)
			if err != nil {
				t.Fatalf("Rescale(%s, %d, %s) error = %v", tt.input, tt.scale, tt.mode, err)
			}
			if got.String() != tt.want {
				t.Errorf("Rescale(%s, %d, %s) = %s, want %s", tt.input, tt.scale, tt.mode, got.String(), tt.want)
			}
			if tt.scale >= 0 && got.Scale() != tt.scale {
				t.Errorf("Rescale(%s, %d, %s).Scale() = %d", tt.input, tt.scale, tt.mode, got.Scale())
			}
		})
	}
}

func TestRescaleUnnecessaryInexact(t *testing.T) {
	_, err := MustParse("123.456").Rescale(2, RoundUnnecessary)
	if err == nil {
		t.Fatal("expected an error for inexact rescale")
	}
	if !stderrors.Is(err, apperrors.ErrConversionInexact) {
		t.Errorf("expected ConversionInexact, got %v", err)
	}
}

func TestRescaleUnknownMode(t *testing.T) {
	if _, err := MustParse("1.5").Rescale(0, RoundingMode("SIDEWAYS")); err == nil {
		t.Error("expected error for unknown rounding mode")
	}
}

func TestRescaleDoesNotMutateReceiver(t *testing.T) {
	d := MustParse("123.456")
	if _, err := d.Rescale(1, RoundHalfEven); err != nil {
		t.Fatal(err)
	}
	if d.String() != "123.456" {
		t.Errorf("receiver changed to %s", d.String())
	}
}

func TestUnscaledValue(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"123.46", 12346},
		{"-123.46", -12346},
		{"0.00", 0},
		{"1E+3", 1},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := MustParse(tt.input).UnscaledValue()
			if got.Cmp(big.NewInt(tt.want)) != 0 {
				t.Errorf("UnscaledValue(%s) = %s, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFromUnscaled(t *testing.T) {
	if got := FromUnscaled(big.NewInt(12346), 2).String(); got != "123.46" {
		t.Errorf("FromUnscaled(12346, 2) = %s, want 123.46", got)
	}
	if got := FromUnscaled(big.NewInt(-5), 3).String(); got != "-0.005" {
		t.Errorf("FromUnscaled(-5, 3) = %s, want -0.005", got)
	}
}

func TestFloat64(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"0.1", 0.1},
		{"123.46", 123.46},
		{"-2.5", -2.5},
		{"1E+3", 1000},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := MustParse(tt.input).Float64()
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Float64(%s) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	a := MustParse("1.50")
	b := MustParse("1.5")
	c := MustParse("2")

	if !a.Equal(b) {
		t.Error("expected 1.50 to equal 1.5")
	}
	if a.Compare(c) != -1 || c.Compare(a) != 1 {
		t.Error("unexpected ordering of 1.50 and 2")
	}
	if MustParse("-3").Sign() != -1 || Zero().Sign() != 0 || !Zero().IsZero() {
		t.Error("unexpected sign results")
	}
}

func TestZeroValue(t *testing.T) {
	var d Decimal
	if d.String() != "0" {
		t.Errorf("zero value String() = %q, want 0", d.String())
	}
	if !d.IsZero() {
		t.Error("zero value should be zero")
	}
}

func TestJSON(t *testing.T) {
	t.Run("marshal as string", func(t *testing.T) {
		data, err := json.Marshal(MustParse("123.40"))
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != `"123.40"` {
			t.Errorf("Marshal = %s, want \"123.40\"", data)
		}
	})

	t.Run("unmarshal string and number", func(t *testing.T) {
		for _, input := range []string{`"1.50"`, `1.50`} {
			var d Decimal
			if err := json.Unmarshal([]byte(input), &d); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", input, err)
			}
			if d.String() != "1.50" {
				t.Errorf("Unmarshal(%s) = %s, want 1.50", input, d.String())
			}
		}
	})

	t.Run("unmarshal invalid", func(t *testing.T) {
		var d Decimal
		if err := json.Unmarshal([]byte(`"abc"`), &d); err == nil {
			t.Error("expected error for invalid decimal")
		}
	})
}

func TestScan(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    string
		wantErr bool
	}{
		{"string", "123.456", "123.456", false},
		{"bytes", []byte("-0.50"), "-0.50", false},
		{"int64", int64(42), "42", false},
		{"float64", 0.25, "0.25", false},
		{"nil", nil, "", true},
		{"bool", true, "", true},
		{"bad string", "12a", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Decimal
			err := d.Scan(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Scan(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if !tt.wantErr && d.String() != tt.want {
				t.Errorf("Scan(%v) = %s, want %s", tt.value, d.String(), tt.want)
			}
		})
	}
}

func TestNullDecimal(t *testing.T) {
	var n NullDecimal
	if err := n.Scan(nil); err != nil {
		t.Fatal(err)
	}
	if n.Valid {
		t.Error("expected NULL to be invalid")
	}
	if v, _ := n.Value(); v != nil {
		t.Errorf("Value() = %v, want nil", v)
	}

	if err := n.Scan("7.25"); err != nil {
		t.Fatal(err)
	}
	if !n.Valid || n.Decimal.String() != "7.25" {
		t.Errorf("unexpected NullDecimal %+v", n)
	}
	if v, _ := n.Value(); v != "7.25" {
		t.Errorf("Value() = %v, want 7.25", v)
	}
}

func TestParseRoundingMode(t *testing.T) {
	for _, mode := range RoundingModes {
		got, err := ParseRoundingMode(string(mode))
		if err != nil {
			t.Errorf("ParseRoundingMode(%q) error = %v", mode, err)
		}
		if got != mode {
			t.Errorf("ParseRoundingMode(%q) = %q", mode, got)
		}
	}

	for _, bad := range []string{"", "ASDF", "half_even", "Half_Even", " HALF_EVEN"} {
		if _, err := ParseRoundingMode(bad); err == nil {
			t.Errorf("ParseRoundingMode(%q) expected error", bad)
		}
	}
}
