package decimal

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// RoundingMode names a policy for discarding digits. The names follow the
// usual decimal rounding vocabulary and are what catalog properties accept.
type RoundingMode string

const (
	RoundUp          RoundingMode = "UP"          // away from zero
	RoundDown        RoundingMode = "DOWN"        // towards zero
	RoundCeiling     RoundingMode = "CEILING"     // towards +inf
	RoundFloor       RoundingMode = "FLOOR"       // towards -inf
	RoundHalfUp      RoundingMode = "HALF_UP"     // nearest, ties away from zero
	RoundHalfDown    RoundingMode = "HALF_DOWN"   // nearest, ties towards zero
	RoundHalfEven    RoundingMode = "HALF_EVEN"   // nearest, ties to the even digit
	RoundUnnecessary RoundingMode = "UNNECESSARY" // exact results only
)

// RoundingModes lists every accepted mode in declaration order.
var RoundingModes = []RoundingMode{
	RoundUp,
	RoundDown,
	RoundCeiling,
	RoundFloor,
	RoundHalfUp,
	RoundHalfDown,
	RoundHalfEven,
	RoundUnnecessary,
}

// RoundUnnecessary truncates and then reports whether anything was lost.
var rounders = map[RoundingMode]apd.Rounder{
	RoundUp:          apd.RoundUp,
	RoundDown:        apd.RoundDown,
	RoundCeiling:     apd.RoundCeiling,
	RoundFloor:       apd.RoundFloor,
	RoundHalfUp:      apd.RoundHalfUp,
	RoundHalfDown:    apd.RoundHalfDown,
	RoundHalfEven:    apd.RoundHalfEven,
	RoundUnnecessary: apd.RoundDown,
}

// ParseRoundingMode parses a mode name. Matching is case-sensitive.
func ParseRoundingMode(s string) (RoundingMode, error) {
	mode := RoundingMode(s)
	if _, ok := rounders[mode]; !ok {
		return "", fmt.Errorf("unknown rounding mode %q, must be one of: %s", s, joinModes())
	}
	return mode, nil
}

// String implements fmt.Stringer.
func (m RoundingMode) String() string {
	return string(m)
}

func joinModes() string {
	names := make([]string, len(RoundingModes))
	for i, m := range RoundingModes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}
