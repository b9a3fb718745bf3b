// Package ulid issues the identifiers that tag connector instances in logs.
// IDs from one process are strictly increasing, so log lines sort by the
// order in which connectors were created.
package ulid

import (
	"crypto/rand"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ErrInvalidID indicates that a connector ID is not a well-formed ULID
var ErrInvalidID = errors.New("invalid connector ID")

var (
	mu      sync.Mutex
	entropy = ulid.Monotonic(rand.Reader, 0)
)

// NewConnectorID returns a new ID stamped with the current time.
func NewConnectorID() string {
	return NewConnectorIDAt(time.Now())
}

// NewConnectorIDAt returns a new ID stamped with t. IDs generated within the
// same millisecond still increase.
func NewConnectorIDAt(t time.Time) string {
	mu.Lock()
	defer mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// Validate checks that id is a 26 character ULID
func Validate(id string) error {
	if len(id) != ulid.EncodedSize {
		return fmt.Errorf("%w: expected %d characters, got %d", ErrInvalidID, ulid.EncodedSize, len(id))
	}
	if _, err := ulid.ParseStrict(id); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidID, err)
	}
	return nil
}

// CreatedAt returns the time a connector ID was issued, at millisecond
// precision.
func CreatedAt(id string) (time.Time, error) {
	parsed, err := ulid.ParseStrict(id)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidID, err)
	}
	return ulid.Time(parsed.Time()), nil
}
