package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Clock supplies the export timestamp
type Clock interface {
	Now() time.Time
}

// IDSource supplies the random suffix of recommendation ids
type IDSource interface {
	Suffix() string
}

// SystemClock reads the wall clock
type SystemClock struct{}

// Now returns the current time
func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant
type FixedClock struct {
	T time.Time
}

// Now returns the fixed instant
func (c FixedClock) Now() time.Time { return c.T }

// UUIDSource derives suffixes from random UUIDs
type UUIDSource struct{}

// Suffix returns the first eight hex characters of a v4 UUID
func (UUIDSource) Suffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// findingID builds "<prefix>-<kind>-<unix ms>-<index>"
func findingID(prefix, kind string, ts int64, index int) string {
	return fmt.Sprintf("%s-%s-%d-%d", prefix, kind, ts, index)
}

// recommendationID builds "<prefix>-rec-<unix ms>-<suffix>"
func recommendationID(prefix string, ts int64, suffix string) string {
	return fmt.Sprintf("%s-rec-%d-%s", prefix, ts, suffix)
}
