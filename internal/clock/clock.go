// Package clock supplies the generation time written into session headers.
//
// Everything that stamps a file takes a Clock, so tests and reproducible
// exports can pin the header to a known instant.
package clock

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// SourceDateEpochEnv names the variable that pins the clock for reproducible output.
const SourceDateEpochEnv = "SOURCE_DATE_EPOCH"

// Clock provides an abstraction for time operations to enable deterministic testing.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the local system time.
type RealClock struct{}

// Now returns the current system time.
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// FakeClock implements Clock with a fixed time.
type FakeClock struct {
	current time.Time
}

// NewFakeClock creates a new FakeClock with the given time.
func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{current: t}
}

// Now returns the fixed time.
func (c *FakeClock) Now() time.Time {
	return c.current
}

// Set updates the fixed time.
func (c *FakeClock) Set(t time.Time) {
	c.current = t
}

// Advance moves the fixed time forward by the given duration.
func (c *FakeClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}

// FromEnv returns a clock frozen at SOURCE_DATE_EPOCH (seconds, UTC) when
// the variable is set, and the system clock otherwise.
func FromEnv() (Clock, error) {
	raw := os.Getenv(SourceDateEpochEnv)
	if raw == "" {
		return &RealClock{}, nil
	}
	secs, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", SourceDateEpochEnv, raw, err)
	}
	return NewFakeClock(time.Unix(secs, 0).UTC()), nil
}
