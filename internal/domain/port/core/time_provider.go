package core

import (
	"context"
	"time"
)

// Duration is the clock's unit of elapsed time
type Duration time.Duration

// Duration constants used by callers of TimeProvider
const (
	Millisecond = Duration(time.Millisecond)
	Second      = Duration(time.Second)
	Minute      = Duration(time.Minute)
)

// Std converts to time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// TimeProvider is the clock used for history timestamps, lock expiry and
// retry waits. Tests substitute a clock that only moves when told to.
type TimeProvider interface {
	// Now returns the current time in UTC
	Now() time.Time
	// Since returns the time elapsed since t
	Since(t time.Time) Duration
	// Wait blocks for d. It returns ctx.Err() if ctx ends first.
	Wait(ctx context.Context, d Duration) error
}
