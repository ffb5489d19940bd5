package time

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/schema-ledger/internal/domain/port/core"
)

// RealTimeProvider reads the system clock. Times are returned in UTC so that
// values written to the schema history do not depend on the host zone.
type RealTimeProvider struct{}

var _ core.TimeProvider = (*RealTimeProvider)(nil)

// NewRealTimeProvider creates a new real time provider
func NewRealTimeProvider() core.TimeProvider {
	return &RealTimeProvider{}
}

// Now returns the current wall time in UTC
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}

func (p *RealTimeProvider) Since(t time.Time) core.Duration {
	return core.Duration(time.Since(t))
}

// Wait returns at once for non-positive durations unless ctx is already done
func (p *RealTimeProvider) Wait(ctx context.Context, d core.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d.Std())
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
