package autonomous

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	goutils "go.viam.com/utils"
)

// An Environment is the match controller: it says when the autonomous period starts and
// whether it is still running.
type Environment interface {
	// WaitForStart blocks until the operator starts the run.
	WaitForStart(ctx context.Context) error
	// IsActive reports whether the run may continue. It goes false on operator stop or when
	// the period expires and never comes back.
	IsActive() bool
}

// TimedEnvironment starts after an optional delay and stays active for a fixed period
// unless stopped early.
type TimedEnvironment struct {
	clk        clock.Clock
	startDelay time.Duration
	period     time.Duration

	mu      sync.Mutex
	started bool
	stopped bool
	startAt time.Time
}

var _ Environment = (*TimedEnvironment)(nil)

// NewTimedEnvironment returns an environment active for period after start.
func NewTimedEnvironment(clk clock.Clock, startDelay, period time.Duration) *TimedEnvironment {
	return &TimedEnvironment{clk: clk, startDelay: startDelay, period: period}
}

// WaitForStart waits out the start delay.
func (e *TimedEnvironment) WaitForStart(ctx context.Context) error {
	if e.startDelay > 0 && !goutils.SelectContextOrWaitChan(ctx, e.clk.After(e.startDelay)) {
		return ctx.Err()
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.started = true
	e.startAt = e.clk.Now()
	return nil
}

// IsActive reports whether the period is running.
func (e *TimedEnvironment) IsActive() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.started || e.stopped {
		return false
	}
	if e.clk.Since(e.startAt) >= e.period {
		e.stopped = true
	}
	return !e.stopped
}

// Stop ends the period as an operator stop would.
func (e *TimedEnvironment) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopped = true
}

// Elapsed returns time since start.
func (e *TimedEnvironment) Elapsed() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.started {
		return 0
	}
	return e.clk.Since(e.startAt)
}
