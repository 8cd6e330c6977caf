// Package fire runs the shooter's timed fire sequence: the flywheel held at a commanded
// power while the kicker follows a pulse schedule keyed on elapsed time.
//
// A fire action blocks its caller for the whole sequence. Nothing else may command the
// shooter while it runs, and the shooter is left at the fire power on return; the caller
// zeroes it.
package fire

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	goutils "go.viam.com/utils"

	"github.com/ringbot/autoseq/autonomous"
	"github.com/ringbot/autoseq/logging"
	"github.com/ringbot/autoseq/utils"
)

// ErrFireCancelled is returned when a cancel aware fire action sees the environment go
// inactive before the sequence completes.
var ErrFireCancelled = errors.New("fire action cancelled by stop")

// Options tune the controller loop.
type Options struct {
	// CancelAware polls the environment every iteration and stops early once it goes
	// inactive. Without it a stop is only observed after the full duration.
	CancelAware bool
	// LoopPeriod paces the loop. Zero spins as fast as the hardware calls return.
	LoopPeriod time.Duration
}

// A Controller executes fire actions against one set of hardware.
type Controller struct {
	hw       *autonomous.Hardware
	env      autonomous.Environment
	clk      clock.Clock
	profiles Profiles
	opts     Options
	logger   logging.Logger
}

// NewController returns a controller. env may be nil when CancelAware is unset.
func NewController(
	hw *autonomous.Hardware,
	env autonomous.Environment,
	clk clock.Clock,
	profiles Profiles,
	opts Options,
	logger logging.Logger,
) (*Controller, error) {
	if err := hw.Validate(); err != nil {
		return nil, err
	}
	if opts.CancelAware && env == nil {
		return nil, errors.New("cancel aware fire controller needs an environment")
	}
	if err := profiles.Validate(); err != nil {
		return nil, err
	}
	return &Controller{
		hw:       hw,
		env:      env,
		clk:      clk,
		profiles: profiles,
		opts:     opts,
		logger:   logger,
	}, nil
}

// Profiles returns the profiles the controller runs.
func (c *Controller) Profiles() Profiles {
	return c.profiles
}

// Fire runs one fire sequence and returns once its duration has elapsed, ctx is done, or
// (when cancel aware) the environment stops. Hardware errors end the sequence and are
// returned.
func (c *Controller) Fire(ctx context.Context, power float64, mode Mode) error {
	profile := c.profiles.For(mode)
	start := c.clk.Now()
	c.logger.Debugw("fire start", "mode", mode, "power", power, "duration_sec", profile.Duration)

	iterations := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		elapsed := c.clk.Since(start).Seconds()
		if elapsed > profile.Duration {
			break
		}
		if c.opts.CancelAware && !c.env.IsActive() {
			c.logger.Infow("fire cancelled", "mode", mode, "elapsed_sec", elapsed)
			return ErrFireCancelled
		}
		if err := c.step(ctx, profile, mode, power, elapsed); err != nil {
			return err
		}
		iterations++

		if c.opts.LoopPeriod > 0 && !goutils.SelectContextOrWaitChan(ctx, c.clk.After(c.opts.LoopPeriod)) {
			return ctx.Err()
		}
	}
	c.logger.Debugw("fire done", "mode", mode, "iterations", iterations)
	return nil
}

// step is one iteration of the fire loop at elapsed seconds.
func (c *Controller) step(ctx context.Context, profile Profile, mode Mode, power, elapsed float64) error {
	if err := c.hw.Shooter.SetPower(ctx, power); err != nil {
		return errors.Wrap(err, "commanding shooter")
	}
	if mode.Extended() {
		if err := c.hw.Drive.Update(ctx); err != nil {
			return errors.Wrap(err, "updating drive")
		}
	}
	if mode == ModePowershot {
		for _, w := range profile.Turns.Active(elapsed) {
			if err := c.hw.Drive.Turn(ctx, utils.DegToRad(w.AngleDeg)); err != nil {
				return errors.Wrapf(err, "turning %v degrees", w.AngleDeg)
			}
			if err := c.hw.Drive.Update(ctx); err != nil {
				return errors.Wrap(err, "updating drive after turn")
			}
		}
	}
	if pos, ok := profile.Kicks.Evaluate(elapsed); ok {
		if err := c.hw.Kicker.SetPosition(ctx, pos); err != nil {
			return errors.Wrap(err, "commanding kicker")
		}
	}
	return nil
}
