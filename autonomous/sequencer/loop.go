// Package sequencer runs the autonomous period: the step loop that advances a plan one
// index per iteration and the opmode that sets the robot up, classifies the ring stack
// and hands the selected plan to the loop.
package sequencer

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"

	"github.com/ringbot/autoseq/autonomous"
	"github.com/ringbot/autoseq/autonomous/fire"
	"github.com/ringbot/autoseq/autonomous/plan"
	"github.com/ringbot/autoseq/logging"
)

// A Firer runs one blocking fire action. *fire.Controller is the production Firer.
type Firer interface {
	Fire(ctx context.Context, power float64, mode fire.Mode) error
}

var _ Firer = (*fire.Controller)(nil)

// RunState is the loop's position in its plan.
type RunState struct {
	// PP is the step index. It starts at zero and grows by one every iteration,
	// whether or not the current segment has finished.
	PP int
	// Plan is the active plan.
	Plan *plan.Plan
	// SegmentIndex is the step whose segment was last handed to the drive, or -1.
	SegmentIndex int
	// Fires counts completed or cancelled fire actions.
	Fires int
}

// LoopOptions tune the loop.
type LoopOptions struct {
	// Period paces iterations. Zero runs them back to back.
	Period time.Duration
}

// Loop is the step machine. It is the only writer of its RunState.
type Loop struct {
	hw     *autonomous.Hardware
	env    autonomous.Environment
	firer  Firer
	clk    clock.Clock
	opts   LoopOptions
	logger logging.Logger

	mu    sync.Mutex
	state RunState
}

// NewLoop returns a loop driving hw until env goes inactive.
func NewLoop(
	hw *autonomous.Hardware,
	env autonomous.Environment,
	firer Firer,
	clk clock.Clock,
	opts LoopOptions,
	logger logging.Logger,
) (*Loop, error) {
	if err := hw.Validate(); err != nil {
		return nil, err
	}
	if env == nil {
		return nil, errors.New("loop needs an environment")
	}
	if firer == nil {
		return nil, errors.New("loop needs a fire controller")
	}
	return &Loop{
		hw:     hw,
		env:    env,
		firer:  firer,
		clk:    clk,
		opts:   opts,
		logger: logger,
		state:  RunState{SegmentIndex: -1},
	}, nil
}

// State returns a snapshot of the run state.
func (l *Loop) State() RunState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *Loop) updateState(fn func(*RunState)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(&l.state)
}

// Run executes p until the environment goes inactive or ctx is done. Every iteration
// services telemetry and the drive, kicks off the current step's segment, runs its fire
// action to completion if it has one and then advances the step index. Iterations past
// the end of the plan only service telemetry and the drive.
//
// A stop that arrives during a fire action is observed once the action returns. A
// cancelled fire action ends the run without error.
func (l *Loop) Run(ctx context.Context, p *plan.Plan) error {
	if p == nil {
		return errors.New("no plan to run")
	}
	l.updateState(func(s *RunState) {
		*s = RunState{Plan: p, SegmentIndex: -1}
	})
	l.logger.Infow("running plan", "plan", p.String(), "fire_steps", p.FireSteps())

	for l.env.IsActive() {
		if err := ctx.Err(); err != nil {
			return err
		}
		cancelled, err := l.iterate(ctx, p)
		if err != nil {
			return err
		}
		if cancelled {
			l.logger.Infow("run stopped during fire action", "pp", l.State().PP)
			return nil
		}
		if l.opts.Period > 0 && !goutils.SelectContextOrWaitChan(ctx, l.clk.After(l.opts.Period)) {
			return ctx.Err()
		}
	}
	l.logger.Infow("run complete", "pp", l.State().PP)
	return nil
}

// iterate runs the body of one loop iteration. cancelled reports a fire action cut short
// by a stop.
func (l *Loop) iterate(ctx context.Context, p *plan.Plan) (cancelled bool, err error) {
	pp := l.State().PP
	step, ok := p.StepAt(pp)

	l.hw.Telemetry.AddData("step index", pp)
	if ok {
		l.hw.Telemetry.AddData("step", step.Name)
	}
	l.hw.Telemetry.Update()

	if err := l.hw.Drive.Update(ctx); err != nil {
		return false, errors.Wrap(err, "updating drive")
	}

	if ok {
		if step.Segment != nil {
			if err := l.hw.Drive.FollowTrajectory(ctx, step.Segment); err != nil {
				return false, errors.Wrapf(err, "following %s", step.Name)
			}
			l.updateState(func(s *RunState) { s.SegmentIndex = pp })
		}
		if step.Fire != nil {
			cancelled, err = l.fire(ctx, step)
			if err != nil {
				return false, err
			}
		}
	}

	// TODO: advance on segment completion (Drive.IsBusy) once match timing is re-measured
	// with that cadence; until then a segment is handed over and the next step follows
	// one iteration later.
	l.updateState(func(s *RunState) { s.PP++ })
	return cancelled, nil
}

// fire runs step's fire action and then zeroes the shooter exactly once, whatever the
// action's outcome.
func (l *Loop) fire(ctx context.Context, step plan.Step) (bool, error) {
	l.logger.Debugw("firing", "step", step.Name, "power", step.Fire.Power, "mode", step.Fire.Mode)
	fireErr := l.firer.Fire(ctx, step.Fire.Power, step.Fire.Mode)
	l.updateState(func(s *RunState) { s.Fires++ })

	if err := l.hw.Shooter.SetPower(context.WithoutCancel(ctx), 0); err != nil {
		return false, multierr.Combine(fireErr, errors.Wrap(err, "stopping shooter"))
	}
	if errors.Is(fireErr, fire.ErrFireCancelled) {
		return true, nil
	}
	if fireErr != nil {
		return false, errors.Wrapf(fireErr, "firing at %s", step.Name)
	}
	return false, nil
}
