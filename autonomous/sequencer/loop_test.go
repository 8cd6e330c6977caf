package sequencer_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"github.com/ringbot/autoseq/autonomous"
	"github.com/ringbot/autoseq/autonomous/fire"
	"github.com/ringbot/autoseq/autonomous/plan"
	"github.com/ringbot/autoseq/autonomous/sequencer"
	basefake "github.com/ringbot/autoseq/components/base/fake"
	powerfake "github.com/ringbot/autoseq/components/powersensor/fake"
	servofake "github.com/ringbot/autoseq/components/servo/fake"
	"github.com/ringbot/autoseq/logging"
	"github.com/ringbot/autoseq/motionplan"
	"github.com/ringbot/autoseq/spatialmath"
	"github.com/ringbot/autoseq/telemetry"
	"github.com/ringbot/autoseq/testutils/inject"
	"github.com/ringbot/autoseq/vision"
)

var startPose = spatialmath.NewPoseDegrees(-63, -40, 180)

type firerFunc func(ctx context.Context, power float64, mode fire.Mode) error

func (f firerFunc) Fire(ctx context.Context, power float64, mode fire.Mode) error {
	return f(ctx, power, mode)
}

// harness records every drive and shooter command as an event string. Shooter commands
// advance the mock clock by tick.
type harness struct {
	clk       *clock.Mock
	start     time.Time
	tick      time.Duration
	events    []string
	stepNames map[*motionplan.Segment]string
	hw        *autonomous.Hardware
	recorder  *telemetry.Recorder
	logger    logging.Logger
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		clk:       clock.NewMock(),
		tick:      500 * time.Millisecond,
		stepNames: map[*motionplan.Segment]string{},
		recorder:  &telemetry.Recorder{},
		logger:    logging.NewTestLogger(t),
	}
	h.start = h.clk.Now()

	fakeDrive := basefake.NewDrive(h.clk, motionplan.Constraints{MaxVel: 50, MaxAcc: 40}, h.logger)
	drive := &inject.Drive{Drive: fakeDrive}
	drive.UpdateFunc = func(ctx context.Context) error {
		h.events = append(h.events, "update")
		return fakeDrive.Update(ctx)
	}
	drive.FollowTrajectoryFunc = func(ctx context.Context, seg *motionplan.Segment) error {
		h.events = append(h.events, "follow:"+h.stepNames[seg])
		return fakeDrive.FollowTrajectory(ctx, seg)
	}
	shooter := &inject.Motor{}
	shooter.SetPowerFunc = func(ctx context.Context, powerPct float64) error {
		h.events = append(h.events, fmt.Sprintf("power:%v", powerPct))
		if powerPct != 0 {
			h.clk.Add(h.tick)
		}
		return nil
	}
	h.hw = &autonomous.Hardware{
		Drive:     drive,
		Shooter:   shooter,
		Kicker:    servofake.NewServo("kicker", 0),
		Battery:   &powerfake.VoltageSensor{Volts: 12},
		Telemetry: h.recorder,
	}
	return h
}

func (h *harness) elapsed() time.Duration {
	return h.clk.Since(h.start)
}

func (h *harness) plan(t *testing.T, cls vision.Classification) *plan.Plan {
	t.Helper()
	s, err := plan.NewSelector(h.hw.Drive, plan.DefaultLayout(), h.logger)
	test.That(t, err, test.ShouldBeNil)
	p, err := s.Select(cls, startPose)
	test.That(t, err, test.ShouldBeNil)
	for _, step := range p.Steps {
		h.stepNames[step.Segment] = step.Name
	}
	return p
}

func (h *harness) count(event string) int {
	n := 0
	for _, e := range h.events {
		if e == event {
			n++
		}
	}
	return n
}

// activeFor returns an environment active for n IsActive checks.
func activeFor(n int) *inject.Environment {
	checks := 0
	return &inject.Environment{IsActiveFunc: func() bool {
		checks++
		return checks <= n
	}}
}

func TestLoopStepsThroughPlan(t *testing.T) {
	h := newHarness(t)
	p := h.plan(t, vision.Low)

	var fired []plan.FireAction
	firer := firerFunc(func(ctx context.Context, power float64, mode fire.Mode) error {
		h.events = append(h.events, "fire")
		fired = append(fired, plan.FireAction{Power: power, Mode: mode})
		return nil
	})
	loop, err := sequencer.NewLoop(h.hw, activeFor(6), firer, h.clk, sequencer.LoopOptions{}, h.logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, loop.State().SegmentIndex, test.ShouldEqual, -1)

	test.That(t, loop.Run(context.Background(), p), test.ShouldBeNil)

	test.That(t, h.events, test.ShouldResemble, []string{
		"update", "follow:back_off",
		"update", "follow:strafe",
		"update", "follow:approach", "fire", "power:0",
		"update", "follow:park",
		// past the end of the plan only the drive is serviced
		"update",
		"update",
	})
	test.That(t, fired, test.ShouldResemble, []plan.FireAction{{Power: 0.76, Mode: fire.ModePowershot}})

	state := loop.State()
	test.That(t, state.PP, test.ShouldEqual, 6)
	test.That(t, state.SegmentIndex, test.ShouldEqual, 3)
	test.That(t, state.Fires, test.ShouldEqual, 1)
	test.That(t, state.Plan, test.ShouldEqual, p)

	test.That(t, h.recorder.Updates, test.ShouldEqual, 6)
	last, ok := h.recorder.Last("step index")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, last, test.ShouldEqual, 5)
	last, _ = h.recorder.Last("step")
	test.That(t, last, test.ShouldEqual, plan.StepPark)
}

func TestLoopStopsWithinOneIteration(t *testing.T) {
	h := newHarness(t)
	p := h.plan(t, vision.High)
	firer := firerFunc(func(ctx context.Context, power float64, mode fire.Mode) error {
		t.Fatal("fire should not be reached")
		return nil
	})
	loop, err := sequencer.NewLoop(h.hw, activeFor(2), firer, h.clk, sequencer.LoopOptions{}, h.logger)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, loop.Run(context.Background(), p), test.ShouldBeNil)
	test.That(t, h.events, test.ShouldResemble, []string{"update", "follow:back_off", "update", "follow:strafe"})
	test.That(t, loop.State().PP, test.ShouldEqual, 2)
}

func TestLoopStopDuringFire(t *testing.T) {
	for _, tc := range []struct {
		name        string
		cancelAware bool
		firePowers  int
	}{
		// 0, 0.5, ..., 12 seconds
		{"deferred until fire completes", false, 25},
		// 0, 0.5, ..., 2.5 seconds
		{"cancel aware stops at the next fire iteration", true, 6},
	} {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			p := h.plan(t, vision.Unclassified)
			env := &inject.Environment{IsActiveFunc: func() bool {
				return h.elapsed() < 3*time.Second
			}}
			controller, err := fire.NewController(
				h.hw, env, h.clk, fire.DefaultProfiles(), fire.Options{CancelAware: tc.cancelAware}, h.logger)
			test.That(t, err, test.ShouldBeNil)
			loop, err := sequencer.NewLoop(h.hw, env, controller, h.clk, sequencer.LoopOptions{}, h.logger)
			test.That(t, err, test.ShouldBeNil)

			test.That(t, loop.Run(context.Background(), p), test.ShouldBeNil)

			test.That(t, h.count("power:0.76"), test.ShouldEqual, tc.firePowers)
			test.That(t, h.count("power:0"), test.ShouldEqual, 1)
			test.That(t, h.events[len(h.events)-1], test.ShouldEqual, "power:0")
			test.That(t, h.count("follow:park"), test.ShouldEqual, 0)

			state := loop.State()
			test.That(t, state.PP, test.ShouldEqual, 3)
			test.That(t, state.Fires, test.ShouldEqual, 1)
			test.That(t, state.SegmentIndex, test.ShouldEqual, 2)
		})
	}
}

func TestLoopFireError(t *testing.T) {
	h := newHarness(t)
	p := h.plan(t, vision.Low)
	firer := firerFunc(func(ctx context.Context, power float64, mode fire.Mode) error {
		return errors.New("kicker jammed")
	})
	loop, err := sequencer.NewLoop(h.hw, activeFor(10), firer, h.clk, sequencer.LoopOptions{}, h.logger)
	test.That(t, err, test.ShouldBeNil)

	err = loop.Run(context.Background(), p)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "kicker jammed")
	test.That(t, err.Error(), test.ShouldContainSubstring, plan.StepApproach)
	// the shooter is still stopped
	test.That(t, h.count("power:0"), test.ShouldEqual, 1)
	test.That(t, loop.State().PP, test.ShouldEqual, 2)
}

func TestLoopContextCancelled(t *testing.T) {
	h := newHarness(t)
	p := h.plan(t, vision.Low)
	loop, err := sequencer.NewLoop(h.hw, activeFor(10), firerFunc(func(context.Context, float64, fire.Mode) error {
		return nil
	}), h.clk, sequencer.LoopOptions{}, h.logger)
	test.That(t, err, test.ShouldBeNil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	test.That(t, loop.Run(ctx, p), test.ShouldEqual, context.Canceled)
	test.That(t, h.events, test.ShouldBeEmpty)

	test.That(t, loop.Run(context.Background(), nil), test.ShouldNotBeNil)
}

func TestNewLoopValidation(t *testing.T) {
	h := newHarness(t)
	noop := firerFunc(func(context.Context, float64, fire.Mode) error { return nil })

	_, err := sequencer.NewLoop(nil, activeFor(1), noop, h.clk, sequencer.LoopOptions{}, h.logger)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = sequencer.NewLoop(h.hw, nil, noop, h.clk, sequencer.LoopOptions{}, h.logger)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = sequencer.NewLoop(h.hw, activeFor(1), nil, h.clk, sequencer.LoopOptions{}, h.logger)
	test.That(t, err, test.ShouldNotBeNil)

	h.hw.Kicker = nil
	_, err = sequencer.NewLoop(h.hw, activeFor(1), noop, h.clk, sequencer.LoopOptions{}, h.logger)
	test.That(t, err.Error(), test.ShouldContainSubstring, "kicker")
}
