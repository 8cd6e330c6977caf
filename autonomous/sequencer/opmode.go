package sequencer

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/ringbot/autoseq/autonomous"
	"github.com/ringbot/autoseq/autonomous/plan"
	"github.com/ringbot/autoseq/components/base"
	"github.com/ringbot/autoseq/components/motor"
	"github.com/ringbot/autoseq/logging"
	"github.com/ringbot/autoseq/spatialmath"
	"github.com/ringbot/autoseq/utils"
	"github.com/ringbot/autoseq/vision"
)

// ShooterSettings configure the shooter's velocity loop before the run.
type ShooterSettings struct {
	Inverted bool
	// KP, KI and KD are the velocity loop gains.
	KP, KI, KD float64
	// KS is the static feedforward gain.
	KS float64
	// KV is the velocity feedforward gain at NominalVoltage. It is scaled by
	// NominalVoltage over the measured battery voltage.
	KV             float64
	NominalVoltage float64
}

// DefaultShooterSettings returns the tuned shooter gains.
func DefaultShooterSettings() ShooterSettings {
	return ShooterSettings{
		Inverted:       true,
		KP:             0.3,
		KS:             1,
		KV:             1.305,
		NominalVoltage: 12,
	}
}

// CompensatedKV returns KV scaled for the battery at volts.
func (s ShooterSettings) CompensatedKV(volts float64) (float64, error) {
	if volts <= 0 {
		return 0, errors.Errorf("battery voltage must be positive, got %v", volts)
	}
	return s.KV * s.NominalVoltage / volts, nil
}

// OpModeConfig is everything an opmode needs besides its collaborators.
type OpModeConfig struct {
	StartPose spatialmath.Pose
	Shooter   ShooterSettings
	// Stable gates classification on consecutive agreeing reads. Required <= 1 reads once.
	Stable vision.StableOptions
}

// Report summarizes one run.
type Report struct {
	RunID          uuid.UUID
	Classification vision.Classification
	Plan           *plan.Plan
	State          RunState
}

// OpMode is one autonomous period from setup to stop.
type OpMode struct {
	hw         *autonomous.Hardware
	env        autonomous.Environment
	classifier vision.Classifier
	selector   *plan.Selector
	loop       *Loop
	cfg        OpModeConfig
	logger     logging.Logger
}

// NewOpMode returns an opmode.
func NewOpMode(
	hw *autonomous.Hardware,
	env autonomous.Environment,
	classifier vision.Classifier,
	selector *plan.Selector,
	loop *Loop,
	cfg OpModeConfig,
	logger logging.Logger,
) (*OpMode, error) {
	if err := hw.Validate(); err != nil {
		return nil, err
	}
	switch {
	case env == nil:
		return nil, errors.New("opmode needs an environment")
	case classifier == nil:
		return nil, errors.New("opmode needs a classifier")
	case selector == nil:
		return nil, errors.New("opmode needs a plan selector")
	case loop == nil:
		return nil, errors.New("opmode needs a loop")
	}
	return &OpMode{
		hw:         hw,
		env:        env,
		classifier: classifier,
		selector:   selector,
		loop:       loop,
		cfg:        cfg,
		logger:     logger,
	}, nil
}

// Run sets the robot up, waits for the start signal, classifies the stack once and runs
// the matching plan until the environment stops.
func (o *OpMode) Run(ctx context.Context) (report Report, err error) {
	report.RunID = uuid.New()
	logger := o.logger.Sublogger(report.RunID.String()[:8])
	logger.Infow("autonomous setup", "run_id", report.RunID, "start", o.cfg.StartPose)

	if err := o.configureShooter(ctx); err != nil {
		return report, err
	}
	if err := o.hw.Drive.SetPoseEstimate(ctx, o.cfg.StartPose); err != nil {
		return report, errors.Wrap(err, "seeding pose estimate")
	}
	if err := o.classifier.Start(ctx); err != nil {
		return report, errors.Wrap(err, "starting classifier")
	}
	defer func() {
		multierr.AppendInto(&err, errors.Wrap(o.classifier.Close(context.WithoutCancel(ctx)), "closing classifier"))
	}()

	stopWaitingLog := utils.SlowLogger(ctx, "waiting for start signal", logger, "run_id", report.RunID)
	err = o.env.WaitForStart(ctx)
	stopWaitingLog()
	if err != nil {
		return report, err
	}
	if err := base.Stop(ctx, o.hw.Drive); err != nil {
		return report, errors.Wrap(err, "stopping drive motors")
	}

	cls, err := o.classify(ctx, logger)
	if err != nil {
		return report, err
	}
	report.Classification = cls
	o.hw.Telemetry.AddData("Ring stack size", cls.String())
	o.hw.Telemetry.Update()
	logger.Infow("ring stack classified", "classification", cls)

	p, err := o.selector.Select(cls, o.cfg.StartPose)
	if err != nil {
		return report, err
	}
	report.Plan = p

	err = o.loop.Run(ctx, p)
	report.State = o.loop.State()
	logger.Infow("autonomous finished", "pp", report.State.PP, "fires", report.State.Fires, "error", err)
	return report, err
}

func (o *OpMode) configureShooter(ctx context.Context) error {
	s := o.cfg.Shooter
	volts, err := o.hw.Battery.Voltage(ctx)
	if err != nil {
		return errors.Wrap(err, "reading battery voltage")
	}
	kv, err := s.CompensatedKV(volts)
	if err != nil {
		return err
	}
	shooter := o.hw.Shooter
	return multierr.Combine(
		shooter.SetInverted(ctx, s.Inverted),
		shooter.SetRunMode(ctx, motor.VelocityControl),
		shooter.SetVelocityCoefficients(ctx, s.KP, s.KI, s.KD),
		shooter.SetFeedforwardCoefficients(ctx, s.KS, kv),
	)
}

func (o *OpMode) classify(ctx context.Context, logger logging.Logger) (vision.Classification, error) {
	return vision.ReadStable(ctx, o.classifier, o.cfg.Stable, logger)
}
