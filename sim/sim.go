// Package sim assembles a complete autonomous run on fake hardware: a kinematic drive, a
// recording shooter and kicker, and a ring stack classifier fed a fixed bounding box.
package sim

import (
	"context"

	"github.com/benbjohnson/clock"

	"github.com/ringbot/autoseq/autonomous"
	"github.com/ringbot/autoseq/autonomous/fire"
	"github.com/ringbot/autoseq/autonomous/plan"
	"github.com/ringbot/autoseq/autonomous/sequencer"
	basefake "github.com/ringbot/autoseq/components/base/fake"
	motorfake "github.com/ringbot/autoseq/components/motor/fake"
	powerfake "github.com/ringbot/autoseq/components/powersensor/fake"
	servofake "github.com/ringbot/autoseq/components/servo/fake"
	"github.com/ringbot/autoseq/config"
	"github.com/ringbot/autoseq/logging"
	"github.com/ringbot/autoseq/telemetry"
	"github.com/ringbot/autoseq/utils"
	"github.com/ringbot/autoseq/vision/ringstack"
)

// BatteryVolts is the simulated battery voltage.
const BatteryVolts = 12.8

// A Simulation is one wired autonomous run.
type Simulation struct {
	Drive      *basefake.Drive
	Shooter    *motorfake.Motor
	Kicker     *servofake.Servo
	Battery    *powerfake.VoltageSensor
	Telemetry  *telemetry.LoggingSink
	Env        *autonomous.TimedEnvironment
	Classifier *ringstack.Classifier
	Loop       *sequencer.Loop
	OpMode     *sequencer.OpMode
}

// New wires a simulation from cfg.
func New(cfg *config.Config, clk clock.Clock, logger logging.Logger) (*Simulation, error) {
	drive := basefake.NewDrive(clk, cfg.Drive.Constraints, logger.Sublogger("drive"))
	drive.TurnRate = cfg.TurnRate()

	s := &Simulation{
		Drive:     drive,
		Shooter:   motorfake.NewMotor("shooter", logger.Sublogger("shooter")),
		Kicker:    servofake.NewServo("kicker", 0),
		Battery:   &powerfake.VoltageSensor{Volts: BatteryVolts},
		Telemetry: telemetry.NewLoggingSink(logger.Sublogger("telemetry"), clk, cfg.TelemetryInterval()),
		Env:       autonomous.NewTimedEnvironment(clk, cfg.StartDelay(), cfg.Period()),
	}
	hw := &autonomous.Hardware{
		Drive:     s.Drive,
		Shooter:   s.Shooter,
		Kicker:    s.Kicker,
		Battery:   s.Battery,
		Telemetry: s.Telemetry,
	}

	var source ringstack.StaticSource
	if det := cfg.Classification.SimulatedDetection; det != nil {
		source.Detection = *det
	}
	classifier, err := ringstack.NewClassifier(cfg.PipelineConfig(), source, logger.Sublogger("ringstack"))
	if err != nil {
		return nil, err
	}
	s.Classifier = classifier

	controller, err := fire.NewController(hw, s.Env, clk, cfg.Fire.Profiles, cfg.Fire.Options(), logger.Sublogger("fire"))
	if err != nil {
		return nil, err
	}
	s.Loop, err = sequencer.NewLoop(hw, s.Env, controller, clk, cfg.LoopOptions(), logger.Sublogger("loop"))
	if err != nil {
		return nil, err
	}
	layout, err := cfg.Layout()
	if err != nil {
		return nil, err
	}
	selector, err := plan.NewSelector(s.Drive, layout, logger.Sublogger("plan"))
	if err != nil {
		return nil, err
	}
	s.OpMode, err = sequencer.NewOpMode(hw, s.Env, s.Classifier, selector, s.Loop, cfg.OpModeConfig(), logger)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Run runs the autonomous period. Cancelling ctx acts as an operator stop: the environment
// goes inactive and the run winds down at the loop's next check.
func (s *Simulation) Run(ctx context.Context) (sequencer.Report, error) {
	watcher := utils.NewStoppableWorkers(func(workerCtx context.Context) {
		select {
		case <-ctx.Done():
			s.Env.Stop()
		case <-workerCtx.Done():
		}
	})
	defer watcher.Stop()

	return s.OpMode.Run(context.Background())
}
