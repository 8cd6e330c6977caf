package sim

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"

	"github.com/ringbot/autoseq/config"
	"github.com/ringbot/autoseq/logging"
	"github.com/ringbot/autoseq/vision"
	"github.com/ringbot/autoseq/vision/ringstack"
)

// Arguments for the command.
type Arguments struct {
	ConfigFile     string `flag:"0,required,usage=autonomous config file"`
	Debug          bool   `flag:"debug"`
	Classification string `flag:"classification,usage=override the simulated ring stack (low, high or unclassified)"`
	LogFile        string `flag:"log-file,usage=also write JSON logs to this file"`
}

// DetectionFor returns a bounding box the default pipeline classifies as cls.
func DetectionFor(cls vision.Classification) ringstack.Detection {
	switch cls {
	case vision.Low:
		return ringstack.Detection{Found: true, Width: 80, Height: 24}
	case vision.High:
		return ringstack.Detection{Found: true, Width: 80, Height: 64}
	default:
		return ringstack.Detection{}
	}
}

// RunSimulation reads a config and runs one simulated autonomous period against the wall
// clock.
func RunSimulation(ctx context.Context, args []string, logger logging.Logger) error {
	var argsParsed Arguments
	if err := utils.ParseFlags(args, &argsParsed); err != nil {
		return err
	}

	if argsParsed.LogFile != "" {
		fileLogger, closer := logging.NewFileLogger("autoseq", logger.GetLevel(), argsParsed.LogFile)
		defer utils.UncheckedErrorFunc(closer.Close)
		logger = fileLogger
	}

	readCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	cfg, err := config.Read(readCtx, argsParsed.ConfigFile, logger)
	cancel()
	if err != nil {
		return err
	}
	if argsParsed.Debug {
		logger.SetLevel(logging.DEBUG)
	} else {
		logger.SetLevel(cfg.LogLevel)
	}
	if argsParsed.Classification != "" {
		cls, err := vision.ParseClassification(argsParsed.Classification)
		if err != nil {
			return err
		}
		det := DetectionFor(cls)
		cfg.Classification.SimulatedDetection = &det
	}

	s, err := New(cfg, clock.New(), logger)
	if err != nil {
		return errors.Wrap(err, "cannot build simulation")
	}
	report, err := s.Run(ctx)
	pose, poseErr := s.Drive.PoseEstimate(ctx)
	logger.Infow("simulation done",
		"run_id", report.RunID,
		"classification", report.Classification,
		"steps", report.State.PP,
		"fires", report.State.Fires,
		"pose", pose.String(),
		"shooter_commands", s.Shooter.PowerWrites(),
		"kicker_commands", s.Kicker.Writes(),
	)
	if report.Plan != nil {
		logger.Info("\n" + report.Plan.Table())
	}
	return multierr.Combine(err, poseErr)
}
