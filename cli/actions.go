package cli

import (
	"context"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/ringbot/autoseq/autonomous/fire"
	"github.com/ringbot/autoseq/autonomous/plan"
	basefake "github.com/ringbot/autoseq/components/base/fake"
	"github.com/ringbot/autoseq/config"
	"github.com/ringbot/autoseq/logging"
	"github.com/ringbot/autoseq/vision"
)

func newLogger(c *cli.Context) logging.Logger {
	logger := logging.NewLogger("plantool")
	if c.Bool(flagDebug) {
		logger.SetLevel(logging.DEBUG)
	} else {
		logger.SetLevel(logging.WARN)
	}
	return logger
}

func loadConfig(c *cli.Context, logger logging.Logger) (*config.Config, error) {
	path := c.String(flagConfig)
	if path == "" {
		cfg := config.Default()
		return cfg, cfg.Ensure()
	}
	return config.Read(context.Background(), path, logger)
}

// PlansAction is the corresponding Action for 'plans'.
func PlansAction(c *cli.Context) error {
	logger := newLogger(c)
	cfg, err := loadConfig(c, logger)
	if err != nil {
		return err
	}
	layout, err := cfg.Layout()
	if err != nil {
		return err
	}
	drive := basefake.NewDrive(clock.New(), cfg.Drive.Constraints, logger)
	selector, err := plan.NewSelector(drive, layout, logger)
	if err != nil {
		return err
	}

	classifications := vision.Classifications
	if name := c.String(flagClassification); name != "" {
		cls, err := vision.ParseClassification(name)
		if err != nil {
			return err
		}
		classifications = []vision.Classification{cls}
	}
	for _, cls := range classifications {
		p, err := selector.Select(cls, cfg.StartPose.ToPose())
		if err != nil {
			return errors.Wrapf(err, "cannot build %s plan", cls)
		}
		printf(c.App.Writer, "%s", p.Table())
	}
	return nil
}

// FireAction is the corresponding Action for 'fire'.
func FireAction(c *cli.Context) error {
	cfg, err := loadConfig(c, newLogger(c))
	if err != nil {
		return err
	}
	mode := cfg.Fire.Mode
	if name := c.String(flagMode); name != "" {
		if mode, err = fire.ParseMode(name); err != nil {
			return err
		}
	}
	step := c.Float64(flagStep)
	if step <= 0 {
		return errors.Errorf("--%s must be positive", flagStep)
	}
	printf(c.App.Writer, "%s", cfg.Fire.Profiles.Table(mode, step))
	return nil
}

// ValidateAction is the corresponding Action for 'validate'.
func ValidateAction(c *cli.Context) error {
	cfg, err := loadConfig(c, newLogger(c))
	if err != nil {
		return err
	}
	layout, err := cfg.Layout()
	if err != nil {
		return err
	}
	source := cfg.ConfigFilePath
	if source == "" {
		source = "defaults"
	}
	printf(c.App.Writer, "config %s is valid", source)
	printf(c.App.Writer, "\tstart pose: %s", cfg.StartPose.ToPose())
	printf(c.App.Writer, "\tfire: %s at %.2f, cancel aware: %t", cfg.Fire.Mode, cfg.Fire.Power, cfg.Fire.CancelAware)
	printf(c.App.Writer, "\ttargets: %v", layout.Classifications())
	printf(c.App.Writer, "\tautonomous period: %v", cfg.Period())
	return nil
}
