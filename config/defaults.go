package config

import (
	"time"

	"github.com/pkg/errors"

	"github.com/ringbot/autoseq/autonomous/fire"
	"github.com/ringbot/autoseq/autonomous/plan"
	"github.com/ringbot/autoseq/autonomous/sequencer"
	"github.com/ringbot/autoseq/logging"
	"github.com/ringbot/autoseq/motionplan"
	"github.com/ringbot/autoseq/utils"
	"github.com/ringbot/autoseq/vision"
	"github.com/ringbot/autoseq/vision/ringstack"
)

// Default returns the competition configuration. Files are decoded on top of it, so a
// file only needs the fields it changes.
func Default() *Config {
	layout := plan.DefaultLayout()
	targets := make(map[string]Targets, len(layout.Targets))
	for cls, t := range layout.Targets {
		targets[cls.String()] = Targets{
			Approach:           Pose{t.Approach.X(), t.Approach.Y(), utils.RadToDeg(t.Approach.Heading)},
			ApproachTangentDeg: utils.RadToDeg(t.ApproachTangent),
			ApproachMaxVel:     t.ApproachMaxVel,
			Park:               Pose{t.Park.X(), t.Park.Y(), utils.RadToDeg(t.Park.Heading)},
			ParkTangentDeg:     utils.RadToDeg(t.ParkTangent),
		}
	}
	shooter := sequencer.DefaultShooterSettings()
	pipeline := ringstack.DefaultConfig()

	return &Config{
		LogLevel:  logging.INFO,
		StartPose: Pose{X: -63, Y: -40, HeadingDeg: 180},
		Drive: Drive{
			Constraints:       motionplan.Constraints{MaxVel: 50, MaxAcc: 40},
			TurnRateDegPerSec: 180,
		},
		Shooter: Shooter{
			Inverted:       shooter.Inverted,
			VelocityPID:    [3]float64{shooter.KP, shooter.KI, shooter.KD},
			KS:             shooter.KS,
			KV:             shooter.KV,
			NominalVoltage: shooter.NominalVoltage,
		},
		Fire: Fire{
			Power:       layout.Fire.Power,
			Mode:        layout.Fire.Mode,
			CancelAware: true,
			Profiles:    fire.DefaultProfiles(),
		},
		Plan: Plan{
			BackOffIn:     layout.BackOff,
			StrafeRightIn: layout.StrafeRight,
			Targets:       targets,
		},
		Classification: Classification{
			Pipeline:         pipeline,
			FramePeriodMs:    int(pipeline.FramePeriod / time.Millisecond),
			StableReads:      1,
			StableIntervalMs: 20,
			StableTimeoutMs:  2000,
		},
		Loop: Loop{
			PeriodMs:            10,
			TelemetryIntervalMs: 250,
		},
		Autonomous: AutonomousPeriod{
			PeriodSec: 30,
		},
	}
}

// Layout converts the plan section into a plan layout.
func (c *Config) Layout() (plan.Layout, error) {
	layout := plan.Layout{
		BackOff:     c.Plan.BackOffIn,
		StrafeRight: c.Plan.StrafeRightIn,
		Fire:        plan.FireAction{Power: c.Fire.Power, Mode: c.Fire.Mode},
		Targets:     make(map[vision.Classification]plan.Targets, len(c.Plan.Targets)),
	}
	for name, t := range c.Plan.Targets {
		cls, err := vision.ParseClassification(name)
		if err != nil {
			return plan.Layout{}, err
		}
		if _, dup := layout.Targets[cls]; dup {
			return plan.Layout{}, errors.Errorf("targets for %s given twice", cls)
		}
		layout.Targets[cls] = plan.Targets{
			Approach:        t.Approach.ToPose(),
			ApproachTangent: utils.DegToRad(t.ApproachTangentDeg),
			ApproachMaxVel:  t.ApproachMaxVel,
			Park:            t.Park.ToPose(),
			ParkTangent:     utils.DegToRad(t.ParkTangentDeg),
		}
	}
	return layout, layout.Validate()
}

// PipelineConfig returns the ring stack classifier config.
func (c *Config) PipelineConfig() ringstack.Config {
	cfg := c.Classification.Pipeline
	cfg.FramePeriod = time.Duration(c.Classification.FramePeriodMs) * time.Millisecond
	return cfg
}

// OpModeConfig returns the opmode config.
func (c *Config) OpModeConfig() sequencer.OpModeConfig {
	return sequencer.OpModeConfig{
		StartPose: c.StartPose.ToPose(),
		Shooter:   c.Shooter.Settings(),
		Stable: vision.StableOptions{
			Required: c.Classification.StableReads,
			Interval: time.Duration(c.Classification.StableIntervalMs) * time.Millisecond,
			Timeout:  time.Duration(c.Classification.StableTimeoutMs) * time.Millisecond,
		},
	}
}

// LoopOptions returns the step loop options.
func (c *Config) LoopOptions() sequencer.LoopOptions {
	return sequencer.LoopOptions{Period: time.Duration(c.Loop.PeriodMs) * time.Millisecond}
}

// TelemetryInterval is the minimum time between telemetry log lines.
func (c *Config) TelemetryInterval() time.Duration {
	return time.Duration(c.Loop.TelemetryIntervalMs) * time.Millisecond
}

// StartDelay is the wait before the simulated start signal.
func (c *Config) StartDelay() time.Duration {
	return time.Duration(c.Autonomous.StartDelayMs) * time.Millisecond
}

// Period is the length of the autonomous period.
func (c *Config) Period() time.Duration {
	return time.Duration(c.Autonomous.PeriodSec * float64(time.Second))
}

// TurnRate is the simulated point turn rate in rad/s.
func (c *Config) TurnRate() float64 {
	return utils.DegToRad(c.Drive.TurnRateDegPerSec)
}
