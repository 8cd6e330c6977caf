// Package config defines the structures used to configure an autonomous run.
package config

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"go.viam.com/utils"

	"github.com/ringbot/autoseq/autonomous/fire"
	"github.com/ringbot/autoseq/autonomous/sequencer"
	"github.com/ringbot/autoseq/components/motor"
	"github.com/ringbot/autoseq/logging"
	"github.com/ringbot/autoseq/motionplan"
	"github.com/ringbot/autoseq/spatialmath"
	"github.com/ringbot/autoseq/vision"
	"github.com/ringbot/autoseq/vision/ringstack"
)

// A Config describes one robot's autonomous setup.
type Config struct {
	ConfigFilePath string `json:"-"`

	LogLevel       logging.Level    `json:"log_level"`
	StartPose      Pose             `json:"start_pose"`
	Drive          Drive            `json:"drive"`
	Shooter        Shooter          `json:"shooter"`
	Fire           Fire             `json:"fire"`
	Plan           Plan             `json:"plan"`
	Classification Classification   `json:"classification"`
	Loop           Loop             `json:"loop"`
	Autonomous     AutonomousPeriod `json:"autonomous"`
}

// Pose is a field pose in inches with the heading in degrees.
type Pose struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	HeadingDeg float64 `json:"heading_deg"`
}

// ToPose converts to a spatialmath pose.
func (p Pose) ToPose() spatialmath.Pose {
	return spatialmath.NewPoseDegrees(p.X, p.Y, p.HeadingDeg)
}

// Drive configures the chassis.
type Drive struct {
	motionplan.Constraints
	// TurnRateDegPerSec is the simulated point turn speed. Zero turns instantly.
	TurnRateDegPerSec float64 `json:"turn_rate_deg_per_sec,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (d *Drive) Validate(path string) error {
	if err := d.Constraints.Validate(); err != nil {
		return utils.NewConfigValidationError(path, err)
	}
	if d.TurnRateDegPerSec < 0 {
		return utils.NewConfigValidationError(path, errors.New("turn_rate_deg_per_sec must not be negative"))
	}
	return nil
}

// Shooter configures the shooter's velocity loop.
type Shooter struct {
	Inverted       bool       `json:"inverted"`
	VelocityPID    [3]float64 `json:"velocity_pid"`
	KS             float64    `json:"ks"`
	KV             float64    `json:"kv"`
	NominalVoltage float64    `json:"nominal_voltage"`
}

// Validate ensures all parts of the config are valid.
func (s *Shooter) Validate(path string) error {
	if s.NominalVoltage <= 0 {
		return utils.NewConfigValidationFieldRequiredError(path, "nominal_voltage")
	}
	return nil
}

// Settings converts to the opmode's shooter settings.
func (s *Shooter) Settings() sequencer.ShooterSettings {
	return sequencer.ShooterSettings{
		Inverted:       s.Inverted,
		KP:             s.VelocityPID[0],
		KI:             s.VelocityPID[1],
		KD:             s.VelocityPID[2],
		KS:             s.KS,
		KV:             s.KV,
		NominalVoltage: s.NominalVoltage,
	}
}

// Fire configures the fire action and its controller.
type Fire struct {
	Power        float64       `json:"power"`
	Mode         fire.Mode     `json:"mode"`
	CancelAware  bool          `json:"cancel_aware"`
	LoopPeriodMs int           `json:"loop_period_ms,omitempty"`
	Profiles     fire.Profiles `json:"profiles"`
}

// Validate ensures all parts of the config are valid.
func (f *Fire) Validate(path string) error {
	if err := motor.CheckPower("shooter", f.Power); err != nil {
		return utils.NewConfigValidationError(path, err)
	}
	if f.LoopPeriodMs < 0 {
		return utils.NewConfigValidationError(path, errors.New("loop_period_ms must not be negative"))
	}
	if err := f.Profiles.Validate(); err != nil {
		return utils.NewConfigValidationError(path, err)
	}
	return nil
}

// Options returns the controller options.
func (f *Fire) Options() fire.Options {
	return fire.Options{
		CancelAware: f.CancelAware,
		LoopPeriod:  time.Duration(f.LoopPeriodMs) * time.Millisecond,
	}
}

// Targets are one classification's plan targets.
type Targets struct {
	Approach           Pose    `json:"approach"`
	ApproachTangentDeg float64 `json:"approach_tangent_deg"`
	ApproachMaxVel     float64 `json:"approach_max_vel_in_per_sec,omitempty"`
	Park               Pose    `json:"park"`
	ParkTangentDeg     float64 `json:"park_tangent_deg"`
}

// Plan configures the plan layout. Targets are keyed by classification name.
type Plan struct {
	BackOffIn     float64            `json:"back_off_in"`
	StrafeRightIn float64            `json:"strafe_right_in"`
	Targets       map[string]Targets `json:"targets"`
}

// UnmarshalJSON decodes a plan section. A targets object replaces the existing targets
// instead of merging into them, since classification names have aliases.
func (p *Plan) UnmarshalJSON(data []byte) error {
	type plain Plan
	previous := p.Targets
	p.Targets = nil

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode((*plain)(p)); err != nil {
		return err
	}
	if p.Targets == nil {
		p.Targets = previous
	}
	return nil
}

// Validate ensures all parts of the config are valid.
func (p *Plan) Validate(path string) error {
	for name := range p.Targets {
		if _, err := vision.ParseClassification(name); err != nil {
			return utils.NewConfigValidationError(path, err)
		}
	}
	return nil
}

// Classification configures the ring stack classifier.
type Classification struct {
	Pipeline ringstack.Config `json:"pipeline"`
	// FramePeriodMs paces the classifier's frame sampling.
	FramePeriodMs int `json:"frame_period_ms"`
	// StableReads is how many agreeing reads are needed. One or less reads once.
	StableReads      int `json:"stable_reads"`
	StableIntervalMs int `json:"stable_interval_ms"`
	StableTimeoutMs  int `json:"stable_timeout_ms"`
	// SimulatedDetection is the bounding box the simulator's camera sees.
	SimulatedDetection *ringstack.Detection `json:"simulated_detection,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (c *Classification) Validate(path string) error {
	if err := c.Pipeline.Validate(); err != nil {
		return utils.NewConfigValidationError(path, err)
	}
	if c.FramePeriodMs <= 0 {
		return utils.NewConfigValidationFieldRequiredError(path, "frame_period_ms")
	}
	if c.StableReads > 1 && c.StableTimeoutMs <= 0 {
		return utils.NewConfigValidationFieldRequiredError(path, "stable_timeout_ms")
	}
	return nil
}

// Loop configures the step loop and telemetry.
type Loop struct {
	PeriodMs            int `json:"period_ms"`
	TelemetryIntervalMs int `json:"telemetry_interval_ms"`
}

// Validate ensures all parts of the config are valid.
func (l *Loop) Validate(path string) error {
	if l.PeriodMs < 0 || l.TelemetryIntervalMs < 0 {
		return utils.NewConfigValidationError(path, errors.New("periods must not be negative"))
	}
	return nil
}

// AutonomousPeriod configures the match timing.
type AutonomousPeriod struct {
	StartDelayMs int     `json:"start_delay_ms"`
	PeriodSec    float64 `json:"period_sec"`
}

// Validate ensures all parts of the config are valid.
func (a *AutonomousPeriod) Validate(path string) error {
	if a.PeriodSec <= 0 {
		return utils.NewConfigValidationFieldRequiredError(path, "period_sec")
	}
	if a.StartDelayMs < 0 {
		return utils.NewConfigValidationError(path, errors.New("start_delay_ms must not be negative"))
	}
	return nil
}

// Ensure ensures all parts of the config are valid.
func (c *Config) Ensure() error {
	for _, v := range []struct {
		path string
		fn   func(string) error
	}{
		{"drive", c.Drive.Validate},
		{"shooter", c.Shooter.Validate},
		{"fire", c.Fire.Validate},
		{"plan", c.Plan.Validate},
		{"classification", c.Classification.Validate},
		{"loop", c.Loop.Validate},
		{"autonomous", c.Autonomous.Validate},
	} {
		if err := v.fn(v.path); err != nil {
			return err
		}
	}
	if _, err := c.Layout(); err != nil {
		return utils.NewConfigValidationError("plan", err)
	}
	return nil
}
