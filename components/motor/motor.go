// Package motor defines the continuous-output device driving the shooter flywheel.
package motor

import (
	"context"
	"fmt"
)

// RunMode selects how a motor interprets power commands.
type RunMode int

const (
	// RawPower applies power open loop.
	RawPower RunMode = iota
	// VelocityControl treats power as a fraction of max velocity and closes the loop with
	// the configured PIDF coefficients.
	VelocityControl
	// PositionControl drives toward an encoder target.
	PositionControl
)

func (m RunMode) String() string {
	switch m {
	case RawPower:
		return "raw_power"
	case VelocityControl:
		return "velocity_control"
	case PositionControl:
		return "position_control"
	default:
		return fmt.Sprintf("RunMode(%d)", int(m))
	}
}

// A Motor represents a shooter motor with an on-controller velocity loop.
type Motor interface {
	// SetInverted flips the positive direction of rotation.
	SetInverted(ctx context.Context, inverted bool) error

	// SetRunMode selects open loop or closed loop control.
	SetRunMode(ctx context.Context, mode RunMode) error

	// SetVelocityCoefficients sets the velocity loop's PID gains.
	SetVelocityCoefficients(ctx context.Context, kp, ki, kd float64) error

	// SetFeedforwardCoefficients sets the static and velocity feedforward gains.
	SetFeedforwardCoefficients(ctx context.Context, ks, kv float64) error

	// SetPower sets the percentage of power the motor should employ between -1 and 1.
	// Negative power corresponds to a backward direction of rotation.
	SetPower(ctx context.Context, powerPct float64) error

	// Power returns the last commanded power.
	Power(ctx context.Context) (float64, error)
}
