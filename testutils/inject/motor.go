package inject

import (
	"context"

	"github.com/ringbot/autoseq/components/motor"
)

// Motor is an injected motor.
type Motor struct {
	motor.Motor
	SetInvertedFunc                func(ctx context.Context, inverted bool) error
	SetRunModeFunc                 func(ctx context.Context, mode motor.RunMode) error
	SetVelocityCoefficientsFunc    func(ctx context.Context, kp, ki, kd float64) error
	SetFeedforwardCoefficientsFunc func(ctx context.Context, ks, kv float64) error
	SetPowerFunc                   func(ctx context.Context, powerPct float64) error
	PowerFunc                      func(ctx context.Context) (float64, error)
}

// SetInverted calls the injected SetInverted or the real version.
func (m *Motor) SetInverted(ctx context.Context, inverted bool) error {
	if m.SetInvertedFunc == nil {
		return m.Motor.SetInverted(ctx, inverted)
	}
	return m.SetInvertedFunc(ctx, inverted)
}

// SetRunMode calls the injected SetRunMode or the real version.
func (m *Motor) SetRunMode(ctx context.Context, mode motor.RunMode) error {
	if m.SetRunModeFunc == nil {
		return m.Motor.SetRunMode(ctx, mode)
	}
	return m.SetRunModeFunc(ctx, mode)
}

// SetVelocityCoefficients calls the injected SetVelocityCoefficients or the real version.
func (m *Motor) SetVelocityCoefficients(ctx context.Context, kp, ki, kd float64) error {
	if m.SetVelocityCoefficientsFunc == nil {
		return m.Motor.SetVelocityCoefficients(ctx, kp, ki, kd)
	}
	return m.SetVelocityCoefficientsFunc(ctx, kp, ki, kd)
}

// SetFeedforwardCoefficients calls the injected SetFeedforwardCoefficients or the real version.
func (m *Motor) SetFeedforwardCoefficients(ctx context.Context, ks, kv float64) error {
	if m.SetFeedforwardCoefficientsFunc == nil {
		return m.Motor.SetFeedforwardCoefficients(ctx, ks, kv)
	}
	return m.SetFeedforwardCoefficientsFunc(ctx, ks, kv)
}

// SetPower calls the injected SetPower or the real version.
func (m *Motor) SetPower(ctx context.Context, powerPct float64) error {
	if m.SetPowerFunc == nil {
		return m.Motor.SetPower(ctx, powerPct)
	}
	return m.SetPowerFunc(ctx, powerPct)
}

// Power calls the injected Power or the real version.
func (m *Motor) Power(ctx context.Context) (float64, error) {
	if m.PowerFunc == nil {
		return m.Motor.Power(ctx)
	}
	return m.PowerFunc(ctx)
}
