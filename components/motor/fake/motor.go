// Package fake implements a fake shooter motor.
package fake

import (
	"context"
	"sync"

	"go.uber.org/atomic"

	"github.com/ringbot/autoseq/components/motor"
	"github.com/ringbot/autoseq/logging"
)

// Motor is a fake motor that records every command it receives.
type Motor struct {
	Name   string
	Logger logging.Logger

	mu       sync.Mutex
	inverted bool
	runMode  motor.RunMode
	kp       float64
	ki       float64
	kd       float64
	ks       float64
	kv       float64

	power       atomic.Float64
	powerWrites atomic.Int64
}

var _ motor.Motor = (*Motor)(nil)

// NewMotor returns a fake motor named name.
func NewMotor(name string, logger logging.Logger) *Motor {
	return &Motor{Name: name, Logger: logger}
}

// SetInverted records the inversion flag.
func (m *Motor) SetInverted(ctx context.Context, inverted bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inverted = inverted
	return nil
}

// SetRunMode records the run mode.
func (m *Motor) SetRunMode(ctx context.Context, mode motor.RunMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runMode = mode
	m.Logger.Debugf("motor %s run mode %v", m.Name, mode)
	return nil
}

// SetVelocityCoefficients records the PID gains.
func (m *Motor) SetVelocityCoefficients(ctx context.Context, kp, ki, kd float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.kp, m.ki, m.kd = kp, ki, kd
	return nil
}

// SetFeedforwardCoefficients records the feedforward gains.
func (m *Motor) SetFeedforwardCoefficients(ctx context.Context, ks, kv float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ks, m.kv = ks, kv
	return nil
}

// SetPower records powerPct.
func (m *Motor) SetPower(ctx context.Context, powerPct float64) error {
	if err := motor.CheckPower(m.Name, powerPct); err != nil {
		return err
	}
	m.power.Store(powerPct)
	m.powerWrites.Inc()
	return nil
}

// Power returns the last commanded power.
func (m *Motor) Power(ctx context.Context) (float64, error) {
	return m.power.Load(), nil
}

// PowerWrites returns how many power commands were accepted.
func (m *Motor) PowerWrites() int64 {
	return m.powerWrites.Load()
}

// Settings returns the configured inversion, run mode, PID and feedforward gains.
func (m *Motor) Settings() (inverted bool, mode motor.RunMode, pid [3]float64, ff [2]float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inverted, m.runMode, [3]float64{m.kp, m.ki, m.kd}, [2]float64{m.ks, m.kv}
}
