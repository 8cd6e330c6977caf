// Package fake implements a fixed-voltage sensor.
package fake

import (
	"context"

	"github.com/ringbot/autoseq/components/powersensor"
)

// VoltageSensor always reports Volts.
type VoltageSensor struct {
	Volts float64
}

var _ powersensor.VoltageSensor = (*VoltageSensor)(nil)

// Voltage returns the configured voltage.
func (v *VoltageSensor) Voltage(ctx context.Context) (float64, error) {
	return v.Volts, nil
}
