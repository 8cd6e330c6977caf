package inject

import (
	"context"

	"github.com/ringbot/autoseq/components/powersensor"
)

// VoltageSensor is an injected voltage sensor.
type VoltageSensor struct {
	powersensor.VoltageSensor
	VoltageFunc func(ctx context.Context) (float64, error)
}

// Voltage calls the injected Voltage or the real version.
func (v *VoltageSensor) Voltage(ctx context.Context) (float64, error) {
	if v.VoltageFunc == nil {
		return v.VoltageSensor.Voltage(ctx)
	}
	return v.VoltageFunc(ctx)
}
