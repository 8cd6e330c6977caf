// Package powersensor defines sensors that report battery state.
package powersensor

import "context"

// A VoltageSensor reports the battery bus voltage.
type VoltageSensor interface {
	Voltage(ctx context.Context) (float64, error)
}
