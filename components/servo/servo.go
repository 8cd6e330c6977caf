// Package servo defines the positional actuator used as the shooter's kicker.
package servo

import (
	"context"

	"github.com/pkg/errors"
)

// A Servo moves to a position expressed as a fraction of its travel.
type Servo interface {
	// SetPosition moves the servo to pos in [0, 1]. Repeated commands to the same
	// position are allowed.
	SetPosition(ctx context.Context, pos float64) error

	// Position returns the last commanded position.
	Position(ctx context.Context) (float64, error)
}

// CheckPosition returns an error if pos is outside [0, 1].
func CheckPosition(servoName string, pos float64) error {
	if pos < 0 || pos > 1 {
		return errors.Errorf("servo %s position %.3f out of range [0, 1]", servoName, pos)
	}
	return nil
}
