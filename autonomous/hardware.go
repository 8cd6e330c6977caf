// Package autonomous holds what every part of the autonomous run shares: the hardware
// context handed down by reference and the environment's start/stop signal.
package autonomous

import (
	"github.com/pkg/errors"

	"github.com/ringbot/autoseq/components/base"
	"github.com/ringbot/autoseq/components/motor"
	"github.com/ringbot/autoseq/components/powersensor"
	"github.com/ringbot/autoseq/components/servo"
	"github.com/ringbot/autoseq/telemetry"
)

// Hardware is the set of devices one run drives. There is exactly one per run and it is
// passed by pointer; nothing else holds device handles.
type Hardware struct {
	Drive     base.Drive
	Shooter   motor.Motor
	Kicker    servo.Servo
	Battery   powersensor.VoltageSensor
	Telemetry telemetry.Sink
}

// Validate ensures every device is present.
func (hw *Hardware) Validate() error {
	switch {
	case hw == nil:
		return errors.New("no hardware provided")
	case hw.Drive == nil:
		return errors.New("hardware is missing the drive")
	case hw.Shooter == nil:
		return errors.New("hardware is missing the shooter motor")
	case hw.Kicker == nil:
		return errors.New("hardware is missing the kicker servo")
	case hw.Battery == nil:
		return errors.New("hardware is missing the battery voltage sensor")
	case hw.Telemetry == nil:
		return errors.New("hardware is missing the telemetry sink")
	}
	return nil
}
