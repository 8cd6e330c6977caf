package motor

import (
	"github.com/pkg/errors"

	"github.com/ringbot/autoseq/utils"
)

// NewPowerOutOfRangeError returns an error for a power command outside [-1, 1].
func NewPowerOutOfRangeError(motorName string, powerPct float64) error {
	return errors.Wrapf(utils.NewOutOfRangeError("power", powerPct, -1, 1), "motor %s", motorName)
}

// CheckPower returns an error if powerPct is outside [-1, 1].
func CheckPower(motorName string, powerPct float64) error {
	if powerPct < -1 || powerPct > 1 {
		return NewPowerOutOfRangeError(motorName, powerPct)
	}
	return nil
}
