package fire

import (
	"github.com/pkg/errors"

	"github.com/ringbot/autoseq/autonomous/pulse"
)

// Profile is one timed fire sequence.
type Profile struct {
	// Duration is how long the sequence runs, in seconds. The last iteration runs at
	// exactly Duration if the clock lands there.
	Duration float64         `json:"duration_sec"`
	Kicks    pulse.Schedule  `json:"kicks"`
	Turns    pulse.TurnTable `json:"turns,omitempty"`
}

// Validate ensures the profile can run.
func (p Profile) Validate() error {
	if p.Duration <= 0 {
		return errors.Errorf("fire duration must be positive, got %v", p.Duration)
	}
	if err := p.Kicks.Validate(); err != nil {
		return err
	}
	return p.Turns.Validate()
}

// Profiles holds the profile used by each mode. Simple serves ModeSimple; Extended serves
// ModeExtended and ModePowershot, and its turns only run in ModePowershot.
type Profiles struct {
	Simple   Profile `json:"simple"`
	Extended Profile `json:"extended"`
}

// DefaultProfiles returns the competition tuned sequences.
func DefaultProfiles() Profiles {
	return Profiles{
		Simple: Profile{
			Duration: 5,
			Kicks:    pulse.SimpleKicks(),
		},
		Extended: Profile{
			Duration: 12,
			Kicks:    pulse.PowershotKicks(),
			Turns:    pulse.PowershotTurns(),
		},
	}
}

// For returns the profile a mode runs.
func (ps Profiles) For(mode Mode) Profile {
	if mode.Extended() {
		return ps.Extended
	}
	return ps.Simple
}

// Validate validates both profiles.
func (ps Profiles) Validate() error {
	if err := ps.Simple.Validate(); err != nil {
		return errors.Wrap(err, "simple profile")
	}
	if err := ps.Extended.Validate(); err != nil {
		return errors.Wrap(err, "extended profile")
	}
	return nil
}
