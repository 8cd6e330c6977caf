package fire

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Mode selects which fire sequence runs.
type Mode int

const (
	// ModeSimple runs the short goal volley. The drive is not serviced.
	ModeSimple Mode = iota
	// ModeExtended runs the long volley and services the drive every iteration.
	ModeExtended
	// ModePowershot is ModeExtended plus corrective turns between kicks.
	ModePowershot
)

func (m Mode) String() string {
	switch m {
	case ModeSimple:
		return "simple"
	case ModeExtended:
		return "extended"
	case ModePowershot:
		return "powershot"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Extended reports whether the mode uses the extended profile and services the drive.
func (m Mode) Extended() bool {
	return m == ModeExtended || m == ModePowershot
}

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "simple", "":
		return ModeSimple, nil
	case "extended":
		return ModeExtended, nil
	case "powershot":
		return ModePowershot, nil
	default:
		return ModeSimple, errors.Errorf("unknown fire mode %q", s)
	}
}

// MarshalText encodes the mode by name.
func (m Mode) MarshalText() ([]byte, error) {
	switch m {
	case ModeSimple, ModeExtended, ModePowershot:
		return []byte(m.String()), nil
	default:
		return nil, errors.Errorf("cannot marshal unknown fire mode %d", int(m))
	}
}

// UnmarshalText decodes a mode name.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
