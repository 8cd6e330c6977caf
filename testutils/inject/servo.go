package inject

import (
	"context"

	"github.com/ringbot/autoseq/components/servo"
)

// Servo is an injected servo.
type Servo struct {
	servo.Servo
	SetPositionFunc func(ctx context.Context, pos float64) error
	PositionFunc    func(ctx context.Context) (float64, error)
}

// SetPosition calls the injected SetPosition or the real version.
func (s *Servo) SetPosition(ctx context.Context, pos float64) error {
	if s.SetPositionFunc == nil {
		return s.Servo.SetPosition(ctx, pos)
	}
	return s.SetPositionFunc(ctx, pos)
}

// Position calls the injected Position or the real version.
func (s *Servo) Position(ctx context.Context) (float64, error) {
	if s.PositionFunc == nil {
		return s.Servo.Position(ctx)
	}
	return s.PositionFunc(ctx)
}
