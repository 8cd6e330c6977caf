// Package fake implements a fake servo.
package fake

import (
	"context"

	"go.uber.org/atomic"

	"github.com/ringbot/autoseq/components/servo"
)

// Servo is a fake servo that remembers its last position.
type Servo struct {
	Name string

	position atomic.Float64
	writes   atomic.Int64
}

var _ servo.Servo = (*Servo)(nil)

// NewServo returns a fake servo resting at start.
func NewServo(name string, start float64) *Servo {
	s := &Servo{Name: name}
	s.position.Store(start)
	return s
}

// SetPosition records pos.
func (s *Servo) SetPosition(ctx context.Context, pos float64) error {
	if err := servo.CheckPosition(s.Name, pos); err != nil {
		return err
	}
	s.position.Store(pos)
	s.writes.Inc()
	return nil
}

// Position returns the last position.
func (s *Servo) Position(ctx context.Context) (float64, error) {
	return s.position.Load(), nil
}

// Writes returns how many position commands were accepted.
func (s *Servo) Writes() int64 {
	return s.writes.Load()
}
