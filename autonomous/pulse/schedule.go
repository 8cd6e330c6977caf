// Package pulse evaluates time-windowed actuator tables: given the seconds elapsed in a
// fire action, which kicker position to command and which corrective turns to make.
package pulse

import (
	"github.com/pkg/errors"
)

// Entry commands Position while Start <= t <= End.
type Entry struct {
	Start    float64 `json:"start_sec"`
	End      float64 `json:"end_sec"`
	Position float64 `json:"position"`
}

// Contains reports whether t falls in the closed window.
func (e Entry) Contains(t float64) bool {
	return e.Start <= t && t <= e.End
}

// Schedule is an ordered set of entries. Windows may overlap and commonly share a
// boundary with the next window.
type Schedule []Entry

// Evaluate returns the position commanded at t. When several windows contain t the last
// declared one wins. ok is false when no window contains t, meaning the actuator keeps
// whatever it was last told.
func (s Schedule) Evaluate(t float64) (position float64, ok bool) {
	for _, e := range s {
		if e.Contains(t) {
			position, ok = e.Position, true
		}
	}
	return position, ok
}

// End returns the latest window end, or zero for an empty schedule.
func (s Schedule) End() float64 {
	var end float64
	for _, e := range s {
		if e.End > end {
			end = e.End
		}
	}
	return end
}

// Validate ensures every window is well formed and every position is in [0, 1].
func (s Schedule) Validate() error {
	for i, e := range s {
		if e.Start < 0 {
			return errors.Errorf("pulse entry %d starts before zero (%v)", i, e.Start)
		}
		if e.End < e.Start {
			return errors.Errorf("pulse entry %d ends (%v) before it starts (%v)", i, e.End, e.Start)
		}
		if e.Position < 0 || e.Position > 1 {
			return errors.Errorf("pulse entry %d position %v out of range [0, 1]", i, e.Position)
		}
	}
	return nil
}

// TurnWindow requests a point turn of AngleDeg degrees while Start <= t < End.
type TurnWindow struct {
	Start    float64 `json:"start_sec"`
	End      float64 `json:"end_sec"`
	AngleDeg float64 `json:"angle_deg"`
}

// Contains reports whether t falls in the half-open window.
func (w TurnWindow) Contains(t float64) bool {
	return w.Start <= t && t < w.End
}

// TurnTable is an ordered set of turn windows.
type TurnTable []TurnWindow

// Active returns every window containing t, in declaration order.
func (tt TurnTable) Active(t float64) []TurnWindow {
	var active []TurnWindow
	for _, w := range tt {
		if w.Contains(t) {
			active = append(active, w)
		}
	}
	return active
}

// NetAngleDeg returns the sum of all turn angles.
func (tt TurnTable) NetAngleDeg() float64 {
	var sum float64
	for _, w := range tt {
		sum += w.AngleDeg
	}
	return sum
}

// Validate ensures every window is well formed.
func (tt TurnTable) Validate() error {
	for i, w := range tt {
		if w.Start < 0 {
			return errors.Errorf("turn window %d starts before zero (%v)", i, w.Start)
		}
		if w.End <= w.Start {
			return errors.Errorf("turn window %d is empty: [%v, %v)", i, w.Start, w.End)
		}
	}
	return nil
}

const (
	kickOut  = 0.3
	kickHome = 0.0
)

// SimpleKicks is the three-ring volley used for goal shots: a kick every two seconds over
// five seconds.
func SimpleKicks() Schedule {
	return Schedule{
		{0, 0.5, kickOut}, {0.5, 1, kickHome},
		{2, 2.5, kickOut}, {2.5, 3, kickHome},
		{4, 4.5, kickOut}, {4.5, 5, kickHome},
	}
}

// PowershotKicks is the twelve second powershot volley: one kick every four seconds, each
// after the matching corrective turn in PowershotTurns.
func PowershotKicks() Schedule {
	return Schedule{
		{2, 3, kickOut}, {3, 4, kickHome},
		{6, 7, kickOut}, {7, 8, kickHome},
		{10, 11, kickOut}, {11, 12, kickHome},
	}
}

// PowershotTurns aims at each powershot target in turn.
func PowershotTurns() TurnTable {
	return TurnTable{
		{0, 1, -5},
		{4.5, 5, 15},
		{8.5, 9, 20},
	}
}
