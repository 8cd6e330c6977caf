package motionplan

import (
	"math"
	"time"

	"github.com/pkg/errors"
)

// TrapezoidProfile is a symmetric accelerate / cruise / decelerate velocity profile over a
// fixed distance. When the distance is too short to reach the cruise velocity the profile
// degenerates into a triangle.
type TrapezoidProfile struct {
	distance  float64
	maxAcc    float64
	peakVel   float64
	accelTime float64
	cruise    float64
}

// NewTrapezoidProfile computes a profile covering distance (inches) limited by maxVel
// (in/s) and maxAcc (in/s^2).
func NewTrapezoidProfile(distance, maxVel, maxAcc float64) (TrapezoidProfile, error) {
	if maxVel <= 0 {
		return TrapezoidProfile{}, errors.Errorf("trapezoidal velocity profile needs a positive max_vel, got %v", maxVel)
	}
	if maxAcc <= 0 {
		return TrapezoidProfile{}, errors.Errorf("trapezoidal velocity profile needs a positive max_acc, got %v", maxAcc)
	}
	distance = math.Abs(distance)
	p := TrapezoidProfile{distance: distance, maxAcc: maxAcc}

	// distance covered while ramping to maxVel and back down again
	rampDistance := maxVel * maxVel / maxAcc
	if distance < rampDistance {
		p.peakVel = math.Sqrt(distance * maxAcc)
		p.accelTime = p.peakVel / maxAcc
		return p, nil
	}
	p.peakVel = maxVel
	p.accelTime = maxVel / maxAcc
	p.cruise = (distance - rampDistance) / maxVel
	return p, nil
}

// Duration returns the total time of the profile.
func (p TrapezoidProfile) Duration() time.Duration {
	return time.Duration(p.seconds() * float64(time.Second))
}

func (p TrapezoidProfile) seconds() float64 {
	return 2*p.accelTime + p.cruise
}

// Distance returns the distance travelled after t, clamped to [0, distance].
func (p TrapezoidProfile) Distance(t time.Duration) float64 {
	s := t.Seconds()
	total := p.seconds()
	switch {
	case s <= 0:
		return 0
	case s >= total:
		return p.distance
	case s < p.accelTime:
		return 0.5 * p.maxAcc * s * s
	case s < p.accelTime+p.cruise:
		return 0.5*p.peakVel*p.accelTime + p.peakVel*(s-p.accelTime)
	default:
		remaining := total - s
		return p.distance - 0.5*p.maxAcc*remaining*remaining
	}
}

// Velocity returns the commanded speed after t.
func (p TrapezoidProfile) Velocity(t time.Duration) float64 {
	s := t.Seconds()
	total := p.seconds()
	switch {
	case s <= 0 || s >= total:
		return 0
	case s < p.accelTime:
		return p.maxAcc * s
	case s < p.accelTime+p.cruise:
		return p.peakVel
	default:
		return p.maxAcc * (total - s)
	}
}
