// Package motionplan builds the followable path segments handed to the drive. Geometry is
// deliberately simple: polylines sampled from straight moves and cubic Hermite curves,
// timed with a trapezoidal velocity profile.
package motionplan

import (
	"time"

	"github.com/ringbot/autoseq/spatialmath"
)

// Segment is a precomputed, immutable motion plan between two poses.
type Segment struct {
	waypoints  []spatialmath.Pose
	cumulative []float64
	profile    TrapezoidProfile
}

// Start returns the pose the segment begins at.
func (s *Segment) Start() spatialmath.Pose {
	return s.waypoints[0]
}

// End returns the pose the segment finishes at.
func (s *Segment) End() spatialmath.Pose {
	return s.waypoints[len(s.waypoints)-1]
}

// Length returns the path length in inches.
func (s *Segment) Length() float64 {
	return s.cumulative[len(s.cumulative)-1]
}

// Duration returns how long the segment takes to follow.
func (s *Segment) Duration() time.Duration {
	return s.profile.Duration()
}

// Waypoints returns a copy of the sampled poses along the segment.
func (s *Segment) Waypoints() []spatialmath.Pose {
	return append([]spatialmath.Pose(nil), s.waypoints...)
}

// PoseAt returns the reference pose t into the segment.
func (s *Segment) PoseAt(t time.Duration) spatialmath.Pose {
	if t >= s.Duration() {
		return s.End()
	}
	return s.poseAtDistance(s.profile.Distance(t))
}

// VelocityAt returns the reference speed t into the segment.
func (s *Segment) VelocityAt(t time.Duration) float64 {
	return s.profile.Velocity(t)
}

func (s *Segment) poseAtDistance(d float64) spatialmath.Pose {
	if d <= 0 {
		return s.Start()
	}
	for i := 1; i < len(s.cumulative); i++ {
		if d > s.cumulative[i] {
			continue
		}
		span := s.cumulative[i] - s.cumulative[i-1]
		if span == 0 {
			return s.waypoints[i]
		}
		return spatialmath.Interpolate(s.waypoints[i-1], s.waypoints[i], (d-s.cumulative[i-1])/span)
	}
	return s.End()
}

func newSegment(waypoints []spatialmath.Pose, maxVel, maxAcc float64) (*Segment, error) {
	cumulative := make([]float64, len(waypoints))
	for i := 1; i < len(waypoints); i++ {
		cumulative[i] = cumulative[i-1] + waypoints[i].DistanceTo(waypoints[i-1])
	}
	profile, err := NewTrapezoidProfile(cumulative[len(cumulative)-1], maxVel, maxAcc)
	if err != nil {
		return nil, err
	}
	return &Segment{waypoints: waypoints, cumulative: cumulative, profile: profile}, nil
}
