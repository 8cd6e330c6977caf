package motionplan

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"github.com/ringbot/autoseq/spatialmath"
	"github.com/ringbot/autoseq/utils"
)

// samplesPerCurve is how many polyline pieces a spline move is sampled into.
const samplesPerCurve = 16

// ErrEmptySegment is returned when Build is called before any move was added.
var ErrEmptySegment = errors.New("cannot build a segment with no moves")

// Builder composes moves into a Segment. Moves chain from the end of the previous move.
type Builder interface {
	Forward(distance float64) Builder
	Back(distance float64) Builder
	StrafeLeft(distance float64) Builder
	StrafeRight(distance float64) Builder
	LineToSplineHeading(end spatialmath.Pose) Builder
	SplineTo(end r2.Point, endTangent float64) Builder
	SplineToSplineHeading(end spatialmath.Pose, endTangent float64) Builder
	// WithMaxVelocity caps the velocity of the whole segment below the builder default.
	WithMaxVelocity(maxVel float64) Builder
	Build() (*Segment, error)
}

// Constraints are the kinematic limits a segment is timed against.
type Constraints struct {
	MaxVel float64 `json:"max_vel_in_per_sec"`
	MaxAcc float64 `json:"max_acc_in_per_sec2"`
}

// Validate ensures the constraints can time a segment.
func (c Constraints) Validate() error {
	if c.MaxVel <= 0 {
		return errors.Errorf("max_vel_in_per_sec must be positive, got %v", c.MaxVel)
	}
	if c.MaxAcc <= 0 {
		return errors.Errorf("max_acc_in_per_sec2 must be positive, got %v", c.MaxAcc)
	}
	return nil
}

type pathBuilder struct {
	constraints Constraints
	waypoints   []spatialmath.Pose
	tangent     float64
	moves       int
}

// NewBuilder starts a segment at start. The initial travel tangent is the start heading.
func NewBuilder(start spatialmath.Pose, constraints Constraints) Builder {
	return &pathBuilder{
		constraints: constraints,
		waypoints:   []spatialmath.Pose{start},
		tangent:     start.Heading,
	}
}

func (b *pathBuilder) last() spatialmath.Pose {
	return b.waypoints[len(b.waypoints)-1]
}

func (b *pathBuilder) line(end spatialmath.Pose) Builder {
	from := b.last()
	if delta := end.Point.Sub(from.Point); delta.Norm() > 0 {
		b.tangent = math.Atan2(delta.Y, delta.X)
	}
	b.waypoints = append(b.waypoints, end)
	b.moves++
	return b
}

func (b *pathBuilder) Forward(distance float64) Builder {
	return b.line(b.last().Plus(distance, 0, 0))
}

func (b *pathBuilder) Back(distance float64) Builder {
	return b.Forward(-distance)
}

func (b *pathBuilder) StrafeLeft(distance float64) Builder {
	return b.line(b.last().Plus(0, distance, 0))
}

func (b *pathBuilder) StrafeRight(distance float64) Builder {
	return b.StrafeLeft(-distance)
}

func (b *pathBuilder) LineToSplineHeading(end spatialmath.Pose) Builder {
	return b.line(end)
}

func (b *pathBuilder) SplineTo(end r2.Point, endTangent float64) Builder {
	return b.curve(end, endTangent, nil)
}

func (b *pathBuilder) SplineToSplineHeading(end spatialmath.Pose, endTangent float64) Builder {
	heading := end.Heading
	return b.curve(end.Point, endTangent, &heading)
}

// curve samples a cubic Hermite curve from the current position and tangent to end. When
// endHeading is nil the robot faces along the curve, otherwise heading is interpolated
// linearly toward endHeading.
func (b *pathBuilder) curve(end r2.Point, endTangent float64, endHeading *float64) Builder {
	from := b.last()
	chord := end.Sub(from.Point).Norm()
	m0 := r2.Point{X: math.Cos(b.tangent), Y: math.Sin(b.tangent)}.Mul(chord)
	m1 := r2.Point{X: math.Cos(endTangent), Y: math.Sin(endTangent)}.Mul(chord)

	for i := 1; i <= samplesPerCurve; i++ {
		u := float64(i) / samplesPerCurve
		u2, u3 := u*u, u*u*u
		pt := from.Point.Mul(2*u3 - 3*u2 + 1).
			Add(m0.Mul(u3 - 2*u2 + u)).
			Add(end.Mul(-2*u3 + 3*u2)).
			Add(m1.Mul(u3 - u2))

		var heading float64
		if endHeading == nil {
			deriv := from.Point.Mul(6*u2 - 6*u).
				Add(m0.Mul(3*u2 - 4*u + 1)).
				Add(end.Mul(-6*u2 + 6*u)).
				Add(m1.Mul(3*u2 - 2*u))
			heading = math.Atan2(deriv.Y, deriv.X)
			if deriv.Norm() == 0 {
				heading = endTangent
			}
		} else {
			heading = from.Heading + utils.WrapRad(*endHeading-from.Heading)*u
		}
		b.waypoints = append(b.waypoints, spatialmath.Pose{Point: pt, Heading: utils.WrapRad(heading)})
	}
	b.tangent = endTangent
	b.moves++
	return b
}

func (b *pathBuilder) WithMaxVelocity(maxVel float64) Builder {
	if maxVel > 0 && maxVel < b.constraints.MaxVel {
		b.constraints.MaxVel = maxVel
	}
	return b
}

func (b *pathBuilder) Build() (*Segment, error) {
	if b.moves == 0 {
		return nil, ErrEmptySegment
	}
	if err := b.constraints.Validate(); err != nil {
		return nil, err
	}
	waypoints := append([]spatialmath.Pose(nil), b.waypoints...)
	return newSegment(waypoints, b.constraints.MaxVel, b.constraints.MaxAcc)
}
