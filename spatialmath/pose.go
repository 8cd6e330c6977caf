package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"

	"github.com/ringbot/autoseq/utils"
)

// Pose is a planar robot pose in the field frame: a position in inches and a heading in
// radians measured counter-clockwise from the +X axis.
type Pose struct {
	Point   r2.Point
	Heading float64
}

// NewPose returns a pose at (x, y) facing heading radians.
func NewPose(x, y, heading float64) Pose {
	return Pose{Point: r2.Point{X: x, Y: y}, Heading: heading}
}

// NewPoseDegrees returns a pose at (x, y) facing headingDeg degrees.
func NewPoseDegrees(x, y, headingDeg float64) Pose {
	return NewPose(x, y, utils.DegToRad(headingDeg))
}

// X returns the x coordinate.
func (p Pose) X() float64 { return p.Point.X }

// Y returns the y coordinate.
func (p Pose) Y() float64 { return p.Point.Y }

// HeadingVec returns the unit vector the pose is facing.
func (p Pose) HeadingVec() r2.Point {
	return r2.Point{X: math.Cos(p.Heading), Y: math.Sin(p.Heading)}
}

// Plus composes a robot-relative offset onto the pose: dx forward, dy left, dTheta
// counter-clockwise.
func (p Pose) Plus(dx, dy, dTheta float64) Pose {
	fwd := p.HeadingVec()
	left := fwd.Ortho()
	pt := p.Point.Add(fwd.Mul(dx)).Add(left.Mul(dy))
	return Pose{Point: pt, Heading: utils.WrapRad(p.Heading + dTheta)}
}

// DistanceTo returns the euclidean distance between the positions of two poses.
func (p Pose) DistanceTo(o Pose) float64 {
	return p.Point.Sub(o.Point).Norm()
}

// Interpolate returns the pose a fraction `by` of the way from p to o, taking the short way
// around for heading.
func Interpolate(p, o Pose, by float64) Pose {
	by = utils.Clamp(by, 0, 1)
	pt := p.Point.Add(o.Point.Sub(p.Point).Mul(by))
	dTheta := utils.WrapRad(o.Heading - p.Heading)
	return Pose{Point: pt, Heading: utils.WrapRad(p.Heading + dTheta*by)}
}

// PoseAlmostEqual returns whether two poses are within epsilon in position and heading.
func PoseAlmostEqual(a, b Pose, epsilon float64) bool {
	return a.DistanceTo(b) < epsilon && math.Abs(utils.WrapRad(a.Heading-b.Heading)) < epsilon
}

func (p Pose) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.1fdeg)", p.Point.X, p.Point.Y, utils.RadToDeg(p.Heading))
}
