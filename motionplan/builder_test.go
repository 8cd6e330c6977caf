package motionplan

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/golang/geo/r2"
	"go.viam.com/test"

	"github.com/ringbot/autoseq/spatialmath"
)

var testConstraints = Constraints{MaxVel: 30, MaxAcc: 30}

func TestTrapezoidProfile(t *testing.T) {
	t.Run("trapezoid", func(t *testing.T) {
		p, err := NewTrapezoidProfile(60, 30, 30)
		test.That(t, err, test.ShouldBeNil)
		// 1s up, 1s cruise, 1s down
		test.That(t, p.Duration(), test.ShouldEqual, 3*time.Second)
		test.That(t, p.Distance(time.Second), test.ShouldAlmostEqual, 15)
		test.That(t, p.Distance(2*time.Second), test.ShouldAlmostEqual, 45)
		test.That(t, p.Distance(4*time.Second), test.ShouldAlmostEqual, 60)
		test.That(t, p.Velocity(1500*time.Millisecond), test.ShouldAlmostEqual, 30)
		test.That(t, p.Velocity(-time.Second), test.ShouldEqual, 0)
	})

	t.Run("triangle", func(t *testing.T) {
		p, err := NewTrapezoidProfile(-7.5, 30, 30)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, p.Duration(), test.ShouldEqual, time.Second)
		test.That(t, p.Distance(500*time.Millisecond), test.ShouldAlmostEqual, 3.75)
		test.That(t, p.Velocity(500*time.Millisecond), test.ShouldAlmostEqual, 15)
	})

	t.Run("bad limits", func(t *testing.T) {
		_, err := NewTrapezoidProfile(1, 0, 30)
		test.That(t, err, test.ShouldNotBeNil)
		_, err = NewTrapezoidProfile(1, 30, -1)
		test.That(t, err.Error(), test.ShouldContainSubstring, "max_acc")
	})
}

func TestBuilderStraightMoves(t *testing.T) {
	start := spatialmath.NewPoseDegrees(-63, -40, 180)
	seg, err := NewBuilder(start, testConstraints).Back(6).Build()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, seg.Start(), test.ShouldResemble, start)
	test.That(t, seg.End().X(), test.ShouldAlmostEqual, -57)
	test.That(t, seg.End().Heading, test.ShouldAlmostEqual, start.Heading)
	test.That(t, seg.Length(), test.ShouldAlmostEqual, 6)

	strafe, err := NewBuilder(seg.End(), testConstraints).StrafeRight(10).Build()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, strafe.End().Y(), test.ShouldAlmostEqual, -30)
	test.That(t, strafe.End().X(), test.ShouldAlmostEqual, -57)

	test.That(t, spatialmath.PoseAlmostEqual(seg.PoseAt(0), start, 1e-9), test.ShouldBeTrue)
	test.That(t, seg.PoseAt(seg.Duration()+time.Second), test.ShouldResemble, seg.End())
	half := seg.PoseAt(seg.Duration() / 2)
	test.That(t, half.X(), test.ShouldAlmostEqual, -60, 1e-6)
}

func TestBuilderSplines(t *testing.T) {
	start := spatialmath.NewPoseDegrees(-10, -11, 20)
	end := spatialmath.NewPoseDegrees(29, -20, 0)
	seg, err := NewBuilder(start, testConstraints).SplineToSplineHeading(end, 0).Build()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.PoseAlmostEqual(seg.End(), end, 1e-9), test.ShouldBeTrue)
	test.That(t, len(seg.Waypoints()), test.ShouldEqual, samplesPerCurve+1)
	test.That(t, seg.Length(), test.ShouldBeGreaterThanOrEqualTo, start.DistanceTo(end))

	tangentSeg, err := NewBuilder(spatialmath.NewPoseDegrees(-63, -40, 0), testConstraints).
		WithMaxVelocity(20).
		SplineTo(r2.Point{X: -10, Y: -11}, 0.5).
		Build()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tangentSeg.End().X(), test.ShouldAlmostEqual, -10)
	test.That(t, tangentSeg.End().Y(), test.ShouldAlmostEqual, -11)
	// facing along the curve means the end heading is the end tangent
	test.That(t, tangentSeg.End().Heading, test.ShouldAlmostEqual, 0.5, 1e-6)
	test.That(t, math.Abs(tangentSeg.VelocityAt(tangentSeg.Duration()/2)), test.ShouldBeLessThanOrEqualTo, 20)
}

func TestBuilderErrors(t *testing.T) {
	_, err := NewBuilder(spatialmath.NewPose(0, 0, 0), testConstraints).Build()
	test.That(t, errors.Is(err, ErrEmptySegment), test.ShouldBeTrue)

	_, err = NewBuilder(spatialmath.NewPose(0, 0, 0), Constraints{MaxVel: 10}).Forward(3).Build()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "max_acc_in_per_sec2")
}
