package utils

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestAngles(t *testing.T) {
	test.That(t, DegToRad(180), test.ShouldAlmostEqual, math.Pi)
	test.That(t, RadToDeg(math.Pi/2), test.ShouldAlmostEqual, 90)
	test.That(t, AngleDiffDeg(350, 10), test.ShouldAlmostEqual, 20)
	test.That(t, ModAngDeg(-90), test.ShouldAlmostEqual, 270)

	test.That(t, WrapRad(3*math.Pi/2), test.ShouldAlmostEqual, -math.Pi/2)
	test.That(t, WrapRad(math.Pi), test.ShouldAlmostEqual, math.Pi)
	test.That(t, WrapRad(-math.Pi), test.ShouldAlmostEqual, math.Pi)
	test.That(t, WrapRad(0.25), test.ShouldAlmostEqual, 0.25)
}

func TestClamp(t *testing.T) {
	test.That(t, Clamp(1.5, -1, 1), test.ShouldEqual, 1)
	test.That(t, Clamp(-3, -1, 1), test.ShouldEqual, -1)
	test.That(t, Clamp(0.2, -1, 1), test.ShouldEqual, 0.2)
	test.That(t, Float64AlmostEqual(0.1+0.2, 0.3, 1e-9), test.ShouldBeTrue)
}

func TestOutOfRangeError(t *testing.T) {
	err := NewOutOfRangeError("power", 1.5, -1, 1)
	test.That(t, err.Error(), test.ShouldEqual, "power 1.500 out of range [-1.000, 1.000]")
}
