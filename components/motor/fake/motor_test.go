package fake

import (
	"context"
	"testing"

	"go.viam.com/test"

	"github.com/ringbot/autoseq/components/motor"
	"github.com/ringbot/autoseq/logging"
)

func TestFakeMotor(t *testing.T) {
	ctx := context.Background()
	m := NewMotor("shooter", logging.NewTestLogger(t))

	test.That(t, m.SetInverted(ctx, true), test.ShouldBeNil)
	test.That(t, m.SetRunMode(ctx, motor.VelocityControl), test.ShouldBeNil)
	test.That(t, m.SetVelocityCoefficients(ctx, 0.3, 0, 0), test.ShouldBeNil)
	test.That(t, m.SetFeedforwardCoefficients(ctx, 1, 1.305), test.ShouldBeNil)

	inverted, mode, pid, ff := m.Settings()
	test.That(t, inverted, test.ShouldBeTrue)
	test.That(t, mode, test.ShouldEqual, motor.VelocityControl)
	test.That(t, pid, test.ShouldResemble, [3]float64{0.3, 0, 0})
	test.That(t, ff, test.ShouldResemble, [2]float64{1, 1.305})

	test.That(t, m.SetPower(ctx, 0.76), test.ShouldBeNil)
	power, err := m.Power(ctx)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, power, test.ShouldEqual, 0.76)

	err = m.SetPower(ctx, 1.2)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "motor shooter")
	test.That(t, m.PowerWrites(), test.ShouldEqual, 1)
}

func TestRunModeString(t *testing.T) {
	test.That(t, motor.VelocityControl.String(), test.ShouldEqual, "velocity_control")
	test.That(t, motor.RunMode(9).String(), test.ShouldEqual, "RunMode(9)")
}
