package fake

import (
	"context"
	"testing"

	"go.viam.com/test"
)

func TestFakeServo(t *testing.T) {
	ctx := context.Background()
	s := NewServo("kicker", 0.1)
	pos, err := s.Position(ctx)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, pos, test.ShouldEqual, 0.1)

	test.That(t, s.SetPosition(ctx, 0.3), test.ShouldBeNil)
	test.That(t, s.SetPosition(ctx, 0.3), test.ShouldBeNil)
	test.That(t, s.Writes(), test.ShouldEqual, 2)

	err = s.SetPosition(ctx, -0.1)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "servo kicker")
	pos, _ = s.Position(ctx)
	test.That(t, pos, test.ShouldEqual, 0.3)
}
