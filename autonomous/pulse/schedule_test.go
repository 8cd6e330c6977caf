package pulse

import (
	"testing"

	"go.viam.com/test"
)

func TestEvaluateLaterDeclaredWins(t *testing.T) {
	s := Schedule{{2, 3, 0.3}, {2.6, 3, 0.1}}

	pos, ok := s.Evaluate(2.6)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, pos, test.ShouldEqual, 0.1)

	pos, ok = s.Evaluate(2.5)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, pos, test.ShouldEqual, 0.3)

	// closed upper bound
	pos, ok = s.Evaluate(3)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, pos, test.ShouldEqual, 0.1)

	// reversed declaration flips the tie
	reversed := Schedule{{2.6, 3, 0.1}, {2, 3, 0.3}}
	pos, _ = reversed.Evaluate(2.6)
	test.That(t, pos, test.ShouldEqual, 0.3)
}

func TestEvaluateNoWindowHolds(t *testing.T) {
	s := PowershotKicks()
	for _, tt := range []float64{0, 1.99, 4.1, 5.5, 12.01} {
		_, ok := s.Evaluate(tt)
		test.That(t, ok, test.ShouldBeFalse)
	}
	_, ok := Schedule{}.Evaluate(1)
	test.That(t, ok, test.ShouldBeFalse)
}

func TestSharedBoundaries(t *testing.T) {
	simple := SimpleKicks()
	for _, tc := range []struct {
		t        float64
		expected float64
	}{
		{0, 0.3},
		{0.25, 0.3},
		{0.5, 0}, // shared by the kick and the return, return declared later
		{1, 0},
		{2, 0.3},
		{2.5, 0},
		{4.5, 0},
		{5, 0},
	} {
		pos, ok := simple.Evaluate(tc.t)
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, pos, test.ShouldEqual, tc.expected)
	}

	pos, ok := PowershotKicks().Evaluate(3)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, pos, test.ShouldEqual, 0)
	test.That(t, PowershotKicks().End(), test.ShouldEqual, 12)
	test.That(t, SimpleKicks().End(), test.ShouldEqual, 5)
}

func TestTurnTable(t *testing.T) {
	turns := PowershotTurns()
	test.That(t, turns.Active(0), test.ShouldResemble, []TurnWindow{{0, 1, -5}})
	test.That(t, turns.Active(0.99), test.ShouldResemble, []TurnWindow{{0, 1, -5}})
	test.That(t, turns.Active(1), test.ShouldBeEmpty)
	test.That(t, turns.Active(4.5), test.ShouldResemble, []TurnWindow{{4.5, 5, 15}})
	test.That(t, turns.Active(5), test.ShouldBeEmpty)
	test.That(t, turns.Active(8.75), test.ShouldResemble, []TurnWindow{{8.5, 9, 20}})
	test.That(t, turns.NetAngleDeg(), test.ShouldEqual, 30)

	overlapping := TurnTable{{0, 2, 1}, {1, 3, 2}}
	test.That(t, overlapping.Active(1.5), test.ShouldResemble, []TurnWindow{{0, 2, 1}, {1, 3, 2}})
}

func TestValidate(t *testing.T) {
	test.That(t, SimpleKicks().Validate(), test.ShouldBeNil)
	test.That(t, PowershotKicks().Validate(), test.ShouldBeNil)
	test.That(t, PowershotTurns().Validate(), test.ShouldBeNil)

	test.That(t, Schedule{{3, 2, 0.3}}.Validate(), test.ShouldNotBeNil)
	test.That(t, Schedule{{-1, 2, 0.3}}.Validate(), test.ShouldNotBeNil)
	test.That(t, Schedule{{1, 2, 1.3}}.Validate().Error(), test.ShouldContainSubstring, "out of range")
	// a zero-length closed window is a single instant and is allowed
	test.That(t, Schedule{{2, 2, 0.3}}.Validate(), test.ShouldBeNil)

	test.That(t, TurnTable{{1, 1, 5}}.Validate(), test.ShouldNotBeNil)
	test.That(t, TurnTable{{-1, 1, 5}}.Validate(), test.ShouldNotBeNil)
}
