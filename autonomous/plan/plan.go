// Package plan turns a ring stack classification into the run's motion plan: the same four
// steps for every classification, with only the approach and park targets varying.
package plan

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/ringbot/autoseq/autonomous/fire"
	"github.com/ringbot/autoseq/motionplan"
	"github.com/ringbot/autoseq/vision"
)

// Step names, in plan order.
const (
	StepBackOff  = "back_off"
	StepStrafe   = "strafe"
	StepApproach = "approach"
	StepPark     = "park"
)

// FireAction marks a step whose segment is followed by a fire sequence.
type FireAction struct {
	Power float64   `json:"power"`
	Mode  fire.Mode `json:"mode"`
}

// A Step is one entry of a plan. Segment is nil for a step that only waits.
type Step struct {
	Name    string
	Segment *motionplan.Segment
	Fire    *FireAction
}

// A Plan is the ordered list of steps for one run. It is immutable once built.
type Plan struct {
	Classification vision.Classification
	Steps          []Step
}

// Len returns the number of steps.
func (p *Plan) Len() int {
	return len(p.Steps)
}

// StepAt returns the step at index pp. ok is false for indices past the end of the plan.
func (p *Plan) StepAt(pp int) (Step, bool) {
	if pp < 0 || pp >= len(p.Steps) {
		return Step{}, false
	}
	return p.Steps[pp], true
}

// FireSteps returns the indices of steps carrying a fire action.
func (p *Plan) FireSteps() []int {
	return lo.FilterMap(p.Steps, func(s Step, i int) (int, bool) {
		return i, s.Fire != nil
	})
}

// StepNames returns the step names in order.
func (p *Plan) StepNames() []string {
	return lo.Map(p.Steps, func(s Step, _ int) string {
		return s.Name
	})
}

func (p *Plan) String() string {
	return fmt.Sprintf("plan[%s: %s]", p.Classification, strings.Join(p.StepNames(), " -> "))
}
