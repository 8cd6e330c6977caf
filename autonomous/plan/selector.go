package plan

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/ringbot/autoseq/autonomous/fire"
	"github.com/ringbot/autoseq/components/motor"
	"github.com/ringbot/autoseq/logging"
	"github.com/ringbot/autoseq/motionplan"
	"github.com/ringbot/autoseq/spatialmath"
	"github.com/ringbot/autoseq/utils"
	"github.com/ringbot/autoseq/vision"
)

// Targets are the classification specific poses of a plan.
type Targets struct {
	// Approach is where the robot fires from, reached by a spline ending along
	// ApproachTangent at no more than ApproachMaxVel.
	Approach        spatialmath.Pose
	ApproachTangent float64
	ApproachMaxVel  float64
	// Park is where the robot ends the run.
	Park        spatialmath.Pose
	ParkTangent float64
}

// Layout parameterizes every plan. Reposition moves are shared by all classifications.
type Layout struct {
	// BackOff is how far the robot backs away from the wall, in inches.
	BackOff float64
	// StrafeRight is how far the robot then slides right, in inches.
	StrafeRight float64
	Fire        FireAction
	Targets     map[vision.Classification]Targets
}

// DefaultLayout returns the field tuned layout for the red outer start line.
func DefaultLayout() Layout {
	approach := Targets{
		Approach:        spatialmath.NewPose(-10, -11, 0.5),
		ApproachTangent: 0.5,
		ApproachMaxVel:  20,
	}
	low, high, def := approach, approach, approach
	low.Park = spatialmath.NewPose(29, -20, 0)
	high.Approach = spatialmath.NewPoseDegrees(-10, -13, 25)
	high.Park = spatialmath.NewPose(53, -44, 0)
	def.Park = spatialmath.NewPose(5, -44, 0)
	return Layout{
		BackOff:     6,
		StrafeRight: 12,
		Fire:        FireAction{Power: 0.76, Mode: fire.ModePowershot},
		Targets: map[vision.Classification]Targets{
			vision.Low:          low,
			vision.High:         high,
			vision.Unclassified: def,
		},
	}
}

// Validate ensures a plan can be built for every classification.
func (l Layout) Validate() error {
	if l.BackOff <= 0 {
		return utils.NewOutOfRangeError("back_off", l.BackOff, 0, 144)
	}
	if l.StrafeRight <= 0 {
		return utils.NewOutOfRangeError("strafe_right", l.StrafeRight, 0, 144)
	}
	if err := motor.CheckPower("shooter", l.Fire.Power); err != nil {
		return errors.Wrap(err, "fire power")
	}
	if _, ok := l.Targets[vision.Unclassified]; !ok {
		return errors.New("layout needs targets for the unclassified default plan")
	}
	for cls, t := range l.Targets {
		if t.ApproachMaxVel < 0 {
			return errors.Errorf("%s approach max velocity must not be negative", cls)
		}
	}
	return nil
}

// Classifications returns the classifications the layout has explicit targets for.
func (l Layout) Classifications() []vision.Classification {
	return lo.Filter(vision.Classifications, func(c vision.Classification, _ int) bool {
		_, ok := l.Targets[c]
		return ok
	})
}

// targetsFor returns cls's targets, falling through to the default plan's.
func (l Layout) targetsFor(cls vision.Classification) (vision.Classification, Targets) {
	if t, ok := l.Targets[cls]; ok {
		return cls, t
	}
	return vision.Unclassified, l.Targets[vision.Unclassified]
}

// A BuilderFactory starts trajectory builders. Drives satisfy it.
type BuilderFactory interface {
	TrajectoryBuilder(start spatialmath.Pose) motionplan.Builder
}

// A Selector builds the plan for a classification.
type Selector struct {
	builders BuilderFactory
	layout   Layout
	logger   logging.Logger
}

// NewSelector returns a selector over a validated layout.
func NewSelector(builders BuilderFactory, layout Layout, logger logging.Logger) (*Selector, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	return &Selector{builders: builders, layout: layout, logger: logger}, nil
}

// Select builds the four step plan for cls starting at start: back off, strafe, approach
// and fire, park. Classifications without targets get the default plan.
func (s *Selector) Select(cls vision.Classification, start spatialmath.Pose) (*Plan, error) {
	resolved, targets := s.layout.targetsFor(cls)
	if resolved != cls {
		s.logger.Warnw("no targets for classification, using default plan", "classification", cls)
	}

	backOff, err := s.builders.TrajectoryBuilder(start).Back(s.layout.BackOff).Build()
	if err != nil {
		return nil, errors.Wrap(err, "building back off")
	}
	strafe, err := s.builders.TrajectoryBuilder(backOff.End()).StrafeRight(s.layout.StrafeRight).Build()
	if err != nil {
		return nil, errors.Wrap(err, "building strafe")
	}
	approach, err := s.builders.TrajectoryBuilder(strafe.End()).
		SplineToSplineHeading(targets.Approach, targets.ApproachTangent).
		WithMaxVelocity(targets.ApproachMaxVel).
		Build()
	if err != nil {
		return nil, errors.Wrap(err, "building approach")
	}
	park, err := s.builders.TrajectoryBuilder(approach.End()).
		SplineToSplineHeading(targets.Park, targets.ParkTangent).
		Build()
	if err != nil {
		return nil, errors.Wrap(err, "building park")
	}

	fireAction := s.layout.Fire
	p := &Plan{
		Classification: resolved,
		Steps: []Step{
			{Name: StepBackOff, Segment: backOff},
			{Name: StepStrafe, Segment: strafe},
			{Name: StepApproach, Segment: approach, Fire: &fireAction},
			{Name: StepPark, Segment: park},
		},
	}
	s.logger.Debugw("plan selected", "plan", p.String(), "approach", targets.Approach, "park", targets.Park)
	return p, nil
}

// SelectAll builds the plan of every known classification from the same start.
func (s *Selector) SelectAll(start spatialmath.Pose) (map[vision.Classification]*Plan, error) {
	plans := make(map[vision.Classification]*Plan, len(vision.Classifications))
	for _, cls := range vision.Classifications {
		p, err := s.Select(cls, start)
		if err != nil {
			return nil, errors.Wrapf(err, "plan for %s", cls)
		}
		plans[cls] = p
	}
	return plans, nil
}
