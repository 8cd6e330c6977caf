// Package fake implements a kinematic drive that tracks a followed segment perfectly.
package fake

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/ringbot/autoseq/components/base"
	"github.com/ringbot/autoseq/logging"
	"github.com/ringbot/autoseq/motionplan"
	"github.com/ringbot/autoseq/spatialmath"
	"github.com/ringbot/autoseq/utils"
)

// Drive is a fake drive whose pose follows the reference pose of the active segment, read
// off the clock at every Update.
type Drive struct {
	mu          sync.Mutex
	clk         clock.Clock
	logger      logging.Logger
	constraints motionplan.Constraints

	// TurnRate is the simulated point-turn speed in rad/s. Zero turns instantly.
	TurnRate float64

	pose          spatialmath.Pose
	headingOffset float64
	active        *motionplan.Segment
	followStart   time.Time
	busy          bool
	motorPowers   [4]float64

	UpdateCount int
	FollowCount int
	TurnCount   int
}

var _ base.Drive = (*Drive)(nil)

// NewDrive returns a fake drive timed by clk.
func NewDrive(clk clock.Clock, constraints motionplan.Constraints, logger logging.Logger) *Drive {
	return &Drive{clk: clk, constraints: constraints, logger: logger}
}

// SetPoseEstimate seeds the pose.
func (d *Drive) SetPoseEstimate(ctx context.Context, pose spatialmath.Pose) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pose = pose
	d.headingOffset = 0
	return nil
}

// PoseEstimate returns the current pose.
func (d *Drive) PoseEstimate(ctx context.Context) (spatialmath.Pose, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pose, nil
}

// Update moves the pose to where the active segment says it should be.
func (d *Drive) Update(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.UpdateCount++
	if d.active == nil || !d.busy {
		return nil
	}
	elapsed := d.clk.Since(d.followStart)
	ref := d.active.PoseAt(elapsed)
	d.pose = spatialmath.Pose{Point: ref.Point, Heading: utils.WrapRad(ref.Heading + d.headingOffset)}
	if elapsed >= d.active.Duration() {
		d.busy = false
		d.logger.Debugf("segment finished at %v", d.pose)
	}
	return nil
}

// TrajectoryBuilder starts a segment at start using the drive's constraints.
func (d *Drive) TrajectoryBuilder(start spatialmath.Pose) motionplan.Builder {
	return motionplan.NewBuilder(start, d.constraints)
}

// FollowTrajectory starts following seg.
func (d *Drive) FollowTrajectory(ctx context.Context, seg *motionplan.Segment) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if seg == d.active && d.busy {
		return nil
	}
	d.FollowCount++
	d.active = seg
	d.followStart = d.clk.Now()
	d.headingOffset = 0
	d.busy = true
	d.logger.Debugf("following segment %v -> %v over %v", seg.Start(), seg.End(), seg.Duration())
	return nil
}

// Turn rotates in place. Turns stack on top of any segment being followed.
func (d *Drive) Turn(ctx context.Context, angleRad float64) error {
	d.mu.Lock()
	d.TurnCount++
	d.headingOffset = utils.WrapRad(d.headingOffset + angleRad)
	d.pose.Heading = utils.WrapRad(d.pose.Heading + angleRad)
	rate := d.TurnRate
	d.mu.Unlock()

	if rate > 0 {
		abs := angleRad
		if abs < 0 {
			abs = -abs
		}
		d.clk.Sleep(time.Duration(abs / rate * float64(time.Second)))
	}
	return ctx.Err()
}

// SetMotorPowers records the wheel powers.
func (d *Drive) SetMotorPowers(ctx context.Context, frontLeft, backLeft, backRight, frontRight float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.motorPowers = [4]float64{frontLeft, backLeft, backRight, frontRight}
	return nil
}

// MotorPowers returns the last commanded wheel powers.
func (d *Drive) MotorPowers() [4]float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.motorPowers
}

// IsBusy returns whether a segment is still being followed.
func (d *Drive) IsBusy(ctx context.Context) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.busy, nil
}
