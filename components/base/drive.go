// Package base defines the mecanum drive the sequencer steers: a pose estimator plus a
// non-blocking trajectory follower that must be serviced every loop iteration.
package base

import (
	"context"

	"github.com/ringbot/autoseq/motionplan"
	"github.com/ringbot/autoseq/spatialmath"
)

// A Drive represents the chassis motion controller.
//
// Following is cooperative: FollowTrajectory only kicks a segment off and Update must be
// called every loop iteration to refresh the pose estimate and tick the follower.
type Drive interface {
	// SetPoseEstimate seeds the localizer with a known pose.
	SetPoseEstimate(ctx context.Context, pose spatialmath.Pose) error

	// PoseEstimate returns the localizer's current pose.
	PoseEstimate(ctx context.Context) (spatialmath.Pose, error)

	// Update advances the localizer and follower by one tick.
	Update(ctx context.Context) error

	// TrajectoryBuilder starts composing a segment from start.
	TrajectoryBuilder(start spatialmath.Pose) motionplan.Builder

	// FollowTrajectory starts following seg without blocking. Calling it again with the
	// segment already being followed is a no-op.
	FollowTrajectory(ctx context.Context, seg *motionplan.Segment) error

	// Turn performs a blocking point turn by angleRad radians, counter-clockwise positive.
	Turn(ctx context.Context, angleRad float64) error

	// SetMotorPowers drives the four wheels open loop, each in [-1, 1].
	SetMotorPowers(ctx context.Context, frontLeft, backLeft, backRight, frontRight float64) error

	// IsBusy returns whether a segment is still being followed.
	IsBusy(ctx context.Context) (bool, error)
}

// Stop zeroes all four drive motors.
func Stop(ctx context.Context, d Drive) error {
	return d.SetMotorPowers(ctx, 0, 0, 0, 0)
}
