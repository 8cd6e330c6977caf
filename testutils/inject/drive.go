package inject

import (
	"context"

	"github.com/ringbot/autoseq/components/base"
	"github.com/ringbot/autoseq/motionplan"
	"github.com/ringbot/autoseq/spatialmath"
)

// Drive is an injected drive.
type Drive struct {
	base.Drive
	SetPoseEstimateFunc   func(ctx context.Context, pose spatialmath.Pose) error
	PoseEstimateFunc      func(ctx context.Context) (spatialmath.Pose, error)
	UpdateFunc            func(ctx context.Context) error
	TrajectoryBuilderFunc func(start spatialmath.Pose) motionplan.Builder
	FollowTrajectoryFunc  func(ctx context.Context, seg *motionplan.Segment) error
	TurnFunc              func(ctx context.Context, angleRad float64) error
	SetMotorPowersFunc    func(ctx context.Context, frontLeft, backLeft, backRight, frontRight float64) error
	IsBusyFunc            func(ctx context.Context) (bool, error)
}

// SetPoseEstimate calls the injected SetPoseEstimate or the real version.
func (d *Drive) SetPoseEstimate(ctx context.Context, pose spatialmath.Pose) error {
	if d.SetPoseEstimateFunc == nil {
		return d.Drive.SetPoseEstimate(ctx, pose)
	}
	return d.SetPoseEstimateFunc(ctx, pose)
}

// PoseEstimate calls the injected PoseEstimate or the real version.
func (d *Drive) PoseEstimate(ctx context.Context) (spatialmath.Pose, error) {
	if d.PoseEstimateFunc == nil {
		return d.Drive.PoseEstimate(ctx)
	}
	return d.PoseEstimateFunc(ctx)
}

// Update calls the injected Update or the real version.
func (d *Drive) Update(ctx context.Context) error {
	if d.UpdateFunc == nil {
		return d.Drive.Update(ctx)
	}
	return d.UpdateFunc(ctx)
}

// TrajectoryBuilder calls the injected TrajectoryBuilder or the real version.
func (d *Drive) TrajectoryBuilder(start spatialmath.Pose) motionplan.Builder {
	if d.TrajectoryBuilderFunc == nil {
		return d.Drive.TrajectoryBuilder(start)
	}
	return d.TrajectoryBuilderFunc(start)
}

// FollowTrajectory calls the injected FollowTrajectory or the real version.
func (d *Drive) FollowTrajectory(ctx context.Context, seg *motionplan.Segment) error {
	if d.FollowTrajectoryFunc == nil {
		return d.Drive.FollowTrajectory(ctx, seg)
	}
	return d.FollowTrajectoryFunc(ctx, seg)
}

// Turn calls the injected Turn or the real version.
func (d *Drive) Turn(ctx context.Context, angleRad float64) error {
	if d.TurnFunc == nil {
		return d.Drive.Turn(ctx, angleRad)
	}
	return d.TurnFunc(ctx, angleRad)
}

// SetMotorPowers calls the injected SetMotorPowers or the real version.
func (d *Drive) SetMotorPowers(ctx context.Context, frontLeft, backLeft, backRight, frontRight float64) error {
	if d.SetMotorPowersFunc == nil {
		return d.Drive.SetMotorPowers(ctx, frontLeft, backLeft, backRight, frontRight)
	}
	return d.SetMotorPowersFunc(ctx, frontLeft, backLeft, backRight, frontRight)
}

// IsBusy calls the injected IsBusy or the real version.
func (d *Drive) IsBusy(ctx context.Context) (bool, error) {
	if d.IsBusyFunc == nil {
		return d.Drive.IsBusy(ctx)
	}
	return d.IsBusyFunc(ctx)
}
