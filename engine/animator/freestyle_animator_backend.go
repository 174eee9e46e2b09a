package animator

import (
	"github.com/Carmen-Shannon/oxy-swim/common"
	"github.com/Carmen-Shannon/oxy-swim/engine/rig"
)

// freestyleAnimatorBackend computes the canonical freestyle stroke for a T-posed rig.
// Y rotation moves the arms forward and back, Z rotation lifts them for recovery.
type freestyleAnimatorBackend struct{}

var _ animatorBackend = &freestyleAnimatorBackend{}

func newFreestyleAnimatorBackend() animatorBackend {
	return &freestyleAnimatorBackend{}
}

func (b *freestyleAnimatorBackend) Compute(t float64, p StrokeParameters, pose *Pose) {
	ph := strokePhases(t, p)

	pose.set(rig.LeftArm, common.AxisY, ph.leftCycle*p.ArmStrokeAmplitude)
	pose.set(rig.RightArm, common.AxisY, ph.rightCycle*p.ArmStrokeAmplitude)
	pose.set(rig.LeftArm, common.AxisZ, ph.leftVertical*p.ArmRecoveryAmplitude)
	pose.set(rig.RightArm, common.AxisZ, -ph.rightVertical*p.ArmRecoveryAmplitude)

	if p.ShoulderStroke != 0 || p.ShoulderLift != 0 {
		pose.set(rig.LeftShoulder, common.AxisY, ph.leftCycle*p.ShoulderStroke)
		pose.set(rig.RightShoulder, common.AxisY, ph.rightCycle*p.ShoulderStroke)
		pose.set(rig.LeftShoulder, common.AxisZ, common.HalfWave(ph.leftVertical)*p.ShoulderLift)
		pose.set(rig.RightShoulder, common.AxisZ, common.HalfWave(-ph.rightVertical)*p.ShoulderLift)
	}

	// elbow bends only during the pull
	pose.set(rig.LeftForearm, common.AxisY, common.HalfWave(-ph.leftCycle)*p.ElbowBendMax)
	pose.set(rig.RightForearm, common.AxisY, common.HalfWave(-ph.rightCycle)*p.ElbowBendMax)

	if p.HandPitchMax != 0 {
		pose.set(rig.LeftHand, common.AxisZ, common.HalfWave(-ph.leftCycle)*p.HandPitchMax)
		pose.set(rig.RightHand, common.AxisZ, common.HalfWave(-ph.rightCycle)*p.HandPitchMax)
	}

	computeSpine(pose, common.AxisY, bodyRoll(t, p), p)

	if p.HeadPitch != 0 || p.HeadCounterRoll != 0 {
		pose.set(rig.Head, common.AxisX, p.HeadPitch)
		pose.set(rig.Head, common.AxisY, -bodyRoll(t, p)*p.HeadCounterRoll)
	}

	computeLegs(t, p, pose)
}
