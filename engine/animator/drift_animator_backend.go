package animator

import (
	"github.com/Carmen-Shannon/oxy-swim/common"
	"github.com/Carmen-Shannon/oxy-swim/engine/rig"
)

// driftAnimatorBackend computes the alternate stroke. The arm stroke runs on X, recovery and
// elbow bend on Z, and the head holds its gaze against the body roll.
type driftAnimatorBackend struct{}

var _ animatorBackend = &driftAnimatorBackend{}

func newDriftAnimatorBackend() animatorBackend {
	return &driftAnimatorBackend{}
}

func (b *driftAnimatorBackend) Compute(t float64, p StrokeParameters, pose *Pose) {
	ph := strokePhases(t, p)

	pose.set(rig.LeftArm, common.AxisX, ph.leftCycle*p.ArmStrokeAmplitude)
	pose.set(rig.RightArm, common.AxisX, ph.rightCycle*p.ArmStrokeAmplitude)
	pose.set(rig.LeftArm, common.AxisZ, ph.leftVertical*p.ArmRecoveryAmplitude)
	pose.set(rig.RightArm, common.AxisZ, -ph.rightVertical*p.ArmRecoveryAmplitude)

	pose.set(rig.LeftForearm, common.AxisZ, common.HalfWave(-ph.leftCycle)*p.ElbowBendMax)
	pose.set(rig.RightForearm, common.AxisZ, common.HalfWave(-ph.rightCycle)*p.ElbowBendMax)

	roll := bodyRoll(t, p)
	computeSpine(pose, common.AxisZ, roll, p)

	pose.set(rig.Head, common.AxisX, p.HeadPitch)
	pose.set(rig.Head, common.AxisY, -roll*p.HeadCounterRoll)

	computeLegs(t, p, pose)
}
