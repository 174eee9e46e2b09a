package animator

import (
	"fmt"
	"math"
	"strings"

	"github.com/Carmen-Shannon/oxy-swim/common"
	"github.com/Carmen-Shannon/oxy-swim/engine/rig"
)

// AnimatorBackendType identifies the stroke style computed by an Animator.
type AnimatorBackendType int

const (
	// BackendTypeFreestyle is the canonical freestyle stroke: arm stroke on Y, recovery on Z,
	// shoulder and hand refinement, half-rate body roll on spine Y.
	BackendTypeFreestyle AnimatorBackendType = iota

	// BackendTypeDrift is the alternate stroke: arm stroke on X, recovery and elbow on Z,
	// equal-rate body roll on spine Z, a stabilised head and bobbing forward drift of the root.
	BackendTypeDrift
)

// String returns the preset name.
func (b AnimatorBackendType) String() string {
	switch b {
	case BackendTypeFreestyle:
		return "freestyle"
	case BackendTypeDrift:
		return "drift"
	default:
		return fmt.Sprintf("AnimatorBackendType(%d)", int(b))
	}
}

// ParsePreset maps a preset name to its backend type. Matching is case-insensitive.
//
// Parameters:
//   - name: "freestyle" or "drift"
//
// Returns:
//   - AnimatorBackendType: the matching backend type
//   - error: error if the name is not a known preset
func ParsePreset(name string) (AnimatorBackendType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "freestyle", "":
		return BackendTypeFreestyle, nil
	case "drift":
		return BackendTypeDrift, nil
	default:
		return 0, fmt.Errorf("unknown stroke preset %q", name)
	}
}

// DefaultParameters returns the preset constants for a backend type.
//
// Parameters:
//   - backendType: the stroke preset
//
// Returns:
//   - StrokeParameters: the preset's constants
func DefaultParameters(backendType AnimatorBackendType) StrokeParameters {
	if backendType == BackendTypeDrift {
		return DriftParameters()
	}
	return FreestyleParameters()
}

// animatorBackend computes the joint rotations of one stroke style.
type animatorBackend interface {
	// Compute fills pose with the joint rotations for stroke time t.
	//
	// Parameters:
	//   - t: the clock-scaled stroke time
	//   - params: the stroke constants
	//   - pose: the destination, assumed zeroed
	Compute(t float64, params StrokeParameters, pose *Pose)
}

// armPhases holds the per-side stroke signals for one stroke time.
type armPhases struct {
	leftCycle, leftVertical   float64
	rightCycle, rightVertical float64
}

// strokePhases derives the arm signals. The right arm runs exactly π behind the left.
func strokePhases(t float64, p StrokeParameters) armPhases {
	lp := t * p.ArmStrokeFrequency
	rp := lp + math.Pi
	return armPhases{
		leftCycle:     math.Sin(lp),
		leftVertical:  math.Cos(lp),
		rightCycle:    math.Sin(rp),
		rightVertical: math.Cos(rp),
	}
}

// bodyRoll is the base spine roll angle at stroke time t.
func bodyRoll(t float64, p StrokeParameters) float64 {
	return math.Sin(t*p.ArmStrokeFrequency*p.BodyRollRatio) * p.BodyRollAmplitude
}

// legSwing is the hip swing at stroke time t.
func legSwing(t float64, p StrokeParameters) float64 {
	return math.Sin(t*p.KickFrequency) * p.LegAmplitude
}

// computeSpine distributes roll over the three spine segments on one axis.
func computeSpine(pose *Pose, axis common.Axis, roll float64, p StrokeParameters) {
	pose.set(rig.Spine, axis, roll*p.SpineWeights[0])
	pose.set(rig.Spine1, axis, roll*p.SpineWeights[1])
	pose.set(rig.Spine2, axis, roll*p.SpineWeights[2])
}

// computeLegs writes the flutter kick shared by every preset. Hips swing in antiphase around
// LegPitchOffset; knees and feet are active only while their leg rises.
func computeLegs(t float64, p StrokeParameters, pose *Pose) {
	kick := math.Sin(t * p.KickFrequency)
	swing := legSwing(t, p)

	pose.set(rig.LeftUpLeg, common.AxisX, swing-p.LegPitchOffset)
	pose.set(rig.RightUpLeg, common.AxisX, -swing-p.LegPitchOffset)

	pose.set(rig.LeftLeg, common.AxisX, common.HalfWave(-kick)*p.KneeBend)
	pose.set(rig.RightLeg, common.AxisX, common.HalfWave(kick)*p.KneeBend)

	pose.set(rig.LeftFoot, common.AxisX, common.HalfWave(-kick)*p.FootPitch)
	pose.set(rig.RightFoot, common.AxisX, common.HalfWave(kick)*p.FootPitch)
}
