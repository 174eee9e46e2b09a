package animator

import "math"

// Speed scales wall-clock seconds into stroke time. Values below 1 slow the stroke down.
const Speed = 1.5

// StrokeParameters are the named constants of one stroke style.
// They are fixed for the lifetime of an Animator.
type StrokeParameters struct {
	// ArmStrokeFrequency multiplies stroke time to give the left arm phase.
	ArmStrokeFrequency float64 `json:"armStrokeFrequency" yaml:"armStrokeFrequency"`

	// ArmStrokeAmplitude scales sin(phase) on the upper arm's stroke axis.
	ArmStrokeAmplitude float64 `json:"armStrokeAmplitude" yaml:"armStrokeAmplitude"`

	// ArmRecoveryAmplitude scales cos(phase) on the upper arm's recovery axis.
	ArmRecoveryAmplitude float64 `json:"armRecoveryAmplitude" yaml:"armRecoveryAmplitude"`

	// ShoulderStroke scales sin(phase) on the shoulder. Zero disables the shoulder layer.
	ShoulderStroke float64 `json:"shoulderStroke" yaml:"shoulderStroke"`

	// ShoulderLift scales the recovery half of cos(phase) on the shoulder.
	ShoulderLift float64 `json:"shoulderLift" yaml:"shoulderLift"`

	// ElbowBendMax is the forearm bend at the peak of the pull.
	ElbowBendMax float64 `json:"elbowBendMax" yaml:"elbowBendMax"`

	// HandPitchMax is the hand pitch at the peak of the pull. Zero disables the hand layer.
	HandPitchMax float64 `json:"handPitchMax" yaml:"handPitchMax"`

	// BodyRollAmplitude is the base spine roll angle.
	BodyRollAmplitude float64 `json:"bodyRollAmplitude" yaml:"bodyRollAmplitude"`

	// BodyRollRatio is the roll frequency relative to ArmStrokeFrequency.
	BodyRollRatio float64 `json:"bodyRollRatio" yaml:"bodyRollRatio"`

	// SpineWeights distribute the roll over Spine, Spine1 and Spine2.
	SpineWeights [3]float64 `json:"spineWeights" yaml:"spineWeights"`

	// HeadPitch is the fixed downward head pitch for styles that drive the head.
	HeadPitch float64 `json:"headPitch" yaml:"headPitch"`

	// HeadCounterRoll scales the inverted body roll applied as head yaw.
	HeadCounterRoll float64 `json:"headCounterRoll" yaml:"headCounterRoll"`

	// KickFrequency multiplies stroke time to give the flutter kick phase.
	KickFrequency float64 `json:"kickFrequency" yaml:"kickFrequency"`

	// LegAmplitude is the hip swing amplitude.
	LegAmplitude float64 `json:"legAmplitude" yaml:"legAmplitude"`

	// LegPitchOffset is subtracted from both hips so the legs trail behind neutral.
	LegPitchOffset float64 `json:"legPitchOffset" yaml:"legPitchOffset"`

	// KneeBend is the knee flexion limit. It is negative.
	KneeBend float64 `json:"kneeBend" yaml:"kneeBend"`

	// FootPitch is the forward foot pitch while the leg rises.
	FootPitch float64 `json:"footPitch" yaml:"footPitch"`

	// RootMotion enables bobbing and forward drift of the character root.
	RootMotion bool `json:"rootMotion" yaml:"rootMotion"`

	// BobSpeed multiplies stroke time for the vertical bob. Lateral bob runs at half this rate.
	BobSpeed float64 `json:"bobSpeed" yaml:"bobSpeed"`

	// BobVertical is the vertical bob amplitude in meters.
	BobVertical float64 `json:"bobVertical" yaml:"bobVertical"`

	// BobLateral is the side-to-side bob amplitude in meters.
	BobLateral float64 `json:"bobLateral" yaml:"bobLateral"`

	// SwimSpeed is the forward drift in meters per second of fixed-step time.
	SwimSpeed float64 `json:"swimSpeed" yaml:"swimSpeed"`

	// FixedFrameDelta is the timestep drift integrates over, independent of the real frame rate.
	FixedFrameDelta float64 `json:"fixedFrameDelta" yaml:"fixedFrameDelta"`
}

// FreestyleParameters returns the canonical freestyle stroke: arm stroke on Y, recovery on Z,
// shoulder and hand refinement, half-rate roll on spine Y, no root motion.
func FreestyleParameters() StrokeParameters {
	return StrokeParameters{
		ArmStrokeFrequency:   1.0,
		ArmStrokeAmplitude:   math.Pi * 0.6,
		ArmRecoveryAmplitude: math.Pi * 0.4,
		ShoulderStroke:       0.3,
		ShoulderLift:         0.2,
		ElbowBendMax:         math.Pi * 0.6,
		HandPitchMax:         math.Pi * 0.2,
		BodyRollAmplitude:    math.Pi * 0.08,
		BodyRollRatio:        0.5,
		SpineWeights:         [3]float64{0.3, 0.5, 0.7},
		KickFrequency:        2,
		LegAmplitude:         math.Pi * 0.2,
		LegPitchOffset:       math.Pi / 10,
		KneeBend:             -math.Pi * 0.25,
		FootPitch:            math.Pi / 4,
	}
}

// DriftParameters returns the alternate stroke: arm stroke on X, recovery and elbow on Z,
// equal-rate roll on spine Z, a stabilised head, and bobbing forward drift of the root.
func DriftParameters() StrokeParameters {
	return StrokeParameters{
		ArmStrokeFrequency:   1.0,
		ArmStrokeAmplitude:   math.Pi * 0.5,
		ArmRecoveryAmplitude: math.Pi * 0.3,
		ElbowBendMax:         math.Pi * 0.5,
		BodyRollAmplitude:    math.Pi * 0.08,
		BodyRollRatio:        1.0,
		SpineWeights:         [3]float64{0.3, 0.5, 0.7},
		HeadPitch:            math.Pi * 0.15,
		HeadCounterRoll:      0.5,
		KickFrequency:        2,
		LegAmplitude:         math.Pi * 0.2,
		LegPitchOffset:       math.Pi / 10,
		KneeBend:             -math.Pi * 0.25,
		FootPitch:            math.Pi / 4,
		RootMotion:           true,
		BobSpeed:             1.5,
		BobVertical:          0.05,
		BobLateral:           0.03,
		SwimSpeed:            0.5,
		FixedFrameDelta:      1.0 / 60.0,
	}
}
