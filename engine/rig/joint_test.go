package rig

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJointKeys(t *testing.T) {
	assert.Equal(t, "leftforearm", LeftForearm.Key())
	assert.Equal(t, "spine1", Spine1.Key())
	assert.Equal(t, "LeftUpLeg", LeftUpLeg.String())
	assert.Equal(t, "Unknown", JointCount.String())
	assert.Equal(t, "", JointID(-1).Key())
	assert.Len(t, AllJoints(), 18)
}

func TestParseJoint_RoundTripsEveryJoint(t *testing.T) {
	for _, j := range AllJoints() {
		got, ok := ParseJoint(j.Key())
		assert.True(t, ok, j.String())
		assert.Equal(t, j, got)
	}

	_, ok := ParseJoint("lefthip")
	assert.False(t, ok)
}

func TestCanonicalName(t *testing.T) {
	tests := map[string]string{
		"mixamorig:LeftArm":  "leftarm",
		"mixamorig_RightArm": "rightarm",
		"mixamorigSpine2":    "spine2",
		"MIXAMORIG:Head":     "head",
		"Spine":              "spine",
		"  LeftFoot ":        "leftfoot",
		"mixamorig":          "mixamorig",
		"Armature":           "armature",
	}

	for in, want := range tests {
		assert.Equal(t, want, CanonicalName(in), in)
	}
}
