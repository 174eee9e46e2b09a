package rig

import "strings"

// JointID identifies one of the fixed set of joints the stroke animator drives.
type JointID int

const (
	LeftArm JointID = iota
	RightArm
	LeftForearm
	RightForearm
	LeftHand
	RightHand
	LeftShoulder
	RightShoulder
	LeftUpLeg
	RightUpLeg
	LeftLeg
	RightLeg
	LeftFoot
	RightFoot
	Spine
	Spine1
	Spine2
	Head

	// JointCount is the number of defined joints. It is not a joint.
	JointCount
)

var jointNames = [JointCount]string{
	LeftArm:       "LeftArm",
	RightArm:      "RightArm",
	LeftForearm:   "LeftForearm",
	RightForearm:  "RightForearm",
	LeftHand:      "LeftHand",
	RightHand:     "RightHand",
	LeftShoulder:  "LeftShoulder",
	RightShoulder: "RightShoulder",
	LeftUpLeg:     "LeftUpLeg",
	RightUpLeg:    "RightUpLeg",
	LeftLeg:       "LeftLeg",
	RightLeg:      "RightLeg",
	LeftFoot:      "LeftFoot",
	RightFoot:     "RightFoot",
	Spine:         "Spine",
	Spine1:        "Spine1",
	Spine2:        "Spine2",
	Head:          "Head",
}

var jointByKey = func() map[string]JointID {
	m := make(map[string]JointID, JointCount)
	for _, j := range AllJoints() {
		m[j.Key()] = j
	}
	return m
}()

// String returns the joint's display name, e.g. "LeftForearm".
func (j JointID) String() string {
	if j < 0 || j >= JointCount {
		return "Unknown"
	}
	return jointNames[j]
}

// Key returns the canonical lookup key, the lowercased display name ("leftforearm").
func (j JointID) Key() string {
	if j < 0 || j >= JointCount {
		return ""
	}
	return canonicalKeys[j]
}

var canonicalKeys = func() [JointCount]string {
	var keys [JointCount]string
	for j, name := range jointNames {
		keys[j] = strings.ToLower(name)
	}
	return keys
}()

// AllJoints returns every joint in declaration order.
func AllJoints() []JointID {
	out := make([]JointID, JointCount)
	for i := range out {
		out[i] = JointID(i)
	}
	return out
}

// ParseJoint maps a canonical key to its joint.
//
// Parameters:
//   - key: a canonical key as produced by CanonicalName
//
// Returns:
//   - JointID: the matching joint
//   - bool: false if the key names no joint
func ParseJoint(key string) (JointID, bool) {
	j, ok := jointByKey[key]
	return j, ok
}
