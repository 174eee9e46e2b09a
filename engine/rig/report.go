package rig

// Availability describes whether one joint was resolved.
type Availability struct {
	// Joint is the joint described.
	Joint JointID `json:"-" yaml:"-"`

	// Key is the joint's canonical key.
	Key string `json:"joint" yaml:"joint"`

	// Bone is the name of the node bound to the joint, empty if unresolved.
	Bone string `json:"bone,omitempty" yaml:"bone,omitempty"`

	// Resolved is true when the joint has a bone.
	Resolved bool `json:"resolved" yaml:"resolved"`
}

// Report lists the availability of every joint in declaration order.
//
// Parameters:
//   - reg: the registry to inspect; may be unpublished
//
// Returns:
//   - []Availability: one entry per joint
func Report(reg *Registry) []Availability {
	out := make([]Availability, 0, JointCount)
	for _, j := range AllJoints() {
		a := Availability{Joint: j, Key: j.Key()}
		if n, ok := reg.Get(j); ok {
			a.Bone = n.Name()
			a.Resolved = true
		}
		out = append(out, a)
	}
	return out
}

// Missing returns the joints Report marks as unresolved.
func Missing(report []Availability) []JointID {
	var out []JointID
	for _, a := range report {
		if !a.Resolved {
			out = append(out, a.Joint)
		}
	}
	return out
}
