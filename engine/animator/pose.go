package animator

import (
	"github.com/Carmen-Shannon/oxy-swim/common"
	"github.com/Carmen-Shannon/oxy-swim/engine/rig"
	"github.com/Carmen-Shannon/oxy-swim/engine/scene_node"
)

// JointRotation is the stroke's output for one joint.
// Only axes in Mask are written to the bone; the rest keep their current value.
type JointRotation struct {
	Mask  common.AxisMask
	Euler common.Euler
}

// Pose is the full set of joint rotations for one stroke time.
// A Pose is a plain value: computing it twice for the same time yields identical contents.
type Pose struct {
	// T is the stroke time the pose was computed for.
	T float64

	// Joints holds one entry per JointID. Entries with an empty mask are not driven.
	Joints [rig.JointCount]JointRotation
}

// set writes a single axis of a joint and marks it driven.
func (p *Pose) set(j rig.JointID, a common.Axis, v float64) {
	jr := &p.Joints[j]
	jr.Euler.Set(a, v)
	jr.Mask |= 1 << a
}

// Get returns the rotation and axis mask for a joint.
//
// Parameters:
//   - j: the joint to read
//
// Returns:
//   - common.Euler: the rotation in radians (unmasked axes are zero)
//   - common.AxisMask: the axes the stroke drives for this joint
func (p Pose) Get(j rig.JointID) (common.Euler, common.AxisMask) {
	if j < 0 || j >= rig.JointCount {
		return common.Euler{}, 0
	}
	return p.Joints[j].Euler, p.Joints[j].Mask
}

// Written returns the joints the pose drives, in declaration order.
func (p Pose) Written() []rig.JointID {
	out := make([]rig.JointID, 0, rig.JointCount)
	for j, jr := range p.Joints {
		if jr.Mask != 0 {
			out = append(out, rig.JointID(j))
		}
	}
	return out
}

// Apply writes every driven joint whose bone is resolved in reg.
// Unresolved joints are skipped; a nil or unpublished registry skips everything.
//
// Parameters:
//   - reg: the bone registry to write into, may be nil
//
// Returns:
//   - applied: the number of joints written
//   - skipped: the number of driven joints with no resolved bone
func (p *Pose) Apply(reg *rig.Registry) (applied, skipped int) {
	for j, jr := range p.Joints {
		if jr.Mask == 0 {
			continue
		}

		var bone scene_node.Node
		if reg != nil {
			bone, _ = reg.Get(rig.JointID(j))
		}
		if bone == nil {
			skipped++
			continue
		}

		for _, a := range [...]common.Axis{common.AxisX, common.AxisY, common.AxisZ} {
			if jr.Mask.Has(a) {
				bone.SetRotationAxis(a, jr.Euler.Get(a))
			}
		}
		applied++
	}
	return applied, skipped
}

// Map flattens the pose into joint key -> axis -> angle, listing only driven axes.
// It is the shape printed by the pose command and stored by the capture recorder.
func (p Pose) Map() map[string]map[string]float64 {
	out := make(map[string]map[string]float64)
	for j, jr := range p.Joints {
		if jr.Mask == 0 {
			continue
		}
		axes := make(map[string]float64, 3)
		for _, a := range [...]common.Axis{common.AxisX, common.AxisY, common.AxisZ} {
			if jr.Mask.Has(a) {
				axes[a.String()] = jr.Euler.Get(a)
			}
		}
		out[rig.JointID(j).Key()] = axes
	}
	return out
}
