package rig

import (
	"errors"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-swim/engine/scene_node"
)

// ErrAlreadyPublished is returned by Publish on a registry that already holds a snapshot.
var ErrAlreadyPublished = errors.New("bone registry already published")

// snapshot is an immutable joint table. Once stored in a Registry it is never modified.
type snapshot struct {
	bones [JointCount]scene_node.Node
	count int
}

// Registry maps joints to the bone nodes that drive them.
//
// A Registry is filled exactly once by Publish, typically from a loader goroutine, and read
// every frame by the animator. Publication is a single atomic pointer store, so readers on
// other goroutines either see no joints at all or the complete table. The zero value is an
// empty, unpublished registry ready for use.
type Registry struct {
	snap atomic.Pointer[snapshot]
}

// NewRegistry creates an empty, unpublished Registry.
//
// Returns:
//   - *Registry: the registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Publish installs the joint table. Entries with a nil node or an invalid joint are dropped.
// Only the first call succeeds; later calls return ErrAlreadyPublished and leave the table unchanged.
//
// Parameters:
//   - bones: the resolved joints
//
// Returns:
//   - error: ErrAlreadyPublished if the registry was already published
func (r *Registry) Publish(bones map[JointID]scene_node.Node) error {
	s := &snapshot{}
	for j, n := range bones {
		if j < 0 || j >= JointCount || n == nil {
			continue
		}
		s.bones[j] = n
		s.count++
	}

	if !r.snap.CompareAndSwap(nil, s) {
		return ErrAlreadyPublished
	}
	return nil
}

// Ready reports whether the registry has been published, even if it resolved no joints.
func (r *Registry) Ready() bool {
	return r.snap.Load() != nil
}

// Get returns the node for a joint.
//
// Parameters:
//   - j: the joint to look up
//
// Returns:
//   - scene_node.Node: the bone node, or nil
//   - bool: false if the joint is not resolved or the registry is not yet published
func (r *Registry) Get(j JointID) (scene_node.Node, bool) {
	s := r.snap.Load()
	if s == nil || j < 0 || j >= JointCount {
		return nil, false
	}
	n := s.bones[j]
	return n, n != nil
}

// Len returns the number of resolved joints.
func (r *Registry) Len() int {
	if s := r.snap.Load(); s != nil {
		return s.count
	}
	return 0
}

// Joints returns the resolved joints in declaration order.
func (r *Registry) Joints() []JointID {
	s := r.snap.Load()
	if s == nil {
		return nil
	}

	out := make([]JointID, 0, s.count)
	for j, n := range s.bones {
		if n != nil {
			out = append(out, JointID(j))
		}
	}
	return out
}
