package scene_node

import (
	"github.com/Carmen-Shannon/oxy-swim/common"
)

// NodeBuilderOption is a functional option for configuring a Node during construction.
type NodeBuilderOption func(*node)

// WithPosition sets the initial local position of the Node.
//
// Parameters:
//   - p: the local position relative to the parent
//
// Returns:
//   - NodeBuilderOption: functional option to set the position
func WithPosition(p common.Vec3) NodeBuilderOption {
	return func(n *node) {
		n.position = p
	}
}

// WithRotation sets the initial local rotation of the Node.
//
// Parameters:
//   - r: the rotation angles in radians
//
// Returns:
//   - NodeBuilderOption: functional option to set the rotation
func WithRotation(r common.Euler) NodeBuilderOption {
	return func(n *node) {
		n.rotation = r
	}
}

// WithChildren attaches the given nodes as children during construction.
//
// Parameters:
//   - children: nodes to attach, in order
//
// Returns:
//   - NodeBuilderOption: functional option to attach children
func WithChildren(children ...Node) NodeBuilderOption {
	return func(n *node) {
		for _, c := range children {
			n.AddChild(c)
		}
	}
}
