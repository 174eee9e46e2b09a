package scene_node

import (
	"github.com/Carmen-Shannon/oxy-swim/common"
)

// node is the implementation of the Node interface.
type node struct {
	name     string
	position common.Vec3
	rotation common.Euler
	parent   *node
	children []*node
}

// Node defines the scene-graph node abstraction the animation core writes into.
// A Node exposes a local rotation as three independent axis angles and a local position
// relative to its parent. Nodes are owned by whoever builds the tree (the loader, or an
// external renderer); the animator only holds non-owning references.
//
// A Node is not safe for concurrent mutation. Each character's tree has exactly one writer
// per frame.
type Node interface {
	// Name returns the node's name as authored in the source asset.
	//
	// Returns:
	//   - string: the node name
	Name() string

	// Rotation returns the node's local rotation.
	//
	// Returns:
	//   - common.Euler: rotation angles in radians, applied in X, Y, Z order
	Rotation() common.Euler

	// SetRotation replaces all three local rotation angles.
	//
	// Parameters:
	//   - r: the new rotation in radians
	SetRotation(r common.Euler)

	// SetRotationAxis writes a single rotation axis, leaving the other two untouched.
	//
	// Parameters:
	//   - a: the axis to write
	//   - v: the angle in radians
	SetRotationAxis(a common.Axis, v float64)

	// Position returns the node's local position relative to its parent.
	//
	// Returns:
	//   - common.Vec3: the local position
	Position() common.Vec3

	// SetPosition replaces the node's local position.
	//
	// Parameters:
	//   - p: the new local position
	SetPosition(p common.Vec3)

	// Parent returns the parent node, or nil for a root.
	//
	// Returns:
	//   - Node: the parent or nil
	Parent() Node

	// Children returns the direct children in insertion order.
	//
	// Returns:
	//   - []Node: the child nodes
	Children() []Node

	// AddChild attaches c under this node, detaching it from any previous parent.
	// Adding a node to itself is a no-op.
	//
	// Parameters:
	//   - c: the node to attach
	AddChild(c Node)

	// Traverse visits this node and all descendants depth-first, parents before children.
	//
	// Parameters:
	//   - fn: called once per node
	Traverse(fn func(n Node))

	// Find returns the first node in the subtree with the given name.
	//
	// Parameters:
	//   - name: the exact node name
	//
	// Returns:
	//   - Node: the matching node, or nil if not found
	Find(name string) Node

	// LocalMatrix returns the node's local transform as a column-major 4x4 matrix.
	//
	// Returns:
	//   - [16]float64: the local transform
	LocalMatrix() [16]float64

	// WorldMatrix returns the node's transform composed with all ancestors.
	//
	// Returns:
	//   - [16]float64: the world transform
	WorldMatrix() [16]float64
}

var _ Node = &node{}

// NewNode creates a new Node with the specified options applied.
//
// Parameters:
//   - name: the node name
//   - options: variadic list of NodeBuilderOption functions to configure the Node
//
// Returns:
//   - Node: a new detached Node
func NewNode(name string, options ...NodeBuilderOption) Node {
	n := &node{name: name}
	for _, opt := range options {
		opt(n)
	}
	return n
}

func (n *node) Name() string {
	return n.name
}

func (n *node) Rotation() common.Euler {
	return n.rotation
}

func (n *node) SetRotation(r common.Euler) {
	n.rotation = r
}

func (n *node) SetRotationAxis(a common.Axis, v float64) {
	n.rotation.Set(a, v)
}

func (n *node) Position() common.Vec3 {
	return n.position
}

func (n *node) SetPosition(p common.Vec3) {
	n.position = p
}

func (n *node) Parent() Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *node) Children() []Node {
	out := make([]Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

func (n *node) AddChild(c Node) {
	child, ok := c.(*node)
	if !ok || child == nil || child == n {
		return
	}
	if child.parent != nil {
		child.parent.removeChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

func (n *node) Traverse(fn func(n Node)) {
	fn(n)
	for _, c := range n.children {
		c.Traverse(fn)
	}
}

func (n *node) Find(name string) Node {
	if n.name == name {
		return n
	}
	for _, c := range n.children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

func (n *node) LocalMatrix() [16]float64 {
	var m [16]float64
	common.BuildLocalMatrix(m[:], n.position, n.rotation)
	return m
}

func (n *node) WorldMatrix() [16]float64 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		pm := p.LocalMatrix()
		common.Mul4(m[:], pm[:], m[:])
	}
	return m
}

// removeChild detaches c from this node's children slice.
func (n *node) removeChild(c *node) {
	for i, existing := range n.children {
		if existing == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			break
		}
	}
	c.parent = nil
}
