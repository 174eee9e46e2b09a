package overlay

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-swim/common"
	"github.com/Carmen-Shannon/oxy-swim/engine/scene_node"
)

// Default material flags for the debug skeleton, so the stick figure draws on top of the
// character without hiding it.
const (
	DefaultOpacity   = 0.4
	DefaultDepthTest = false
)

// Segment is one bone drawn as a line from its parent's world origin to its own.
type Segment struct {
	// Parent is the name of the bone at the start of the segment.
	Parent string

	// Child is the name of the bone at the end of the segment.
	Child string

	// From is the parent bone's world-space origin.
	From common.Vec3

	// To is the child bone's world-space origin.
	To common.Vec3
}

// skeleton is the implementation of the Skeleton interface.
type skeleton struct {
	mu sync.RWMutex

	name    string
	bones   []scene_node.Node
	parents []int32

	visible     bool
	depthTest   bool
	opacity     float64
	transparent bool
}

// Skeleton is a visual-only stick-figure overlay bound to the bones of a skinned mesh.
// It reads bone transforms but never writes them, so it has no effect on the animation.
// A new Skeleton is hidden until SetVisible(true) is called.
type Skeleton interface {
	// Name returns the name of the mesh this overlay is bound to.
	//
	// Returns:
	//   - string: the bound mesh name
	Name() string

	// Visible reports whether the overlay should be drawn.
	//
	// Returns:
	//   - bool: true if visible
	Visible() bool

	// SetVisible shows or hides the overlay.
	//
	// Parameters:
	//   - v: the new visibility
	SetVisible(v bool)

	// DepthTest reports whether the overlay lines are depth tested against the scene.
	//
	// Returns:
	//   - bool: false by default so lines draw through the mesh
	DepthTest() bool

	// Opacity returns the line opacity in [0, 1].
	//
	// Returns:
	//   - float64: the opacity
	Opacity() float64

	// Transparent reports whether the overlay material is alpha blended.
	//
	// Returns:
	//   - bool: true when opacity is below 1
	Transparent() bool

	// Bones returns the bone nodes the overlay is bound to.
	//
	// Returns:
	//   - []scene_node.Node: the bound bones in skeleton order
	Bones() []scene_node.Node

	// Segments computes one world-space line per bone that has a parent bone.
	// Segments are produced whether or not the overlay is visible.
	//
	// Returns:
	//   - []Segment: parent-to-child segments in skeleton order
	Segments() []Segment
}

var _ Skeleton = &skeleton{}

// NewSkeleton creates a debug overlay bound to the given bones.
//
// Parameters:
//   - bones: the bone nodes in skeleton order
//   - parents: for each bone the index of its parent bone, or -1
//   - options: variadic list of SkeletonBuilderOption functions to configure the overlay
//
// Returns:
//   - Skeleton: a hidden overlay with default material flags
func NewSkeleton(bones []scene_node.Node, parents []int32, options ...SkeletonBuilderOption) Skeleton {
	s := &skeleton{
		bones:     bones,
		parents:   parents,
		depthTest: DefaultDepthTest,
		opacity:   DefaultOpacity,
	}
	for _, opt := range options {
		opt(s)
	}
	s.transparent = s.opacity < 1
	return s
}

func (s *skeleton) Name() string {
	return s.name
}

func (s *skeleton) Visible() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.visible
}

func (s *skeleton) SetVisible(v bool) {
	s.mu.Lock()
	s.visible = v
	s.mu.Unlock()
}

func (s *skeleton) DepthTest() bool {
	return s.depthTest
}

func (s *skeleton) Opacity() float64 {
	return s.opacity
}

func (s *skeleton) Transparent() bool {
	return s.transparent
}

func (s *skeleton) Bones() []scene_node.Node {
	return s.bones
}

func (s *skeleton) Segments() []Segment {
	origins := make([]common.Vec3, len(s.bones))
	for i, b := range s.bones {
		m := b.WorldMatrix()
		origins[i] = common.TransformPoint(m[:], common.Vec3{})
	}

	var out []Segment
	for i, b := range s.bones {
		if i >= len(s.parents) {
			break
		}
		p := s.parents[i]
		if p < 0 || int(p) >= len(s.bones) {
			continue
		}
		out = append(out, Segment{
			Parent: s.bones[p].Name(),
			Child:  b.Name(),
			From:   origins[p],
			To:     origins[i],
		})
	}
	return out
}
