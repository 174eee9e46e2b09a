package scene

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-swim/common"
	"github.com/Carmen-Shannon/oxy-swim/engine/animator"
	"github.com/Carmen-Shannon/oxy-swim/engine/overlay"
	"github.com/Carmen-Shannon/oxy-swim/engine/rig"
	"github.com/Carmen-Shannon/oxy-swim/engine/scene_node"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultRestPosition lifts a swimmer a little above the origin.
var DefaultRestPosition = common.Vec3{Y: 1}

// FaceDown is the root rotation that turns a standing T-pose rig onto its front.
var FaceDown = common.Euler{X: math.Pi / 2}

// swimmer is the implementation of the Swimmer interface.
type swimmer struct {
	mu sync.RWMutex

	id     uuid.UUID
	name   string
	logger zerolog.Logger

	root     scene_node.Node
	registry *rig.Registry
	clock    *animator.Clock
	anim     animator.Animator

	backendType animator.AnimatorBackendType
	params      *animator.StrokeParameters
	rest        common.Vec3
	faceDown    bool

	pending    chan *rig.Resolution
	resolution *rig.Resolution
	strokeTime float64
}

// Swimmer is one animated character in a Scene.
//
// A Swimmer owns its bone registry, clock and animator, so several swimmers can be updated
// concurrently without sharing state. Its root node exists from construction; the character's
// skeleton is attached under it once the asset has been resolved, which may happen on another
// goroutine. Until then every joint write is a no-op and only root motion runs.
//
// Update must be called from one goroutine at a time.
type Swimmer interface {
	// ID returns the swimmer's unique identifier.
	//
	// Returns:
	//   - uuid.UUID: the swimmer ID
	ID() uuid.UUID

	// Name returns the swimmer's display name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Root returns the swimmer's root node. Root motion moves this node.
	//
	// Returns:
	//   - scene_node.Node: the root node
	Root() scene_node.Node

	// Registry returns the swimmer's bone registry.
	//
	// Returns:
	//   - *rig.Registry: the registry, unpublished until the asset resolves
	Registry() *rig.Registry

	// Animator returns the swimmer's stroke animator.
	//
	// Returns:
	//   - animator.Animator: the animator
	Animator() animator.Animator

	// Clock returns the swimmer's animation clock.
	//
	// Returns:
	//   - *animator.Clock: the clock
	Clock() *animator.Clock

	// Ready reports whether the swimmer's registry has been published.
	//
	// Returns:
	//   - bool: true once the skeleton has been resolved
	Ready() bool

	// Attach hands a resolved skeleton to the swimmer. It is safe to call from any goroutine;
	// the skeleton is grafted under Root on the next Update. Only the first call has an effect.
	//
	// Parameters:
	//   - res: the resolution produced for this swimmer's registry
	Attach(res *rig.Resolution)

	// Resolution returns the attached skeleton, or nil if none has been attached yet.
	//
	// Returns:
	//   - *rig.Resolution: the resolution or nil
	Resolution() *rig.Resolution

	// Overlay returns the debug skeleton of the attached resolution, or nil.
	//
	// Returns:
	//   - overlay.Skeleton: the overlay or nil
	Overlay() overlay.Skeleton

	// Update advances the clock by dt and animates one frame.
	//
	// Parameters:
	//   - dt: seconds since the previous frame
	Update(dt float64)

	// StrokeTime returns the clock-scaled time of the most recent Update.
	//
	// Returns:
	//   - float64: the stroke time
	StrokeTime() float64

	// Pose returns the joint rotations of the most recent Update.
	//
	// Returns:
	//   - animator.Pose: the pose at StrokeTime
	Pose() animator.Pose
}

var _ Swimmer = &swimmer{}

// NewSwimmer creates a new Swimmer with a fresh root node, registry, clock and animator.
// By default the root is turned face down and lifted to DefaultRestPosition, and the
// freestyle preset is used.
//
// Parameters:
//   - options: variadic list of SwimmerBuilderOption functions to configure the Swimmer
//
// Returns:
//   - Swimmer: the new swimmer
func NewSwimmer(options ...SwimmerBuilderOption) Swimmer {
	s := &swimmer{
		id:          uuid.New(),
		logger:      zerolog.Nop(),
		registry:    rig.NewRegistry(),
		clock:       animator.NewClock(),
		backendType: animator.BackendTypeFreestyle,
		rest:        DefaultRestPosition,
		faceDown:    true,
		pending:     make(chan *rig.Resolution, 1),
	}
	for _, opt := range options {
		opt(s)
	}
	s.name = common.Coalesce(s.name, "swimmer-"+s.id.String()[:8])

	rootOpts := []scene_node.NodeBuilderOption{scene_node.WithPosition(s.rest)}
	if s.faceDown {
		rootOpts = append(rootOpts, scene_node.WithRotation(FaceDown))
	}
	s.root = scene_node.NewNode(s.name, rootOpts...)

	animOpts := []animator.AnimatorBuilderOption{
		animator.WithRoot(s.root),
		animator.WithLogger(s.logger),
	}
	if s.params != nil {
		animOpts = append(animOpts, animator.WithParameters(*s.params))
	}
	s.anim = animator.NewAnimator(s.backendType, animOpts...)

	return s
}

func (s *swimmer) ID() uuid.UUID {
	return s.id
}

func (s *swimmer) Name() string {
	return s.name
}

func (s *swimmer) Root() scene_node.Node {
	return s.root
}

func (s *swimmer) Registry() *rig.Registry {
	return s.registry
}

func (s *swimmer) Animator() animator.Animator {
	return s.anim
}

func (s *swimmer) Clock() *animator.Clock {
	return s.clock
}

func (s *swimmer) Ready() bool {
	return s.registry.Ready()
}

func (s *swimmer) Attach(res *rig.Resolution) {
	if res == nil {
		return
	}
	select {
	case s.pending <- res:
	default:
		s.logger.Debug().Str("swimmer", s.name).Msg("skeleton already attached, ignoring")
	}
}

func (s *swimmer) Resolution() *rig.Resolution {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolution
}

func (s *swimmer) Overlay() overlay.Skeleton {
	if res := s.Resolution(); res != nil {
		return res.Overlay
	}
	return nil
}

func (s *swimmer) Update(dt float64) {
	select {
	case res := <-s.pending:
		s.graft(res)
	default:
	}

	s.clock.Tick(dt)
	t := s.clock.Scaled()
	s.anim.Animate(t, s.registry)

	s.mu.Lock()
	s.strokeTime = t
	s.mu.Unlock()
}

func (s *swimmer) StrokeTime() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.strokeTime
}

func (s *swimmer) Pose() animator.Pose {
	return s.anim.Pose(s.StrokeTime())
}

// graft attaches the resolved instance under the root. It runs on the updating goroutine so
// the tree is only ever mutated by its single writer.
func (s *swimmer) graft(res *rig.Resolution) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.resolution != nil {
		return
	}
	if res.Instance != nil && res.Instance.Root != nil {
		s.root.AddChild(res.Instance.Root)
	}
	s.resolution = res
	s.logger.Info().
		Str("swimmer", s.name).
		Str("mesh", res.Mesh.Name).
		Int("joints", res.Resolved).
		Msg("skeleton attached")
}
