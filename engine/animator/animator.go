package animator

import (
	"context"
	"math"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-swim/common"
	"github.com/Carmen-Shannon/oxy-swim/engine/rig"
	"github.com/Carmen-Shannon/oxy-swim/engine/scene_node"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// animator is the implementation of the Animator interface.
type animator struct {
	backendType AnimatorBackendType
	backend     animatorBackend
	params      StrokeParameters

	logger zerolog.Logger

	root     scene_node.Node
	rest     common.Vec3
	frames   atomic.Uint64
	rootOnce sync.Once

	framesCounter  metric.Int64Counter
	skippedCounter metric.Int64Counter
	presetAttr     attribute.KeyValue
}

// Animator defines the public interface of the stroke animator.
//
// An Animator maps a stroke time to a set of joint rotations and writes them into the bones
// resolved in a rig.Registry. Joint rotations are a pure function of the stroke time; the only
// state carried between frames is the frame counter behind the root's forward drift.
//
// Animate is called from a single goroutine per character. The read-only methods are safe
// to call from other goroutines.
type Animator interface {
	// Animate computes the pose for t and writes every resolved joint.
	// Joints missing from reg are skipped; a nil or unpublished registry makes every joint
	// write a no-op. Root motion, when enabled, runs regardless of joint resolution.
	//
	// Parameters:
	//   - t: the clock-scaled stroke time
	//   - reg: the bone registry to write into, may be nil
	Animate(t float64, reg *rig.Registry)

	// Pose computes the joint rotations for t without writing anything.
	//
	// Parameters:
	//   - t: the clock-scaled stroke time
	//
	// Returns:
	//   - Pose: the computed pose
	Pose(t float64) Pose

	// Frames returns how many times Animate has been called.
	//
	// Returns:
	//   - uint64: the frame count
	Frames() uint64

	// Drift returns the forward displacement accumulated by root motion so far.
	// It is zero for presets without root motion.
	//
	// Returns:
	//   - float64: the drift in meters
	Drift() float64

	// Root returns the node moved by root motion, or nil if none was set.
	//
	// Returns:
	//   - scene_node.Node: the root node or nil
	Root() scene_node.Node

	// BackendType returns the stroke preset this animator computes.
	//
	// Returns:
	//   - AnimatorBackendType: the backend type
	BackendType() AnimatorBackendType

	// Parameters returns the stroke constants in use.
	//
	// Returns:
	//   - StrokeParameters: the stroke constants
	Parameters() StrokeParameters
}

var _ Animator = &animator{}

// NewAnimator creates a new Animator for the given stroke preset.
// The preset's default parameters are installed first, then the options are applied.
//
// Parameters:
//   - backendType: the stroke preset (BackendTypeFreestyle or BackendTypeDrift)
//   - options: variadic list of AnimatorBuilderOption functions to configure the Animator
//
// Returns:
//   - Animator: a new Animator
func NewAnimator(backendType AnimatorBackendType, options ...AnimatorBuilderOption) Animator {
	a := &animator{
		backendType: backendType,
		params:      DefaultParameters(backendType),
		logger:      zerolog.Nop(),
	}
	switch backendType {
	case BackendTypeDrift:
		a.backend = newDriftAnimatorBackend()
	case BackendTypeFreestyle:
		fallthrough
	default:
		a.backend = newFreestyleAnimatorBackend()
	}
	for _, opt := range options {
		opt(a)
	}

	// counters stay nil if the meter rejects them
	m := meter()
	a.framesCounter, _ = m.Int64Counter(
		"swim.animator.frames",
		metric.WithDescription("Total frames animated"),
	)
	a.skippedCounter, _ = m.Int64Counter(
		"swim.animator.joints_skipped",
		metric.WithDescription("Joint writes skipped because the bone was not resolved"),
	)
	a.presetAttr = attribute.String("preset", backendType.String())

	return a
}

func (a *animator) Animate(t float64, reg *rig.Registry) {
	n := a.frames.Add(1)

	pose := a.Pose(t)
	_, skipped := pose.Apply(reg)

	if a.params.RootMotion && a.root != nil {
		a.moveRoot(t, n)
	}

	attrs := metric.WithAttributes(a.presetAttr)
	if a.framesCounter != nil {
		a.framesCounter.Add(context.Background(), 1, attrs)
	}
	if skipped > 0 && a.skippedCounter != nil {
		a.skippedCounter.Add(context.Background(), int64(skipped), attrs)
	}
}

func (a *animator) Pose(t float64) Pose {
	pose := Pose{T: t}
	a.backend.Compute(t, a.params, &pose)
	return pose
}

func (a *animator) Frames() uint64 {
	return a.frames.Load()
}

func (a *animator) Drift() float64 {
	if !a.params.RootMotion {
		return 0
	}
	return a.driftAt(a.frames.Load())
}

func (a *animator) Root() scene_node.Node {
	return a.root
}

func (a *animator) BackendType() AnimatorBackendType {
	return a.backendType
}

func (a *animator) Parameters() StrokeParameters {
	return a.params
}

// driftAt is the forward displacement after n fixed-step frames.
// It is recomputed from the count rather than summed so it stays exact over long runs.
func (a *animator) driftAt(n uint64) float64 {
	return a.params.SwimSpeed * float64(n) * a.params.FixedFrameDelta
}

// moveRoot bobs the root around its rest position and pushes it forward by the drift.
func (a *animator) moveRoot(t float64, n uint64) {
	a.rootOnce.Do(func() {
		a.logger.Debug().
			Str("root", a.root.Name()).
			Float64("swimSpeed", a.params.SwimSpeed).
			Msg("root motion started")
	})

	bob := t * a.params.BobSpeed
	a.root.SetPosition(common.Vec3{
		X: a.rest.X + math.Sin(bob*0.5)*a.params.BobLateral,
		Y: a.rest.Y + math.Sin(bob)*a.params.BobVertical,
		Z: a.rest.Z + a.driftAt(n),
	})
}
