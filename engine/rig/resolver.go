package rig

import (
	"context"
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-swim/engine/loader"
	"github.com/Carmen-Shannon/oxy-swim/engine/model"
	"github.com/Carmen-Shannon/oxy-swim/engine/overlay"
	"github.com/Carmen-Shannon/oxy-swim/engine/scene_node"
	"github.com/rs/zerolog"
)

// ErrNoSkinnedMesh is returned when an asset has no mesh bound to a skin.
// The registry is left unpublished; callers should log it and carry on.
var ErrNoSkinnedMesh = errors.New("asset has no skinned mesh")

// Resolution is the outcome of a successful Resolve.
type Resolution struct {
	// Instance is the node tree the registry points into.
	Instance *model.Instance

	// Mesh is the skinned mesh whose bones were resolved.
	Mesh model.SkinnedMesh

	// Overlay is the hidden debug skeleton bound to Mesh's bones.
	Overlay overlay.Skeleton

	// Resolved is the number of joints published.
	Resolved int

	// Ignored lists bones that matched no joint, in skeleton order.
	Ignored []string
}

// resolver is the implementation of the Resolver interface.
type resolver struct {
	logger         zerolog.Logger
	overlayOptions []overlay.SkeletonBuilderOption
}

// Resolver binds the bones of a loaded character to joints and publishes them into a Registry.
type Resolver interface {
	// Resolve reads the first skinned mesh of an instance and publishes every bone whose
	// canonical name matches a joint. Bones matching no joint are ignored. When two bones
	// canonicalise to the same key the first one in skeleton order wins.
	// A debug overlay bound to the same bones is created hidden.
	//
	// Parameters:
	//   - inst: the instantiated model
	//   - reg: the registry to publish into
	//
	// Returns:
	//   - *Resolution: the resolved mesh, overlay and counts
	//   - error: ErrNoSkinnedMesh, or ErrAlreadyPublished if reg was already filled
	Resolve(inst *model.Instance, reg *Registry) (*Resolution, error)

	// ResolveAsync waits for a single load result, instantiates the model and resolves it.
	// If ctx ends first the registry is left unpublished and the context error is returned.
	//
	// Parameters:
	//   - ctx: context bounding the wait
	//   - results: a channel delivering one load result, as returned by Loader.LoadAsync
	//   - reg: the registry to publish into
	//
	// Returns:
	//   - *Resolution: the resolved mesh, overlay and counts
	//   - error: the load, instantiation or resolution error
	ResolveAsync(ctx context.Context, results <-chan loader.Result, reg *Registry) (*Resolution, error)
}

var _ Resolver = &resolver{}

// NewResolver creates a new Resolver with the specified options applied.
//
// Parameters:
//   - options: variadic list of ResolverBuilderOption functions to configure the Resolver
//
// Returns:
//   - Resolver: the resolver
func NewResolver(options ...ResolverBuilderOption) Resolver {
	r := &resolver{logger: zerolog.Nop()}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *resolver) Resolve(inst *model.Instance, reg *Registry) (*Resolution, error) {
	if inst == nil || len(inst.SkinnedMeshes) == 0 {
		r.logger.Warn().Msg("no skinned mesh found, joints stay unresolved")
		return nil, ErrNoSkinnedMesh
	}

	mesh := inst.SkinnedMeshes[0]
	bones := make(map[JointID]scene_node.Node, JointCount)
	var ignored []string

	for _, b := range mesh.Bones {
		j, ok := ParseJoint(CanonicalName(b.Name()))
		if !ok {
			ignored = append(ignored, b.Name())
			continue
		}
		if prev, dup := bones[j]; dup {
			r.logger.Debug().Str("joint", j.Key()).Str("kept", prev.Name()).Str("dropped", b.Name()).Msg("duplicate bone for joint")
			continue
		}
		bones[j] = b
	}

	if err := reg.Publish(bones); err != nil {
		return nil, fmt.Errorf("publish %q: %w", mesh.Name, err)
	}

	res := &Resolution{
		Instance: inst,
		Mesh:     mesh,
		Overlay:  overlay.NewSkeleton(mesh.Bones, mesh.BoneParents, append([]overlay.SkeletonBuilderOption{overlay.WithName(mesh.Name)}, r.overlayOptions...)...),
		Resolved: reg.Len(),
		Ignored:  ignored,
	}

	missing := Missing(Report(reg))
	ev := r.logger.Info().
		Str("mesh", mesh.Name).
		Int("bones", len(mesh.Bones)).
		Int("resolved", res.Resolved).
		Int("missing", len(missing))
	if len(missing) > 0 {
		names := make([]string, len(missing))
		for i, j := range missing {
			names[i] = j.Key()
		}
		ev = ev.Strs("unresolved", names)
	}
	ev.Msg("skeleton resolved")

	return res, nil
}

func (r *resolver) ResolveAsync(ctx context.Context, results <-chan loader.Result, reg *Registry) (*Resolution, error) {
	var res loader.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case got, ok := <-results:
		if !ok {
			return nil, errors.New("load result channel closed without a result")
		}
		res = got
	}

	if res.Err != nil {
		r.logger.Warn().Err(res.Err).Str("path", res.Path).Msg("asset failed to load, joints stay unresolved")
		return nil, res.Err
	}

	inst, err := res.Model.Instantiate()
	if err != nil {
		return nil, fmt.Errorf("instantiate %q: %w", res.Path, err)
	}

	return r.Resolve(inst, reg)
}
