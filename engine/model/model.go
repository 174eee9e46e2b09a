package model

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-swim/common"
	"github.com/Carmen-Shannon/oxy-swim/engine/scene_node"
)

// model is the implementation of the Model interface.
type model struct {
	name     string
	imported *ImportedModel
}

// SkinnedMesh is an instantiated mesh node together with the bone nodes of its skeleton.
type SkinnedMesh struct {
	// Name is the name of the node carrying the mesh.
	Name string

	// Node is the instantiated mesh node.
	Node scene_node.Node

	// Bones are the instantiated bone nodes, in skeleton order.
	Bones []scene_node.Node

	// BoneParents mirrors Skeleton.Bones[i].ParentIndex for each entry of Bones.
	BoneParents []int32
}

// Instance is a live copy of a Model's node hierarchy.
type Instance struct {
	// Root is a synthetic node holding all of the asset's root nodes.
	Root scene_node.Node

	// SkinnedMeshes lists every mesh node bound to a skin, in node order.
	SkinnedMeshes []SkinnedMesh
}

// Model defines the interface for a loaded 3D model.
// A Model is an immutable container for the imported node hierarchy and skeletons.
// It is produced by the Loader; every call to Instantiate yields an independent node tree
// so several characters can share one loaded asset.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Skinned reports whether any node of this model carries a skinned mesh.
	//
	// Returns:
	//   - bool: true if at least one mesh node is bound to a skin
	Skinned() bool

	// Skeleton retrieves the skeleton of the first skinned mesh.
	// Returns nil for static (non-skinned) models.
	//
	// Returns:
	//   - *Skeleton: the skeleton or nil
	Skeleton() *Skeleton

	// Imported returns the raw imported data backing this model.
	//
	// Returns:
	//   - *ImportedModel: the imported model
	Imported() *ImportedModel

	// Instantiate builds a fresh scene-node tree for this model.
	//
	// Returns:
	//   - *Instance: the new instance
	//   - error: error if the imported hierarchy references missing nodes
	Instantiate() (*Instance, error)
}

var _ Model = &model{}

// NewModel creates a new Model instance with the specified options applied.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model configured with the provided options
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{imported: &ImportedModel{}}
	for _, opt := range options {
		opt(m)
	}
	if m.name == "" {
		m.name = m.imported.Name
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Skinned() bool {
	return m.firstSkinnedNode() >= 0
}

func (m *model) Skeleton() *Skeleton {
	idx := m.firstSkinnedNode()
	if idx < 0 {
		return nil
	}
	return m.imported.Skeletons[m.imported.Nodes[idx].Skin]
}

func (m *model) Imported() *ImportedModel {
	return m.imported
}

func (m *model) Instantiate() (*Instance, error) {
	imp := m.imported
	nodes := make([]scene_node.Node, len(imp.Nodes))
	for i, in := range imp.Nodes {
		nodes[i] = scene_node.NewNode(in.Name,
			scene_node.WithPosition(translationToVec3(in.LocalTransform.Translation)),
			scene_node.WithRotation(rotationToEuler(in.LocalTransform.Rotation)),
		)
	}

	for i, in := range imp.Nodes {
		for _, c := range in.Children {
			if c < 0 || c >= len(nodes) {
				return nil, fmt.Errorf("node %d: child index %d out of range", i, c)
			}
			nodes[i].AddChild(nodes[c])
		}
	}

	root := scene_node.NewNode(m.name)
	for _, r := range imp.RootNodes {
		if r < 0 || r >= len(nodes) {
			return nil, fmt.Errorf("root node index %d out of range", r)
		}
		root.AddChild(nodes[r])
	}

	inst := &Instance{Root: root}
	for i, in := range imp.Nodes {
		if in.Mesh < 0 || in.Skin < 0 || in.Skin >= len(imp.Skeletons) {
			continue
		}
		skel := imp.Skeletons[in.Skin]
		sm := SkinnedMesh{
			Name:        in.Name,
			Node:        nodes[i],
			Bones:       make([]scene_node.Node, len(skel.Bones)),
			BoneParents: make([]int32, len(skel.Bones)),
		}
		for b, bone := range skel.Bones {
			if bone.NodeIndex < 0 || bone.NodeIndex >= len(nodes) {
				return nil, fmt.Errorf("bone %q: node index %d out of range", bone.Name, bone.NodeIndex)
			}
			sm.Bones[b] = nodes[bone.NodeIndex]
			sm.BoneParents[b] = bone.ParentIndex
		}
		inst.SkinnedMeshes = append(inst.SkinnedMeshes, sm)
	}

	return inst, nil
}

// firstSkinnedNode returns the index of the first node carrying a skinned mesh, or -1.
func (m *model) firstSkinnedNode() int {
	for i, n := range m.imported.Nodes {
		if n.Mesh >= 0 && n.Skin >= 0 && n.Skin < len(m.imported.Skeletons) {
			return i
		}
	}
	return -1
}

func translationToVec3(t [3]float32) common.Vec3 {
	return common.Vec3{X: float64(t[0]), Y: float64(t[1]), Z: float64(t[2])}
}

func rotationToEuler(q [4]float32) common.Euler {
	return common.QuaternionToEuler([4]float64{float64(q[0]), float64(q[1]), float64(q[2]), float64(q[3])})
}
