package model

// --- Transform & Skeleton Types ---

// Transform represents a decomposed rest transform as authored in the source asset.
type Transform struct {
	// Translation is the position offset.
	Translation [3]float32

	// Rotation is the orientation as a quaternion (x, y, z, w).
	Rotation [4]float32

	// Scale is the scale factor along each axis.
	Scale [3]float32
}

// Bone represents a single bone in a skeleton hierarchy.
type Bone struct {
	// Name is the bone's identifier as authored, including any rig-vendor prefix.
	Name string

	// ParentIndex is the index of the parent bone (-1 for root bones).
	ParentIndex int32

	// NodeIndex is the index of the ImportedNode backing this bone.
	NodeIndex int

	// LocalTransform is the bone's rest transform relative to its parent.
	LocalTransform Transform
}

// Skeleton represents a bone hierarchy bound to one or more skinned meshes.
type Skeleton struct {
	// Bones is the array of all bones in the skeleton, parents before children.
	Bones []Bone

	// RootBoneIndices are indices of bones with no parent.
	RootBoneIndices []int32

	// BoneNameToIndex maps bone names to their indices for quick lookup.
	BoneNameToIndex map[string]int32
}

// --- Import Types ---

// ImportedNode is one node of the source asset's transform hierarchy.
type ImportedNode struct {
	// Name is the node name as authored.
	Name string

	// Children are indices into ImportedModel.Nodes.
	Children []int

	// Mesh is the index into ImportedModel.Meshes, or -1 if the node carries no mesh.
	Mesh int

	// Skin is the index into ImportedModel.Skeletons, or -1 if the node is not skinned.
	Skin int

	// LocalTransform is the node's rest transform relative to its parent.
	LocalTransform Transform
}

// ImportedMesh represents a single mesh within an imported model.
// Only the identity of the mesh is kept; vertex data belongs to the external renderer.
type ImportedMesh struct {
	// Name is the mesh identifier.
	Name string

	// PrimitiveCount is the number of draw primitives the mesh declares.
	PrimitiveCount int
}

// ImportedModel represents a 3D model loaded from an external format.
// This is the universal format that importers (glTF, builtin rigs) produce.
type ImportedModel struct {
	// Name is the model identifier.
	Name string

	// Nodes is the full transform hierarchy.
	Nodes []ImportedNode

	// RootNodes are indices of nodes with no parent, in scene order.
	RootNodes []int

	// Meshes contains all mesh descriptors.
	Meshes []ImportedMesh

	// Skeletons holds one skeleton per skin in the source asset.
	Skeletons []*Skeleton
}
