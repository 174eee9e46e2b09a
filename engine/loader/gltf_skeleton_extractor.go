package loader

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-swim/engine/model"
)

// gltfSkeletonExtractorImpl is the implementation of the gltfSkeletonExtractor interface.
type gltfSkeletonExtractorImpl struct {
	parser gltfParser

	// parents maps a node index to the index of the node listing it as a child.
	parents map[int]int
}

// gltfSkeletonExtractor defines the interface for extracting skeleton/bone data from a parsed glTF document.
// It converts glTF skin definitions into Skeleton structs with topologically sorted bones
// that keep a link back to the node each bone was authored on.
type gltfSkeletonExtractor interface {
	// ExtractSkeleton extracts a skeleton from a skin by index.
	//
	// Parameters:
	//   - skinIndex: the index of the skin to extract
	//
	// Returns:
	//   - *model.Skeleton: the extracted skeleton with topologically sorted bones
	//   - error: error if extraction fails
	ExtractSkeleton(skinIndex int) (*model.Skeleton, error)

	// ExtractAllSkeletons extracts all skeletons from the document, one per skin.
	//
	// Returns:
	//   - []*model.Skeleton: all skeletons, indexed like the document's skins
	//   - error: error if extraction fails
	ExtractAllSkeletons() ([]*model.Skeleton, error)

	// FindSkeletonForMesh finds which skeleton (skin) is associated with a mesh.
	// Returns -1 if no skeleton is found.
	//
	// Parameters:
	//   - meshIndex: the mesh index to find a skeleton for
	//
	// Returns:
	//   - int: the skin index, or -1 if none
	FindSkeletonForMesh(meshIndex int) int
}

var _ gltfSkeletonExtractor = &gltfSkeletonExtractorImpl{}

// newGLTFSkeletonExtractor creates a new skeleton extractor for a parsed document.
//
// Parameters:
//   - parser: the parser containing a loaded document
//
// Returns:
//   - gltfSkeletonExtractor: the skeleton extractor
func newGLTFSkeletonExtractor(parser gltfParser) gltfSkeletonExtractor {
	e := &gltfSkeletonExtractorImpl{parser: parser, parents: make(map[int]int)}
	if doc := parser.Document(); doc != nil {
		for parent, node := range doc.Nodes {
			for _, child := range node.Children {
				e.parents[child] = parent
			}
		}
	}
	return e
}

func (e *gltfSkeletonExtractorImpl) ExtractAllSkeletons() ([]*model.Skeleton, error) {
	doc := e.parser.Document()
	if doc == nil {
		return nil, errNoDocument
	}

	skeletons := make([]*model.Skeleton, len(doc.Skins))
	for i := range doc.Skins {
		skeleton, err := e.ExtractSkeleton(i)
		if err != nil {
			return nil, fmt.Errorf("skin %d: %w", i, err)
		}
		skeletons[i] = skeleton
	}

	return skeletons, nil
}

func (e *gltfSkeletonExtractorImpl) FindSkeletonForMesh(meshIndex int) int {
	doc := e.parser.Document()
	if doc == nil {
		return -1
	}

	for _, node := range doc.Nodes {
		if node.Mesh != nil && *node.Mesh == meshIndex && node.Skin != nil {
			return *node.Skin
		}
	}

	return -1
}

func (e *gltfSkeletonExtractorImpl) ExtractSkeleton(skinIndex int) (*model.Skeleton, error) {
	doc := e.parser.Document()
	if doc == nil {
		return nil, errNoDocument
	}
	if skinIndex < 0 || skinIndex >= len(doc.Skins) {
		return nil, fmt.Errorf("skin index %d out of range", skinIndex)
	}

	skin := &doc.Skins[skinIndex]

	// Inverse bind matrices are not needed for a node-driven pose, but a skin that declares
	// them must declare one per joint.
	if skin.InverseBindMatrices != nil {
		ibm, err := e.parser.ReadMat4Accessor(*skin.InverseBindMatrices)
		if err != nil {
			return nil, fmt.Errorf("failed to read inverse bind matrices: %w", err)
		}
		if len(ibm) < len(skin.Joints) {
			return nil, fmt.Errorf("%d inverse bind matrices for %d joints", len(ibm), len(skin.Joints))
		}
	}

	bones := make([]model.Bone, len(skin.Joints))
	nodeToBone := make(map[int]int32, len(skin.Joints))

	for i, jointIndex := range skin.Joints {
		if jointIndex < 0 || jointIndex >= len(doc.Nodes) {
			return nil, fmt.Errorf("joint %d: invalid node index %d", i, jointIndex)
		}

		node := &doc.Nodes[jointIndex]
		name := node.Name
		if name == "" {
			name = fmt.Sprintf("bone_%d", i)
		}

		bones[i] = model.Bone{
			Name:           name,
			ParentIndex:    -1,
			NodeIndex:      jointIndex,
			LocalTransform: gltfExtractNodeTransform(node),
		}
		nodeToBone[jointIndex] = int32(i)
	}

	// A bone's parent is the nearest ancestor node that is also a joint of this skin.
	var roots []int32
	for i := range bones {
		parent, ok := e.parents[bones[i].NodeIndex]
		for hops := 0; ok && hops < len(doc.Nodes); hops++ {
			if boneIdx, isJoint := nodeToBone[parent]; isJoint {
				bones[i].ParentIndex = boneIdx
				break
			}
			parent, ok = e.parents[parent]
		}
		if bones[i].ParentIndex < 0 {
			roots = append(roots, int32(i))
		}
	}

	sorted, sortedRoots := gltfTopologicalSortBones(bones, roots)
	nameToIndex := make(map[string]int32, len(sorted))
	for i, b := range sorted {
		nameToIndex[b.Name] = int32(i)
	}

	return &model.Skeleton{
		Bones:           sorted,
		RootBoneIndices: sortedRoots,
		BoneNameToIndex: nameToIndex,
	}, nil
}

// --- Helper Functions ---

// gltfExtractNodeTransform extracts TRS transform from a glTF node.
func gltfExtractNodeTransform(node *gltfNode) model.Transform {
	if node.Matrix != nil {
		return gltfDecomposeMatrix(*node.Matrix)
	}

	transform := model.Transform{
		Rotation: [4]float32{0, 0, 0, 1},
		Scale:    [3]float32{1, 1, 1},
	}
	if node.Translation != nil {
		transform.Translation = *node.Translation
	}
	if node.Rotation != nil {
		transform.Rotation = *node.Rotation
	}
	if node.Scale != nil {
		transform.Scale = *node.Scale
	}

	return transform
}

// gltfDecomposeMatrix decomposes a 4x4 column-major matrix into translation, rotation (quaternion), and scale.
// This is an approximation that assumes no shear.
func gltfDecomposeMatrix(m [16]float32) model.Transform {
	var t model.Transform

	t.Translation = [3]float32{m[12], m[13], m[14]}

	sx := gltfVectorLength(m[0], m[1], m[2])
	sy := gltfVectorLength(m[4], m[5], m[6])
	sz := gltfVectorLength(m[8], m[9], m[10])
	t.Scale = [3]float32{sx, sy, sz}

	if sx < 0.0001 {
		sx = 1
	}
	if sy < 0.0001 {
		sy = 1
	}
	if sz < 0.0001 {
		sz = 1
	}

	// rows of the normalized rotation part
	r := [9]float32{
		m[0] / sx, m[4] / sy, m[8] / sz,
		m[1] / sx, m[5] / sy, m[9] / sz,
		m[2] / sx, m[6] / sy, m[10] / sz,
	}
	t.Rotation = gltfMatrixToQuaternion(r)

	return t
}

// gltfVectorLength computes the length of a 3D vector.
func gltfVectorLength(x, y, z float32) float32 {
	return float32(math.Sqrt(float64(x*x + y*y + z*z)))
}

// gltfMatrixToQuaternion converts a row-major 3x3 rotation matrix to a quaternion [x, y, z, w].
func gltfMatrixToQuaternion(m [9]float32) [4]float32 {
	r00, r01, r02 := float64(m[0]), float64(m[1]), float64(m[2])
	r10, r11, r12 := float64(m[3]), float64(m[4]), float64(m[5])
	r20, r21, r22 := float64(m[6]), float64(m[7]), float64(m[8])

	var x, y, z, w float64
	switch trace := r00 + r11 + r22; {
	case trace > 0:
		s := math.Sqrt(trace+1) * 2
		w = 0.25 * s
		x = (r21 - r12) / s
		y = (r02 - r20) / s
		z = (r10 - r01) / s
	case r00 > r11 && r00 > r22:
		s := math.Sqrt(1+r00-r11-r22) * 2
		w = (r21 - r12) / s
		x = 0.25 * s
		y = (r01 + r10) / s
		z = (r02 + r20) / s
	case r11 > r22:
		s := math.Sqrt(1+r11-r00-r22) * 2
		w = (r02 - r20) / s
		x = (r01 + r10) / s
		y = 0.25 * s
		z = (r12 + r21) / s
	default:
		s := math.Sqrt(1+r22-r00-r11) * 2
		w = (r10 - r01) / s
		x = (r02 + r20) / s
		y = (r12 + r21) / s
		z = 0.25 * s
	}

	if l := math.Sqrt(x*x + y*y + z*z + w*w); l > 0.0001 {
		x, y, z, w = x/l, y/l, z/l, w/l
	}

	return [4]float32{float32(x), float32(y), float32(z), float32(w)}
}

// gltfTopologicalSortBones orders bones breadth-first from the roots so that parents always
// precede their children, rewriting parent indices to the new order. Bones unreachable from
// a root keep their relative order at the end.
//
// Parameters:
//   - bones: original bone array
//   - roots: indices of root bones (no parent)
//
// Returns:
//   - []model.Bone: sorted bone array with updated parent indices
//   - []int32: new root indices
func gltfTopologicalSortBones(bones []model.Bone, roots []int32) ([]model.Bone, []int32) {
	if len(bones) == 0 {
		return bones, roots
	}

	children := make(map[int32][]int32)
	for i, bone := range bones {
		if bone.ParentIndex >= 0 {
			children[bone.ParentIndex] = append(children[bone.ParentIndex], int32(i))
		}
	}

	order := make([]int32, 0, len(bones))
	visited := make([]bool, len(bones))
	queue := append([]int32(nil), roots...)
	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		if visited[idx] {
			continue
		}
		visited[idx] = true
		order = append(order, idx)
		queue = append(queue, children[idx]...)
	}
	for i := range bones {
		if !visited[i] {
			order = append(order, int32(i))
		}
	}

	oldToNew := make([]int32, len(bones))
	for newIdx, oldIdx := range order {
		oldToNew[oldIdx] = int32(newIdx)
	}

	sorted := make([]model.Bone, len(bones))
	var newRoots []int32
	for newIdx, oldIdx := range order {
		bone := bones[oldIdx]
		if bone.ParentIndex >= 0 {
			bone.ParentIndex = oldToNew[bone.ParentIndex]
		} else {
			newRoots = append(newRoots, int32(newIdx))
		}
		sorted[newIdx] = bone
	}

	return sorted, newRoots
}
