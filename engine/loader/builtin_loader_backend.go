package loader

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Carmen-Shannon/oxy-swim/engine/model"
)

// BuiltinPrefix marks a load path as a rig authored in code rather than read from disk.
const BuiltinPrefix = "builtin:"

// Builtin rig identifiers accepted by Load.
const (
	// BuiltinMixamo is a Mixamo-named T-pose character ("mixamorig:" bone prefix) with a skinned body mesh.
	BuiltinMixamo = BuiltinPrefix + "mixamo"

	// BuiltinPlain is the same character with unprefixed bone names.
	BuiltinPlain = BuiltinPrefix + "plain"

	// BuiltinStatic is the same hierarchy whose body mesh is not bound to a skin.
	BuiltinStatic = BuiltinPrefix + "static"
)

// ErrUnknownBuiltin is returned when a builtin: path names a rig that does not exist.
var ErrUnknownBuiltin = errors.New("unknown builtin rig")

// builtinBone is one joint of the code-authored rig: its name, parent, and rest offset in meters.
type builtinBone struct {
	name   string
	parent string
	offset [3]float32
}

// builtinHumanoid is a Y-up, +Z-forward T-pose humanoid about 1.75m tall.
// Parents are always listed before their children.
var builtinHumanoid = []builtinBone{
	{"Hips", "", [3]float32{0, 1.0, 0}},
	{"Spine", "Hips", [3]float32{0, 0.10, 0}},
	{"Spine1", "Spine", [3]float32{0, 0.12, 0}},
	{"Spine2", "Spine1", [3]float32{0, 0.13, 0}},
	{"Neck", "Spine2", [3]float32{0, 0.15, 0}},
	{"Head", "Neck", [3]float32{0, 0.10, 0.02}},
	{"HeadTop_End", "Head", [3]float32{0, 0.18, 0}},

	{"LeftShoulder", "Spine2", [3]float32{0.06, 0.11, 0}},
	{"LeftArm", "LeftShoulder", [3]float32{0.12, 0, 0}},
	{"LeftForeArm", "LeftArm", [3]float32{0.28, 0, 0}},
	{"LeftHand", "LeftForeArm", [3]float32{0.26, 0, 0}},

	{"RightShoulder", "Spine2", [3]float32{-0.06, 0.11, 0}},
	{"RightArm", "RightShoulder", [3]float32{-0.12, 0, 0}},
	{"RightForeArm", "RightArm", [3]float32{-0.28, 0, 0}},
	{"RightHand", "RightForeArm", [3]float32{-0.26, 0, 0}},

	{"LeftUpLeg", "Hips", [3]float32{0.09, -0.06, 0}},
	{"LeftLeg", "LeftUpLeg", [3]float32{0, -0.42, 0}},
	{"LeftFoot", "LeftLeg", [3]float32{0, -0.42, 0}},
	{"LeftToeBase", "LeftFoot", [3]float32{0, -0.07, 0.12}},

	{"RightUpLeg", "Hips", [3]float32{-0.09, -0.06, 0}},
	{"RightLeg", "RightUpLeg", [3]float32{0, -0.42, 0}},
	{"RightFoot", "RightLeg", [3]float32{0, -0.42, 0}},
	{"RightToeBase", "RightFoot", [3]float32{0, -0.07, 0.12}},
}

// builtinLoaderBackendImpl is the implementation of builtinLoaderBackend.
type builtinLoaderBackendImpl struct {
	importer gltfImporter
}

// builtinLoaderBackend is a loaderBackend that serves rigs authored in code.
// The rigs are expressed as glTF documents and run through the same importer as files on disk.
type builtinLoaderBackend interface {
	loaderBackend
}

var _ builtinLoaderBackend = &builtinLoaderBackendImpl{}

// newBuiltinLoaderBackend creates a new builtin rig backend.
//
// Returns:
//   - builtinLoaderBackend: the loader backend for builtin: paths
func newBuiltinLoaderBackend() builtinLoaderBackend {
	return &builtinLoaderBackendImpl{
		importer: newGLTFImporter(),
	}
}

func (b *builtinLoaderBackendImpl) Load(path string) (*model.ImportedModel, error) {
	var doc *gltfDocument
	switch path {
	case BuiltinMixamo:
		doc = builtinHumanoidDocument("mixamorig:", true)
	case BuiltinPlain:
		doc = builtinHumanoidDocument("", true)
	case BuiltinStatic:
		doc = builtinHumanoidDocument("mixamorig:", false)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBuiltin, path)
	}

	return b.importer.ImportDocument(strings.TrimPrefix(path, BuiltinPrefix), doc)
}

func (b *builtinLoaderBackendImpl) LoadReader(name string, r io.Reader) (*model.ImportedModel, error) {
	return nil, fmt.Errorf("builtin rigs cannot be read from a stream (%q)", name)
}

// builtinHumanoidDocument builds a glTF document holding an "Armature" root with the humanoid
// bone chain and a "Body" mesh node. When skinned is true the body is bound to every bone.
func builtinHumanoidDocument(prefix string, skinned bool) *gltfDocument {
	scene := 0
	doc := &gltfDocument{
		Asset:  gltfAsset{Version: "2.0", Generator: "oxy-swim builtin"},
		Scene:  &scene,
		Scenes: []gltfScene{{Nodes: []int{0}}},
		Meshes: []gltfMesh{{Name: "Body", Primitives: []gltfPrimitive{{Attributes: map[string]int{}}}}},
	}

	doc.Nodes = append(doc.Nodes, gltfNode{Name: "Armature"})

	index := make(map[string]int, len(builtinHumanoid))
	joints := make([]int, 0, len(builtinHumanoid))
	for _, bone := range builtinHumanoid {
		offset := bone.offset
		n := len(doc.Nodes)
		doc.Nodes = append(doc.Nodes, gltfNode{Name: prefix + bone.name, Translation: &offset})
		index[bone.name] = n
		joints = append(joints, n)

		parent := 0
		if bone.parent != "" {
			parent = index[bone.parent]
		}
		doc.Nodes[parent].Children = append(doc.Nodes[parent].Children, n)
	}

	mesh := 0
	body := gltfNode{Name: "Body", Mesh: &mesh}
	if skinned {
		skin := 0
		body.Skin = &skin
		doc.Skins = []gltfSkin{{Name: "Armature", Joints: joints, Skeleton: &joints[0]}}
	}
	doc.Nodes = append(doc.Nodes, body)
	doc.Nodes[0].Children = append(doc.Nodes[0].Children, len(doc.Nodes)-1)

	return doc
}
