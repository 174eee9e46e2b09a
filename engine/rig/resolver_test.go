package rig

import (
	"context"
	"testing"

	"github.com/Carmen-Shannon/oxy-swim/engine/loader"
	"github.com/Carmen-Shannon/oxy-swim/engine/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rest() model.Transform {
	return model.Transform{Rotation: [4]float32{0, 0, 0, 1}, Scale: [3]float32{1, 1, 1}}
}

// twoBoneInstance builds a skinned character whose skeleton holds exactly the given bone names.
func twoBoneInstance(t *testing.T, names ...string) *model.Instance {
	t.Helper()

	imp := &model.ImportedModel{Name: "fixture", RootNodes: []int{0}}
	imp.Nodes = append(imp.Nodes, model.ImportedNode{Name: "Armature", Mesh: -1, Skin: -1, LocalTransform: rest()})

	skel := &model.Skeleton{BoneNameToIndex: map[string]int32{}}
	for i, n := range names {
		idx := len(imp.Nodes)
		imp.Nodes = append(imp.Nodes, model.ImportedNode{Name: n, Mesh: -1, Skin: -1, LocalTransform: rest()})
		imp.Nodes[0].Children = append(imp.Nodes[0].Children, idx)
		skel.Bones = append(skel.Bones, model.Bone{Name: n, ParentIndex: -1, NodeIndex: idx})
		skel.RootBoneIndices = append(skel.RootBoneIndices, int32(i))
		skel.BoneNameToIndex[n] = int32(i)
	}
	imp.Skeletons = []*model.Skeleton{skel}
	imp.Meshes = []model.ImportedMesh{{Name: "Body", PrimitiveCount: 1}}
	imp.Nodes = append(imp.Nodes, model.ImportedNode{Name: "Body", Mesh: 0, Skin: 0, LocalTransform: rest()})
	imp.Nodes[0].Children = append(imp.Nodes[0].Children, len(imp.Nodes)-1)

	inst, err := model.NewModel(model.WithImported(imp)).Instantiate()
	require.NoError(t, err)
	return inst
}

func TestResolve_StripsPrefixAndLowercases(t *testing.T) {
	inst := twoBoneInstance(t, "mixamorig:LeftArm", "Spine")
	reg := NewRegistry()

	res, err := NewResolver().Resolve(inst, reg)
	require.NoError(t, err)

	keys := make([]string, 0, reg.Len())
	for _, j := range reg.Joints() {
		keys = append(keys, j.Key())
	}
	assert.ElementsMatch(t, []string{"leftarm", "spine"}, keys)

	arm, ok := reg.Get(LeftArm)
	require.True(t, ok)
	assert.Equal(t, "mixamorig:LeftArm", arm.Name())

	assert.Equal(t, 2, res.Resolved)
	assert.Empty(t, res.Ignored)
	assert.Equal(t, "Body", res.Mesh.Name)
}

func TestResolve_CreatesHiddenOverlay(t *testing.T) {
	inst := twoBoneInstance(t, "mixamorig:LeftArm", "Spine")

	res, err := NewResolver().Resolve(inst, NewRegistry())
	require.NoError(t, err)

	require.NotNil(t, res.Overlay)
	assert.False(t, res.Overlay.Visible())
	assert.False(t, res.Overlay.DepthTest())
	assert.Equal(t, 0.4, res.Overlay.Opacity())
	assert.True(t, res.Overlay.Transparent())
	assert.Equal(t, "Body", res.Overlay.Name())
	assert.Len(t, res.Overlay.Bones(), 2)
}

func TestResolve_IgnoresUnknownAndDuplicateBones(t *testing.T) {
	inst := twoBoneInstance(t, "Hips", "LeftArm", "mixamorig:LeftArm")
	reg := NewRegistry()

	res, err := NewResolver().Resolve(inst, reg)
	require.NoError(t, err)

	assert.Equal(t, []string{"Hips"}, res.Ignored)
	assert.Equal(t, 1, reg.Len())
	arm, _ := reg.Get(LeftArm)
	assert.Equal(t, "LeftArm", arm.Name())
}

func TestResolve_NoSkinnedMeshLeavesRegistryEmpty(t *testing.T) {
	m, err := loader.NewLoader(loader.BackendTypeGLTF).Load(loader.BuiltinStatic)
	require.NoError(t, err)
	inst, err := m.Instantiate()
	require.NoError(t, err)

	reg := NewRegistry()
	res, err := NewResolver().Resolve(inst, reg)

	assert.ErrorIs(t, err, ErrNoSkinnedMesh)
	assert.Nil(t, res)
	assert.False(t, reg.Ready())
	assert.Equal(t, 0, reg.Len())
}

func TestResolve_SecondResolveIsRejected(t *testing.T) {
	reg := NewRegistry()
	_, err := NewResolver().Resolve(twoBoneInstance(t, "Spine"), reg)
	require.NoError(t, err)

	_, err = NewResolver().Resolve(twoBoneInstance(t, "Head"), reg)
	assert.ErrorIs(t, err, ErrAlreadyPublished)
	_, ok := reg.Get(Head)
	assert.False(t, ok)
}

func TestResolveAsync_BuiltinMixamo(t *testing.T) {
	l := loader.NewLoader(loader.BackendTypeGLTF)
	reg := NewRegistry()

	res, err := NewResolver().ResolveAsync(context.Background(), l.LoadAsync(context.Background(), loader.BuiltinMixamo), reg)
	require.NoError(t, err)

	assert.True(t, reg.Ready())
	assert.Equal(t, int(JointCount), reg.Len())
	assert.Empty(t, Missing(Report(reg)))
	assert.ElementsMatch(t, []string{
		"mixamorig:Hips", "mixamorig:Neck", "mixamorig:HeadTop_End", "mixamorig:LeftToeBase", "mixamorig:RightToeBase",
	}, res.Ignored)

	fore, ok := reg.Get(LeftForearm)
	require.True(t, ok)
	assert.Equal(t, "mixamorig:LeftForeArm", fore.Name())
	assert.NotNil(t, res.Instance.Root.Find("mixamorig:LeftForeArm"))
}

func TestResolveAsync_LoadFailure(t *testing.T) {
	l := loader.NewLoader(loader.BackendTypeGLTF)
	reg := NewRegistry()

	_, err := NewResolver().ResolveAsync(context.Background(), l.LoadAsync(context.Background(), "builtin:nothing"), reg)
	assert.ErrorIs(t, err, loader.ErrUnknownBuiltin)
	assert.False(t, reg.Ready())
}

func TestResolveAsync_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reg := NewRegistry()
	_, err := NewResolver().ResolveAsync(ctx, make(chan loader.Result), reg)

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, reg.Ready())
}
