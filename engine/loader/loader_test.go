package loader

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// swimmerGLTF lists the skin joints child-first so the extractor has to reorder them.
const swimmerGLTF = `{
  "asset": {"version": "2.0"},
  "scene": 0,
  "scenes": [{"name": "Swimmer", "nodes": [0]}],
  "nodes": [
    {"name": "Armature", "children": [1, 4]},
    {"name": "mixamorig:Hips", "children": [2], "translation": [0, 1, 0]},
    {"name": "mixamorig:Spine", "children": [3], "rotation": [0, 0.38268343, 0, 0.92387953]},
    {"name": "mixamorig:LeftArm"},
    {"name": "Body", "mesh": 0, "skin": 0}
  ],
  "meshes": [{"name": "Body", "primitives": [{"attributes": {}}]}],
  "skins": [{"joints": [3, 2, 1]%s}]%s
}`

func plainSwimmer() string {
	return fmt.Sprintf(swimmerGLTF, "", "")
}

// swimmerWithIBM embeds count identity matrices as the skin's inverse bind matrices.
func swimmerWithIBM(t *testing.T, count int) string {
	t.Helper()

	var buf bytes.Buffer
	identity := [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	for i := 0; i < count; i++ {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, identity))
	}
	uri := "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())

	extra := fmt.Sprintf(`,
  "buffers": [{"byteLength": %d, "uri": %q}],
  "bufferViews": [{"buffer": 0, "byteLength": %d}],
  "accessors": [{"bufferView": 0, "componentType": 5126, "count": %d, "type": "MAT4"}]`,
		buf.Len(), uri, buf.Len(), count)

	return fmt.Sprintf(swimmerGLTF, `, "inverseBindMatrices": 0`, extra)
}

func wrapGLB(t *testing.T, js []byte) []byte {
	t.Helper()

	for len(js)%4 != 0 {
		js = append(js, ' ')
	}

	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, gltfGLBHeader{
		Magic: gltfGLBMagic, Version: gltfGLBVersion, Length: uint32(12 + 8 + len(js)),
	}))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, gltfGLBChunkHeader{
		ChunkLength: uint32(len(js)), ChunkType: gltfGLBChunkJSON,
	}))
	buf.Write(js)
	return buf.Bytes()
}

func TestImportReader_BuildsHierarchyAndSkeleton(t *testing.T) {
	imp, err := newGLTFImporter().ImportReader("fallback", strings.NewReader(plainSwimmer()))
	require.NoError(t, err)

	assert.Equal(t, "Swimmer", imp.Name)
	assert.Equal(t, []int{0}, imp.RootNodes)
	require.Len(t, imp.Nodes, 5)
	assert.Equal(t, -1, imp.Nodes[0].Mesh)
	assert.Equal(t, 0, imp.Nodes[4].Mesh)
	assert.Equal(t, 0, imp.Nodes[4].Skin)
	assert.Equal(t, [3]float32{0, 1, 0}, imp.Nodes[1].LocalTransform.Translation)
	assert.Equal(t, [3]float32{1, 1, 1}, imp.Nodes[3].LocalTransform.Scale)

	require.Len(t, imp.Meshes, 1)
	assert.Equal(t, 1, imp.Meshes[0].PrimitiveCount)

	require.Len(t, imp.Skeletons, 1)
	skel := imp.Skeletons[0]
	require.Len(t, skel.Bones, 3)
	assert.Equal(t, "mixamorig:Hips", skel.Bones[0].Name)
	assert.Equal(t, int32(-1), skel.Bones[0].ParentIndex)
	assert.Equal(t, 1, skel.Bones[0].NodeIndex)
	assert.Equal(t, "mixamorig:Spine", skel.Bones[1].Name)
	assert.Equal(t, int32(0), skel.Bones[1].ParentIndex)
	assert.Equal(t, "mixamorig:LeftArm", skel.Bones[2].Name)
	assert.Equal(t, int32(1), skel.Bones[2].ParentIndex)
	assert.Equal(t, []int32{0}, skel.RootBoneIndices)
	assert.Equal(t, int32(2), skel.BoneNameToIndex["mixamorig:LeftArm"])
}

func TestImportReader_DetectsGLB(t *testing.T) {
	glb := wrapGLB(t, []byte(plainSwimmer()))

	imp, err := newGLTFImporter().ImportReader("swimmer", bytes.NewReader(glb))
	require.NoError(t, err)
	assert.Len(t, imp.Skeletons, 1)
}

func TestParse_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"wrong version", []byte(`{"asset":{"version":"1.0"}}`), errInvalidGLTFVersion},
		{"truncated glb", []byte{0x67, 0x6C, 0x54, 0x46, 2, 0}, errGLBTooSmall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newGLTFParser().ParseReader(bytes.NewReader(tt.data))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestExtractSkeleton_InverseBindMatrices(t *testing.T) {
	imp, err := newGLTFImporter().ImportReader("", strings.NewReader(swimmerWithIBM(t, 3)))
	require.NoError(t, err)
	assert.Len(t, imp.Skeletons[0].Bones, 3)

	_, err = newGLTFImporter().ImportReader("", strings.NewReader(swimmerWithIBM(t, 1)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 inverse bind matrices for 3 joints")
}

func TestReadAccessorData_BoundsChecked(t *testing.T) {
	p := newGLTFParser()
	require.NoError(t, p.ParseReader(strings.NewReader(swimmerWithIBM(t, 1))))

	p.Document().Accessors[0].Count = 2
	_, err := p.ReadAccessorData(0)
	assert.ErrorIs(t, err, errAccessorBounds)
}

func TestImport_RejectsBrokenHierarchies(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		msg  string
	}{
		{
			name: "cycle",
			doc:  `{"asset":{"version":"2.0"},"nodes":[{"name":"a","children":[1]},{"name":"b","children":[0]}]}`,
			msg:  "cycle",
		},
		{
			name: "two parents",
			doc:  `{"asset":{"version":"2.0"},"nodes":[{"children":[2]},{"children":[2]},{}]}`,
			msg:  "two parents",
		},
		{
			name: "child out of range",
			doc:  `{"asset":{"version":"2.0"},"nodes":[{"children":[7]}]}`,
			msg:  "out of range",
		},
		{
			name: "joint out of range",
			doc:  `{"asset":{"version":"2.0"},"nodes":[{}],"skins":[{"joints":[3]}]}`,
			msg:  "invalid node index",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newGLTFImporter().ImportReader("", strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestImport_RootsWithoutScene(t *testing.T) {
	doc := `{"asset":{"version":"2.0"},"nodes":[{"name":"child"},{"name":"root","children":[0]},{"name":"loose"}]}`

	imp, err := newGLTFImporter().ImportReader("", strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, imp.RootNodes)
	assert.Equal(t, "unnamed_model", imp.Name)
}

func TestDecomposeMatrix_QuarterTurnAboutY(t *testing.T) {
	// column-major rotation of 90 degrees about +Y, translated by (1, 2, 3)
	m := [16]float32{
		0, 0, -1, 0,
		0, 1, 0, 0,
		1, 0, 0, 0,
		1, 2, 3, 1,
	}

	tr := gltfDecomposeMatrix(m)
	half := float32(math.Sqrt2 / 2)

	assert.Equal(t, [3]float32{1, 2, 3}, tr.Translation)
	assert.InDelta(t, 0, tr.Rotation[0], 1e-6)
	assert.InDelta(t, half, tr.Rotation[1], 1e-6)
	assert.InDelta(t, 0, tr.Rotation[2], 1e-6)
	assert.InDelta(t, half, tr.Rotation[3], 1e-6)
	assert.InDelta(t, 1, tr.Scale[0], 1e-6)
}

func TestLoader_BuiltinRigs(t *testing.T) {
	l := NewLoader(BackendTypeGLTF)

	m, err := l.Load(BuiltinMixamo)
	require.NoError(t, err)
	assert.Equal(t, "mixamo", m.Name())
	require.True(t, m.Skinned())
	assert.Len(t, m.Skeleton().Bones, len(builtinHumanoid))
	assert.Equal(t, "mixamorig:Hips", m.Skeleton().Bones[0].Name)

	inst, err := m.Instantiate()
	require.NoError(t, err)
	assert.NotNil(t, inst.Root.Find("mixamorig:LeftForeArm"))
	require.Len(t, inst.SkinnedMeshes, 1)
	assert.Equal(t, "Body", inst.SkinnedMeshes[0].Name)

	again, err := l.Load(BuiltinMixamo)
	require.NoError(t, err)
	assert.Same(t, m, again)

	plain, err := l.Load(BuiltinPlain)
	require.NoError(t, err)
	assert.Equal(t, "Hips", plain.Skeleton().Bones[0].Name)

	static, err := l.Load(BuiltinStatic)
	require.NoError(t, err)
	assert.False(t, static.Skinned())

	_, err = l.Load("builtin:octopus")
	assert.ErrorIs(t, err, ErrUnknownBuiltin)

	assert.Len(t, l.Models(), 3)
}

func TestLoader_LoadFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "swimmer.gltf")
	require.NoError(t, os.WriteFile(path, []byte(plainSwimmer()), 0o600))

	l := NewLoader(BackendTypeGLTF)
	m, err := l.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Swimmer", m.Name())
	assert.Same(t, m, l.Get(path))

	_, err = l.Load(filepath.Join(dir, "swimmer.fbx"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported model format")

	_, err = l.Load(filepath.Join(dir, "missing.glb"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoader_LoadReaderCachesByName(t *testing.T) {
	l := NewLoader(BackendTypeGLTF)

	m, err := l.LoadReader("stream", strings.NewReader(plainSwimmer()))
	require.NoError(t, err)

	// cached: the second reader is never consumed
	again, err := l.LoadReader("stream", strings.NewReader("not json"))
	require.NoError(t, err)
	assert.Same(t, m, again)
}

func TestLoader_LoadAsync(t *testing.T) {
	l := NewLoader(BackendTypeGLTF)

	res, ok := <-l.LoadAsync(context.Background(), BuiltinMixamo)
	require.True(t, ok)
	require.NoError(t, res.Err)
	assert.Equal(t, BuiltinMixamo, res.Path)
	assert.True(t, res.Model.Skinned())

	res = <-l.LoadAsync(context.Background(), "builtin:nope")
	assert.ErrorIs(t, res.Err, ErrUnknownBuiltin)
	assert.Nil(t, res.Model)

	ch := l.LoadAsync(context.Background(), BuiltinPlain)
	<-ch
	_, open := <-ch
	assert.False(t, open, "channel must close after the single result")
}
