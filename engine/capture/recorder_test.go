package capture

import (
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-swim/engine/animator"
	"github.com/Carmen-Shannon/oxy-swim/engine/loader"
	"github.com/Carmen-Shannon/oxy-swim/engine/rig"
	"github.com/Carmen-Shannon/oxy-swim/engine/scene"
	"github.com/Carmen-Shannon/oxy-swim/engine/scene_node"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = 1.0 / 60.0

func newRecorder(t *testing.T, options ...RecorderBuilderOption) Recorder {
	t.Helper()
	r, err := NewRecorder(options...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

// resolvedSwimmer returns a swimmer whose registry holds every joint of the builtin Mixamo rig.
func resolvedSwimmer(t *testing.T, options ...scene.SwimmerBuilderOption) scene.Swimmer {
	t.Helper()
	sw := scene.NewSwimmer(options...)

	m, err := loader.NewLoader(loader.BackendTypeGLTF).Load(loader.BuiltinMixamo)
	require.NoError(t, err)
	inst, err := m.Instantiate()
	require.NoError(t, err)
	res, err := rig.NewResolver().Resolve(inst, sw.Registry())
	require.NoError(t, err)
	require.Equal(t, int(rig.JointCount), res.Resolved)

	sw.Attach(res)
	return sw
}

func TestRecorder_SessionRow(t *testing.T) {
	r := newRecorder(t, WithSessionInfo("drift", "builtin:mixamo"))

	s, err := r.Session()
	require.NoError(t, err)
	assert.Equal(t, r.SessionID().String(), s.ID)
	assert.Equal(t, "drift", s.Preset)
	assert.Equal(t, "builtin:mixamo", s.Asset)
	assert.Zero(t, s.Frames)
}

func TestRecorder_ObserveScene(t *testing.T) {
	r := newRecorder(t, WithBatchSize(50))

	sw := resolvedSwimmer(t, scene.WithPreset(animator.BackendTypeDrift))
	sc := scene.NewScene("capture", scene.WithSwimmers(sw), scene.WithObserver(r.Observe))

	const frames = 10
	for i := 0; i < frames; i++ {
		sc.Update(dt)
	}
	require.NoError(t, r.Flush())

	written := len(sw.Pose().Written())
	poses, err := r.PoseSamples(sw.ID())
	require.NoError(t, err)
	require.NotZero(t, written)
	assert.Len(t, poses, frames*written)

	roots, err := r.RootSamples(sw.ID())
	require.NoError(t, err)
	require.Len(t, roots, frames)
	assert.Equal(t, uint64(1), roots[0].Frame)
	for i := 1; i < len(roots); i++ {
		assert.GreaterOrEqual(t, roots[i].Z, roots[i-1].Z)
	}
	last := sw.Root().Position()
	assert.Equal(t, last.Z, roots[frames-1].Z)

	s, err := r.Session()
	require.NoError(t, err)
	assert.Equal(t, uint64(frames), s.Frames)
	assert.Equal(t, uint64(frames), s.LastFrame)
	assert.Equal(t, 1, s.Swimmers)
}

func TestRecorder_PoseMatchesAnimator(t *testing.T) {
	r := newRecorder(t)

	sw := resolvedSwimmer(t)
	sw.Update(0.4)
	r.Observe(1, []scene.Swimmer{sw})
	require.NoError(t, r.Flush())

	samples, err := r.PoseSamples(sw.ID())
	require.NoError(t, err)
	require.NotEmpty(t, samples)

	pose := sw.Pose()
	for _, s := range samples {
		j, ok := rig.ParseJoint(s.Joint)
		require.True(t, ok, s.Joint)
		e, mask := pose.Get(j)
		assert.Equal(t, uint8(mask), s.Mask)
		assert.Equal(t, e.X, s.X)
		assert.Equal(t, e.Y, s.Y)
		assert.Equal(t, e.Z, s.Z)
		assert.Equal(t, pose.T, s.T)
	}
}

func TestRecorder_Every(t *testing.T) {
	r := newRecorder(t, WithEvery(3))

	sw := scene.NewSwimmer()
	for f := uint64(1); f <= 9; f++ {
		sw.Update(dt)
		r.Observe(f, []scene.Swimmer{sw})
	}
	require.NoError(t, r.Flush())

	roots, err := r.RootSamples(sw.ID())
	require.NoError(t, err)
	require.Len(t, roots, 3)
	assert.Equal(t, []uint64{3, 6, 9}, []uint64{roots[0].Frame, roots[1].Frame, roots[2].Frame})

	s, err := r.Session()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), s.Frames)
	assert.Equal(t, uint64(9), s.LastFrame)
}

func TestRecorder_Dump(t *testing.T) {
	r := newRecorder(t)

	sw := scene.NewSwimmer()
	sw.Update(dt)
	r.Observe(1, []scene.Swimmer{sw})

	path := filepath.Join(t.TempDir(), "capture.db")
	require.NoError(t, r.Dump(path))

	db, err := openDB(path)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	var count int64
	require.NoError(t, db.Model(&RootSample{}).Where("session_id = ?", r.SessionID().String()).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// dumping again replaces the file
	require.NoError(t, r.Dump(path))
}

func TestRecorder_Close(t *testing.T) {
	r, err := NewRecorder()
	require.NoError(t, err)

	require.NoError(t, r.Close())
	require.NoError(t, r.Close())
	assert.ErrorIs(t, r.Flush(), ErrClosed)

	assert.NotPanics(t, func() {
		r.Observe(1, []scene.Swimmer{scene.NewSwimmer()})
	})
}

func TestDumpToDisk_RequiresPath(t *testing.T) {
	db, err := openDB("")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	assert.Error(t, dumpToDisk(db, ""))
}

func TestRecorder_RootOnlyWhenNoJoints(t *testing.T) {
	r := newRecorder(t)

	sw := scene.NewSwimmer(scene.WithPreset(animator.BackendTypeDrift))
	sw.Update(dt)
	r.Observe(1, []scene.Swimmer{sw})
	require.NoError(t, r.Flush())

	roots, err := r.RootSamples(sw.ID())
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Greater(t, roots[0].Z, scene.DefaultRestPosition.Z)

	poses, err := r.PoseSamples(sw.ID())
	require.NoError(t, err)
	assert.Empty(t, poses)
}

func TestRecorder_OnlyResolvedJoints(t *testing.T) {
	r := newRecorder(t)

	sw := scene.NewSwimmer()
	require.NoError(t, sw.Registry().Publish(map[rig.JointID]scene_node.Node{
		rig.LeftArm: scene_node.NewNode("LeftArm"),
		rig.Spine:   scene_node.NewNode("Spine"),
	}))
	sw.Update(dt)
	r.Observe(1, []scene.Swimmer{sw})
	require.NoError(t, r.Flush())

	poses, err := r.PoseSamples(sw.ID())
	require.NoError(t, err)
	joints := make([]string, 0, len(poses))
	for _, p := range poses {
		joints = append(joints, p.Joint)
	}
	assert.ElementsMatch(t, []string{"leftarm", "spine"}, joints)
}
