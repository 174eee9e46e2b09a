package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-swim/engine/animator"
	"github.com/Carmen-Shannon/oxy-swim/engine/rig"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// execute runs a fresh command tree with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRoot_ShowsHelp(t *testing.T) {
	out, err := execute(t)
	require.NoError(t, err)
	assert.Contains(t, out, "closed-form trigonometric curves")
	assert.Contains(t, out, "run")
	assert.Contains(t, out, "bones")
}

func TestRoot_Version(t *testing.T) {
	SetVersionInfo("1.2.3", "abc123", "2026-01-01")
	t.Cleanup(func() { SetVersionInfo("dev", "none", "unknown") })

	out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "1.2.3 (commit: abc123, built: 2026-01-01)")
}

func TestRoot_BadConfigFile(t *testing.T) {
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "pose")
	assert.EqualError(t, err, "Invalid configuration")
}

func TestPose_JSONMatchesAnimator(t *testing.T) {
	out, err := execute(t, "pose", "--time", "0,0.5", "-o", "json")
	require.NoError(t, err)

	var got poseOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "freestyle", got.Preset)
	require.Len(t, got.Samples, 2)

	anim := animator.NewAnimator(animator.BackendTypeFreestyle)
	for _, s := range got.Samples {
		want := anim.Pose(s.T).Map()
		assert.Equal(t, want, s.Joints, "t=%v", s.T)
	}
	assert.Contains(t, got.Samples[1].Joints, "leftarm")
	assert.Contains(t, got.Samples[1].Joints["leftarm"], "y")
}

func TestPose_PresetFromFlagAndEnv(t *testing.T) {
	out, err := execute(t, "pose", "--preset", "drift")
	require.NoError(t, err)
	assert.Contains(t, out, "preset: drift")

	t.Setenv("OXYSWIM_PRESET", "drift")
	out, err = execute(t, "pose")
	require.NoError(t, err)
	assert.Contains(t, out, "preset: drift")
}

func TestPose_UnknownPreset(t *testing.T) {
	_, err := execute(t, "pose", "--preset", "butterfly")
	assert.EqualError(t, err, "Invalid configuration")
}

func TestPose_UnknownFormat(t *testing.T) {
	_, err := execute(t, "pose", "-o", "xml")
	assert.EqualError(t, err, "Cannot print pose")
}

func TestPresets_YAML(t *testing.T) {
	out, err := execute(t, "presets", "drift")
	require.NoError(t, err)

	var got map[string]map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Contains(t, got, "drift")
	assert.NotContains(t, got, "freestyle")

	want := animator.DefaultParameters(animator.BackendTypeDrift)
	assert.Equal(t, want.RootMotion, got["drift"]["rootMotion"])
	assert.InDelta(t, want.SwimSpeed, got["drift"]["swimSpeed"], 1e-12)
}

func TestPresets_All(t *testing.T) {
	out, err := execute(t, "presets", "-o", "json")
	require.NoError(t, err)

	var got map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got, 2)
}

func TestBones_Builtin(t *testing.T) {
	out, err := execute(t, "bones", "builtin:mixamo", "-o", "json")
	require.NoError(t, err)

	var got boneReport
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "builtin:mixamo", got.Asset)
	assert.Equal(t, int(rig.JointCount), got.Resolved)
	require.Len(t, got.Joints, int(rig.JointCount))
	for _, j := range got.Joints {
		assert.True(t, j.Resolved, j.Key)
	}
}

func TestBones_Table(t *testing.T) {
	out, err := execute(t, "bones", "builtin:plain")
	require.NoError(t, err)
	assert.Contains(t, out, "JOINT")
	assert.Contains(t, out, "leftforearm")
	assert.Contains(t, out, "all 18 joints resolved")
}

func TestBones_NoSkin(t *testing.T) {
	_, err := execute(t, "bones", "builtin:static")
	assert.EqualError(t, err, "No skeleton")
}

func TestBones_BadPath(t *testing.T) {
	_, err := execute(t, "bones", "./nope.fbx")
	assert.EqualError(t, err, "Cannot load character")
}

func TestRun_FixedFramesWithDump(t *testing.T) {
	dump := filepath.Join(t.TempDir(), "poses.db")

	out, err := execute(t, "run",
		"--frames", "5",
		"--fixed-step",
		"--tick-rate", "500",
		"--swimmers", "2",
		"--capture",
		"--dump", dump,
	)
	require.NoError(t, err)

	assert.Contains(t, out, "5 frames, preset freestyle")
	assert.Contains(t, out, "lane-1")
	assert.Contains(t, out, "lane-2")
	assert.Contains(t, out, "captured 5 frames of 2 swimmers")
	assert.FileExists(t, dump)
}

func TestRun_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swim.yaml")
	body := "preset: drift\nframes: 3\ntickRate: 500\nfixedStep: true\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	out, err := execute(t, "--config", path, "run")
	require.NoError(t, err)
	assert.Contains(t, out, "3 frames, preset drift")
	assert.NotContains(t, out, "captured")
}
