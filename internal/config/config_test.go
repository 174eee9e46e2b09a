package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-swim/engine/animator"
	"github.com/Carmen-Shannon/oxy-swim/engine/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 60.0, cfg.TickRate)
	assert.Zero(t, cfg.Frames)
	assert.Equal(t, "freestyle", cfg.Preset)
	assert.Equal(t, 1, cfg.Swimmers)
	assert.Equal(t, loader.BuiltinMixamo, cfg.Asset)
	assert.GreaterOrEqual(t, cfg.Workers, 1)
	assert.False(t, cfg.Capture.Enabled)
	assert.Equal(t, 500, cfg.Capture.BatchSize)
	assert.Equal(t, uint64(1), cfg.Capture.Every)
	assert.Equal(t, animator.BackendTypeFreestyle, cfg.BackendType())
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "swim.yaml")
	body := `
logLevel: debug
preset: drift
swimmers: 4
frames: 120
capture:
  enabled: true
  batchSize: 64
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, animator.BackendTypeDrift, cfg.BackendType())
	assert.Equal(t, 4, cfg.Swimmers)
	assert.Equal(t, uint64(120), cfg.Frames)
	assert.True(t, cfg.Capture.Enabled)
	assert.Equal(t, 64, cfg.Capture.BatchSize)
	assert.Equal(t, 60.0, cfg.TickRate)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("OXYSWIM_TICKRATE", "30")
	t.Setenv("OXYSWIM_CAPTURE_PATH", "/tmp/poses.db")

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, 30.0, cfg.TickRate)
	assert.Equal(t, "/tmp/poses.db", cfg.Capture.Path)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(New(), "/nonexistent/swim.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"preset":   "preset: butterfly\n",
		"swimmers": "swimmers: 0\n",
		"tickRate": "tickRate: -1\n",
		"batch":    "capture:\n  batchSize: 0\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0644))
			_, err := Load(New(), path)
			assert.Error(t, err)
		})
	}
}
