package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		" WARN ":  zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"trace":   zerolog.TraceLevel,
		"off":     zerolog.Disabled,
		"info":    zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNew_FiltersByLevel(t *testing.T) {
	var out bytes.Buffer
	log := New("warn", &out, nil)

	log.Info().Msg("hidden")
	log.Warn().Str("joint", "leftarm").Msg("shown")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "shown")
	assert.Contains(t, out.String(), "leftarm")
}

func TestNew_WritesFileWithoutColor(t *testing.T) {
	var out, file bytes.Buffer
	log := New("info", &out, &file)

	log.Info().Msg("frame")

	assert.Contains(t, out.String(), "frame")
	assert.Contains(t, file.String(), "frame")
	assert.NotContains(t, file.String(), "\x1b[")
}
