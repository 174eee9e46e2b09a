package printer

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func TestSuccess_AddsCheckmarkOnce(t *testing.T) {
	var buf bytes.Buffer
	Success(&buf, "done %d\n", 3)
	Success(&buf, "✓ already\n")

	assert.Equal(t, "✓ done 3\n✓ already\n", buf.String())
}

func TestWarning_Prefix(t *testing.T) {
	var buf bytes.Buffer
	Warning(&buf, "missing %s\n", "head")
	assert.Equal(t, "⚠️  missing head\n", buf.String())
}

func TestFerror(t *testing.T) {
	var buf bytes.Buffer
	err := Ferror(&buf, "load failed", "file not found", []string{"check the path", "use builtin:mixamo"})

	require.EqualError(t, err, "load failed")
	assert.Contains(t, buf.String(), "load failed\n\nfile not found\n")
	assert.Contains(t, buf.String(), "Either:\n  1. check the path\n  2. use builtin:mixamo\n")
}

func TestFerror_SingleSuggestion(t *testing.T) {
	var buf bytes.Buffer
	_ = Ferror(&buf, "bad preset", "unknown", []string{"use freestyle"})
	assert.NotContains(t, buf.String(), "Either")
	assert.Contains(t, buf.String(), "use freestyle\n")
}

func TestTable_Aligns(t *testing.T) {
	var buf bytes.Buffer
	err := Table(&buf, [3]string{"JOINT", "STATUS", "BONE"}, []Row{
		{Label: "leftarm", Value: "ok", OK: true, Detail: "mixamorig:LeftArm"},
		{Label: "head", Value: "missing"},
	})
	require.NoError(t, err)

	assert.Equal(t,
		"JOINT    STATUS   BONE\n"+
			"leftarm  ok       mixamorig:LeftArm\n"+
			"head     missing  \n",
		buf.String())
}
