package commands

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/simonhull/firebird-suite/quill/gha"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCIWorkflowIsValid(t *testing.T) {
	_, err := gha.New(ciWorkflow())
	require.NoError(t, err)
}

func TestExportCmdWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workflows", "ci.yml")

	cmd := ExportCmd()
	cmd.SetArgs([]string{"-o", path})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: ci\n")
	assert.Contains(t, string(data), "'on':\n")
	assert.Contains(t, string(data), "run: |-\n")
}

func TestReportValidationPrintsEachViolation(t *testing.T) {
	errs := gha.ValidationErrors{
		{Path: "jobs[0].runs-on", Kind: gha.KindSchema, Message: `unknown runner label "x"`},
		{Path: "on", Kind: gha.KindCrossField, Message: "no event is configured"},
	}

	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	reportValidation(errs)
	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	out := buf.String()

	assert.Contains(t, out, "found 2 validation errors")
	assert.Contains(t, out, "jobs[0].runs-on")
	assert.Contains(t, out, "no event is configured")
}

func TestCheckCmdAcceptsValidWorkflow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ci.yml")

	w, err := gha.New(ciWorkflow())
	require.NoError(t, err)
	data, err := w.YAML()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cmd := CheckCmd()
	cmd.SetArgs([]string{path})
	require.NoError(t, cmd.Execute())
}
