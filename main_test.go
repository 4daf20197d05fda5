package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCatalogCommand(t *testing.T) {
	out, err := run(t, "catalog", "--kind", "node")
	require.NoError(t, err)
	assert.Contains(t, out, "node\n")
	assert.Contains(t, out, "  Math/\n")
	assert.Contains(t, out, "    Add  math/add\n")
	assert.Contains(t, out, "      Clamp  math/clamp\n")

	out, err = run(t, "catalog", "--kind", "node", "--filter", "not")
	require.NoError(t, err)
	assert.Contains(t, out, "Not  logic/not")
	assert.NotContains(t, out, "math/add")
}

func TestCatalogCommandFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shaders.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[node]]
kind = "shader"
type = "tex.sample"
path = "Texture/Sample"
`), 0o644))

	out, err := run(t, "catalog", "--catalog", path)
	require.NoError(t, err)
	assert.Contains(t, out, "shader\n")
	assert.Contains(t, out, "Sample  tex.sample")

	_, err = run(t, "catalog", "--catalog", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestExportCommand(t *testing.T) {
	out, err := run(t, "export", "--format", "mermaid", "--check")
	require.NoError(t, err)
	assert.Contains(t, out, "graph LR")
	assert.Contains(t, out, `subgraph G0 ["arithmetic"]`)

	_, err = run(t, "export", "--format", "ascii")
	assert.Error(t, err)
}

func TestExportRoundTripsSnapshot(t *testing.T) {
	dir := t.TempDir()
	snap := filepath.Join(dir, "graph.json")
	_, err := run(t, "export", "-f", "json", "-o", snap)
	require.NoError(t, err)

	out, err := run(t, "export", "-i", snap, "-f", "dot")
	require.NoError(t, err)
	assert.Contains(t, out, "digraph G {")
	assert.Contains(t, out, "cluster_0")
}
