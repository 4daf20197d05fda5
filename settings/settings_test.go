package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1.0, s.Zoom)
	assert.True(t, s.SnapToGrid)
	assert.False(t, s.FastForward)
	assert.True(t, s.FitToScreenOnOpen)
	assert.Equal(t, path, s.Path())
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")

	s, err := Load(path)
	require.NoError(t, err)
	s.Zoom = 0.5
	s.SnapToGrid = false
	s.FastForward = true
	require.NoError(t, s.Save())

	_, err = os.Stat(path)
	require.NoError(t, err)

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.5, again.Zoom)
	assert.False(t, again.SnapToGrid)
	assert.True(t, again.FastForward)
	assert.True(t, again.FitToScreenOnOpen)
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("NODEGRAPH_ZOOM", "2.5")

	s, err := Load(filepath.Join(t.TempDir(), "settings.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 2.5, s.Zoom)
}

func TestDefaultsAreInMemory(t *testing.T) {
	s := Defaults()
	assert.Equal(t, 1.0, s.Zoom)
	assert.NoError(t, s.Save())
	assert.Empty(t, s.Path())
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("zoom: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadReplacesInvalidZoom(t *testing.T) {
	for _, zoom := range []string{".nan", "-2", "0", ".inf"} {
		path := filepath.Join(t.TempDir(), "settings.yaml")
		require.NoError(t, os.WriteFile(path, []byte("zoom: "+zoom+"\n"), 0o644))

		s, err := Load(path)
		require.NoError(t, err, zoom)
		assert.Equal(t, 1.0, s.Zoom, zoom)
	}
}
