package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaths(t *testing.T) {
	base := t.TempDir()

	paths, err := NewPaths(PathsConfig{
		BaseDir:    base,
		UploadsDir: "data/uploads",
		OutputDir:  "output",
		LogsDir:    "logs",
	})
	require.NoError(t, err)

	assert.Equal(t, base, paths.BaseDir)
	assert.Equal(t, filepath.Join(base, "data", "uploads"), paths.UploadsDir)
	assert.Equal(t, filepath.Join(base, "output"), paths.OutputDir)
	assert.Equal(t, filepath.Join(base, "logs"), paths.LogsDir)
}

func TestNewPathsAbsoluteEntriesKept(t *testing.T) {
	base := t.TempDir()
	out := t.TempDir()

	paths, err := NewPaths(PathsConfig{
		BaseDir:   base,
		OutputDir: out,
		LogsDir:   "logs",
	})
	require.NoError(t, err)

	assert.Equal(t, out, paths.OutputDir)
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()

	paths, err := NewPaths(PathsConfig{
		BaseDir:    base,
		UploadsDir: "data/uploads",
		OutputDir:  "output",
		LogsDir:    "logs",
	})
	require.NoError(t, err)
	require.NoError(t, paths.EnsureDirectories())

	for _, dir := range []string{paths.UploadsDir, paths.OutputDir, paths.LogsDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}

	// Idempotent.
	assert.NoError(t, paths.EnsureDirectories())
}

func TestOutputPath(t *testing.T) {
	paths := &Paths{OutputDir: "/tmp/acelab/output"}
	assert.Equal(t, filepath.Join("/tmp/acelab/output", "table1_raw_x.xlsx"),
		paths.OutputPath("table1_raw_x.xlsx"))
}
