package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestFindFilesByExtension(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.hcl")
	b := filepath.Join(dir, "sub", "b.hcl")
	touch(t, a)
	touch(t, b)
	touch(t, filepath.Join(dir, "notes.txt"))

	files, err := FindFilesByExtension([]string{dir, a}, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, files)
}

func TestFindFilesByExtensionKeepsExplicitFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.txt")
	touch(t, path)

	files, err := FindFilesByExtension([]string{path}, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)
}

func TestFindFilesByExtensionMissingPath(t *testing.T) {
	_, err := FindFilesByExtension([]string{filepath.Join(t.TempDir(), "missing")}, ".hcl")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFindFilesByExtensionPanicsOnEmptyExtension(t *testing.T) {
	assert.Panics(t, func() { _, _ = FindFilesByExtension(nil, "") })
}
