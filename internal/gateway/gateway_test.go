package gateway

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocate_Found(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "simple-game.js"), []byte("x"), 0644))

	path, err := Locate(dir, "simple-game.js")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "simple-game.js"), path)
}

func TestLocate_NotFound(t *testing.T) {
	dir := t.TempDir()

	path, err := Locate(dir, "simple-game.js")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, filepath.Join(dir, "simple-game.js"), path, "path is returned for diagnostics")
	assert.Contains(t, err.Error(), path)
}

func TestLocate_Directory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "simple-game.js"), 0755))

	_, err := Locate(dir, "simple-game.js")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotRegular))
}

func TestRead_NotFound(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.js"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestReadWrite_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.js")
	require.NoError(t, os.WriteFile(path, []byte("const a = 1;\n"), 0600))

	buf, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "const a = 1;\n", buf)

	require.NoError(t, Write(path, buf+"const b = 2;\n"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "const a = 1;\nconst b = 2;\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "write keeps permission bits")
}

func TestWrite_CreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.js")

	require.NoError(t, Write(path, "x"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
}

func TestWrite_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "game.js")

	err := Write(path, "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write")
}
