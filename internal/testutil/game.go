package testutil

import (
	_ "embed"
	"os"
	"path/filepath"
	"testing"
)

// GameSource is a pristine simple-game.js containing every anchor of the
// shipped patch sequence, with no protected blocks and no injected helpers.
//
//go:embed testdata/simple-game.js
var GameSource string

// WriteGameDir creates a temporary game directory containing name with the
// given contents and returns the directory path.
func WriteGameDir(t *testing.T, name, contents string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return dir
}
