// Package gateway reads and writes the target source file.
//
// The gateway is deliberately thin: one whole-file read, one whole-file
// overwrite. There is no atomic rename and no backup of the original
// contents.
package gateway

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

var (
	// ErrNotFound is returned when the target path does not exist.
	ErrNotFound = errors.New("target file not found")

	// ErrNotRegular is returned when the target path is not a regular file.
	ErrNotRegular = errors.New("target is not a regular file")
)

// defaultMode is used when the target's mode cannot be determined.
const defaultMode fs.FileMode = 0644

// Locate resolves name beneath dir and checks that it is a regular file.
// Returns the joined path even on error so callers can report it.
func Locate(dir, name string) (string, error) {
	path := filepath.Join(dir, name)

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return path, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return path, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return path, fmt.Errorf("%w: %s", ErrNotRegular, path)
	}
	return path, nil
}

// Read loads the whole file at path.
func Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// Write overwrites the file at path with buf, keeping its permission bits.
func Write(path, buf string) error {
	mode := defaultMode
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, []byte(buf), mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
