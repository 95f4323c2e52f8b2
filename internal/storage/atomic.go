// Package storage implements the durable write protocol for vault files:
// write to a temporary file in the target directory, flush to stable
// storage, then rename over the target. A reader observes either the old
// complete file or the new complete file, never a partial write.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// Test seam: simulated rename failures must leave the target untouched.
var renameFile = os.Rename

// WriteFileAtomic writes data to path with the given permissions. On any
// failure the previous contents of path are unchanged and the temporary
// file is removed.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".vaultura-*.tmp")
	if err != nil {
		return fmt.Errorf("storage: create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	cleanup := func() {
		tmp.Close()
		os.Remove(tmpPath)
	}

	if err := tmp.Chmod(perm); err != nil {
		cleanup()
		return fmt.Errorf("storage: chmod temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("storage: write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("storage: sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("storage: close temp file: %w", err)
	}

	if err := renameFile(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("storage: rename temp file: %w", err)
	}

	syncDir(dir)
	return nil
}

// syncDir flushes the directory entry so the rename survives a crash.
// Best effort: some filesystems do not support fsync on directories.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	defer d.Close()
	_ = d.Sync()
}
