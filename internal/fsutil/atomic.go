// Package fsutil holds the write primitives the storage layer builds on.
// Every snapshot field file goes through WriteFileAtomic, so a crash or
// power loss can leave at most a stray temp file, never a half-written
// JSON document.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// WriteFileAtomic replaces path with data in one step: the bytes land in
// a temp file next to the destination, get fsynced, and are renamed over
// it. Readers observe either the old contents or the new, nothing in
// between.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}

	tmpPath := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	if err := tmp.Chmod(perm); err != nil {
		cleanup()
		return fmt.Errorf("chmod %s: %w", tmpPath, err)
	}
	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("write %s: %w", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("fsync %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		if replaceOnWindows(tmpPath, path) {
			return syncDir(dir)
		}
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename %s -> %s: %w", tmpPath, path, err)
	}

	return syncDir(dir)
}

// replaceOnWindows handles the one platform where rename refuses to
// overwrite: remove the destination, then rename. Not atomic, but the
// data already survived the fsync.
func replaceOnWindows(tmpPath, path string) bool {
	if runtime.GOOS != "windows" {
		return false
	}
	if _, err := os.Stat(path); err != nil {
		return false
	}
	if err := os.Remove(path); err != nil {
		return false
	}
	return os.Rename(tmpPath, path) == nil
}

// BestEffortBackup shadows path to path+".bak" so the loader has
// something to fall back to when the primary turns out corrupt. Errors
// are swallowed; a missing backup only costs recovery options.
func BestEffortBackup(path string, perm os.FileMode) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	_ = WriteFileAtomic(path+".bak", data, perm)
}

// syncDir flushes the directory entry for a just-renamed file. Failure
// is ignored; some filesystems do not support syncing directories.
func syncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return nil
	}
	defer f.Close()
	_ = f.Sync()
	return nil
}
