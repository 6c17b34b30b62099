package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked reports that another process holds the append lock for a file.
var ErrLocked = errors.New("output file is locked by another process")

// LockedAppender appends complete records to a file while holding an
// advisory lock on a sibling ".lock" file. Each Append is flushed to disk
// before it returns, so an interrupted writer never leaves a partial record.
type LockedAppender struct {
	path string
	lock *flock.Flock
}

// OpenAppender acquires the append lock for path without blocking.
func OpenAppender(path string) (*LockedAppender, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}
	lockPath := path + ".lock"
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, path)
	}
	return &LockedAppender{path: path, lock: lock}, nil
}

// Path returns the file being appended to.
func (a *LockedAppender) Path() string { return a.path }

// Append writes data as one record and syncs it.
func (a *LockedAppender) Append(data []byte) error {
	file, err := os.OpenFile(a.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", a.path, err)
	}
	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		return fmt.Errorf("append %s: %w", a.path, err)
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		return fmt.Errorf("sync %s: %w", a.path, err)
	}
	return file.Close()
}

// Close releases the lock. The lock file stays in place so every owner
// locks the same inode.
func (a *LockedAppender) Close() error {
	if a == nil || a.lock == nil {
		return nil
	}
	if err := a.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}
