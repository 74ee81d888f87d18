// pattern: Imperative Shell
package instance

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

const lockFileName = "gitopen.lock"

// Lock acquires an exclusive file lock for single-instance enforcement.
// Returns the flock handle (caller must defer Cleanup) or an error if
// another instance already holds the lock.
func Lock(dataDir string) (*flock.Flock, error) {
	lockPath := filepath.Join(dataDir, lockFileName)
	fl := flock.New(lockPath)
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another gitopen instance is already running")
	}
	return fl, nil
}

// Cleanup releases the file lock.
func Cleanup(fl *flock.Flock) {
	if fl != nil {
		_ = fl.Unlock()
	}
}
