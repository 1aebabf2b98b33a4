// Package lock serialises orchestrator runs against one machine. Strategies
// mutate shared external state (filesystem, one named task, one port) with
// no transactional isolation, so concurrent runs are refused outright.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/process"
)

const lockFileName = "bridgectl.lock"

// Guard is a held single-instance lock.
type Guard struct {
	path string
}

// Acquire takes the run lock under stateDir. A lock left behind by a dead
// process is reclaimed; a lock held by a live process is an error.
func Acquire(stateDir string) (*Guard, error) {
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(stateDir, lockFileName)

	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			if err := writeOwner(f); err != nil {
				os.Remove(path)
				return nil, fmt.Errorf("write lock %s: %w", path, err)
			}
			return &Guard{path: path}, nil
		}
		if !os.IsExist(err) {
			return nil, err
		}

		pid, readErr := readPid(path)
		if readErr == nil && pid > 0 {
			if alive, _ := process.PidExists(int32(pid)); alive {
				return nil, fmt.Errorf("another run holds the lock (pid %d); wait for it or remove %s", pid, path)
			}
		}
		// Stale or unreadable lock from a dead run; reclaim it.
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reclaim stale lock %s: %w", path, err)
		}
	}

	return nil, fmt.Errorf("could not acquire lock %s", path)
}

// Release drops the lock. Safe to call on an already-released guard.
func (g *Guard) Release() error {
	if g == nil {
		return nil
	}
	if err := os.Remove(g.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func writeOwner(f *os.File) error {
	_, werr := fmt.Fprintf(f, "%d\n", os.Getpid())
	return errors.Join(werr, f.Close())
}

func readPid(path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(raw)))
}
