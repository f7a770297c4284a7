// Package lockfile keeps a single interactive session per database.
package lockfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/dayfit/internal/constants"
)

var (
	// ErrAlreadyRunning is returned when a live process holds the lock
	ErrAlreadyRunning = errors.New("another dayfit session is already running")

	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

// Lock is a held lock file. Release removes it.
type Lock struct {
	path string
	pid  int
}

// PathFor returns the lock file location for a database path.
func PathFor(dbPath string) string {
	return filepath.Join(filepath.Dir(dbPath), constants.LockfileName)
}

// Acquire writes the current PID to path. A lock left behind by a process
// that is no longer running is replaced.
func Acquire(path string) (*Lock, error) {
	pid := getpidFunc()

	holder, err := readPID(path)
	switch {
	case err == nil && holder != pid && alive(holder):
		return nil, fmt.Errorf("%w (pid %d)", ErrAlreadyRunning, holder)
	case err == nil || !os.IsNotExist(err):
		// stale or unreadable
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove stale lock: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		if os.IsExist(err) {
			return nil, ErrAlreadyRunning
		}
		return nil, fmt.Errorf("failed to create lock: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(strconv.Itoa(pid)); err != nil {
		return nil, fmt.Errorf("failed to write lock: %w", err)
	}
	return &Lock{path: path, pid: pid}, nil
}

// Release removes the lock if it still belongs to this process.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	holder, err := readPID(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if holder != l.pid {
		return nil
	}
	return os.Remove(l.path)
}

func readPID(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("lockfile is malformed: %w", err)
	}
	return pid, nil
}

func alive(pid int) bool {
	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return false
	}
	return strings.HasPrefix(process.Executable(), constants.AppName)
}
