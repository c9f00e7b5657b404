// Package lock keeps a single long-running brightwell process (dashboard or
// reminder watcher) writing to a store at a time.
package lock

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/brightwell/internal/constants"
)

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

// ErrLocked is returned when another live process holds the lock.
var ErrLocked = errors.New("another brightwell process is running")

// Lock is a held lockfile.
type Lock struct {
	path string
}

// Path returns the lockfile path for a store directory.
func Path(dir string) string {
	return filepath.Join(dir, constants.LockfileName)
}

func executableName() string {
	exe, err := os.Executable()
	if err != nil {
		return constants.AppName
	}
	return filepath.Base(exe)
}

// acquireAttempts bounds how often a stale lockfile is cleared before giving up.
const acquireAttempts = 3

// Acquire takes the lock in dir. A lockfile left behind by a process that is no
// longer running, or whose PID now belongs to a different program, is treated
// as stale and replaced.
//
// The lockfile is written in full to a temporary file and hard-linked into
// place, so creation is exclusive and no reader ever sees a partial file.
func Acquire(dir string) (*Lock, error) {
	path := Path(dir)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+constants.LockfileName+"-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create lockfile: %w", err)
	}
	defer os.Remove(tmp.Name())
	_, werr := fmt.Fprintf(tmp, "%d|%s", getpidFunc(), executableName())
	if cerr := tmp.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", werr)
	}

	for attempt := 0; attempt < acquireAttempts; attempt++ {
		err := os.Link(tmp.Name(), path)
		if err == nil {
			return &Lock{path: path}, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("failed to write lockfile: %w", err)
		}

		seen, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read lockfile: %w", err)
		}
		if holder, ok := liveHolder(seen); ok {
			return nil, fmt.Errorf("%w (pid %d)", ErrLocked, holder)
		}
		// Another process may have replaced the stale file meanwhile; only remove what was judged.
		if current, err := os.ReadFile(path); err == nil && bytes.Equal(current, seen) {
			if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to remove stale lockfile: %w", err)
			}
		}
	}
	return nil, ErrLocked
}

// liveHolder returns the PID recorded in the lockfile contents if that process
// is still the program that wrote it.
func liveHolder(data []byte) (int, bool) {
	pidText, exe, found := strings.Cut(strings.TrimSpace(string(data)), "|")
	if !found {
		return 0, false
	}
	pid, err := strconv.Atoi(pidText)
	if err != nil || pid == getpidFunc() {
		return 0, false
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return 0, false
	}
	if exe != "" && process.Executable() != exe {
		return 0, false
	}
	return pid, true
}

// Release removes the lockfile. It is safe to call more than once.
func (l *Lock) Release() error {
	if l == nil || l.path == "" {
		return nil
	}
	err := os.Remove(l.path)
	l.path = ""
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
