package lock

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-ps"
)

type fakeProcess struct {
	pid int
	exe string
}

func (p fakeProcess) Pid() int           { return p.pid }
func (p fakeProcess) PPid() int          { return 1 }
func (p fakeProcess) Executable() string { return p.exe }

func stubProcesses(t *testing.T, running map[int]string) {
	t.Helper()
	origFind, origPid := findProcessFunc, getpidFunc
	findProcessFunc = func(pid int) (ps.Process, error) {
		if exe, ok := running[pid]; ok {
			return fakeProcess{pid: pid, exe: exe}, nil
		}
		return nil, nil
	}
	getpidFunc = func() int { return 100 }
	t.Cleanup(func() { findProcessFunc, getpidFunc = origFind, origPid })
}

func TestAcquireAndRelease(t *testing.T) {
	stubProcesses(t, nil)
	dir := t.TempDir()

	l, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	data, err := os.ReadFile(Path(dir))
	if err != nil {
		t.Fatalf("lockfile not written: %v", err)
	}
	if len(data) == 0 || data[0] != '1' {
		t.Errorf("expected lockfile to start with our pid, got %q", data)
	}

	if err := l.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if _, err := os.Stat(Path(dir)); !os.IsNotExist(err) {
		t.Error("lockfile should be removed on release")
	}
	if err := l.Release(); err != nil {
		t.Errorf("second Release should be a no-op, got %v", err)
	}
}

func TestAcquireHeldByLiveProcess(t *testing.T) {
	stubProcesses(t, map[int]string{200: "brightwell"})
	dir := t.TempDir()
	if err := os.WriteFile(Path(dir), []byte("200|brightwell"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Acquire(dir); !errors.Is(err, ErrLocked) {
		t.Errorf("expected ErrLocked, got %v", err)
	}
}

func TestAcquireReplacesStaleLock(t *testing.T) {
	tests := []struct {
		name    string
		content string
		running map[int]string
	}{
		{"dead process", "300|brightwell", nil},
		{"pid reused by another program", "300|brightwell", map[int]string{300: "bash"}},
		{"malformed", "garbage", nil},
		{"our own pid", "100|brightwell", map[int]string{100: "brightwell"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubProcesses(t, tt.running)
			dir := t.TempDir()
			if err := os.WriteFile(Path(dir), []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			l, err := Acquire(dir)
			if err != nil {
				t.Fatalf("expected stale lock to be replaced, got %v", err)
			}
			_ = l.Release()
		})
	}
}

func TestAcquireDoesNotStealLockTakenDuringStaleCheck(t *testing.T) {
	stubProcesses(t, nil)
	dir := t.TempDir()
	if err := os.WriteFile(Path(dir), []byte("300|brightwell"), 0600); err != nil {
		t.Fatal(err)
	}

	// While pid 300 is being judged dead, pid 400 clears it and takes the lock.
	findProcessFunc = func(pid int) (ps.Process, error) {
		switch pid {
		case 300:
			if err := os.WriteFile(Path(dir), []byte("400|brightwell"), 0600); err != nil {
				t.Fatal(err)
			}
			return nil, nil
		case 400:
			return fakeProcess{pid: 400, exe: "brightwell"}, nil
		}
		return nil, nil
	}

	if _, err := Acquire(dir); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	data, err := os.ReadFile(Path(dir))
	if err != nil {
		t.Fatalf("lockfile removed: %v", err)
	}
	if string(data) != "400|brightwell" {
		t.Errorf("lockfile overwritten, got %q", data)
	}
}

func TestAcquireLeavesNoTempFiles(t *testing.T) {
	stubProcesses(t, nil)
	dir := t.TempDir()

	l, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer l.Release()
	if _, err := Acquire(dir); err != nil {
		t.Fatalf("own lock should be reclaimable, got %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != filepath.Base(Path(dir)) {
		t.Errorf("expected only the lockfile, got %v", entries)
	}
}
