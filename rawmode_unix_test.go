//go:build unix

package termcore

import (
	"errors"
	"testing"

	"github.com/creack/pty"
)

// openTestPTY opens a real pseudo-terminal so raw-mode tests exercise the
// actual termios ioctls instead of failing on a non-tty stdout (the usual
// case under `go test`).
func openTestPTY(t *testing.T) (master, slave int) {
	t.Helper()
	pm, ps, err := pty.Open()
	if err != nil {
		t.Skipf("no pty available in this environment: %v", err)
	}
	t.Cleanup(func() {
		pm.Close()
		ps.Close()
	})
	return int(pm.Fd()), int(ps.Fd())
}

func TestRawModeEnterExit(t *testing.T) {
	_, slaveFd := openTestPTY(t)
	r := NewRawMode(slaveFd)

	if r.IsRaw() {
		t.Fatal("expected not raw initially")
	}
	if err := r.Enter(); err != nil {
		t.Fatalf("Enter: %v", err)
	}
	if !r.IsRaw() {
		t.Error("expected raw after Enter")
	}
	if err := r.Exit(); err != nil {
		t.Fatalf("Exit: %v", err)
	}
	if r.IsRaw() {
		t.Error("expected not raw after Exit")
	}
}

func TestRawModeDoubleEnter(t *testing.T) {
	_, slaveFd := openTestPTY(t)
	r := NewRawMode(slaveFd)
	defer r.ForceCleanup()

	if err := r.Enter(); err != nil {
		t.Fatalf("Enter: %v", err)
	}
	if err := r.Enter(); !errors.Is(err, ErrAlreadyInRawMode) {
		t.Errorf("expected ErrAlreadyInRawMode on double-enter, got %v", err)
	}
}

func TestRawModeExitWithoutEnter(t *testing.T) {
	_, slaveFd := openTestPTY(t)
	r := NewRawMode(slaveFd)
	if err := r.Exit(); !errors.Is(err, ErrNotInRawMode) {
		t.Errorf("expected ErrNotInRawMode, got %v", err)
	}
}

func TestRawModeForceCleanupIdempotent(t *testing.T) {
	_, slaveFd := openTestPTY(t)
	r := NewRawMode(slaveFd)
	r.ForceCleanup() // no-op, not raw
	if err := r.Enter(); err != nil {
		t.Fatalf("Enter: %v", err)
	}
	r.ForceCleanup()
	if r.IsRaw() {
		t.Error("expected ForceCleanup to clear raw state")
	}
	r.ForceCleanup() // idempotent second call
}

func TestRawModeProcessWideLatch(t *testing.T) {
	_, slaveFd := openTestPTY(t)
	first := NewRawMode(slaveFd)
	second := NewRawMode(slaveFd)
	defer first.ForceCleanup()
	defer second.ForceCleanup()

	if err := first.Enter(); err != nil {
		t.Fatalf("first Enter: %v", err)
	}
	if err := second.Enter(); !errors.Is(err, ErrAlreadyInRawMode) {
		t.Errorf("expected the process-wide latch to reject a second live adapter, got %v", err)
	}
}

func TestPlatformIsTTY(t *testing.T) {
	_, slaveFd := openTestPTY(t)
	if !platformIsTTY(slaveFd) {
		t.Error("expected a pty slave fd to report as a tty")
	}
}
