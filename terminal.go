package termcore

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"

	xterm "golang.org/x/term"
)

// Terminal owns everything tied to the process's controlling TTY: the
// raw-mode adapter, cached size, size-detection pipeline, cursor/alt-
// screen/raw flags, the resize-callback registry, and the resize
// monitor. Exactly one Terminal should exist per process.
type Terminal struct {
	stdin  io.Reader
	stdout io.Writer
	stdinFd, stdoutFd int

	rawMode *RawMode

	constraints SizeConstraints
	size        Size
	sizeCached  bool

	flags struct {
		isRaw         bool
		useAltScreen  bool
		cursorVisible bool
		debugOutput   bool
	}

	// mu guards resizeCallbacks and isResizing: one mutex for both the
	// callback list and the in-progress flag.
	mu              sync.Mutex
	resizeCallbacks []func(ResizeEvent)
	isResizing      bool

	monitor resizeMonitor

	logger Logger

	testMode bool
}

// resizeMonitor is the platform-specific watcher that drives
// Terminal.handleResize: a SIGWINCH handler on POSIX, a polling
// goroutine on Windows.
type resizeMonitor interface {
	stop()
}

// NewTerminal builds a Terminal over the process's stdin/stdout. Outside
// of tests, if stdout is not a terminal this returns ErrNotATTY.
func NewTerminal() (*Terminal, error) {
	t := &Terminal{
		stdin:      os.Stdin,
		stdout:     os.Stdout,
		stdinFd:    int(os.Stdin.Fd()),
		stdoutFd:   int(os.Stdout.Fd()),
		rawMode:    NewRawMode(int(os.Stdout.Fd())),
		logger:     defaultLogger,
	}
	t.flags.cursorVisible = true
	t.testMode = testing.Testing()

	if !t.testMode && !platformIsTTY(t.stdoutFd) && !xterm.IsTerminal(t.stdoutFd) {
		return nil, ErrNotATTY
	}
	return t, nil
}

// SetLogger installs the Logger used for the resize-callback and manager
// failure paths that get logged rather than propagated.
func (t *Terminal) SetLogger(l Logger) {
	if l == nil {
		l = defaultLogger
	}
	t.logger = l
}

// SetDebugOutput toggles whether ANSI emission actually reaches stdout.
// When the process is under test and this is false, Write discards its
// input and reports success without touching stdout.
func (t *Terminal) SetDebugOutput(enabled bool) { t.flags.debugOutput = enabled }

// Write emits raw bytes to the terminal, honoring the debug-output gate.
func (t *Terminal) Write(p []byte) (int, error) {
	if t.testMode && !t.flags.debugOutput {
		return len(p), nil
	}
	n, err := t.stdout.Write(p)
	if err != nil {
		return n, fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return n, nil
}

// SetSizeConstraints installs new clamping bounds and invalidates the
// cached size so the next GetSize re-validates against them.
func (t *Terminal) SetSizeConstraints(c SizeConstraints) {
	t.constraints = c
	t.sizeCached = false
}

// GetSize returns the cached size if present and still constraint-valid,
// otherwise runs the tiered detection pipeline and caches the result.
func (t *Terminal) GetSize() (Size, error) {
	if t.sizeCached && t.constraints.Validate(t.size) {
		return t.size, nil
	}
	return t.RefreshSize()
}

// RefreshSize forces the tiered detection pipeline to run regardless of
// any cached value, caching whatever it returns.
//
// Tier 1: OS-native call (ioctl TIOCGWINSZ / GetConsoleScreenBufferInfo).
// Tier 2: ANSI device-status report.
// Tier 3: LINES / COLUMNS environment variables.
// Tier 4: fallback 24x80.
// Each tier's result is constraint-applied and validated before being
// accepted; the first tier to produce a valid size wins.
func (t *Terminal) RefreshSize() (Size, error) {
	if s, ok := t.tierOSNative(); ok {
		return t.acceptSize(s), nil
	}
	if s, ok := t.tierDeviceStatusReport(); ok {
		return t.acceptSize(s), nil
	}
	if s, ok := t.tierEnvironment(); ok {
		return t.acceptSize(s), nil
	}
	return t.acceptSize(Size{Rows: 24, Cols: 80}), nil
}

func (t *Terminal) acceptSize(s Size) Size {
	s = t.constraints.Apply(s)
	t.size = s
	t.sizeCached = true
	return s
}

func (t *Terminal) tierOSNative() (Size, bool) {
	s, err := platformGetSize(t.stdoutFd)
	if err != nil || !t.constraints.Apply(s).IsValid() {
		return Size{}, false
	}
	return s, true
}

// tierDeviceStatusReport saves the cursor, moves it far out, queries its
// position, parses the reply, then restores the cursor - the maximum
// reachable row/col is the terminal's size.
func (t *Terminal) tierDeviceStatusReport() (Size, bool) {
	var out []byte
	buf := make([]byte, 0, 64)

	Ansi.SaveCursor(sliceWriter{&buf})
	Ansi.MoveTo(sliceWriter{&buf}, 998, 998)
	Ansi.DeviceStatusReport(sliceWriter{&buf})
	if _, err := t.Write(buf); err != nil {
		return Size{}, false
	}

	reply, ok := t.readDSRReply()
	var restore []byte
	Ansi.RestoreCursor(sliceWriter{&restore})
	t.Write(restore)
	if !ok {
		return Size{}, false
	}
	out = reply

	row, col, ok := ParseDeviceStatusReport(out)
	if !ok {
		return Size{}, false
	}
	return Size{Rows: row, Cols: col}, true
}

// readDSRReply reads from stdin until it has seen a full "CSI
// row;col R" reply or a short bound on attempts elapses. In test mode
// (no real controlling terminal) this always fails fast.
func (t *Terminal) readDSRReply() ([]byte, bool) {
	if t.testMode {
		return nil, false
	}
	r := bufio.NewReader(t.stdin)
	buf := make([]byte, 0, 32)
	deadline := time.Now().Add(200 * time.Millisecond)
	for time.Now().Before(deadline) {
		b, err := r.ReadByte()
		if err != nil {
			return nil, false
		}
		buf = append(buf, b)
		if b == 'R' {
			if _, _, ok := ParseDeviceStatusReport(buf); ok {
				return buf, true
			}
		}
	}
	return nil, false
}

func (t *Terminal) tierEnvironment() (Size, bool) {
	linesStr := os.Getenv("LINES")
	colsStr := os.Getenv("COLUMNS")
	if linesStr == "" || colsStr == "" {
		return Size{}, false
	}
	rows, err1 := strconv.Atoi(linesStr)
	cols, err2 := strconv.Atoi(colsStr)
	if err1 != nil || err2 != nil {
		return Size{}, false
	}
	s := Size{Rows: rows, Cols: cols}
	if !t.constraints.Apply(s).IsValid() {
		return Size{}, false
	}
	return s, true
}

// sliceWriter adapts a *[]byte to io.Writer without pulling in bytes.Buffer
// for these small, scratch-only escape sequences.
type sliceWriter struct{ buf *[]byte }

func (w sliceWriter) Write(p []byte) (int, error) {
	*w.buf = append(*w.buf, p...)
	return len(p), nil
}

// EnterRawMode puts the terminal into raw mode. Idempotent: a second
// call while already raw is a no-op.
func (t *Terminal) EnterRawMode() error {
	if t.flags.isRaw {
		return nil
	}
	if err := t.rawMode.Enter(); err != nil {
		return err
	}
	t.flags.isRaw = true
	return nil
}

// ExitRawMode restores the terminal's original mode. Idempotent.
func (t *Terminal) ExitRawMode() error {
	if !t.flags.isRaw {
		return nil
	}
	if err := t.rawMode.Exit(); err != nil {
		return err
	}
	t.flags.isRaw = false
	return nil
}

// IsRawMode reports whether the terminal is currently in raw mode.
func (t *Terminal) IsRawMode() bool { return t.flags.isRaw }

// EnterAltScreen switches to the alternate screen buffer. Idempotent.
func (t *Terminal) EnterAltScreen() error {
	if t.flags.useAltScreen {
		return nil
	}
	var b []byte
	Ansi.EnterAltScreen(sliceWriter{&b})
	if _, err := t.Write(b); err != nil {
		return err
	}
	t.flags.useAltScreen = true
	return nil
}

// ExitAltScreen returns to the main screen buffer. Idempotent.
func (t *Terminal) ExitAltScreen() error {
	if !t.flags.useAltScreen {
		return nil
	}
	var b []byte
	Ansi.ExitAltScreen(sliceWriter{&b})
	if _, err := t.Write(b); err != nil {
		return err
	}
	t.flags.useAltScreen = false
	return nil
}

// HideCursor hides the terminal cursor. Idempotent.
func (t *Terminal) HideCursor() error {
	if !t.flags.cursorVisible {
		return nil
	}
	var b []byte
	Ansi.HideCursor(sliceWriter{&b})
	if _, err := t.Write(b); err != nil {
		return err
	}
	t.flags.cursorVisible = false
	return nil
}

// ShowCursor shows the terminal cursor. Idempotent.
func (t *Terminal) ShowCursor() error {
	if t.flags.cursorVisible {
		return nil
	}
	var b []byte
	Ansi.ShowCursor(sliceWriter{&b})
	if _, err := t.Write(b); err != nil {
		return err
	}
	t.flags.cursorVisible = true
	return nil
}

// CursorVisible reports the cursor's current tracked visibility.
func (t *Terminal) CursorVisible() bool { return t.flags.cursorVisible }

// Clear emits a clear-screen followed by cursor-home.
func (t *Terminal) Clear() error {
	var b []byte
	Ansi.ClearScreen(sliceWriter{&b})
	Ansi.MoveTo(sliceWriter{&b}, 0, 0)
	_, err := t.Write(b)
	return err
}

// OnResize registers a callback invoked, in registration order, whenever
// handleResize observes a size change. Registering from inside a
// callback during dispatch is safe: dispatch iterates over a snapshot.
func (t *Terminal) OnResize(cb func(ResizeEvent)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resizeCallbacks = append(t.resizeCallbacks, cb)
}

// handleResize is the single entry point for a detected size change: it
// clamps to constraints, no-ops if unchanged, otherwise updates the
// cache, builds a ResizeEvent, and delivers it to every registered
// callback in order. A callback's panic is recovered and logged so it
// cannot stop delivery to later callbacks.
func (t *Terminal) handleResize(newSize Size, nowMs int64) {
	t.mu.Lock()
	if t.isResizing {
		t.mu.Unlock()
		return
	}
	t.isResizing = true
	newSize = t.constraints.Apply(newSize)
	old := t.size
	if old.Equal(newSize) {
		t.isResizing = false
		t.mu.Unlock()
		return
	}
	t.size = newSize
	t.sizeCached = true
	callbacks := make([]func(ResizeEvent), len(t.resizeCallbacks))
	copy(callbacks, t.resizeCallbacks)
	t.isResizing = false
	t.mu.Unlock()

	evt := ResizeEvent{Old: old, New: newSize, TimestampMs: nowMs}
	for _, cb := range callbacks {
		invokeResizeCallback(cb, evt, t.logger)
	}
}

func invokeResizeCallback(cb func(ResizeEvent), evt ResizeEvent, logger Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("resize callback panicked: %v", r)
		}
	}()
	cb(evt)
}

// StartResizeMonitoring installs the platform resize watcher (a SIGWINCH
// handler on POSIX, a polling goroutine on Windows).
func (t *Terminal) StartResizeMonitoring() error {
	if t.monitor != nil {
		return nil
	}
	m, err := newResizeMonitor(t)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrResizeMonitoringFailed, err)
	}
	t.monitor = m
	return nil
}

// StopResizeMonitoring uninstalls the watcher and waits for any
// background worker to exit.
func (t *Terminal) StopResizeMonitoring() {
	if t.monitor == nil {
		return
	}
	t.monitor.stop()
	t.monitor = nil
}
