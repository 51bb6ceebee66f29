//go:build windows

package termcore

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// platformEnterRaw saves the console's current input mode and clears the
// line-input/echo/processed-input flags so keystrokes arrive one at a
// time, unprocessed - the Windows Console API analogue of the POSIX
// termios raw-mode flags cleared in rawmode_unix.go. readTimeoutDs and
// readMinChars have no Windows console-mode equivalent; they're honored
// by the reader the integrator builds on top of this adapter instead.
func platformEnterRaw(fd, readTimeoutDs, readMinChars int) (any, error) {
	h := windows.Handle(fd)
	var saved uint32
	if err := windows.GetConsoleMode(h, &saved); err != nil {
		return nil, fmt.Errorf("get console mode: %w", err)
	}

	raw := saved &^ (windows.ENABLE_LINE_INPUT | windows.ENABLE_ECHO_INPUT | windows.ENABLE_PROCESSED_INPUT)
	raw |= windows.ENABLE_VIRTUAL_TERMINAL_INPUT
	if err := windows.SetConsoleMode(h, raw); err != nil {
		return nil, fmt.Errorf("set console mode: %w", err)
	}
	return saved, nil
}

// platformExitRaw restores a console mode previously captured by
// platformEnterRaw.
func platformExitRaw(fd int, saved any) error {
	mode, ok := saved.(uint32)
	if !ok {
		return nil
	}
	if err := windows.SetConsoleMode(windows.Handle(fd), mode); err != nil {
		return fmt.Errorf("restore console mode: %w", err)
	}
	return nil
}

// platformIsTTY reports whether fd refers to a console.
func platformIsTTY(fd int) bool {
	var mode uint32
	return windows.GetConsoleMode(windows.Handle(fd), &mode) == nil
}
