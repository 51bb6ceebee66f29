//go:build unix

package termcore

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// platformEnterRaw saves the current termios and installs raw-mode flags,
// mirroring stty raw semantics: no echo, no canonicalization, no signal
// generation from the line discipline, 8-bit clean input.
func platformEnterRaw(fd, readTimeoutDs, readMinChars int) (any, error) {
	orig, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return nil, fmt.Errorf("get termios: %w", err)
	}
	saved := *orig

	raw := *orig
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Cflag |= unix.CS8
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
	raw.Cc[unix.VMIN] = uint8(readMinChars)
	raw.Cc[unix.VTIME] = uint8(readTimeoutDs)

	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &raw); err != nil {
		return nil, fmt.Errorf("set termios: %w", err)
	}
	return saved, nil
}

// platformExitRaw restores a termios previously captured by
// platformEnterRaw. Only calls an ioctl - async-signal-safe.
func platformExitRaw(fd int, saved any) error {
	t, ok := saved.(unix.Termios)
	if !ok {
		return nil
	}
	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &t); err != nil {
		return fmt.Errorf("restore termios: %w", err)
	}
	return nil
}

// platformIsTTY reports whether fd refers to a terminal device.
func platformIsTTY(fd int) bool {
	_, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	return err == nil
}
