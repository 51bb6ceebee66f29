//go:build unix

package termcore

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// platformGetSize asks the kernel directly via TIOCGWINSZ.
func platformGetSize(fd int) (Size, error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return Size{}, err
	}
	return Size{Rows: int(ws.Row), Cols: int(ws.Col)}, nil
}

// sigwinchMonitor drives Terminal.handleResize off SIGWINCH.
type sigwinchMonitor struct {
	ch   chan os.Signal
	done chan struct{}
}

func newResizeMonitor(t *Terminal) (resizeMonitor, error) {
	m := &sigwinchMonitor{
		ch:   make(chan os.Signal, 1),
		done: make(chan struct{}),
	}
	signal.Notify(m.ch, syscall.SIGWINCH)
	go m.run(t)
	return m, nil
}

func (m *sigwinchMonitor) run(t *Terminal) {
	for {
		select {
		case <-m.ch:
			// Query the kernel directly rather than through RefreshSize,
			// which would store the new size in the cache first and leave
			// handleResize seeing no change.
			size, err := platformGetSize(t.stdoutFd)
			if err != nil {
				continue
			}
			t.handleResize(size, time.Now().UnixMilli())
		case <-m.done:
			return
		}
	}
}

func (m *sigwinchMonitor) stop() {
	signal.Stop(m.ch)
	close(m.done)
}
