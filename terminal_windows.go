//go:build windows

package termcore

import (
	"time"

	"golang.org/x/sys/windows"
)

// platformGetSize reads the console screen buffer info; the visible
// window rect (not the scrollback buffer size) is what callers want.
func platformGetSize(fd int) (Size, error) {
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(windows.Handle(fd), &info); err != nil {
		return Size{}, err
	}
	cols := int(info.Window.Right-info.Window.Left) + 1
	rows := int(info.Window.Bottom-info.Window.Top) + 1
	return Size{Rows: rows, Cols: cols}, nil
}

// pollResizeMonitor polls the console size on an interval, since Windows
// has no SIGWINCH equivalent delivered to console applications.
type pollResizeMonitor struct {
	done chan struct{}
}

func newResizeMonitor(t *Terminal) (resizeMonitor, error) {
	m := &pollResizeMonitor{done: make(chan struct{})}
	go m.run(t)
	return m, nil
}

func (m *pollResizeMonitor) run(t *Terminal) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
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

func (m *pollResizeMonitor) stop() {
	close(m.done)
}
