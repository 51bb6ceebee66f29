//go:build windows

package termcore

import (
	"os"
	"os/signal"
)

// installFatalSignalHandler arranges for cleanup to run once on the
// interrupt signal Go's runtime recognizes on Windows (os.Interrupt).
// There is no SIGWINCH-equivalent fatal signal to also watch here; the
// resize watcher itself is a polling goroutine (terminal_windows.go).
func installFatalSignalHandler(cleanup func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)
	go func() {
		<-ch
		cleanup()
		os.Exit(1)
	}()
}
