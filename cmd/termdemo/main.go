// Command termdemo drives a small split-layout demo: two screens side by
// side, each with a bold counter, wired through a zap logger and a
// multierr-combined teardown path.
package main

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/kungfusheep/termcore"
)

// zapLogger adapts a zap.SugaredLogger to termcore.Logger.
type zapLogger struct{ s *zap.SugaredLogger }

func (l zapLogger) Debugf(format string, args ...any) { l.s.Debugf(format, args...) }
func (l zapLogger) Warnf(format string, args ...any)  { l.s.Warnf(format, args...) }
func (l zapLogger) Errorf(format string, args ...any) { l.s.Errorf(format, args...) }

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "termdemo:", err)
		os.Exit(1)
	}
}

func run() error {
	zl, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer zl.Sync()
	logger := zapLogger{s: zl.Sugar()}

	term, err := termcore.NewTerminal()
	if err != nil {
		return err
	}
	term.SetLogger(logger)

	if err := term.EnterRawMode(); err != nil {
		return err
	}
	if err := term.EnterAltScreen(); err != nil {
		return err
	}
	if err := term.HideCursor(); err != nil {
		return err
	}
	defer func() {
		if cleanupErr := teardown(term); cleanupErr != nil {
			logger.Errorf("teardown: %v", cleanupErr)
		}
	}()

	if err := term.StartResizeMonitoring(); err != nil {
		return err
	}
	defer term.StopResizeMonitoring()

	size, err := term.GetSize()
	if err != nil {
		return err
	}

	manager := termcore.NewScreenManager()
	manager.SetLogger(logger)
	manager.SetTerminal(term)
	if err := manager.SetLayout(termcore.LayoutSplitHorizontal); err != nil {
		return err
	}
	if err := manager.SetSplitConfig(termcore.SplitConfig{Ratio: 0.5, Spacing: 1}); err != nil {
		return err
	}

	left := termcore.NewScreen(size.Cols, size.Rows)
	right := termcore.NewScreen(size.Cols, size.Rows)
	if err := manager.AddScreen(left, "left"); err != nil {
		return err
	}
	if err := manager.AddScreen(right, "right"); err != nil {
		return err
	}

	loop := termcore.NewLoop(term, pollNothing{})
	loop.SetManager(manager)
	if err := loop.SetTargetFPS(30); err != nil {
		return err
	}

	tick := 0
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		writeCounter(left, tick, termcore.Red)
		writeCounter(right, tick, termcore.Blue)
		if err := loop.Tick(); err != nil {
			return err
		}
		tick++
	}
	return nil
}

func writeCounter(s *termcore.Screen, tick int, color termcore.Color) {
	style := termcore.DefaultStyle().Foreground(color).WithAttr(termcore.AttrBold)
	label := fmt.Sprintf("tick %d ⏱", tick)
	s.Viewport().WriteText(0, 0, label, style)
}

// pollNothing is an InputSource that never yields an event; termdemo
// drives its own fixed-duration loop instead of reading real input.
type pollNothing struct{}

func (pollNothing) Poll() (termcore.Event, bool) { return termcore.Event{}, false }

// teardown runs every restoration step regardless of earlier failures,
// combining whatever went wrong via multierr so one failing step never
// hides another.
func teardown(t *termcore.Terminal) error {
	var errs error
	errs = multierr.Append(errs, t.ShowCursor())
	errs = multierr.Append(errs, t.ExitAltScreen())
	errs = multierr.Append(errs, t.ExitRawMode())
	return errs
}
