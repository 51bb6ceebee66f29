package termcore

import (
	"bytes"
	"testing"
	"time"
)

// fakeEvents is an InputSource that yields a fixed queue of events, then
// nothing.
type fakeEvents struct {
	events []Event
}

func (f *fakeEvents) Poll() (Event, bool) {
	if len(f.events) == 0 {
		return Event{}, false
	}
	e := f.events[0]
	f.events = f.events[1:]
	return e, true
}

func newLoopWithCapturedOutput(t *testing.T, cols, rows int) (*Loop, *Terminal, *bytes.Buffer) {
	t.Helper()
	term := newTestTerminal(t, cols, rows)
	term.SetDebugOutput(true)
	var out bytes.Buffer
	term.stdout = &out
	loop := NewLoop(term, &fakeEvents{})
	return loop, term, &out
}

func TestLoopSetTargetFPSRange(t *testing.T) {
	loop, _, _ := newLoopWithCapturedOutput(t, 80, 24)
	if err := loop.SetTargetFPS(0); err != ErrInvalidInput {
		t.Errorf("expected ErrInvalidInput for 0 fps, got %v", err)
	}
	if err := loop.SetTargetFPS(241); err != ErrInvalidInput {
		t.Errorf("expected ErrInvalidInput for 241 fps, got %v", err)
	}
	if err := loop.SetTargetFPS(60); err != nil {
		t.Errorf("expected 60 fps to be accepted, got %v", err)
	}
}

func TestLoopCtrlCStopsRunning(t *testing.T) {
	loop, _, _ := newLoopWithCapturedOutput(t, 80, 24)
	s := NewScreen(80, 24)
	loop.SetScreen(s)
	loop.input = &fakeEvents{events: []Event{
		{Kind: EventKey, Key: KeyEvent{Char: 'c', Mod: ModCtrl}},
	}}
	loop.running.Store(true)
	if err := loop.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if loop.Running() {
		t.Error("expected Ctrl-C to stop the loop")
	}
}

func TestLoopResizeEventZeroDimensionIsError(t *testing.T) {
	loop, _, _ := newLoopWithCapturedOutput(t, 80, 24)
	loop.SetScreen(NewScreen(80, 24))
	loop.input = &fakeEvents{events: []Event{
		{Kind: EventResize, Resize: Size{Rows: 0, Cols: 10}},
	}}
	if err := loop.Tick(); err != ErrInvalidDimensions {
		t.Errorf("expected ErrInvalidDimensions, got %v", err)
	}
}

func TestLoopResizeForcesRepaint(t *testing.T) {
	loop, _, _ := newLoopWithCapturedOutput(t, 80, 24)
	s := NewScreen(80, 24)
	loop.SetScreen(s)

	s.SetCell(0, 0, NewCell('A', DefaultStyle()))
	if err := loop.render(); err != nil {
		t.Fatalf("initial render: %v", err)
	}
	if diff := s.Buffer().GetDiff(); len(diff) != 0 {
		t.Fatalf("expected clean diff after initial render, got %+v", diff)
	}

	loop.input = &fakeEvents{events: []Event{
		{Kind: EventResize, Resize: Size{Rows: 30, Cols: 100}},
	}}
	// Mark a render as just done so this Tick only dispatches the resize
	// and the forced repaint diff is still pending afterwards.
	loop.lastRenderNs = time.Now().UnixNano()
	if err := loop.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if diff := s.Buffer().GetDiff(); len(diff) == 0 {
		t.Error("expected a forced full repaint diff after resize")
	}
}

func TestLoopMouseEventFallsThrough(t *testing.T) {
	loop, _, _ := newLoopWithCapturedOutput(t, 80, 24)
	loop.SetScreen(NewScreen(80, 24))

	var got MouseEvent
	called := false
	loop.OnMouse(func(m MouseEvent) { got = m; called = true })

	loop.input = &fakeEvents{events: []Event{
		{Kind: EventMouse, Mouse: MouseEvent{X: 5, Y: 6, Button: 1, Pressed: true}},
	}}
	if err := loop.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if !called || got.X != 5 || got.Y != 6 {
		t.Errorf("expected mouse event passed through, got %+v called=%v", got, called)
	}
}

func TestLoopRenderBatching(t *testing.T) {
	loop, term, out := newLoopWithCapturedOutput(t, 80, 24)
	s := NewScreen(80, 24)
	loop.SetScreen(s)

	red := DefaultStyle().Foreground(Red)
	s.SetCell(0, 0, NewCell('A', red))
	s.SetCell(1, 0, NewCell('B', red))
	s.SetCell(5, 0, NewCell('C', red))

	if err := loop.render(); err != nil {
		t.Fatalf("render: %v", err)
	}

	want := "\x1b[1;1H\x1b[0m\x1b[31m\x1b[49mAB\x1b[1;6HC"
	got := out.String()
	if got != want {
		t.Errorf("render batching mismatch:\n got:  %q\n want: %q", got, want)
	}
	_ = term
}
