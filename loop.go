package termcore

import (
	"sync/atomic"
	"time"
)

// Loop drives the frame-paced render cycle: poll input, dispatch, render
// on the frame boundary, sleep to the next deadline. It owns no screen
// storage of its own - it renders whatever a single Screen or a
// ScreenManager's visible, z-ordered screens currently hold.
type Loop struct {
	terminal *Terminal
	input    InputSource

	screen  *Screen
	manager *ScreenManager

	running      atomic.Bool
	targetFPS    int
	lastRenderNs int64

	renderBuf []byte

	onMouse func(MouseEvent)
}

// NewLoop builds a Loop at a default 60 fps. Attach a render target with
// SetScreen or SetManager before calling Run.
func NewLoop(t *Terminal, input InputSource) *Loop {
	return &Loop{terminal: t, input: input, targetFPS: 60}
}

// SetScreen renders a single, unmanaged Screen filling the whole terminal.
func (l *Loop) SetScreen(s *Screen) { l.screen = s; l.manager = nil }

// SetManager renders every visible screen of a ScreenManager, back to
// front by z-order.
func (l *Loop) SetManager(m *ScreenManager) { l.manager = m; l.screen = nil }

// SetTargetFPS sets the render rate. Returns ErrInvalidInput outside
// [1, 240].
func (l *Loop) SetTargetFPS(fps int) error {
	if fps < 1 || fps > 240 {
		return ErrInvalidInput
	}
	l.targetFPS = fps
	return nil
}

// OnMouse registers the callback mouse events are passed through to;
// decoding and interpretation are the caller's concern.
func (l *Loop) OnMouse(cb func(MouseEvent)) { l.onMouse = cb }

// Stop requests the loop exit at the top of its next iteration.
func (l *Loop) Stop() { l.running.Store(false) }

// Running reports whether the loop is currently active.
func (l *Loop) Running() bool { return l.running.Load() }

func (l *Loop) frameDuration() time.Duration {
	return time.Second / time.Duration(l.targetFPS)
}

// Run drives ticks until Stop is called or Tick returns an error.
func (l *Loop) Run() error {
	l.running.Store(true)
	for l.running.Load() {
		if err := l.Tick(); err != nil {
			l.running.Store(false)
			return err
		}
	}
	return nil
}

// Tick runs exactly one iteration: poll-and-dispatch, conditional render,
// pacing sleep. Exposed directly so integrators can drive the loop from
// their own scheduler instead of calling Run.
func (l *Loop) Tick() error {
	now := time.Now()

	if evt, ok := l.input.Poll(); ok {
		if err := l.dispatch(evt); err != nil {
			return err
		}
	}

	nowNs := now.UnixNano()
	if nowNs-l.lastRenderNs >= int64(l.frameDuration()) {
		if err := l.render(); err != nil {
			return err
		}
		l.lastRenderNs = nowNs
	}

	elapsed := time.Since(now)
	if remaining := l.frameDuration() - elapsed; remaining > 0 {
		time.Sleep(remaining)
	}
	return nil
}

func (l *Loop) dispatch(evt Event) error {
	switch evt.Kind {
	case EventKey:
		if evt.Key.Mod&ModCtrl != 0 {
			switch evt.Key.Char {
			case 'c', 'd', 'C', 'D':
				l.running.Store(false)
			}
		}
	case EventResize:
		if evt.Resize.Cols <= 0 || evt.Resize.Rows <= 0 {
			return ErrInvalidDimensions
		}
		l.resizeTargets(evt.Resize)
		l.forceRedrawAll()
	case EventMouse:
		if l.onMouse != nil {
			l.onMouse(evt.Mouse)
		}
	}
	return nil
}

func (l *Loop) resizeTargets(size Size) {
	if l.manager != nil {
		l.manager.HandleResize(size.Cols, size.Rows, ResizePreserveContent)
		return
	}
	if l.screen != nil {
		l.screen.Resize(size.Cols, size.Rows, ResizePreserveContent)
	}
}

func (l *Loop) forceRedrawAll() {
	for _, t := range l.targets() {
		t.screen.Buffer().ForceRedraw()
	}
}

// renderTarget is one screen placed at an absolute terminal origin.
type renderTarget struct {
	screen  *Screen
	originX int
	originY int
}

// targets returns the current render targets in back-to-front z-order.
func (l *Loop) targets() []renderTarget {
	if l.manager != nil {
		managed := l.manager.Screens()
		ordered := append([]*ManagedScreen(nil), managed...)
		for i := 0; i < len(ordered); i++ {
			for j := i + 1; j < len(ordered); j++ {
				if ordered[j].ZIndex() < ordered[i].ZIndex() {
					ordered[i], ordered[j] = ordered[j], ordered[i]
				}
			}
		}
		var out []renderTarget
		for _, ms := range ordered {
			if !ms.Visible() {
				continue
			}
			vp := ms.Viewport()
			out = append(out, renderTarget{screen: ms.Screen(), originX: vp.X, originY: vp.Y})
		}
		return out
	}
	if l.screen != nil {
		return []renderTarget{{screen: l.screen}}
	}
	return nil
}

// render builds the batched ANSI byte stream for every dirty cell across
// all render targets, writes it in one call, then swaps every target's
// buffers regardless of whether anything was written.
func (l *Loop) render() error {
	l.renderBuf = l.renderBuf[:0]

	type dirty struct {
		x, y int
		cell Cell
	}
	var cells []dirty
	targets := l.targets()
	for _, t := range targets {
		for _, d := range t.screen.Buffer().GetDiff() {
			cells = append(cells, dirty{x: d.X + t.originX, y: d.Y + t.originY, cell: d.Cell})
		}
	}

	havePos := false
	var lastX, lastY int
	haveStyle := false
	var lastStyle Style

	for _, d := range cells {
		if havePos && d.x == lastX+1 && d.y == lastY {
			// cursor already one cell further from the last emit, no move needed
		} else {
			Ansi.MoveTo(sliceWriter{&l.renderBuf}, d.y, d.x)
		}
		if !haveStyle || !lastStyle.Equal(d.cell.Style) {
			Ansi.ResetSGR(sliceWriter{&l.renderBuf})
			Ansi.SetAttrs(sliceWriter{&l.renderBuf}, d.cell.Style.Attrs)
			Ansi.SetColor(sliceWriter{&l.renderBuf}, d.cell.Style.FG, true)
			Ansi.SetColor(sliceWriter{&l.renderBuf}, d.cell.Style.BG, false)
			lastStyle = d.cell.Style
			haveStyle = true
		}
		ch := d.cell.Char
		if ch == 0 {
			ch = ' '
		}
		l.renderBuf = append(l.renderBuf, string(ch)...)
		lastX, lastY = d.x, d.y
		havePos = true
	}

	if len(l.renderBuf) > 0 {
		if _, err := l.terminal.Write(l.renderBuf); err != nil {
			return err
		}
	}
	for _, t := range targets {
		t.screen.Buffer().SwapBuffers()
	}
	return nil
}
