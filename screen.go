package termcore

// Screen owns one ScreenBuffer plus the bookkeeping needed to live inside
// a ScreenManager: an optional viewport rect and a non-owning back
// reference to the manager that placed it there. A Screen created and
// never attached to a manager behaves exactly like a bare ScreenBuffer
// sized to the full terminal.
type Screen struct {
	buffer   *ScreenBuffer
	viewport *Rect // nil when unmanaged
	manager  *ScreenManager
	id       string
}

// NewScreen allocates a Screen with its own width x height ScreenBuffer.
func NewScreen(width, height int) *Screen {
	return &Screen{buffer: NewScreenBuffer(width, height)}
}

// Buffer returns the screen's underlying double buffer.
func (s *Screen) Buffer() *ScreenBuffer { return s.buffer }

// Width returns the buffer's current width.
func (s *Screen) Width() int { return s.buffer.Width() }

// Height returns the buffer's current height.
func (s *Screen) Height() int { return s.buffer.Height() }

// GetCell reads a cell from the screen's back buffer.
func (s *Screen) GetCell(x, y int) Cell { return s.buffer.GetCell(x, y) }

// SetCell writes a cell to the screen's back buffer.
func (s *Screen) SetCell(x, y int, c Cell) { s.buffer.SetCell(x, y, c) }

// Clear clears the screen's back buffer.
func (s *Screen) Clear() { s.buffer.Clear() }

// Resize resizes the underlying buffer directly, bypassing any manager
// coordination. The manager's own resize routing (ScreenManager.HandleResize
// and every layout recompute) calls this rather than going through the screen's viewport.
func (s *Screen) Resize(width, height int, mode ResizeMode) {
	s.buffer.Resize(width, height, mode)
}

// ViewportBounds returns the screen's assigned viewport and whether it
// is currently managed.
func (s *Screen) ViewportBounds() (Rect, bool) {
	if s.viewport == nil {
		return Rect{}, false
	}
	return *s.viewport, true
}

// setParentManager installs the manager back-reference and viewport.
// Called only by ScreenManager.
func (s *Screen) setParentManager(m *ScreenManager, viewport Rect) {
	s.manager = m
	v := viewport
	s.viewport = &v
}

// clearParentManager removes the manager back-reference and viewport.
// Called only by ScreenManager, on removal or its own destruction.
func (s *Screen) clearParentManager() {
	s.manager = nil
	s.viewport = nil
}

// ParentManager returns the manager this screen is attached to, or nil.
func (s *Screen) ParentManager() *ScreenManager { return s.manager }

// Viewport returns a ViewportContext scoped to this screen's assigned
// viewport (clipping all writes to it) when managed, or to the whole
// buffer otherwise.
func (s *Screen) Viewport() *ViewportContext {
	if s.viewport != nil {
		// The manager sizes the buffer to the viewport, so the buffer holds
		// viewport-local coordinates; the viewport's terminal offset is
		// applied by the render loop, not here.
		return s.buffer.Viewport(NewRect(0, 0, s.viewport.Width, s.viewport.Height))
	}
	return &ViewportContext{buf: s.buffer, bounds: NewRect(0, 0, s.buffer.width, s.buffer.height), managed: false}
}
