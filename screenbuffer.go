package termcore

import "github.com/mattn/go-runewidth"

// ResizeMode selects how ScreenBuffer.Resize treats existing content.
type ResizeMode uint8

const (
	// ResizeClear discards all content; every cell starts empty.
	ResizeClear ResizeMode = iota
	// ResizePreserveContent copies over the overlap of the old and new
	// extents.
	ResizePreserveContent
)

// DiffCell is one entry of ScreenBuffer.GetDiff: a coordinate whose back
// cell differs from its front cell.
type DiffCell struct {
	X, Y int
	Cell Cell
}

// ScreenBuffer is a pair of equally-sized cell grids - the back buffer
// composed by callers, and the front buffer representing what is
// currently on the real terminal. Every public mutator targets the back
// buffer only; GetDiff reads the pairwise difference without mutating
// either side; SwapBuffers promotes the just-rendered back buffer to
// front.
type ScreenBuffer struct {
	front  *cellGrid
	back   *cellGrid
	width  int
	height int
}

// NewScreenBuffer allocates a ScreenBuffer of the given dimensions, both
// sides initialized to empty cells.
func NewScreenBuffer(width, height int) *ScreenBuffer {
	return &ScreenBuffer{
		front:  newCellGrid(width, height),
		back:   newCellGrid(width, height),
		width:  width,
		height: height,
	}
}

// Width returns the buffer width.
func (s *ScreenBuffer) Width() int { return s.width }

// Height returns the buffer height.
func (s *ScreenBuffer) Height() int { return s.height }

// GetCell returns the back-buffer cell at (x, y), or the empty cell if
// out of bounds - reads never observe the front buffer directly; front
// is an internal rendering artifact, not part of the public read surface.
func (s *ScreenBuffer) GetCell(x, y int) Cell { return s.back.get(x, y) }

// SetCell writes c into the back buffer at (x, y). Out-of-range writes
// are silently ignored.
func (s *ScreenBuffer) SetCell(x, y int, c Cell) { s.back.set(x, y, c) }

// Clear resets the back buffer to empty cells. The front buffer, and so
// the next diff, is untouched.
func (s *ScreenBuffer) Clear() { s.back.fill(EmptyCell()) }

// WriteText writes a string left to right starting at (x, y), advancing
// by each rune's display width rather than one column per rune. A
// double-width rune occupies two cells: the rune itself followed by a
// placeholder cell with Char 0 in the same style, which the render loop
// emits as a space. Writing stops, without
// wrapping, at maxWidth columns or the buffer's own right edge.
func (s *ScreenBuffer) WriteText(x, y int, text string, style Style, maxWidth int) {
	written := 0
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			rw = 1
		}
		if written+rw > maxWidth {
			return
		}
		s.SetCell(x, y, NewCell(r, style))
		if rw == 2 {
			s.SetCell(x+1, y, Cell{Style: style})
		}
		x += rw
		written += rw
	}
}

// Resize changes the buffer's dimensions. Under ResizePreserveContent,
// the back buffer keeps content within the overlap of the old and new
// extents (cells beyond the old extent are empty; cells beyond the new
// extent are discarded) and the front buffer is reset to empty so the
// next render fully repaints. Under ResizeClear both buffers are reset.
func (s *ScreenBuffer) Resize(width, height int, mode ResizeMode) {
	switch mode {
	case ResizePreserveContent:
		s.back.resizePreserve(width, height)
		s.front.resizeClear(width, height)
	default:
		s.back.resizeClear(width, height)
		s.front.resizeClear(width, height)
	}
	s.width = width
	s.height = height
}

// GetDiff returns every (x, y) where the back cell differs from the
// front cell, in row-major order. It does not mutate either buffer; the
// set is empty immediately after SwapBuffers given no intervening
// writes.
func (s *ScreenBuffer) GetDiff() []DiffCell {
	var diff []DiffCell
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			idx := y*s.width + x
			front := s.front.cells[idx]
			back := s.back.cells[idx]
			if front != back {
				diff = append(diff, DiffCell{X: x, Y: y, Cell: back})
			}
		}
	}
	return diff
}

// SwapBuffers promotes the back buffer to front, so the image just
// rendered becomes the baseline for the next diff. The new back buffer is
// refreshed from it, so composition continues from the rendered image and
// GetDiff is empty until the next write.
func (s *ScreenBuffer) SwapBuffers() {
	s.front, s.back = s.back, s.front
	copy(s.back.cells, s.front.cells)
}

// ForceRedraw clears the front buffer to empty cells so that every back
// cell differs from it, making the next GetDiff emit the full visible
// content. Used to recover from an external repaint of the real
// terminal (e.g. after a resize clears the screen).
func (s *ScreenBuffer) ForceRedraw() {
	s.front.fill(EmptyCell())
}

// ViewportContext is a coordinate-clamped view onto a ScreenBuffer,
// translating viewport-local (vx, vy) writes into the underlying
// buffer's absolute coordinates.
type ViewportContext struct {
	buf     *ScreenBuffer
	bounds  Rect
	managed bool
}

// Viewport returns a ViewportContext scoped to rect within the buffer.
func (s *ScreenBuffer) Viewport(rect Rect) *ViewportContext {
	return &ViewportContext{buf: s, bounds: rect, managed: true}
}

// SetCell writes c at viewport-local coordinates (vx, vy), clamped to
// the viewport's own bounds before translation to buffer coordinates.
func (v *ViewportContext) SetCell(vx, vy int, c Cell) {
	if !v.bounds.ContainsLocal(vx, vy) {
		return
	}
	v.buf.SetCell(v.bounds.X+vx, v.bounds.Y+vy, c)
}

// GetCell reads the cell at viewport-local coordinates (vx, vy).
func (v *ViewportContext) GetCell(vx, vy int) Cell {
	if !v.bounds.ContainsLocal(vx, vy) {
		return EmptyCell()
	}
	return v.buf.GetCell(v.bounds.X+vx, v.bounds.Y+vy)
}

// WriteText writes text starting at viewport-local (vx, vy), clamped to
// the remaining width of the viewport's own bounds.
func (v *ViewportContext) WriteText(vx, vy int, text string, style Style) {
	if !v.bounds.ContainsLocal(vx, vy) {
		return
	}
	maxWidth := v.bounds.Width - vx
	if maxWidth <= 0 {
		return
	}
	v.buf.WriteText(v.bounds.X+vx, v.bounds.Y+vy, text, style, maxWidth)
}

// EffectiveSize returns the viewport's own width x height when managed,
// or the underlying buffer's full size otherwise.
func (v *ViewportContext) EffectiveSize() (width, height int) {
	if v.managed {
		return v.bounds.Width, v.bounds.Height
	}
	return v.buf.width, v.buf.height
}
