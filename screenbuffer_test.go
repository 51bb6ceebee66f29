package termcore

import "testing"

func TestScreenBufferDiff(t *testing.T) {
	buf := NewScreenBuffer(80, 24)

	if diff := buf.GetDiff(); len(diff) != 0 {
		t.Fatalf("expected no diff on a fresh buffer, got %d entries", len(diff))
	}

	buf.SetCell(10, 5, NewCell('X', DefaultStyle()))
	diff := buf.GetDiff()
	if len(diff) != 1 || diff[0].X != 10 || diff[0].Y != 5 || diff[0].Cell.Char != 'X' {
		t.Fatalf("expected single diff at (10,5)='X', got %+v", diff)
	}

	buf.SwapBuffers()
	if diff := buf.GetDiff(); len(diff) != 0 {
		t.Fatalf("expected empty diff immediately after swap, got %+v", diff)
	}

	buf.SetCell(10, 5, NewCell('Y', DefaultStyle()))
	diff = buf.GetDiff()
	if len(diff) != 1 || diff[0].Cell.Char != 'Y' {
		t.Fatalf("expected single diff 'Y', got %+v", diff)
	}
}

func TestScreenBufferOutOfBounds(t *testing.T) {
	buf := NewScreenBuffer(10, 10)
	buf.SetCell(-1, -1, NewCell('X', DefaultStyle()))
	buf.SetCell(100, 100, NewCell('X', DefaultStyle()))
	if diff := buf.GetDiff(); len(diff) != 0 {
		t.Errorf("out-of-range writes must be ignored, got diff %+v", diff)
	}
	if got := buf.GetCell(-1, -1); !got.Equal(EmptyCell()) {
		t.Errorf("out-of-range read should return empty cell, got %+v", got)
	}
}

func TestScreenBufferResizePreserve(t *testing.T) {
	buf := NewScreenBuffer(80, 24)
	buf.SetCell(5, 5, NewCell('A', DefaultStyle()))
	buf.SwapBuffers()

	buf.Resize(40, 10, ResizePreserveContent)
	if got := buf.GetCell(5, 5); got.Char != 'A' {
		t.Errorf("expected 'A' preserved at (5,5), got %q", got.Char)
	}

	buf.Resize(80, 24, ResizePreserveContent)
	if got := buf.GetCell(5, 5); got.Char != 'A' {
		t.Errorf("expected 'A' preserved after growing back, got %q", got.Char)
	}
	if got := buf.GetCell(60, 20); !got.Equal(EmptyCell()) {
		t.Errorf("expected empty cell at (60,20) after regrow, got %+v", got)
	}

	// front was reset to empty by the resize, so the whole visible image
	// must be reported dirty on the next diff.
	diff := buf.GetDiff()
	if len(diff) == 0 {
		t.Error("expected a full repaint diff after a resize")
	}
}

func TestScreenBufferResizeClear(t *testing.T) {
	buf := NewScreenBuffer(10, 10)
	buf.SetCell(1, 1, NewCell('A', DefaultStyle()))
	buf.Resize(10, 10, ResizeClear)
	if got := buf.GetCell(1, 1); !got.Equal(EmptyCell()) {
		t.Errorf("expected ResizeClear to discard content, got %+v", got)
	}
}

func TestViewportContext(t *testing.T) {
	buf := NewScreenBuffer(80, 24)
	vp := buf.Viewport(NewRect(10, 10, 20, 5))

	vp.SetCell(0, 0, NewCell('Z', DefaultStyle()))
	if got := buf.GetCell(10, 10); got.Char != 'Z' {
		t.Errorf("expected viewport write to translate to (10,10), got %+v", got)
	}

	vp.SetCell(100, 100, NewCell('Q', DefaultStyle()))
	if got := buf.GetCell(110, 110); got.Equal(NewCell('Q', DefaultStyle())) {
		t.Error("viewport write out of its own bounds must not reach the underlying buffer")
	}

	w, h := vp.EffectiveSize()
	if w != 20 || h != 5 {
		t.Errorf("expected effective size 20x5, got %dx%d", w, h)
	}
}

func TestScreenBufferWriteTextWideRunes(t *testing.T) {
	buf := NewScreenBuffer(10, 1)
	buf.WriteText(0, 0, "a中b", DefaultStyle(), 10)

	if got := buf.GetCell(0, 0); got.Char != 'a' {
		t.Errorf("expected 'a' at column 0, got %q", got.Char)
	}
	if got := buf.GetCell(1, 0); got.Char != '中' {
		t.Errorf("expected the wide rune at column 1, got %q", got.Char)
	}
	if got := buf.GetCell(2, 0); got.Char != 0 {
		t.Errorf("expected a placeholder cell at column 2, got %q", got.Char)
	}
	if got := buf.GetCell(3, 0); got.Char != 'b' {
		t.Errorf("expected 'b' at column 3 after the double-width rune, got %q", got.Char)
	}
}

func TestScreenBufferWriteTextStopsAtMaxWidth(t *testing.T) {
	buf := NewScreenBuffer(10, 1)
	buf.WriteText(0, 0, "hello world", DefaultStyle(), 5)

	if got := buf.GetCell(4, 0); got.Char != 'o' {
		t.Errorf("expected the 5th column to hold 'o', got %q", got.Char)
	}
	if got := buf.GetCell(5, 0); !got.Equal(EmptyCell()) {
		t.Errorf("expected writing to stop at maxWidth, got %+v at column 5", got)
	}
}

func TestViewportWriteTextClampsToBounds(t *testing.T) {
	buf := NewScreenBuffer(20, 5)
	vp := buf.Viewport(NewRect(5, 2, 6, 1))
	vp.WriteText(0, 0, "abcdefgh", DefaultStyle())

	if got := buf.GetCell(5, 2); got.Char != 'a' {
		t.Errorf("expected 'a' at the viewport origin, got %+v", got)
	}
	if got := buf.GetCell(11, 2); !got.Equal(EmptyCell()) {
		t.Errorf("expected the write to stop at the viewport's own width, got %+v", got)
	}
}

func TestUnmanagedViewportEffectiveSize(t *testing.T) {
	buf := NewScreenBuffer(80, 24)
	vp := &ViewportContext{buf: buf, bounds: NewRect(0, 0, buf.width, buf.height), managed: false}
	w, h := vp.EffectiveSize()
	if w != 80 || h != 24 {
		t.Errorf("expected unmanaged viewport to report full buffer size, got %dx%d", w, h)
	}
}
