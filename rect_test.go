package termcore

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(5, 5, 10, 10)
	tests := []struct {
		x, y   int
		expect bool
	}{
		{5, 5, true},
		{14, 14, true},
		{15, 5, false},
		{5, 15, false},
		{4, 5, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.expect {
			t.Errorf("Contains(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.expect)
		}
	}
}

func TestRectContainsLocal(t *testing.T) {
	r := NewRect(5, 5, 10, 10)
	if !r.ContainsLocal(0, 0) {
		t.Error("expected (0,0) local to be inside")
	}
	if r.ContainsLocal(5, 5) {
		t.Error("did not expect (5,5) local to be inside a 10x10 rect")
	}
	if r.ContainsLocal(-1, 0) {
		t.Error("did not expect negative local coordinate to be inside")
	}
}

func TestRectClamp(t *testing.T) {
	bounds := NewRect(0, 0, 80, 24)

	t.Run("FitsInside", func(t *testing.T) {
		r := NewRect(10, 10, 20, 10)
		got := r.Clamp(bounds)
		if got != r {
			t.Errorf("expected unchanged rect, got %+v", got)
		}
	})

	t.Run("OverflowsRight", func(t *testing.T) {
		r := NewRect(70, 0, 20, 10)
		got := r.Clamp(bounds)
		if got.X+got.Width > bounds.Width {
			t.Errorf("clamped rect overflows bounds: %+v", got)
		}
	})

	t.Run("NegativeOrigin", func(t *testing.T) {
		r := NewRect(-5, -5, 10, 10)
		got := r.Clamp(bounds)
		if got.X < bounds.X || got.Y < bounds.Y {
			t.Errorf("clamped rect should not start before bounds origin: %+v", got)
		}
	})
}

func TestSizeIsValid(t *testing.T) {
	tests := []struct {
		s      Size
		expect bool
	}{
		{Size{Rows: 24, Cols: 80}, true},
		{Size{Rows: 0, Cols: 80}, false},
		{Size{Rows: 24, Cols: 0}, false},
		{Size{Rows: -1, Cols: 80}, false},
	}
	for _, tt := range tests {
		if got := tt.s.IsValid(); got != tt.expect {
			t.Errorf("IsValid(%+v) = %v, want %v", tt.s, got, tt.expect)
		}
	}
}

func TestSizeConstraintsApply(t *testing.T) {
	c := SizeConstraints{MinRows: 10, MinCols: 20, MaxRows: 100, MaxCols: 200}

	t.Run("ClampsLow", func(t *testing.T) {
		got := c.Apply(Size{Rows: 1, Cols: 1})
		if got.Rows != 10 || got.Cols != 20 {
			t.Errorf("expected clamp to min, got %+v", got)
		}
	})

	t.Run("ClampsHigh", func(t *testing.T) {
		got := c.Apply(Size{Rows: 1000, Cols: 1000})
		if got.Rows != 100 || got.Cols != 200 {
			t.Errorf("expected clamp to max, got %+v", got)
		}
	})

	t.Run("Unconstrained", func(t *testing.T) {
		var zero SizeConstraints
		got := zero.Apply(Size{Rows: 5, Cols: 5})
		if got.Rows != 5 || got.Cols != 5 {
			t.Errorf("expected unconstrained size unchanged, got %+v", got)
		}
	})
}

func TestSizeConstraintsValidate(t *testing.T) {
	c := SizeConstraints{MinRows: 10, MinCols: 20}
	if c.Validate(Size{Rows: 5, Cols: 30}) {
		t.Error("expected validation to fail below min rows")
	}
	if !c.Validate(c.Apply(Size{Rows: 5, Cols: 5})) {
		t.Error("Apply(s) must always satisfy Validate")
	}
}
