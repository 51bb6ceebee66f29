package termcore

// Rect is an axis-aligned rectangle in terminal cells, origin top-left,
// zero-indexed. ANSI emit is 1-indexed; the translation happens only at
// the point of emission (ansi.go), never in geometry.
type Rect struct {
	X, Y          int
	Width, Height int
}

// NewRect builds a Rect from its four components.
func NewRect(x, y, width, height int) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Contains reports whether (x, y) is inside the rect when x, y are
// absolute terminal coordinates (the rect's own X, Y offset is honored).
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// ContainsLocal reports whether (x, y) is inside the rect when x, y are
// already relative offsets into the rect (as a viewport's own content
// coordinates are) - i.e. it ignores X, Y and only checks Width/Height.
func (r Rect) ContainsLocal(x, y int) bool {
	return x >= 0 && x < r.Width && y >= 0 && y < r.Height
}

// Clamp returns a copy of r translated and sized to fit entirely within
// bounds, shrinking Width/Height if necessary. A non-positive Width or
// Height on the input collapses to a zero-area rect at the clamped origin.
func (r Rect) Clamp(bounds Rect) Rect {
	x, y := r.X, r.Y
	if x < bounds.X {
		x = bounds.X
	}
	if y < bounds.Y {
		y = bounds.Y
	}
	maxX := bounds.X + bounds.Width
	maxY := bounds.Y + bounds.Height
	if x > maxX {
		x = maxX
	}
	if y > maxY {
		y = maxY
	}
	w := r.Width
	if x+w > maxX {
		w = maxX - x
	}
	h := r.Height
	if y+h > maxY {
		h = maxY - y
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// Size is a terminal dimension pair. A Size is valid iff both Rows and
// Cols are strictly positive.
type Size struct {
	Rows int
	Cols int
}

// IsValid reports whether both dimensions are positive.
func (s Size) IsValid() bool { return s.Rows > 0 && s.Cols > 0 }

// Equal reports whether two sizes have the same dimensions.
func (s Size) Equal(other Size) bool { return s == other }

// SizeConstraints clamps a reported or requested Size to an operator- or
// integrator-chosen envelope. A zero value for any bound means
// "unconstrained" on that side.
type SizeConstraints struct {
	MinRows, MinCols int
	MaxRows, MaxCols int
}

// Apply clamps s to the constraints, leaving s untouched on any side
// whose bound is zero (unconstrained).
func (c SizeConstraints) Apply(s Size) Size {
	if c.MinRows > 0 && s.Rows < c.MinRows {
		s.Rows = c.MinRows
	}
	if c.MinCols > 0 && s.Cols < c.MinCols {
		s.Cols = c.MinCols
	}
	if c.MaxRows > 0 && s.Rows > c.MaxRows {
		s.Rows = c.MaxRows
	}
	if c.MaxCols > 0 && s.Cols > c.MaxCols {
		s.Cols = c.MaxCols
	}
	return s
}

// Validate reports whether s already satisfies the constraints (and is
// itself a valid size). Apply(s) always satisfies Validate, for any s
// with positive dimensions and a constraint set with Min <= Max per axis.
func (c SizeConstraints) Validate(s Size) bool {
	if !s.IsValid() {
		return false
	}
	if c.MinRows > 0 && s.Rows < c.MinRows {
		return false
	}
	if c.MinCols > 0 && s.Cols < c.MinCols {
		return false
	}
	if c.MaxRows > 0 && s.Rows > c.MaxRows {
		return false
	}
	if c.MaxCols > 0 && s.Cols > c.MaxCols {
		return false
	}
	return true
}

// ResizeEvent describes a terminal size transition. Fired only when
// Old != New after constraint application (the terminal layer never
// constructs one otherwise).
type ResizeEvent struct {
	Old         Size
	New         Size
	TimestampMs int64
}
