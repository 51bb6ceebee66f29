package termcore

import "github.com/lucasb-eyer/go-colorful"

// ColorMode selects which ANSI color representation a Color carries.
type ColorMode uint8

const (
	ColorDefault ColorMode = iota // terminal default fg/bg
	Color16                      // one of the 16 basic colors (0-15)
	Color256                     // 256-color palette index
	ColorRGB                     // 24-bit true color
)

// Color is a tagged union over the four ANSI color representations.
// Equality is structural: two Colors are equal iff their fields match,
// which is sufficient since unused fields are always left zero by the
// constructors below.
type Color struct {
	Mode    ColorMode
	Index   uint8 // Color16 / Color256
	R, G, B uint8 // ColorRGB
}

// DefaultColor returns the terminal's default foreground/background color.
func DefaultColor() Color { return Color{Mode: ColorDefault} }

// BasicColor returns one of the 16 standard terminal colors (0-15).
func BasicColor(index uint8) Color { return Color{Mode: Color16, Index: index} }

// IndexedColor returns a color from the 256-entry palette.
func IndexedColor(index uint8) Color { return Color{Mode: Color256, Index: index} }

// RGBColor returns a 24-bit true color.
func RGBColor(r, g, b uint8) Color { return Color{Mode: ColorRGB, R: r, G: g, B: b} }

// Standard basic colors.
var (
	Black   = BasicColor(0)
	Red     = BasicColor(1)
	Green   = BasicColor(2)
	Yellow  = BasicColor(3)
	Blue    = BasicColor(4)
	Magenta = BasicColor(5)
	Cyan    = BasicColor(6)
	White   = BasicColor(7)

	BrightBlack   = BasicColor(8)
	BrightRed     = BasicColor(9)
	BrightGreen   = BasicColor(10)
	BrightYellow  = BasicColor(11)
	BrightBlue    = BasicColor(12)
	BrightMagenta = BasicColor(13)
	BrightCyan    = BasicColor(14)
	BrightWhite   = BasicColor(15)
)

// Equal reports whether two colors are the same variant with the same value.
func (c Color) Equal(other Color) bool { return c == other }

// ansi216 is the 6x6x6 color cube step table used by the 24-bit -> 256
// downgrade helper below.
var ansi216 = [6]uint8{0, 95, 135, 175, 215, 255}

// To256 returns the nearest 256-color palette index for an RGB color,
// using perceptual (CIE76 Lab) distance via go-colorful rather than a
// naive per-channel nearest-cube search. Callers that need to emit on a
// terminal without true-color support can downgrade before writing.
// Has no effect on (and is not used by) the Color16/Color256/ColorDefault
// variants, which already carry a terminal-native representation.
func (c Color) To256() uint8 {
	if c.Mode != ColorRGB {
		return c.Index
	}
	target := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}

	best := uint8(16)
	bestDist := 1e9
	for i := 16; i < 256; i++ {
		r, g, b := paletteRGB(uint8(i))
		cand := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
		d := target.DistanceLab(cand)
		if d < bestDist {
			bestDist = d
			best = uint8(i)
		}
	}
	return best
}

// paletteRGB returns the RGB value of a 256-color palette index: the
// standard 16-color block, the 6x6x6 cube (16-231), and the grayscale
// ramp (232-255).
func paletteRGB(i uint8) (r, g, b uint8) {
	switch {
	case i < 16:
		basic := [16][3]uint8{
			{0, 0, 0}, {205, 0, 0}, {0, 205, 0}, {205, 205, 0},
			{0, 0, 238}, {205, 0, 205}, {0, 205, 205}, {229, 229, 229},
			{127, 127, 127}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
			{92, 92, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
		}
		v := basic[i]
		return v[0], v[1], v[2]
	case i < 232:
		idx := int(i) - 16
		ri, gi, bi := idx/36, (idx/6)%6, idx%6
		return ansi216[ri], ansi216[gi], ansi216[bi]
	default:
		level := uint8(8 + (int(i)-232)*10)
		return level, level, level
	}
}

// Attributes is a bitset over the eight SGR text attributes. is_set is a
// single-instruction compare against zero on the whole set, not a per-bit
// scan, so it stays O(1) regardless of how many bits are on.
type Attributes uint8

const (
	AttrBold Attributes = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrReverse
	AttrHidden
	AttrStrikethrough
)

// Has reports whether every bit in attr is set.
func (a Attributes) Has(attr Attributes) bool { return a&attr == attr }

// IsSet reports whether any attribute bit is set.
func (a Attributes) IsSet() bool { return a != 0 }

// With returns a copy of a with attr added.
func (a Attributes) With(attr Attributes) Attributes { return a | attr }

// Without returns a copy of a with attr removed.
func (a Attributes) Without(attr Attributes) Attributes { return a &^ attr }

// Style is the full visual treatment of a cell: foreground, background,
// and attribute bitset. Equality is a plain struct compare, which is
// byte-identical on Attributes and structural on the two Colors.
type Style struct {
	FG    Color
	BG    Color
	Attrs Attributes
}

// DefaultStyle returns the zero-value style: default colors, no attributes.
func DefaultStyle() Style { return Style{FG: DefaultColor(), BG: DefaultColor()} }

// Equal reports whether two styles are identical.
func (s Style) Equal(other Style) bool { return s == other }

// Foreground returns a copy of s with the foreground color set.
func (s Style) Foreground(c Color) Style { s.FG = c; return s }

// Background returns a copy of s with the background color set.
func (s Style) Background(c Color) Style { s.BG = c; return s }

// WithAttr returns a copy of s with attr added to the attribute set.
func (s Style) WithAttr(attr Attributes) Style { s.Attrs = s.Attrs.With(attr); return s }

// Cell is the smallest addressable unit of the display: one Unicode
// scalar plus its style. A cell holding a space with DefaultStyle is the
// "empty" cell and the buffer's reset fill value.
type Cell struct {
	Char  rune
	Style Style
}

// EmptyCell returns the canonical blank cell: a space in the default style.
func EmptyCell() Cell { return Cell{Char: ' ', Style: DefaultStyle()} }

// NewCell builds a cell from a rune and a style.
func NewCell(r rune, style Style) Cell { return Cell{Char: r, Style: style} }

// Equal reports whether two cells have the same rune and style.
func (c Cell) Equal(other Cell) bool { return c == other }
