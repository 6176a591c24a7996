package vtengine

// Color is a 24-bit RGB color with an alpha channel, resolved from an SGR
// color code, a 256-color palette index, or an OSC color spec.
type Color struct {
	R, G, B, A uint8
}

// NewColor constructs an opaque Color from 8-bit components.
func NewColor(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// FromRGB clamps r, g, b to [0,255] and returns the resulting opaque Color.
// SGR truecolor params arrive as already-parsed ints that may be out of
// range (e.g. CSI 38;2;999;0;0 m); this is where that gets clamped.
func FromRGB(r, g, b int) Color {
	return Color{R: clampByte(r), G: clampByte(g), B: clampByte(b), A: 255}
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Hyperlink associates a cell with a clickable link set by OSC 8.
type Hyperlink struct {
	ID  string
	URI string
}

// Cell is a fully-styled single character position. Fg and Bg are nil when
// absent ("use default"). Cells are value-typed and copy-on-write: every
// method below returns a new Cell rather than mutating in place through an
// alias.
type Cell struct {
	Ch        rune
	Fg        *Color
	Bg        *Color
	Bold      bool
	Italic    bool
	Underline bool
	Hyperlink *Hyperlink
}

// NewCell returns an empty cell: a space with no color or attribute set.
func NewCell() Cell {
	return Cell{Ch: ' '}
}

// IsEmpty reports whether the cell is a bare space with no styling.
func (c Cell) IsEmpty() bool {
	return c.Ch == ' ' && c.Fg == nil && c.Bg == nil && !c.Bold && !c.Italic && !c.Underline && c.Hyperlink == nil
}

// WithChar returns a copy of c with Ch replaced. Printing uses this to stamp
// the current style template with the character being written.
func (c Cell) WithChar(ch rune) Cell {
	c.Ch = ch
	return c
}

// Equal reports whether two cells have identical character, colors,
// attributes, and hyperlink.
func (c Cell) Equal(other Cell) bool {
	if c.Ch != other.Ch || c.Bold != other.Bold || c.Italic != other.Italic || c.Underline != other.Underline {
		return false
	}
	if !colorEqual(c.Fg, other.Fg) || !colorEqual(c.Bg, other.Bg) {
		return false
	}
	switch {
	case c.Hyperlink == nil && other.Hyperlink == nil:
		return true
	case c.Hyperlink == nil || other.Hyperlink == nil:
		return false
	default:
		return *c.Hyperlink == *other.Hyperlink
	}
}

func colorEqual(a, b *Color) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
