package vtengine

// Modes holds the terminal behavior flags the Controller tracks: cursor
// key encoding, bracketed paste, insert/replace, and newline translation.
// Mouse-reporting and keypad application mode are out of scope — they
// belong to the input/encoding layer, not the screen-state engine.
type Modes struct {
	CursorKeys     bool // DECCKM, CSI ?1
	BracketedPaste bool // CSI ?2004
	Insert         bool // IRM, CSI 4
	Newline        bool // LNM, CSI 20
}

// Controller owns a primary and an alternate ScreenBuffer, the current
// style template, saved cursor, scroll region, mode flags, title/icon
// strings, and palette overrides. It consumes the Parser's command stream
// and applies each command to the active buffer.
//
// Controller is single-threaded and synchronous: it carries no internal
// lock. Embedders that drive Write from multiple goroutines must supply
// their own mutual exclusion.
type Controller struct {
	rows, cols int

	main     *ScreenBuffer
	alt      *ScreenBuffer
	active   *ScreenBuffer
	usingAlt bool

	currentStyle Cell
	savedCursor  *Cursor

	scrollTop, scrollBottom int

	modes Modes

	title    string
	iconName string

	paletteOverride map[int]Color
	defaultFg       *Color
	defaultBg       *Color

	parser *Parser

	response  ResponseWriter
	clipboard ClipboardProvider
}

// Option configures a Controller at construction time.
type Option func(*Controller)

// WithResponseWriter routes device-status and cursor-position reports
// (CSI 5n / CSI 6n) to w instead of discarding them.
func WithResponseWriter(w ResponseWriter) Option {
	return func(c *Controller) { c.response = w }
}

// WithClipboard routes OSC 52 clipboard requests to p instead of a no-op.
func WithClipboard(p ClipboardProvider) Option {
	return func(c *Controller) { c.clipboard = p }
}

// New creates a Controller with the given dimensions. rows and cols must
// each be >= 1.
func New(rows, cols int, opts ...Option) (*Controller, error) {
	if rows < 1 || cols < 1 {
		return nil, &OutOfBoundsError{X: cols, Y: rows, Cols: cols, Rows: rows}
	}
	c := &Controller{
		rows:            rows,
		cols:            cols,
		main:            NewScreenBuffer(rows, cols),
		alt:             NewScreenBuffer(rows, cols),
		scrollTop:       0,
		scrollBottom:    rows - 1,
		currentStyle:    NewCell(),
		parser:          NewParser(),
		response:        NoopResponse{},
		clipboard:       NoopClipboard{},
		paletteOverride: make(map[int]Color),
	}
	c.active = c.main
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Write feeds input through the Parser and applies every resulting command
// to the active buffer, in order. It implements io.Writer so a Controller
// can sit directly at the end of a PTY-reading pipe.
func (c *Controller) Write(input []byte) (int, error) {
	for _, cmd := range c.parser.Feed(input) {
		c.apply(cmd)
	}
	return len(input), nil
}

// WriteString is a convenience wrapper around Write for literal sequences.
func (c *Controller) WriteString(s string) {
	c.Write([]byte(s))
}

func (c *Controller) apply(cmd Command) {
	switch cmd.Kind {
	case CmdPrint:
		c.applyPrint(cmd.Ch)
	case CmdControl:
		c.applyControl(cmd.Control)
	case CmdCSI:
		c.applyCSI(cmd)
	case CmdOSC:
		c.applyOSC(cmd)
	}
}

// Clear fully clears the screen and homes the cursor, without touching
// style, modes, or title — see Reset for the full-reset operation.
func (c *Controller) Clear() {
	c.active.Clear()
	c.active.SetCursor(Cursor{Visible: true})
}

// Reset performs a full reset: both buffers cleared, cursor at the origin,
// current style reset, parser reset, modes defaulted, title/icon cleared,
// scroll region restored to full height, and saved cursor dropped.
func (c *Controller) Reset() {
	c.main.Clear()
	c.alt.Clear()
	c.main.SetCursor(NewCursor())
	c.alt.SetCursor(NewCursor())
	c.usingAlt = false
	c.active = c.main
	c.currentStyle = NewCell()
	c.savedCursor = nil
	c.scrollTop = 0
	c.scrollBottom = c.rows - 1
	c.modes = Modes{}
	c.title = ""
	c.iconName = ""
	c.parser.Reset()
}

// Resize resizes both buffers, re-clamps the cursor, and resets the
// scrolling region to the new full height (scroll_top is reset to 0 only
// if it no longer fits).
func (c *Controller) Resize(rows, cols int) {
	if rows < 1 || cols < 1 {
		return
	}
	c.main.Resize(rows, cols)
	c.alt.Resize(rows, cols)
	c.rows, c.cols = rows, cols

	c.main.SetCursor(c.main.Cursor())
	c.alt.SetCursor(c.alt.Cursor())

	c.scrollBottom = rows - 1
	if c.scrollTop >= rows {
		c.scrollTop = 0
	}
}

// --- Control-character handling ---

func (c *Controller) applyControl(b byte) {
	cur := c.active.Cursor()
	switch b {
	case '\n': // LF
		y := cur.Y + 1
		x := cur.X
		if c.modes.Newline {
			x = 0
		}
		if y > c.scrollBottom {
			c.scrollUpRegion(1)
			y = c.scrollBottom
		}
		c.active.SetCursor(Cursor{X: x, Y: y, Visible: cur.Visible, Style: cur.Style})
	case '\r': // CR
		c.active.SetCursor(Cursor{X: 0, Y: cur.Y, Visible: cur.Visible, Style: cur.Style})
	case '\t': // HT
		next := ((cur.X / 8) + 1) * 8
		if next >= c.cols {
			c.applyControl('\n')
			return
		}
		c.active.SetCursor(Cursor{X: next, Y: cur.Y, Visible: cur.Visible, Style: cur.Style})
	case 0x08: // BS
		if cur.X > 0 {
			c.active.SetCursor(Cursor{X: cur.X - 1, Y: cur.Y, Visible: cur.Visible, Style: cur.Style})
		}
	default:
		// Other control characters are ignored.
	}
}

// scrollUpRegion is meant to scroll only rows [scroll_top, scroll_bottom],
// but currently delegates to the full-buffer ScrollUp like the source this
// engine is modeled on. It is unclear whether that was deliberate or an
// oversight in the original; preserved as-is rather than silently
// reinterpreted. TODO: make this region-aware using scroll_top/scroll_bottom.
func (c *Controller) scrollUpRegion(n int) {
	c.active.ScrollUp(n)
}

// --- Printing ---

func (c *Controller) applyPrint(ch rune) {
	cur := c.active.Cursor()

	if c.modes.Insert {
		c.active.InsertChars(cur.X, cur.Y, 1)
	}

	c.active.Set(cur.X, cur.Y, c.currentStyle.WithChar(ch))

	x := cur.X + 1
	y := cur.Y
	if x == c.cols {
		x = 0
		y++
		if y > c.scrollBottom {
			c.scrollUpRegion(1)
			y = c.scrollBottom
		}
	}
	c.active.SetCursor(Cursor{X: x, Y: y, Visible: cur.Visible, Style: cur.Style})
}

// --- Alternate screen (§4.4) ---

func (c *Controller) enterAltScreen() {
	if c.usingAlt {
		return
	}
	c.alt = NewScreenBuffer(c.rows, c.cols)
	c.usingAlt = true
	c.active = c.alt
}

func (c *Controller) leaveAltScreen() {
	if !c.usingAlt {
		return
	}
	c.usingAlt = false
	c.active = c.main
}
