package vtengine

import "fmt"

func paramAt(params []int, i, def int) int {
	if i < 0 || i >= len(params) {
		return def
	}
	return params[i]
}

// n1 returns max(1, params[i]) — the "default 1, but an explicit 0 also
// means 1" rule used throughout the CSI table.
func n1(params []int, i int) int {
	v := paramAt(params, i, 0)
	if v < 1 {
		return 1
	}
	return v
}

func (c *Controller) applyCSI(cmd Command) {
	private := cmd.Intermediates == "?"
	p := cmd.Params
	cur := c.active.Cursor()

	switch cmd.FinalByte {
	case 'A': // CUU
		y := clamp(cur.Y-n1(p, 0), c.scrollTop, c.scrollBottom)
		c.setCursorXY(cur.X, y)
	case 'B': // CUD
		y := clamp(cur.Y+n1(p, 0), c.scrollTop, c.scrollBottom)
		c.setCursorXY(cur.X, y)
	case 'C': // CUF
		x := clamp(cur.X+n1(p, 0), 0, c.cols-1)
		c.setCursorXY(x, cur.Y)
	case 'D': // CUB
		x := clamp(cur.X-n1(p, 0), 0, c.cols-1)
		c.setCursorXY(x, cur.Y)
	case 'E': // CNL: CUD then x=0
		y := clamp(cur.Y+n1(p, 0), c.scrollTop, c.scrollBottom)
		c.setCursorXY(0, y)
	case 'F': // CPL: CUU then x=0
		y := clamp(cur.Y-n1(p, 0), c.scrollTop, c.scrollBottom)
		c.setCursorXY(0, y)
	case 'G': // CHA
		x := clamp(n1(p, 0)-1, 0, c.cols-1)
		c.setCursorXY(x, cur.Y)
	case 'H', 'f': // CUP
		y := clamp(n1(p, 0)-1, 0, c.rows-1)
		x := clamp(n1(p, 1)-1, 0, c.cols-1)
		c.setCursorXY(x, y)
	case 'd': // VPA
		y := clamp(n1(p, 0)-1, 0, c.rows-1)
		c.setCursorXY(cur.X, y)
	case 'J': // ED
		c.eraseInDisplay(paramAt(p, 0, 0), cur.X, cur.Y)
	case 'K': // EL
		c.eraseInLine(paramAt(p, 0, 0), cur.X, cur.Y)
	case 'S': // SU
		c.active.ScrollUp(n1(p, 0))
	case 'T': // SD
		c.active.ScrollDown(n1(p, 0))
	case 'L': // IL
		c.active.InsertRows(cur.Y, n1(p, 0))
	case 'M': // DL
		c.active.DeleteRows(cur.Y, n1(p, 0))
	case '@': // ICH
		c.active.InsertChars(cur.X, cur.Y, n1(p, 0))
	case 'P': // DCH
		c.active.DeleteChars(cur.X, cur.Y, n1(p, 0))
	case 'X': // ECH
		c.active.EraseChars(cur.X, cur.Y, n1(p, 0))
	case 'm': // SGR
		c.applySGR(p)
	case 'h': // SM
		c.applyModeChange(p, private, true)
	case 'l': // RM
		c.applyModeChange(p, private, false)
	case 's': // SCP
		saved := cur
		c.savedCursor = &saved
	case 'u': // RCP
		if c.savedCursor != nil {
			c.active.SetCursor(*c.savedCursor)
		}
	case 'r': // DECSTBM
		top := clamp(n1(p, 0)-1, 0, c.rows-1)
		bottom := paramAt(p, 1, c.rows)
		if bottom <= 0 {
			bottom = c.rows
		}
		bottom = clamp(bottom-1, 0, c.rows-1)
		if top > bottom {
			top, bottom = bottom, top
		}
		c.scrollTop, c.scrollBottom = top, bottom
	case 'n': // DSR / CPR
		c.applyDeviceStatus(paramAt(p, 0, 0), cur)
	default:
		// Unknown final bytes are silently ignored.
	}
}

func (c *Controller) setCursorXY(x, y int) {
	cur := c.active.Cursor()
	cur.X, cur.Y = x, y
	c.active.SetCursor(cur)
}

func (c *Controller) eraseInDisplay(mode, x, y int) {
	switch mode {
	case 0:
		c.active.ClearFromCursor(x, y)
	case 1:
		c.active.ClearToCursor(x, y)
	case 2, 3:
		c.active.Clear()
	}
}

func (c *Controller) eraseInLine(mode, x, y int) {
	switch mode {
	case 0:
		c.active.ClearRowFrom(y, x)
	case 1:
		c.active.ClearRowTo(y, x)
	case 2:
		c.active.ClearRow(y)
	}
}

// applyDeviceStatus answers CSI 5n (device status OK) and CSI 6n (cursor
// position report), writing the standard replies to the response sink.
func (c *Controller) applyDeviceStatus(code int, cur Cursor) {
	switch code {
	case 5:
		fmt.Fprint(c.response, "\x1b[0n")
	case 6:
		fmt.Fprintf(c.response, "\x1b[%d;%dR", cur.Y+1, cur.X+1)
	}
}

// --- Mode set/reset ---

func (c *Controller) applyModeChange(params []int, private, set bool) {
	for _, p := range params {
		if private {
			c.applyDECMode(p, set)
		} else {
			c.applyANSIMode(p, set)
		}
	}
}

func (c *Controller) applyANSIMode(code int, set bool) {
	switch code {
	case 4:
		c.modes.Insert = set
	case 20:
		c.modes.Newline = set
	}
}

func (c *Controller) applyDECMode(code int, set bool) {
	switch code {
	case 1:
		c.modes.CursorKeys = set
	case 25:
		cur := c.active.Cursor()
		cur.Visible = set
		c.active.SetCursor(cur)
	case 1049:
		if set {
			c.enterAltScreen()
		} else {
			c.leaveAltScreen()
		}
	case 2004:
		c.modes.BracketedPaste = set
	}
}

// --- SGR (Select Graphic Rendition) ---

func (c *Controller) applySGR(params []int) {
	if len(params) == 0 {
		c.currentStyle = NewCell()
		return
	}

	i := 0
	for i < len(params) {
		code := params[i]
		switch {
		case code == 0:
			c.currentStyle = NewCell()
		case code == 1:
			c.currentStyle.Bold = true
		case code == 22:
			c.currentStyle.Bold = false
		case code == 3:
			c.currentStyle.Italic = true
		case code == 23:
			c.currentStyle.Italic = false
		case code == 4:
			c.currentStyle.Underline = true
		case code == 24:
			c.currentStyle.Underline = false
		case code == 39:
			c.currentStyle.Fg = nil
		case code == 49:
			c.currentStyle.Bg = nil
		case code >= 30 && code <= 37, code >= 90 && code <= 97:
			if col, ok := FgFromSGR(code); ok {
				c.currentStyle.Fg = &col
			}
		case code >= 40 && code <= 47, code >= 100 && code <= 107:
			if col, ok := BgFromSGR(code); ok {
				c.currentStyle.Bg = &col
			}
		case code == 38 || code == 48:
			consumed := c.applyExtendedColor(params, i, code == 38)
			i += consumed
		default:
			// Unknown SGR codes are ignored.
		}
		i++
	}
}

// applyExtendedColor handles the 38/48 "set fg/bg" extended color forms
// and returns how many *additional* params (beyond the 38/48 code itself)
// it consumed. An unrecognized type byte after 38/48 consumes exactly one
// parameter and continues, even though some emulators consume more.
func (c *Controller) applyExtendedColor(params []int, i int, fg bool) int {
	if i+1 >= len(params) {
		return 0
	}
	switch params[i+1] {
	case 5:
		if i+2 >= len(params) {
			return 1
		}
		idx := params[i+2]
		if idx >= 0 && idx < 256 {
			col := Palette256[idx]
			c.setStyleColor(fg, &col)
		}
		return 2
	case 2:
		if i+4 >= len(params) {
			return 1
		}
		col := FromRGB(params[i+2], params[i+3], params[i+4])
		c.setStyleColor(fg, &col)
		return 4
	default:
		return 1
	}
}

func (c *Controller) setStyleColor(fg bool, col *Color) {
	if fg {
		c.currentStyle.Fg = col
	} else {
		c.currentStyle.Bg = col
	}
}
