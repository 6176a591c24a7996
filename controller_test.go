package vtengine

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(t *testing.T, rows, cols int, opts ...Option) *Controller {
	t.Helper()
	ctl, err := New(rows, cols, opts...)
	require.NoError(t, err)
	return ctl
}

func TestBasicPrintAndWrap(t *testing.T) {
	ctl := newTestController(t, 3, 5)
	ctl.WriteString("AAAAABBBBBCCCCC")

	row0, _ := ctl.GetRow(0)
	row1, _ := ctl.GetRow(1)
	row2, _ := ctl.GetRow(2)

	assert.Equal(t, "BBBBB", cellsToString(row0))
	assert.Equal(t, "CCCCC", cellsToString(row1))
	assert.Equal(t, "     ", cellsToString(row2))
	assert.Equal(t, Cursor{X: 0, Y: 2, Visible: true}, ctl.Cursor())
}

func TestTabStops(t *testing.T) {
	ctl := newTestController(t, 24, 80)
	ctl.WriteString("A\tB")

	a, _ := ctl.GetCell(0, 0)
	b, _ := ctl.GetCell(8, 0)
	assert.Equal(t, 'A', a.Ch)
	assert.Equal(t, 'B', b.Ch)
	assert.Equal(t, 9, ctl.Cursor().X)
	assert.Equal(t, 0, ctl.Cursor().Y)
}

func TestSGRStandardColor(t *testing.T) {
	ctl := newTestController(t, 1, 10)
	ctl.WriteString("\x1b[31mR\x1b[0mN")

	r, _ := ctl.GetCell(0, 0)
	n, _ := ctl.GetCell(1, 0)

	require.NotNil(t, r.Fg)
	assert.Equal(t, NewColor(0xCD, 0x00, 0x00), *r.Fg)
	assert.Equal(t, 'R', r.Ch)
	assert.Nil(t, n.Fg)
	assert.Equal(t, 'N', n.Ch)
}

func TestSGRTrueColor(t *testing.T) {
	ctl := newTestController(t, 1, 10)
	ctl.WriteString("\x1b[38;2;255;0;0mX\x1b[0m")

	x, _ := ctl.GetCell(0, 0)
	require.NotNil(t, x.Fg)
	assert.Equal(t, FromRGB(255, 0, 0), *x.Fg)
}

func TestSGR256Palette(t *testing.T) {
	ctl := newTestController(t, 1, 10)
	ctl.WriteString("\x1b[38;5;196mX")

	x, _ := ctl.GetCell(0, 0)
	require.NotNil(t, x.Fg)
	assert.Equal(t, Palette256[196], *x.Fg)
}

func TestAltBufferRestore(t *testing.T) {
	ctl := newTestController(t, 1, 10)
	ctl.WriteString("Main\x1b[?1049hAlt\x1b[?1049l")

	cell, _ := ctl.GetCell(0, 0)
	assert.Equal(t, 'M', cell.Ch)
	assert.False(t, ctl.InAltScreen())
}

func TestAltBufferIsActiveWhileEntered(t *testing.T) {
	ctl := newTestController(t, 1, 10)
	ctl.WriteString("Main\x1b[?1049h")

	assert.True(t, ctl.InAltScreen())
	cell, _ := ctl.GetCell(0, 0)
	assert.True(t, cell.IsEmpty())
}

func TestEraseInDisplay(t *testing.T) {
	ctl := newTestController(t, 3, 3)
	ctl.WriteString("XXXXXXXXX") // the wrap after the 9th X scrolls once: rows 0-1 filled, row 2 blank

	ctl.WriteString("\x1b[2;2H") // CUP row 2, col 2 -> (1,1)
	ctl.WriteString("\x1b[J")

	expectX := []struct{ x, y int }{{0, 0}, {1, 0}, {2, 0}, {0, 1}}
	for _, p := range expectX {
		cell, _ := ctl.GetCell(p.x, p.y)
		assert.Equalf(t, 'X', cell.Ch, "(%d,%d)", p.x, p.y)
	}

	expectEmpty := []struct{ x, y int }{{1, 1}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}
	for _, p := range expectEmpty {
		cell, _ := ctl.GetCell(p.x, p.y)
		assert.Truef(t, cell.IsEmpty(), "(%d,%d)", p.x, p.y)
	}
}

func TestOSCTitle(t *testing.T) {
	ctl := newTestController(t, 1, 10)
	ctl.WriteString("\x1b]2;Hello\x07")

	assert.Equal(t, "Hello", ctl.Title())
	assert.Equal(t, "", ctl.IconName())
}

func TestSplitFeedAcrossWrites(t *testing.T) {
	ctl := newTestController(t, 1, 10)
	ctl.WriteString("\x1b")
	ctl.WriteString("[31mZ")

	cell, _ := ctl.GetCell(0, 0)
	assert.Equal(t, 'Z', cell.Ch)
	require.NotNil(t, cell.Fg)
	assert.Equal(t, NewColor(0xCD, 0x00, 0x00), *cell.Fg)
}

func TestCursorSaveRestore(t *testing.T) {
	ctl := newTestController(t, 5, 5)
	ctl.WriteString("\x1b[3;3H") // move to (2,2)
	ctl.WriteString("\x1b[s")
	before := ctl.Cursor()

	ctl.WriteString("\x1b[1;1H")
	ctl.WriteString("\x1b[u")

	assert.Equal(t, before.X, ctl.Cursor().X)
	assert.Equal(t, before.Y, ctl.Cursor().Y)
}

func TestScrollRegionDECSTBM(t *testing.T) {
	ctl := newTestController(t, 5, 5)
	ctl.WriteString("\x1b[2;4r")

	assert.Equal(t, 1, ctl.scrollTop)
	assert.Equal(t, 3, ctl.scrollBottom)
}

func TestInsertModeShiftsCellsRight(t *testing.T) {
	ctl := newTestController(t, 2, 5) // second row takes the wrap after "ABCDE"
	ctl.WriteString("ABCDE")
	ctl.WriteString("\x1b[1;1H")
	ctl.WriteString("\x1b[4h") // IRM
	ctl.WriteString("X")

	row, _ := ctl.GetRow(0)
	assert.Equal(t, "XABCD", cellsToString(row))
}

func TestDeviceStatusReportCursorPosition(t *testing.T) {
	var buf bytes.Buffer
	ctl := newTestController(t, 5, 5, WithResponseWriter(&buf))
	ctl.WriteString("\x1b[3;4H\x1b[6n")

	assert.Equal(t, "\x1b[3;4R", buf.String())
}

func TestOSC8Hyperlink(t *testing.T) {
	ctl := newTestController(t, 1, 10)
	ctl.WriteString("\x1b]8;id=1;https://example.com\x07link\x1b]8;;\x07plain")

	l, _ := ctl.GetCell(0, 0)
	require.NotNil(t, l.Hyperlink)
	assert.Equal(t, "https://example.com", l.Hyperlink.URI)

	p, _ := ctl.GetCell(4, 0)
	assert.Nil(t, p.Hyperlink)
}

func TestResetClearsEverything(t *testing.T) {
	ctl := newTestController(t, 2, 2)
	ctl.WriteString("\x1b[31mAB")
	ctl.Reset()

	cell, _ := ctl.GetCell(0, 0)
	assert.True(t, cell.IsEmpty())
	assert.Equal(t, Cursor{X: 0, Y: 0, Visible: true}, ctl.Cursor())
}

func TestResizePreservesContent(t *testing.T) {
	ctl := newTestController(t, 2, 2)
	ctl.WriteString("AB")
	ctl.Resize(3, 3)

	assert.Equal(t, 3, ctl.Rows())
	assert.Equal(t, 3, ctl.Cols())
	cell, _ := ctl.GetCell(0, 0)
	assert.Equal(t, 'A', cell.Ch)
}
