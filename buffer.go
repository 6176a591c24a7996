package vtengine

// ScreenBuffer is a fixed-size rectangular grid of cells plus the cursor.
// It owns every mutation primitive used by the Controller: set/get cell,
// row fetch/replace, line/char insert/delete, region erase, vertical
// scroll, resize, and cursor clamping. The buffer never decides *when* to
// scroll or erase — that is the Controller's job; ScreenBuffer only
// performs the operation once asked.
type ScreenBuffer struct {
	rows, cols int
	cells      [][]Cell
	cursor     Cursor
}

// NewScreenBuffer creates a rows x cols buffer of empty cells with the
// cursor at the origin. rows and cols must each be >= 1.
func NewScreenBuffer(rows, cols int) *ScreenBuffer {
	b := &ScreenBuffer{
		rows:   rows,
		cols:   cols,
		cells:  make([][]Cell, rows),
		cursor: NewCursor(),
	}
	for i := range b.cells {
		b.cells[i] = newEmptyRow(cols)
	}
	return b
}

func newEmptyRow(cols int) []Cell {
	row := make([]Cell, cols)
	for i := range row {
		row[i] = NewCell()
	}
	return row
}

// Rows returns the buffer height in character rows.
func (b *ScreenBuffer) Rows() int { return b.rows }

// Cols returns the buffer width in character columns.
func (b *ScreenBuffer) Cols() int { return b.cols }

func (b *ScreenBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.cols && y >= 0 && y < b.rows
}

// Get returns the cell at (x,y).
func (b *ScreenBuffer) Get(x, y int) (Cell, error) {
	if !b.inBounds(x, y) {
		return Cell{}, &OutOfBoundsError{X: x, Y: y, Cols: b.cols, Rows: b.rows}
	}
	return b.cells[y][x], nil
}

// Set replaces the cell at (x,y).
func (b *ScreenBuffer) Set(x, y int, cell Cell) error {
	if !b.inBounds(x, y) {
		return &OutOfBoundsError{X: x, Y: y, Cols: b.cols, Rows: b.rows}
	}
	b.cells[y][x] = cell
	return nil
}

// GetRow returns a copy of row y's cells, left to right.
func (b *ScreenBuffer) GetRow(y int) ([]Cell, error) {
	if y < 0 || y >= b.rows {
		return nil, &OutOfBoundsError{Y: y, Rows: b.rows, Cols: b.cols}
	}
	row := make([]Cell, b.cols)
	copy(row, b.cells[y])
	return row, nil
}

// SetRow replaces row y wholesale. row must have exactly Cols() cells.
func (b *ScreenBuffer) SetRow(y int, row []Cell) error {
	if y < 0 || y >= b.rows {
		return &OutOfBoundsError{Y: y, Rows: b.rows, Cols: b.cols}
	}
	if len(row) != b.cols {
		return &LengthMismatchError{Got: len(row), Want: b.cols}
	}
	copy(b.cells[y], row)
	return nil
}

// Clear resets every cell in the buffer to empty.
func (b *ScreenBuffer) Clear() {
	for y := range b.cells {
		b.cells[y] = newEmptyRow(b.cols)
	}
}

// ClearRow resets every cell in row y to empty. Out-of-range y is a no-op;
// the Controller always clamps before calling down into the buffer, so this
// guard only matters for direct callers of the buffer API.
func (b *ScreenBuffer) ClearRow(y int) {
	if y < 0 || y >= b.rows {
		return
	}
	b.cells[y] = newEmptyRow(b.cols)
}

// ClearRowFrom empties row y from column x (inclusive) to the end of line.
func (b *ScreenBuffer) ClearRowFrom(y, x int) {
	if y < 0 || y >= b.rows {
		return
	}
	if x < 0 {
		x = 0
	}
	for c := x; c < b.cols; c++ {
		b.cells[y][c] = NewCell()
	}
}

// ClearRowTo empties row y from the start of line to column x, inclusive.
func (b *ScreenBuffer) ClearRowTo(y, x int) {
	if y < 0 || y >= b.rows {
		return
	}
	if x >= b.cols {
		x = b.cols - 1
	}
	for c := 0; c <= x; c++ {
		b.cells[y][c] = NewCell()
	}
}

// ClearFromCursor empties cells from (x,y) to end-of-line and every row
// below y (ED mode 0).
func (b *ScreenBuffer) ClearFromCursor(x, y int) {
	b.ClearRowFrom(y, x)
	for row := y + 1; row < b.rows; row++ {
		b.ClearRow(row)
	}
}

// ClearToCursor empties every row above y and cells from start-of-line to
// (x,y) inclusive (ED mode 1).
func (b *ScreenBuffer) ClearToCursor(x, y int) {
	for row := 0; row < y; row++ {
		b.ClearRow(row)
	}
	b.ClearRowTo(y, x)
}

// ScrollUp drops the top n rows and appends n empty rows at the bottom.
// n >= Rows() clears the whole buffer; n <= 0 is a no-op.
func (b *ScreenBuffer) ScrollUp(n int) {
	if n <= 0 {
		return
	}
	if n >= b.rows {
		b.Clear()
		return
	}
	copy(b.cells, b.cells[n:])
	for row := b.rows - n; row < b.rows; row++ {
		b.cells[row] = newEmptyRow(b.cols)
	}
}

// ScrollDown drops the bottom n rows and inserts n empty rows at the top.
// n >= Rows() clears the whole buffer; n <= 0 is a no-op.
func (b *ScreenBuffer) ScrollDown(n int) {
	if n <= 0 {
		return
	}
	if n >= b.rows {
		b.Clear()
		return
	}
	for row := b.rows - 1; row >= n; row-- {
		b.cells[row] = b.cells[row-n]
	}
	for row := 0; row < n; row++ {
		b.cells[row] = newEmptyRow(b.cols)
	}
}

// InsertRows inserts n blank rows at y, shifting rows at and below y down
// and truncating rows that fall off the bottom.
func (b *ScreenBuffer) InsertRows(y, n int) {
	if y < 0 || y >= b.rows || n <= 0 {
		return
	}
	if n > b.rows-y {
		n = b.rows - y
	}
	for row := b.rows - 1; row >= y+n; row-- {
		b.cells[row] = b.cells[row-n]
	}
	for row := y; row < y+n; row++ {
		b.cells[row] = newEmptyRow(b.cols)
	}
}

// DeleteRows removes n rows at y, shifting rows below y up and padding the
// bottom with blank rows.
func (b *ScreenBuffer) DeleteRows(y, n int) {
	if y < 0 || y >= b.rows || n <= 0 {
		return
	}
	if n > b.rows-y {
		n = b.rows - y
	}
	for row := y; row < b.rows-n; row++ {
		b.cells[row] = b.cells[row+n]
	}
	for row := b.rows - n; row < b.rows; row++ {
		b.cells[row] = newEmptyRow(b.cols)
	}
}

// InsertChars inserts n blank cells at (x,y), shifting cells at and after x
// right and truncating cells that fall off the end of the row.
func (b *ScreenBuffer) InsertChars(x, y, n int) {
	if y < 0 || y >= b.rows || x < 0 || x >= b.cols || n <= 0 {
		return
	}
	if n > b.cols-x {
		n = b.cols - x
	}
	row := b.cells[y]
	for c := b.cols - 1; c >= x+n; c-- {
		row[c] = row[c-n]
	}
	for c := x; c < x+n; c++ {
		row[c] = NewCell()
	}
}

// DeleteChars removes n cells at (x,y), shifting cells after them left and
// padding the end of the row with blanks.
func (b *ScreenBuffer) DeleteChars(x, y, n int) {
	if y < 0 || y >= b.rows || x < 0 || x >= b.cols || n <= 0 {
		return
	}
	if n > b.cols-x {
		n = b.cols - x
	}
	row := b.cells[y]
	for c := x; c < b.cols-n; c++ {
		row[c] = row[c+n]
	}
	for c := b.cols - n; c < b.cols; c++ {
		row[c] = NewCell()
	}
}

// EraseChars blanks n cells starting at (x,y) without shifting anything.
func (b *ScreenBuffer) EraseChars(x, y, n int) {
	if y < 0 || y >= b.rows || x < 0 || x >= b.cols || n <= 0 {
		return
	}
	end := x + n
	if end > b.cols {
		end = b.cols
	}
	for c := x; c < end; c++ {
		b.cells[y][c] = NewCell()
	}
}

// Resize changes the buffer's dimensions, preserving content within the
// intersection of the old and new bounds and padding new area with empty
// cells. The cursor is not re-clamped here; that is the Controller's
// responsibility once it knows the new dimensions.
func (b *ScreenBuffer) Resize(newRows, newCols int) {
	if newRows < 1 || newCols < 1 {
		return
	}
	newCells := make([][]Cell, newRows)
	for y := 0; y < newRows; y++ {
		newCells[y] = make([]Cell, newCols)
		for x := 0; x < newCols; x++ {
			if y < b.rows && x < b.cols {
				newCells[y][x] = b.cells[y][x]
			} else {
				newCells[y][x] = NewCell()
			}
		}
	}
	b.cells = newCells
	b.rows = newRows
	b.cols = newCols
}

// Cursor returns the current cursor value.
func (b *ScreenBuffer) Cursor() Cursor {
	return b.cursor
}

// SetCursor stores c, clamping its position into [0,cols) x [0,rows).
func (b *ScreenBuffer) SetCursor(c Cursor) {
	c.X = clamp(c.X, 0, b.cols-1)
	c.Y = clamp(c.Y, 0, b.rows-1)
	b.cursor = c
}

// MoveCursorRelative adds (dx,dy) to the cursor position and clamps.
func (b *ScreenBuffer) MoveCursorRelative(dx, dy int) {
	b.cursor.X = clamp(b.cursor.X+dx, 0, b.cols-1)
	b.cursor.Y = clamp(b.cursor.Y+dy, 0, b.rows-1)
}

// String renders the buffer as rows joined by "\n", each row the
// concatenation of its cell characters.
func (b *ScreenBuffer) String() string {
	runes := make([]rune, 0, b.rows*(b.cols+1))
	for y := 0; y < b.rows; y++ {
		if y > 0 {
			runes = append(runes, '\n')
		}
		for x := 0; x < b.cols; x++ {
			runes = append(runes, b.cells[y][x].Ch)
		}
	}
	return string(runes)
}
