package vtengine

import "fmt"

// OutOfBoundsError is returned when a ScreenBuffer accessor is given
// coordinates outside the buffer's current dimensions.
type OutOfBoundsError struct {
	X, Y       int
	Cols, Rows int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("vtengine: position (%d,%d) out of bounds for %dx%d buffer", e.X, e.Y, e.Cols, e.Rows)
}

// LengthMismatchError is returned by SetRow when the supplied row's length
// does not equal the buffer's column count.
type LengthMismatchError struct {
	Got, Want int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("vtengine: row length %d does not match buffer width %d", e.Got, e.Want)
}
