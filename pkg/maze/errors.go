package maze

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions is returned by [New] and [Build] when the width or
	// height is not positive. No cells or walls are allocated in that case.
	ErrInvalidDimensions = errors.New("maze dimensions must be positive")

	// ErrOutOfRange is matched by every [OutOfRangeError].
	ErrOutOfRange = errors.New("cell coordinate out of range")

	// ErrUnknownAlgorithm is returned by [ParseAlgorithm] for unrecognised names.
	ErrUnknownAlgorithm = errors.New("unknown maze algorithm")

	// ErrWallCountMismatch is returned by [FromWalls] when the number of wall
	// states does not match the topology for the given dimensions.
	ErrWallCountMismatch = errors.New("wall count does not match dimensions")

	// ErrNotPerfect is returned by [Verify] when the passages do not form a
	// spanning tree or the entrance and exit are closed.
	ErrNotPerfect = errors.New("maze is not perfect")
)

// OutOfRangeError reports a cell query outside [0,Width)×[0,Height).
type OutOfRangeError struct {
	X, Y          int
	Width, Height int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("cell (%d,%d) out of range for %dx%d maze", e.X, e.Y, e.Width, e.Height)
}

// Is lets errors.Is(err, ErrOutOfRange) match any OutOfRangeError.
func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}
