package board

import "errors"

var (
	// ErrInvalidCellIndex is returned for a cell outside [0, 24].
	ErrInvalidCellIndex = errors.New("invalid cell index")
	// ErrCellAlreadySelected is returned when a move names a cell that is
	// already on the board.
	ErrCellAlreadySelected = errors.New("cell already selected")
	// ErrBoardFull means no legal move exists when one was required.
	ErrBoardFull = errors.New("no move available")
	// ErrInvalidConfiguration covers malformed parameters and arguments.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)
