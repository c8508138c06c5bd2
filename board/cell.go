package board

import "fmt"

const (
	// Dim is the side length of the grid.
	Dim = 5
	// NumCells is the number of cells on the grid.
	NumCells = Dim * Dim
	// MaxSelections is the selection budget of a game: no board ever holds
	// more than this many cells.
	MaxSelections = 16
)

// Row returns the row of a cell index.
func Row(cell int) int {
	return cell / Dim
}

// Col returns the column of a cell index.
func Col(cell int) int {
	return cell % Dim
}

// Index is the inverse of Row and Col.
func Index(row, col int) int {
	return row*Dim + col
}

// ValidCell reports whether cell lies on the grid.
func ValidCell(cell int) bool {
	return cell >= 0 && cell < NumCells
}

// CheckCell returns ErrInvalidCellIndex (wrapped with the value) for cells
// off the grid.
func CheckCell(cell int) error {
	if !ValidCell(cell) {
		return fmt.Errorf("%w: %d (must be 0-%d)", ErrInvalidCellIndex, cell, NumCells-1)
	}
	return nil
}
