package board

import (
	"math/bits"
	"strconv"
	"strings"
)

// A Board is the set of selected cells. Bit i is set when cell i has been
// picked. Boards are values; Add returns a new Board and never modifies the
// receiver.
type Board uint32

// Full is the board with every cell selected.
const Full Board = 1<<NumCells - 1

// Empty is the board with no selected cells.
const Empty Board = 0

// FromCells builds a board from a list of cell indices. Duplicates are
// allowed and collapse into one cell.
func FromCells(cells []int) (Board, error) {
	var b Board
	for _, c := range cells {
		if err := CheckCell(c); err != nil {
			return 0, err
		}
		b |= 1 << c
	}
	return b, nil
}

// MustFromCells is FromCells for static data; it panics on a bad index.
func MustFromCells(cells ...int) Board {
	b, err := FromCells(cells)
	if err != nil {
		panic(err)
	}
	return b
}

// Has reports whether cell is selected. Cells off the grid are never
// selected.
func (b Board) Has(cell int) bool {
	if !ValidCell(cell) {
		return false
	}
	return b&(1<<cell) != 0
}

// Add returns the board with cell selected.
func (b Board) Add(cell int) Board {
	return b | 1<<cell
}

// Union returns the cells selected in either board.
func (b Board) Union(o Board) Board {
	return b | o
}

// Contains reports whether every cell of o is selected in b.
func (b Board) Contains(o Board) bool {
	return b&o == o
}

// Count is the number of selected cells.
func (b Board) Count() int {
	return bits.OnesCount32(uint32(b))
}

// Missing counts the cells of mask that are not selected in b.
func (b Board) Missing(mask Board) int {
	return bits.OnesCount32(uint32(mask &^ b))
}

// Cells lists the selected cells in ascending order.
func (b Board) Cells() []int {
	cells := make([]int, 0, b.Count())
	for m := b & Full; m != 0; m &= m - 1 {
		cells = append(cells, trailingCell(m))
	}
	return cells
}

func trailingCell(m Board) int {
	return bits.TrailingZeros32(uint32(m))
}

// Unselected lists the free cells in ascending order.
func (b Board) Unselected() []int {
	return (^b & Full).Cells()
}

// IsFull reports whether the selection budget is used up, or the grid has no
// free cell left.
func (b Board) IsFull() bool {
	return b.Count() >= MaxSelections || b&Full == Full
}

// String is the comma-separated list of selected cells, e.g. "0,6,12".
func (b Board) String() string {
	cells := b.Cells()
	strs := make([]string, len(cells))
	for i, c := range cells {
		strs[i] = strconv.Itoa(c)
	}
	return strings.Join(strs, ",")
}

// ToDisplayText renders the grid, one row per line. Selected cells are shown
// as X, free cells by their index. Cells in mark are shown as *.
func (b Board) ToDisplayText(mark Board) string {
	var sb strings.Builder
	for r := 0; r < Dim; r++ {
		for c := 0; c < Dim; c++ {
			idx := Index(r, c)
			switch {
			case mark.Has(idx):
				sb.WriteString("  *")
			case b.Has(idx):
				sb.WriteString("  X")
			default:
				sb.WriteString(" ")
				if idx < 10 {
					sb.WriteString(" ")
				}
				sb.WriteString(strconv.Itoa(idx))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
