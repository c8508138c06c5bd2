package board

import "fmt"

// LineID identifies one of the 12 scoring lines. The numbering is fixed:
// rows are 0-4, columns 5-9, then the two diagonals.
type LineID int

const (
	Row0 LineID = iota
	Row1
	Row2
	Row3
	Row4
	Col0
	Col1
	Col2
	Col3
	Col4
	// DiagA runs 0-6-12-18-24.
	DiagA
	// DiagB runs 4-8-12-16-20.
	DiagB

	NumLines = 12
)

func (id LineID) String() string {
	switch {
	case id >= Row0 && id <= Row4:
		return fmt.Sprintf("row%d", int(id-Row0))
	case id >= Col0 && id <= Col4:
		return fmt.Sprintf("col%d", int(id-Col0))
	case id == DiagA:
		return "diagA"
	case id == DiagB:
		return "diagB"
	}
	return fmt.Sprintf("line(%d)", int(id))
}

// A Line is five cells that score together when all are selected.
type Line struct {
	ID    LineID
	Cells [Dim]int
	Mask  Board
}

// Lines is the line catalog, indexed by LineID.
var Lines [NumLines]Line

// linesThrough[c] holds the ids of every line containing cell c.
var linesThrough [NumCells][]LineID

func init() {
	for r := 0; r < Dim; r++ {
		var cells [Dim]int
		for i := range cells {
			cells[i] = Index(r, i)
		}
		Lines[Row0+LineID(r)] = newLine(Row0+LineID(r), cells)
	}
	for c := 0; c < Dim; c++ {
		var cells [Dim]int
		for i := range cells {
			cells[i] = Index(i, c)
		}
		Lines[Col0+LineID(c)] = newLine(Col0+LineID(c), cells)
	}
	Lines[DiagA] = newLine(DiagA, [Dim]int{0, 6, 12, 18, 24})
	Lines[DiagB] = newLine(DiagB, [Dim]int{4, 8, 12, 16, 20})

	for _, l := range Lines {
		for _, c := range l.Cells {
			linesThrough[c] = append(linesThrough[c], l.ID)
		}
	}
}

func newLine(id LineID, cells [Dim]int) Line {
	var mask Board
	for _, c := range cells {
		mask = mask.Add(c)
	}
	return Line{ID: id, Cells: cells, Mask: mask}
}

// LinesThrough returns the ids of the lines containing cell, in id order.
// The returned slice is shared and must not be modified.
func LinesThrough(cell int) []LineID {
	if !ValidCell(cell) {
		return nil
	}
	return linesThrough[cell]
}

// Selected counts how many cells of the line are selected on b.
func (l Line) Selected(b Board) int {
	return (b & l.Mask).Count()
}

// Complete reports whether every cell of the line is selected on b.
func (l Line) Complete(b Board) bool {
	return b.Contains(l.Mask)
}

// CompletedLines counts the lines fully selected on b.
func CompletedLines(b Board) int {
	n := 0
	for _, l := range Lines {
		if l.Complete(b) {
			n++
		}
	}
	return n
}
