package board

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestFromCells(t *testing.T) {
	is := is.New(t)
	b, err := FromCells([]int{3, 0, 24, 3})
	is.NoErr(err)
	is.Equal(b.Count(), 3)
	is.Equal(b.Cells(), []int{0, 3, 24})
	is.Equal(b.String(), "0,3,24")

	_, err = FromCells([]int{1, 25})
	is.True(errors.Is(err, ErrInvalidCellIndex))
	_, err = FromCells([]int{-1})
	is.True(errors.Is(err, ErrInvalidCellIndex))
}

func TestAddDoesNotMutate(t *testing.T) {
	is := is.New(t)
	b := MustFromCells(1, 2)
	b2 := b.Add(7)
	is.Equal(b.Count(), 2)
	is.Equal(b2.Count(), 3)
	is.True(b2.Has(7))
	is.True(!b.Has(7))
	is.True(!b.Has(25))
	is.True(!b.Has(-3))
}

func TestUnselected(t *testing.T) {
	is := is.New(t)
	b := MustFromCells(0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22)
	is.Equal(b.Unselected(), []int{23, 24})
	is.Equal(len(Empty.Unselected()), NumCells)
	is.Equal(len(Full.Unselected()), 0)
}

func TestIsFull(t *testing.T) {
	is := is.New(t)
	b := Empty
	for i := 0; i < MaxSelections-1; i++ {
		b = b.Add(i)
	}
	is.True(!b.IsFull())
	b = b.Add(24)
	is.True(b.IsFull())
	is.True(Full.IsFull())
}

func TestMissing(t *testing.T) {
	is := is.New(t)
	b := MustFromCells(0, 1, 2)
	is.Equal(b.Missing(Lines[Row0].Mask), 2)
	is.Equal(b.Missing(Lines[Col0].Mask), 4)
	is.Equal(b.Missing(MustFromCells(0, 1)), 0)
}

func TestToDisplayText(t *testing.T) {
	is := is.New(t)
	b := MustFromCells(0, 12)
	txt := b.ToDisplayText(MustFromCells(24))
	is.Equal(txt, ""+
		"  X  1  2  3  4\n"+
		"  5  6  7  8  9\n"+
		" 10 11  X 13 14\n"+
		" 15 16 17 18 19\n"+
		" 20 21 22 23  *\n")
}
