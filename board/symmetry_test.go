package board

import (
	"testing"

	"github.com/matryer/is"
)

func TestSymmetriesArePermutations(t *testing.T) {
	is := is.New(t)
	for _, s := range Symmetries {
		seen := Empty
		for c := 0; c < NumCells; c++ {
			seen = seen.Add(s.Cell(c))
		}
		is.Equal(seen, Full) // every symmetry is a bijection
	}
	is.Equal(Identity.Name, "identity")
}

func TestSymmetriesDistinct(t *testing.T) {
	is := is.New(t)
	// An asymmetric board has 8 distinct images.
	b := MustFromCells(0, 1, 7)
	images := map[Board]bool{}
	for i := range Symmetries {
		images[Symmetries[i].Board(b)] = true
	}
	is.Equal(len(images), 8)
}

func TestSymmetryKnownImages(t *testing.T) {
	is := is.New(t)
	byName := map[string]*Symmetry{}
	for i := range Symmetries {
		byName[Symmetries[i].Name] = &Symmetries[i]
	}
	is.Equal(byName["rot90"].Cell(0), 4)
	is.Equal(byName["rot180"].Cell(0), 24)
	is.Equal(byName["rot270"].Cell(0), 20)
	is.Equal(byName["flip-horizontal"].Cell(1), 3)
	is.Equal(byName["flip-vertical"].Cell(1), 21)
	is.Equal(byName["transpose"].Cell(1), 5)
	is.Equal(byName["anti-transpose"].Cell(1), 19)
	for i := range Symmetries {
		is.Equal(Symmetries[i].Cell(12), 12) // the center is fixed
	}
}

// Symmetries map lines onto lines, so line counts are invariant.
func TestSymmetriesPreserveLines(t *testing.T) {
	is := is.New(t)
	masks := map[Board]bool{}
	for _, l := range Lines {
		masks[l.Mask] = true
	}
	for i := range Symmetries {
		for _, l := range Lines {
			is.True(masks[Symmetries[i].Board(l.Mask)])
		}
	}
}

func TestInverse(t *testing.T) {
	is := is.New(t)
	b := MustFromCells(0, 1, 7, 13)
	for i := range Symmetries {
		s := &Symmetries[i]
		is.Equal(s.inverse().Board(s.Board(b)), b)
	}
}
