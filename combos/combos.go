// Package combos enumerates the groups of scoring lines that can still be
// completed together within the selection budget.
package combos

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat/combin"

	"github.com/domino14/bingo16/board"
)

// Sizes are the combination sizes that get scored.
var Sizes = []int{3, 4, 5}

// A Combination is a set of distinct lines, in increasing id order, whose
// cells fit within the selection budget.
type Combination struct {
	Lines []board.LineID
	// Mask is the union of the cells of all the lines.
	Mask board.Board
}

func (c Combination) String() string {
	return fmt.Sprintf("%v(%d cells)", c.Lines, c.Mask.Count())
}

// Tables holds one list of combinations per size. Tables are built once and
// only read afterwards.
type Tables struct {
	maxCells int
	bySize   map[int][]Combination
}

// Generate builds every 3-, 4- and 5-line combination whose cell footprint is
// at most maxCells. Within a size, combinations are in lexicographic order of
// their line ids.
func Generate(maxCells int) (*Tables, error) {
	if maxCells <= 0 || maxCells > board.NumCells {
		return nil, fmt.Errorf("%w: max cells %d", board.ErrInvalidConfiguration, maxCells)
	}
	t := &Tables{maxCells: maxCells, bySize: make(map[int][]Combination, len(Sizes))}
	for _, k := range Sizes {
		t.bySize[k] = generate(k, maxCells)
		log.Debug().Int("size", k).Int("combinations", len(t.bySize[k])).
			Int("candidates", combin.Binomial(board.NumLines, k)).Msg("generated-combination-table")
	}
	return t, nil
}

func generate(k, maxCells int) []Combination {
	// combin.Combinations yields index tuples in lexicographic order.
	cs := combin.Combinations(board.NumLines, k)
	out := make([]Combination, 0, len(cs))
	for _, c := range cs {
		var mask board.Board
		ids := make([]board.LineID, k)
		for i, lineIdx := range c {
			ids[i] = board.LineID(lineIdx)
			mask = mask.Union(board.Lines[lineIdx].Mask)
		}
		if mask.Count() > maxCells {
			continue
		}
		out = append(out, Combination{Lines: ids, Mask: mask})
	}
	return out
}

// Size returns the combinations of k lines. The slice is shared.
func (t *Tables) Size(k int) []Combination {
	return t.bySize[k]
}

// MaxCells is the footprint bound the tables were built with.
func (t *Tables) MaxCells() int {
	return t.maxCells
}

// Len is the total number of combinations across all sizes.
func (t *Tables) Len() int {
	n := 0
	for _, k := range Sizes {
		n += len(t.bySize[k])
	}
	return n
}
