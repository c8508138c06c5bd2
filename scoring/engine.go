// Package scoring rates candidate cells by how much they advance the board
// toward completing groups of 3, 4 and 5 lines.
package scoring

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/bingo16/board"
	"github.com/domino14/bingo16/combos"
)

// Score is the value of one candidate move, split by combination size.
type Score struct {
	ThreeLine float64 `json:"threeLine" yaml:"three-line"`
	FourLine  float64 `json:"fourLine" yaml:"four-line"`
	FiveLine  float64 `json:"fiveLine" yaml:"five-line"`
	Total     float64 `json:"total" yaml:"total"`
}

func (s Score) String() string {
	return fmt.Sprintf("%.0f (3:%.0f 4:%.0f 5:%.0f)", s.Total, s.ThreeLine, s.FourLine, s.FiveLine)
}

// MoveScore pairs a cell with its score.
type MoveScore struct {
	Move  int   `json:"move"`
	Score Score `json:"score"`
}

// Engine scores moves. It is immutable after construction and safe for
// concurrent use.
type Engine struct {
	params Params
	tables *combos.Tables
	// powers is indexed by combination size.
	powers map[int]PowerTable
}

// NewEngine validates p and builds the combination and power tables.
func NewEngine(p Params) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	tables, err := combos.Generate(p.MaxCells)
	if err != nil {
		return nil, err
	}
	e := &Engine{params: p, tables: tables, powers: map[int]PowerTable{}}
	for _, k := range combos.Sizes {
		t := p.tier(k)
		e.powers[k] = NewPowerTable(t.PowerBase, t.PowerExponent, p.MaxCells)
	}
	log.Debug().Int("combinations", tables.Len()).Int("threshold", p.Threshold).
		Msg("created-scoring-engine")
	return e, nil
}

func (e *Engine) Params() Params {
	return e.params
}

// Evaluate scores move on b. The move must be on the grid and free.
func (e *Engine) Evaluate(b board.Board, move int) (Score, error) {
	if err := board.CheckCell(move); err != nil {
		return Score{}, err
	}
	if b.Has(move) {
		return Score{}, fmt.Errorf("%w: %d", board.ErrCellAlreadySelected, move)
	}
	return e.Score(b, move), nil
}

// EvaluateAll scores every free cell of b in ascending cell order.
func (e *Engine) EvaluateAll(b board.Board) []MoveScore {
	return lo.Map(b.Unselected(), func(m int, _ int) MoveScore {
		return MoveScore{Move: m, Score: e.Score(b, m)}
	})
}

// Score is Evaluate without the argument checks.
func (e *Engine) Score(b board.Board, move int) Score {
	hyp := b.Add(move)
	selected := hyp.Count()
	tiers := map[int]float64{}

	bonuses := e.params.Late
	if selected <= e.params.Threshold {
		bonuses = e.params.Immediate
		for _, k := range combos.Sizes {
			tiers[k] = e.proximity(hyp, selected, k)
		}
	}

	for _, id := range board.LinesThrough(move) {
		switch board.Lines[id].Selected(hyp) {
		case board.Dim:
			tiers[3] += bonuses.CompleteLine
		case 4:
			tiers[4] += bonuses.FourCell
		case 3:
			tiers[3] += bonuses.ThreeCell
		}
	}

	s := Score{
		ThreeLine: tiers[3] * e.params.ThreeLine.Weight,
		FourLine:  tiers[4] * e.params.FourLine.Weight,
		FiveLine:  tiers[5] * e.params.FiveLine.Weight,
	}
	s.Total = s.ThreeLine + s.FourLine + s.FiveLine
	return s
}

// proximity sums, over the size-k combinations still reachable within the
// cell budget, the tier base plus the power-table value of the projected
// board size.
func (e *Engine) proximity(hyp board.Board, selected, k int) float64 {
	base := e.params.tier(k).Base
	powers := e.powers[k]
	return lo.SumBy(e.tables.Size(k), func(c combos.Combination) float64 {
		projected := hyp.Missing(c.Mask) + selected
		if projected > e.params.MaxCells {
			return 0
		}
		return base + powers.At(projected)
	})
}
