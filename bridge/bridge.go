// Package bridge evaluates every free cell of a board in one call, for
// external tools. The output is a flat JSON object keyed by cell index.
package bridge

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/bingo16/board"
	"github.com/domino14/bingo16/solver"
)

// EmptyToken stands for a board with no cells selected.
const EmptyToken = "empty"

// CellEvaluation is the score of one cell. Pattern is set on the cell the
// pattern catalog recommends.
type CellEvaluation struct {
	ThreeLine float64 `json:"threeLine"`
	FourLine  float64 `json:"fourLine"`
	FiveLine  float64 `json:"fiveLine"`
	Total     float64 `json:"total"`
	Pattern   string  `json:"pattern,omitempty"`
}

// Evaluation maps a cell index, as a decimal string, to its evaluation.
type Evaluation map[string]CellEvaluation

// Request is the wire form of an evaluation request.
type Request struct {
	Board string `json:"board"`
}

// ParseBoard reads "empty", "" or a comma-separated list of cell indices.
// Duplicates collapse.
func ParseBoard(s string) (board.Board, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == EmptyToken {
		return board.Empty, nil
	}
	parts := strings.Split(s, ",")
	cells := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a cell index", board.ErrInvalidCellIndex, p)
		}
		cells = append(cells, v)
	}
	return board.FromCells(cells)
}

// Evaluate scores every free cell of b. It also returns the solver's pick,
// which is nil once the cell budget is spent; the free cells of such a
// board are still scored.
func Evaluate(s *solver.Solver, b board.Board) (Evaluation, *solver.Decision, error) {
	free := b.Unselected()
	ev := make(Evaluation, len(free))
	for _, move := range free {
		sc, err := s.Evaluate(b, move)
		if err != nil {
			return nil, nil, err
		}
		ev[strconv.Itoa(move)] = CellEvaluation{
			ThreeLine: sc.ThreeLine,
			FourLine:  sc.FourLine,
			FiveLine:  sc.FiveLine,
			Total:     sc.Total,
		}
	}
	if s.Full(b) {
		log.Debug().Str("board", b.String()).Int("cells", len(ev)).Msg("bridge-evaluated-full-board")
		return ev, nil, nil
	}
	d, err := s.OptimalMove(b)
	if err != nil {
		return nil, nil, err
	}
	if d.Pattern != "" {
		key := strconv.Itoa(d.Move)
		ce := ev[key]
		ce.Pattern = d.Pattern
		ev[key] = ce
	}
	log.Debug().Str("board", b.String()).Int("cells", len(ev)).Str("pattern", d.Pattern).
		Msg("bridge-evaluated")
	return ev, &d, nil
}

// Handle parses a board string, evaluates it and returns the JSON
// encoding.
func Handle(s *solver.Solver, boardArg string) ([]byte, error) {
	b, err := ParseBoard(boardArg)
	if err != nil {
		return nil, err
	}
	ev, _, err := Evaluate(s, b)
	if err != nil {
		return nil, err
	}
	return json.Marshal(ev)
}
