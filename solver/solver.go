// Package solver picks moves: a recognized pattern if there is one,
// otherwise the highest-scoring free cell.
package solver

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/domino14/bingo16/board"
	"github.com/domino14/bingo16/patterns"
	"github.com/domino14/bingo16/scoring"
)

// Decision is the solver's chosen move.
type Decision struct {
	Move  int           `json:"move"`
	Score scoring.Score `json:"score"`
	// Pattern is the description of the recognized position, if any.
	Pattern string `json:"pattern,omitempty"`
}

type Solver struct {
	engine  *scoring.Engine
	catalog patterns.Catalog
	cache   *EvalCache
}

type Option func(*Solver)

// WithCatalog replaces the built-in pattern catalog. A nil catalog turns
// pattern matching off.
func WithCatalog(c patterns.Catalog) Option {
	return func(s *Solver) { s.catalog = c }
}

// WithCache memoizes scores in c. The cache may be shared by solvers that
// use the same engine.
func WithCache(c *EvalCache) Option {
	return func(s *Solver) { s.cache = c }
}

func New(engine *scoring.Engine, opts ...Option) *Solver {
	s := &Solver{engine: engine, catalog: patterns.Default()}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Solver) Engine() *scoring.Engine {
	return s.engine
}

func (s *Solver) Cache() *EvalCache {
	return s.cache
}

// Full reports whether b has no move left: the cell budget is spent or the
// grid is covered.
func (s *Solver) Full(b board.Board) bool {
	return b.Count() >= s.engine.Params().MaxCells || b&board.Full == board.Full
}

// Evaluate scores move on b, going through the cache when there is one.
func (s *Solver) Evaluate(b board.Board, move int) (scoring.Score, error) {
	if err := board.CheckCell(move); err != nil {
		return scoring.Score{}, err
	}
	if b.Has(move) {
		return scoring.Score{}, fmt.Errorf("%w: %d", board.ErrCellAlreadySelected, move)
	}
	return s.score(b, move), nil
}

func (s *Solver) score(b board.Board, move int) scoring.Score {
	if s.cache == nil {
		return s.engine.Score(b, move)
	}
	if sc, ok := s.cache.lookup(b, move); ok {
		return sc
	}
	sc := s.engine.Score(b, move)
	s.cache.store(b, move, sc)
	return sc
}

// OptimalMove returns the pattern move when b is a known position, and
// otherwise the free cell with the highest total. Ties go to the lowest
// cell index.
func (s *Solver) OptimalMove(b board.Board) (Decision, error) {
	if s.Full(b) {
		return Decision{}, board.ErrBoardFull
	}
	if m, ok := s.catalog.Match(b); ok {
		log.Debug().Str("pattern", m.Description).Str("symmetry", m.Symmetry).
			Int("move", m.Move).Msg("pattern-match")
		return Decision{Move: m.Move, Score: s.score(b, m.Move), Pattern: m.Description}, nil
	}
	best := Decision{Move: -1}
	for _, move := range b.Unselected() {
		sc := s.score(b, move)
		if best.Move == -1 || sc.Total > best.Score.Total {
			best = Decision{Move: move, Score: sc}
		}
	}
	return best, nil
}

// RankMoves scores every free cell, best first. Equal totals keep
// ascending cell order.
func (s *Solver) RankMoves(b board.Board) ([]scoring.MoveScore, error) {
	if s.Full(b) {
		return nil, board.ErrBoardFull
	}
	free := b.Unselected()
	ranked := make([]scoring.MoveScore, len(free))
	for i, move := range free {
		ranked[i] = scoring.MoveScore{Move: move, Score: s.score(b, move)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score.Total > ranked[j].Score.Total
	})
	return ranked, nil
}

// TopMoves is the first n entries of RankMoves.
func (s *Solver) TopMoves(b board.Board, n int) ([]scoring.MoveScore, error) {
	ranked, err := s.RankMoves(b)
	if err != nil {
		return nil, err
	}
	if n < len(ranked) {
		ranked = ranked[:max(n, 0)]
	}
	return ranked, nil
}
