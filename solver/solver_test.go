package solver

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/bingo16/board"
	"github.com/domino14/bingo16/rng"
	"github.com/domino14/bingo16/scoring"
)

func newSolver(t *testing.T, opts ...Option) *Solver {
	t.Helper()
	e, err := scoring.NewEngine(scoring.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	return New(e, opts...)
}

func TestOptimalMoveFullEvaluation(t *testing.T) {
	is := is.New(t)
	s := newSolver(t)
	d, err := s.OptimalMove(board.MustFromCells(0, 1))
	is.NoErr(err)
	is.Equal(d.Move, 12)
	is.Equal(d.Score.Total, 9093.0)
	is.Equal(d.Pattern, "")
}

func TestOptimalMoveTieBreak(t *testing.T) {
	is := is.New(t)
	s := newSolver(t)
	// 16, 18, 20 and 24 all score 50.
	b := board.MustFromCells(0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14)
	d, err := s.OptimalMove(b)
	is.NoErr(err)
	is.Equal(d.Move, 16)
	is.Equal(d.Score.Total, 50.0)
}

func TestOptimalMovePattern(t *testing.T) {
	is := is.New(t)
	s := newSolver(t)
	d, err := s.OptimalMove(board.MustFromCells(0, 1, 2, 3, 4, 8, 12, 16, 17, 20))
	is.NoErr(err)
	is.Equal(d.Move, 18)
	is.Equal(d.Pattern, "Row completion potential case")
	is.Equal(d.Score.Total, 832.0)

	// without patterns the engine reaches the same move
	s = newSolver(t, WithCatalog(nil))
	d, err = s.OptimalMove(board.MustFromCells(0, 1, 2, 3, 4, 8, 12, 16, 17, 20))
	is.NoErr(err)
	is.Equal(d.Move, 18)
	is.Equal(d.Pattern, "")
}

func TestOptimalMoveBoardFull(t *testing.T) {
	is := is.New(t)
	s := newSolver(t)
	sixteen := board.MustFromCells(0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15)
	_, err := s.OptimalMove(sixteen)
	is.True(errors.Is(err, board.ErrBoardFull))
	_, err = s.OptimalMove(board.Full)
	is.True(errors.Is(err, board.ErrBoardFull))
	_, err = s.RankMoves(sixteen)
	is.True(errors.Is(err, board.ErrBoardFull))
}

func TestOptimalMoveNeverSelected(t *testing.T) {
	is := is.New(t)
	s := newSolver(t)
	src := rng.NewSeeded(rng.SeedFromInt(99))
	for game := 0; game < 20; game++ {
		b := board.Empty
		for !s.Full(b) {
			d, err := s.OptimalMove(b)
			is.NoErr(err)
			is.True(board.ValidCell(d.Move))
			is.True(!b.Has(d.Move))
			b = b.Add(d.Move)
			if s.Full(b) {
				break
			}
			free := b.Unselected()
			b = b.Add(free[src.Intn(len(free))])
		}
		is.Equal(b.Count(), board.MaxSelections)
	}
}

func TestRankMoves(t *testing.T) {
	is := is.New(t)
	s := newSolver(t)
	b := board.MustFromCells(0, 1, 2, 3, 4, 8, 12, 16, 17, 20)
	ranked, err := s.RankMoves(b)
	is.NoErr(err)
	is.Equal(len(ranked), 15)
	for i := 1; i < len(ranked); i++ {
		prev, cur := ranked[i-1], ranked[i]
		is.True(prev.Score.Total > cur.Score.Total ||
			(prev.Score.Total == cur.Score.Total && prev.Move < cur.Move))
	}

	top, err := s.TopMoves(b, 5)
	is.NoErr(err)
	moves := make([]int, len(top))
	for i, ms := range top {
		moves[i] = ms.Move
	}
	is.Equal(moves, []int{18, 6, 11, 24, 15})

	all, err := s.TopMoves(b, 100)
	is.NoErr(err)
	is.Equal(len(all), 15)
	none, err := s.TopMoves(b, -1)
	is.NoErr(err)
	is.Equal(len(none), 0)
}

func TestEvaluate(t *testing.T) {
	is := is.New(t)
	s := newSolver(t)
	_, err := s.Evaluate(board.MustFromCells(4), 4)
	is.True(errors.Is(err, board.ErrCellAlreadySelected))
	_, err = s.Evaluate(board.Empty, 31)
	is.True(errors.Is(err, board.ErrInvalidCellIndex))
	sc, err := s.Evaluate(board.Empty, 12)
	is.NoErr(err)
	is.Equal(sc.Total, 16348.0)
}

func TestCachedSolverAgrees(t *testing.T) {
	is := is.New(t)
	cache := newEvalCacheWithSize(12)
	cached := newSolver(t, WithCache(cache), WithCatalog(nil))
	plain := newSolver(t, WithCatalog(nil))
	boards := []board.Board{
		board.Empty,
		board.MustFromCells(0, 1),
		board.MustFromCells(0, 1, 2, 3, 4, 8, 12, 16, 17, 20),
	}
	for pass := 0; pass < 2; pass++ {
		for _, b := range boards {
			want, err := plain.RankMoves(b)
			is.NoErr(err)
			got, err := cached.RankMoves(b)
			is.NoErr(err)
			is.Equal(got, want)
		}
	}
	lookups, hits, stores := cache.Stats()
	is.True(lookups > 0)
	is.True(hits > 0)
	is.True(stores > 0)
	is.Equal(cache.Size(), 4096)

	cache.Reset()
	lookups, hits, stores = cache.Stats()
	is.Equal(lookups+hits+stores, uint64(0))
}

func TestNewEvalCacheBounds(t *testing.T) {
	is := is.New(t)
	c := NewEvalCache(0)
	is.Equal(c.Size(), 1<<minSizePowerOf2)
}
