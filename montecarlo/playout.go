package montecarlo

import (
	"github.com/domino14/bingo16/board"
	"github.com/domino14/bingo16/rng"
	"github.com/domino14/bingo16/solver"
)

// Strategy selects who makes the picks after the opening move.
type Strategy int

const (
	// OptimalVsRandom alternates a random opponent pick with a solver pick.
	OptimalVsRandom Strategy = iota
	// RandomOnly makes every pick at random.
	RandomOnly
)

func (s Strategy) String() string {
	if s == RandomOnly {
		return "random moves only"
	}
	return "optimal vs random"
}

// randomMove picks uniformly among the free cells of b.
func randomMove(b board.Board, src rng.Source) int {
	free := b.Unselected()
	return free[src.Intn(len(free))]
}

// player fills a board to the end of a game.
type player struct {
	solver   *solver.Solver
	strategy Strategy
}

// playout starts from start plus first and picks until the solver reports
// the board full. The returned slice holds every pick in order, first
// included.
func (p *player) playout(start board.Board, first int, src rng.Source) ([]int, board.Board, error) {
	b := start.Add(first)
	moves := []int{first}
	for !p.solver.Full(b) {
		m := randomMove(b, src)
		b = b.Add(m)
		moves = append(moves, m)
		if p.strategy == RandomOnly || p.solver.Full(b) {
			continue
		}
		d, err := p.solver.OptimalMove(b)
		if err != nil {
			return nil, 0, err
		}
		b = b.Add(d.Move)
		moves = append(moves, d.Move)
	}
	return moves, b, nil
}

// selfPlay plays a game where the solver moves first and a random opponent
// answers, until the board is full. It returns every pick in order and the
// solver's decisions.
func (p *player) selfPlay(start board.Board, src rng.Source) ([]int, []solver.Decision, board.Board, error) {
	b := start
	var moves []int
	var decisions []solver.Decision
	for !p.solver.Full(b) {
		d, err := p.solver.OptimalMove(b)
		if err != nil {
			return nil, nil, 0, err
		}
		b = b.Add(d.Move)
		moves = append(moves, d.Move)
		decisions = append(decisions, d)
		if p.solver.Full(b) {
			break
		}
		m := randomMove(b, src)
		b = b.Add(m)
		moves = append(moves, m)
	}
	return moves, decisions, b, nil
}
