package montecarlo

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/bingo16/board"
	"github.com/domino14/bingo16/rng"
	"github.com/domino14/bingo16/scoring"
	"github.com/domino14/bingo16/solver"
	"github.com/domino14/bingo16/stats"
)

type SelfPlayOptions struct {
	// Initial is usually the empty board.
	Initial  board.Board
	NumGames int
	Threads  int
	Seed     *rng.Seed
}

// SelfPlayResult measures how the solver does against a random opponent.
type SelfPlayResult struct {
	NumGames     int
	Games        []Trial
	Mean         float64
	Stdev        float64
	Min          int
	Max          int
	Distribution stats.Distribution
	// MoveFrequency[c] is how many times per game cell c was picked, by
	// either side.
	MoveFrequency [board.NumCells]float64
	// MeanScore averages the scores of the solver's own picks.
	MeanScore scoring.Score
	// PatternMatchRate is the percentage of solver picks that came from
	// the pattern catalog.
	PatternMatchRate float64
	// PatternCounts counts matches per pattern description.
	PatternCounts map[string]int
}

type selfPlayGame struct {
	moves     []int
	decisions []solver.Decision
	final     board.Board
}

// SelfPlay plays opts.NumGames games where the solver moves first and a
// random opponent replies.
func SelfPlay(ctx context.Context, s *solver.Solver, opts SelfPlayOptions) (*SelfPlayResult, error) {
	logger := zerolog.Ctx(ctx)
	if opts.NumGames <= 0 {
		return nil, fmt.Errorf("%w: number of games must be positive, got %d", board.ErrInvalidConfiguration, opts.NumGames)
	}
	if s.Full(opts.Initial) {
		return nil, fmt.Errorf("initial board %v: %w", opts.Initial, board.ErrBoardFull)
	}
	if opts.Threads <= 0 {
		opts.Threads = runtime.NumCPU()
	}
	seed := rng.RandomSeed()
	if opts.Seed != nil {
		seed = *opts.Seed
	}
	p := &player{solver: s}
	games := make([]selfPlayGame, opts.NumGames)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Threads)
	for i := range opts.NumGames {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			src := rng.NewSeeded(seed.Derive(uint64(i)))
			moves, decisions, final, err := p.selfPlay(opts.Initial, src)
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			games[i] = selfPlayGame{moves: moves, decisions: decisions, final: final}
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return nil, err
	}

	res := summarizeSelfPlay(games)
	logger.Info().Int("games", res.NumGames).Float64("mean-lines", res.Mean).
		Float64("pattern-rate", res.PatternMatchRate).Msg("selfplay-ended")
	return res, nil
}

func summarizeSelfPlay(games []selfPlayGame) *SelfPlayResult {
	res := &SelfPlayResult{
		NumGames:      len(games),
		Distribution:  stats.Distribution{},
		PatternCounts: map[string]int{},
	}
	var lineStat stats.Statistic
	var three, four, five, total stats.Statistic
	picks, matched, sum := 0, 0, 0
	for i, gm := range games {
		lines := board.CompletedLines(gm.final)
		res.Games = append(res.Games, Trial{Index: i, Moves: gm.moves, Final: gm.final, Lines: lines})
		lineStat.Push(float64(lines))
		res.Distribution.Add(lines)
		sum += lines
		for _, m := range gm.moves {
			res.MoveFrequency[m]++
		}
		for _, d := range gm.decisions {
			three.Push(d.Score.ThreeLine)
			four.Push(d.Score.FourLine)
			five.Push(d.Score.FiveLine)
			total.Push(d.Score.Total)
			picks++
			if d.Pattern != "" {
				matched++
				res.PatternCounts[d.Pattern]++
			}
		}
	}
	n := float64(len(games))
	res.Mean = float64(sum) / n
	res.Stdev = lineStat.Stdev()
	res.Min = int(lineStat.Min())
	res.Max = int(lineStat.Max())
	for c := range res.MoveFrequency {
		res.MoveFrequency[c] /= n
	}
	res.MeanScore = scoring.Score{
		ThreeLine: three.Mean(),
		FourLine:  four.Mean(),
		FiveLine:  five.Mean(),
		Total:     total.Mean(),
	}
	if picks > 0 {
		res.PatternMatchRate = float64(matched) * 100 / float64(picks)
	}
	return res
}

// MostCommonPattern returns the description matched most often, or "" if
// none was. Ties go to the alphabetically first description.
func (r *SelfPlayResult) MostCommonPattern() string {
	descs := lo.Keys(r.PatternCounts)
	best := ""
	for _, d := range descs {
		c := r.PatternCounts[d]
		if best == "" || c > r.PatternCounts[best] || (c == r.PatternCounts[best] && d < best) {
			best = d
		}
	}
	return best
}

// Report writes the self-play summary with a grid of per-cell pick
// frequencies.
func (r *SelfPlayResult) Report(w io.Writer) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\nSelf-play Results (%d games, solver vs random)\n", r.NumGames)
	fmt.Fprintf(&sb, "Mean lines: %.2f (stdev %.2f, min %d, max %d)\n", r.Mean, r.Stdev, r.Min, r.Max)
	sb.WriteString("Distribution:\n")
	for _, lines := range r.Distribution.Keys() {
		fmt.Fprintf(&sb, "%d lines: %d games (%.1f%%)\n", lines, r.Distribution[lines],
			r.Distribution.Percent(lines, r.NumGames))
	}
	sb.WriteString("Picks per game by cell:\n")
	for row := range board.Dim {
		for col := range board.Dim {
			fmt.Fprintf(&sb, "%6.2f", r.MoveFrequency[board.Index(row, col)])
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "Mean solver pick score: %v\n", r.MeanScore)
	fmt.Fprintf(&sb, "Pattern match rate: %.2f%%", r.PatternMatchRate)
	if p := r.MostCommonPattern(); p != "" {
		fmt.Fprintf(&sb, " (most common: %s)", p)
	}
	sb.WriteString("\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
