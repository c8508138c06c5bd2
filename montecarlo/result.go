package montecarlo

import (
	"fmt"
	"io"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/samber/lo"

	"github.com/domino14/bingo16/board"
	"github.com/domino14/bingo16/rng"
	"github.com/domino14/bingo16/stats"
)

// ConfidenceLevel is the level, in percent, of the reported interval on
// the mean difference.
const ConfidenceLevel = 95

// Trial is one finished game.
type Trial struct {
	Index int
	// Moves are the picks made in the game, the option first.
	Moves []int
	Final board.Board
	Lines int
}

// Outcome summarizes the games played from one option.
type Outcome struct {
	Move         int
	Trials       []Trial
	Mean         float64
	Distribution stats.Distribution
	// Best is the earliest trial with the most completed lines.
	Best Trial

	stat stats.Statistic
}

// Lines lists the completed-line count of every trial, in trial order.
func (o *Outcome) Lines() []int {
	return lo.Map(o.Trials, func(t Trial, _ int) int { return t.Lines })
}

func (o *Outcome) Stdev() float64 {
	return o.stat.Stdev()
}

// HalfWidth is the half-width of the ConfidenceLevel interval around Mean.
func (o *Outcome) HalfWidth() float64 {
	return stats.HalfWidth(&o.stat, ConfidenceLevel)
}

func aggregate(move int, trials []Trial) Outcome {
	o := Outcome{Move: move, Trials: trials, Distribution: stats.Distribution{}, Best: trials[0]}
	sum := 0
	for _, t := range trials {
		o.stat.Push(float64(t.Lines))
		o.Distribution.Add(t.Lines)
		sum += t.Lines
		if t.Lines > o.Best.Lines {
			o.Best = t
		}
	}
	o.Mean = float64(sum) / float64(len(trials))
	return o
}

// Result is the outcome of a comparison run.
type Result struct {
	Config   Options
	Seed     rng.Seed
	Outcomes [NumOptions]Outcome
	// MeanDifference is option 1's mean minus option 2's.
	MeanDifference float64
	// DiffHalfWidth is the half-width of the ConfidenceLevel interval
	// around MeanDifference.
	DiffHalfWidth float64
}

func (r *Result) finish() {
	a, b := &r.Outcomes[0], &r.Outcomes[1]
	r.MeanDifference = a.Mean - b.Mean
	r.DiffHalfWidth = stats.DiffHalfWidth(&a.stat, &b.stat, ConfidenceLevel)
}

// BestMoves is the best game of an outcome as played from the initial
// board: the initial cells in ascending order, then the picks.
func (r *Result) BestMoves(opt int) []int {
	return append(r.Config.Initial.Cells(), r.Outcomes[opt].Best.Moves...)
}

// Report writes the human-readable comparison. With hist set a histogram
// of each option's line counts is included.
func (r *Result) Report(w io.Writer, hist bool) error {
	var sb strings.Builder
	n := r.Config.NumGames
	fmt.Fprintf(&sb, "\nSimulation Results (%d games per option)\n", n)
	fmt.Fprintf(&sb, "*** %s ***\n", strings.ToUpper(r.Config.Strategy.String()))

	for opt := range NumOptions {
		o := &r.Outcomes[opt]
		title := fmt.Sprintf("Option %d (move %d):", opt+1, o.Move)
		fmt.Fprintf(&sb, "\n%s\n%s\n", title, strings.Repeat("-", len(title)))
		fmt.Fprintf(&sb, "Average completed lines: %.2f ±%.2f (stdev %.2f)\n", o.Mean, o.HalfWidth(), o.Stdev())
		sb.WriteString("Distribution:\n")
		for _, lines := range o.Distribution.Keys() {
			fmt.Fprintf(&sb, "%d lines: %d games (%.1f%%)\n", lines, o.Distribution[lines],
				o.Distribution.Percent(lines, n))
		}
		moves := lo.Map(r.BestMoves(opt), func(m int, _ int) string { return fmt.Sprint(m) })
		fmt.Fprintf(&sb, "Best game moves: %s\n", strings.Join(moves, ", "))
		fmt.Fprintf(&sb, "Best game lines: %d\n", o.Best.Lines)
		if hist && len(o.Distribution) > 1 {
			vals := lo.Map(o.Trials, func(t Trial, _ int) float64 { return float64(t.Lines) })
			h := histogram.Hist(len(o.Distribution), vals)
			if err := histogram.Fprint(&sb, h, histogram.Linear(40)); err != nil {
				return err
			}
		}
	}

	sb.WriteString("\nDifference:\n----------\n")
	fmt.Fprintf(&sb, "Average difference: %.2f lines (±%.2f at %d%% confidence)\n",
		r.MeanDifference, r.DiffHalfWidth, ConfidenceLevel)
	_, err := io.WriteString(w, sb.String())
	return err
}
