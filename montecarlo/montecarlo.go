// Package montecarlo compares two opening moves by playing many games to
// the end from each and counting the lines completed.
package montecarlo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/domino14/bingo16/board"
	"github.com/domino14/bingo16/rng"
	"github.com/domino14/bingo16/solver"
)

// NumOptions is the number of opening moves compared per run.
const NumOptions = 2

// Options configure one comparison run.
type Options struct {
	Initial  board.Board
	Moves    [NumOptions]int
	NumGames int
	Strategy Strategy
	// Threads defaults to the number of CPUs.
	Threads int
	// Seed makes runs reproducible. When nil a random seed is drawn.
	Seed *rng.Seed
}

// LogFormat is the encoding of the trial log stream.
type LogFormat int

const (
	LogJSON LogFormat = iota
	LogYAML
)

// LogTrial is one finished game, written to the log stream.
type LogTrial struct {
	Option int   `json:"option" yaml:"option"`
	Move   int   `json:"move" yaml:"move"`
	Trial  int   `json:"trial" yaml:"trial"`
	Moves  []int `json:"moves" yaml:"moves,flow"`
	Lines  int   `json:"lines" yaml:"lines"`
}

// Simulator runs the trials for both options. A Simulator may be run more
// than once; every run is independent.
type Simulator struct {
	player    player
	opts      Options
	logStream io.Writer
	logFormat LogFormat
}

// NewSimulator validates opts against s. Both moves must be free cells of
// the initial board, distinct, and there must be room on the board for
// them.
func NewSimulator(s *solver.Solver, opts Options) (*Simulator, error) {
	for _, m := range opts.Moves {
		if err := board.CheckCell(m); err != nil {
			return nil, err
		}
		if opts.Initial.Has(m) {
			return nil, fmt.Errorf("%w: option %d is already on the board", board.ErrCellAlreadySelected, m)
		}
	}
	if opts.Moves[0] == opts.Moves[1] {
		return nil, fmt.Errorf("%w: both options are %d", board.ErrInvalidConfiguration, opts.Moves[0])
	}
	if opts.NumGames <= 0 {
		return nil, fmt.Errorf("%w: number of games must be positive, got %d", board.ErrInvalidConfiguration, opts.NumGames)
	}
	if s.Full(opts.Initial) {
		return nil, fmt.Errorf("initial board %v: %w", opts.Initial, board.ErrBoardFull)
	}
	if opts.Threads <= 0 {
		opts.Threads = runtime.NumCPU()
	}
	return &Simulator{player: player{solver: s, strategy: opts.Strategy}, opts: opts}, nil
}

// SetLogStream makes every finished trial get written to l.
func (s *Simulator) SetLogStream(l io.Writer, format LogFormat) {
	s.logStream = l
	s.logFormat = format
}

func (s *Simulator) Options() Options {
	return s.opts
}

func (s *Simulator) encodeTrial(t LogTrial) ([]byte, error) {
	if s.logFormat == LogYAML {
		out, err := yaml.Marshal([]LogTrial{t})
		return out, err
	}
	out, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

// Simulate plays NumGames games for each option. Trials run on Threads
// workers, but the result does not depend on scheduling: each trial has its
// own random stream and results are combined in trial order.
func (s *Simulator) Simulate(ctx context.Context) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	seed := rng.RandomSeed()
	if s.opts.Seed != nil {
		seed = *s.opts.Seed
	}
	n := s.opts.NumGames
	var trials [NumOptions][]Trial
	for i := range trials {
		trials[i] = make([]Trial, n)
	}

	logChan := make(chan []byte)
	done := make(chan struct{})
	writer := errgroup.Group{}
	if s.logStream != nil {
		writer.Go(func() error {
			for {
				select {
				case bts := <-logChan:
					if _, err := s.logStream.Write(bts); err != nil {
						logger.Err(err).Msg("sim-log-write")
					}
				case <-done:
					return nil
				}
			}
		})
	}

	tstart := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Threads)
	logger.Debug().Int("threads", s.opts.Threads).Int("games", n).
		Str("strategy", s.opts.Strategy.String()).Msg("sim-starting")

launch:
	for opt := range NumOptions {
		for i := range n {
			if gctx.Err() != nil {
				break launch
			}
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				src := rng.NewSeeded(seed.Derive(uint64(opt), uint64(i)))
				moves, final, err := s.player.playout(s.opts.Initial, s.opts.Moves[opt], src)
				if err != nil {
					return fmt.Errorf("option %d trial %d: %w", opt, i, err)
				}
				t := Trial{Index: i, Moves: moves, Final: final, Lines: board.CompletedLines(final)}
				trials[opt][i] = t
				if s.logStream != nil {
					bts, err := s.encodeTrial(LogTrial{Option: opt + 1, Move: s.opts.Moves[opt],
						Trial: i, Moves: moves, Lines: t.Lines})
					if err != nil {
						return err
					}
					select {
					case logChan <- bts:
					case <-gctx.Done():
						return gctx.Err()
					}
				}
				return nil
			})
		}
	}
	err := g.Wait()
	if err == nil {
		// a cancellation that arrived after the last launch
		err = ctx.Err()
	}

	if s.logStream != nil {
		close(done)
		writer.Wait()
	}
	logger.Info().Float64("seconds", time.Since(tstart).Seconds()).Int("games", n*NumOptions).
		Msg("sim-ended")
	if err != nil {
		return nil, err
	}

	res := &Result{Config: s.opts, Seed: seed}
	for opt := range NumOptions {
		res.Outcomes[opt] = aggregate(s.opts.Moves[opt], trials[opt])
	}
	res.finish()
	return res, nil
}
