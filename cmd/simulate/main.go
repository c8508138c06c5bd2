// Command simulate compares two moves on a board by playing many games to
// the end from each.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/bingo16/board"
	"github.com/domino14/bingo16/bridge"
	"github.com/domino14/bingo16/config"
	"github.com/domino14/bingo16/montecarlo"
	"github.com/domino14/bingo16/rng"
	"github.com/domino14/bingo16/solver"
)

const usageText = `Usage: simulate [flags] <initial_board> <option1> <option2> [num_games] [random]

  initial_board  comma-separated selected cells (0-24), or "empty"
  option1        first move to compare
  option2        second move to compare
  num_games      games per option (default %d)
  random         pick every later move at random instead of optimally

Example: simulate 0,6,18 12 24 500

Flags:
`

// errUsage is returned when the positional arguments are malformed.
var errUsage = errors.New("bad arguments")

type simArgs struct {
	initial  board.Board
	moves    [montecarlo.NumOptions]int
	numGames int
	strategy montecarlo.Strategy
}

func parseMove(s string, name string, initial board.Board) (int, error) {
	m, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a cell index", board.ErrInvalidCellIndex, name, s)
	}
	if err := board.CheckCell(m); err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if initial.Has(m) {
		return 0, fmt.Errorf("%s: %w: %d is already on the board", name, board.ErrCellAlreadySelected, m)
	}
	return m, nil
}

func parseArgs(args []string, defaultGames int) (*simArgs, error) {
	if len(args) < 3 {
		return nil, fmt.Errorf("%w: need an initial board and two options", errUsage)
	}
	if len(args) > 5 {
		return nil, fmt.Errorf("%w: too many arguments", errUsage)
	}
	initial, err := bridge.ParseBoard(args[0])
	if err != nil {
		return nil, fmt.Errorf("initial board: %w", err)
	}
	sa := &simArgs{initial: initial, numGames: defaultGames, strategy: montecarlo.OptimalVsRandom}
	for i, name := range []string{"option1", "option2"} {
		if sa.moves[i], err = parseMove(args[1+i], name, initial); err != nil {
			return nil, err
		}
	}
	if sa.moves[0] == sa.moves[1] {
		return nil, fmt.Errorf("%w: the two options must differ", board.ErrInvalidConfiguration)
	}
	for _, a := range args[3:] {
		if a == "random" {
			sa.strategy = montecarlo.RandomOnly
			continue
		}
		n, err := strconv.Atoi(a)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%w: num_games must be a positive integer, got %q",
				board.ErrInvalidConfiguration, a)
		}
		sa.numGames = n
	}
	return sa, nil
}

func setupLogging(cfg *config.Config) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("%s", i)
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}
	level := zerolog.InfoLevel
	if cfg.GetBool(config.ConfigDebug) {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(output).Level(level).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
}

// run is main without the exit. It returns the process exit status.
func run(ctx context.Context, cfg *config.Config, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	threads := fs.Int("threads", cfg.GetInt(config.ConfigThreads), "worker goroutines (0 = all CPUs)")
	seed := fs.Int64("seed", cfg.GetInt64(config.ConfigSeed), "random seed; 0 draws a fresh one")
	logPath := fs.String("log", cfg.GetString(config.ConfigSimLogPath), "write one record per game to this file")
	logFormat := fs.String("log-format", "json", "log record format: json or yaml")
	hist := fs.Bool("hist", false, "print a histogram of completed lines per option")
	fs.Usage = func() {
		fmt.Fprintf(stderr, usageText, cfg.GetInt(config.ConfigNumGames))
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 1
	}
	fail := func(err error) int {
		fs.Usage()
		fmt.Fprintf(stderr, "\nError: %v\n", err)
		return 1
	}

	sa, err := parseArgs(fs.Args(), cfg.GetInt(config.ConfigNumGames))
	if err != nil {
		return fail(err)
	}
	var format montecarlo.LogFormat
	switch *logFormat {
	case "json":
		format = montecarlo.LogJSON
	case "yaml":
		format = montecarlo.LogYAML
	default:
		return fail(fmt.Errorf("%w: unknown log format %q", board.ErrInvalidConfiguration, *logFormat))
	}

	s, err := solver.FromConfig(cfg)
	if err != nil {
		return fail(err)
	}
	opts := montecarlo.Options{
		Initial:  sa.initial,
		Moves:    sa.moves,
		NumGames: sa.numGames,
		Strategy: sa.strategy,
		Threads:  *threads,
	}
	if *seed != 0 {
		sd := rng.SeedFromInt(*seed)
		opts.Seed = &sd
	}
	sim, err := montecarlo.NewSimulator(s, opts)
	if err != nil {
		return fail(err)
	}
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			return fail(err)
		}
		defer f.Close()
		sim.SetLogStream(f, format)
	}

	fmt.Fprintf(stdout, "Simulating %d games per option from board [%s]: %d vs %d\n",
		sa.numGames, sa.initial, sa.moves[0], sa.moves[1])
	start := time.Now()
	res, err := sim.Simulate(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	log.Debug().Dur("elapsed", time.Since(start)).Msg("simulation-done")
	if err := res.Report(stdout, *hist); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	cfg := config.DefaultConfig()
	args, err := cfg.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	setupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	code := run(log.Logger.WithContext(ctx), cfg, args, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
