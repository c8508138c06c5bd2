package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/bingo16/board"
	"github.com/domino14/bingo16/config"
	"github.com/domino14/bingo16/montecarlo"
	"github.com/domino14/bingo16/rng"
)

const defaultTopMoves = 5

type Response struct {
	message string
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func msg(message string) *Response {
	return &Response{message: message}
}

func parseCell(s string) (int, error) {
	c, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a cell index", board.ErrInvalidCellIndex, s)
	}
	return c, board.CheckCell(c)
}

func (sc *ShellController) boardText(mark board.Board) string {
	return fmt.Sprintf("%s%d/%d selected, %d lines complete",
		sc.board.ToDisplayText(mark), sc.board.Count(), sc.solver.Engine().Params().MaxCells,
		board.CompletedLines(sc.board))
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	return msg(sc.boardText(board.Empty)), nil
}

// place adds a cell to the board and records it for undo.
func (sc *ShellController) place(cell int) error {
	if sc.board.Has(cell) {
		return fmt.Errorf("%w: %d", board.ErrCellAlreadySelected, cell)
	}
	if sc.solver.Full(sc.board) {
		return board.ErrBoardFull
	}
	sc.board = sc.board.Add(cell)
	sc.history = append(sc.history, cell)
	return nil
}

func (sc *ShellController) add(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: add <cell>")
	}
	// check every cell first so a bad argument leaves the board alone
	var added board.Board
	cells := make([]int, 0, len(cmd.args))
	for _, arg := range cmd.args {
		cell, err := parseCell(arg)
		if err != nil {
			return nil, err
		}
		if sc.board.Has(cell) || added.Has(cell) {
			return nil, fmt.Errorf("%w: %d", board.ErrCellAlreadySelected, cell)
		}
		added = added.Add(cell)
		cells = append(cells, cell)
	}
	if sc.board.Count()+len(cells) > sc.solver.Engine().Params().MaxCells {
		return nil, board.ErrBoardFull
	}
	for _, cell := range cells {
		if err := sc.place(cell); err != nil {
			return nil, err
		}
	}
	reply := ""
	if sc.auto && !sc.solver.Full(sc.board) {
		free := sc.board.Unselected()
		cell := free[sc.src.Intn(len(free))]
		if err := sc.place(cell); err != nil {
			return nil, err
		}
		added = added.Add(cell)
		reply = fmt.Sprintf("random reply: %d\n", cell)
	}
	return msg(reply + sc.boardText(added)), nil
}

func (sc *ShellController) undo(cmd *shellcmd) (*Response, error) {
	if len(sc.history) == 0 {
		return nil, errors.New("nothing to undo")
	}
	last := sc.history[len(sc.history)-1]
	sc.history = sc.history[:len(sc.history)-1]
	sc.board = board.Empty
	for _, c := range sc.history {
		sc.board = sc.board.Add(c)
	}
	return msg(fmt.Sprintf("removed %d\n%s", last, sc.boardText(board.Empty))), nil
}

func (sc *ShellController) setAuto(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(fmt.Sprintf("auto is %v", onOff(sc.auto))), nil
	}
	switch strings.ToLower(cmd.args[0]) {
	case "on", "true":
		sc.auto = true
	case "off", "false":
		sc.auto = false
	default:
		return nil, errors.New("usage: auto on|off")
	}
	return msg("auto " + onOff(sc.auto)), nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (sc *ShellController) best(cmd *shellcmd) (*Response, error) {
	d, err := sc.solver.OptimalMove(sc.board)
	if err != nil {
		return nil, err
	}
	s := fmt.Sprintf("best move: %d, score %v", d.Move, d.Score)
	if d.Pattern != "" {
		s += fmt.Sprintf(" [%s]", d.Pattern)
	}
	return msg(s + "\n" + sc.board.ToDisplayText(board.Empty.Add(d.Move))), nil
}

func (sc *ShellController) top(cmd *shellcmd) (*Response, error) {
	n := defaultTopMoves
	if len(cmd.args) > 0 {
		var err error
		if n, err = strconv.Atoi(cmd.args[0]); err != nil {
			return nil, err
		}
	}
	moves, err := sc.solver.TopMoves(sc.board, n)
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-4s%-6s%12s%12s%12s%12s\n", "#", "Cell", "3-line", "4-line", "5-line", "Total")
	for i, ms := range moves {
		fmt.Fprintf(&sb, "%-4d%-6d%12.0f%12.0f%12.0f%12.0f\n", i+1, ms.Move,
			ms.Score.ThreeLine, ms.Score.FourLine, ms.Score.FiveLine, ms.Score.Total)
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

func (sc *ShellController) eval(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return sc.top(&shellcmd{cmd: "top", args: []string{strconv.Itoa(board.NumCells)}})
	}
	cell, err := parseCell(cmd.args[0])
	if err != nil {
		return nil, err
	}
	s, err := sc.solver.Evaluate(sc.board, cell)
	if err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("%d: %v", cell, s)), nil
}

func (sc *ShellController) seedOption(cmd *shellcmd) (*rng.Seed, error) {
	v := cmd.options.String("seed")
	if v == "" {
		v = sc.config.GetString(config.ConfigSeed)
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	s := rng.SeedFromInt(n)
	return &s, nil
}

// sim compares two moves from the current board.
// usage: sim <opt1> <opt2> [games] [random] [-threads n] [-seed n] [-log file]
func (sc *ShellController) sim(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) < 2 {
		return nil, errors.New("usage: sim <opt1> <opt2> [games] [random]")
	}
	var moves [montecarlo.NumOptions]int
	for i := range moves {
		c, err := parseCell(cmd.args[i])
		if err != nil {
			return nil, err
		}
		moves[i] = c
	}
	games := sc.config.GetInt(config.ConfigNumGames)
	strategy := montecarlo.OptimalVsRandom
	for _, a := range cmd.args[2:] {
		if a == "random" {
			strategy = montecarlo.RandomOnly
			continue
		}
		n, err := strconv.Atoi(a)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%w: bad number of games %q", board.ErrInvalidConfiguration, a)
		}
		games = n
	}
	threads, err := cmd.options.IntDefault("threads", sc.config.GetInt(config.ConfigThreads))
	if err != nil {
		return nil, err
	}
	seed, err := sc.seedOption(cmd)
	if err != nil {
		return nil, err
	}
	res, err := sc.runSim(montecarlo.Options{
		Initial:  sc.board,
		Moves:    moves,
		NumGames: games,
		Strategy: strategy,
		Threads:  threads,
		Seed:     seed,
	}, cmd.options.String("log"))
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	if err := res.Report(&sb, false); err != nil {
		return nil, err
	}
	return msg(sb.String()), nil
}

func (sc *ShellController) runSim(opts montecarlo.Options, logPath string) (*montecarlo.Result, error) {
	sim, err := montecarlo.NewSimulator(sc.solver, opts)
	if err != nil {
		return nil, err
	}
	if logPath != "" {
		f, err := os.Create(logPath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		sim.SetLogStream(f, montecarlo.LogJSON)
	}
	return sim.Simulate(log.Logger.WithContext(context.Background()))
}

// selfplay plays the solver against a random opponent from the current
// board.
func (sc *ShellController) selfplay(cmd *shellcmd) (*Response, error) {
	games := 100
	if len(cmd.args) > 0 {
		n, err := strconv.Atoi(cmd.args[0])
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%w: bad number of games %q", board.ErrInvalidConfiguration, cmd.args[0])
		}
		games = n
	}
	threads, err := cmd.options.IntDefault("threads", sc.config.GetInt(config.ConfigThreads))
	if err != nil {
		return nil, err
	}
	seed, err := sc.seedOption(cmd)
	if err != nil {
		return nil, err
	}
	res, err := montecarlo.SelfPlay(log.Logger.WithContext(context.Background()), sc.solver,
		montecarlo.SelfPlayOptions{Initial: sc.board, NumGames: games, Threads: threads, Seed: seed})
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	if err := res.Report(&sb); err != nil {
		return nil, err
	}
	return msg(sb.String()), nil
}

func (sc *ShellController) reset(cmd *shellcmd) (*Response, error) {
	sc.board = board.Empty
	sc.history = nil
	return msg(sc.boardText(board.Empty)), nil
}
