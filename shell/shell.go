// Package shell is an interactive front end: it keeps one board, with an
// undo stack, and runs the solver and simulators against it.
package shell

import (
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/bingo16/board"
	"github.com/domino14/bingo16/config"
	"github.com/domino14/bingo16/rng"
	"github.com/domino14/bingo16/solver"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format for option")
)

type ShellController struct {
	l   *readline.Instance
	out io.Writer

	config *config.Config
	solver *solver.Solver
	// random replies in auto mode
	src rng.Source

	board board.Board
	// history holds every cell added, in order, for undo.
	history []int
	auto    bool
}

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func newController(cfg *config.Config, s *solver.Solver, out io.Writer) *ShellController {
	return &ShellController{config: cfg, solver: s, out: out, src: rng.New()}
}

// NewShellController sets up a controller reading from the terminal.
func NewShellController(cfg *config.Config, s *solver.Solver) *ShellController {
	sc := newController(cfg, s, os.Stdout)
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32mbingo16>\033[0m ",
		HistoryFile:     cfg.GetString(config.ConfigHistoryFile),
		AutoComplete:    NewShellCompleter(sc),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	sc.out = l.Stdout()
	return sc
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// extractFields splits a line into the command, its positional arguments
// and its -key value options.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := CmdOptions{}
	for i := 1; i < len(fields); i++ {
		f := fields[i]
		if !strings.HasPrefix(f, "-") || isNumber(f) {
			args = append(args, f)
			continue
		}
		if i == len(fields)-1 {
			return nil, errWrongOptionSyntax
		}
		key := strings.TrimPrefix(f, "-")
		options[key] = append(options[key], fields[i+1])
		i++
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

func isNumber(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

// Execute runs a single line, as given on the command line, and returns.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	if err := sc.standardModeSwitch(line, sig); err != nil {
		sc.showError(err)
	}
}

func (sc *ShellController) standardModeSwitch(line string, sig chan os.Signal) error {
	cmd, err := extractFields(line)
	if err != nil {
		if errors.Is(err, errNoData) {
			return nil
		}
		return err
	}
	var resp *Response
	switch cmd.cmd {
	case "exit", "quit":
		sig <- syscall.SIGINT
		return nil
	case "help":
		resp, err = sc.help(cmd)
	case "show":
		resp, err = sc.show(cmd)
	case "add":
		resp, err = sc.add(cmd)
	case "undo":
		resp, err = sc.undo(cmd)
	case "auto":
		resp, err = sc.setAuto(cmd)
	case "best":
		resp, err = sc.best(cmd)
	case "top":
		resp, err = sc.top(cmd)
	case "eval":
		resp, err = sc.eval(cmd)
	case "sim":
		resp, err = sc.sim(cmd)
	case "selfplay":
		resp, err = sc.selfplay(cmd)
	case "reset":
		resp, err = sc.reset(cmd)
	case "script":
		resp, err = sc.script(cmd)
	default:
		log.Debug().Msgf("you said: %v", strconv.Quote(line))
		return errors.New("unknown command " + cmd.cmd + "; try help")
	}
	if err != nil {
		return err
	}
	if resp != nil && resp.message != "" {
		sc.showMessage(resp.message)
	}
	return nil
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()
	sc.showMessage(sc.board.ToDisplayText(board.Empty))
	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if err := sc.standardModeSwitch(line, sig); err != nil {
			sc.showError(err)
		}
	}
	log.Debug().Msg("exiting readline loop")
}

// Cleanup releases the terminal.
func (sc *ShellController) Cleanup() {
	if sc.l != nil {
		sc.l.Close()
	}
}
