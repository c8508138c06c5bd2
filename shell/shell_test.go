package shell

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	lua "github.com/yuin/gopher-lua"

	"github.com/domino14/bingo16/board"
	"github.com/domino14/bingo16/config"
	"github.com/domino14/bingo16/rng"
	"github.com/domino14/bingo16/scoring"
	"github.com/domino14/bingo16/solver"
)

func TestExtractFields(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		line   string
		expCmd *shellcmd
		expErr error
	}
	cases := []testdata{
		{"", nil, errNoData},
		{"sim 12 0 -log /path/to/log.txt",
			&shellcmd{"sim", []string{"12", "0"}, CmdOptions{"log": {"/path/to/log.txt"}}},
			nil},
		{"add 3",
			&shellcmd{"add", []string{"3"}, CmdOptions{}},
			nil},
		{"sim 12 0 500 random -threads 4 -seed 9 ",
			&shellcmd{"sim",
				[]string{"12", "0", "500", "random"},
				CmdOptions{"threads": {"4"}, "seed": {"9"}}},
			nil,
		},
		{"add -1",
			&shellcmd{"add", []string{"-1"}, CmdOptions{}},
			nil},
		{"sim 12 0 -threads",
			nil, errWrongOptionSyntax},
	}
	for _, t := range cases {
		cmd, err := extractFields(t.line)
		is.Equal(cmd, t.expCmd)
		is.Equal(err, t.expErr)
	}
}

func newTestShell(t *testing.T) (*ShellController, *bytes.Buffer) {
	t.Helper()
	e, err := scoring.NewEngine(scoring.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	out := &bytes.Buffer{}
	sc := newController(config.DefaultConfig(), solver.New(e), out)
	sc.src = rng.NewFixed()
	return sc, out
}

func TestAddUndoBest(t *testing.T) {
	is := is.New(t)
	sc, out := newTestShell(t)
	sig := make(chan os.Signal, 1)

	sc.Execute(sig, "add 0 1")
	is.Equal(sc.board, board.MustFromCells(0, 1))
	is.Equal(sc.history, []int{0, 1})

	out.Reset()
	sc.Execute(sig, "best")
	is.True(strings.HasPrefix(out.String(), "best move: 12, score 9093"))

	sc.Execute(sig, "undo")
	is.Equal(sc.board, board.MustFromCells(0))
	is.Equal(sc.history, []int{0})

	sc.Execute(sig, "reset")
	is.Equal(sc.board, board.Empty)
	is.Equal(len(sc.history), 0)
}

func TestCommandErrors(t *testing.T) {
	is := is.New(t)
	sc, out := newTestShell(t)
	sig := make(chan os.Signal, 1)

	for _, line := range []string{"add 25", "add x", "undo", "frobnicate", "sim 3"} {
		out.Reset()
		sc.Execute(sig, line)
		is.True(strings.HasPrefix(out.String(), "Error: "))
	}

	sc.Execute(sig, "add 4")
	out.Reset()
	sc.Execute(sig, "add 4")
	is.True(strings.Contains(out.String(), board.ErrCellAlreadySelected.Error()))
	is.Equal(sc.history, []int{4})

	for _, line := range []string{"add 3 5 99", "add 3 5 3", "add 3 5 4"} {
		out.Reset()
		sc.Execute(sig, line)
		is.True(strings.HasPrefix(out.String(), "Error: "))
		is.Equal(sc.board, board.MustFromCells(4))
		is.Equal(sc.history, []int{4})
	}
}

func TestAddOverBudget(t *testing.T) {
	is := is.New(t)
	sc, out := newTestShell(t)
	sig := make(chan os.Signal, 1)

	sc.Execute(sig, "add 0 1 2 3 4 5 6 7 8 9 10 11 12 13")
	is.Equal(sc.board.Count(), 14)
	out.Reset()
	sc.Execute(sig, "add 14 15 16")
	is.True(strings.Contains(out.String(), board.ErrBoardFull.Error()))
	is.Equal(sc.board.Count(), 14)
	is.Equal(len(sc.history), 14)

	sc.Execute(sig, "add 14 15")
	is.Equal(sc.board.Count(), 16)
}

func TestAutoMode(t *testing.T) {
	is := is.New(t)
	sc, out := newTestShell(t)
	sc.src = rng.NewFixed(3)
	sig := make(chan os.Signal, 1)

	sc.Execute(sig, "auto on")
	is.True(sc.auto)
	sc.Execute(sig, "add 0")
	// free cells are 1..24, index 3 is cell 4.
	is.Equal(sc.history, []int{0, 4})
	is.True(strings.Contains(out.String(), "random reply: 4"))

	sc.Execute(sig, "auto off")
	sc.Execute(sig, "add 12")
	is.Equal(sc.history, []int{0, 4, 12})
}

func TestTopAndEval(t *testing.T) {
	is := is.New(t)
	sc, out := newTestShell(t)
	sig := make(chan os.Signal, 1)

	sc.Execute(sig, "top 3")
	lines := strings.Split(out.String(), "\n")
	is.True(len(lines) >= 4)
	is.True(strings.HasPrefix(lines[1], "1   12"))

	out.Reset()
	sc.Execute(sig, "eval 12")
	is.Equal(out.String(), "12: 16348 (3:7172 4:8368 5:808)\n")
}

func TestSim(t *testing.T) {
	is := is.New(t)
	sc, out := newTestShell(t)
	sig := make(chan os.Signal, 1)
	logPath := filepath.Join(t.TempDir(), "sim.log")

	sc.Execute(sig, "sim 12 0 20 -seed 7 -threads 2 -log "+logPath)
	is.True(strings.Contains(out.String(), "Simulation Results (20 games per option)"))
	is.True(strings.Contains(out.String(), "Option 1 (move 12):"))

	dat, err := os.ReadFile(logPath)
	is.NoErr(err)
	is.Equal(strings.Count(string(dat), "\n"), 40)
}

func TestSelfPlay(t *testing.T) {
	is := is.New(t)
	sc, out := newTestShell(t)
	sig := make(chan os.Signal, 1)

	sc.Execute(sig, "selfplay 5 -seed 3")
	is.True(strings.Contains(out.String(), "Self-play Results (5 games, solver vs random)"))
}

func TestHelp(t *testing.T) {
	is := is.New(t)
	sc, out := newTestShell(t)
	sig := make(chan os.Signal, 1)

	sc.Execute(sig, "help")
	is.True(strings.HasPrefix(out.String(), "Commands:"))
	out.Reset()
	sc.Execute(sig, "help sim")
	is.True(strings.HasPrefix(out.String(), "sim <opt1> <opt2>"))
	out.Reset()
	sc.Execute(sig, "help nothing")
	is.Equal(out.String(), "There is no help text for the topic nothing\n")
}

func TestScript(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestShell(t)

	var move, total lua.LValue
	err := sc.runScript(func(L *lua.LState) error {
		if err := L.DoString(`
bingo_add(0)
bingo_add(1)
move, total = bingo_best()
`); err != nil {
			return err
		}
		move = L.GetGlobal("move")
		total = L.GetGlobal("total")
		return nil
	})
	is.NoErr(err)
	is.Equal(move, lua.LNumber(12))
	is.Equal(total, lua.LNumber(9093))
	is.Equal(sc.board, board.MustFromCells(0, 1))

	err = sc.runScript(func(L *lua.LState) error {
		return L.DoString(`bingo_add(0)`)
	})
	is.True(err != nil)
}

func TestScriptFile(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestShell(t)
	sig := make(chan os.Signal, 1)
	path := filepath.Join(t.TempDir(), "moves.lua")
	is.NoErr(os.WriteFile(path, []byte("bingo_add(12)\nbingo_add(6)\nbingo_undo()\n"), 0o644))

	sc.Execute(sig, "script "+path)
	is.Equal(sc.history, []int{12})
}

func TestCompleter(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestShell(t)
	c := NewShellCompleter(sc)

	matches, n := c.Do([]rune("sel"), 3)
	is.Equal(n, 3)
	is.Equal(matches, [][]rune{[]rune("fplay")})

	matches, _ = c.Do([]rune("sim -th"), 7)
	is.Equal(matches, [][]rune{[]rune("reads")})

	sc.board = board.MustFromCells(20, 21)
	matches, _ = c.Do([]rune("add 2"), 5)
	is.Equal(matches, [][]rune{[]rune(""), []rune("2"), []rune("3"), []rune("4")})
}

func TestScriptJSON(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestShell(t)

	var encoded lua.LValue
	err := sc.runScript(func(L *lua.LState) error {
		if err := L.DoString(`
local json = require("json")
bingo_add(0)
bingo_add(1)
local move = bingo_best()
encoded = json.encode({move = move})
`); err != nil {
			return err
		}
		encoded = L.GetGlobal("encoded")
		return nil
	})
	is.NoErr(err)
	is.Equal(encoded, lua.LString(`{"move":12}`))
}
