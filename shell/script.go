package shell

import (
	"errors"
	"net/http"
	"time"

	"github.com/cjoudrey/gluahttp"
	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
	luajson "layeh.com/gopher-json"

	"github.com/domino14/bingo16/config"
	"github.com/domino14/bingo16/montecarlo"
)

func getShell(L *lua.LState) *ShellController {
	shell := L.GetGlobal("bingo_shell")
	ud, ok := shell.(*lua.LUserData)
	if !ok {
		panic("luserdata not right type")
	}
	sc, ok := ud.Value.(*ShellController)
	if !ok {
		panic("shellcontroller not right type")
	}
	return sc
}

func Add(L *lua.LState) int {
	cell := L.CheckInt(1)
	sc := getShell(L)
	if err := sc.place(cell); err != nil {
		log.Err(err).Msg("error-executing-add")
		L.RaiseError("add %d: %v", cell, err)
	}
	return 0
}

func Undo(L *lua.LState) int {
	sc := getShell(L)
	if _, err := sc.undo(&shellcmd{cmd: "undo"}); err != nil {
		log.Err(err).Msg("error-executing-undo")
		L.RaiseError("undo: %v", err)
	}
	return 0
}

func Reset(L *lua.LState) int {
	sc := getShell(L)
	sc.reset(&shellcmd{cmd: "reset"})
	return 0
}

func Show(L *lua.LState) int {
	sc := getShell(L)
	L.Push(lua.LString(sc.boardText(0)))
	return 1
}

// Best pushes the optimal move and its total.
func Best(L *lua.LState) int {
	sc := getShell(L)
	d, err := sc.solver.OptimalMove(sc.board)
	if err != nil {
		log.Err(err).Msg("error-executing-best")
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LNumber(d.Move))
	L.Push(lua.LNumber(d.Score.Total))
	return 2
}

func Eval(L *lua.LState) int {
	cell := L.CheckInt(1)
	sc := getShell(L)
	s, err := sc.solver.Evaluate(sc.board, cell)
	if err != nil {
		log.Err(err).Msg("error-executing-eval")
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LNumber(s.Total))
	return 1
}

// Sim pushes the mean lines of both options.
func Sim(L *lua.LState) int {
	sc := getShell(L)
	opts := montecarlo.Options{
		Initial:  sc.board,
		Moves:    [montecarlo.NumOptions]int{L.CheckInt(1), L.CheckInt(2)},
		NumGames: L.OptInt(3, sc.config.GetInt(config.ConfigNumGames)),
	}
	seed, err := sc.seedOption(&shellcmd{options: CmdOptions{}})
	if err != nil {
		L.RaiseError("sim: %v", err)
		return 0
	}
	opts.Seed = seed
	res, err := sc.runSim(opts, "")
	if err != nil {
		log.Err(err).Msg("error-executing-sim")
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LNumber(res.Outcomes[0].Mean))
	L.Push(lua.LNumber(res.Outcomes[1].Mean))
	return 2
}

func (sc *ShellController) script(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return nil, errors.New("need arguments for script")
	}
	return nil, sc.runScript(func(L *lua.LState) error {
		return L.DoFile(cmd.args[0])
	})
}

func (sc *ShellController) runScript(do func(L *lua.LState) error) error {
	L := lua.NewState()
	defer L.Close()
	// scripts can require("json") and require("http") to report results
	luajson.Preload(L)
	L.PreloadModule("http", gluahttp.NewHttpModule(&http.Client{Timeout: 30 * time.Second}).Loader)

	lsc := L.NewUserData()
	lsc.Value = sc

	L.SetGlobal("bingo_shell", lsc)
	L.SetGlobal("bingo_add", L.NewFunction(Add))
	L.SetGlobal("bingo_undo", L.NewFunction(Undo))
	L.SetGlobal("bingo_reset", L.NewFunction(Reset))
	L.SetGlobal("bingo_show", L.NewFunction(Show))
	L.SetGlobal("bingo_best", L.NewFunction(Best))
	L.SetGlobal("bingo_eval", L.NewFunction(Eval))
	L.SetGlobal("bingo_sim", L.NewFunction(Sim))

	if err := do(L); err != nil {
		log.Err(err).Msg("there was a error")
		return err
	}
	return nil
}
