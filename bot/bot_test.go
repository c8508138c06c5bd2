package bot

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/bingo16/config"
	"github.com/domino14/bingo16/scoring"
	"github.com/domino14/bingo16/solver"
)

func newBot(t *testing.T) *Bot {
	t.Helper()
	e, err := scoring.NewEngine(scoring.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	return NewBot(config.DefaultConfig(), solver.New(e))
}

func TestHandle(t *testing.T) {
	is := is.New(t)
	b := newBot(t)
	out := b.Handle([]byte(`{"board":"0,1,2,3,4,8,12,16,17,20"}`))
	resp := Response{}
	is.NoErr(json.Unmarshal(out, &resp))
	is.Equal(resp.Error, "")
	is.Equal(resp.Board, "0,1,2,3,4,8,12,16,17,20")
	is.Equal(len(resp.Evaluation), 15)
	is.Equal(resp.Best.Move, 18)
	is.Equal(resp.Best.Pattern, "Row completion potential case")
	is.Equal(resp.Evaluation["18"].Total, 832.0)
}

func TestHandleErrors(t *testing.T) {
	is := is.New(t)
	b := newBot(t)
	cases := []struct {
		in   string
		want string
	}{
		{`not json`, "could not decode request"},
		{`{"board":"0,99"}`, "bad board"},
	}
	for _, c := range cases {
		resp := Response{}
		is.NoErr(json.Unmarshal(b.Handle([]byte(c.in)), &resp))
		is.True(strings.HasPrefix(resp.Error, c.want))
		is.True(resp.Best == nil)
	}
}

func TestEvaluateEmpty(t *testing.T) {
	is := is.New(t)
	resp := newBot(t).Evaluate("empty")
	is.Equal(resp.Error, "")
	is.Equal(resp.Board, "")
	is.Equal(resp.Best.Move, 12)
	is.Equal(len(resp.Evaluation), 25)
}

func TestEvaluateSpentBudget(t *testing.T) {
	is := is.New(t)
	resp := newBot(t).Evaluate("0,1,2,3,4,5,6,7,8,9,10,11,12,13,14,15")
	is.Equal(resp.Error, "")
	is.True(resp.Best == nil)
	is.Equal(len(resp.Evaluation), 9)

	out, err := json.Marshal(resp)
	is.NoErr(err)
	is.True(!strings.Contains(string(out), `"best"`))
}
