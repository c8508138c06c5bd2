package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/bingo16/board"
	"github.com/domino14/bingo16/bridge"
	"github.com/domino14/bingo16/config"
)

func TestRun(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigEvalCacheMemoryFraction, 0)

	var out bytes.Buffer
	is.NoErr(run(cfg, []string{"0,1,2,3,4", "8,12,16,17,20"}, &out))
	ev := bridge.Evaluation{}
	is.NoErr(json.Unmarshal(out.Bytes(), &ev))
	is.Equal(len(ev), 15)
	is.Equal(ev["18"].Total, 832.0)
	is.Equal(ev["6"].Total, 826.0)

	out.Reset()
	is.NoErr(run(cfg, nil, &out))
	ev = bridge.Evaluation{}
	is.NoErr(json.Unmarshal(out.Bytes(), &ev))
	is.Equal(len(ev), 25)
	is.Equal(ev["12"].Pattern, "Center opening")

	err := run(cfg, []string{"0,99"}, &out)
	is.True(errors.Is(err, board.ErrInvalidCellIndex))
}
