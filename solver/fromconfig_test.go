package solver

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/bingo16/board"
	"github.com/domino14/bingo16/config"
)

func TestFromConfig(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigEvalCacheMemoryFraction, 0)
	a, err := FromConfig(cfg)
	is.NoErr(err)
	b, err := FromConfig(cfg)
	is.NoErr(err)
	is.True(a == b)
	is.True(a.Cache() == nil)

	cfg2 := config.DefaultConfig()
	cfg2.Set(config.ConfigEvalCacheMemoryFraction, 0)
	cfg2.Set(config.TierKey(config.ConfigScoringFiveLine, config.TierWeight), 2.0)
	c, err := FromConfig(cfg2)
	is.NoErr(err)
	is.True(a != c)
	is.Equal(c.Engine().Params().FiveLine.Weight, 2.0)

	bad := config.DefaultConfig()
	bad.Set(config.ConfigScoringMaxCells, 40)
	_, err = FromConfig(bad)
	is.True(errors.Is(err, board.ErrInvalidConfiguration))
}
