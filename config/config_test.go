package config

import (
	"testing"

	"github.com/matryer/is"
)

func TestDefaults(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	is.Equal(cfg.GetInt(ConfigNumGames), 1000)
	is.Equal(cfg.GetInt(ConfigScoringThreshold), 12)
	is.Equal(cfg.GetInt(ConfigScoringMaxCells), 16)
	is.Equal(cfg.GetFloat64(TierKey(ConfigScoringFiveLine, TierBase)), 100.0)
	is.Equal(cfg.GetFloat64(TierKey(ConfigScoringLate, BonusCompleteLine)), 100.0)
	is.Equal(cfg.GetFloat64(TierKey(ConfigScoringImmediate, BonusCompleteLine)), 50.0)
	is.Equal(cfg.GetBool(ConfigDebug), false)
}

func TestLoadArgs(t *testing.T) {
	is := is.New(t)
	t.Chdir(t.TempDir())
	cfg := DefaultConfig()
	rest, err := cfg.Load([]string{"--threads=3", "0,1,2", "--debug", "7", "--scoring.four-line.weight=2.5", "8"})
	is.NoErr(err)
	is.Equal(rest, []string{"0,1,2", "7", "8"})
	is.Equal(cfg.GetInt(ConfigThreads), 3)
	is.True(cfg.GetBool(ConfigDebug))
	is.Equal(cfg.GetFloat64(TierKey(ConfigScoringFourLine, TierWeight)), 2.5)
	// untouched keys keep their defaults
	is.Equal(cfg.GetInt(ConfigNumGames), 1000)
}

func TestLoadEnv(t *testing.T) {
	is := is.New(t)
	t.Chdir(t.TempDir())
	t.Setenv("BINGO16_NUM_GAMES", "50")
	t.Setenv("BINGO16_SCORING_THRESHOLD", "10")
	cfg := DefaultConfig()
	_, err := cfg.Load(nil)
	is.NoErr(err)
	is.Equal(cfg.GetInt(ConfigNumGames), 50)
	is.Equal(cfg.GetInt(ConfigScoringThreshold), 10)
}

func TestLoadMalformed(t *testing.T) {
	is := is.New(t)
	t.Chdir(t.TempDir())
	_, err := DefaultConfig().Load([]string{"--=3"})
	is.True(err != nil)
}
