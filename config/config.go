package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	ConfigDebug                   = "debug"
	ConfigThreads                 = "threads"
	ConfigSeed                    = "seed"
	ConfigNumGames                = "num-games"
	ConfigSimLogPath              = "sim-log-path"
	ConfigEvalCacheMemoryFraction = "eval-cache-memory-fraction"
	ConfigNatsURL                 = "nats-url"
	ConfigBotChannel              = "bot-channel"
	ConfigHistoryFile             = "history-file"
	// ConfigRemote makes cmd/evaluate ask a running bot over NATS.
	ConfigRemote = "remote"

	ConfigScoringThreshold = "scoring.threshold"
	ConfigScoringMaxCells  = "scoring.max-cells"

	// Per-tier keys live under these prefixes; see TierKey.
	ConfigScoringThreeLine = "scoring.three-line"
	ConfigScoringFourLine  = "scoring.four-line"
	ConfigScoringFiveLine  = "scoring.five-line"

	ConfigScoringImmediate = "scoring.immediate"
	ConfigScoringLate      = "scoring.late"

	TierBase          = "base"
	TierPowerBase     = "power-base"
	TierPowerExponent = "power-exponent"
	TierWeight        = "weight"

	BonusCompleteLine = "complete-line"
	BonusFourCell     = "four-cell"
	BonusThreeCell    = "three-cell"
)

const envPrefix = "BINGO16"

type Config struct {
	*viper.Viper
}

// TierKey joins a tier or bonus prefix with its field, e.g.
// TierKey(ConfigScoringFourLine, TierWeight) == "scoring.four-line.weight".
func TierKey(prefix, field string) string {
	return prefix + "." + field
}

// DefaultConfig returns a config holding only built-in defaults. It does not
// look at files or the environment.
func DefaultConfig() *Config {
	c := &Config{viper.New()}
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigThreads, 0)
	c.SetDefault(ConfigSeed, 0)
	c.SetDefault(ConfigNumGames, 1000)
	c.SetDefault(ConfigSimLogPath, "")
	c.SetDefault(ConfigEvalCacheMemoryFraction, 0.02)
	c.SetDefault(ConfigNatsURL, "nats://localhost:4222")
	c.SetDefault(ConfigBotChannel, "bingo16.evaluate")
	c.SetDefault(ConfigRemote, false)
	c.SetDefault(ConfigHistoryFile, filepath.Join(os.TempDir(), "bingo16-history"))

	c.SetDefault(ConfigScoringThreshold, 12)
	c.SetDefault(ConfigScoringMaxCells, 16)
	for prefix, base := range map[string]float64{
		ConfigScoringThreeLine: 0,
		ConfigScoringFourLine:  25,
		ConfigScoringFiveLine:  100,
	} {
		c.SetDefault(TierKey(prefix, TierBase), base)
		c.SetDefault(TierKey(prefix, TierPowerBase), 3.0)
		c.SetDefault(TierKey(prefix, TierPowerExponent), 16)
		c.SetDefault(TierKey(prefix, TierWeight), 1.0)
	}
	c.SetDefault(TierKey(ConfigScoringImmediate, BonusCompleteLine), 50.0)
	c.SetDefault(TierKey(ConfigScoringImmediate, BonusFourCell), 25.0)
	c.SetDefault(TierKey(ConfigScoringImmediate, BonusThreeCell), 10.0)
	c.SetDefault(TierKey(ConfigScoringLate, BonusCompleteLine), 100.0)
	c.SetDefault(TierKey(ConfigScoringLate, BonusFourCell), 25.0)
	c.SetDefault(TierKey(ConfigScoringLate, BonusThreeCell), 10.0)
	return c
}

// Load layers an optional bingo16.yaml, BINGO16_* environment variables and
// --key=value arguments on top of the receiver's current values, in that
// order of increasing precedence. It returns the arguments that are not
// settings.
func (c *Config) Load(args []string) ([]string, error) {
	c.SetConfigName("bingo16")
	c.SetConfigType("yaml")
	c.AddConfigPath(".")
	c.AddConfigPath("$HOME/.bingo16")
	if err := c.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		log.Debug().Str("file", c.ConfigFileUsed()).Msg("read-config-file")
	}

	c.SetEnvPrefix(envPrefix)
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	c.AutomaticEnv()

	var rest []string
	for _, arg := range args {
		if !strings.HasPrefix(arg, "--") {
			rest = append(rest, arg)
			continue
		}
		kv := strings.TrimPrefix(arg, "--")
		key, val, found := strings.Cut(kv, "=")
		if key == "" {
			return nil, fmt.Errorf("malformed setting %q", arg)
		}
		if !found {
			// a bare --flag turns a boolean on
			val = "true"
		}
		c.Set(key, val)
	}
	return rest, nil
}

// SanitizedSettings returns the settings safe to log.
func (c *Config) SanitizedSettings() map[string]any {
	all := c.AllSettings()
	delete(all, "nats-url")
	return all
}
