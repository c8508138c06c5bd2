package solver

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash"

	"github.com/domino14/bingo16/cache"
	"github.com/domino14/bingo16/config"
	"github.com/domino14/bingo16/scoring"
)

// FromConfig returns a solver for the scoring parameters in cfg. Solvers
// are cached per parameter set, so repeated calls with the same settings
// share one engine and one evaluation cache.
func FromConfig(cfg *config.Config) (*Solver, error) {
	params, err := scoring.ParamsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	fingerprint, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("solver:%016x", xxhash.Sum64(fingerprint))
	obj, err := cache.Load(cfg, key, func(cfg *config.Config, _ string) (any, error) {
		engine, err := scoring.NewEngine(params)
		if err != nil {
			return nil, err
		}
		var opts []Option
		if frac := cfg.GetFloat64(config.ConfigEvalCacheMemoryFraction); frac > 0 {
			opts = append(opts, WithCache(NewEvalCache(frac)))
		}
		return New(engine, opts...), nil
	})
	if err != nil {
		return nil, err
	}
	s, ok := obj.(*Solver)
	if !ok {
		return nil, fmt.Errorf("cached object is %T, not a solver", obj)
	}
	return s, nil
}
