package scoring

import (
	"fmt"

	"github.com/domino14/bingo16/board"
	"github.com/domino14/bingo16/config"
)

// Tier holds the weights for one combination size.
type Tier struct {
	// Base is added once per reachable combination.
	Base float64 `json:"base" yaml:"base"`
	// A combination that needs n more cells on a board of s cells is worth
	// PowerBase^(PowerExponent - (n+s)).
	PowerBase     float64 `json:"power_base" yaml:"power-base"`
	PowerExponent int     `json:"power_exponent" yaml:"power-exponent"`
	Weight        float64 `json:"weight" yaml:"weight"`
}

// Bonuses are awarded per line through the move, by how many of the line's
// cells are selected once the move is made.
type Bonuses struct {
	CompleteLine float64 `json:"complete_line" yaml:"complete-line"`
	FourCell     float64 `json:"four_cell" yaml:"four-cell"`
	ThreeCell    float64 `json:"three_cell" yaml:"three-cell"`
}

// Params are the heuristic's constants.
type Params struct {
	// Boards with more than Threshold cells after the move are scored with
	// the Late bonuses only.
	Threshold int `json:"threshold" yaml:"threshold"`
	MaxCells  int `json:"max_cells" yaml:"max-cells"`

	ThreeLine Tier `json:"three_line" yaml:"three-line"`
	FourLine  Tier `json:"four_line" yaml:"four-line"`
	FiveLine  Tier `json:"five_line" yaml:"five-line"`

	Immediate Bonuses `json:"immediate" yaml:"immediate"`
	Late      Bonuses `json:"late" yaml:"late"`
}

func DefaultParams() Params {
	tier := func(base float64) Tier {
		return Tier{Base: base, PowerBase: 3, PowerExponent: 16, Weight: 1}
	}
	return Params{
		Threshold: 12,
		MaxCells:  board.MaxSelections,
		ThreeLine: tier(0),
		FourLine:  tier(25),
		FiveLine:  tier(100),
		Immediate: Bonuses{CompleteLine: 50, FourCell: 25, ThreeCell: 10},
		Late:      Bonuses{CompleteLine: 100, FourCell: 25, ThreeCell: 10},
	}
}

// ParamsFromConfig reads the scoring.* settings and validates them.
func ParamsFromConfig(cfg *config.Config) (Params, error) {
	tier := func(prefix string) Tier {
		return Tier{
			Base:          cfg.GetFloat64(config.TierKey(prefix, config.TierBase)),
			PowerBase:     cfg.GetFloat64(config.TierKey(prefix, config.TierPowerBase)),
			PowerExponent: cfg.GetInt(config.TierKey(prefix, config.TierPowerExponent)),
			Weight:        cfg.GetFloat64(config.TierKey(prefix, config.TierWeight)),
		}
	}
	bonuses := func(prefix string) Bonuses {
		return Bonuses{
			CompleteLine: cfg.GetFloat64(config.TierKey(prefix, config.BonusCompleteLine)),
			FourCell:     cfg.GetFloat64(config.TierKey(prefix, config.BonusFourCell)),
			ThreeCell:    cfg.GetFloat64(config.TierKey(prefix, config.BonusThreeCell)),
		}
	}
	p := Params{
		Threshold: cfg.GetInt(config.ConfigScoringThreshold),
		MaxCells:  cfg.GetInt(config.ConfigScoringMaxCells),
		ThreeLine: tier(config.ConfigScoringThreeLine),
		FourLine:  tier(config.ConfigScoringFourLine),
		FiveLine:  tier(config.ConfigScoringFiveLine),
		Immediate: bonuses(config.ConfigScoringImmediate),
		Late:      bonuses(config.ConfigScoringLate),
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Validate rejects parameter sets that would make scores meaningless.
func (p Params) Validate() error {
	if p.MaxCells < 1 || p.MaxCells > board.NumCells {
		return fmt.Errorf("%w: max cells %d out of range 1-%d", board.ErrInvalidConfiguration, p.MaxCells, board.NumCells)
	}
	if p.Threshold < 0 || p.Threshold > p.MaxCells {
		return fmt.Errorf("%w: threshold %d out of range 0-%d", board.ErrInvalidConfiguration, p.Threshold, p.MaxCells)
	}
	for name, t := range map[string]Tier{"three-line": p.ThreeLine, "four-line": p.FourLine, "five-line": p.FiveLine} {
		if t.PowerBase <= 0 {
			return fmt.Errorf("%w: %s power base must be positive", board.ErrInvalidConfiguration, name)
		}
		if t.Base < 0 || t.Weight < 0 {
			return fmt.Errorf("%w: %s base and weight must not be negative", board.ErrInvalidConfiguration, name)
		}
	}
	for name, b := range map[string]Bonuses{"immediate": p.Immediate, "late": p.Late} {
		if b.CompleteLine < 0 || b.FourCell < 0 || b.ThreeCell < 0 {
			return fmt.Errorf("%w: %s bonuses must not be negative", board.ErrInvalidConfiguration, name)
		}
	}
	return nil
}

// tier returns the parameters for combinations of k lines.
func (p Params) tier(k int) Tier {
	switch k {
	case 3:
		return p.ThreeLine
	case 4:
		return p.FourLine
	default:
		return p.FiveLine
	}
}
