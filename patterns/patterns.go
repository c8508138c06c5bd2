// Package patterns recognizes hand-verified positions, in any orientation,
// and returns their known best move.
package patterns

import (
	_ "embed"
	"fmt"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/domino14/bingo16/board"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Pattern is a verified board and its best move.
type Pattern struct {
	Description string
	Cells       board.Board
	// MoveCount is the number of cells in the position.
	MoveCount int
	Move      int
}

type patternEntry struct {
	Description string `yaml:"description"`
	Cells       []int  `yaml:"cells"`
	Move        int    `yaml:"move"`
}

// Match is a recognized position.
type Match struct {
	Move        int
	Description string
	// Symmetry is the transform that maps the stored pattern onto the
	// board.
	Symmetry string
}

// Catalog is an ordered list of patterns. The first pattern that matches
// wins.
type Catalog []Pattern

var defaultCatalog Catalog

func init() {
	var err error
	defaultCatalog, err = Parse(catalogYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded pattern catalog: %v", err))
	}
}

// Default returns the built-in catalog.
func Default() Catalog {
	return defaultCatalog
}

// Parse reads a YAML list of {description, cells, move} entries.
func Parse(data []byte) (Catalog, error) {
	var entries []patternEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	cat := make(Catalog, 0, len(entries))
	for i, e := range entries {
		cells, err := board.FromCells(e.Cells)
		if err != nil {
			return nil, fmt.Errorf("pattern %d (%s): %w", i, e.Description, err)
		}
		if err := board.CheckCell(e.Move); err != nil {
			return nil, fmt.Errorf("pattern %d (%s): %w", i, e.Description, err)
		}
		if cells.Has(e.Move) {
			return nil, fmt.Errorf("pattern %d (%s): %w: %d", i, e.Description, board.ErrCellAlreadySelected, e.Move)
		}
		cat = append(cat, Pattern{
			Description: e.Description,
			Cells:       cells,
			MoveCount:   cells.Count(),
			Move:        e.Move,
		})
	}
	log.Debug().Int("patterns", len(cat)).Msg("parsed-pattern-catalog")
	return cat, nil
}

// MatchPattern tries p against b under each symmetry, identity first.
func MatchPattern(p Pattern, b board.Board) (Match, bool) {
	if b.Count() != p.MoveCount {
		return Match{}, false
	}
	for i := range board.Symmetries {
		sym := &board.Symmetries[i]
		if sym.Board(p.Cells) == b {
			return Match{Move: sym.Cell(p.Move), Description: p.Description, Symmetry: sym.Name}, true
		}
	}
	return Match{}, false
}

// Match returns the first pattern in the catalog that matches b.
func (c Catalog) Match(b board.Board) (Match, bool) {
	for _, p := range c {
		if m, ok := MatchPattern(p, b); ok {
			return m, true
		}
	}
	return Match{}, false
}
