package solver

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/domino14/bingo16/board"
	"github.com/domino14/bingo16/scoring"
)

// approximate bytes per entry
const entrySize = 40

const (
	minSizePowerOf2 = 10
	// 25 board bits plus 5 move bits cover every (board, move) pair.
	maxSizePowerOf2 = 30
)

type cacheEntry struct {
	// key+1, so the zero entry is empty
	tag   uint32
	score scoring.Score
}

// EvalCache is a direct-mapped table of scores keyed by (board, move). A
// colliding store overwrites the older entry. It is safe for concurrent
// use.
type EvalCache struct {
	sync.RWMutex
	table        []cacheEntry
	sizePowerOf2 int
	lookups      atomic.Uint64
	hits         atomic.Uint64
	stores       atomic.Uint64
}

// NewEvalCache sizes the table to roughly fractionOfMemory of the machine's
// RAM, rounded down to a power of two.
func NewEvalCache(fractionOfMemory float64) *EvalCache {
	totalMem := memory.TotalMemory()
	desired := fractionOfMemory * float64(totalMem) / entrySize
	pow := minSizePowerOf2
	if desired > 1 {
		pow = int(math.Log2(desired))
	}
	pow = max(minSizePowerOf2, min(maxSizePowerOf2, pow))
	log.Info().Uint64("total-mem", totalMem).Float64("fraction", fractionOfMemory).
		Int("entries", 1<<pow).Msg("eval-cache-size")
	return newEvalCacheWithSize(pow)
}

func newEvalCacheWithSize(pow int) *EvalCache {
	return &EvalCache{table: make([]cacheEntry, 1<<pow), sizePowerOf2: pow}
}

func cacheKey(b board.Board, move int) uint32 {
	return uint32(b)<<5 | uint32(move)
}

func (c *EvalCache) index(key uint32) uint32 {
	// Fibonacci hashing spreads neighboring boards across the table.
	return uint32((uint64(key) * 11400714819323198485) >> (64 - c.sizePowerOf2))
}

func (c *EvalCache) lookup(b board.Board, move int) (scoring.Score, bool) {
	c.lookups.Add(1)
	key := cacheKey(b, move)
	c.RLock()
	e := c.table[c.index(key)]
	c.RUnlock()
	if e.tag != key+1 {
		return scoring.Score{}, false
	}
	c.hits.Add(1)
	return e.score, true
}

func (c *EvalCache) store(b board.Board, move int, s scoring.Score) {
	key := cacheKey(b, move)
	idx := c.index(key)
	c.Lock()
	c.table[idx] = cacheEntry{tag: key + 1, score: s}
	c.Unlock()
	c.stores.Add(1)
}

// Size is the number of slots.
func (c *EvalCache) Size() int {
	return len(c.table)
}

// Stats returns lookups, hits and stores since creation or the last Reset.
func (c *EvalCache) Stats() (lookups, hits, stores uint64) {
	return c.lookups.Load(), c.hits.Load(), c.stores.Load()
}

// Reset empties the table.
func (c *EvalCache) Reset() {
	c.Lock()
	defer c.Unlock()
	clear(c.table)
	c.lookups.Store(0)
	c.hits.Store(0)
	c.stores.Store(0)
}
