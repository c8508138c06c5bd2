// Package cache holds expensive objects, like solvers with their
// combination tables and evaluation caches, for the lifetime of a process.
// Long-running front ends (the bot, the lambda handler) build them once per
// distinct configuration.
package cache

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/domino14/bingo16/config"
)

type cache struct {
	sync.Mutex
	objects map[string]any
}

// LoadFunc builds the object stored under key.
type LoadFunc func(cfg *config.Config, key string) (any, error)

var (
	globalMu          sync.Mutex
	GlobalObjectCache *cache
)

func (c *cache) get(cfg *config.Config, key string, loadFunc LoadFunc) (any, error) {
	c.Lock()
	defer c.Unlock()
	if obj, ok := c.objects[key]; ok {
		log.Debug().Str("key", key).Msg("cache-hit")
		return obj, nil
	}
	log.Debug().Str("key", key).Msg("cache-loading")
	obj, err := loadFunc(cfg, key)
	if err != nil {
		return nil, err
	}
	c.objects[key] = obj
	return obj, nil
}

func CreateGlobalObjectCache() {
	globalMu.Lock()
	defer globalMu.Unlock()
	GlobalObjectCache = &cache{objects: make(map[string]any)}
}

// Load returns the object under key, calling loadFunc the first time the
// key is seen. Failed loads are not cached.
func Load(cfg *config.Config, key string, loadFunc LoadFunc) (any, error) {
	globalMu.Lock()
	if GlobalObjectCache == nil {
		GlobalObjectCache = &cache{objects: make(map[string]any)}
	}
	c := GlobalObjectCache
	globalMu.Unlock()
	return c.get(cfg, key, loadFunc)
}

// Len is the number of cached objects.
func Len() int {
	globalMu.Lock()
	c := GlobalObjectCache
	globalMu.Unlock()
	if c == nil {
		return 0
	}
	c.Lock()
	defer c.Unlock()
	return len(c.objects)
}
