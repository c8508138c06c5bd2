package cache

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/bingo16/config"
)

func TestLoad(t *testing.T) {
	is := is.New(t)
	CreateGlobalObjectCache()
	cfg := config.DefaultConfig()
	calls := 0
	loader := func(cfg *config.Config, key string) (any, error) {
		calls++
		return key + "-obj", nil
	}
	obj, err := Load(cfg, "a", loader)
	is.NoErr(err)
	is.Equal(obj, "a-obj")
	obj, err = Load(cfg, "a", loader)
	is.NoErr(err)
	is.Equal(obj, "a-obj")
	is.Equal(calls, 1)

	_, err = Load(cfg, "b", loader)
	is.NoErr(err)
	is.Equal(calls, 2)
	is.Equal(Len(), 2)
}

func TestLoadError(t *testing.T) {
	is := is.New(t)
	CreateGlobalObjectCache()
	boom := errors.New("boom")
	_, err := Load(config.DefaultConfig(), "x", func(*config.Config, string) (any, error) {
		return nil, boom
	})
	is.True(errors.Is(err, boom))
	is.Equal(Len(), 0)
}
