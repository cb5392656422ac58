package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrParseConfig indicates that environment parsing into the target struct
// failed.
var ErrParseConfig = errors.New("failed to parse config")

var (
	dotenvOnce sync.Once
	cache      sync.Map // reflect.Type -> any (loaded struct value)
)

// Load fills cfg from environment variables, loading .env files on first
// use. Each concrete struct type is parsed once per process; later calls
// receive the cached value.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return fmt.Errorf("%w: nil target", ErrParseConfig)
	}

	// Missing .env files are expected outside development.
	dotenvOnce.Do(func() { _ = godotenv.Load() })

	key := reflect.TypeOf(*cfg)
	if cached, ok := cache.Load(key); ok {
		*cfg = cached.(T)
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrParseConfig, key, err)
	}

	actual, _ := cache.LoadOrStore(key, *cfg)
	*cfg = actual.(T)
	return nil
}

// MustLoad is Load that panics on failure, for use during startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
