package guardkit

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the manager configuration.
type Config struct {
	// CacheEnabled gates whether ClearCache forwards to the injected
	// cache collaborator.
	CacheEnabled bool `env:"GUARDKIT_CACHE_ENABLED" envDefault:"false" json:"cacheEnabled"`

	// CacheTTL is the advisory TTL passed to cache collaborator calls.
	// Expiry enforcement, if any, belongs to the collaborator.
	CacheTTL time.Duration `env:"GUARDKIT_CACHE_TTL" envDefault:"24h" json:"cacheTtl"`

	// DefaultGuard is the guard used when operations receive an empty
	// guard argument. It is created eagerly at manager construction.
	DefaultGuard string `env:"GUARDKIT_DEFAULT_GUARD" envDefault:"web" json:"defaultGuard"`
}

// DefaultConfig returns the configuration used when the host supplies
// a zero Config.
func DefaultConfig() Config {
	return Config{
		CacheEnabled: false,
		CacheTTL:     24 * time.Hour,
		DefaultGuard: DefaultGuardName,
	}
}

// ConfigFromEnv loads the configuration from GUARDKIT_* environment
// variables, falling back to the defaults above.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// normalize fills zero values with defaults.
func (c Config) normalize() Config {
	if c.DefaultGuard == "" {
		c.DefaultGuard = DefaultGuardName
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = 24 * time.Hour
	}
	return c
}
