package config

import (
    "time"
)

// CacheConfig controls the Redis response cache in front of flight search.
// Entries are keyed by route, query and the current cache generation, so a
// reservation or cancellation only has to bump the generation to make every
// cached search stale.
type CacheConfig struct {
    Enabled      bool
    TTL          time.Duration
    Prefix       string
    MaxBodyBytes int
}

// LoadCacheConfig reads the SEARCH_CACHE_* variables.  Defaults keep search
// results for 30 seconds.
func LoadCacheConfig() CacheConfig {
    cfg := CacheConfig{
        Enabled:      envBool("SEARCH_CACHE_ENABLED", true),
        TTL:          envDur("SEARCH_CACHE_TTL", 30*time.Second),
        Prefix:       envStr("SEARCH_CACHE_PREFIX", "cache:search"),
        MaxBodyBytes: envInt("SEARCH_CACHE_MAX_BODY_BYTES", 1<<20),
    }
    if cfg.TTL <= 0 {
        cfg.TTL = 30 * time.Second
    }
    return cfg
}
