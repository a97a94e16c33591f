package config

import (
    "os"
    "time"
)

// CacheConfig defines settings for the Redis response cache middleware.
// When Enabled is false or no Redis client is available, caching is a
// no-op.  The cache is only wired onto read-only catalog and seasonal
// endpoints, so there is no method or key-strategy knob: the key is
// derived from the route and query string.
type CacheConfig struct {
    Enabled      bool
    TTL          time.Duration
    Prefix       string
    MaxBodyBytes int
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults are used when variables are not set.
func LoadCacheConfig() CacheConfig {
    return CacheConfig{
        Enabled:      envBool("CACHE_ENABLED", true),
        TTL:          envDur("CACHE_TTL", 5*time.Minute),
        Prefix:       getenv("CACHE_PREFIX", "mtl:cache"),
        MaxBodyBytes: getenvInt("CACHE_MAX_BODY_BYTES", 1<<20),
    }
}

func envBool(key string, def bool) bool {
    switch os.Getenv(key) {
    case "1", "true", "TRUE", "True", "yes", "on":
        return true
    case "0", "false", "FALSE", "False", "no", "off":
        return false
    }
    return def
}

func envDur(key string, def time.Duration) time.Duration {
    v := os.Getenv(key)
    if v == "" {
        return def
    }
    d, err := time.ParseDuration(v)
    if err != nil {
        return def
    }
    return d
}
