package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetenv(t *testing.T) {
	t.Setenv("MTL_TEST_STR", "value")
	assert.Equal(t, "value", getenv("MTL_TEST_STR", "def"))
	assert.Equal(t, "def", getenv("MTL_TEST_UNSET", "def"))
}

func TestGetenvInt(t *testing.T) {
	t.Setenv("MTL_TEST_INT", "42")
	assert.Equal(t, 42, getenvInt("MTL_TEST_INT", 7))
	assert.Equal(t, 7, getenvInt("MTL_TEST_INT_UNSET", 7))
}

func TestEnvBool(t *testing.T) {
	t.Setenv("MTL_TEST_BOOL", "false")
	assert.False(t, envBool("MTL_TEST_BOOL", true))
	assert.True(t, envBool("MTL_TEST_BOOL_UNSET", true))
	t.Setenv("MTL_TEST_BOOL_JUNK", "maybe")
	assert.True(t, envBool("MTL_TEST_BOOL_JUNK", true))
}

func TestEnvDur(t *testing.T) {
	t.Setenv("MTL_TEST_DUR", "90s")
	assert.Equal(t, 90*time.Second, envDur("MTL_TEST_DUR", time.Minute))
	assert.Equal(t, time.Minute, envDur("MTL_TEST_DUR_UNSET", time.Minute))
	t.Setenv("MTL_TEST_DUR_JUNK", "soon")
	assert.Equal(t, time.Minute, envDur("MTL_TEST_DUR_JUNK", time.Minute))
}

func TestLoadRateLimitConfig_Clamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "-3")
	t.Setenv("RATE_LIMIT_TTL", "1ms")

	cfg := LoadRateLimitConfig()
	assert.Equal(t, 1, cfg.Capacity)
	assert.Equal(t, 1, cfg.RefillTokens)
	assert.GreaterOrEqual(t, cfg.TTL, 5*cfg.RefillInterval)
}
