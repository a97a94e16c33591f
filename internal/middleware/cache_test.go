package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsutsun/magicaltsutsunlist/internal/config"
)

func passThrough(t *testing.T, mw echo.MiddlewareFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/seasonal-anime", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := mw(func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"ok": true})
	})
	require.NoError(t, h(c))
	return rec
}

func TestRedisCache_NilClientPassesThrough(t *testing.T) {
	cfg := config.CacheConfig{Enabled: true, Prefix: "mtl:cache", MaxBodyBytes: 1 << 20}

	rec := passThrough(t, NewRedisCache(cfg, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Cache"))
}

func TestRedisCache_DisabledPassesThrough(t *testing.T) {
	cfg := config.CacheConfig{Enabled: false, Prefix: "mtl:cache"}

	rec := passThrough(t, NewRedisCache(cfg, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTokenBucket_NilClientPassesThrough(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: true, Capacity: 30, Prefix: "mtl:rl"}

	rec := passThrough(t, NewTokenBucket(cfg, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCacheKey_StableAndQuerySensitive(t *testing.T) {
	e := echo.New()

	ctx := func(target string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/seasonal-anime")
		return c
	}

	a := cacheKey("mtl:cache", ctx("/seasonal-anime"))
	b := cacheKey("mtl:cache", ctx("/seasonal-anime"))
	q := cacheKey("mtl:cache", ctx("/seasonal-anime?page=2"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, q)
}
