package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-reservation/internal/config"
)

func cacheTestConfig() config.CacheConfig {
	return config.CacheConfig{
		Enabled:      true,
		Methods:      map[string]bool{"GET": true},
		TTL:          30 * time.Second,
		KeyStrategy:  "route_query",
		Prefix:       "cache",
		MaxBodyBytes: 1 << 20,
	}
}

func TestRedisCacheHitReplaysStoredResponse(t *testing.T) {
	cfg := cacheTestConfig()
	rdb, mock := redismock.NewClientMock()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/rooms?type=Deluxe", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/rooms")

	cachedBody := []byte(`{"rooms":[]}`)
	payload, err := encodePayload(http.StatusOK, http.Header{
		"Content-Type": []string{"application/json"},
	}, cachedBody)
	require.NoError(t, err)
	mock.ExpectGet(cacheKeyFrom(cfg, c)).SetVal(string(payload))

	handlerRan := false
	mw := NewRedisCache(cfg, rdb)
	err = mw(func(c echo.Context) error {
		handlerRan = true
		return c.String(http.StatusOK, "fresh")
	})(c)

	require.NoError(t, err)
	assert.False(t, handlerRan, "hit must not invoke the handler")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, string(cachedBody), rec.Body.String())
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheSkipsUncachedMethods(t *testing.T) {
	cfg := cacheTestConfig()
	rdb, mock := redismock.NewClientMock()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/bookings")

	mw := NewRedisCache(cfg, rdb)
	err := mw(func(c echo.Context) error {
		return c.String(http.StatusCreated, "created")
	})(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Cache"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheDisabledIsPassthrough(t *testing.T) {
	cfg := cacheTestConfig()
	cfg.Enabled = false

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/rooms", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/rooms")

	mw := NewRedisCache(cfg, nil)
	err := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "fresh")
	})(c)

	require.NoError(t, err)
	assert.Equal(t, "fresh", rec.Body.String())
	assert.Empty(t, rec.Header().Get("X-Cache"))
}

func TestCacheKeyFromSeparatesQueries(t *testing.T) {
	cfg := cacheTestConfig()
	e := echo.New()

	ctxFor := func(target string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/v1/rooms")
		return c
	}

	a := cacheKeyFrom(cfg, ctxFor("/v1/rooms?type=Deluxe"))
	b := cacheKeyFrom(cfg, ctxFor("/v1/rooms?type=Standard"))
	same := cacheKeyFrom(cfg, ctxFor("/v1/rooms?type=Deluxe"))

	assert.NotEqual(t, a, b)
	assert.Equal(t, a, same)
	assert.Contains(t, a, cfg.Prefix+":")
}

func TestEncodeDecodePayload(t *testing.T) {
	hdr := http.Header{"Content-Type": []string{"application/json"}}
	body := []byte(`{"ok":true}`)

	payload, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(payload)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, hdr, gotHdr)
	assert.Equal(t, body, gotBody)

	// Truncated and garbage values are rejected, never panicking.
	_, _, _, ok = decodePayload(payload[:4])
	assert.False(t, ok)
	_, _, _, ok = decodePayload([]byte("xx"))
	assert.False(t, ok)
}
