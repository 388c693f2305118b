package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imisi99/Todoapi/internal/config"
)

func cacheCfg(strategy string) config.CacheConfig {
	return config.CacheConfig{
		Enabled:     true,
		Methods:     map[string]bool{"GET": true},
		TTL:         30 * time.Second,
		KeyStrategy: strategy,
		Prefix:      "cache",
	}
}

func keyFor(strategy, path, query, subject string) string {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path+"?"+query, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(path)
	if subject != "" {
		c.Set("user_id", subject)
	}
	return cacheKeyFrom(cacheCfg(strategy), c)
}

// Two users on the same route and query must never share an entry
// under the default strategy.
func TestCacheKeySubjectIsolation(t *testing.T) {
	a := keyFor("route_query_subject", "/todo/all-todo", "", "uid-1")
	b := keyFor("route_query_subject", "/todo/all-todo", "", "uid-2")
	assert.NotEqual(t, a, b)

	// same user, same request: stable key
	assert.Equal(t, a, keyFor("route_query_subject", "/todo/all-todo", "", "uid-1"))
}

func TestCacheKeyStrategies(t *testing.T) {
	// route-only ignores both query and subject
	a := keyFor("route", "/todo/get-todo-name", "task=milk", "uid-1")
	b := keyFor("route", "/todo/get-todo-name", "task=eggs", "uid-2")
	assert.Equal(t, a, b)

	// route_query separates on query but not on subject
	a = keyFor("route_query", "/todo/get-todo-name", "task=milk", "uid-1")
	b = keyFor("route_query", "/todo/get-todo-name", "task=eggs", "uid-1")
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, keyFor("route_query", "/todo/get-todo-name", "task=milk", "uid-2"))
}

func TestPayloadCodecRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": []string{"application/json"}}
	body := []byte(`[{"id":1}]`)

	bs, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, body, gotBody)
}

func TestDecodePayloadRejectsTruncated(t *testing.T) {
	_, _, _, ok := decodePayload([]byte{0, 0, 0})
	assert.False(t, ok)

	// header length pointing past the buffer
	bs, err := encodePayload(http.StatusOK, http.Header{}, []byte("x"))
	require.NoError(t, err)
	_, _, _, ok = decodePayload(bs[:9])
	assert.False(t, ok)
}

// Disabled config must pass requests straight through.
func TestRedisCacheDisabledPassthrough(t *testing.T) {
	cfg := cacheCfg("route")
	cfg.Enabled = false
	mw := NewRedisCache(cfg, nil)

	e := echo.New()
	e.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	}, mw)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
	assert.Empty(t, rec.Header().Get("X-Cache"))
}
