package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sivakasi-crackers/internal/resilience"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestMemoryStoreEnforcesLimit(t *testing.T) {
	store, err := NewStore(nil, "")
	require.NoError(t, err)

	var limited []string
	handler := Handler{
		Limiter:   New(store, time.Minute, 2),
		Config:    Config{Key: ByClientIP},
		OnLimited: func(key string) { limited = append(limited, key) },
	}.Middleware(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", nil)
	req.RemoteAddr = "10.0.0.7:5123"
	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req.Clone(req.Context()))
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req.Clone(req.Context()))
	require.Equal(t, http.StatusTooManyRequests, rr.Code)
	require.Equal(t, "2", rr.Header().Get("X-RateLimit-Limit"))
	require.Equal(t, "0", rr.Header().Get("X-RateLimit-Remaining"))
	require.NotEmpty(t, rr.Header().Get("Retry-After"))
	require.Contains(t, rr.Body.String(), "RATE_LIMITED")
	require.Equal(t, []string{"10.0.0.7"}, limited)

	other := req.Clone(req.Context())
	other.Header.Set("X-Forwarded-For", "203.0.113.9")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, other)
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestRedisStoreEnforcesLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store, err := NewStore(client, "test")
	require.NoError(t, err)
	handler := Handler{
		Limiter: New(store, time.Second, 1),
		Config:  Config{Key: func(*http.Request) string { return "static" }},
	}.Middleware(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rr1 := httptest.NewRecorder()
	handler.ServeHTTP(rr1, req.Clone(req.Context()))
	require.Equal(t, http.StatusOK, rr1.Code)

	rr2 := httptest.NewRecorder()
	handler.ServeHTTP(rr2, req.Clone(req.Context()))
	require.Equal(t, http.StatusTooManyRequests, rr2.Code)
	require.Equal(t, "1", rr2.Header().Get("X-RateLimit-Limit"))
}

func TestMiddlewareFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	store, err := NewStore(client, "test")
	require.NoError(t, err)
	mr.Close()

	called := false
	handler := Handler{
		Limiter: New(store, time.Second, 1),
		Config:  Config{Key: func(*http.Request) string { return "err" }},
		OnError: func(error) { called = true },
	}.Middleware(okHandler())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, called)
}

func TestMiddlewareBreakerSkipsFailingStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	store, err := NewStore(client, "test")
	require.NoError(t, err)
	mr.Close()

	breaker := resilience.NewBreaker(1, 0.5, time.Hour)
	errorsSeen := 0
	handler := Handler{
		Limiter: New(store, time.Second, 1),
		Config:  Config{Key: func(*http.Request) string { return "err" }},
		Breaker: breaker,
		OnError: func(error) { errorsSeen++ },
	}.Middleware(okHandler())

	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))
		require.Equal(t, http.StatusOK, rr.Code)
		require.Empty(t, rr.Header().Get("X-RateLimit-Limit"))
	}
	require.Equal(t, 1, errorsSeen)
	require.Equal(t, resilience.Open, breaker.State())
}

func TestMiddlewarePassThroughWithoutLimiter(t *testing.T) {
	rr := httptest.NewRecorder()
	Handler{}.Middleware(okHandler()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rr.Code)
}
