package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sivakasi-crackers/internal/health"
)

func readyStatus(t *testing.T, h health.Handler) (int, map[string]string) {
	t.Helper()
	rr := httptest.NewRecorder()
	h.Ready(rr, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	var status map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &status))
	return rr.Code, status
}

func TestLive(t *testing.T) {
	rr := httptest.NewRecorder()
	health.Handler{}.Live(rr, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "ok", rr.Body.String())
}

func TestReadySuccess(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	code, status := readyStatus(t, health.Handler{Probes: []health.Probe{
		health.CatalogProbe(func() int { return 16 }),
		health.RedisProbe(client),
	}})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, map[string]string{"catalog": "ok", "redis": "ok"}, status)
}

func TestReadyFailure(t *testing.T) {
	code, status := readyStatus(t, health.Handler{Probes: []health.Probe{
		health.CatalogProbe(func() int { return 0 }),
		{Name: "slow", Timeout: 10 * time.Millisecond, Check: func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}},
		{Name: "custom", Check: func(context.Context) error { return errors.New("down") }},
	}})
	require.Equal(t, http.StatusServiceUnavailable, code)
	require.Equal(t, "catalog empty", status["catalog"])
	require.Equal(t, context.DeadlineExceeded.Error(), status["slow"])
	require.Equal(t, "down", status["custom"])
}
