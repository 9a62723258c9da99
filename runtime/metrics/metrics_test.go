package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"github.com/vortex-fintech/go-iban/foundation/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func get(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestHandler_MetricsExposeCustomCollector(t *testing.T) {
	t.Parallel()

	ctr := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "iban_test_total",
		Help: "test counter",
	})
	h, reg, err := New(Options{
		Register: func(reg prometheus.Registerer) error { return reg.Register(ctr) },
	})
	require.NoError(t, err)
	require.NotNil(t, reg)
	ctr.Inc()

	srv := httptest.NewServer(h)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "no-store", resp.Header.Get("Cache-Control"))

	body, _ := io.ReadAll(resp.Body)
	require.Contains(t, string(body), "# TYPE iban_test_total counter")
	require.Contains(t, string(body), "iban_test_total 1")
}

func TestHandler_HealthAlwaysOK(t *testing.T) {
	t.Parallel()

	h, _, err := New(Options{Ready: []Check{{Name: "down", Fn: func(context.Context) error { return errors.New("x") }}}})
	require.NoError(t, err)

	rec := get(t, h, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "OK", rec.Body.String())

	rec = get(t, h, http.MethodHead, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Body.String())
}

func TestHandler_ReadyChecks(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	h, _, err := New(Options{Ready: []Check{
		{Name: "config", Fn: func(context.Context) error { calls.Add(1); return nil }},
		{Name: "recent_store", Fn: func(context.Context) error { calls.Add(1); return errors.New("connection refused") }},
		{Name: "never", Fn: func(context.Context) error { calls.Add(1); return nil }},
	}})
	require.NoError(t, err)

	rec := get(t, h, http.MethodGet, "/ready")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Contains(t, rec.Body.String(), "recent_store: connection refused")
	require.Equal(t, int32(2), calls.Load())
}

func TestHandler_ReadyTimeout(t *testing.T) {
	t.Parallel()

	h, _, err := New(Options{
		ReadyTimeout: 30 * time.Millisecond,
		Ready: []Check{{Name: "slow", Fn: func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}}},
	})
	require.NoError(t, err)

	rec := get(t, h, http.MethodGet, "/ready")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	h, _, err := New(Options{})
	require.NoError(t, err)

	for _, p := range []string{"/metrics", "/health", "/ready"} {
		rec := get(t, h, http.MethodPost, p)
		require.Equal(t, http.StatusMethodNotAllowed, rec.Code, p)
		require.Equal(t, "GET, HEAD", rec.Header().Get("Allow"), p)
	}
}

func TestHandler_MetricsAuth(t *testing.T) {
	t.Parallel()

	h, _, err := New(Options{
		MetricsAuth: func(r *http.Request) bool { return r.Header.Get("Authorization") == "Bearer ok" },
	})
	require.NoError(t, err)

	require.Equal(t, http.StatusUnauthorized, get(t, h, http.MethodGet, "/metrics").Code)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.Header.Set("Authorization", "Bearer ok")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_CustomPaths(t *testing.T) {
	t.Parallel()

	h, _, err := New(Options{MetricsPath: "prom", HealthPath: " /livez ", ReadyPath: "/readyz"})
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, get(t, h, http.MethodGet, "/prom").Code)
	require.Equal(t, http.StatusOK, get(t, h, http.MethodGet, "/livez").Code)
	require.Equal(t, http.StatusOK, get(t, h, http.MethodGet, "/readyz").Code)
	require.Equal(t, http.StatusNotFound, get(t, h, http.MethodGet, "/metrics").Code)
}

func TestHandler_StrictRegister(t *testing.T) {
	t.Parallel()

	boom := errors.New("duplicate descriptor")
	_, _, err := New(Options{
		StrictRegister: true,
		Register:       func(prometheus.Registerer) error { return boom },
	})
	require.ErrorIs(t, err, boom)

	h, _, err := New(Options{Register: func(prometheus.Registerer) error { return boom }})
	require.NoError(t, err)
	require.NotNil(t, h)
}

func TestHandler_SharedRegistryIsIdempotent(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	_, _, err := New(Options{Registry: reg, StrictRegister: true})
	require.NoError(t, err)
	_, got, err := New(Options{Registry: reg, StrictRegister: true})
	require.NoError(t, err)
	require.Same(t, reg, got)
}

func TestHandler_LogsByStatus(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.DebugLevel)
	h, _, err := New(Options{
		Logger: logger.NewWithCore("ops", core),
		Ready:  []Check{{Name: "recent_store", Fn: func(context.Context) error { return errors.New("down") }}},
	})
	require.NoError(t, err)

	get(t, h, http.MethodGet, "/health")
	get(t, h, http.MethodGet, "/ready")

	entries := logs.FilterMessage("ops request").All()
	require.Len(t, entries, 2)
	require.Equal(t, zap.DebugLevel, entries[0].Level)
	require.Equal(t, zap.ErrorLevel, entries[1].Level)
	require.Equal(t, "/ready", entries[1].ContextMap()["path"])
}
