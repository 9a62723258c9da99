// Package metrics serves the operational endpoints of the IBAN service:
// Prometheus metrics, liveness and readiness.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vortex-fintech/go-iban/foundation/logger"
)

const (
	healthCheckConcurrencyLimit = 64
	defaultCheckTimeout         = 500 * time.Millisecond
)

// Check is one named readiness probe, e.g. "recent_store".
// Fn must honour ctx cancellation.
type Check struct {
	Name string
	Fn   func(ctx context.Context) error
}

type Options struct {
	Registry *prometheus.Registry
	Register func(reg prometheus.Registerer) error

	// Ready checks run in order; the first failure makes /ready return 503.
	// /health only reports that the process serves HTTP.
	Ready []Check

	MetricsPath string
	HealthPath  string
	ReadyPath   string

	ReadyTimeout time.Duration

	// MetricsAuth guards /metrics when set.
	MetricsAuth func(r *http.Request) bool
	Logger      logger.LoggerInterface

	// StrictRegister makes New fail when a collector cannot be registered.
	StrictRegister bool

	DisableBuildInfo bool
}

// New builds the handler and returns the registry metrics were registered
// with, so callers can add their own collectors.
func New(opts Options) (http.Handler, *prometheus.Registry, error) {
	metricsPath := normalizePath(opts.MetricsPath, "/metrics")
	healthPath := normalizePath(opts.HealthPath, "/health")
	readyPath := normalizePath(opts.ReadyPath, "/ready")

	readyTimeout := opts.ReadyTimeout
	if readyTimeout <= 0 {
		readyTimeout = defaultCheckTimeout
	}

	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	type named struct {
		name string
		c    prometheus.Collector
	}
	std := []named{
		{"process", collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})},
		{"go", collectors.NewGoCollector()},
	}
	if !opts.DisableBuildInfo {
		std = append(std, named{"build_info", collectors.NewBuildInfoCollector()})
	}
	for _, s := range std {
		if err := register(reg, s.c); err != nil {
			log.Errorw("metrics register failed", "collector", s.name, "error", err)
			if opts.StrictRegister {
				return nil, nil, err
			}
		}
	}
	if opts.Register != nil {
		if err := opts.Register(reg); err != nil {
			log.Errorw("metrics register failed", "collector", "custom", "error", err)
			if opts.StrictRegister {
				return nil, nil, err
			}
		}
	}

	mux := http.NewServeMux()
	sem := make(chan struct{}, healthCheckConcurrencyLimit)
	promHandler := promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})

	mux.Handle(metricsPath, withLog(getOnly(withAuth(promHandler, opts.MetricsAuth)), metricsPath, log))
	mux.Handle(healthPath, withLog(getOnly(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, r.Method == http.MethodHead)
	})), healthPath, log))
	mux.Handle(readyPath, withLog(getOnly(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		runChecks(w, r, opts.Ready, readyTimeout, sem)
	})), readyPath, log))

	return mux, reg, nil
}

// register treats an already registered collector as success.
func register(reg prometheus.Registerer, c prometheus.Collector) error {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return nil
		}
		return err
	}
	return nil
}

func runChecks(w http.ResponseWriter, r *http.Request, checks []Check, timeout time.Duration, sem chan struct{}) {
	headOnly := r.Method == http.MethodHead
	if len(checks) == 0 {
		writeOK(w, headOnly)
		return
	}

	select {
	case sem <- struct{}{}:
	default:
		w.Header().Set("Retry-After", "1")
		writeError(w, "readiness check busy", http.StatusServiceUnavailable, headOnly)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() { <-sem }()
		for _, c := range checks {
			if err := c.Fn(ctx); err != nil {
				done <- checkError{name: c.Name, err: err}
				return
			}
		}
		done <- nil
	}()

	select {
	case err := <-done:
		if err != nil {
			writeError(w, err.Error(), http.StatusServiceUnavailable, headOnly)
			return
		}
		writeOK(w, headOnly)
	case <-ctx.Done():
		w.Header().Set("Retry-After", "1")
		writeError(w, "readiness check timeout", http.StatusServiceUnavailable, headOnly)
	}
}

type checkError struct {
	name string
	err  error
}

func (e checkError) Error() string { return e.name + ": " + e.err.Error() }

func getOnly(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			writeError(w, "method not allowed", http.StatusMethodNotAllowed, false)
			return
		}
		h.ServeHTTP(w, r)
	})
}

func withAuth(h http.Handler, auth func(*http.Request) bool) http.Handler {
	if auth == nil {
		return h
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !auth(r) {
			writeError(w, "unauthorized", http.StatusUnauthorized, r.Method == http.MethodHead)
			return
		}
		h.ServeHTTP(w, r)
	})
}

func normalizePath(p, def string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		p = def
	}
	if p[0] != '/' {
		p = "/" + p
	}
	return p
}

func writeOK(w http.ResponseWriter, headOnly bool) {
	w.WriteHeader(http.StatusOK)
	if !headOnly {
		_, _ = w.Write([]byte("OK"))
	}
}

func writeError(w http.ResponseWriter, msg string, status int, headOnly bool) {
	if headOnly {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(status)
		return
	}
	http.Error(w, msg, status)
}
