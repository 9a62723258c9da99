// Package prommetrics exports shutdown statistics to Prometheus.
package prommetrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PromMetrics implements shutdown.Metrics.
type PromMetrics struct {
	stopTotal        *prometheus.CounterVec
	serveErrors      *prometheus.CounterVec
	serverStopResult *prometheus.CounterVec
	gracefulDuration prometheus.Histogram
}

// New registers, under namespace and subsystem:
//
//	graceful_stop_total{result}
//	server_serve_errors_total{name}
//	server_stop_result_total{name,result}
//	graceful_duration_seconds
func New(reg prometheus.Registerer, namespace, subsystem string) (*PromMetrics, error) {
	if reg == nil {
		return nil, errors.New("prommetrics: registerer is nil")
	}

	var err error
	pm := &PromMetrics{}
	if pm.stopTotal, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: subsystem,
		Name: "graceful_stop_total", Help: "Shutdowns by result (success or force).",
	}, []string{"result"})); err != nil {
		return nil, err
	}
	if pm.serveErrors, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: subsystem,
		Name: "server_serve_errors_total", Help: "Unexpected Serve errors by server.",
	}, []string{"name"})); err != nil {
		return nil, err
	}
	if pm.serverStopResult, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: subsystem,
		Name: "server_stop_result_total", Help: "Per-server stop result.",
	}, []string{"name", "result"})); err != nil {
		return nil, err
	}
	if pm.gracefulDuration, err = register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace, Subsystem: subsystem,
		Name:    "graceful_duration_seconds",
		Help:    "Time spent stopping servers and closers.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	})); err != nil {
		return nil, err
	}
	return pm, nil
}

// register returns the collector already registered under the same
// descriptor, so two managers sharing a registry share the series.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, fmt.Errorf("prommetrics: register: %w", err)
	}
	return c, nil
}

func (p *PromMetrics) IncStopTotal(result string) { p.stopTotal.WithLabelValues(result).Inc() }

func (p *PromMetrics) ObserveGracefulDuration(d time.Duration) {
	p.gracefulDuration.Observe(d.Seconds())
}

func (p *PromMetrics) IncServeError(name string) { p.serveErrors.WithLabelValues(name).Inc() }

func (p *PromMetrics) IncServerStopResult(name, result string) {
	p.serverStopResult.WithLabelValues(name, result).Inc()
}
