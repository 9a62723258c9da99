package httpapi

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vortex-fintech/go-iban/foundation/iban"
)

// Metrics holds the API's Prometheus collectors.
type Metrics struct {
	validations    *prometheus.CounterVec
	decompositions *prometheus.CounterVec
	recentErrors   *prometheus.CounterVec
	requests       *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg when it is
// not nil:
//
//	iban_validations_total{reason}
//	iban_decompositions_total{status}
//	iban_recent_store_errors_total{op}
//	iban_http_request_duration_seconds{route,method,code}
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "iban_validations_total",
			Help: "IBAN validations by outcome reason.",
		}, []string{"reason"}),
		decompositions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "iban_decompositions_total",
			Help: "IBAN decompositions by status.",
		}, []string{"status"}),
		recentErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "iban_recent_store_errors_total",
			Help: "Failed recent-store operations.",
		}, []string{"op"}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "iban_http_request_duration_seconds",
			Help:    "API request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method", "code"}),
	}
	if reg != nil {
		if err := m.register(reg); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// register adopts collectors that are already registered, so a second
// handler on the same registry reports into the same series.
func (m *Metrics) register(reg prometheus.Registerer) error {
	var err error
	m.validations, err = adopt(reg, m.validations)
	if err != nil {
		return err
	}
	m.decompositions, err = adopt(reg, m.decompositions)
	if err != nil {
		return err
	}
	m.recentErrors, err = adopt(reg, m.recentErrors)
	if err != nil {
		return err
	}
	m.requests, err = adopt(reg, m.requests)
	return err
}

func adopt[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		var zero T
		return zero, fmt.Errorf("httpapi: register metrics: %w", err)
	}
	return c, nil
}

func (m *Metrics) observeValidation(r iban.Reason) {
	m.validations.WithLabelValues(r.String()).Inc()
}

func (m *Metrics) observeDecomposition(s iban.Status) {
	m.decompositions.WithLabelValues(s.String()).Inc()
}

func (m *Metrics) observeRecentError(op string) {
	m.recentErrors.WithLabelValues(op).Inc()
}

func (m *Metrics) observeRequest(route, method string, code int, d time.Duration) {
	m.requests.WithLabelValues(route, method, strconv.Itoa(code)).Observe(d.Seconds())
}
