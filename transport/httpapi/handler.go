// Package httpapi exposes IBAN validation, decomposition and the recent
// lookups list over JSON/HTTP.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/vortex-fintech/go-iban/data/recent"
	"github.com/vortex-fintech/go-iban/foundation/logger"
)

const (
	maxBodyBytes   = 4 << 10
	requestTimeout = 5 * time.Second
)

type Options struct {
	Logger logger.LoggerInterface
	// Recent may be nil; the recent endpoints then answer 501 and decompose
	// does not record anything.
	Recent  recent.Store
	Metrics *Metrics
	// Env controls how much of a rejected request is logged.
	Env string
}

type Handler struct {
	log     logger.LoggerInterface
	recent  recent.Store
	metrics *Metrics
	env     string
}

func New(opts Options) *Handler {
	h := &Handler{
		log:     opts.Logger,
		recent:  opts.Recent,
		metrics: opts.Metrics,
		env:     opts.Env,
	}
	if h.log == nil {
		h.log = logger.Nop()
	}
	if h.metrics == nil {
		h.metrics, _ = NewMetrics(nil)
	}
	return h
}

// Routes returns the router with all endpoints mounted under /v1/iban.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Route("/v1/iban", h.Register)
	return r
}

// Register mounts the endpoints on r without middleware.
func (h *Handler) Register(r chi.Router) {
	r.Post("/validate", h.handleValidate)
	r.Post("/decompose", h.handleDecompose)
	r.Get("/countries", h.handleCountries)
	r.Get("/countries/{code}", h.handleCountry)

	r.Get("/recent", h.handleListRecent)
	r.Post("/recent", h.handleAddRecent)
	r.Delete("/recent", h.handleClearRecent)
}
