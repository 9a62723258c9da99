package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/vortex-fintech/go-iban/foundation/logger"
)

// requestLogger puts the chi request id into the context for the logger's
// *Ctx methods, then logs and times the request by route pattern.
func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := r.Context()
		if id := middleware.GetReqID(ctx); id != "" {
			ctx = logger.ContextWithRequestID(ctx, id)
			r = r.WithContext(ctx)
		}

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		d := time.Since(start)
		h.metrics.observeRequest(route, r.Method, status, d)

		kv := []any{"method", r.Method, "route", route, "status", status, "duration", d, "bytes", ww.BytesWritten()}
		switch {
		case status >= 500:
			h.log.ErrorwCtx(ctx, "http request", kv...)
		case status >= 400:
			h.log.WarnwCtx(ctx, "http request", kv...)
		default:
			h.log.InfowCtx(ctx, "http request", kv...)
		}
	})
}
