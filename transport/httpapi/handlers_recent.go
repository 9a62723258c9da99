package httpapi

import (
	"context"
	"errors"
	"net/http"

	apperr "github.com/vortex-fintech/go-iban/foundation/errors"
	"github.com/vortex-fintech/go-iban/foundation/iban"
)

func (h *Handler) recentEnabled(w http.ResponseWriter) bool {
	if h.recent != nil {
		return true
	}
	apperr.Unimplemented().
		WithReason("recent_disabled").
		WithMessage("recent lookups are disabled").
		ToHTTP(w)
	return false
}

func (h *Handler) handleListRecent(w http.ResponseWriter, r *http.Request) {
	if !h.recentEnabled(w) {
		return
	}
	entries, err := h.recent.List(r.Context())
	if err != nil {
		h.metrics.observeRecentError("list")
		h.log.ErrorwCtx(r.Context(), "recent store list failed", "error", err)
		storeError(err).ToHTTP(w)
		return
	}

	out := recentResponse{Items: make([]recentItem, 0, len(entries))}
	for _, e := range entries {
		out.Items = append(out.Items, recentItem{Entry: e, Formatted: iban.Format(e.IBAN)})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleAddRecent(w http.ResponseWriter, r *http.Request) {
	if !h.recentEnabled(w) {
		return
	}
	var req addRecentRequest
	if !h.bind(w, r, &req) {
		return
	}
	if err := h.recent.Add(r.Context(), req.IBAN); err != nil {
		h.metrics.observeRecentError("add")
		h.log.ErrorwCtx(r.Context(), "recent store add failed", "error", err)
		storeError(err).ToHTTP(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleClearRecent(w http.ResponseWriter, r *http.Request) {
	if !h.recentEnabled(w) {
		return
	}
	if err := h.recent.Clear(r.Context()); err != nil {
		h.metrics.observeRecentError("clear")
		h.log.ErrorwCtx(r.Context(), "recent store clear failed", "error", err)
		storeError(err).ToHTTP(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// storeError keeps validation and context errors as they are and reports
// everything else as the store being unavailable.
func storeError(err error) apperr.ErrorResponse {
	if errors.Is(err, iban.ErrInvalid) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return apperr.ToErrorResponse(err)
	}
	return apperr.Unavailable().
		WithReason("recent_store_unavailable").
		WithMessage("recent lookups are unavailable")
}
