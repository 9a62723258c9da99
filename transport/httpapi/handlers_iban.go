package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	apperr "github.com/vortex-fintech/go-iban/foundation/errors"
	"github.com/vortex-fintech/go-iban/foundation/geo"
	"github.com/vortex-fintech/go-iban/foundation/iban"
	"github.com/vortex-fintech/go-iban/foundation/piiutil"
	"github.com/vortex-fintech/go-iban/foundation/validator"
)

// handleValidate reports the outcome as data: invalid IBANs still get 200.
func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req ibanRequest
	if !h.bind(w, r, &req) {
		return
	}

	res := iban.Validate(req.IBAN)
	h.metrics.observeValidation(res.Reason)
	h.log.DebugwCtx(r.Context(), "iban validated", "iban", piiutil.MaskIBAN(res.IBAN), "reason", res.Reason)

	writeJSON(w, http.StatusOK, validateResponse{
		IBAN:    res.IBAN,
		Valid:   res.Valid,
		Reason:  res.Reason,
		Message: res.Reason.Message(),
		Country: iban.CountryOf(res.IBAN),
	})
}

// handleDecompose answers 400 for invalid input. Valid IBANs are remembered
// in the recent list; a failing store is logged but does not fail the call.
func (h *Handler) handleDecompose(w http.ResponseWriter, r *http.Request) {
	var req ibanRequest
	if !h.bind(w, r, &req) {
		return
	}

	res := iban.Validate(req.IBAN)
	h.metrics.observeValidation(res.Reason)
	if !res.Valid {
		h.metrics.observeDecomposition(iban.StatusInvalid)
		h.log.InfowCtx(r.Context(), "decompose rejected", "iban", piiutil.MaskIBAN(res.IBAN), "reason", res.Reason)
		apperr.FromIBANError(iban.ValidationError{Reason: res.Reason, Country: iban.CountryOf(res.IBAN)}).ToHTTP(w)
		return
	}

	acc := iban.DecomposeNormalized(res.IBAN)
	h.metrics.observeDecomposition(acc.Status)

	if h.recent != nil {
		if err := h.recent.Add(r.Context(), res.IBAN); err != nil {
			h.metrics.observeRecentError("add")
			h.log.WarnwCtx(r.Context(), "recent store add failed", "iban", piiutil.MaskIBAN(res.IBAN), "error", err)
		}
	}

	writeJSON(w, http.StatusOK, decomposeResponse{
		IBAN:          res.IBAN,
		Formatted:     iban.Format(res.IBAN),
		Country:       acc.Country,
		Flag:          geo.FlagEmoji(acc.Country),
		BankCode:      acc.BankCode,
		BranchCode:    acc.BranchCode,
		AccountNumber: acc.AccountNumber,
		Status:        acc.Status,
	})
}

func (h *Handler) handleCountries(w http.ResponseWriter, _ *http.Request) {
	codes := iban.Countries()
	out := countriesResponse{Items: make([]layoutResponse, 0, len(codes))}
	for _, cc := range codes {
		l, _ := iban.LookupLayout(cc)
		out.Items = append(out.Items, toLayoutResponse(l))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleCountry(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if err := validator.Var(code, "len=2,alpha"); err != nil {
		apperr.InvalidArgument().
			WithReason("invalid_country_code").
			WithMessage("country code must be two letters").
			WithViolations([]apperr.FieldViolation{{Field: "code", Reason: "invalid_country_code"}}).
			ToHTTP(w)
		return
	}
	if err := validator.Var(code, validator.TagIBANCountry); err != nil {
		apperr.NotFound().
			WithReason("unsupported_iban_country").
			WithDomain(apperr.DomainIBAN).
			WithMessage("no IBAN layout for country").
			WithDetail("country", code).
			ToHTTP(w)
		return
	}
	l, _ := iban.LookupLayout(code)
	writeJSON(w, http.StatusOK, toLayoutResponse(l))
}

func toLayoutResponse(l iban.Layout) layoutResponse {
	out := layoutResponse{
		Country: l.Country,
		Flag:    geo.FlagEmoji(l.Country),
		Length:  l.Length,
		Bank:    span{Start: l.Bank.Start, End: l.Bank.End},
		Account: span{Start: l.Account.Start, End: l.Account.End},
	}
	if l.HasBranch() {
		out.Branch = &span{Start: l.Branch.Start, End: l.Branch.End}
	}
	return out
}
