package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	play "github.com/go-playground/validator/v10"
	apperr "github.com/vortex-fintech/go-iban/foundation/errors"
	"github.com/vortex-fintech/go-iban/foundation/logutil"
	"github.com/vortex-fintech/go-iban/foundation/validator"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

var errTrailingData = errors.New("trailing data after JSON body")

func writeDecodeError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		apperr.InvalidArgument().
			WithReason("body_too_large").
			WithMessage("request body is too large").
			ToHTTP(w)
	case errors.Is(err, io.EOF):
		apperr.InvalidArgument().
			WithReason("empty_body").
			WithMessage("request body is empty").
			ToHTTP(w)
	default:
		apperr.InvalidArgument().
			WithReason("malformed_json").
			WithMessage("request body is not valid JSON").
			ToHTTP(w)
	}
}

// bind decodes a JSON body of at most maxBodyBytes into dst and validates
// it. On failure the error response is already written.
func (h *Handler) bind(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		writeDecodeError(w, err)
		return false
	}
	// Exactly one JSON value per body.
	if err := dec.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errTrailingData
		}
		writeDecodeError(w, err)
		return false
	}

	if err := validator.Instance().Struct(dst); err != nil {
		var verrs play.ValidationErrors
		if !errors.As(err, &verrs) {
			h.log.ErrorwCtx(r.Context(), "request validation crashed", "error", err)
			apperr.Internal().ToHTTP(w)
			return false
		}
		resp := apperr.FromPlayground(verrs, validator.TagMap)
		fields := make(map[string]string, len(resp.Violations))
		for _, v := range resp.Violations {
			fields[v.Field] = v.Reason
		}
		h.log.WarnwCtx(r.Context(), "request rejected",
			"violations", logutil.SanitizeValidationErrors(fields, h.env, ""))
		resp.ToHTTP(w)
		return false
	}
	return true
}
