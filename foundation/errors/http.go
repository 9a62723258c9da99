package errors

import (
	"encoding/json"
	"net/http"

	"google.golang.org/grpc/codes"
)

// statusClientClosedRequest is the nginx convention for a caller that went
// away before the answer was ready.
const statusClientClosedRequest = 499

var httpStatusByCode = map[codes.Code]int{
	codes.Canceled:           statusClientClosedRequest,
	codes.InvalidArgument:    http.StatusBadRequest,
	codes.OutOfRange:         http.StatusBadRequest,
	codes.DeadlineExceeded:   http.StatusGatewayTimeout,
	codes.NotFound:           http.StatusNotFound,
	codes.AlreadyExists:      http.StatusConflict,
	codes.Aborted:            http.StatusConflict,
	codes.PermissionDenied:   http.StatusForbidden,
	codes.Unauthenticated:    http.StatusUnauthorized,
	codes.ResourceExhausted:  http.StatusTooManyRequests,
	codes.FailedPrecondition: http.StatusPreconditionFailed,
	codes.Unimplemented:      http.StatusNotImplemented,
	codes.Unavailable:        http.StatusServiceUnavailable,
}

// HTTPStatus maps a code to its HTTP status. OK and unknown codes map to 500:
// an ErrorResponse is never a success.
func HTTPStatus(code codes.Code) int {
	if s, ok := httpStatusByCode[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// StatusCode is HTTPStatus(e.Code).
func (e ErrorResponse) StatusCode() int { return HTTPStatus(e.Code) }

// ToHTTP writes e as an uncacheable JSON body with the matching status.
func (e ErrorResponse) ToHTTP(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Content-Type", "application/json; charset=utf-8")
	h.Set("Cache-Control", "no-store")
	h.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(e.StatusCode())
	_ = json.NewEncoder(w).Encode(e.toWire())
}
