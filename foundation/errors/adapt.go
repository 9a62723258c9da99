package errors

import (
	"context"
	"errors"

	"github.com/vortex-fintech/go-iban/foundation/iban"
)

// ToErrorResponse classifies err for a client:
//
//   - ErrorResponse values and pointers pass through,
//   - context cancellation and deadlines keep their own codes,
//   - iban.ValidationError becomes an iban_* InvalidArgument (FromIBANError),
//   - anything else is Internal with reason "unexpected_error".
//
// Wrapped errors are unwrapped in that order.
func ToErrorResponse(err error) ErrorResponse {
	var (
		resp  ErrorResponse
		respP *ErrorResponse
		ve    iban.ValidationError
	)
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		return Canceled()
	case errors.Is(err, context.DeadlineExceeded):
		return DeadlineExceeded()
	case errors.As(err, &resp):
		return resp
	case errors.As(err, &respP) && respP != nil:
		return *respP
	case errors.As(err, &ve):
		return FromIBANError(ve)
	}
	return Internal().WithReason("unexpected_error")
}
