package errors

import (
	"github.com/vortex-fintech/go-iban/foundation/iban"
	"google.golang.org/grpc/codes"
)

const (
	// DomainIBAN tags responses produced from IBAN validation outcomes.
	DomainIBAN = "iban"

	// FieldIBAN is the violation field used for IBAN input.
	FieldIBAN = "iban"
)

// FromIBAN converts a failed validation reason into an InvalidArgument
// response, e.g. ReasonTooShort -> reason "iban_too_short". ReasonValid has
// no error form and maps to Internal, as it only shows up here by mistake.
func FromIBAN(r iban.Reason) ErrorResponse {
	if r == iban.ReasonValid {
		return Internal().WithReason("unexpected_valid_iban").WithDomain(DomainIBAN)
	}
	code := "iban_" + r.String()
	return New(r.Message(), codes.InvalidArgument, nil).
		WithReason(code).
		WithDomain(DomainIBAN).
		WithViolations([]FieldViolation{{
			Field:       FieldIBAN,
			Reason:      r.String(),
			Description: r.Message(),
		}})
}

// FromIBANError is FromIBAN for a ValidationError, keeping the country the
// caller typed as a detail.
func FromIBANError(ve iban.ValidationError) ErrorResponse {
	e := FromIBAN(ve.Reason)
	if ve.Country != "" {
		e = e.WithDetail("country", ve.Country)
	}
	return e
}
