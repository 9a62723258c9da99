package errors

import (
	"fmt"
	"strings"

	play "github.com/go-playground/validator/v10"
)

// FromPlayground converts go-playground validation errors into
// InvalidArgument with one violation per failed field. Field paths are the
// namespace without its root type, so with a JSON tag name func registered
// they read like the request body: "payee.iban".
func FromPlayground(err play.ValidationErrors, tagToReason map[string]string) ErrorResponse {
	violations := make([]FieldViolation, 0, len(err))
	for _, fe := range err {
		tag := fe.Tag()
		reason := tagToReason[tag]
		if reason == "" {
			reason = "invalid"
		}

		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 && i+1 < len(field) {
			field = field[i+1:]
		}
		if field == "" {
			field = fe.Field()
		}

		violations = append(violations, FieldViolation{
			Field:       field,
			Reason:      reason,
			Description: fmt.Sprintf("%s validation failed (%s)", field, tag),
		})
	}
	return ValidationViolations(violations)
}
