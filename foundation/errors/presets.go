package errors

import "google.golang.org/grpc/codes"

// Presets return a fresh value on every call.

func InvalidArgument() ErrorResponse {
	return New("Invalid argument", codes.InvalidArgument, nil).WithReason("invalid_argument")
}

func NotFound() ErrorResponse {
	return New("Resource not found", codes.NotFound, nil).WithReason("not_found")
}

func Canceled() ErrorResponse {
	return New("Request canceled", codes.Canceled, nil).WithReason("canceled")
}

func DeadlineExceeded() ErrorResponse {
	return New("Deadline exceeded", codes.DeadlineExceeded, nil).WithReason("deadline_exceeded")
}

func Internal() ErrorResponse {
	return New("Internal error", codes.Internal, nil).WithReason("internal")
}

func Unavailable() ErrorResponse {
	return New("Service unavailable", codes.Unavailable, nil).WithReason("unavailable")
}

// Unimplemented is returned for features switched off by configuration,
// such as the recent lookups list without a store.
func Unimplemented() ErrorResponse {
	return New("Not implemented", codes.Unimplemented, nil).WithReason("unimplemented")
}

// ValidationFields reports request violations keyed by field path, with the
// same pairs repeated in Details for clients that only read the map.
func ValidationFields(fields map[string]string) ErrorResponse {
	return ValidationViolations(ViolationsFromMap(fields)).WithDetails(fields)
}

func ValidationViolations(v []FieldViolation) ErrorResponse {
	return New("Request validation failed", codes.InvalidArgument, nil).
		WithReason("validation_failed").
		WithViolations(v)
}
