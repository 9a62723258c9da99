package iban

import (
	"errors"
	"fmt"
)

// Reason is the closed set of validation outcomes.
type Reason uint8

const (
	ReasonValid Reason = iota
	ReasonEmpty
	ReasonTooShort
	ReasonTooLong
	ReasonBadFormat
	ReasonChecksumFailed
)

var reasonCodes = [...]string{
	ReasonValid:          "valid",
	ReasonEmpty:          "empty",
	ReasonTooShort:       "too_short",
	ReasonTooLong:        "too_long",
	ReasonBadFormat:      "bad_format",
	ReasonChecksumFailed: "checksum_failed",
}

var reasonMessages = [...]string{
	ReasonValid:          "IBAN is valid",
	ReasonEmpty:          "IBAN is empty",
	ReasonTooShort:       "IBAN is too short",
	ReasonTooLong:        "IBAN is too long",
	ReasonBadFormat:      "IBAN must start with a two-letter country code followed by check digits",
	ReasonChecksumFailed: "IBAN check digits do not match",
}

// ErrInvalid is matched by every ValidationError through errors.Is.
var ErrInvalid = errors.New("iban: invalid")

// String returns the stable machine-readable code.
func (r Reason) String() string {
	if int(r) < len(reasonCodes) {
		return reasonCodes[r]
	}
	return fmt.Sprintf("reason(%d)", uint8(r))
}

// Message returns a short human-readable explanation.
func (r Reason) Message() string {
	if int(r) < len(reasonMessages) {
		return reasonMessages[r]
	}
	return "IBAN is invalid"
}

func (r Reason) MarshalText() ([]byte, error) {
	if int(r) >= len(reasonCodes) {
		return nil, fmt.Errorf("iban: unknown reason %d", uint8(r))
	}
	return []byte(reasonCodes[r]), nil
}

func (r *Reason) UnmarshalText(b []byte) error {
	s := string(b)
	for i, code := range reasonCodes {
		if code == s {
			*r = Reason(i)
			return nil
		}
	}
	return fmt.Errorf("iban: unknown reason %q", s)
}

// ValidationError carries a failed Reason through error-returning APIs.
type ValidationError struct {
	Reason  Reason
	Country string
}

func (e ValidationError) Error() string {
	if e.Country == "" {
		return "iban: " + e.Reason.String()
	}
	return fmt.Sprintf("iban: %s (country %s)", e.Reason, e.Country)
}

func (e ValidationError) Unwrap() error { return ErrInvalid }

// ReasonOf extracts the Reason from err. It returns ReasonValid for nil and
// false for errors that do not carry a Reason.
func ReasonOf(err error) (Reason, bool) {
	if err == nil {
		return ReasonValid, true
	}
	var ve ValidationError
	if errors.As(err, &ve) {
		return ve.Reason, true
	}
	return 0, false
}
