// Package iban validates International Bank Account Numbers and splits them
// into bank, branch and account fields.
//
// Every function is pure and safe for concurrent use. Validation outcomes are
// reported as a Reason value rather than as errors; ValidationError exists for
// callers that prefer error-returning flow.
package iban

// Result is the outcome of Validate.
type Result struct {
	IBAN   string
	Valid  bool
	Reason Reason
}

// Err returns nil for a valid result and a ValidationError otherwise.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return ValidationError{Reason: r.Reason, Country: CountryOf(r.IBAN)}
}

// Validate normalizes raw and runs the structural and checksum checks.
func Validate(raw string) Result {
	s := Normalize(raw)
	if r := CheckStructure(s); r != ReasonValid {
		return Result{IBAN: s, Reason: r}
	}
	if !VerifyChecksum(s) {
		return Result{IBAN: s, Reason: ReasonChecksumFailed}
	}
	return Result{IBAN: s, Valid: true, Reason: ReasonValid}
}

// IsValid is the boolean form of Validate.
func IsValid(raw string) bool {
	return Validate(raw).Valid
}

// Decompose runs the whole pipeline on raw input. Invalid input yields
// StatusInvalid and empty fields.
func Decompose(raw string) Account {
	return DecomposeNormalized(Normalize(raw))
}

// Parse is Decompose with an error for invalid input.
func Parse(raw string) (Account, error) {
	res := Validate(raw)
	if !res.Valid {
		return Account{Status: StatusInvalid}, res.Err()
	}
	return DecomposeNormalized(res.IBAN), nil
}
