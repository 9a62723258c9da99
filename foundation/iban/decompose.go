package iban

// Status tells how much of an Account could be derived.
type Status uint8

const (
	StatusInvalid Status = iota
	StatusComplete
	StatusPartial
)

var statusCodes = [...]string{
	StatusInvalid:  "invalid",
	StatusComplete: "complete",
	StatusPartial:  "partial",
}

func (s Status) String() string {
	if int(s) < len(statusCodes) {
		return statusCodes[s]
	}
	return "unknown"
}

func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Account is the structured view of a validated IBAN.
type Account struct {
	Country       string `json:"country,omitempty"`
	BankCode      string `json:"bank_code,omitempty"`
	BranchCode    string `json:"branch_code,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`
	Status        Status `json:"status"`
}

// Generic split used when no registered layout matches.
const (
	genericBankEnd = prefixLength + 4
)

// DecomposeNormalized splits a normalized IBAN into its fields.
//
// Input that fails the structural or checksum check yields an Account with
// StatusInvalid and no fields; nothing is sliced in that case. A registered
// layout whose length matches yields StatusComplete. Anything else falls
// back to the generic split (bank = 4 characters after the prefix, account =
// the rest) with StatusPartial.
func DecomposeNormalized(s string) Account {
	if CheckStructure(s) != ReasonValid || !VerifyChecksum(s) {
		return Account{Status: StatusInvalid}
	}

	country := s[:2]
	if l, ok := registry[country]; ok && l.Length == len(s) {
		return Account{
			Country:       country,
			BankCode:      l.Bank.slice(s),
			BranchCode:    l.Branch.slice(s),
			AccountNumber: l.Account.slice(s),
			Status:        StatusComplete,
		}
	}

	return Account{
		Country:       country,
		BankCode:      s[prefixLength:genericBankEnd],
		AccountNumber: s[genericBankEnd:],
		Status:        StatusPartial,
	}
}
