package httpapi

import (
	"github.com/vortex-fintech/go-iban/data/recent"
	"github.com/vortex-fintech/go-iban/foundation/iban"
)

// ibanRequest is the body of every POST endpoint. An empty value is a
// validation outcome (reason "empty"), not a malformed request.
type ibanRequest struct {
	IBAN string `json:"iban" validate:"max=128"`
}

// addRecentRequest must carry a valid IBAN.
type addRecentRequest struct {
	IBAN string `json:"iban" validate:"required,max=128,iban"`
}

type validateResponse struct {
	IBAN    string      `json:"iban"`
	Valid   bool        `json:"valid"`
	Reason  iban.Reason `json:"reason"`
	Message string      `json:"message"`
	Country string      `json:"country,omitempty"`
}

type decomposeResponse struct {
	IBAN          string      `json:"iban"`
	Formatted     string      `json:"formatted"`
	Country       string      `json:"country"`
	Flag          string      `json:"flag,omitempty"`
	BankCode      string      `json:"bank_code"`
	BranchCode    string      `json:"branch_code,omitempty"`
	AccountNumber string      `json:"account_number"`
	Status        iban.Status `json:"status"`
}

type recentResponse struct {
	Items []recentItem `json:"items"`
}

type recentItem struct {
	recent.Entry
	Formatted string `json:"formatted"`
}

type span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type layoutResponse struct {
	Country string `json:"country"`
	Flag    string `json:"flag"`
	Length  int    `json:"length"`
	Bank    span   `json:"bank"`
	Branch  *span  `json:"branch,omitempty"`
	Account span   `json:"account"`
}

type countriesResponse struct {
	Items []layoutResponse `json:"items"`
}
