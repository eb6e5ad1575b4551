package types

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// SubmittedAtLayout renders UTC timestamps with an explicit +00:00 offset.
const SubmittedAtLayout = "2006-01-02T15:04:05-07:00"

// SubmissionRecord is the payload forwarded to the relay. It never carries
// identifiers handed back by the relay.
type SubmissionRecord struct {
	Service        ServiceKind
	AccountManager string
	Quote          decimal.Decimal
	SubmittedAt    time.Time
}

type submissionWire struct {
	Service        string      `json:"service"`
	AccountManager string      `json:"account_manager"`
	Quote          json.Number `json:"quote"`
	SubmittedAt    string      `json:"submitted_at"`
}

// MarshalJSON writes the quote as a JSON number and the timestamp in UTC
func (r SubmissionRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(submissionWire{
		Service:        r.Service.String(),
		AccountManager: r.AccountManager,
		Quote:          json.Number(r.Quote.String()),
		SubmittedAt:    r.SubmittedAt.UTC().Format(SubmittedAtLayout),
	})
}

// RelayResponse is what the Submission Transport reports back
type RelayResponse struct {
	StatusCode int
	Body       []byte
}

// Success reports a 2xx status
func (r RelayResponse) Success() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// ConfirmationView is the sanitized success result returned to the form
type ConfirmationView struct {
	Quote   decimal.Decimal
	Message string
}

// MarshalJSON writes {quote, message} with quote as a JSON number
func (v ConfirmationView) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Quote   json.Number `json:"quote"`
		Message string      `json:"message"`
	}{
		Quote:   json.Number(v.Quote.String()),
		Message: v.Message,
	})
}
