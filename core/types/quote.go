package types

import "github.com/shopspring/decimal"

// Rejection explains why a request could not be priced.
// The zero value means the quote was accepted.
type Rejection string

const (
	RejectionNone          Rejection = ""
	RejectUnknownService   Rejection = "unknown_service"
	RejectMissingFields    Rejection = "missing_fields"
	RejectPages            Rejection = "pages_out_of_range"
	RejectTimeline         Rejection = "timeline_out_of_range"
	RejectEcommerce        Rejection = "ecommerce_not_yes_no"
	RejectDesignType       Rejection = "unknown_design_type"
	RejectRevisions        Rejection = "negative_revisions"
	RejectWordCount        Rejection = "word_count_below_minimum"
	RejectSEO              Rejection = "seo_not_yes_no"
	RejectNonPositiveTotal Rejection = "non_positive_total"
)

// Quote is the result of pricing one request.
// A quote is only usable when Amount > 0; a zero amount always means rejection.
type Quote struct {
	// Kind is the service the amount was computed for
	Kind ServiceKind `json:"service"`

	// Amount is currency-agnostic; display prefixes are a presentation concern
	Amount decimal.Decimal `json:"amount"`

	// Rejection is set when Amount is zero
	Rejection Rejection `json:"rejection,omitempty"`
}

// Accepted returns a priced quote
func Accepted(kind ServiceKind, amount decimal.Decimal) Quote {
	return Quote{Kind: kind, Amount: amount}
}

// Rejected returns a zero quote carrying the reason
func Rejected(kind ServiceKind, reason Rejection) Quote {
	return Quote{Kind: kind, Amount: decimal.Zero, Rejection: reason}
}

// Valid reports whether the quote may be shown or relayed
func (q Quote) Valid() bool {
	return q.Rejection == RejectionNone && q.Amount.IsPositive()
}
