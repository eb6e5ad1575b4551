// Package pricing computes quotes from deterministic per-service rules.
// The engine is pure: identical inputs always produce identical quotes and
// nothing outside the arguments is read or written.
package pricing

import (
	"github.com/shopspring/decimal"

	"quote-calculator/core/types"
)

// Engine prices quote requests. The zero value is ready to use and safe for
// concurrent callers.
type Engine struct{}

// NewEngine returns a pricing engine
func NewEngine() *Engine {
	return &Engine{}
}

// Calculate returns the price for kind, or zero when the request cannot be
// priced. Callers must treat zero as "invalid or incomplete input".
func (e *Engine) Calculate(kind types.ServiceKind, req types.QuoteRequest) decimal.Decimal {
	return e.evaluate(kind, req).Amount
}

// Evaluate prices req for its own kind and reports why it was rejected, if it was.
func (e *Engine) Evaluate(req types.QuoteRequest) types.Quote {
	return e.evaluate(req.Kind, req)
}

func (e *Engine) evaluate(kind types.ServiceKind, req types.QuoteRequest) types.Quote {
	var q types.Quote
	switch kind {
	case types.ServiceWeb:
		q = priceWeb(req.Web)
	case types.ServiceDesign:
		q = priceDesign(req.Design)
	case types.ServiceWriting:
		q = priceWriting(req.Writing)
	default:
		return types.Rejected(kind, types.RejectUnknownService)
	}

	// Zero doubles as the rejection sentinel, so a rule that ever produced a
	// non-positive total must not leak out as a valid quote.
	if q.Rejection == types.RejectionNone && !q.Amount.IsPositive() {
		return types.Rejected(kind, types.RejectNonPositiveTotal)
	}
	return q
}
