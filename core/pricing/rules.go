package pricing

import (
	"github.com/shopspring/decimal"

	"quote-calculator/core/types"
)

// Rates
var (
	webPerPage        = decimal.NewFromInt(500)
	webEcommerce      = decimal.NewFromInt(2000)
	webPerTimeline    = decimal.NewFromInt(500)
	designPerRevision = decimal.NewFromInt(300)
	writingPerBlock   = decimal.NewFromInt(150)
	writingBlockSize  = decimal.NewFromInt(100)
	writingSEO        = decimal.NewFromInt(500)
)

// Bounds
const (
	webMinPages     = 1
	webMinTimeline  = 1
	webMaxTimeline  = 3
	writingMinWords = 100
)

// DesignBasePrices is the base price table for graphic design
var DesignBasePrices = map[types.DesignType]decimal.Decimal{
	types.DesignLogo:     decimal.NewFromInt(1500),
	types.DesignBranding: decimal.NewFromInt(3000),
	types.DesignPrint:    decimal.NewFromInt(1000),
}

// priceWeb: pages*500 + 2000 if ecommerce + timeline*500
func priceWeb(f *types.WebFields) types.Quote {
	if f == nil {
		return types.Rejected(types.ServiceWeb, types.RejectMissingFields)
	}
	if f.Pages < webMinPages {
		return types.Rejected(types.ServiceWeb, types.RejectPages)
	}
	if f.Timeline < webMinTimeline || f.Timeline > webMaxTimeline {
		return types.Rejected(types.ServiceWeb, types.RejectTimeline)
	}
	if !f.Ecommerce.IsValid() {
		return types.Rejected(types.ServiceWeb, types.RejectEcommerce)
	}

	price := webPerPage.Mul(decimal.NewFromInt(int64(f.Pages)))
	if f.Ecommerce == types.Yes {
		price = price.Add(webEcommerce)
	}
	price = price.Add(webPerTimeline.Mul(decimal.NewFromInt(int64(f.Timeline))))

	return types.Accepted(types.ServiceWeb, price)
}

// priceDesign: base(design_type) + revisions*300
func priceDesign(f *types.DesignFields) types.Quote {
	if f == nil {
		return types.Rejected(types.ServiceDesign, types.RejectMissingFields)
	}
	base, ok := DesignBasePrices[f.DesignType]
	if !ok {
		return types.Rejected(types.ServiceDesign, types.RejectDesignType)
	}
	if f.Revisions < 0 {
		return types.Rejected(types.ServiceDesign, types.RejectRevisions)
	}

	price := base.Add(designPerRevision.Mul(decimal.NewFromInt(int64(f.Revisions))))
	return types.Accepted(types.ServiceDesign, price)
}

// priceWriting: (words/100)*150 + 500 if seo. The division is exact, so
// 150 words cost 225.
func priceWriting(f *types.WritingFields) types.Quote {
	if f == nil {
		return types.Rejected(types.ServiceWriting, types.RejectMissingFields)
	}
	if f.WordCount < writingMinWords {
		return types.Rejected(types.ServiceWriting, types.RejectWordCount)
	}
	if !f.SEO.IsValid() {
		return types.Rejected(types.ServiceWriting, types.RejectSEO)
	}

	price := decimal.NewFromInt(int64(f.WordCount)).Div(writingBlockSize).Mul(writingPerBlock)
	if f.SEO == types.Yes {
		price = price.Add(writingSEO)
	}
	return types.Accepted(types.ServiceWriting, price)
}
