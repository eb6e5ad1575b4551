// Package pricing - pricing rule tests
package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"quote-calculator/core/types"
)

func mustAmount(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

// TestWebFormula checks 500p + 500t + 2000 (ecommerce) over the valid domain
func TestWebFormula(t *testing.T) {
	engine := NewEngine()
	for pages := 1; pages <= 25; pages++ {
		for timeline := 1; timeline <= 3; timeline++ {
			for _, ecom := range []types.YesNo{types.Yes, types.No} {
				req := types.NewWebRequest(types.WebFields{Pages: pages, Timeline: timeline, Ecommerce: ecom}, "")
				want := int64(500*pages + 500*timeline)
				if ecom == types.Yes {
					want += 2000
				}
				got := engine.Calculate(types.ServiceWeb, req)
				if !got.Equal(decimal.NewFromInt(want)) {
					t.Errorf("web p=%d t=%d e=%s: expected %d, got %s", pages, timeline, ecom, want, got)
				}
			}
		}
	}
}

// TestDesignFormula checks base(type) + 300r
func TestDesignFormula(t *testing.T) {
	engine := NewEngine()
	bases := map[types.DesignType]int64{
		types.DesignLogo:     1500,
		types.DesignBranding: 3000,
		types.DesignPrint:    1000,
	}
	for dt, base := range bases {
		for revisions := 0; revisions <= 10; revisions++ {
			req := types.NewDesignRequest(types.DesignFields{DesignType: dt, Revisions: revisions}, "")
			want := decimal.NewFromInt(base + 300*int64(revisions))
			if got := engine.Calculate(types.ServiceDesign, req); !got.Equal(want) {
				t.Errorf("design %s r=%d: expected %s, got %s", dt, revisions, want, got)
			}
		}
	}
}

// TestWritingFormula checks 1.5w + 500 (seo), including non-multiples of 100
func TestWritingFormula(t *testing.T) {
	engine := NewEngine()
	for _, words := range []int{100, 101, 150, 199, 250, 1000, 1234} {
		for _, seo := range []types.YesNo{types.Yes, types.No} {
			req := types.NewWritingRequest(types.WritingFields{WordCount: words, SEO: seo}, "")
			want := decimal.NewFromInt(int64(words)).Mul(mustAmount(t, "1.5"))
			if seo == types.Yes {
				want = want.Add(decimal.NewFromInt(500))
			}
			if got := engine.Calculate(types.ServiceWriting, req); !got.Equal(want) {
				t.Errorf("writing w=%d seo=%s: expected %s, got %s", words, seo, want, got)
			}
		}
	}
}

// TestScenarios covers the reference end-to-end amounts
func TestScenarios(t *testing.T) {
	engine := NewEngine()
	cases := []struct {
		name string
		req  types.QuoteRequest
		want string
	}{
		{"web 3 pages 2 months shop", types.NewWebRequest(types.WebFields{Pages: 3, Timeline: 2, Ecommerce: types.Yes}, ""), "4500"},
		{"branding 2 revisions", types.NewDesignRequest(types.DesignFields{DesignType: types.DesignBranding, Revisions: 2}, ""), "3600"},
		{"250 words no seo", types.NewWritingRequest(types.WritingFields{WordCount: 250, SEO: types.No}, ""), "375"},
		{"150 words", types.NewWritingRequest(types.WritingFields{WordCount: 150, SEO: types.No}, ""), "225"},
		{"web zero pages", types.NewWebRequest(types.WebFields{Pages: 0, Timeline: 2, Ecommerce: types.Yes}, ""), "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := engine.Calculate(tc.req.Kind, tc.req)
			if !got.Equal(mustAmount(t, tc.want)) {
				t.Errorf("Expected %s, got %s", tc.want, got)
			}
		})
	}
}

// TestRejections proves every out-of-range field yields zero with a reason
func TestRejections(t *testing.T) {
	engine := NewEngine()
	cases := []struct {
		name   string
		kind   types.ServiceKind
		req    types.QuoteRequest
		reason types.Rejection
	}{
		{"negative pages", types.ServiceWeb, types.NewWebRequest(types.WebFields{Pages: -1, Timeline: 1, Ecommerce: types.No}, ""), types.RejectPages},
		{"timeline zero", types.ServiceWeb, types.NewWebRequest(types.WebFields{Pages: 2, Timeline: 0, Ecommerce: types.No}, ""), types.RejectTimeline},
		{"timeline four", types.ServiceWeb, types.NewWebRequest(types.WebFields{Pages: 2, Timeline: 4, Ecommerce: types.No}, ""), types.RejectTimeline},
		{"ecommerce unset", types.ServiceWeb, types.NewWebRequest(types.WebFields{Pages: 2, Timeline: 1}, ""), types.RejectEcommerce},
		{"ecommerce maybe", types.ServiceWeb, types.NewWebRequest(types.WebFields{Pages: 2, Timeline: 1, Ecommerce: "maybe"}, ""), types.RejectEcommerce},
		{"web fields missing", types.ServiceWeb, types.QuoteRequest{Kind: types.ServiceWeb}, types.RejectMissingFields},
		{"unknown design", types.ServiceDesign, types.NewDesignRequest(types.DesignFields{DesignType: "mural"}, ""), types.RejectDesignType},
		{"negative revisions", types.ServiceDesign, types.NewDesignRequest(types.DesignFields{DesignType: types.DesignLogo, Revisions: -1}, ""), types.RejectRevisions},
		{"99 words", types.ServiceWriting, types.NewWritingRequest(types.WritingFields{WordCount: 99, SEO: types.Yes}, ""), types.RejectWordCount},
		{"seo unset", types.ServiceWriting, types.NewWritingRequest(types.WritingFields{WordCount: 500}, ""), types.RejectSEO},
		{"unknown kind", "video", types.QuoteRequest{Kind: "video"}, types.RejectUnknownService},
		{"empty kind", "", types.QuoteRequest{}, types.RejectUnknownService},
		{"kind mismatch", types.ServiceWriting, types.NewWebRequest(types.WebFields{Pages: 3, Timeline: 2, Ecommerce: types.Yes}, ""), types.RejectMissingFields},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := engine.Calculate(tc.kind, tc.req); !got.IsZero() {
				t.Errorf("Expected zero amount, got %s", got)
			}
			req := tc.req
			req.Kind = tc.kind
			q := engine.Evaluate(req)
			if q.Valid() {
				t.Fatal("rejected quote reported as valid")
			}
			if q.Rejection != tc.reason {
				t.Errorf("Expected rejection %q, got %q", tc.reason, q.Rejection)
			}
		})
	}
}

// TestCalculateIsPure proves repeated calls agree and do not mutate input
func TestCalculateIsPure(t *testing.T) {
	engine := NewEngine()
	req := types.NewDesignRequest(types.DesignFields{DesignType: types.DesignPrint, Revisions: 4}, "Leanne Graham")
	before := *req.Design

	first := engine.Calculate(types.ServiceDesign, req)
	second := engine.Calculate(types.ServiceDesign, req)
	if !first.Equal(second) {
		t.Errorf("Expected identical amounts, got %s and %s", first, second)
	}
	if *req.Design != before {
		t.Error("Calculate mutated its input")
	}
	if !(&Engine{}).Calculate(types.ServiceDesign, req).Equal(first) {
		t.Error("zero-value engine disagrees with NewEngine")
	}
}

// TestAcceptedQuotesArePositive guards the zero-as-rejection sentinel
func TestAcceptedQuotesArePositive(t *testing.T) {
	engine := NewEngine()
	q := engine.Evaluate(types.NewDesignRequest(types.DesignFields{DesignType: types.DesignPrint}, ""))
	if !q.Valid() {
		t.Fatalf("expected valid quote, got rejection %q", q.Rejection)
	}
	if !q.Amount.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("Expected 1000, got %s", q.Amount)
	}
	if q.Kind != types.ServiceDesign {
		t.Errorf("Expected kind design, got %s", q.Kind)
	}
}
