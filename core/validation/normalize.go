// Package validation turns raw form values into typed quote requests.
// It only coerces and requires a service kind; numeric bounds belong to the
// pricing engine so the form and the backend cannot disagree.
package validation

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"quote-calculator/core/types"
	qerrors "quote-calculator/internal/errors"
)

// Field names accepted from the form
const (
	FieldService        = "service"
	FieldAccountManager = "account_manager"
	FieldPages          = "pages"
	FieldTimeline       = "timeline"
	FieldEcommerce      = "ecommerce"
	FieldDesignType     = "design_type"
	FieldRevisions      = "revisions"
	FieldWordCount      = "word_count"
	FieldSEO            = "seo"
)

// Form is the loosely-typed field bag posted by the widget
type Form map[string]string

// Get returns the sanitized value of name
func (f Form) Get(name string) string {
	return SanitizeText(f[name])
}

// FormFromJSON flattens a decoded JSON object into a Form. Numbers keep their
// literal text, booleans map to yes/no and nested values are ignored.
func FormFromJSON(obj map[string]interface{}) Form {
	form := make(Form, len(obj))
	for k, v := range obj {
		switch val := v.(type) {
		case string:
			form[k] = val
		case json.Number:
			form[k] = val.String()
		case float64:
			form[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			if val {
				form[k] = string(types.Yes)
			} else {
				form[k] = string(types.No)
			}
		case nil:
			form[k] = ""
		default:
			// arrays and objects are not form fields
		}
	}
	return form
}

// Normalize sanitizes form and builds the typed request for the selected kind.
// A missing kind fails with a MISSING_SERVICE_TYPE error. An unknown kind is
// returned untouched so the pricing engine rejects it.
func Normalize(form Form) (types.QuoteRequest, error) {
	kind := types.ParseServiceKind(form.Get(FieldService))
	if kind.IsEmpty() {
		return types.QuoteRequest{}, qerrors.MissingServiceType()
	}

	manager := form.Get(FieldAccountManager)

	switch kind {
	case types.ServiceWeb:
		return types.NewWebRequest(types.WebFields{
			Pages:     toInt(form.Get(FieldPages)),
			Timeline:  toInt(form.Get(FieldTimeline)),
			Ecommerce: types.YesNo(form.Get(FieldEcommerce)),
		}, manager), nil
	case types.ServiceDesign:
		return types.NewDesignRequest(types.DesignFields{
			DesignType: types.DesignType(form.Get(FieldDesignType)),
			Revisions:  toInt(form.Get(FieldRevisions)),
		}, manager), nil
	case types.ServiceWriting:
		return types.NewWritingRequest(types.WritingFields{
			WordCount: toInt(form.Get(FieldWordCount)),
			SEO:       types.YesNo(form.Get(FieldSEO)),
		}, manager), nil
	default:
		return types.QuoteRequest{Kind: kind, AccountManager: manager}, nil
	}
}

// toInt reads the leading integer of s ("12", "-3", "3.9" -> 3, "12abc" -> 12).
// Anything without leading digits is 0; out-of-range values saturate.
func toInt(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	end := 0
	if s[0] == '+' || s[0] == '-' {
		end = 1
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0
	}

	n, err := strconv.ParseInt(s[:end], 10, strconv.IntSize)
	if err != nil {
		if s[0] == '-' {
			return math.MinInt
		}
		return math.MaxInt
	}
	return int(n)
}
