package types

// YesNo is a boolean-like form choice
type YesNo string

const (
	YesNoUnset YesNo = ""
	Yes        YesNo = "yes"
	No         YesNo = "no"
)

// IsValid reports whether the value is exactly "yes" or "no"
func (v YesNo) IsValid() bool {
	return v == Yes || v == No
}

// DesignType selects the base price of a design quote
type DesignType string

const (
	DesignLogo     DesignType = "logo"
	DesignBranding DesignType = "branding"
	DesignPrint    DesignType = "print"
)

// WebFields are the web development inputs
type WebFields struct {
	// Pages is the number of pages, must be at least 1
	Pages int `json:"pages"`

	// Timeline is the delivery window in months (1, 2 or 3)
	Timeline int `json:"timeline"`

	// Ecommerce marks whether a shop is needed
	Ecommerce YesNo `json:"ecommerce"`
}

// DesignFields are the graphic design inputs
type DesignFields struct {
	// DesignType is logo, branding or print
	DesignType DesignType `json:"design_type"`

	// Revisions defaults to 0 when absent
	Revisions int `json:"revisions"`
}

// WritingFields are the content writing inputs
type WritingFields struct {
	// WordCount must be at least 100
	WordCount int `json:"word_count"`

	// SEO marks whether optimization is needed
	SEO YesNo `json:"seo"`
}

// QuoteRequest is one form submission. Exactly one of Web, Design or Writing
// is set and it matches Kind; the others stay nil.
type QuoteRequest struct {
	Kind           ServiceKind    `json:"service"`
	AccountManager string         `json:"account_manager"`
	Web            *WebFields     `json:"web,omitempty"`
	Design         *DesignFields  `json:"design,omitempty"`
	Writing        *WritingFields `json:"writing,omitempty"`
}

// NewWebRequest builds a web development request
func NewWebRequest(fields WebFields, manager string) QuoteRequest {
	return QuoteRequest{Kind: ServiceWeb, AccountManager: manager, Web: &fields}
}

// NewDesignRequest builds a graphic design request
func NewDesignRequest(fields DesignFields, manager string) QuoteRequest {
	return QuoteRequest{Kind: ServiceDesign, AccountManager: manager, Design: &fields}
}

// NewWritingRequest builds a content writing request
func NewWritingRequest(fields WritingFields, manager string) QuoteRequest {
	return QuoteRequest{Kind: ServiceWriting, AccountManager: manager, Writing: &fields}
}
