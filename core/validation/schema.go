package validation

import "quote-calculator/core/types"

// FieldType is how a field is rendered and coerced
type FieldType string

const (
	FieldTypeInteger FieldType = "integer"
	FieldTypeChoice  FieldType = "choice"
	FieldTypeText    FieldType = "text"
)

// FieldSpec describes one form input
type FieldSpec struct {
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
	Min      *int      `json:"min,omitempty"`
	Options  []string  `json:"options,omitempty"`
	Default  string    `json:"default,omitempty"`
}

// ServiceSchema lists the fields shown when a kind is selected
type ServiceSchema struct {
	Kind   types.ServiceKind `json:"service"`
	Label  string            `json:"label"`
	Fields []FieldSpec       `json:"fields"`
}

func intPtr(v int) *int { return &v }

var yesNoOptions = []string{string(types.Yes), string(types.No)}

// AccountManagerField is carried by every kind and forwarded, never priced
var AccountManagerField = FieldSpec{
	Name:     FieldAccountManager,
	Label:    "Account Manager",
	Type:     FieldTypeText,
	Required: true,
}

// Schemas returns the field layout for every service kind in display order
func Schemas() []ServiceSchema {
	return []ServiceSchema{
		{
			Kind:  types.ServiceWeb,
			Label: types.ServiceWeb.Label(),
			Fields: []FieldSpec{
				AccountManagerField,
				{Name: FieldPages, Label: "Number of Pages", Type: FieldTypeInteger, Required: true, Min: intPtr(1)},
				{Name: FieldTimeline, Label: "Timeline", Type: FieldTypeChoice, Required: true, Options: []string{"1", "2", "3"}, Default: "1"},
				{Name: FieldEcommerce, Label: "E-commerce Needed?", Type: FieldTypeChoice, Required: true, Options: yesNoOptions},
			},
		},
		{
			Kind:  types.ServiceDesign,
			Label: types.ServiceDesign.Label(),
			Fields: []FieldSpec{
				AccountManagerField,
				{
					Name: FieldDesignType, Label: "Project Type", Type: FieldTypeChoice, Required: true,
					Options: []string{string(types.DesignLogo), string(types.DesignBranding), string(types.DesignPrint)},
					Default: string(types.DesignLogo),
				},
				{Name: FieldRevisions, Label: "Number of Revisions", Type: FieldTypeInteger, Min: intPtr(0), Default: "0"},
			},
		},
		{
			Kind:  types.ServiceWriting,
			Label: types.ServiceWriting.Label(),
			Fields: []FieldSpec{
				AccountManagerField,
				{Name: FieldWordCount, Label: "Word Count", Type: FieldTypeInteger, Required: true, Min: intPtr(100)},
				{Name: FieldSEO, Label: "SEO Optimization Needed?", Type: FieldTypeChoice, Required: true, Options: yesNoOptions},
			},
		},
	}
}
