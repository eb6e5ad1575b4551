// Package types defines core domain types shared across all layers.
// This package contains NO business logic - only type definitions.
package types

import "strings"

// ServiceKind is the category of work being quoted
type ServiceKind string

const (
	ServiceWeb     ServiceKind = "web"
	ServiceDesign  ServiceKind = "design"
	ServiceWriting ServiceKind = "writing"
)

// ServiceKinds lists the priced kinds in display order
var ServiceKinds = []ServiceKind{ServiceWeb, ServiceDesign, ServiceWriting}

// ParseServiceKind normalizes a raw form value. Unknown values are kept as-is
// so the pricing engine can reject them.
func ParseServiceKind(raw string) ServiceKind {
	return ServiceKind(strings.ToLower(strings.TrimSpace(raw)))
}

// String returns the string representation of the kind
func (k ServiceKind) String() string {
	return string(k)
}

// IsEmpty reports whether no kind was selected
func (k ServiceKind) IsEmpty() bool {
	return k == ""
}

// IsValid checks if the kind is one the engine can price
func (k ServiceKind) IsValid() bool {
	switch k {
	case ServiceWeb, ServiceDesign, ServiceWriting:
		return true
	default:
		return false
	}
}

// Label returns the human-readable name used by the form
func (k ServiceKind) Label() string {
	switch k {
	case ServiceWeb:
		return "Web Development"
	case ServiceDesign:
		return "Graphic Design"
	case ServiceWriting:
		return "Content Writing"
	default:
		return string(k)
	}
}
