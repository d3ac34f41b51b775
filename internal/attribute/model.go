package attribute

import (
	"strings"
	"time"
)

type Type string

const (
	TypeText   Type = "TEXT"
	TypeColor  Type = "COLOR"
	TypeImage  Type = "IMAGE"
	TypeSelect Type = "SELECT"
	TypeNumber Type = "NUMBER"
)

func (t Type) Valid() bool {
	switch t {
	case TypeText, TypeColor, TypeImage, TypeSelect, TypeNumber:
		return true
	}
	return false
}

type Attribute struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	DisplayName  *string   `json:"display_name,omitempty"`
	Type         Type      `json:"type"`
	Values       []string  `json:"values"`
	IsRequired   bool      `json:"is_required"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

// Label is the human-facing name: display name when present, machine
// name otherwise.
func (a Attribute) Label() string {
	if a.DisplayName != nil && strings.TrimSpace(*a.DisplayName) != "" {
		return *a.DisplayName
	}
	return a.Name
}

// Key is the comparison key used for deduplication and for matching
// import columns / SKU placeholders against this attribute.
func (a Attribute) Key() string {
	return strings.ToLower(strings.TrimSpace(a.Label()))
}

// Matches reports whether s names this attribute, by machine name or
// display name, case-insensitively.
func (a Attribute) Matches(s string) bool {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, a.Name) {
		return true
	}
	return a.DisplayName != nil && strings.EqualFold(s, *a.DisplayName)
}

type NewAttributeInput struct {
	Name         string
	DisplayName  *string
	Type         Type
	Values       []string
	IsRequired   bool
	DisplayOrder int
}
