package variant

import (
	"regexp"
	"strings"

	"niaga-be/internal/attribute"
)

var placeholderRegex = regexp.MustCompile(`\{([^{}]+)\}`)

// GenerateSKU renders the SKU for one combination.
//
// With a pattern, every `{key}` placeholder whose key names a
// combination attribute (machine name or display name, compared
// case-insensitively) is replaced by that pair's value. Placeholders
// naming no attribute in the combination stay verbatim, and literal
// pattern text is never touched.
//
// Without a pattern, the SKU is the combination's values joined with
// hyphens, in combination order.
func GenerateSKU(pattern string, combo Combination, attrs []attribute.Attribute) string {
	if strings.TrimSpace(pattern) == "" {
		values := make([]string, len(combo))
		for i, p := range combo {
			values[i] = p.Value
		}
		return strings.Join(values, "-")
	}

	byID := make(map[string]attribute.Attribute, len(attrs))
	for _, a := range attrs {
		byID[a.ID] = a
	}

	return placeholderRegex.ReplaceAllStringFunc(pattern, func(ph string) string {
		key := ph[1 : len(ph)-1]
		for _, p := range combo {
			a, ok := byID[p.AttributeID]
			if !ok {
				continue
			}
			if a.Matches(key) {
				return p.Value
			}
		}
		return ph
	})
}
