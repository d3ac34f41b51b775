package attribute

import (
	"sort"
	"strings"
)

// DefaultVocabulary lists the attribute names treated as "common" by
// the dedup policy. The list is locale-dependent, so callers can swap
// it out via NewCatalog.
var DefaultVocabulary = []string{
	"color", "颜色",
	"size", "尺寸", "尺码",
	"configuration", "配置",
}

// Catalog collapses near-duplicate attribute definitions into one
// canonical list. The policy is deliberately lossy: when two
// definitions share a comparison key, only one survives and the
// other's extra values are discarded.
type Catalog struct {
	vocabulary []string
}

func NewCatalog(vocabulary ...string) *Catalog {
	if len(vocabulary) == 0 {
		vocabulary = DefaultVocabulary
	}
	return &Catalog{vocabulary: vocabulary}
}

// IsCommon reports whether the attribute's name or display name
// contains one of the recognized vocabulary terms.
func (c *Catalog) IsCommon(a Attribute) bool {
	name := strings.ToLower(a.Name)
	label := strings.ToLower(a.Label())
	for _, term := range c.vocabulary {
		if strings.Contains(name, term) || strings.Contains(label, term) {
			return true
		}
	}
	return false
}

// Normalize deduplicates raw by comparison key. Newer definitions win
// by default; a common attribute beats a non-common one regardless of
// age. Survivors are ordered common-first, then alphabetically by
// label. Deterministic for identical input: timestamp ties keep the
// original list order.
func (c *Catalog) Normalize(raw []Attribute) []Attribute {
	if len(raw) == 0 {
		return []Attribute{}
	}

	// Newest first; stable sort keeps input order on equal timestamps.
	sorted := make([]Attribute, len(raw))
	copy(sorted, raw)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	kept := make(map[string]int) // key -> index into survivors
	var survivors []Attribute

	for _, a := range sorted {
		key := a.Key()
		idx, seen := kept[key]
		if !seen {
			kept[key] = len(survivors)
			survivors = append(survivors, a)
			continue
		}
		// Collision: the already-kept definition is newer (or equally
		// old and earlier in the list). It loses only when the
		// candidate is common and it is not.
		if c.IsCommon(a) && !c.IsCommon(survivors[idx]) {
			survivors[idx] = a
		}
	}

	sort.SliceStable(survivors, func(i, j int) bool {
		ci, cj := c.IsCommon(survivors[i]), c.IsCommon(survivors[j])
		if ci != cj {
			return ci
		}
		return strings.ToLower(survivors[i].Label()) < strings.ToLower(survivors[j].Label())
	})

	return survivors
}
