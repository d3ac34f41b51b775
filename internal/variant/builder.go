package variant

import (
	"fmt"
	"math"
	"strings"

	"niaga-be/internal/attribute"
	"niaga-be/internal/tabular"
)

// Builder turns generation requests and imported tables into validated
// variant lists. It is pure: no I/O, no logging, no shared state — one
// request in, one validated list or one structured error out.
//
// The two paths deliberately differ in error policy. Generated batches
// are trusted input, so any failure aborts the whole batch. Imported
// tables are external data, so every bad row is reported together with
// the rest.
type Builder struct {
	known []attribute.Attribute
}

func NewBuilder(known []attribute.Attribute) *Builder {
	return &Builder{known: known}
}

// BuildFromAttributes enumerates every combination of the request's
// axes, prices it and renders its SKU, and returns the drafts only if
// the whole batch validates: every price positive and finite, every
// SKU unique (case-sensitive). All-or-nothing; a *ValidationError
// identifies the offending combinations otherwise.
func (b *Builder) BuildFromAttributes(req GenerationRequest) ([]*Variant, error) {
	if !isFinitePositive(req.BasePrice) {
		return nil, &ValidationError{Issues: []Issue{{
			Kind:    KindInvalidPrice,
			Field:   "basePrice",
			Message: fmt.Sprintf("base price must be a finite positive number, got %v", req.BasePrice),
		}}}
	}

	axes := make([]Axis, 0, len(req.Attributes))
	for _, ax := range req.Attributes {
		if len(ax.Values) > 0 {
			axes = append(axes, ax)
		}
	}

	seq := Combinations(axes)
	variants := make([]*Variant, 0, seq.Count())
	seenSKU := make(map[string]int, seq.Count())
	var issues []Issue

	seq.ForEach(func(i int, combo Combination) bool {
		price := ResolvePrice(req.BasePrice, combo, req.PriceRules)
		sku := GenerateSKU(req.SKUPattern, combo, b.known)

		if !isFinitePositive(price) {
			issues = append(issues, Issue{
				Kind:    KindInvalidPrice,
				Index:   i,
				SKU:     sku,
				Field:   "price",
				Message: fmt.Sprintf("combination %d resolves to invalid price %v", i, price),
			})
		}
		if first, dup := seenSKU[sku]; dup {
			issues = append(issues, Issue{
				Kind:    KindDuplicateSKU,
				Index:   i,
				SKU:     sku,
				Field:   "sku",
				Message: fmt.Sprintf("combination %d produces SKU %q already used by combination %d", i, sku, first),
			})
		} else {
			seenSKU[sku] = i
		}

		variants = append(variants, &Variant{
			ProductID:  req.ProductID,
			SKU:        sku,
			Price:      price,
			Stock:      req.DefaultStock,
			Attributes: combo,
			IsActive:   true,
			IsDefault:  i == 0,
		})
		return true
	})

	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}
	return variants, nil
}

// BuildFromTable parses exchange-format text and resolves each row
// into a variant draft. Row failures are collected, not
// short-circuited, so one report covers the whole file; only a
// structural parse failure aborts immediately.
func (b *Builder) BuildFromTable(productID, text string) ([]*Variant, error) {
	rows, err := tabular.Parse(text)
	if err != nil {
		return nil, err
	}

	var (
		variants []*Variant
		issues   []Issue
	)

	for _, row := range rows {
		rowIssues := b.validateRow(row)
		if len(rowIssues) > 0 {
			issues = append(issues, rowIssues...)
			continue
		}

		combo := b.resolveCombination(row.Attributes)
		variants = append(variants, &Variant{
			ProductID:    productID,
			SKU:          row.SKU,
			Price:        row.Price,
			ComparePrice: row.ComparePrice,
			Stock:        row.Stock,
			Images:       row.Images,
			Attributes:   combo,
			IsActive:     row.IsActive,
		})
	}

	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}
	return variants, nil
}

func (b *Builder) validateRow(row tabular.Row) []Issue {
	var issues []Issue

	if strings.TrimSpace(row.SKU) == "" {
		issues = append(issues, Issue{
			Kind:    KindBlankSKU,
			Index:   row.Index,
			Field:   "sku",
			Message: fmt.Sprintf("row %d has no SKU", row.Index),
		})
	}
	if !isFinitePositive(row.Price) {
		issues = append(issues, Issue{
			Kind:    KindInvalidPrice,
			Index:   row.Index,
			SKU:     row.SKU,
			Field:   "price",
			Message: fmt.Sprintf("row %d has invalid price %v", row.Index, row.Price),
		})
	}
	if len(row.Attributes) == 0 {
		issues = append(issues, Issue{
			Kind:    KindNoAttributes,
			Index:   row.Index,
			SKU:     row.SKU,
			Message: fmt.Sprintf("row %d matched no attribute columns", row.Index),
		})
	}
	for key := range row.Attributes {
		if b.findAttribute(key) == nil {
			issues = append(issues, Issue{
				Kind:    KindUnknownAttribute,
				Index:   row.Index,
				SKU:     row.SKU,
				Field:   key,
				Message: fmt.Sprintf("row %d references unknown attribute %q", row.Index, key),
			})
		}
	}

	return issues
}

func (b *Builder) findAttribute(key string) *attribute.Attribute {
	for i := range b.known {
		if b.known[i].Matches(key) {
			return &b.known[i]
		}
	}
	return nil
}

// resolveCombination orders a row's attribute cells by the known
// attribute order so imported combinations line up with generated
// ones. Call only after validateRow cleared every key.
func (b *Builder) resolveCombination(cells map[string]string) Combination {
	var combo Combination
	for _, a := range b.known {
		for key, value := range cells {
			if a.Matches(key) {
				combo = append(combo, Pair{AttributeID: a.ID, Value: value})
				break
			}
		}
	}
	return combo
}

func isFinitePositive(f float64) bool {
	return f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}
