package variant

// ResolvePrice computes one combination's price: the base price plus
// the sum of the rule adjustments for each pair. No rounding is
// applied; a result that came out non-positive is returned as-is and
// rejected later by builder validation, never silently repaired. A
// finite, positive base price is the caller's precondition.
func ResolvePrice(basePrice float64, combo Combination, rules PriceRules) float64 {
	price := basePrice
	for _, p := range combo {
		price += rules.Adjustment(p.AttributeID, p.Value)
	}
	return price
}
