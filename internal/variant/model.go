package variant

// Pair binds one attribute to one chosen value.
type Pair struct {
	AttributeID string `json:"attribute_id"`
	Value       string `json:"value"`
}

// Combination assigns exactly one value to each participating
// attribute, in the attributes' canonical order.
type Combination []Pair

// Axis is one attribute's contribution to a generation request: its id
// and the ordered values to enumerate. Value order is significant; it
// drives enumeration order and the fallback SKU.
type Axis struct {
	AttributeID string   `json:"attribute_id"`
	Values      []string `json:"values"`
}

// PriceRules maps attribute id -> value -> additive price adjustment.
// The table is sparse; a missing entry means no adjustment.
type PriceRules map[string]map[string]float64

// Adjustment returns the rule for one pair, zero when absent.
func (r PriceRules) Adjustment(attributeID, value string) float64 {
	if byValue, ok := r[attributeID]; ok {
		return byValue[value]
	}
	return 0
}

// Variant is one sellable product instance. Its combination is fixed
// at creation; price and stock stay editable afterwards.
type Variant struct {
	ID           string      `json:"id"`
	ProductID    string      `json:"product_id"`
	SKU          string      `json:"sku"`
	Price        float64     `json:"price"`
	ComparePrice *float64    `json:"compare_price,omitempty"`
	Stock        int         `json:"stock"`
	Attributes   Combination `json:"attributes"`
	Images       []string    `json:"images,omitempty"`
	IsActive     bool        `json:"is_active"`
	IsDefault    bool        `json:"is_default"`
}

// GenerationRequest is one immutable bulk-generation input: the full
// set of selections in, a validated variant list (or a validation
// error) out.
type GenerationRequest struct {
	ProductID    string
	Attributes   []Axis
	BasePrice    float64
	DefaultStock int
	SKUPattern   string
	PriceRules   PriceRules
}
