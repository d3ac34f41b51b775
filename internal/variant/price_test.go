package variant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePrice(t *testing.T) {
	rules := PriceRules{
		"color": {"red": 5},
		"size":  {"L": 2.5},
	}

	t.Run("Base plus adjustments", func(t *testing.T) {
		combo := Combination{
			{AttributeID: "color", Value: "red"},
			{AttributeID: "size", Value: "M"},
		}
		assert.Equal(t, 25.0, ResolvePrice(20, combo, rules))
	})

	t.Run("Missing rules mean zero adjustment", func(t *testing.T) {
		combo := Combination{
			{AttributeID: "color", Value: "blue"},
			{AttributeID: "size", Value: "M"},
		}
		assert.Equal(t, 20.0, ResolvePrice(20, combo, rules))
	})

	t.Run("Adjustments are additive", func(t *testing.T) {
		combo := Combination{
			{AttributeID: "color", Value: "red"},
			{AttributeID: "size", Value: "L"},
		}
		assert.Equal(t, 27.5, ResolvePrice(20, combo, rules))
	})

	t.Run("Invariant to pair order", func(t *testing.T) {
		forward := Combination{
			{AttributeID: "color", Value: "red"},
			{AttributeID: "size", Value: "L"},
		}
		reversed := Combination{
			{AttributeID: "size", Value: "L"},
			{AttributeID: "color", Value: "red"},
		}
		assert.Equal(t, ResolvePrice(20, forward, rules), ResolvePrice(20, reversed, rules))
	})

	t.Run("Nil rules", func(t *testing.T) {
		combo := Combination{{AttributeID: "color", Value: "red"}}
		assert.Equal(t, 20.0, ResolvePrice(20, combo, nil))
	})

	t.Run("Non-positive result returned as-is", func(t *testing.T) {
		negative := PriceRules{"color": {"red": -30}}
		combo := Combination{{AttributeID: "color", Value: "red"}}
		assert.Equal(t, -10.0, ResolvePrice(20, combo, negative))
	})
}
