package variant

// Sequence enumerates the cartesian product of a fixed list of axes in
// odometer order: the first axis varies slowest, the last fastest.
// This ordering is a documented contract — preview listings, fallback
// SKUs and exported row order all depend on it. The sequence is lazy
// and restartable; combinations are materialized one at a time.
type Sequence struct {
	axes []Axis
}

// Combinations builds a sequence over the given axes. Axes are used in
// the order given. An axis with no values, or an empty axis list,
// yields an empty sequence rather than an error.
func Combinations(axes []Axis) *Sequence {
	return &Sequence{axes: axes}
}

// Count is the total number of combinations: the product of the axis
// sizes, zero when any axis is empty or no axes were given. Callers
// enforcing a combinatorial ceiling should check Count before ranging.
func (s *Sequence) Count() int {
	if len(s.axes) == 0 {
		return 0
	}
	n := 1
	for _, ax := range s.axes {
		n *= len(ax.Values)
	}
	return n
}

// At materializes the i-th combination (0-based) in odometer order.
// Panics when i is out of range, like a slice index would.
func (s *Sequence) At(i int) Combination {
	if i < 0 || i >= s.Count() {
		panic("variant: combination index out of range")
	}

	combo := make(Combination, len(s.axes))
	for k := len(s.axes) - 1; k >= 0; k-- {
		ax := s.axes[k]
		combo[k] = Pair{AttributeID: ax.AttributeID, Value: ax.Values[i%len(ax.Values)]}
		i /= len(ax.Values)
	}
	return combo
}

// ForEach walks every combination in order. Returning false from fn
// stops the walk early.
func (s *Sequence) ForEach(fn func(i int, combo Combination) bool) {
	n := s.Count()
	for i := 0; i < n; i++ {
		if !fn(i, s.At(i)) {
			return
		}
	}
}
