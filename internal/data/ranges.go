package data

// Ranges maps dimension names to (min, max) numeric bounds.
type Ranges map[string][2]float64

// Clone returns a shallow copy.
func (r Ranges) Clone() Ranges {
	out := make(Ranges, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
