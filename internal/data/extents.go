package data

import "math"

// Extents holds the bounding box of an element across its spatial
// dimensions: (x0, y0, x1, y1) in 2D, (x0, y0, z0, x1, y1, z1) in 3D.
// NaN components mean "unknown, defer to data-driven values".
type Extents []float64

// UnknownExtents returns fully unknown extents of the right arity.
func UnknownExtents(is3D bool) Extents {
	n := 4
	if is3D {
		n = 6
	}
	e := make(Extents, n)
	for i := range e {
		e[i] = math.NaN()
	}
	return e
}

// Extents2D builds 2D extents from explicit bounds.
func Extents2D(x0, y0, x1, y1 float64) Extents {
	return Extents{x0, y0, x1, y1}
}

// Extents3D builds 3D extents from explicit bounds.
func Extents3D(x0, y0, z0, x1, y1, z1 float64) Extents {
	return Extents{x0, y0, z0, x1, y1, z1}
}

// Is3D reports whether the extents carry a z component.
func (e Extents) Is3D() bool { return len(e) == 6 }

// MergeExtents computes the outer boundary of the union of the given
// extents: the minimum finite lower bound and maximum finite upper bound
// per axis. Non-finite components are ignored; axes with no finite
// contribution stay NaN. Empty or mismatched inputs collapse to fully
// unknown extents.
func MergeExtents(list []Extents, is3D bool) Extents {
	n := 4
	lower := 2
	if is3D {
		n = 6
		lower = 3
	}
	out := UnknownExtents(is3D)
	for _, e := range list {
		if len(e) != n {
			continue
		}
		for i := 0; i < n; i++ {
			v := e[i]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			cur := out[i]
			if math.IsNaN(cur) {
				out[i] = v
			} else if i < lower {
				out[i] = math.Min(cur, v)
			} else {
				out[i] = math.Max(cur, v)
			}
		}
	}
	return out
}
