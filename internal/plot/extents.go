package plot

import (
	"math"

	"github.com/san-kum/layerplot/internal/data"
)

// ExtentsParams controls how ComputeExtents weighs its sources.
type ExtentsParams struct {
	ApplyRanges  bool
	ApplyExtents bool
	// Framewise restricts extent overrides to the current frame's own
	// declaration instead of the sequence-wide maximum.
	Framewise bool
	Is3D      bool
}

// ComputeExtents derives the axis bounds for a frame. Range-driven
// components come from the override ranges when present, falling back to
// the frame's own per-dimension ranges. Extent overrides come from the
// frame (framewise) or from the widest finite bounds observed anywhere in
// the sequence. Component-wise, a finite extent override beats the range
// value; non-finite values fall through silently.
func ComputeExtents(seq *data.FrameSequence, view data.Element, ranges data.Ranges, p ExtentsParams) data.Extents {
	rangeExt := data.UnknownExtents(p.Is3D)
	if p.ApplyRanges && view != nil {
		var x0, x1, y0, y1, z0, z1 float64
		dims := view.Dimensions()
		if len(ranges) > 0 {
			x0, x1 = dimRange(ranges, dims, 0)
			y0, y1 = dimRange(ranges, dims, 1)
			if p.Is3D {
				z0, z1 = dimRange(ranges, dims, 2)
			}
		} else {
			x0, x1 = view.Range(0)
			y0, y1 = view.Range(1)
			if p.Is3D {
				z0, z1 = view.Range(2)
			}
		}
		if p.Is3D {
			rangeExt = data.Extents3D(x0, y0, z0, x1, y1, z1)
		} else {
			rangeExt = data.Extents2D(x0, y0, x1, y1)
		}
	}

	overrideExt := data.UnknownExtents(p.Is3D)
	if p.ApplyExtents {
		if p.Framewise {
			if view != nil {
				overrideExt = view.Extents()
			}
		} else if seq != nil {
			var all []data.Extents
			seq.Traverse(func(el data.Element) {
				if _, ok := el.(data.Composite); !ok {
					all = append(all, el.Extents())
				}
			})
			overrideExt = data.MergeExtents(all, p.Is3D)
		}
	}

	n := len(rangeExt)
	out := make(data.Extents, n)
	for i := 0; i < n; i++ {
		v := math.NaN()
		if i < len(overrideExt) {
			v = overrideExt[i]
		}
		if math.IsInf(v, 0) {
			v = math.NaN()
		}
		if math.IsNaN(v) {
			v = rangeExt[i]
		}
		out[i] = v
	}
	return out
}

func dimRange(ranges data.Ranges, dims []data.Dimension, i int) (float64, float64) {
	if i < len(dims) {
		if r, ok := ranges[dims[i].Name]; ok {
			return r[0], r[1]
		}
	}
	return math.NaN(), math.NaN()
}
