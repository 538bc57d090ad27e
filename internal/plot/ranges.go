package plot

import (
	"math"

	"github.com/san-kum/layerplot/internal/data"
	"github.com/san-kum/layerplot/internal/style"
)

// ComputeRanges derives per-dimension numeric ranges for a frame. Under
// framewise normalization only the selected frame contributes; otherwise
// the whole sequence is traversed. Explicit override ranges win over
// computed bounds.
func ComputeRanges(store *style.Store, seq *data.FrameSequence, key data.Key, overrides data.Ranges) data.Ranges {
	out := data.Ranges{}
	if seq == nil || seq.Len() == 0 {
		return mergeRanges(out, overrides)
	}

	framewise := false
	if store != nil {
		if v, ok := store.Norm(seq.Last())["framewise"].(bool); ok {
			framewise = v
		}
	}

	if framewise && key != nil {
		if el, ok := seq.Get(key); ok {
			accumulateRanges(out, el)
		}
	} else {
		seq.Traverse(func(el data.Element) {
			if _, ok := el.(data.Composite); !ok {
				accumulateRanges(out, el)
			}
		})
	}
	return mergeRanges(out, overrides)
}

// MatchSpec filters ranges down to the dimensions of one element.
func MatchSpec(el data.Element, ranges data.Ranges) data.Ranges {
	if ranges == nil {
		return nil
	}
	out := data.Ranges{}
	for _, d := range el.Dimensions() {
		if r, ok := ranges[d.Name]; ok {
			out[d.Name] = r
		}
	}
	return out
}

func accumulateRanges(out data.Ranges, el data.Element) {
	for i, d := range el.Dimensions() {
		lo, hi := el.Range(i)
		if math.IsNaN(lo) && math.IsNaN(hi) {
			continue
		}
		cur, ok := out[d.Name]
		if !ok {
			out[d.Name] = [2]float64{lo, hi}
			continue
		}
		if !math.IsNaN(lo) && (math.IsNaN(cur[0]) || lo < cur[0]) {
			cur[0] = lo
		}
		if !math.IsNaN(hi) && (math.IsNaN(cur[1]) || hi > cur[1]) {
			cur[1] = hi
		}
		out[d.Name] = cur
	}
}

func mergeRanges(computed, overrides data.Ranges) data.Ranges {
	for k, v := range overrides {
		computed[k] = v
	}
	return computed
}
