package plot

import (
	"github.com/san-kum/layerplot/internal/data"
)

// SelectFrame resolves an animation key to the frame to render. Selection
// is lenient: any lookup failure yields nil rather than an error, and
// downstream code treats nil as "hide content for this step".
//
// In uniform mode each of the sequence's own key dimensions is matched
// positionally against the caller's declared dimensions; the synthetic
// Frame dimension of a wrapped element always resolves to its only entry.
// Non-uniform sequences clamp integer keys to the last index, and match
// composite keys against the key dimensions by position.
func SelectFrame(seq *data.FrameSequence, key data.Key, dims []data.Dimension, uniform bool) data.Element {
	if seq == nil || seq.Len() == 0 {
		return nil
	}

	var sel map[string]any
	switch {
	case uniform:
		kdimNames := names(seq.KeyDimensions())
		dimNames := kdimNames
		if dims != nil {
			dimNames = names(dims)
		}
		if len(kdimNames) == 1 && kdimNames[0] == data.FrameName && !equalNames(kdimNames, dimNames) {
			sel = map[string]any{data.FrameName: 0}
		} else {
			sel = make(map[string]any, len(kdimNames))
			for _, name := range kdimNames {
				i := indexOf(dimNames, name)
				if i < 0 || i >= len(key) {
					return nil
				}
				sel[name] = key[i]
			}
		}
	case len(key) == 1:
		if idx, ok := key[0].(int); ok {
			if idx > seq.Len()-1 {
				idx = seq.Len() - 1
			}
			if idx < 0 {
				idx = 0
			}
			return seq.At(idx)
		}
		fallthrough
	default:
		kdimNames := names(seq.KeyDimensions())
		sel = make(map[string]any, len(key))
		for i, v := range key {
			if i >= len(kdimNames) {
				break
			}
			sel[kdimNames[i]] = v
		}
	}

	sub, err := seq.Select(sel)
	if err != nil {
		return nil
	}
	return sub.Last()
}

func names(dims []data.Dimension) []string {
	out := make([]string, len(dims))
	for i, d := range dims {
		out[i] = d.Name
	}
	return out
}

func equalNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
