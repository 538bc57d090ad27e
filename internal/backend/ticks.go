package backend

import (
	"fmt"
	"math"
)

// Locator computes tick positions for a data interval.
type Locator interface {
	Ticks(lo, hi float64) []float64
}

// MaxNLocator places at most N nicely rounded ticks.
type MaxNLocator struct {
	N int
}

func (l MaxNLocator) Ticks(lo, hi float64) []float64 {
	n := l.N
	if n < 2 {
		n = 2
	}
	if math.IsNaN(lo) || math.IsNaN(hi) || lo == hi {
		return nil
	}
	if hi < lo {
		lo, hi = hi, lo
	}
	step := niceStep((hi - lo) / float64(n-1))
	var ticks []float64
	for v := math.Ceil(lo/step) * step; v <= hi+step*1e-9; v += step {
		ticks = append(ticks, v)
		if len(ticks) > n {
			return MaxNLocator{N: n - 1}.Ticks(lo, hi)
		}
	}
	return ticks
}

// LogLocator places ticks at decades with standard 1..9 subdivisions,
// capped to NumTicks.
type LogLocator struct {
	NumTicks int
	Subs     []int
}

func (l LogLocator) Ticks(lo, hi float64) []float64 {
	if lo <= 0 || hi <= 0 || math.IsNaN(lo) || math.IsNaN(hi) {
		return nil
	}
	if hi < lo {
		lo, hi = hi, lo
	}
	subs := l.Subs
	if len(subs) == 0 {
		subs = []int{1, 2, 3, 4, 5, 6, 7, 8, 9}
	}
	var ticks []float64
	d0 := math.Floor(math.Log10(lo))
	d1 := math.Ceil(math.Log10(hi))
	for d := d0; d <= d1; d++ {
		decade := math.Pow(10, d)
		for _, s := range subs {
			v := decade * float64(s)
			if v >= lo && v <= hi {
				ticks = append(ticks, v)
			}
		}
	}
	if l.NumTicks > 0 && len(ticks) > l.NumTicks {
		// Thin to decade ticks only when oversubscribed.
		var decades []float64
		for _, v := range ticks {
			lg := math.Log10(v)
			if lg == math.Trunc(lg) {
				decades = append(decades, v)
			}
		}
		if len(decades) > 0 {
			ticks = decades
		}
		if len(ticks) > l.NumTicks {
			ticks = ticks[:l.NumTicks]
		}
	}
	return ticks
}

// FixedTicks carries explicit tick positions and display labels.
type FixedTicks struct {
	Positions []float64
	Labels    []string
}

// Ticks returns the fixed positions clipped to the interval, so a
// FixedTicks value doubles as a Locator.
func (t FixedTicks) Ticks(lo, hi float64) []float64 {
	if hi < lo {
		lo, hi = hi, lo
	}
	var out []float64
	for _, v := range t.Positions {
		if v >= lo && v <= hi {
			out = append(out, v)
		}
	}
	return out
}

// Label returns the display label for tick i, falling back to the
// formatted position.
func (t FixedTicks) Label(i int) string {
	if i < len(t.Labels) {
		return t.Labels[i]
	}
	if i < len(t.Positions) {
		return formatTick(t.Positions[i])
	}
	return ""
}

func formatTick(v float64) string {
	av := math.Abs(v)
	if av != 0 && (av >= 1e4 || av < 1e-3) {
		return fmt.Sprintf("%.0e", v)
	}
	return fmt.Sprintf("%.4g", v)
}

func niceStep(raw float64) float64 {
	if raw <= 0 || math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	frac := raw / mag
	switch {
	case frac <= 1:
		return mag
	case frac <= 2:
		return 2 * mag
	case frac <= 5:
		return 5 * mag
	default:
		return 10 * mag
	}
}
