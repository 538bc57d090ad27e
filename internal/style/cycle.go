package style

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Cycle is an ordered palette of option values ("color", "marker", ...)
// that layers sharing a style group cycle through.
type Cycle struct {
	values []map[string]any
	max    int
}

func NewCycle(values []map[string]any) Cycle {
	return Cycle{values: values, max: len(values)}
}

// MaxCycles caps the number of palette entries that will be used, so a
// group of n layers repeats styles no earlier than necessary.
func (c Cycle) MaxCycles(n int) Cycle {
	if n <= 0 || n > len(c.values) {
		n = len(c.values)
	}
	return Cycle{values: c.values, max: n}
}

// Len returns the effective cycle length.
func (c Cycle) Len() int { return c.max }

// At picks the palette entry for a cyclic index.
func (c Cycle) At(i int) map[string]any {
	if c.max == 0 {
		return nil
	}
	return c.values[i%c.max]
}

// ColorCycle builds an n-entry color palette of evenly spaced hues.
func ColorCycle(n int) Cycle {
	if n <= 0 {
		n = 1
	}
	values := make([]map[string]any, n)
	for i := 0; i < n; i++ {
		h := 360 * float64(i) / float64(n)
		values[i] = map[string]any{"color": colorful.Hsv(h, 0.65, 0.95).Hex()}
	}
	return NewCycle(values)
}

// GradientCycle interpolates n colors between two hex endpoints.
func GradientCycle(from, to string, n int) Cycle {
	c1, err1 := colorful.Hex(from)
	c2, err2 := colorful.Hex(to)
	if err1 != nil || err2 != nil || n <= 0 {
		return ColorCycle(n)
	}
	values := make([]map[string]any, n)
	for i := 0; i < n; i++ {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		values[i] = map[string]any{"color": c1.BlendLuv(c2, t).Clamped().Hex()}
	}
	return NewCycle(values)
}
