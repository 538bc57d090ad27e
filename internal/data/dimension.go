package data

import "fmt"

// Dimension describes one axis of a plottable element: its name, an
// optional unit suffix and an optional value formatter.
type Dimension struct {
	Name      string
	Unit      string
	Type      string
	Formatter func(any) string
}

// Dim is a shorthand constructor for a plain named dimension.
func Dim(name string) Dimension {
	return Dimension{Name: name}
}

// PrintValue formats a single value of this dimension, preferring the
// dimension's own formatter.
func (d Dimension) PrintValue(v any) string {
	if d.Formatter != nil {
		return d.Formatter(v)
	}
	switch x := v.(type) {
	case float64:
		return fmt.Sprintf("%g", x)
	default:
		return fmt.Sprintf("%v", v)
	}
}
