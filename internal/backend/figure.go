package backend

import "strings"

// Figure owns one or more axes regions and composes them into the final
// terminal output.
type Figure struct {
	axes []*Axes
}

func NewFigure() *Figure {
	return &Figure{}
}

// AddAxes creates a new axes region on the figure.
func (f *Figure) AddAxes(width, height int) *Axes {
	ax := NewAxes(width, height)
	f.axes = append(f.axes, ax)
	return ax
}

// Axes returns the figure's regions in creation order.
func (f *Figure) Axes() []*Axes { return f.axes }

// Render composes all regions top to bottom.
func (f *Figure) Render() string {
	parts := make([]string, len(f.axes))
	for i, ax := range f.axes {
		parts[i] = ax.Render()
	}
	return strings.Join(parts, "\n")
}
