package backend

// LegendEntry pairs a graphical handle with its display label.
type LegendEntry struct {
	Handle Artist
	Label  string
}

// LegendSpec is a fixed placement preset: an anchor box in axes-relative
// coordinates, a column count and expansion behavior.
type LegendSpec struct {
	Anchor    [4]float64
	Cols      int
	Expand    bool
	BorderPad float64
}

// Legend is the axes-level legend state.
type Legend struct {
	Entries  []LegendEntry
	Title    string
	Visible  bool
	Position string
	Spec     LegendSpec
}
