package plot

import "github.com/san-kum/layerplot/internal/backend"

// Handles holds the backend objects owned by one renderer, with a named
// field per handle kind. The axes and figure are the only handles shared
// with overlay children; everything else is exclusively owned.
type Handles struct {
	Axes   *backend.Axes
	Figure *backend.Figure

	// LegendHandle is the primary artist used to represent this renderer
	// in an aggregated legend.
	LegendHandle backend.Artist

	// LegendData is the deduplicated legend accumulated by an overlay.
	LegendData []backend.LegendEntry

	Legend   *backend.Legend
	Colorbar backend.Artist

	// Artists are the cached drawables updated in place on frame change.
	Artists []backend.Artist
}

// owned returns every hideable handle except the shared axes/figure.
func (h *Handles) owned() []backend.Artist {
	out := make([]backend.Artist, 0, len(h.Artists)+2)
	out = append(out, h.Artists...)
	if h.LegendHandle != nil {
		out = append(out, h.LegendHandle)
	}
	if h.Colorbar != nil {
		out = append(out, h.Colorbar)
	}
	return out
}
