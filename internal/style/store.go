package style

import "github.com/san-kum/layerplot/internal/data"

// Option groups resolved by the store.
const (
	GroupStyle = "style"
	GroupPlot  = "plot"
	GroupNorm  = "norm"
)

// Spec is a resolved style bundle: flat options shared by every palette
// entry plus a cycle providing per-layer variation.
type Spec struct {
	Options map[string]any
	Cycle   Cycle
}

// MaxCycles returns a copy with the cycle capped to n entries.
func (s Spec) MaxCycles(n int) Spec {
	return Spec{Options: s.Options, Cycle: s.Cycle.MaxCycles(n)}
}

// At resolves the options for one cyclic index: cycle entry layered over
// the shared options.
func (s Spec) At(i int) map[string]any {
	out := make(map[string]any, len(s.Options)+2)
	for k, v := range s.Options {
		out[k] = v
	}
	for k, v := range s.Cycle.At(i) {
		out[k] = v
	}
	return out
}

type entry struct {
	style Spec
	plot  map[string]any
	norm  map[string]any
}

// Store resolves style, plot and norm option bundles per element. Options
// register under an element kind or a more specific "kind.group.label"
// path; lookups merge kind-level defaults with the most specific match.
type Store struct {
	entries map[string]*entry
}

func NewStore() *Store {
	return &Store{entries: make(map[string]*entry)}
}

func (s *Store) at(path string) *entry {
	e, ok := s.entries[path]
	if !ok {
		e = &entry{style: Spec{Cycle: ColorCycle(6)}}
		s.entries[path] = e
	}
	return e
}

// SetStyle registers the style spec for a path.
func (s *Store) SetStyle(path string, spec Spec) {
	s.at(path).style = spec
}

// SetPlot registers plot options for a path.
func (s *Store) SetPlot(path string, opts map[string]any) {
	s.at(path).plot = opts
}

// SetNorm registers normalization options for a path.
func (s *Store) SetNorm(path string, opts map[string]any) {
	s.at(path).norm = opts
}

// Style resolves the style spec for an element.
func (s *Store) Style(el data.Element) Spec {
	base := Spec{Options: map[string]any{}, Cycle: ColorCycle(6)}
	for _, path := range lookupPaths(el) {
		e, ok := s.entries[path]
		if !ok {
			continue
		}
		merged := make(map[string]any, len(base.Options)+len(e.style.Options))
		for k, v := range base.Options {
			merged[k] = v
		}
		for k, v := range e.style.Options {
			merged[k] = v
		}
		cycle := base.Cycle
		if e.style.Cycle.Len() > 0 {
			cycle = e.style.Cycle
		}
		base = Spec{Options: merged, Cycle: cycle}
	}
	return base
}

// Plot resolves plot options for an element, most specific path last.
func (s *Store) Plot(el data.Element) map[string]any {
	return s.grouped(el, func(e *entry) map[string]any { return e.plot })
}

// Norm resolves normalization options for an element.
func (s *Store) Norm(el data.Element) map[string]any {
	return s.grouped(el, func(e *entry) map[string]any { return e.norm })
}

func (s *Store) grouped(el data.Element, get func(*entry) map[string]any) map[string]any {
	out := make(map[string]any)
	for _, path := range lookupPaths(el) {
		if e, ok := s.entries[path]; ok {
			for k, v := range get(e) {
				out[k] = v
			}
		}
	}
	return out
}

// lookupPaths returns the option paths for an element from least to most
// specific.
func lookupPaths(el data.Element) []string {
	paths := []string{el.Kind()}
	if g := el.Group(); g != "" && g != el.Kind() {
		paths = append(paths, el.Kind()+"."+g)
		if l := el.Label(); l != "" {
			paths = append(paths, el.Kind()+"."+g+"."+l)
		}
	} else if l := el.Label(); l != "" {
		paths = append(paths, el.Kind()+"."+el.Kind()+"."+l)
	}
	return paths
}
