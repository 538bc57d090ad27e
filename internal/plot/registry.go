package plot

import (
	"fmt"

	"github.com/san-kum/layerplot/internal/data"
	"github.com/san-kum/layerplot/internal/style"
)

// Factory builds a renderer for one element kind.
type Factory func(seq *data.FrameSequence, reg *Registry, cfg Config) (Renderer, error)

// Registry maps element kinds to renderer factories. Overlay renderers
// use it to build their layer subplots, so custom kinds nest for free.
type Registry struct {
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

func (r *Registry) Register(kind string, f Factory) {
	r.factories[kind] = f
}

// Lookup returns the factory for a kind.
func (r *Registry) Lookup(kind string) (Factory, bool) {
	f, ok := r.factories[kind]
	return f, ok
}

// New builds a renderer for the sequence's element kind.
func (r *Registry) New(seq *data.FrameSequence, cfg Config) (Renderer, error) {
	if seq == nil || seq.Len() == 0 {
		return nil, ErrEmptySequence
	}
	f, ok := r.factories[seq.Kind()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, seq.Kind())
	}
	return f(seq, r, cfg)
}

func leafFactory(d Drawer) Factory {
	return func(seq *data.FrameSequence, _ *Registry, cfg Config) (Renderer, error) {
		return NewElementRenderer(seq, d, cfg)
	}
}

func overlayFactory(seq *data.FrameSequence, reg *Registry, cfg Config) (Renderer, error) {
	return NewOverlayRenderer(seq, reg, cfg)
}

// DefaultRegistry covers the built-in element kinds.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(data.KindCurve, leafFactory(curveDrawer{}))
	r.Register(data.KindPoints, leafFactory(pointsDrawer{}))
	r.Register(data.KindPath3D, leafFactory(spacePathDrawer{}))
	r.Register(data.KindOverlay, overlayFactory)
	r.Register(data.KindNdOverlay, overlayFactory)
	return r
}

// RegisterDrawFunc installs a full-redraw drawer for a custom kind.
func (r *Registry) RegisterDrawFunc(kind string, fn DrawFunc) {
	r.Register(kind, leafFactory(funcDrawer{fn: fn}))
}

// NewRenderer is the top-level entry point: it wraps a bare element into
// a single-frame sequence if needed, resolves plot options from the
// store, and builds the renderer.
func NewRenderer(v any, store *style.Store, overrides map[string]any) (Renderer, error) {
	var seq *data.FrameSequence
	switch t := v.(type) {
	case *data.FrameSequence:
		seq = t
	case data.Element:
		seq = data.Wrap(t)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownKind, v)
	}
	if seq.Len() == 0 {
		return nil, ErrEmptySequence
	}

	opts := Defaults()
	var err error
	if store != nil {
		if opts, err = opts.Apply(store.Plot(seq.Last())); err != nil {
			return nil, err
		}
	}
	if opts, err = opts.Apply(overrides); err != nil {
		return nil, err
	}
	return DefaultRegistry().New(seq, Config{
		Store:   store,
		Options: opts,
		Uniform: seq.Uniform(),
	})
}
