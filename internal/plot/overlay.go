package plot

import (
	"sort"
	"strconv"
	"strings"

	"github.com/san-kum/layerplot/internal/backend"
	"github.com/san-kum/layerplot/internal/compositor"
	"github.com/san-kum/layerplot/internal/data"
)

// legendSpecs are the placement presets for the legend_position option.
var legendSpecs = map[string]backend.LegendSpec{
	LegendInner:  {},
	LegendLeft:   {Anchor: [4]float64{-0.15, 1, 0, 0}},
	LegendRight:  {Anchor: [4]float64{1.25, 1, 0, 0}},
	LegendTop:    {Anchor: [4]float64{0, 1.02, 1, 0.102}, Cols: 3, Expand: true, BorderPad: 0},
	LegendBottom: {Anchor: [4]float64{0, -0.25, 1, 0.102}, Cols: 3, Expand: true, BorderPad: 0.1},
}

// SubplotEntry is one layer slot of an overlay and the renderer bound
// to it.
type SubplotEntry struct {
	Key         data.Key
	GroupKey    string
	Zorder      int
	CyclicIndex int
	Renderer    Renderer
}

// OverlayRenderer decomposes composite frames into per-layer subplot
// renderers sharing one axes, assigns stable z-orders and cyclic style
// indices, and aggregates the layer legends.
type OverlayRenderer struct {
	ElementRenderer

	entries    []SubplotEntry
	keyed      bool
	currentKey data.Key
	span       int
}

// NewOverlayRenderer builds an overlay renderer over a sequence of
// composite frames. Data-mode compositor operations run before range
// computation, display-mode ones after, then the collapsed sequence is
// split into one subplot per distinct layer slot.
func NewOverlayRenderer(seq *data.FrameSequence, reg *Registry, cfg Config) (*OverlayRenderer, error) {
	if seq == nil || seq.Len() == 0 {
		return nil, ErrEmptySequence
	}
	seq = compositor.Collapse(seq, compositor.Params{}, compositor.ModeData)

	keys := cfg.Keys
	if keys == nil {
		keys = seq.Keys()
	}
	frameRanges := make([]data.Ranges, len(keys))
	for i, k := range keys {
		frameRanges[i] = ComputeRanges(cfg.Store, seq, k, nil)
	}
	seq = compositor.Collapse(seq, compositor.Params{
		FrameRanges: frameRanges,
		Keys:        keys,
	}, compositor.ModeDisplay)

	base, err := NewElementRenderer(seq, BaseDrawer{}, cfg)
	if err != nil {
		return nil, err
	}
	r := &OverlayRenderer{ElementRenderer: *base}
	if comp, ok := seq.Last().(data.Composite); ok {
		r.keyed = comp.Keyed()
	}
	r.extentsFn = r.overlayExtents
	r.labelsFn = r.elementAxisLabels

	if err := r.createSubplots(reg, cfg); err != nil {
		return nil, err
	}
	r.ElementRenderer.subEntries = r.entries
	return r, nil
}

// slotIdentity orders layer slots deterministically so z-orders stay
// stable across frames and runs.
type slotIdentity struct {
	kind, group, label, extra string
}

func splitIdentity(s data.LayerSplit) slotIdentity {
	id := slotIdentity{kind: s.Kind, group: s.Group, label: s.Label}
	if s.Key != nil {
		id.extra = s.Key.String()
	} else {
		id.extra = strconv.Itoa(s.Ordinal)
	}
	return id
}

func (a slotIdentity) less(b slotIdentity) bool {
	switch {
	case a.kind != b.kind:
		return a.kind < b.kind
	case a.group != b.group:
		return a.group < b.group
	case a.label != b.label:
		return a.label < b.label
	default:
		return a.extra < b.extra
	}
}

// createSubplots splits the composite sequence into per-layer renderers.
// The z-order of a layer comes from the lexicographic ordering of its
// identity; cyclic style indices count occurrences of each style group
// in creation order.
func (r *OverlayRenderer) createSubplots(reg *Registry, cfg Config) error {
	splits := r.seq.SplitLayers()
	if len(splits) == 0 {
		return ErrEmptySequence
	}

	ordering := make([]slotIdentity, len(splits))
	for i, s := range splits {
		ordering[i] = splitIdentity(s)
	}
	sort.SliceStable(ordering, func(i, j int) bool { return ordering[i].less(ordering[j]) })
	orderIndex := func(id slotIdentity) int {
		for i, o := range ordering {
			if o == id {
				return i
			}
		}
		return 0
	}

	overlaid := 1
	if r.keyed {
		overlaid = 2
	}

	groupCounter := make(map[string]int)
	mapLengths := make(map[string]int)
	for _, s := range splits {
		mapLengths[r.styleGroupKey(s)]++
	}

	zoffset := 0
	for _, s := range splits {
		groupKey := r.styleGroupKey(s)
		cyclic := groupCounter[groupKey]
		groupCounter[groupKey]++

		z := cfg.Zorder + orderIndex(splitIdentity(s)) + zoffset

		childCfg := Config{
			Store:       cfg.Store,
			Options:     r.opts,
			Keys:        r.keys,
			Dimensions:  r.dims,
			Uniform:     r.uniform,
			Overlaid:    overlaid,
			CyclicIndex: cyclic,
			Zorder:      z,
			Axes:        r.handles.Axes,
			Figure:      r.handles.Figure,
		}
		if last := s.Seq.Last(); last != nil && cfg.Store != nil {
			opts, err := r.opts.Apply(cfg.Store.Plot(last))
			if err != nil {
				return err
			}
			childCfg.Options = opts
			spec := cfg.Store.Style(last).MaxCycles(mapLengths[groupKey])
			childCfg.Style = &spec
		}

		child, err := reg.New(s.Seq, childCfg)
		if err != nil {
			return err
		}
		if nested := child.zSpan(); nested > 1 {
			zoffset += nested - 1
		}
		r.entries = append(r.entries, SubplotEntry{
			Key:         s.Key,
			GroupKey:    groupKey,
			Zorder:      z,
			CyclicIndex: cyclic,
			Renderer:    child,
		})
	}
	r.span = 0
	for _, e := range r.entries {
		r.span += e.Renderer.zSpan()
	}
	return nil
}

// styleGroupKey truncates a layer identity to the configured style
// grouping depth, so layers sharing a prefix share one style cycle.
func (r *OverlayRenderer) styleGroupKey(s data.LayerSplit) string {
	parts := []string{s.Kind, s.Group, s.Label}
	n := r.opts.StyleGrouping
	if n < 1 {
		n = 1
	} else if n > len(parts) {
		n = len(parts)
	}
	return strings.Join(parts[:n], ".")
}

func (r *OverlayRenderer) Subplots() []SubplotEntry { return r.entries }
func (r *OverlayRenderer) zSpan() int               { return r.span }

func (r *OverlayRenderer) legendData() []backend.LegendEntry {
	return r.handles.LegendData
}

// Render draws every subplot against shared ranges, assembles the
// legend, then finalizes the shared axis.
func (r *OverlayRenderer) Render(ranges data.Ranges) (*backend.Figure, error) {
	if r.state != stateNew {
		return nil, ErrAlreadyRendered
	}
	key := r.keys[len(r.keys)-1]
	r.currentKey = key
	ranges = ComputeRanges(r.store, r.seq, key, ranges)

	for _, e := range r.entries {
		if _, err := e.Renderer.Render(ranges); err != nil {
			return nil, err
		}
	}
	r.adjustLegend()
	r.state = stateRendered
	r.finalizeAxis(key, finalizeArgs{ranges: ranges})
	return r.handles.Figure, nil
}

// Update advances every subplot to the key. Subplots whose slot has no
// layer in the frame hide themselves.
func (r *OverlayRenderer) Update(key data.Key, ranges data.Ranges) error {
	if r.state == stateNew {
		return ErrNotRendered
	}
	r.currentKey = key
	ranges = ComputeRanges(r.store, r.seq, key, ranges)
	for _, e := range r.entries {
		if err := e.Renderer.Update(key, ranges); err != nil {
			return err
		}
	}
	r.finalizeAxis(key, finalizeArgs{ranges: ranges})
	return nil
}

// overlayExtents merges the extents of every range-applying subplot.
func (r *OverlayRenderer) overlayExtents(_ data.Element, ranges data.Ranges) data.Extents {
	var exts []data.Extents
	for _, e := range r.entries {
		if !e.Renderer.appliesRanges() {
			continue
		}
		view := SelectFrame(e.Renderer.Sequence(), r.currentKey, r.dims, r.uniform)
		if view == nil {
			continue
		}
		exts = append(exts, e.Renderer.layerExtents(view, MatchSpec(view, ranges)))
	}
	return data.MergeExtents(exts, r.opts.Projection3D)
}

// adjustLegend collects legend entries from the layers, deduplicates by
// handle keeping the first label, and hides the legend unless it has
// more than one entry and legends are enabled.
func (r *OverlayRenderer) adjustLegend() {
	axes := r.handles.Axes
	var entries []backend.LegendEntry
	title := ""

	if r.keyed {
		kdims := r.overlayKeyDimensions()
		names := make([]string, len(kdims))
		for i, d := range kdims {
			names[i] = d.Name
		}
		title = strings.Join(names, ", ")
		for _, e := range r.entries {
			handle := e.Renderer.Handles().LegendHandle
			if handle == nil || e.Key == nil {
				continue
			}
			parts := make([]string, 0, len(kdims))
			for i, d := range kdims {
				if i >= len(e.Key) {
					break
				}
				parts = append(parts, pprintKeyValue(d, e.Key[i]))
			}
			entries = append(entries, backend.LegendEntry{
				Handle: handle,
				Label:  strings.Join(parts, ", "),
			})
		}
	} else {
		for _, e := range r.entries {
			if nested := e.Renderer.legendData(); len(nested) > 0 {
				entries = append(entries, nested...)
				continue
			}
			handle := e.Renderer.Handles().LegendHandle
			if handle == nil || handle.Label() == "" {
				continue
			}
			entries = append(entries, backend.LegendEntry{
				Handle: handle,
				Label:  handle.Label(),
			})
		}
	}
	entries = append(entries, axes.AutoLegendEntries()...)

	entries = dedupByHandle(entries)
	r.handles.LegendData = entries

	leg := &backend.Legend{
		Entries:  entries,
		Title:    title,
		Position: r.opts.LegendPosition,
		Spec:     legendSpecs[r.opts.LegendPosition],
		Visible:  r.opts.ShowLegend && len(entries) > 1,
	}
	axes.SetLegend(leg)
	r.handles.Legend = leg
}

// overlayKeyDimensions returns the grouping dimensions of the keyed
// composite frames.
func (r *OverlayRenderer) overlayKeyDimensions() []data.Dimension {
	if comp, ok := r.seq.Last().(data.Composite); ok {
		return comp.KeyDimensions()
	}
	return nil
}

// pprintKeyValue formats one key value with its unit; the dimension
// names already form the legend title, so they are not repeated here.
func pprintKeyValue(d data.Dimension, v any) string {
	s := d.PrintValue(v)
	if d.Unit != "" {
		s += " " + d.Unit
	}
	return s
}

func dedupByHandle(entries []backend.LegendEntry) []backend.LegendEntry {
	seen := make(map[backend.Artist]bool, len(entries))
	out := entries[:0]
	for _, e := range entries {
		if seen[e.Handle] {
			continue
		}
		seen[e.Handle] = true
		out = append(out, e)
	}
	return out
}
