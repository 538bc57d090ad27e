package plot

import (
	"fmt"
	"math"
	"reflect"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/san-kum/layerplot/internal/backend"
	"github.com/san-kum/layerplot/internal/data"
	"github.com/san-kum/layerplot/internal/style"
)

// Hook is a user-supplied callback invoked after axis finalization.
// Hook failures are isolated: they are logged as warnings and never
// abort the remaining hooks or the render.
type Hook func(r *ElementRenderer, frame data.Element) error

// Renderer is the closed set of renderer kinds produced by a Registry.
type Renderer interface {
	// Render draws the last frame fully. A renderer is single use: the
	// second call fails.
	Render(ranges data.Ranges) (*backend.Figure, error)
	// Update re-selects the frame for the key and synchronizes backend
	// state in place. A nil frame hides the renderer's content.
	Update(key data.Key, ranges data.Ranges) error
	Handles() *Handles
	Options() Options
	Sequence() *data.FrameSequence
	Zorder() int

	legendData() []backend.LegendEntry
	layerExtents(view data.Element, ranges data.Ranges) data.Extents
	appliesRanges() bool
	// zSpan is the number of z-order slots this renderer occupies.
	zSpan() int
}

type renderState int

const (
	stateNew renderState = iota
	stateRendered
)

// Config carries the construction parameters for a renderer: the shared
// option store, resolved options, and the handles inherited from a parent
// overlay.
type Config struct {
	Store   *style.Store
	Options Options

	// Keys and Dimensions are inherited from the parent composite; nil
	// means "derive from the sequence".
	Keys       []data.Key
	Dimensions []data.Dimension
	Uniform    bool

	// Overlaid is 0 for standalone renderers, 1 under a plain overlay
	// and 2 under a keyed overlay.
	Overlaid    int
	CyclicIndex int
	Zorder      int
	Style       *style.Spec

	Axes   *backend.Axes
	Figure *backend.Figure

	Hooks []Hook
}

// ElementRenderer draws a single element sequence onto one axes region
// and keeps axis decoration in sync across frame updates.
type ElementRenderer struct {
	seq     *data.FrameSequence
	store   *style.Store
	opts    Options
	keys    []data.Key
	dims    []data.Dimension
	uniform bool

	overlaid    int
	cyclicIndex int
	zorder      int
	styleSpec   style.Spec

	drawer  Drawer
	handles Handles
	hooks   []Hook
	state   renderState

	// subEntries is populated by overlay renderers only; leaf renderers
	// keep it nil.
	subEntries []SubplotEntry

	// extentsFn and labelsFn let overlay construction swap in composite
	// behavior while sharing the finalize path.
	extentsFn func(view data.Element, ranges data.Ranges) data.Extents
	labelsFn  func(view data.Element, xl, yl, zl string) (string, string, string)
}

// NewElementRenderer builds a leaf renderer over a frame sequence with a
// concrete drawer.
func NewElementRenderer(seq *data.FrameSequence, drawer Drawer, cfg Config) (*ElementRenderer, error) {
	if seq == nil || seq.Len() == 0 {
		return nil, ErrEmptySequence
	}
	r := &ElementRenderer{
		seq:         seq,
		store:       cfg.Store,
		opts:        cfg.Options,
		keys:        cfg.Keys,
		dims:        cfg.Dimensions,
		uniform:     cfg.Uniform,
		overlaid:    cfg.Overlaid,
		cyclicIndex: cfg.CyclicIndex,
		zorder:      cfg.Zorder,
		drawer:      drawer,
		hooks:       cfg.Hooks,
	}
	if r.drawer == nil {
		r.drawer = BaseDrawer{}
	}
	if r.keys == nil {
		r.keys = seq.Keys()
	}
	if r.dims == nil {
		r.dims = seq.KeyDimensions()
	}

	check := seq.Last()
	if comp, ok := check.(data.Composite); ok {
		if layers := comp.Layers(); len(layers) > 0 {
			check = layers[0].Element
		}
	}
	if check != nil && check.Is3D() {
		r.opts.Projection3D = true
	}

	if cfg.Style != nil {
		r.styleSpec = *cfg.Style
	} else if cfg.Store != nil {
		r.styleSpec = cfg.Store.Style(seq.Last())
	}

	r.handles.Axes = cfg.Axes
	r.handles.Figure = cfg.Figure
	if r.handles.Axes == nil {
		fig := backend.NewFigure()
		r.handles.Figure = fig
		r.handles.Axes = fig.AddAxes(r.opts.Width, r.opts.Height)
	}
	r.handles.Axes.SetProjection3D(r.opts.Projection3D)

	r.extentsFn = r.elementExtents
	r.labelsFn = r.elementAxisLabels
	return r, nil
}

func (r *ElementRenderer) Handles() *Handles              { return &r.handles }
func (r *ElementRenderer) Options() Options               { return r.opts }
func (r *ElementRenderer) Sequence() *data.FrameSequence  { return r.seq }
func (r *ElementRenderer) Zorder() int                    { return r.zorder }
func (r *ElementRenderer) CyclicIndex() int               { return r.cyclicIndex }
func (r *ElementRenderer) Keys() []data.Key               { return r.keys }
func (r *ElementRenderer) Dimensions() []data.Dimension   { return r.dims }
func (r *ElementRenderer) appliesRanges() bool            { return r.opts.ApplyRanges }
func (r *ElementRenderer) legendData() []backend.LegendEntry {
	return r.handles.LegendData
}

func (r *ElementRenderer) zSpan() int { return 1 }

// Style resolves the option bundle for this renderer's cyclic index.
func (r *ElementRenderer) Style() map[string]any {
	return r.styleSpec.At(r.cyclicIndex)
}

// AddHook registers a finalize hook.
func (r *ElementRenderer) AddHook(h Hook) { r.hooks = append(r.hooks, h) }

// selectFrame resolves a key leniently; nil means "no frame".
func (r *ElementRenderer) selectFrame(key data.Key) data.Element {
	return SelectFrame(r.seq, key, r.dims, r.uniform)
}

// Frame exposes lenient frame selection for hooks and playback code.
func (r *ElementRenderer) Frame(key data.Key) data.Element { return r.selectFrame(key) }

// Render draws the last frame and finalizes the axis.
func (r *ElementRenderer) Render(ranges data.Ranges) (*backend.Figure, error) {
	if r.state != stateNew {
		return nil, ErrAlreadyRendered
	}
	key := r.keys[len(r.keys)-1]
	view := r.seq.Last()
	ranges = ComputeRanges(r.store, r.seq, key, ranges)
	ranges = MatchSpec(view, ranges)

	artist, err := r.drawer.Draw(r, view, ranges)
	if err != nil {
		return nil, err
	}
	if artist != nil {
		r.handles.LegendHandle = artist
		r.handles.Artists = append(r.handles.Artists, artist)
	}
	r.state = stateRendered
	r.finalizeAxis(key, finalizeArgs{ranges: ranges})
	return r.handles.Figure, nil
}

// Update sets the renderer to the given key, hiding all owned handles
// when the key resolves to no frame.
func (r *ElementRenderer) Update(key data.Key, ranges data.Ranges) error {
	if r.state == stateNew {
		return ErrNotRendered
	}
	view := r.selectFrame(key)
	if view != nil && r.store != nil {
		opts, err := r.opts.Apply(r.store.Plot(view))
		if err != nil {
			return err
		}
		r.opts = opts
	}

	axes := r.handles.Axes
	axesVisible := view != nil || r.overlaid > 0
	axes.SetXVisible(axesVisible && r.opts.XAxis != AxisOff)
	axes.SetYVisible(axesVisible && r.opts.YAxis != AxisOff)
	axes.SetFaded(!axesVisible)

	for _, h := range r.handles.owned() {
		h.SetVisible(view != nil)
	}
	if view == nil {
		return nil
	}

	ranges = ComputeRanges(r.store, r.seq, key, ranges)
	ranges = MatchSpec(view, ranges)
	if err := r.drawer.Update(r, view, key, ranges); err != nil {
		return err
	}
	r.finalizeAxis(key, finalizeArgs{ranges: ranges})
	return nil
}

type finalizeArgs struct {
	title                  *string
	ranges                 data.Ranges
	xticks, yticks, zticks *backend.FixedTicks
	xlabel, ylabel, zlabel string
}

// finalizeAxis applies axis decoration for the key. Only the renderer at
// z-order 0 mutates shared cosmetic state; overlay sub-layers skip it so
// they cannot clobber the shared axis.
func (r *ElementRenderer) finalizeAxis(key data.Key, args finalizeArgs) {
	axes := r.handles.Axes
	if r.opts.BgColor != "" {
		axes.SetBackground(r.opts.BgColor)
	}

	view := r.selectFrame(key)
	if r.zorder == 0 && key != nil {
		title := r.FormatTitle(key)
		if args.title != nil {
			title = *args.title
		}

		xlabel, ylabel, zlabel := args.xlabel, args.ylabel, args.zlabel
		if view != nil {
			xlabel, ylabel, zlabel = r.labelsFn(view, xlabel, ylabel, zlabel)
			r.finalizeLimits(view, args.ranges)
		}

		if len(r.subEntries) == 0 {
			if leg := axes.Legend(); leg != nil {
				leg.Visible = r.opts.ShowLegend
			}
			axes.SetGrid(r.opts.ShowGrid)
		}

		if xlabel != "" && r.opts.XAxis != AxisOff {
			axes.SetXLabel(xlabel)
		}
		if ylabel != "" && r.opts.YAxis != AxisOff {
			axes.SetYLabel(ylabel)
		}
		if zlabel != "" && r.opts.ZAxis {
			axes.SetZLabel(zlabel)
		}

		r.applyAspect()
		r.finalizeScales()
		if r.opts.ApplyTicks {
			r.finalizeTicks(args.xticks, args.yticks, args.zticks)
		}

		if r.opts.ShowTitle && title != "" {
			axes.SetTitle(title)
		}
	}

	r.runHooks(view)
}

// FormatTitle combines the title template with the dimension-derived
// frame suffix. An empty result means "no title".
func (r *ElementRenderer) FormatTitle(key data.Key) string {
	frame := r.selectFrame(key)
	if frame == nil {
		return ""
	}
	typeName := frame.Kind()
	group := frame.Group()
	if group == typeName {
		group = ""
	}
	title := strings.TrimSpace(strings.NewReplacer(
		"{label}", frame.Label(),
		"{group}", group,
		"{type}", typeName,
	).Replace(r.opts.TitleFormat))
	dimTitle := strings.TrimSpace(r.frameTitle(key))

	switch {
	case title == "" && dimTitle == "":
		return ""
	case title == "":
		return dimTitle
	case dimTitle == "":
		return title
	default:
		return title + "\n" + dimTitle
	}
}

// frameTitle renders the key values against the renderer's dimensions,
// e.g. "time: 0.5". The synthetic Frame dimension contributes nothing.
func (r *ElementRenderer) frameTitle(key data.Key) string {
	dims := r.dims
	if len(dims) == 0 || (len(dims) == 1 && dims[0].Name == data.FrameName) {
		return ""
	}
	parts := make([]string, 0, len(dims))
	for i, d := range dims {
		if i >= len(key) {
			break
		}
		parts = append(parts, d.Name+": "+d.PrintValue(key[i]))
	}
	return strings.Join(parts, ", ")
}

// elementAxisLabels derives default axis labels from the frame's
// dimensions; composite frames skip their own grouping dimensions first.
func (r *ElementRenderer) elementAxisLabels(view data.Element, xlabel, ylabel, zlabel string) (string, string, string) {
	dims := view.Dimensions()
	if comp, ok := view.(data.Composite); ok {
		n := len(comp.KeyDimensions())
		if n < len(dims) {
			dims = dims[n:]
		}
	}
	if len(dims) > 0 && xlabel == "" {
		xlabel = dimLabel(dims[0])
	}
	if len(dims) >= 2 && ylabel == "" {
		ylabel = dimLabel(dims[1])
	}
	if r.opts.Projection3D && len(dims) >= 3 && zlabel == "" {
		zlabel = dimLabel(dims[2])
	}
	return xlabel, ylabel, zlabel
}

func dimLabel(d data.Dimension) string {
	if d.Unit != "" {
		return d.Name + " (" + d.Unit + ")"
	}
	return d.Name
}

// elementExtents is the leaf implementation of extent computation.
func (r *ElementRenderer) elementExtents(view data.Element, ranges data.Ranges) data.Extents {
	framewise := false
	if r.store != nil && view != nil {
		if v, ok := r.store.Norm(view)["framewise"].(bool); ok {
			framewise = v
		}
	}
	return ComputeExtents(r.seq, view, ranges, ExtentsParams{
		ApplyRanges:  r.opts.ApplyRanges,
		ApplyExtents: r.opts.ApplyExtents,
		Framewise:    framewise,
		Is3D:         r.opts.Projection3D,
	})
}

func (r *ElementRenderer) layerExtents(view data.Element, ranges data.Ranges) data.Extents {
	return r.extentsFn(view, ranges)
}

// finalizeLimits pushes finite extent bounds onto the axes. Overlay
// children leave limits to their parent.
func (r *ElementRenderer) finalizeLimits(view data.Element, ranges data.Ranges) {
	if r.overlaid > 0 {
		return
	}
	ext := r.extentsFn(view, ranges)
	if len(ext) == 0 {
		return
	}
	axes := r.handles.Axes
	var l, b, rt, t float64
	if len(ext) == 6 {
		var zmin, zmax float64
		l, b, zmin, rt, t, zmax = ext[0], ext[1], ext[2], ext[3], ext[4], ext[5]
		if finitePair(zmin, zmax) && zmin != zmax {
			axes.SetZLim(zmin, zmax)
		}
	} else {
		l, b, rt, t = ext[0], ext[1], ext[2], ext[3]
	}
	if finitePair(l, rt) && l != rt {
		axes.SetXLim(l, rt)
	}
	if finitePair(b, t) && b != t {
		axes.SetYLim(b, t)
	}
}

func finitePair(a, b float64) bool {
	return !math.IsNaN(a) && !math.IsInf(a, 0) && !math.IsNaN(b) && !math.IsInf(b, 0)
}

// applyAspect applies the aspect policy: skipped entirely under log
// axes; "square" inverts the data ratio; a numeric value divides the
// square aspect; other named modes pass through.
func (r *ElementRenderer) applyAspect() {
	axes := r.handles.Axes
	switch {
	case r.opts.LogX || r.opts.LogY:
	case r.opts.Aspect == "square":
		axes.SetAspect(1 / axes.DataRatio())
	case r.opts.Aspect != "":
		axes.SetNamedAspect(r.opts.Aspect)
	case r.opts.AspectValue > 0:
		axes.SetAspect((1 / axes.DataRatio()) / r.opts.AspectValue)
	}
}

func (r *ElementRenderer) finalizeScales() {
	axes := r.handles.Axes
	if r.opts.LogX {
		axes.SetXScale("log")
	} else if r.opts.LogY {
		axes.SetYScale("log")
	}
	if r.opts.LogZ && r.opts.Projection3D {
		axes.SetZScale("log")
	}
	axes.SetXInverted(r.opts.InvertX)
	axes.SetYInverted(r.opts.InvertY)
}

// finalizeTicks applies the tick policy: explicit locator, then explicit
// tick positions, then a log locator, then an at-most-N locator. Hidden
// axes disable their spines; hidden labels suppress decoration while the
// axis stays visible.
func (r *ElementRenderer) finalizeTicks(xticks, yticks, zticks *backend.FixedTicks) {
	axes := r.handles.Axes
	if !r.opts.Projection3D {
		var disabled []string
		switch r.opts.XAxis {
		case AxisTop:
			axes.SetXTickPosition(backend.PosTop)
		case AxisBottom:
			axes.SetXTickPosition(backend.PosBottom)
		case AxisOff:
			axes.SetXVisible(false)
			disabled = append(disabled, backend.PosTop, backend.PosBottom)
		}
		switch r.opts.YAxis {
		case AxisLeft:
			axes.SetYTickPosition(backend.PosLeft)
		case AxisRight:
			axes.SetYTickPosition(backend.PosRight)
		case AxisOff:
			axes.SetYVisible(false)
			disabled = append(disabled, backend.PosLeft, backend.PosRight)
		}
		for _, pos := range disabled {
			axes.SetSpine(pos, false)
		}
	}

	if r.overlaid == 0 && !r.opts.ShowFrame {
		if r.opts.YAxis == AxisLeft {
			axes.SetSpine(backend.PosRight, false)
		} else {
			axes.SetSpine(backend.PosLeft, false)
		}
		if r.opts.XAxis == AxisTop {
			axes.SetSpine(backend.PosBottom, false)
		} else {
			axes.SetSpine(backend.PosTop, false)
		}
	}

	switch {
	case r.opts.XTicker != nil:
		axes.SetXLocator(r.opts.XTicker)
	case xticks != nil:
		axes.SetXTicks(*xticks)
	case r.opts.LogX:
		axes.SetXLocator(backend.LogLocator{NumTicks: r.opts.XTicks})
	case r.opts.XTicks > 0:
		axes.SetXLocator(backend.MaxNLocator{N: r.opts.XTicks})
	}
	axes.SetXTickRotation(r.opts.XRotation)

	switch {
	case r.opts.YTicker != nil:
		axes.SetYLocator(r.opts.YTicker)
	case yticks != nil:
		axes.SetYTicks(*yticks)
	case r.opts.LogY:
		axes.SetYLocator(backend.LogLocator{NumTicks: r.opts.YTicks})
	case r.opts.YTicks > 0:
		axes.SetYLocator(backend.MaxNLocator{N: r.opts.YTicks})
	}
	axes.SetYTickRotation(r.opts.YRotation)

	if r.opts.Projection3D {
		switch {
		case r.opts.ZTicker != nil:
			axes.SetZLocator(r.opts.ZTicker)
		case zticks != nil:
			axes.SetZTicks(*zticks)
		case r.opts.LogZ:
			axes.SetZLocator(backend.LogLocator{NumTicks: r.opts.ZTicks})
		default:
			axes.SetZLocator(backend.MaxNLocator{N: r.opts.ZTicks})
		}
		axes.SetZTickRotation(r.opts.ZRotation)
	}

	for _, hidden := range r.opts.HiddenLabels {
		switch hidden {
		case "x":
			axes.SetXTicks(backend.FixedTicks{})
			axes.SetXTickPosition(backend.PosNone)
			axes.SetXLabel("")
		case "y":
			axes.SetYTicks(backend.FixedTicks{})
			axes.SetYTickPosition(backend.PosNone)
			axes.SetYLabel("")
		case "z":
			axes.SetZTicks(backend.FixedTicks{})
			axes.SetZLabel("")
		}
	}
}

// runHooks invokes every finalize hook, isolating failures so one broken
// hook cannot abort the others or the render.
func (r *ElementRenderer) runHooks(frame data.Element) {
	for _, h := range r.hooks {
		func() {
			defer func() {
				if rec := recover(); rec != nil {
					log.Warn("finalize hook panicked", "hook", hookName(h), "err", rec)
				}
			}()
			if err := h(r, frame); err != nil {
				log.Warn("finalize hook failed", "hook", hookName(h), "err", err)
			}
		}()
	}
}

func hookName(h Hook) string {
	if fn := runtime.FuncForPC(reflect.ValueOf(h).Pointer()); fn != nil {
		return fn.Name()
	}
	return fmt.Sprintf("%T", h)
}
