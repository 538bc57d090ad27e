package data

import "math"

// Built-in element kinds.
const (
	KindCurve     = "Curve"
	KindPoints    = "Points"
	KindPath3D    = "Path3D"
	KindOverlay   = "Overlay"
	KindNdOverlay = "NdOverlay"
)

// Element is a single plottable data object. Kind identifies the concrete
// type ("Curve", "Points", ...), Group and Label carry the user-facing
// identity used for titling and style resolution.
type Element interface {
	Kind() string
	Group() string
	Label() string
	Dimensions() []Dimension
	// Range returns the numeric data range of dimension index i.
	// Unknown ranges are (NaN, NaN).
	Range(i int) (float64, float64)
	// Extents returns explicit extent overrides declared on the element,
	// fully unknown when nothing was declared.
	Extents() Extents
	Is3D() bool
}

// Meta carries the shared identity and override fields of an element.
type Meta struct {
	group   string
	label   string
	dims    []Dimension
	extents Extents
}

// ElementOption configures an element at construction time.
type ElementOption func(*Meta)

// WithGroup overrides the element group.
func WithGroup(group string) ElementOption {
	return func(m *Meta) { m.group = group }
}

// WithLabel sets the element label.
func WithLabel(label string) ElementOption {
	return func(m *Meta) { m.label = label }
}

// WithDimensions overrides the default dimensions.
func WithDimensions(dims ...Dimension) ElementOption {
	return func(m *Meta) { m.dims = dims }
}

// WithExtents declares explicit extent overrides.
func WithExtents(e Extents) ElementOption {
	return func(m *Meta) { m.extents = e }
}

func newMeta(group string, dims []Dimension, opts []ElementOption) Meta {
	m := Meta{group: group, dims: dims}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Curve is an ordered x/y series.
type Curve struct {
	X, Y []float64
	meta Meta
}

func NewCurve(x, y []float64, opts ...ElementOption) *Curve {
	dims := []Dimension{Dim("x"), Dim("y")}
	return &Curve{X: x, Y: y, meta: newMeta(KindCurve, dims, opts)}
}

func (c *Curve) Kind() string            { return KindCurve }
func (c *Curve) Group() string           { return c.meta.group }
func (c *Curve) Label() string           { return c.meta.label }
func (c *Curve) Dimensions() []Dimension { return c.meta.dims }
func (c *Curve) Is3D() bool              { return false }

func (c *Curve) Range(i int) (float64, float64) {
	switch i {
	case 0:
		return seriesRange(c.X)
	case 1:
		return seriesRange(c.Y)
	}
	return math.NaN(), math.NaN()
}

func (c *Curve) Extents() Extents {
	if c.meta.extents != nil {
		return c.meta.extents
	}
	return UnknownExtents(false)
}

// Points is an unordered scatter of x/y samples.
type Points struct {
	X, Y []float64
	meta Meta
}

func NewPoints(x, y []float64, opts ...ElementOption) *Points {
	dims := []Dimension{Dim("x"), Dim("y")}
	return &Points{X: x, Y: y, meta: newMeta(KindPoints, dims, opts)}
}

func (p *Points) Kind() string            { return KindPoints }
func (p *Points) Group() string           { return p.meta.group }
func (p *Points) Label() string           { return p.meta.label }
func (p *Points) Dimensions() []Dimension { return p.meta.dims }
func (p *Points) Is3D() bool              { return false }

func (p *Points) Range(i int) (float64, float64) {
	switch i {
	case 0:
		return seriesRange(p.X)
	case 1:
		return seriesRange(p.Y)
	}
	return math.NaN(), math.NaN()
}

func (p *Points) Extents() Extents {
	if p.meta.extents != nil {
		return p.meta.extents
	}
	return UnknownExtents(false)
}

// Path3D is an ordered polyline in three dimensions.
type Path3D struct {
	X, Y, Z []float64
	meta    Meta
}

func NewPath3D(x, y, z []float64, opts ...ElementOption) *Path3D {
	dims := []Dimension{Dim("x"), Dim("y"), Dim("z")}
	return &Path3D{X: x, Y: y, Z: z, meta: newMeta(KindPath3D, dims, opts)}
}

func (p *Path3D) Kind() string            { return KindPath3D }
func (p *Path3D) Group() string           { return p.meta.group }
func (p *Path3D) Label() string           { return p.meta.label }
func (p *Path3D) Dimensions() []Dimension { return p.meta.dims }
func (p *Path3D) Is3D() bool              { return true }

func (p *Path3D) Range(i int) (float64, float64) {
	switch i {
	case 0:
		return seriesRange(p.X)
	case 1:
		return seriesRange(p.Y)
	case 2:
		return seriesRange(p.Z)
	}
	return math.NaN(), math.NaN()
}

func (p *Path3D) Extents() Extents {
	if p.meta.extents != nil {
		return p.meta.extents
	}
	return UnknownExtents(true)
}

func seriesRange(vals []float64) (float64, float64) {
	lo, hi := math.NaN(), math.NaN()
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if math.IsNaN(lo) || v < lo {
			lo = v
		}
		if math.IsNaN(hi) || v > hi {
			hi = v
		}
	}
	return lo, hi
}
