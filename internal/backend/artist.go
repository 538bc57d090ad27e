package backend

import "math"

// Artist is a drawable owned by exactly one renderer. Artists can be
// hidden without being removed, and re-pointed at new data in place.
type Artist interface {
	SetVisible(bool)
	Visible() bool
	Label() string
	// Bounds returns the artist's data bounding box (x0, y0, x1, y1);
	// NaN components when empty.
	Bounds() (float64, float64, float64, float64)
	draw(ax *Axes)
}

// Line is a polyline artist in data coordinates.
type Line struct {
	x, y    []float64
	color   string
	label   string
	visible bool
}

func NewLine(x, y []float64, color, label string) *Line {
	return &Line{x: x, y: y, color: color, label: label, visible: true}
}

func (l *Line) SetVisible(v bool) { l.visible = v }
func (l *Line) Visible() bool     { return l.visible }
func (l *Line) Label() string     { return l.label }
func (l *Line) Color() string     { return l.color }

// SetData replaces the line's coordinates in place.
func (l *Line) SetData(x, y []float64) {
	l.x, l.y = x, y
}

func (l *Line) Bounds() (float64, float64, float64, float64) {
	return seriesBounds(l.x, l.y)
}

func (l *Line) draw(ax *Axes) {
	var px, py int
	havePrev := false
	for i := range l.x {
		sx, sy, ok := ax.subpixel(l.x[i], l.y[i])
		if !ok {
			havePrev = false
			continue
		}
		if havePrev {
			ax.canvas.Line(px, py, sx, sy, l.color)
		} else {
			ax.canvas.Set(sx, sy, l.color)
		}
		px, py = sx, sy
		havePrev = true
	}
}

// Markers is a scatter artist in data coordinates.
type Markers struct {
	x, y    []float64
	color   string
	label   string
	visible bool
}

func NewMarkers(x, y []float64, color, label string) *Markers {
	return &Markers{x: x, y: y, color: color, label: label, visible: true}
}

func (m *Markers) SetVisible(v bool) { m.visible = v }
func (m *Markers) Visible() bool     { return m.visible }
func (m *Markers) Label() string     { return m.label }
func (m *Markers) Color() string     { return m.color }

func (m *Markers) SetData(x, y []float64) {
	m.x, m.y = x, y
}

func (m *Markers) Bounds() (float64, float64, float64, float64) {
	return seriesBounds(m.x, m.y)
}

func (m *Markers) draw(ax *Axes) {
	for i := range m.x {
		if sx, sy, ok := ax.subpixel(m.x[i], m.y[i]); ok {
			ax.canvas.Set(sx, sy, m.color)
			ax.canvas.Set(sx+1, sy, m.color)
			ax.canvas.Set(sx, sy+1, m.color)
			ax.canvas.Set(sx+1, sy+1, m.color)
		}
	}
}

// SpacePath is a 3D polyline artist projected through a camera.
type SpacePath struct {
	pts     []Vec3
	cam     *Camera
	color   string
	label   string
	visible bool
}

func NewSpacePath(pts []Vec3, cam *Camera, color, label string) *SpacePath {
	if cam == nil {
		cam = NewCamera()
	}
	return &SpacePath{pts: pts, cam: cam, color: color, label: label, visible: true}
}

func (p *SpacePath) SetVisible(v bool) { p.visible = v }
func (p *SpacePath) Visible() bool     { return p.visible }
func (p *SpacePath) Label() string     { return p.label }
func (p *SpacePath) Color() string     { return p.color }
func (p *SpacePath) Camera() *Camera   { return p.cam }

func (p *SpacePath) SetPoints(pts []Vec3) { p.pts = pts }

func (p *SpacePath) Bounds() (float64, float64, float64, float64) {
	x0, y0, x1, y1 := math.NaN(), math.NaN(), math.NaN(), math.NaN()
	for _, v := range p.pts {
		x0 = nanMin(x0, v.X)
		x1 = nanMax(x1, v.X)
		y0 = nanMin(y0, v.Y)
		y1 = nanMax(y1, v.Y)
	}
	return x0, y0, x1, y1
}

func (p *SpacePath) draw(ax *Axes) {
	sw, sh := ax.subWidth(), ax.subHeight()
	for _, s := range projectPath(p.cam, p.pts, sw, sh) {
		ax.canvas.Line(s.x1, s.y1, s.x2, s.y2, p.color)
	}
}

func seriesBounds(x, y []float64) (float64, float64, float64, float64) {
	x0, y0, x1, y1 := math.NaN(), math.NaN(), math.NaN(), math.NaN()
	for i := range x {
		x0 = nanMin(x0, x[i])
		x1 = nanMax(x1, x[i])
	}
	for i := range y {
		y0 = nanMin(y0, y[i])
		y1 = nanMax(y1, y[i])
	}
	return x0, y0, x1, y1
}

func nanMin(a, b float64) float64 {
	if math.IsNaN(b) || math.IsInf(b, 0) {
		return a
	}
	if math.IsNaN(a) || b < a {
		return b
	}
	return a
}

func nanMax(a, b float64) float64 {
	if math.IsNaN(b) || math.IsInf(b, 0) {
		return a
	}
	if math.IsNaN(a) || b > a {
		return b
	}
	return a
}
