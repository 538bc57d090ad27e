package plot

import (
	"fmt"

	"github.com/san-kum/layerplot/internal/backend"
	"github.com/san-kum/layerplot/internal/data"
)

// Drawer renders one element kind onto the axes and keeps its artist in
// sync on frame changes. Drawers are stateless; the artist lives in the
// renderer's handles.
type Drawer interface {
	Draw(r *ElementRenderer, view data.Element, ranges data.Ranges) (backend.Artist, error)
	Update(r *ElementRenderer, view data.Element, key data.Key, ranges data.Ranges) error
}

// BaseDrawer is the drawer for kinds without a concrete implementation.
type BaseDrawer struct{}

func (BaseDrawer) Draw(*ElementRenderer, data.Element, data.Ranges) (backend.Artist, error) {
	return nil, ErrNotImplemented
}

func (BaseDrawer) Update(*ElementRenderer, data.Element, data.Key, data.Ranges) error {
	return ErrNotImplemented
}

// legendLabel picks the label shown in a legend for an element.
func legendLabel(el data.Element) string {
	if l := el.Label(); l != "" {
		return l
	}
	return el.Group()
}

// styleColor extracts the color entry of a resolved style bundle.
func styleColor(opts map[string]any) string {
	if c, ok := opts["color"].(string); ok {
		return c
	}
	return ""
}

type curveDrawer struct{}

func (curveDrawer) Draw(r *ElementRenderer, view data.Element, _ data.Ranges) (backend.Artist, error) {
	c, ok := view.(*data.Curve)
	if !ok {
		return nil, fmt.Errorf("%w: curve drawer got %s", ErrUnknownKind, view.Kind())
	}
	line := backend.NewLine(c.X, c.Y, styleColor(r.Style()), legendLabel(view))
	r.handles.Axes.AddArtist(r.zorder, line)
	return line, nil
}

func (curveDrawer) Update(r *ElementRenderer, view data.Element, _ data.Key, _ data.Ranges) error {
	c, ok := view.(*data.Curve)
	if !ok {
		return fmt.Errorf("%w: curve drawer got %s", ErrUnknownKind, view.Kind())
	}
	line, ok := r.handles.LegendHandle.(*backend.Line)
	if !ok {
		return ErrNotRendered
	}
	line.SetData(c.X, c.Y)
	return nil
}

type pointsDrawer struct{}

func (pointsDrawer) Draw(r *ElementRenderer, view data.Element, _ data.Ranges) (backend.Artist, error) {
	p, ok := view.(*data.Points)
	if !ok {
		return nil, fmt.Errorf("%w: points drawer got %s", ErrUnknownKind, view.Kind())
	}
	m := backend.NewMarkers(p.X, p.Y, styleColor(r.Style()), legendLabel(view))
	r.handles.Axes.AddArtist(r.zorder, m)
	return m, nil
}

func (pointsDrawer) Update(r *ElementRenderer, view data.Element, _ data.Key, _ data.Ranges) error {
	p, ok := view.(*data.Points)
	if !ok {
		return fmt.Errorf("%w: points drawer got %s", ErrUnknownKind, view.Kind())
	}
	m, ok := r.handles.LegendHandle.(*backend.Markers)
	if !ok {
		return ErrNotRendered
	}
	m.SetData(p.X, p.Y)
	return nil
}

type spacePathDrawer struct{}

func pathPoints(p *data.Path3D) []backend.Vec3 {
	n := len(p.X)
	pts := make([]backend.Vec3, 0, n)
	for i := 0; i < n && i < len(p.Y) && i < len(p.Z); i++ {
		pts = append(pts, backend.Vec3{X: p.X[i], Y: p.Y[i], Z: p.Z[i]})
	}
	return pts
}

func (spacePathDrawer) Draw(r *ElementRenderer, view data.Element, _ data.Ranges) (backend.Artist, error) {
	p, ok := view.(*data.Path3D)
	if !ok {
		return nil, fmt.Errorf("%w: path drawer got %s", ErrUnknownKind, view.Kind())
	}
	cam := backend.NewCamera()
	path := backend.NewSpacePath(pathPoints(p), cam, styleColor(r.Style()), legendLabel(view))
	r.handles.Axes.AddArtist(r.zorder, path)
	return path, nil
}

func (spacePathDrawer) Update(r *ElementRenderer, view data.Element, _ data.Key, _ data.Ranges) error {
	p, ok := view.(*data.Path3D)
	if !ok {
		return fmt.Errorf("%w: path drawer got %s", ErrUnknownKind, view.Kind())
	}
	path, ok := r.handles.LegendHandle.(*backend.SpacePath)
	if !ok {
		return ErrNotRendered
	}
	path.SetPoints(pathPoints(p))
	return nil
}

// DrawFunc renders a whole frame from scratch; it is the escape hatch
// for element kinds whose backend state cannot be updated in place.
type DrawFunc func(r *ElementRenderer, view data.Element, ranges data.Ranges) (backend.Artist, error)

// funcDrawer adapts a DrawFunc into a full-redraw drawer: on update the
// axes content is cleared (by the z-order 0 renderer only) and redrawn.
type funcDrawer struct {
	fn DrawFunc
}

func (d funcDrawer) Draw(r *ElementRenderer, view data.Element, ranges data.Ranges) (backend.Artist, error) {
	return d.fn(r, view, ranges)
}

func (d funcDrawer) Update(r *ElementRenderer, view data.Element, _ data.Key, ranges data.Ranges) error {
	if r.zorder == 0 {
		r.handles.Axes.Clear()
	}
	art, err := d.fn(r, view, ranges)
	if err != nil {
		return err
	}
	if art != nil {
		r.handles.LegendHandle = art
		r.handles.Artists = []backend.Artist{art}
	}
	return nil
}
