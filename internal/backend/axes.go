package backend

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/layerplot/internal/style"
)

// Axis position constants. "none" hides tick marks while keeping the
// axis itself.
const (
	PosBottom = "bottom"
	PosTop    = "top"
	PosLeft   = "left"
	PosRight  = "right"
	PosNone   = "none"
)

type zArtist struct {
	z   int
	seq int
	a   Artist
}

// Axes is the mutable axis region renderers draw into: data limits,
// scales, ticks, spines, labels, title, grid, legend and a z-ordered
// artist list. One renderer owns the axes; overlay children share it but
// only mutate their own artists.
type Axes struct {
	width, height int
	canvas        *Canvas

	artists []zArtist
	nextSeq int

	xlim, ylim, zlim          [2]float64
	xlimSet, ylimSet, zlimSet bool
	xscale, yscale, zscale    string
	invertX, invertY          bool

	title, xlabel, ylabel, zlabel string

	xticker, yticker, zticker Locator
	xfixed, yfixed, zfixed    *FixedTicks
	xrot, yrot, zrot          int
	xtickPos, ytickPos        string
	xvisible, yvisible        bool

	spines map[string]bool
	grid   bool
	faded  bool

	aspect      float64
	aspectName  string
	legend      *Legend
	background  string
	projection3 bool
}

func NewAxes(width, height int) *Axes {
	return &Axes{
		width:    width,
		height:   height,
		canvas:   NewCanvas(width, height),
		xscale:   "linear",
		yscale:   "linear",
		zscale:   "linear",
		xtickPos: PosBottom,
		ytickPos: PosLeft,
		xvisible: true,
		yvisible: true,
		spines: map[string]bool{
			PosLeft: true, PosRight: true, PosTop: true, PosBottom: true,
		},
	}
}

func (a *Axes) Width() int  { return a.width }
func (a *Axes) Height() int { return a.height }

func (a *Axes) subWidth() int  { return a.width * 2 }
func (a *Axes) subHeight() int { return a.height * 4 }

// AddArtist registers an artist at the given z-order. Later additions at
// equal z draw later.
func (a *Axes) AddArtist(z int, art Artist) {
	a.artists = append(a.artists, zArtist{z: z, seq: a.nextSeq, a: art})
	a.nextSeq++
}

// Artists returns all registered artists in draw order.
func (a *Axes) Artists() []Artist {
	sorted := append([]zArtist(nil), a.artists...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].z != sorted[j].z {
			return sorted[i].z < sorted[j].z
		}
		return sorted[i].seq < sorted[j].seq
	})
	out := make([]Artist, len(sorted))
	for i, za := range sorted {
		out[i] = za.a
	}
	return out
}

// Clear removes every artist, as when a 3D overlay redraws from scratch.
func (a *Axes) Clear() {
	a.artists = nil
	a.canvas.Clear()
}

func (a *Axes) SetXLim(lo, hi float64) { a.xlim = [2]float64{lo, hi}; a.xlimSet = true }
func (a *Axes) SetYLim(lo, hi float64) { a.ylim = [2]float64{lo, hi}; a.ylimSet = true }
func (a *Axes) SetZLim(lo, hi float64) { a.zlim = [2]float64{lo, hi}; a.zlimSet = true }

func (a *Axes) XLim() (float64, float64) { return a.xlim[0], a.xlim[1] }
func (a *Axes) YLim() (float64, float64) { return a.ylim[0], a.ylim[1] }
func (a *Axes) ZLim() (float64, float64) { return a.zlim[0], a.zlim[1] }

func (a *Axes) SetXScale(s string) { a.xscale = s }
func (a *Axes) SetYScale(s string) { a.yscale = s }
func (a *Axes) SetZScale(s string) { a.zscale = s }
func (a *Axes) XScale() string     { return a.xscale }
func (a *Axes) YScale() string     { return a.yscale }

func (a *Axes) SetXInverted(v bool) { a.invertX = v }
func (a *Axes) SetYInverted(v bool) { a.invertY = v }
func (a *Axes) XInverted() bool     { return a.invertX }
func (a *Axes) YInverted() bool     { return a.invertY }

func (a *Axes) SetTitle(t string)  { a.title = t }
func (a *Axes) Title() string      { return a.title }
func (a *Axes) SetXLabel(l string) { a.xlabel = l }
func (a *Axes) SetYLabel(l string) { a.ylabel = l }
func (a *Axes) SetZLabel(l string) { a.zlabel = l }
func (a *Axes) XLabel() string     { return a.xlabel }
func (a *Axes) YLabel() string     { return a.ylabel }
func (a *Axes) ZLabel() string     { return a.zlabel }

func (a *Axes) SetXLocator(l Locator) { a.xticker = l }
func (a *Axes) SetYLocator(l Locator) { a.yticker = l }
func (a *Axes) SetZLocator(l Locator) { a.zticker = l }
func (a *Axes) XLocator() Locator     { return a.xticker }
func (a *Axes) YLocator() Locator     { return a.yticker }
func (a *Axes) ZLocator() Locator     { return a.zticker }

func (a *Axes) SetXTicks(t FixedTicks) { a.xfixed = &t }
func (a *Axes) SetYTicks(t FixedTicks) { a.yfixed = &t }
func (a *Axes) SetZTicks(t FixedTicks) { a.zfixed = &t }
func (a *Axes) XTicks() *FixedTicks    { return a.xfixed }
func (a *Axes) YTicks() *FixedTicks    { return a.yfixed }

func (a *Axes) SetXTickRotation(deg int) { a.xrot = deg }
func (a *Axes) SetYTickRotation(deg int) { a.yrot = deg }
func (a *Axes) SetZTickRotation(deg int) { a.zrot = deg }
func (a *Axes) XTickRotation() int       { return a.xrot }
func (a *Axes) YTickRotation() int       { return a.yrot }
func (a *Axes) ZTickRotation() int       { return a.zrot }

func (a *Axes) SetXTickPosition(pos string) { a.xtickPos = pos }
func (a *Axes) SetYTickPosition(pos string) { a.ytickPos = pos }
func (a *Axes) XTickPosition() string       { return a.xtickPos }
func (a *Axes) YTickPosition() string       { return a.ytickPos }

func (a *Axes) SetXVisible(v bool) { a.xvisible = v }
func (a *Axes) SetYVisible(v bool) { a.yvisible = v }
func (a *Axes) XVisible() bool     { return a.xvisible }
func (a *Axes) YVisible() bool     { return a.yvisible }

func (a *Axes) SetSpine(name string, visible bool) { a.spines[name] = visible }
func (a *Axes) Spine(name string) bool             { return a.spines[name] }

func (a *Axes) SetGrid(on bool) { a.grid = on }
func (a *Axes) Grid() bool      { return a.grid }

// SetFaded dims the whole region, used when no frame exists for the
// current key.
func (a *Axes) SetFaded(v bool) { a.faded = v }

func (a *Axes) SetBackground(c string) { a.background = c }

func (a *Axes) SetProjection3D(v bool) { a.projection3 = v }
func (a *Axes) Projection3D() bool     { return a.projection3 }

// SetAspect sets a numeric aspect ratio.
func (a *Axes) SetAspect(v float64) { a.aspect = v; a.aspectName = "" }

// SetNamedAspect sets a named aspect mode ("auto", "equal").
func (a *Axes) SetNamedAspect(name string) { a.aspectName = name; a.aspect = 0 }

// Aspect returns the numeric aspect and named mode; the name wins when
// non-empty.
func (a *Axes) Aspect() (float64, string) { return a.aspect, a.aspectName }

// DataRatio is the ratio of the y data interval to the x data interval
// under the current limits.
func (a *Axes) DataRatio() float64 {
	dx := a.xlim[1] - a.xlim[0]
	dy := a.ylim[1] - a.ylim[0]
	if dx == 0 || math.IsNaN(dx) || math.IsNaN(dy) {
		return 1
	}
	return dy / dx
}

func (a *Axes) SetLegend(l *Legend) { a.legend = l }
func (a *Axes) Legend() *Legend     { return a.legend }

// AutoLegendEntries returns legend entries discovered from labeled
// artists, in draw order.
func (a *Axes) AutoLegendEntries() []LegendEntry {
	var entries []LegendEntry
	for _, art := range a.Artists() {
		if art.Label() != "" {
			entries = append(entries, LegendEntry{Handle: art, Label: art.Label()})
		}
	}
	return entries
}

// autoscale derives missing limits from visible artist bounds.
func (a *Axes) autoscale() {
	if a.xlimSet && a.ylimSet {
		return
	}
	x0, y0, x1, y1 := math.NaN(), math.NaN(), math.NaN(), math.NaN()
	for _, art := range a.Artists() {
		if !art.Visible() {
			continue
		}
		bx0, by0, bx1, by1 := art.Bounds()
		x0, x1 = nanMin(x0, bx0), nanMax(x1, bx1)
		y0, y1 = nanMin(y0, by0), nanMax(y1, by1)
	}
	if !a.xlimSet {
		if math.IsNaN(x0) || x0 == x1 {
			x0, x1 = 0, 1
		}
		a.xlim = [2]float64{x0, x1}
	}
	if !a.ylimSet {
		if math.IsNaN(y0) || y0 == y1 {
			y0, y1 = 0, 1
		}
		a.ylim = [2]float64{y0, y1}
	}
}

// subpixel maps a data point into canvas subpixel coordinates.
func (a *Axes) subpixel(x, y float64) (int, int, bool) {
	tx, ok := a.normalize(x, a.xlim, a.xscale)
	if !ok {
		return 0, 0, false
	}
	ty, ok := a.normalize(y, a.ylim, a.yscale)
	if !ok {
		return 0, 0, false
	}
	if a.invertX {
		tx = 1 - tx
	}
	if !a.invertY {
		ty = 1 - ty
	}
	sx := int(math.Round(tx * float64(a.subWidth()-1)))
	sy := int(math.Round(ty * float64(a.subHeight()-1)))
	return sx, sy, true
}

func (a *Axes) normalize(v float64, lim [2]float64, scale string) (float64, bool) {
	lo, hi := lim[0], lim[1]
	if scale == "log" {
		if v <= 0 || lo <= 0 || hi <= 0 {
			return 0, false
		}
		v, lo, hi = math.Log10(v), math.Log10(lo), math.Log10(hi)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || hi == lo {
		return 0, false
	}
	t := (v - lo) / (hi - lo)
	if t < -0.001 || t > 1.001 {
		return 0, false
	}
	return t, true
}

// Render composes the axes region into a styled terminal string.
func (a *Axes) Render() string {
	theme := style.CurrentTheme
	a.autoscale()
	a.canvas.Clear()
	for _, art := range a.Artists() {
		if art.Visible() {
			art.draw(a)
		}
	}

	paint := func(s, color string) string {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(s)
	}
	if a.faded {
		paint = func(s, _ string) string {
			return lipgloss.NewStyle().Foreground(theme.Muted).Faint(true).Render(s)
		}
	}
	rows := a.canvas.Rows(paint)

	axisStyle := lipgloss.NewStyle().Foreground(theme.Axis)
	textStyle := lipgloss.NewStyle().Foreground(theme.Text)
	mutedStyle := lipgloss.NewStyle().Foreground(theme.Muted)

	gutter := a.leftGutter()
	var b strings.Builder

	if a.title != "" {
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.Accent).
			Width(a.width + len(gutter)).Align(lipgloss.Center).Render(a.title))
		b.WriteString("\n")
	}
	if a.ylabel != "" && a.yvisible {
		b.WriteString(mutedStyle.Render(a.ylabel) + "\n")
	}

	yticks := a.resolveTicks(a.ylim, a.yscale, a.yticker, a.yfixed)
	for i, row := range rows {
		b.WriteString(axisStyle.Render(a.gutterLabel(i, yticks, len(gutter))))
		if a.Spine(PosLeft) && a.yvisible {
			b.WriteString(axisStyle.Render("│"))
		} else {
			b.WriteString(" ")
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	if a.Spine(PosBottom) && a.xvisible {
		b.WriteString(strings.Repeat(" ", len(gutter)))
		b.WriteString(axisStyle.Render("└" + strings.Repeat("─", a.width)))
		b.WriteString("\n")
	}
	if a.xvisible && a.xtickPos != PosNone {
		b.WriteString(strings.Repeat(" ", len(gutter)+1))
		b.WriteString(axisStyle.Render(a.xTickRow()))
		b.WriteString("\n")
	}
	if a.xlabel != "" && a.xvisible {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Muted).
			Width(a.width + len(gutter)).Align(lipgloss.Center).Render(a.xlabel))
		b.WriteString("\n")
	}

	body := b.String()
	if a.legend != nil && a.legend.Visible {
		body = a.composeLegend(body, textStyle)
	}
	return body
}

// leftGutter reserves space for y tick labels.
func (a *Axes) leftGutter() string {
	if !a.yvisible || a.ytickPos == PosNone {
		return ""
	}
	return strings.Repeat(" ", 8)
}

func (a *Axes) gutterLabel(row int, ticks FixedTicks, width int) string {
	if width == 0 {
		return ""
	}
	// Label the top and bottom rows with the y limits; intermediate ticks
	// would collide at braille resolution.
	var v float64
	switch row {
	case 0:
		if a.invertY {
			v = a.ylim[0]
		} else {
			v = a.ylim[1]
		}
	case a.height - 1:
		if a.invertY {
			v = a.ylim[1]
		} else {
			v = a.ylim[0]
		}
	default:
		return strings.Repeat(" ", width)
	}
	s := formatTick(v)
	if len(s) > width {
		s = s[:width]
	}
	return fmt.Sprintf("%*s", width, s)
}

func (a *Axes) xTickRow() string {
	ticks := a.resolveTicks(a.xlim, a.xscale, a.xticker, a.xfixed)
	if len(ticks.Positions) == 0 {
		return ""
	}
	// Rotated labels crowd terminal cells, so thin them out.
	step := 1
	if a.xrot != 0 && len(ticks.Positions) > 3 {
		step = 2
	}
	row := make([]byte, a.width)
	for i := range row {
		row[i] = ' '
	}
	out := string(row)
	for i := 0; i < len(ticks.Positions); i += step {
		t, ok := a.normalize(ticks.Positions[i], a.xlim, a.xscale)
		if !ok {
			continue
		}
		if a.invertX {
			t = 1 - t
		}
		col := int(t * float64(a.width-1))
		label := ticks.Label(i)
		if col+len(label) > a.width {
			col = a.width - len(label)
		}
		if col < 0 {
			col = 0
		}
		out = out[:col] + label + out[col+len(label):]
		if len(out) > a.width {
			out = out[:a.width]
		}
	}
	return out
}

func (a *Axes) resolveTicks(lim [2]float64, scale string, loc Locator, fixed *FixedTicks) FixedTicks {
	if fixed != nil {
		return *fixed
	}
	if loc == nil {
		loc = MaxNLocator{N: 5}
	}
	pos := loc.Ticks(lim[0], lim[1])
	return FixedTicks{Positions: pos}
}

func (a *Axes) composeLegend(body string, textStyle lipgloss.Style) string {
	leg := a.legend
	var lines []string
	if leg.Title != "" {
		lines = append(lines, textStyle.Bold(true).Render(leg.Title))
	}
	cols := leg.Spec.Cols
	if cols <= 0 {
		cols = 1
	}
	var row []string
	for _, e := range leg.Entries {
		swatch := "─"
		if c, ok := e.Handle.(interface{ Color() string }); ok && c.Color() != "" {
			swatch = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color())).Render("─")
		}
		row = append(row, swatch+" "+textStyle.Render(e.Label))
		if len(row) == cols {
			lines = append(lines, strings.Join(row, "   "))
			row = nil
		}
	}
	if len(row) > 0 {
		lines = append(lines, strings.Join(row, "   "))
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.CurrentTheme.Axis).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))

	switch leg.Position {
	case PosLeft:
		return lipgloss.JoinHorizontal(lipgloss.Top, box, body)
	case PosRight:
		return lipgloss.JoinHorizontal(lipgloss.Top, body, box)
	case PosTop:
		return lipgloss.JoinVertical(lipgloss.Left, box, body)
	case PosBottom:
		return lipgloss.JoinVertical(lipgloss.Left, body, box)
	default:
		return lipgloss.JoinHorizontal(lipgloss.Top, body, box)
	}
}
