package plot

import (
	"fmt"

	"github.com/san-kum/layerplot/internal/backend"
)

// Axis placement values.
const (
	AxisBottom = "bottom"
	AxisTop    = "top"
	AxisLeft   = "left"
	AxisRight  = "right"
	AxisOff    = "off"
)

// Legend position presets.
const (
	LegendInner  = "inner"
	LegendLeft   = "left"
	LegendRight  = "right"
	LegendTop    = "top"
	LegendBottom = "bottom"
)

// Options is the immutable per-renderer configuration, fully resolved
// before rendering starts. Sparse overrides merge into a defaults struct
// via Apply; nothing mutates options mid-render except the per-frame
// plot-option overrides, which produce a fresh value.
type Options struct {
	ApplyRanges  bool
	ApplyExtents bool
	ApplyTicks   bool

	// Aspect is "square" (default), "auto" or "equal"; empty when a
	// numeric aspect divisor is set instead.
	Aspect      string
	AspectValue float64

	BgColor      string
	HiddenLabels []string
	InvertX      bool
	InvertY      bool
	LogX         bool
	LogY         bool
	LogZ         bool
	Orientation  string
	ShowLegend   bool
	ShowGrid     bool
	ShowTitle    bool
	ShowFrame    bool
	TitleFormat  string

	XAxis string
	YAxis string
	ZAxis bool

	XTicks, YTicks, ZTicks    int
	XTicker, YTicker, ZTicker backend.Locator
	XRotation                 int
	YRotation                 int
	ZRotation                 int

	Projection3D   bool
	StyleGrouping  int
	LegendPosition string

	Width, Height int
}

// Defaults returns the baseline configuration shared by all renderers.
func Defaults() Options {
	return Options{
		ApplyRanges:    true,
		ApplyExtents:   true,
		ApplyTicks:     true,
		Aspect:         "square",
		Orientation:    "horizontal",
		ShowTitle:      true,
		TitleFormat:    "{label} {group}",
		XAxis:          AxisBottom,
		YAxis:          AxisLeft,
		ZAxis:          true,
		XTicks:         5,
		YTicks:         5,
		ZTicks:         5,
		StyleGrouping:  2,
		LegendPosition: LegendInner,
		Width:          60,
		Height:         18,
	}
}

// Apply merges a sparse override mapping into the options, returning the
// resolved copy. Unknown names and malformed values are errors.
func (o Options) Apply(overrides map[string]any) (Options, error) {
	for name, v := range overrides {
		if err := o.set(name, v); err != nil {
			return o, err
		}
	}
	return o, nil
}

// MustApply is Apply for trusted static overrides; it panics on error.
func (o Options) MustApply(overrides map[string]any) Options {
	out, err := o.Apply(overrides)
	if err != nil {
		panic(err)
	}
	return out
}

func (o *Options) set(name string, v any) error {
	switch name {
	case "apply_ranges":
		return setBool(&o.ApplyRanges, name, v)
	case "apply_extents":
		return setBool(&o.ApplyExtents, name, v)
	case "apply_ticks":
		return setBool(&o.ApplyTicks, name, v)
	case "aspect":
		switch a := v.(type) {
		case string:
			if a != "square" && a != "auto" && a != "equal" {
				return fmt.Errorf("%w: aspect %q", ErrBadOption, a)
			}
			o.Aspect, o.AspectValue = a, 0
		case float64:
			if a <= 0 {
				return fmt.Errorf("%w: aspect %v", ErrBadOption, a)
			}
			o.Aspect, o.AspectValue = "", a
		case int:
			if a <= 0 {
				return fmt.Errorf("%w: aspect %v", ErrBadOption, a)
			}
			o.Aspect, o.AspectValue = "", float64(a)
		default:
			return fmt.Errorf("%w: aspect %T", ErrBadOption, v)
		}
	case "bgcolor":
		return setString(&o.BgColor, name, v)
	case "hidden_labels":
		labels, ok := v.([]string)
		if !ok {
			return fmt.Errorf("%w: hidden_labels %T", ErrBadOption, v)
		}
		for _, l := range labels {
			if l != "x" && l != "y" && l != "z" {
				return fmt.Errorf("%w: hidden label %q", ErrBadOption, l)
			}
		}
		o.HiddenLabels = labels
	case "invert_xaxis":
		return setBool(&o.InvertX, name, v)
	case "invert_yaxis":
		return setBool(&o.InvertY, name, v)
	case "logx":
		return setBool(&o.LogX, name, v)
	case "logy":
		return setBool(&o.LogY, name, v)
	case "logz":
		return setBool(&o.LogZ, name, v)
	case "orientation":
		s, ok := v.(string)
		if !ok || (s != "horizontal" && s != "vertical") {
			return fmt.Errorf("%w: orientation %v", ErrBadOption, v)
		}
		o.Orientation = s
	case "show_legend":
		return setBool(&o.ShowLegend, name, v)
	case "show_grid":
		return setBool(&o.ShowGrid, name, v)
	case "show_title":
		return setBool(&o.ShowTitle, name, v)
	case "show_frame":
		return setBool(&o.ShowFrame, name, v)
	case "title_format":
		return setString(&o.TitleFormat, name, v)
	case "xaxis":
		return setChoice(&o.XAxis, name, v, AxisBottom, AxisTop, AxisOff)
	case "yaxis":
		return setChoice(&o.YAxis, name, v, AxisLeft, AxisRight, AxisOff)
	case "zaxis":
		return setBool(&o.ZAxis, name, v)
	case "xticks":
		return setCount(&o.XTicks, name, v)
	case "yticks":
		return setCount(&o.YTicks, name, v)
	case "zticks":
		return setCount(&o.ZTicks, name, v)
	case "xticker":
		return setLocator(&o.XTicker, name, v)
	case "yticker":
		return setLocator(&o.YTicker, name, v)
	case "zticker":
		return setLocator(&o.ZTicker, name, v)
	case "xrotation":
		return setRotation(&o.XRotation, name, v)
	case "yrotation":
		return setRotation(&o.YRotation, name, v)
	case "zrotation":
		return setRotation(&o.ZRotation, name, v)
	case "style_grouping":
		n, ok := toInt(v)
		if !ok || n < 1 || n > 3 {
			return fmt.Errorf("%w: style_grouping %v", ErrBadOption, v)
		}
		o.StyleGrouping = n
	case "legend_position":
		return setChoice(&o.LegendPosition, name, v,
			LegendInner, LegendLeft, LegendRight, LegendTop, LegendBottom)
	case "width":
		return setCount(&o.Width, name, v)
	case "height":
		return setCount(&o.Height, name, v)
	default:
		return fmt.Errorf("%w: unknown option %q", ErrBadOption, name)
	}
	return nil
}

func setBool(dst *bool, name string, v any) error {
	b, ok := v.(bool)
	if !ok {
		return fmt.Errorf("%w: %s %T", ErrBadOption, name, v)
	}
	*dst = b
	return nil
}

func setString(dst *string, name string, v any) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("%w: %s %T", ErrBadOption, name, v)
	}
	*dst = s
	return nil
}

func setChoice(dst *string, name string, v any, choices ...string) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("%w: %s %T", ErrBadOption, name, v)
	}
	for _, c := range choices {
		if s == c {
			*dst = s
			return nil
		}
	}
	return fmt.Errorf("%w: %s %q", ErrBadOption, name, s)
}

func setCount(dst *int, name string, v any) error {
	n, ok := toInt(v)
	if !ok || n < 0 {
		return fmt.Errorf("%w: %s %v", ErrBadOption, name, v)
	}
	*dst = n
	return nil
}

func setRotation(dst *int, name string, v any) error {
	n, ok := toInt(v)
	if !ok || n < 0 || n > 360 {
		return fmt.Errorf("%w: %s %v", ErrBadOption, name, v)
	}
	*dst = n
	return nil
}

func setLocator(dst *backend.Locator, name string, v any) error {
	l, ok := v.(backend.Locator)
	if !ok {
		return fmt.Errorf("%w: %s %T", ErrBadOption, name, v)
	}
	*dst = l
	return nil
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}
