package style

import (
	"testing"

	"github.com/san-kum/layerplot/internal/data"
)

func TestLookupPaths(t *testing.T) {
	cases := []struct {
		name string
		el   data.Element
		want []string
	}{
		{
			"kind only",
			data.NewCurve(nil, nil),
			[]string{"Curve"},
		},
		{
			"group",
			data.NewCurve(nil, nil, data.WithGroup("Signals")),
			[]string{"Curve", "Curve.Signals"},
		},
		{
			"group and label",
			data.NewCurve(nil, nil, data.WithGroup("Signals"), data.WithLabel("Main")),
			[]string{"Curve", "Curve.Signals", "Curve.Signals.Main"},
		},
		{
			"label without group",
			data.NewCurve(nil, nil, data.WithLabel("Main")),
			[]string{"Curve", "Curve.Curve.Main"},
		},
	}
	for _, tc := range cases {
		got := lookupPaths(tc.el)
		if len(got) != len(tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("%s: path %d: expected %s, got %s", tc.name, i, tc.want[i], got[i])
			}
		}
	}
}

func TestPlotOptionsSpecificWins(t *testing.T) {
	s := NewStore()
	s.SetPlot("Curve", map[string]any{"show_grid": true, "logy": true})
	s.SetPlot("Curve.Signals", map[string]any{"logy": false})

	el := data.NewCurve(nil, nil, data.WithGroup("Signals"))
	opts := s.Plot(el)
	if opts["show_grid"] != true {
		t.Error("kind-level option should survive")
	}
	if opts["logy"] != false {
		t.Error("group-level option should override the kind level")
	}
}

func TestStyleCycleOverride(t *testing.T) {
	s := NewStore()
	s.SetStyle("Curve", Spec{
		Options: map[string]any{"width": 2},
		Cycle:   NewCycle([]map[string]any{{"color": "#111111"}}),
	})

	spec := s.Style(data.NewCurve(nil, nil))
	if spec.Options["width"] != 2 {
		t.Error("expected shared option from registered spec")
	}
	if got := spec.At(0)["color"]; got != "#111111" {
		t.Errorf("expected registered cycle color, got %v", got)
	}
}

func TestStyleDefaultCycle(t *testing.T) {
	s := NewStore()
	spec := s.Style(data.NewCurve(nil, nil))
	if spec.Cycle.Len() != 6 {
		t.Errorf("expected 6-color default cycle, got %d", spec.Cycle.Len())
	}
	if spec.At(0)["color"] == spec.At(1)["color"] {
		t.Error("default cycle colors should differ")
	}
}

func TestSpecAtLayering(t *testing.T) {
	spec := Spec{
		Options: map[string]any{"width": 1, "color": "#000000"},
		Cycle:   NewCycle([]map[string]any{{"color": "#ff0000"}}),
	}
	opts := spec.At(0)
	if opts["color"] != "#ff0000" {
		t.Error("cycle entry should override shared options")
	}
	if opts["width"] != 1 {
		t.Error("shared option should survive layering")
	}
}

func TestMaxCyclesWrap(t *testing.T) {
	c := ColorCycle(6).MaxCycles(2)
	if c.Len() != 2 {
		t.Fatalf("expected capped length 2, got %d", c.Len())
	}
	if c.At(0)["color"] != c.At(2)["color"] {
		t.Error("index 2 should wrap to index 0 under a cap of 2")
	}
	if c.At(0)["color"] == c.At(1)["color"] {
		t.Error("capped cycle should still vary within the cap")
	}
}

func TestMaxCyclesBounds(t *testing.T) {
	c := ColorCycle(3)
	if c.MaxCycles(0).Len() != 3 {
		t.Error("non-positive cap should keep the full cycle")
	}
	if c.MaxCycles(10).Len() != 3 {
		t.Error("cap above length should clamp to the length")
	}
}

func TestGradientCycleEndpoints(t *testing.T) {
	c := GradientCycle("#000000", "#ffffff", 3)
	if c.At(0)["color"] != "#000000" {
		t.Errorf("gradient should start at the from color, got %v", c.At(0)["color"])
	}
	if c.At(2)["color"] != "#ffffff" {
		t.Errorf("gradient should end at the to color, got %v", c.At(2)["color"])
	}
}

func TestGradientCycleBadHex(t *testing.T) {
	c := GradientCycle("nope", "#ffffff", 4)
	if c.Len() != 4 {
		t.Errorf("bad hex should fall back to a color cycle of the same size, got %d", c.Len())
	}
}

func TestNormOptions(t *testing.T) {
	s := NewStore()
	s.SetNorm("Curve", map[string]any{"framewise": true})
	if s.Norm(data.NewCurve(nil, nil))["framewise"] != true {
		t.Error("expected registered norm option")
	}
	if len(s.Norm(data.NewPoints(nil, nil))) != 0 {
		t.Error("other kinds should resolve empty")
	}
}

func TestThemes(t *testing.T) {
	names := ThemeNames()
	if len(names) == 0 {
		t.Fatal("expected registered themes")
	}
	prev := CurrentTheme
	defer func() { CurrentTheme = prev }()

	SetTheme(names[0])
	if CurrentTheme.Name != names[0] {
		t.Errorf("expected current theme %s, got %s", names[0], CurrentTheme.Name)
	}
	SetTheme("no-such-theme")
	if CurrentTheme.Name != ThemeMinimal.Name {
		t.Error("unknown theme should fall back to minimal")
	}
}
