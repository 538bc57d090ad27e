package config

func boolPtr(b bool) *bool { return &b }

var Presets = map[string]map[string]*Config{
	"waves": {
		"default": {
			Scene: "waves", FPS: 30, Frames: 120,
			Plot: PlotConfig{Width: 60, Height: 18, ShowLegend: true},
		},
		"dense": {
			Scene: "waves", FPS: 60, Frames: 240,
			Plot: PlotConfig{Width: 80, Height: 24, ShowLegend: true, ShowGrid: true},
		},
		"bare": {
			Scene: "waves", FPS: 30, Frames: 120,
			Plot: PlotConfig{
				Width: 60, Height: 18,
				ShowTitle: boolPtr(false), XAxis: "off", YAxis: "off",
			},
		},
	},
	"phases": {
		"default": {
			Scene: "phases", FPS: 30, Frames: 90,
			Plot: PlotConfig{
				Width: 60, Height: 18,
				ShowLegend: true, LegendPosition: "right",
			},
		},
		"inner": {
			Scene: "phases", FPS: 30, Frames: 90,
			Plot: PlotConfig{Width: 70, Height: 20, ShowLegend: true},
		},
	},
	"mixed": {
		"default": {
			Scene: "mixed", FPS: 30, Frames: 120,
			Plot: PlotConfig{Width: 60, Height: 18, ShowLegend: true, Aspect: "auto"},
		},
		"square": {
			Scene: "mixed", FPS: 30, Frames: 120,
			Plot: PlotConfig{Width: 40, Height: 20, ShowLegend: true, Aspect: "square"},
		},
	},
	"lissajous": {
		"default": {
			Scene: "lissajous", FPS: 30, Frames: 200,
			Plot: PlotConfig{Width: 60, Height: 24, ShowTitle: boolPtr(true)},
		},
		"slow": {
			Scene: "lissajous", FPS: 15, Frames: 400,
			Plot: PlotConfig{Width: 60, Height: 24},
		},
	},
	"decay": {
		"default": {
			Scene: "decay", FPS: 30, Frames: 120,
			Plot: PlotConfig{Width: 60, Height: 18, LogY: true, ShowLegend: true},
		},
	},
}

// LoadPreset resolves a scene/variant pair, falling back to the scene's
// "default" variant. The result is a copy; callers may mutate it without
// touching the presets table.
func LoadPreset(scene, variant string) (*Config, bool) {
	variants, ok := Presets[scene]
	if !ok {
		return nil, false
	}
	cfg, ok := variants[variant]
	if !ok {
		cfg, ok = variants["default"]
	}
	if !ok {
		return nil, false
	}
	out := *cfg
	if cfg.Plot.ShowTitle != nil {
		v := *cfg.Plot.ShowTitle
		out.Plot.ShowTitle = &v
	}
	out.Plot.HiddenLabels = append([]string(nil), cfg.Plot.HiddenLabels...)
	return &out, true
}
