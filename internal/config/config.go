package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS    = 30
	DefaultFrames = 120
	DefaultWidth  = 60
	DefaultHeight = 18
)

type Config struct {
	Scene  string     `yaml:"scene"`
	Theme  string     `yaml:"theme"`
	FPS    int        `yaml:"fps"`
	Frames int        `yaml:"frames"`
	Plot   PlotConfig `yaml:"plot"`
}

type PlotConfig struct {
	Width          int      `yaml:"width"`
	Height         int      `yaml:"height"`
	Aspect         string   `yaml:"aspect"`
	ShowLegend     bool     `yaml:"show_legend"`
	LegendPosition string   `yaml:"legend_position"`
	ShowGrid       bool     `yaml:"show_grid"`
	ShowTitle      *bool    `yaml:"show_title"`
	ShowFrame      bool     `yaml:"show_frame"`
	TitleFormat    string   `yaml:"title_format"`
	LogX           bool     `yaml:"logx"`
	LogY           bool     `yaml:"logy"`
	InvertX        bool     `yaml:"invert_xaxis"`
	InvertY        bool     `yaml:"invert_yaxis"`
	XAxis          string   `yaml:"xaxis"`
	YAxis          string   `yaml:"yaxis"`
	XTicks         int      `yaml:"xticks"`
	YTicks         int      `yaml:"yticks"`
	HiddenLabels   []string `yaml:"hidden_labels"`
	BgColor        string   `yaml:"bgcolor"`
}

func DefaultConfig() *Config {
	return &Config{
		Scene:  "waves",
		Theme:  "minimal",
		FPS:    DefaultFPS,
		Frames: DefaultFrames,
		Plot: PlotConfig{
			Width:      DefaultWidth,
			Height:     DefaultHeight,
			ShowLegend: true,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ToOverrides flattens the plot section into the sparse option mapping
// consumed by the renderer. Zero values stay absent so renderer defaults
// apply.
func (c *Config) ToOverrides() map[string]any {
	p := c.Plot
	out := make(map[string]any)
	if p.Width > 0 {
		out["width"] = p.Width
	}
	if p.Height > 0 {
		out["height"] = p.Height
	}
	if p.Aspect != "" {
		out["aspect"] = p.Aspect
	}
	out["show_legend"] = p.ShowLegend
	if p.LegendPosition != "" {
		out["legend_position"] = p.LegendPosition
	}
	if p.ShowGrid {
		out["show_grid"] = true
	}
	if p.ShowTitle != nil {
		out["show_title"] = *p.ShowTitle
	}
	if p.ShowFrame {
		out["show_frame"] = true
	}
	if p.TitleFormat != "" {
		out["title_format"] = p.TitleFormat
	}
	if p.LogX {
		out["logx"] = true
	}
	if p.LogY {
		out["logy"] = true
	}
	if p.InvertX {
		out["invert_xaxis"] = true
	}
	if p.InvertY {
		out["invert_yaxis"] = true
	}
	if p.XAxis != "" {
		out["xaxis"] = p.XAxis
	}
	if p.YAxis != "" {
		out["yaxis"] = p.YAxis
	}
	if p.XTicks > 0 {
		out["xticks"] = p.XTicks
	}
	if p.YTicks > 0 {
		out["yticks"] = p.YTicks
	}
	if len(p.HiddenLabels) > 0 {
		out["hidden_labels"] = p.HiddenLabels
	}
	if p.BgColor != "" {
		out["bgcolor"] = p.BgColor
	}
	return out
}
