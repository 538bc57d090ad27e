package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/layerplot/internal/anim"
	"github.com/san-kum/layerplot/internal/compositor"
	"github.com/san-kum/layerplot/internal/config"
	"github.com/san-kum/layerplot/internal/data"
	"github.com/san-kum/layerplot/internal/plot"
	"github.com/san-kum/layerplot/internal/scene"
	"github.com/san-kum/layerplot/internal/style"
)

var (
	configFile string
	preset     string
	themeName  string
	fps        int
	frames     int
	width      int
	height     int
	frameIdx   int
	logY       bool
	legendPos  string
)

func init() {
	compositor.Register(compositor.Operation{
		Name:    "dedup-curves",
		Pattern: data.KindCurve + "*" + data.KindCurve,
		Mode:    compositor.ModeData,
		Fn:      dedupCurves,
	})
}

// dedupCurves drops plain-overlay curve layers that repeat an earlier
// layer's label and sample count. Keyed overlays pass through untouched.
func dedupCurves(comp data.Composite, _ data.Ranges) data.Element {
	if comp.Keyed() {
		return nil
	}
	seen := make(map[string]bool)
	var kept []data.Element
	dropped := false
	for _, l := range comp.Layers() {
		if c, ok := l.Element.(*data.Curve); ok {
			sig := fmt.Sprintf("%s|%s|%d", c.Group(), c.Label(), len(c.Y))
			if seen[sig] {
				dropped = true
				continue
			}
			seen[sig] = true
		}
		kept = append(kept, l.Element)
	}
	if !dropped {
		return nil
	}
	if len(kept) == 1 {
		return kept[0]
	}
	return data.NewOverlay(kept)
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "layerplot",
		Short: "layered terminal plotting with animated frame sequences",
	}

	playCmd := &cobra.Command{
		Use:   "play [scene]",
		Short: "play a scene as a live animation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  playScene,
	}
	playCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	playCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	playCmd.Flags().StringVar(&themeName, "theme", "", "color theme")
	playCmd.Flags().IntVar(&fps, "fps", 0, "frames per second")
	playCmd.Flags().IntVar(&frames, "frames", 0, "number of frames")
	playCmd.Flags().IntVar(&width, "width", 0, "plot width in cells")
	playCmd.Flags().IntVar(&height, "height", 0, "plot height in cells")
	playCmd.Flags().BoolVar(&logY, "logy", false, "log-scale y axis")
	playCmd.Flags().StringVar(&legendPos, "legend", "", "legend position")

	renderCmd := &cobra.Command{
		Use:   "render [scene]",
		Short: "render a single frame to stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE:  renderFrame,
	}
	renderCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	renderCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	renderCmd.Flags().StringVar(&themeName, "theme", "", "color theme")
	renderCmd.Flags().IntVar(&frames, "frames", 0, "number of frames")
	renderCmd.Flags().IntVar(&width, "width", 0, "plot width in cells")
	renderCmd.Flags().IntVar(&height, "height", 0, "plot height in cells")
	renderCmd.Flags().IntVar(&frameIdx, "frame", -1, "frame index, last when negative")
	renderCmd.Flags().BoolVar(&logY, "logy", false, "log-scale y axis")
	renderCmd.Flags().StringVar(&legendPos, "legend", "", "legend position")

	graphCmd := &cobra.Command{
		Use:   "graph [scene]",
		Short: "quick unstyled chart of a scene's y midpoint over time",
		Args:  cobra.MaximumNArgs(1),
		RunE:  graphScene,
	}
	graphCmd.Flags().IntVar(&frames, "frames", 0, "number of frames")

	scenesCmd := &cobra.Command{
		Use:   "scenes",
		Short: "list available scenes and presets",
		RunE:  listScenes,
	}

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "list color themes",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range style.ThemeNames() {
				marker := " "
				if name == style.CurrentTheme.Name {
					marker = "*"
				}
				fmt.Printf("%s %s\n", marker, name)
			}
		},
	}

	rootCmd.AddCommand(playCmd, renderCmd, graphCmd, scenesCmd, themesCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Error("command failed", "err", err)
		os.Exit(1)
	}
}

// resolveConfig merges preset, config file and flags, in that order.
func resolveConfig(args []string) (*config.Config, error) {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	cfg := config.DefaultConfig()
	if name != "" {
		if pc, ok := config.LoadPreset(name, preset); ok {
			cfg = pc
		} else if preset != "" {
			return nil, fmt.Errorf("unknown preset %q for scene %q", preset, name)
		}
		cfg.Scene = name
	}
	if configFile != "" {
		fc, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = fc
		if name != "" {
			cfg.Scene = name
		}
	}

	if themeName != "" {
		cfg.Theme = themeName
	}
	if fps > 0 {
		cfg.FPS = fps
	}
	if frames > 0 {
		cfg.Frames = frames
	}
	if width > 0 {
		cfg.Plot.Width = width
	}
	if height > 0 {
		cfg.Plot.Height = height
	}
	if logY {
		cfg.Plot.LogY = true
	}
	if legendPos != "" {
		cfg.Plot.LegendPosition = legendPos
	}
	if cfg.FPS <= 0 {
		cfg.FPS = config.DefaultFPS
	}
	if cfg.Frames <= 0 {
		cfg.Frames = config.DefaultFrames
	}
	return cfg, nil
}

func buildRenderer(cfg *config.Config) (plot.Renderer, *data.FrameSequence, error) {
	if cfg.Theme != "" {
		style.SetTheme(cfg.Theme)
	}
	build, err := scene.Get(cfg.Scene)
	if err != nil {
		return nil, nil, err
	}
	seq, err := build(cfg.Frames)
	if err != nil {
		return nil, nil, err
	}
	r, err := plot.NewRenderer(seq, style.NewStore(), cfg.ToOverrides())
	if err != nil {
		return nil, nil, err
	}
	return r, seq, nil
}

func playScene(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(args)
	if err != nil {
		return err
	}
	r, _, err := buildRenderer(cfg)
	if err != nil {
		return err
	}
	return anim.Run(r, cfg.Scene, cfg.FPS)
}

func renderFrame(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(args)
	if err != nil {
		return err
	}
	r, seq, err := buildRenderer(cfg)
	if err != nil {
		return err
	}
	fig, err := r.Render(nil)
	if err != nil {
		return err
	}
	if frameIdx >= 0 {
		keys := seq.Keys()
		idx := frameIdx
		if idx >= len(keys) {
			idx = len(keys) - 1
		}
		if err := r.Update(keys[idx], nil); err != nil {
			return err
		}
	}
	fmt.Println(fig.Render())
	return nil
}

func graphScene(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(args)
	if err != nil {
		return err
	}
	build, err := scene.Get(cfg.Scene)
	if err != nil {
		return err
	}
	seq, err := build(cfg.Frames)
	if err != nil {
		return err
	}
	mids := make([]float64, 0, seq.Len())
	for i := 0; i < seq.Len(); i++ {
		lo, hi := seq.At(i).Range(1)
		mids = append(mids, (lo+hi)/2)
	}
	fmt.Println(asciigraph.Plot(mids,
		asciigraph.Height(12), asciigraph.Width(70),
		asciigraph.Caption(cfg.Scene+" y midpoint")))
	return nil
}

func listScenes(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SCENE\tPRESETS")
	for _, name := range scene.Names() {
		var presets []string
		for variant := range config.Presets[name] {
			presets = append(presets, variant)
		}
		sort.Strings(presets)
		fmt.Fprintf(w, "%s\t%s\n", name, strings.Join(presets, ", "))
	}
	return w.Flush()
}
