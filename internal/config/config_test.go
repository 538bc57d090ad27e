package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Scene != "waves" {
		t.Errorf("expected scene waves, got %s", cfg.Scene)
	}
	if cfg.FPS <= 0 {
		t.Error("fps should be positive")
	}
	if cfg.Frames <= 0 {
		t.Error("frames should be positive")
	}
	if !cfg.Plot.ShowLegend {
		t.Error("legend should default on")
	}
}

func TestLoadMergesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	raw := "scene: decay\nplot:\n  logy: true\n"
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Scene != "decay" {
		t.Errorf("expected scene decay, got %s", cfg.Scene)
	}
	if !cfg.Plot.LogY {
		t.Error("expected logy from file")
	}
	if cfg.FPS != DefaultFPS {
		t.Errorf("unset fields should keep defaults, got fps %d", cfg.FPS)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	cfg := DefaultConfig()
	cfg.Scene = "lissajous"
	cfg.Plot.Aspect = "square"
	cfg.Plot.HiddenLabels = []string{"x"}

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if back.Scene != "lissajous" || back.Plot.Aspect != "square" {
		t.Errorf("round trip lost fields: %+v", back)
	}
	if len(back.Plot.HiddenLabels) != 1 || back.Plot.HiddenLabels[0] != "x" {
		t.Errorf("round trip lost hidden labels: %v", back.Plot.HiddenLabels)
	}
}

func TestLoadPreset(t *testing.T) {
	cfg, ok := LoadPreset("decay", "default")
	if !ok {
		t.Fatal("expected decay preset")
	}
	if !cfg.Plot.LogY {
		t.Error("decay preset should enable logy")
	}
}

func TestLoadPreset_VariantFallback(t *testing.T) {
	cfg, ok := LoadPreset("waves", "nonexistent")
	if !ok {
		t.Fatal("unknown variant should fall back to default")
	}
	if cfg.Scene != "waves" {
		t.Errorf("expected waves config, got %s", cfg.Scene)
	}
}

func TestLoadPresetReturnsCopy(t *testing.T) {
	cfg, ok := LoadPreset("waves", "bare")
	if !ok {
		t.Fatal("expected waves/bare preset")
	}
	cfg.Scene = "mutated"
	cfg.FPS = 999
	*cfg.Plot.ShowTitle = true

	again, _ := LoadPreset("waves", "bare")
	if again.Scene != "waves" || again.FPS != 30 {
		t.Errorf("preset table was mutated through the returned config: %+v", again)
	}
	if *again.Plot.ShowTitle {
		t.Error("show_title pointer is shared with the presets table")
	}
}

func TestLoadPreset_NotFound(t *testing.T) {
	if _, ok := LoadPreset("nonexistent", "default"); ok {
		t.Error("expected miss for unknown scene")
	}
}

func TestToOverridesSparse(t *testing.T) {
	cfg := DefaultConfig()
	out := cfg.ToOverrides()

	if _, ok := out["logy"]; ok {
		t.Error("zero-valued flags should stay absent")
	}
	if _, ok := out["show_title"]; ok {
		t.Error("unset show_title should stay absent")
	}
	if out["show_legend"] != true {
		t.Error("show_legend is always emitted")
	}
	if out["width"] != DefaultWidth {
		t.Errorf("expected default width, got %v", out["width"])
	}
}

func TestToOverridesShowTitlePointer(t *testing.T) {
	cfg := DefaultConfig()
	off := false
	cfg.Plot.ShowTitle = &off

	if v, ok := cfg.ToOverrides()["show_title"]; !ok || v != false {
		t.Errorf("expected show_title false, got %v", v)
	}
}
