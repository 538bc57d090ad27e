package plot

import (
	"errors"
	"testing"
)

func TestApplyOverrides(t *testing.T) {
	opts, err := Defaults().Apply(map[string]any{
		"logy":            true,
		"xticks":          10,
		"aspect":          2.0,
		"legend_position": "bottom",
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if !opts.LogY || opts.XTicks != 10 || opts.AspectValue != 2.0 {
		t.Errorf("overrides not applied: %+v", opts)
	}
	if opts.Aspect != "" {
		t.Error("numeric aspect should clear the named mode")
	}
	if opts.LegendPosition != LegendBottom {
		t.Errorf("expected bottom legend, got %q", opts.LegendPosition)
	}
}

func TestApplyLeavesReceiverUntouched(t *testing.T) {
	base := Defaults()
	if _, err := base.Apply(map[string]any{"logy": true}); err != nil {
		t.Fatal(err)
	}
	if base.LogY {
		t.Error("apply must not mutate the receiver")
	}
}

func TestApplyRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		in   map[string]any
	}{
		{"unknown option", map[string]any{"no_such": 1}},
		{"wrong type", map[string]any{"logy": "yes"}},
		{"bad axis", map[string]any{"xaxis": "left"}},
		{"bad aspect", map[string]any{"aspect": -1.0}},
		{"bad rotation", map[string]any{"xrotation": 700}},
		{"bad hidden label", map[string]any{"hidden_labels": []string{"w"}}},
		{"bad legend position", map[string]any{"legend_position": "center"}},
	}
	for _, tc := range cases {
		if _, err := Defaults().Apply(tc.in); !errors.Is(err, ErrBadOption) {
			t.Errorf("%s: expected ErrBadOption, got %v", tc.name, err)
		}
	}
}

func TestApplyFractionalIntRejected(t *testing.T) {
	if _, err := Defaults().Apply(map[string]any{"xticks": 2.5}); !errors.Is(err, ErrBadOption) {
		t.Errorf("expected ErrBadOption for fractional count, got %v", err)
	}
	if _, err := Defaults().Apply(map[string]any{"xticks": 3.0}); err != nil {
		t.Errorf("whole float should convert, got %v", err)
	}
}
