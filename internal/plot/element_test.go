package plot

import (
	"errors"
	"fmt"
	"testing"

	"github.com/san-kum/layerplot/internal/backend"
	"github.com/san-kum/layerplot/internal/data"
)

func TestRenderLifecycle(t *testing.T) {
	r := newTestRenderer(t, timeSeq(3), nil)

	if err := r.Update(data.KeyOf(0.0), nil); !errors.Is(err, ErrNotRendered) {
		t.Errorf("update before render: expected ErrNotRendered, got %v", err)
	}

	fig, err := r.Render(nil)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if fig == nil {
		t.Fatal("expected a figure")
	}

	if _, err := r.Render(nil); !errors.Is(err, ErrAlreadyRendered) {
		t.Errorf("second render: expected ErrAlreadyRendered, got %v", err)
	}
	if err := r.Update(data.KeyOf(1.0), nil); err != nil {
		t.Errorf("update after render failed: %v", err)
	}
}

func TestUpdateMissingFrameHidesArtists(t *testing.T) {
	r := newTestRenderer(t, timeSeq(3), nil)
	if _, err := r.Render(nil); err != nil {
		t.Fatal(err)
	}
	if err := r.Update(data.KeyOf(42.0), nil); err != nil {
		t.Fatalf("missing frame should not error: %v", err)
	}
	for _, a := range r.Handles().Artists {
		if a.Visible() {
			t.Error("artists should hide when the key has no frame")
		}
	}

	if err := r.Update(data.KeyOf(1.0), nil); err != nil {
		t.Fatal(err)
	}
	for _, a := range r.Handles().Artists {
		if !a.Visible() {
			t.Error("artists should show again when the key resolves")
		}
	}
}

func TestRenderSetsLimitsFromData(t *testing.T) {
	seq := data.Wrap(data.NewCurve([]float64{2, 8}, []float64{-3, 3}))
	r := newTestRenderer(t, seq, nil)
	if _, err := r.Render(nil); err != nil {
		t.Fatal(err)
	}

	lo, hi := r.Handles().Axes.XLim()
	if lo != 2 || hi != 8 {
		t.Errorf("expected x limits (2,8), got (%v,%v)", lo, hi)
	}
	lo, hi = r.Handles().Axes.YLim()
	if lo != -3 || hi != 3 {
		t.Errorf("expected y limits (-3,3), got (%v,%v)", lo, hi)
	}
}

func TestSquareAspect(t *testing.T) {
	// data ratio dy/dx = 0.5, square aspect inverts it
	seq := data.Wrap(data.NewCurve([]float64{0, 4}, []float64{0, 2}))
	r := newTestRenderer(t, seq, map[string]any{"aspect": "square"})
	if _, err := r.Render(nil); err != nil {
		t.Fatal(err)
	}

	aspect, name := r.Handles().Axes.Aspect()
	if name != "" || aspect != 2.0 {
		t.Errorf("expected numeric aspect 2.0, got %v %q", aspect, name)
	}
}

func TestNumericAspect(t *testing.T) {
	seq := data.Wrap(data.NewCurve([]float64{0, 4}, []float64{0, 2}))
	r := newTestRenderer(t, seq, map[string]any{"aspect": 4})
	if _, err := r.Render(nil); err != nil {
		t.Fatal(err)
	}

	aspect, _ := r.Handles().Axes.Aspect()
	if aspect != 0.5 {
		t.Errorf("expected square aspect divided by 4 = 0.5, got %v", aspect)
	}
}

func TestAspectSkippedUnderLog(t *testing.T) {
	seq := data.Wrap(data.NewCurve([]float64{1, 10}, []float64{1, 100}))
	r := newTestRenderer(t, seq, map[string]any{"logy": true})
	if _, err := r.Render(nil); err != nil {
		t.Fatal(err)
	}

	aspect, name := r.Handles().Axes.Aspect()
	if aspect != 0 || name != "" {
		t.Errorf("aspect should stay untouched under log axes, got %v %q", aspect, name)
	}
	if r.Handles().Axes.YScale() != "log" {
		t.Error("expected log y scale")
	}
}

func TestLogXTakesPrecedenceOverLogY(t *testing.T) {
	seq := data.Wrap(data.NewCurve([]float64{1, 10}, []float64{1, 100}))
	r := newTestRenderer(t, seq, map[string]any{"logx": true, "logy": true})
	if _, err := r.Render(nil); err != nil {
		t.Fatal(err)
	}

	ax := r.Handles().Axes
	if ax.XScale() != "log" {
		t.Error("expected log x scale")
	}
	if ax.YScale() == "log" {
		t.Error("logx wins when both flags are set")
	}
}

func TestInvertedAxesStableAcrossUpdates(t *testing.T) {
	r := newTestRenderer(t, timeSeq(3), map[string]any{
		"invert_xaxis": true,
		"invert_yaxis": true,
	})
	fig, err := r.Render(nil)
	if err != nil {
		t.Fatal(err)
	}

	ax := r.Handles().Axes
	key := data.KeyOf(1.0)
	if err := r.Update(key, nil); err != nil {
		t.Fatal(err)
	}
	first := fig.Render()
	if !ax.XInverted() || !ax.YInverted() {
		t.Fatal("expected both axes inverted after update")
	}

	if err := r.Update(key, nil); err != nil {
		t.Fatal(err)
	}
	if !ax.XInverted() || !ax.YInverted() {
		t.Error("repeated updates must keep axes inverted")
	}
	if second := fig.Render(); second != first {
		t.Error("updating to the same key twice changed the rendered output")
	}
}

func TestAxisOffDisablesSpines(t *testing.T) {
	r := newTestRenderer(t, timeSeq(2), map[string]any{"xaxis": "off", "yaxis": "off"})
	if _, err := r.Render(nil); err != nil {
		t.Fatal(err)
	}

	ax := r.Handles().Axes
	for _, pos := range []string{backend.PosTop, backend.PosBottom, backend.PosLeft, backend.PosRight} {
		if ax.Spine(pos) {
			t.Errorf("spine %s should be disabled", pos)
		}
	}
	if ax.XVisible() || ax.YVisible() {
		t.Error("axes should be hidden")
	}
}

func TestHiddenLabels(t *testing.T) {
	r := newTestRenderer(t, timeSeq(2), map[string]any{"hidden_labels": []string{"x"}})
	if _, err := r.Render(nil); err != nil {
		t.Fatal(err)
	}

	ax := r.Handles().Axes
	if ax.XLabel() != "" {
		t.Errorf("x label should be suppressed, got %q", ax.XLabel())
	}
	if ax.XTickPosition() != backend.PosNone {
		t.Error("x tick marks should be suppressed")
	}
	if ax.YLabel() == "" {
		t.Error("y label should survive")
	}
}

func TestTickerPrecedence(t *testing.T) {
	loc := backend.FixedTicks{Positions: []float64{1, 2}}
	r := newTestRenderer(t, timeSeq(2), map[string]any{
		"xticker": backend.Locator(loc), "logx": true,
	})
	if _, err := r.Render(nil); err != nil {
		t.Fatal(err)
	}
	if _, ok := r.Handles().Axes.XLocator().(backend.FixedTicks); !ok {
		t.Error("explicit ticker must beat the log locator")
	}
}

func TestLogLocatorDefault(t *testing.T) {
	r := newTestRenderer(t, timeSeq(2), map[string]any{"logy": true})
	if _, err := r.Render(nil); err != nil {
		t.Fatal(err)
	}
	if _, ok := r.Handles().Axes.YLocator().(backend.LogLocator); !ok {
		t.Error("log axis should get a log locator")
	}
}

func TestHooksIsolated(t *testing.T) {
	seq := timeSeq(2)
	r, err := NewElementRenderer(seq, curveDrawer{}, Config{
		Options: Defaults(),
		Uniform: true,
		Hooks: []Hook{
			func(*ElementRenderer, data.Element) error { return fmt.Errorf("boom") },
			func(*ElementRenderer, data.Element) error { panic("worse") },
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	var ran bool
	r.AddHook(func(*ElementRenderer, data.Element) error { ran = true; return nil })

	if _, err := r.Render(nil); err != nil {
		t.Fatalf("hook failures must not abort the render: %v", err)
	}
	if !ran {
		t.Error("later hooks must still run after a failing one")
	}
}

func TestProjectionDetected(t *testing.T) {
	seq := data.Wrap(data.NewPath3D([]float64{0, 1}, []float64{0, 1}, []float64{0, 1}))
	r := newTestRenderer(t, seq, nil)
	if !r.Options().Projection3D {
		t.Error("3D element should enable the 3D projection")
	}
}

func TestPerFrameOptionError(t *testing.T) {
	r := newTestRenderer(t, timeSeq(3), nil)
	if _, err := r.Render(nil); err != nil {
		t.Fatal(err)
	}
	er := r.(*ElementRenderer)
	er.store.SetPlot("Curve", map[string]any{"no_such_option": true})

	err := er.Update(data.KeyOf(1.0), nil)
	if !errors.Is(err, ErrBadOption) {
		t.Errorf("expected ErrBadOption from per-frame options, got %v", err)
	}
}
