package scene

import (
	"sort"
	"testing"

	"github.com/san-kum/layerplot/internal/data"
)

func TestNamesSorted(t *testing.T) {
	names := Names()
	if len(names) != len(builders) {
		t.Fatalf("expected %d scenes, got %d", len(builders), len(names))
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("expected sorted names, got %v", names)
	}
}

func TestGet_Unknown(t *testing.T) {
	if _, err := Get("nope"); err == nil {
		t.Error("expected error for unknown scene")
	}
}

func TestBuildersProduceFrames(t *testing.T) {
	kinds := map[string]string{
		"waves":     data.KindCurve,
		"phases":    data.KindNdOverlay,
		"mixed":     data.KindOverlay,
		"lissajous": data.KindPath3D,
		"decay":     data.KindOverlay,
	}
	for name, wantKind := range kinds {
		b, err := Get(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		seq, err := b(10)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if seq.Len() != 10 {
			t.Errorf("%s: expected 10 frames, got %d", name, seq.Len())
		}
		if got := seq.Last().Kind(); got != wantKind {
			t.Errorf("%s: expected kind %s, got %s", name, wantKind, got)
		}
		if !seq.Uniform() {
			t.Errorf("%s: expected a uniform sequence", name)
		}
	}
}

func TestMixedPeaksAreLocalMaxima(t *testing.T) {
	seq, err := Mixed(1)
	if err != nil {
		t.Fatal(err)
	}
	ov := seq.Last().(data.Composite)
	pts := ov.Layers()[1].Element.(*data.Points)
	if len(pts.X) == 0 {
		t.Fatal("expected at least one peak")
	}
	curve := ov.Layers()[0].Element.(*data.Curve)
	lo, hi := curveRange(curve)
	for _, y := range pts.Y {
		if y < lo || y > hi {
			t.Errorf("peak %v outside signal range [%v,%v]", y, lo, hi)
		}
	}
}

func curveRange(c *data.Curve) (float64, float64) {
	lo, hi := c.Y[0], c.Y[0]
	for _, y := range c.Y {
		if y < lo {
			lo = y
		}
		if y > hi {
			hi = y
		}
	}
	return lo, hi
}

func TestDecayStaysPositive(t *testing.T) {
	seq, err := Decay(5)
	if err != nil {
		t.Fatal(err)
	}
	seq.Traverse(func(el data.Element) {
		c, ok := el.(*data.Curve)
		if !ok {
			return
		}
		for _, y := range c.Y {
			if y < 0 {
				t.Fatalf("log-scale scene produced negative value %v", y)
			}
		}
	})
}
