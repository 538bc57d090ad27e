package data

import (
	"errors"
	"math"
	"testing"
)

func curveAt(t float64) *Curve {
	return NewCurve([]float64{0, 1, 2}, []float64{t, t + 1, t + 2})
}

func TestWrapSingleFrame(t *testing.T) {
	el := curveAt(0)
	seq := Wrap(el)

	if seq.Len() != 1 {
		t.Fatalf("expected 1 frame, got %d", seq.Len())
	}
	if seq.KeyDimensions()[0].Name != FrameName {
		t.Errorf("expected %s dimension, got %s", FrameName, seq.KeyDimensions()[0].Name)
	}
	if seq.Last() != Element(el) {
		t.Error("expected wrapped element as last frame")
	}
}

func TestAddKeyArity(t *testing.T) {
	seq := NewFrameSequence(Dim("time"))
	if err := seq.Add(KeyOf(1.0, 2.0), curveAt(0)); !errors.Is(err, ErrKeyArity) {
		t.Errorf("expected ErrKeyArity, got %v", err)
	}
}

func TestAddReplacesExistingKey(t *testing.T) {
	seq := NewFrameSequence(Dim("time"))
	seq.Add(KeyOf(1.0), curveAt(0))
	seq.Add(KeyOf(1.0), curveAt(5))

	if seq.Len() != 1 {
		t.Fatalf("expected 1 frame after replace, got %d", seq.Len())
	}
	el, _ := seq.Get(KeyOf(1.0))
	if el.(*Curve).Y[0] != 5 {
		t.Error("expected replaced frame")
	}
}

func TestSelect(t *testing.T) {
	seq := NewFrameSequence(Dim("time"))
	for i := 0; i < 5; i++ {
		seq.Add(KeyOf(float64(i)), curveAt(float64(i)))
	}

	sub, err := seq.Select(map[string]any{"time": 2.0})
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if sub.Len() != 1 {
		t.Fatalf("expected 1 match, got %d", sub.Len())
	}

	if _, err := seq.Select(map[string]any{"phase": 1.0}); !errors.Is(err, ErrBadSelector) {
		t.Errorf("expected ErrBadSelector for unknown dimension, got %v", err)
	}
	if _, err := seq.Select(map[string]any{"time": 99.0}); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound for missing value, got %v", err)
	}
}

func TestUniform(t *testing.T) {
	seq := NewFrameSequence(Dim("time"))
	seq.Add(KeyOf(0.0), curveAt(0))
	seq.Add(KeyOf(1.0), curveAt(1))
	if !seq.Uniform() {
		t.Error("expected uniform sequence")
	}

	seq.Add(KeyOf(2.0), NewPoints([]float64{0}, []float64{0}))
	if seq.Uniform() {
		t.Error("expected non-uniform sequence after mixing kinds")
	}
}

func TestTraverseDescendsComposites(t *testing.T) {
	ov := NewOverlay([]Element{curveAt(0), NewPoints([]float64{0}, []float64{1})})
	seq := Wrap(ov)

	var kinds []string
	seq.Traverse(func(el Element) { kinds = append(kinds, el.Kind()) })

	want := []string{KindOverlay, KindCurve, KindPoints}
	if len(kinds) != len(want) {
		t.Fatalf("expected %d visits, got %d", len(want), len(kinds))
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("visit %d: expected %s, got %s", i, want[i], kinds[i])
		}
	}
}

func TestSplitLayersKeyed(t *testing.T) {
	phase := Dim("phase")
	seq := NewFrameSequence(Dim("time"))
	for i := 0; i < 3; i++ {
		ov := NewNdOverlay([]Dimension{phase})
		ov.Add(KeyOf(0.0), curveAt(float64(i)))
		ov.Add(KeyOf(1.0), curveAt(float64(i)+10))
		seq.Add(KeyOf(float64(i)), ov)
	}

	splits := seq.SplitLayers()
	if len(splits) != 2 {
		t.Fatalf("expected 2 layer slots, got %d", len(splits))
	}
	for _, s := range splits {
		if s.Key == nil {
			t.Error("keyed overlay split should carry its layer key")
		}
		if s.Seq.Len() != 3 {
			t.Errorf("expected 3 frames per slot, got %d", s.Seq.Len())
		}
	}
}

func TestSplitLayersPlainOrdinals(t *testing.T) {
	seq := NewFrameSequence(Dim("time"))
	for i := 0; i < 2; i++ {
		// two identical identities in one frame must stay distinct slots
		ov := NewOverlay([]Element{curveAt(float64(i)), curveAt(float64(i) + 1)})
		seq.Add(KeyOf(float64(i)), ov)
	}

	splits := seq.SplitLayers()
	if len(splits) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(splits))
	}
	if splits[0].Ordinal != 0 || splits[1].Ordinal != 1 {
		t.Errorf("expected ordinals 0,1, got %d,%d", splits[0].Ordinal, splits[1].Ordinal)
	}
}

func TestSplitLayersUnionAcrossFrames(t *testing.T) {
	phase := Dim("phase")
	seq := NewFrameSequence(Dim("time"))

	a := NewNdOverlay([]Dimension{phase})
	a.Add(KeyOf(0.0), curveAt(0))
	seq.Add(KeyOf(0.0), a)

	b := NewNdOverlay([]Dimension{phase})
	b.Add(KeyOf(0.0), curveAt(1))
	b.Add(KeyOf(1.0), curveAt(2))
	seq.Add(KeyOf(1.0), b)

	splits := seq.SplitLayers()
	if len(splits) != 2 {
		t.Fatalf("expected union of 2 slots, got %d", len(splits))
	}
	if splits[1].Seq.Len() != 1 {
		t.Errorf("late-appearing slot should only hold 1 frame, got %d", splits[1].Seq.Len())
	}
}

func TestMergeExtents(t *testing.T) {
	nan := math.NaN()
	merged := MergeExtents([]Extents{
		{0, -1, 4, 2},
		{-2, nan, 3, 5},
		{nan, nan, nan, nan},
	}, false)

	want := Extents{-2, -1, 4, 5}
	for i := range want {
		if merged[i] != want[i] {
			t.Errorf("component %d: expected %v, got %v", i, want[i], merged[i])
		}
	}
}

func TestMergeExtentsIgnoresInfinite(t *testing.T) {
	inf := math.Inf(1)
	merged := MergeExtents([]Extents{
		{math.Inf(-1), 0, inf, 1},
		{-1, 0, 2, 1},
	}, false)

	if merged[0] != -1 || merged[2] != 2 {
		t.Errorf("infinite components should be skipped, got %v", merged)
	}
}

func TestSeriesRangeSkipsNaN(t *testing.T) {
	c := NewCurve([]float64{0, 1, 2}, []float64{math.NaN(), 3, math.Inf(1)})
	lo, hi := c.Range(1)
	if lo != 3 || hi != 3 {
		t.Errorf("expected range (3,3), got (%v,%v)", lo, hi)
	}
}
