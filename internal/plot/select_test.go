package plot

import (
	"testing"

	"github.com/san-kum/layerplot/internal/data"
)

func timeSeq(n int) *data.FrameSequence {
	seq := data.NewFrameSequence(data.Dim("time"))
	for i := 0; i < n; i++ {
		t := float64(i)
		seq.Add(data.KeyOf(t), data.NewCurve([]float64{0, 1}, []float64{t, t + 1}))
	}
	return seq
}

func TestSelectFrameUniform(t *testing.T) {
	seq := timeSeq(5)
	dims := seq.KeyDimensions()

	el := SelectFrame(seq, data.KeyOf(2.0), dims, true)
	if el == nil {
		t.Fatal("expected a frame")
	}
	if el.(*data.Curve).Y[0] != 2 {
		t.Errorf("expected frame at time 2, got y0=%v", el.(*data.Curve).Y[0])
	}
}

func TestSelectFrameUniformMissingKeyIsNil(t *testing.T) {
	seq := timeSeq(5)
	if el := SelectFrame(seq, data.KeyOf(99.0), seq.KeyDimensions(), true); el != nil {
		t.Error("expected nil for unmatched key")
	}
}

func TestSelectFrameWrappedElementIgnoresKey(t *testing.T) {
	el := data.NewCurve([]float64{0}, []float64{1})
	seq := data.Wrap(el)
	dims := []data.Dimension{data.Dim("time")}

	got := SelectFrame(seq, data.KeyOf(3.7), dims, true)
	if got != data.Element(el) {
		t.Error("wrapped element should resolve for any key")
	}
}

func TestSelectFrameIntegerClamp(t *testing.T) {
	seq := timeSeq(5)

	el := SelectFrame(seq, data.KeyOf(99), nil, false)
	if el == nil {
		t.Fatal("expected clamped frame")
	}
	if el != seq.At(4) {
		t.Error("out-of-range index should clamp to last frame")
	}

	if SelectFrame(seq, data.KeyOf(-3), nil, false) != seq.At(0) {
		t.Error("negative index should clamp to first frame")
	}
}

func TestSelectFrameNonUniformValueKey(t *testing.T) {
	seq := timeSeq(5)
	el := SelectFrame(seq, data.KeyOf(3.0), nil, false)
	if el != seq.At(3) {
		t.Error("composite value key should match by dimension position")
	}
}

func TestSelectFrameIdempotent(t *testing.T) {
	seq := timeSeq(4)
	key := data.KeyOf(1.0)
	a := SelectFrame(seq, key, seq.KeyDimensions(), true)
	b := SelectFrame(seq, key, seq.KeyDimensions(), true)
	if a != b {
		t.Error("same key must resolve to the same frame")
	}
}
