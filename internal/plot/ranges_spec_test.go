package plot

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/layerplot/internal/data"
	"github.com/san-kum/layerplot/internal/style"
)

var _ = Describe("ComputeRanges", func() {
	var seq *data.FrameSequence

	BeforeEach(func() {
		seq = data.NewFrameSequence(data.Dim("time"))
		for i := 0; i < 4; i++ {
			t := float64(i)
			seq.Add(data.KeyOf(t), data.NewCurve([]float64{0, 10}, []float64{t, t * t}))
		}
	})

	It("spans the whole sequence by default", func() {
		ranges := ComputeRanges(nil, seq, data.KeyOf(0.0), nil)
		Expect(ranges).To(HaveKey("y"))
		Expect(ranges["y"][0]).To(Equal(0.0))
		Expect(ranges["y"][1]).To(Equal(9.0))
	})

	It("restricts to one frame under framewise normalization", func() {
		store := style.NewStore()
		store.SetNorm("Curve", map[string]any{"framewise": true})

		ranges := ComputeRanges(store, seq, data.KeyOf(2.0), nil)
		Expect(ranges["y"][0]).To(Equal(2.0))
		Expect(ranges["y"][1]).To(Equal(4.0))
	})

	It("lets explicit overrides win", func() {
		ranges := ComputeRanges(nil, seq, nil, data.Ranges{"y": {-1, 1}})
		Expect(ranges["y"]).To(Equal([2]float64{-1, 1}))
	})

	It("descends into composite frames without double counting", func() {
		comp := data.NewFrameSequence(data.Dim("time"))
		ov := data.NewOverlay([]data.Element{
			data.NewCurve([]float64{0, 1}, []float64{-5, 0}),
			data.NewCurve([]float64{0, 1}, []float64{0, 5}),
		})
		comp.Add(data.KeyOf(0.0), ov)

		ranges := ComputeRanges(nil, comp, data.KeyOf(0.0), nil)
		Expect(ranges["y"]).To(Equal([2]float64{-5, 5}))
	})

	It("yields no ranges for an empty sequence", func() {
		empty := data.NewFrameSequence(data.Dim("time"))
		Expect(ComputeRanges(nil, empty, nil, nil)).To(BeEmpty())
	})

	It("ignores all-NaN series", func() {
		nanSeq := data.NewFrameSequence(data.Dim("time"))
		nanSeq.Add(data.KeyOf(0.0), data.NewCurve(
			[]float64{0, 1}, []float64{math.NaN(), math.NaN()}))

		ranges := ComputeRanges(nil, nanSeq, nil, nil)
		Expect(ranges).NotTo(HaveKey("y"))
	})
})
