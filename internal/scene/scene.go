// Package scene builds the demo frame sequences shipped with the CLI.
package scene

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/layerplot/internal/data"
)

// Builder produces a frame sequence with the given number of frames.
type Builder func(frames int) (*data.FrameSequence, error)

var builders = map[string]Builder{
	"waves":     Waves,
	"phases":    Phases,
	"mixed":     Mixed,
	"lissajous": Lissajous,
	"decay":     Decay,
}

// Get returns the named scene builder.
func Get(name string) (Builder, error) {
	b, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("scene: unknown scene %q", name)
	}
	return b, nil
}

// Names lists the available scenes in sorted order.
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func samples(n int, f func(x float64) float64) ([]float64, []float64) {
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1) * 4 * math.Pi
		xs[i] = x
		ys[i] = f(x)
	}
	return xs, ys
}

// Waves is a traveling sine wave, one curve per frame keyed by time.
func Waves(frames int) (*data.FrameSequence, error) {
	seq := data.NewFrameSequence(data.Dimension{Name: "time", Unit: "s"})
	for i := 0; i < frames; i++ {
		t := float64(i) / 30.0
		x, y := samples(120, func(x float64) float64 { return math.Sin(x - 2*t) })
		el := data.NewCurve(x, y,
			data.WithLabel("Traveling Wave"),
			data.WithDimensions(data.Dimension{Name: "x"}, data.Dimension{Name: "amplitude"}))
		if err := seq.Add(data.KeyOf(t), el); err != nil {
			return nil, err
		}
	}
	return seq, nil
}

// Phases overlays phase-shifted sines in a keyed overlay, one entry per
// phase offset.
func Phases(frames int) (*data.FrameSequence, error) {
	phaseDim := data.Dimension{Name: "phase", Unit: "rad"}
	seq := data.NewFrameSequence(data.Dimension{Name: "time", Unit: "s"})
	offsets := []float64{0, math.Pi / 3, 2 * math.Pi / 3}
	for i := 0; i < frames; i++ {
		t := float64(i) / 30.0
		ov := data.NewNdOverlay([]data.Dimension{phaseDim})
		for _, phase := range offsets {
			p := phase
			x, y := samples(120, func(x float64) float64 { return math.Sin(x + p - 2*t) })
			ov.Add(data.KeyOf(p), data.NewCurve(x, y))
		}
		if err := seq.Add(data.KeyOf(t), ov); err != nil {
			return nil, err
		}
	}
	return seq, nil
}

// Mixed overlays a curve with the scatter of its sample peaks.
func Mixed(frames int) (*data.FrameSequence, error) {
	seq := data.NewFrameSequence(data.Dimension{Name: "time", Unit: "s"})
	for i := 0; i < frames; i++ {
		t := float64(i) / 30.0
		x, y := samples(120, func(x float64) float64 { return math.Sin(x-t) * math.Cos(x/3) })
		var px, py []float64
		for j := 1; j < len(y)-1; j++ {
			if y[j] > y[j-1] && y[j] > y[j+1] {
				px = append(px, x[j])
				py = append(py, y[j])
			}
		}
		ov := data.NewOverlay([]data.Element{
			data.NewCurve(x, y, data.WithLabel("Signal")),
			data.NewPoints(px, py, data.WithLabel("Peaks")),
		})
		if err := seq.Add(data.KeyOf(t), ov); err != nil {
			return nil, err
		}
	}
	return seq, nil
}

// Lissajous traces a rotating three-dimensional Lissajous figure.
func Lissajous(frames int) (*data.FrameSequence, error) {
	seq := data.NewFrameSequence(data.Dimension{Name: "time", Unit: "s"})
	const n = 400
	for i := 0; i < frames; i++ {
		t := float64(i) / 30.0
		x := make([]float64, n)
		y := make([]float64, n)
		z := make([]float64, n)
		for j := 0; j < n; j++ {
			u := float64(j) / float64(n-1) * 2 * math.Pi
			x[j] = math.Sin(3*u + t)
			y[j] = math.Sin(4 * u)
			z[j] = math.Sin(5*u - t)
		}
		el := data.NewPath3D(x, y, z, data.WithLabel("Lissajous"))
		if err := seq.Add(data.KeyOf(t), el); err != nil {
			return nil, err
		}
	}
	return seq, nil
}

// Decay is an exponential envelope pair meant for log-scale axes.
func Decay(frames int) (*data.FrameSequence, error) {
	seq := data.NewFrameSequence(data.Dimension{Name: "time", Unit: "s"})
	for i := 0; i < frames; i++ {
		t := float64(i) / 30.0
		x, fast := samples(120, func(x float64) float64 {
			return math.Exp(-x/2) * (1.1 + math.Sin(x*2-t))
		})
		_, slow := samples(120, func(x float64) float64 {
			return math.Exp(-x/6) * (1.1 + math.Cos(x-t))
		})
		ov := data.NewOverlay([]data.Element{
			data.NewCurve(x, fast, data.WithLabel("Fast Decay")),
			data.NewCurve(x, slow, data.WithLabel("Slow Decay")),
		})
		if err := seq.Add(data.KeyOf(t), ov); err != nil {
			return nil, err
		}
	}
	return seq, nil
}
