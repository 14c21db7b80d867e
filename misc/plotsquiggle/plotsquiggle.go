// Plotsquiggle simulates a single read and saves the squiggle
// together with the detected event boundaries as a PNG image.
package main

import (
	"flag"
	"fmt"
	"math/rand"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"bitbucket.org/mrrlab/squiggle/decode"
	"bitbucket.org/mrrlab/squiggle/pore"
	"bitbucket.org/mrrlab/squiggle/seqgen"
)

func main() {
	k := flag.Int("k", 5, "k-mer length")
	dwell := flag.Float64("dwell", 10, "mean dwell time")
	snr := flag.Float64("snr", 250, "signal-to-noise ratio")
	length := flag.Int("len", 50, "read length")
	window := flag.Int("window", 4, "segmentation window size")
	threshold := flag.Float64("threshold", 0.05, "segmentation threshold")
	seed := flag.Int64("seed", 1, "random generator seed")
	out := flag.String("out", "squiggle.png", "output file")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	settings := pore.DefaultSettings()
	settings.K = *k
	settings.MeanDwell = *dwell
	settings.SNR = *snr

	sim, err := pore.NewSimulator(settings, rng)
	if err != nil {
		panic(err)
	}
	src := seqgen.NewSource(rng, seqgen.Fixed{N: *length}, *k)
	seq := src.Next()
	signal, _, err := sim.GenerateSignal(seq)
	if err != nil {
		panic(err)
	}
	boundaries, err := decode.Segment(signal, *window, *threshold)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%s: %d samples, %d events\n", seq, len(signal), len(boundaries)-1)

	p := plot.New()
	p.X.Label.Text = "sample"
	p.Y.Label.Text = "current"

	err = plotutil.AddLinePoints(p,
		"signal", signalPoints(signal),
		"boundaries", boundaryPoints(signal, boundaries))
	if err != nil {
		panic(err)
	}

	if err := p.Save(8*vg.Inch, 4*vg.Inch, *out); err != nil {
		panic(err)
	}
}

// signalPoints converts a signal into one plot point per sample.
func signalPoints(signal []float64) plotter.XYs {
	pts := make(plotter.XYs, len(signal))
	for i, v := range signal {
		pts[i].X = float64(i)
		pts[i].Y = v
	}
	return pts
}

// boundaryPoints marks each event boundary at the signal value it
// lands on; the trailing boundary sits past the last sample and is
// drawn at the last sample's value.
func boundaryPoints(signal []float64, boundaries []int) plotter.XYs {
	pts := make(plotter.XYs, len(boundaries))
	for i, b := range boundaries {
		pts[i].X = float64(b)
		if b < len(signal) {
			pts[i].Y = signal[b]
		} else {
			pts[i].Y = signal[len(signal)-1]
		}
	}
	return pts
}
