// Package pore simulates the current signal ("squiggle") a nanopore
// sequencer produces while reading a DNA strand. A Simulator owns an
// immutable current-level table and pluggable dwell and noise
// policies; GenerateSignal maps one sequence to a sampled signal plus
// a ground-truth alignment.
package pore

import (
	"fmt"
	"math/rand"

	"github.com/op/go-logging"

	"bitbucket.org/mrrlab/squiggle/kmer"
)

var log = logging.MustGetLogger("pore")

// ErrSequenceTooShort is returned by GenerateSignal when the sequence
// has no k-mer window at all. Batch drivers should skip and resample
// rather than treat this as fatal.
var ErrSequenceTooShort = fmt.Errorf("sequence shorter than k, no signal")

// Settings holds the constructor-time configuration of a Simulator.
type Settings struct {
	// K is the k-mer length.
	K int
	// MeanDwell is the mean number of samples per k-mer.
	MeanDwell float64
	// SNR is the signal-to-noise ratio; noise amplitude is 1/SNR.
	SNR float64
	// DwellPolicy is one of fixed, normal, gamma, poisson.
	DwellPolicy string
	// NoisePolicy is one of clean, normal.
	NoisePolicy string
	// LevelPolicy is one of even_space, random, resistor_model.
	LevelPolicy string
}

// DefaultSettings returns the default pore configuration.
func DefaultSettings() Settings {
	return Settings{
		K:           5,
		MeanDwell:   10,
		SNR:         250,
		DwellPolicy: "poisson",
		NoisePolicy: "normal",
		LevelPolicy: "random",
	}
}

// Simulator turns DNA sequences into squiggles.
type Simulator struct {
	k     int
	rng   *rand.Rand
	table *Table
	dwell DwellSampler
	noise NoiseSampler
}

// NewSimulator validates the settings and builds a simulator. Unknown
// policy names and a non-positive k are rejected here, before any
// simulation proceeds. Building a random level table consumes draws
// from rng.
func NewSimulator(s Settings, rng *rand.Rand) (*Simulator, error) {
	if s.K <= 0 {
		return nil, fmt.Errorf("k-mer length must be positive, got %v", s.K)
	}
	table, err := NewTable(s.LevelPolicy, s.K, rng)
	if err != nil {
		return nil, err
	}
	return NewSimulatorWithTable(s, table, rng)
}

// NewSimulatorWithTable builds a simulator around an existing level
// table, e.g. one loaded from a store. The table's k overrides s.K.
func NewSimulatorWithTable(s Settings, table *Table, rng *rand.Rand) (*Simulator, error) {
	dwell, err := NewDwellSampler(s.DwellPolicy, s.MeanDwell)
	if err != nil {
		return nil, err
	}
	if s.SNR <= 0 {
		return nil, fmt.Errorf("signal-to-noise ratio must be positive, got %v", s.SNR)
	}
	noise, err := NewNoiseSampler(s.NoisePolicy, 1/s.SNR)
	if err != nil {
		return nil, err
	}
	return &Simulator{
		k:     table.K,
		rng:   rng,
		table: table,
		dwell: dwell,
		noise: noise,
	}, nil
}

// K returns the simulator's k-mer length.
func (sim *Simulator) K() int {
	return sim.k
}

// Table returns the simulator's current-level table.
func (sim *Simulator) Table() *Table {
	return sim.table
}

// GenerateSignal simulates reading one sequence. It returns the
// sampled signal and the ground-truth alignment: alignment[0] is
// always 0 and alignment[i+1] is the index of the last sample emitted
// while the pore sat at window i, so the alignment has exactly
// len(seq)-k+2 entries and is non-decreasing.
//
// Draw order is fixed: one dwell draw per window position,
// interleaved with level emission, then a single noise vector over
// the assembled signal. Reordering draws changes results under a
// fixed seed.
func (sim *Simulator) GenerateSignal(seq string) ([]float64, []int, error) {
	if len(seq) < sim.k {
		return nil, nil, ErrSequenceTooShort
	}
	if err := kmer.Valid(seq); err != nil {
		return nil, nil, err
	}

	nwin := len(seq) - sim.k + 1
	signal := make([]float64, 0, nwin*2)
	alignment := make([]int, nwin+1)

	for i := 0; i < nwin; i++ {
		idx, err := kmer.Index(seq[i : i+sim.k])
		if err != nil {
			return nil, nil, err
		}
		level := sim.table.Level(idx)
		d := sim.dwell.Dwell(sim.rng)
		for j := 0; j < d; j++ {
			signal = append(signal, level)
		}
		// a zero-dwell first k-mer still yields 0, not -1
		last := len(signal) - 1
		if last < 0 {
			last = 0
		}
		alignment[i+1] = last
	}

	noise := sim.noise.Noise(sim.rng, len(signal))
	for i := range signal {
		signal[i] += noise[i]
	}

	log.Debugf("simulated %d samples for %d windows", len(signal), nwin)
	return signal, alignment, nil
}
