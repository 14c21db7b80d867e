package pore

import (
	"fmt"
	"math/rand"
)

// NoiseSampler draws an additive noise vector for an assembled
// signal. Noise is applied once over the whole signal, after
// dwell-based replication, not per k-mer.
type NoiseSampler interface {
	// Noise returns a noise vector of length n.
	Noise(rng *rand.Rand, n int) []float64
}

// cleanNoise is all zeros.
type cleanNoise struct{}

func (cleanNoise) Noise(rng *rand.Rand, n int) []float64 {
	return make([]float64, n)
}

// normalNoise is i.i.d. gaussian with sd = amplitude.
type normalNoise struct {
	amplitude float64
}

func (s normalNoise) Noise(rng *rand.Rand, n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = s.amplitude * rng.NormFloat64()
	}
	return v
}

// NewNoiseSampler returns a noise sampler from its policy name. The
// policy set is closed: clean and normal.
func NewNoiseSampler(name string, amplitude float64) (NoiseSampler, error) {
	switch name {
	case "clean":
		return cleanNoise{}, nil
	case "normal":
		return normalNoise{amplitude: amplitude}, nil
	}
	return nil, fmt.Errorf("unknown noise policy: %s", name)
}
