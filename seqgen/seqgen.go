// Package seqgen generates random nucleotide sequences. A Source is
// an infinite pull-based stream; consumers call Next for one sequence
// at a time. Reproducibility comes from the injected random
// generator: the stream is restartable only via a fresh seed.
package seqgen

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"bitbucket.org/mrrlab/squiggle/kmer"
)

// LengthDist draws sequence lengths for a Source.
type LengthDist interface {
	// Length returns one length draw. Draws are independent.
	Length(rng *rand.Rand) int
}

// Fixed always returns the same length.
type Fixed struct {
	N int
}

// Length returns the fixed length.
func (d Fixed) Length(rng *rand.Rand) int {
	return d.N
}

// Uniform draws lengths uniformly from [Min, Max].
type Uniform struct {
	Min, Max int
}

// Length returns a uniform length draw.
func (d Uniform) Length(rng *rand.Rand) int {
	return d.Min + rng.Intn(d.Max-d.Min+1)
}

// Normal draws lengths from a rounded gaussian, clamped below at Min.
type Normal struct {
	Mean, SD float64
	Min      int
}

// Length returns a gaussian length draw.
func (d Normal) Length(rng *rand.Rand) int {
	n := int(math.Round(d.Mean + d.SD*rng.NormFloat64()))
	if n < d.Min {
		n = d.Min
	}
	return n
}

// NewLengthDist returns a length distribution from its name. The set
// of distributions is closed: fixed, uniform and normal.
func NewLengthDist(name string, mean float64, min, max int) (LengthDist, error) {
	switch name {
	case "fixed":
		return Fixed{N: int(math.Round(mean))}, nil
	case "uniform":
		if min > max {
			return nil, fmt.Errorf("uniform length distribution: min %v > max %v", min, max)
		}
		return Uniform{Min: min, Max: max}, nil
	case "normal":
		return Normal{Mean: mean, SD: math.Sqrt(mean), Min: min}, nil
	}
	return nil, fmt.Errorf("unknown length distribution: %s", name)
}

// Source produces random sequences.
type Source struct {
	rng    *rand.Rand
	length LengthDist
	// MinLength is the smallest sequence Next will return; shorter
	// draws are resampled rather than propagated.
	MinLength int
}

// NewSource creates a sequence source drawing lengths from the given
// distribution.
func NewSource(rng *rand.Rand, length LengthDist, minLength int) *Source {
	return &Source{
		rng:       rng,
		length:    length,
		MinLength: minLength,
	}
}

// Sequence returns a random sequence of exactly n symbols, each drawn
// uniformly from the alphabet.
func (s *Source) Sequence(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(kmer.Alphabet[s.rng.Intn(len(kmer.Alphabet))])
	}
	return b.String()
}

// Next pulls the next sequence from the infinite stream. Sequences
// shorter than MinLength are skipped and resampled.
func (s *Source) Next() string {
	for {
		n := s.length.Length(s.rng)
		if n < s.MinLength {
			continue
		}
		return s.Sequence(n)
	}
}
