package pore

import (
	"fmt"
	"math"
	"math/rand"

	"bitbucket.org/mrrlab/squiggle/dist"
)

// DwellSampler draws the number of signal samples one k-mer occupies
// before the pore advances. Draws are independent across positions.
type DwellSampler interface {
	// Dwell returns one non-negative sample count.
	Dwell(rng *rand.Rand) int
}

// fixedDwell always returns the mean, rounded.
type fixedDwell struct {
	n int
}

func (d fixedDwell) Dwell(rng *rand.Rand) int {
	return d.n
}

// normalDwell is gaussian around the mean (sd = sqrt(mean)), rounded
// and floored at zero. Sampled by quantile inversion, so every draw
// consumes exactly one uniform.
type normalDwell struct {
	mean, sd float64
}

func (d normalDwell) Dwell(rng *rand.Rand) int {
	n := int(math.Round(d.mean + d.sd*dist.QuantileNormal(rng.Float64())))
	if n < 0 {
		n = 0
	}
	return n
}

// gammaDwell has shape 2 and scale mean/2. A shape-2 gamma variate is
// the sum of two exponentials, which is exact and avoids the clamped
// tails of the chi2 quantile iteration.
type gammaDwell struct {
	scale float64
}

func (d gammaDwell) Dwell(rng *rand.Rand) int {
	return int(math.Round(d.scale * (rng.ExpFloat64() + rng.ExpFloat64())))
}

// poissonDwell uses Knuth's product method.
type poissonDwell struct {
	limit float64
}

func (d poissonDwell) Dwell(rng *rand.Rand) int {
	n := 0
	p := 1.0
	for {
		p *= rng.Float64()
		if p <= d.limit {
			return n
		}
		n++
	}
}

// NewDwellSampler returns a dwell sampler from its policy name. The
// policy set is closed: fixed, normal, gamma and poisson.
func NewDwellSampler(name string, mean float64) (DwellSampler, error) {
	if mean <= 0 {
		return nil, fmt.Errorf("mean dwell must be positive, got %v", mean)
	}
	switch name {
	case "fixed":
		return fixedDwell{n: int(math.Round(mean))}, nil
	case "normal":
		return normalDwell{mean: mean, sd: math.Sqrt(mean)}, nil
	case "gamma":
		return gammaDwell{scale: mean / 2}, nil
	case "poisson":
		return poissonDwell{limit: math.Exp(-mean)}, nil
	}
	return nil, fmt.Errorf("unknown dwell policy: %s", name)
}
