package pore

import (
	"fmt"
	"math/rand"

	"bitbucket.org/mrrlab/squiggle/kmer"
)

// Table maps every k-mer index in [0, 4^k) to its noiseless current
// level. It is built once per pore configuration and read-only
// afterwards.
type Table struct {
	K      int
	Levels []float64
}

// NewTable builds a current-level table for k-mers of length k using
// the named assignment policy. The policy set is closed: even_space,
// random and resistor_model. The random policy consumes one uniform
// draw per k-mer, in index order.
func NewTable(name string, k int, rng *rand.Rand) (*Table, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k-mer length must be positive, got %v", k)
	}
	n := kmer.N(k)
	t := &Table{K: k, Levels: make([]float64, n)}
	switch name {
	case "even_space":
		for i := 0; i < n; i++ {
			t.Levels[i] = float64(i) / float64(n)
		}
	case "random":
		for i := 0; i < n; i++ {
			t.Levels[i] = rng.Float64()
		}
	case "resistor_model":
		for i := 0; i < n; i++ {
			t.Levels[i] = resistorLevel(i, k)
		}
	default:
		return nil, fmt.Errorf("unknown current-level policy: %s", name)
	}
	return t, nil
}

// resistorLevel treats the base-4 digits of a k-mer index as k unit
// conductances and averages them. Distinct k-mers with the same digit
// sum share a level; that is a property of the simulated physics, not
// a collision bug.
func resistorLevel(m, k int) float64 {
	acc := 0.0
	for i := 0; i < k; i++ {
		acc += float64(m&3) / 3.0
		m >>= 2
	}
	return acc / float64(k)
}

// Level returns the current level for a k-mer index.
func (t *Table) Level(idx int) float64 {
	return t.Levels[idx]
}

// Distinct returns true if no two k-mers share a level. The perfect
// reconstruction property only holds for distinct tables.
func (t *Table) Distinct() bool {
	seen := make(map[float64]bool, len(t.Levels))
	for _, l := range t.Levels {
		if seen[l] {
			return false
		}
		seen[l] = true
	}
	return true
}

// Map returns the table as a k-mer string to level mapping, the shape
// used for persistence.
func (t *Table) Map() map[string]float64 {
	m := make(map[string]float64, len(t.Levels))
	for i, l := range t.Levels {
		m[kmer.String(i, t.K)] = l
	}
	return m
}

// TableFromMap rebuilds a table from a k-mer string to level mapping.
// Key order does not matter: the index is recovered from the string.
func TableFromMap(m map[string]float64) (*Table, error) {
	if len(m) == 0 {
		return nil, fmt.Errorf("empty level table")
	}
	var k int
	for s := range m {
		k = len(s)
		break
	}
	n := kmer.N(k)
	if len(m) != n {
		return nil, fmt.Errorf("level table has %v entries, want %v for k=%v", len(m), n, k)
	}
	t := &Table{K: k, Levels: make([]float64, n)}
	for s, l := range m {
		if len(s) != k {
			return nil, fmt.Errorf("mixed k-mer lengths in level table: %q", s)
		}
		idx, err := kmer.Index(s)
		if err != nil {
			return nil, err
		}
		t.Levels[idx] = l
	}
	return t, nil
}
