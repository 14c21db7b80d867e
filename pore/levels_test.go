package pore

import (
	"math"
	"math/rand"
	"testing"

	"bitbucket.org/mrrlab/squiggle/kmer"
)

const smallDiff = 1e-9

func appreq(a, b float64) bool {
	return math.Abs(a-b) <= smallDiff
}

func TestTableSize(tst *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, policy := range []string{"even_space", "random", "resistor_model"} {
		for k := 1; k <= 4; k++ {
			t, err := NewTable(policy, k, rng)
			if err != nil {
				tst.Fatal(err)
			}
			if len(t.Levels) != kmer.N(k) {
				tst.Errorf("%s k=%v: %v levels, want %v", policy, k, len(t.Levels), kmer.N(k))
			}
		}
	}
}

func TestEvenSpace(tst *testing.T) {
	t, err := NewTable("even_space", 2, nil)
	if err != nil {
		tst.Fatal(err)
	}
	for i, l := range t.Levels {
		if !appreq(l, float64(i)/16) {
			tst.Errorf("level %v is %v, want %v", i, l, float64(i)/16)
		}
		if i > 0 && l <= t.Levels[i-1] {
			tst.Error("even_space levels must be strictly increasing")
		}
	}
}

func TestResistorEndpoints(tst *testing.T) {
	for k := 1; k <= 6; k++ {
		t, err := NewTable("resistor_model", k, nil)
		if err != nil {
			tst.Fatal(err)
		}
		if !appreq(t.Levels[0], 0) {
			tst.Errorf("k=%v: all-A level is %v, want 0", k, t.Levels[0])
		}
		if !appreq(t.Levels[kmer.N(k)-1], 1) {
			tst.Errorf("k=%v: all-T level is %v, want 1", k, t.Levels[kmer.N(k)-1])
		}
	}
}

// Distinct k-mers with equal digit sums share a level under the
// resistor model. That is a property of the simulated physics and
// must be preserved.
func TestResistorCollisions(tst *testing.T) {
	t, err := NewTable("resistor_model", 3, nil)
	if err != nil {
		tst.Fatal(err)
	}
	level := func(s string) float64 {
		idx, err := kmer.Index(s)
		if err != nil {
			tst.Fatal(err)
		}
		return t.Levels[idx]
	}
	if !appreq(level("AAC"), level("ACA")) || !appreq(level("ACA"), level("CAA")) {
		tst.Error("permutations with equal digit sums should collide")
	}
	if !appreq(level("AAC"), 1.0/9) {
		tst.Errorf("AAC level is %v, want 1/9", level("AAC"))
	}
	if t.Distinct() {
		tst.Error("resistor table for k=3 should not be distinct")
	}
}

func TestRandomTable(tst *testing.T) {
	rng := rand.New(rand.NewSource(1))
	t, err := NewTable("random", 3, rng)
	if err != nil {
		tst.Fatal(err)
	}
	for i, l := range t.Levels {
		if l < 0 || l >= 1 {
			tst.Errorf("level %v out of [0,1): %v", i, l)
		}
	}
}

func TestUnknownPolicy(tst *testing.T) {
	if _, err := NewTable("lognormal", 3, nil); err == nil {
		tst.Error("expected error for unknown level policy")
	}
	if _, err := NewTable("even_space", 0, nil); err == nil {
		tst.Error("expected error for k=0")
	}
}

func TestTableMapRoundTrip(tst *testing.T) {
	rng := rand.New(rand.NewSource(1))
	t, err := NewTable("random", 3, rng)
	if err != nil {
		tst.Fatal(err)
	}
	t2, err := TableFromMap(t.Map())
	if err != nil {
		tst.Fatal(err)
	}
	if t2.K != t.K {
		tst.Fatal("k mismatch after round trip")
	}
	for i := range t.Levels {
		if t.Levels[i] != t2.Levels[i] {
			tst.Fatalf("level %v mismatch after round trip", i)
		}
	}
}
