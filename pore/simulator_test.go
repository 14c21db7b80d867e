package pore

import (
	"math/rand"
	"testing"

	"bitbucket.org/mrrlab/squiggle/kmer"
	"bitbucket.org/mrrlab/squiggle/seqgen"
)

func cleanFixedSettings(k int, dwell float64) Settings {
	return Settings{
		K:           k,
		MeanDwell:   dwell,
		SNR:         250,
		DwellPolicy: "fixed",
		NoisePolicy: "clean",
		LevelPolicy: "even_space",
	}
}

func TestAlignmentShape(tst *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := DefaultSettings()
	sim, err := NewSimulator(s, rng)
	if err != nil {
		tst.Fatal(err)
	}
	src := seqgen.NewSource(rng, seqgen.Uniform{Min: 5, Max: 80}, 5)
	for i := 0; i < 50; i++ {
		seq := src.Next()
		_, alignment, err := sim.GenerateSignal(seq)
		if err != nil {
			tst.Fatal(err)
		}
		if len(alignment) != len(seq)-s.K+2 {
			tst.Fatalf("alignment length %v for sequence length %v, want %v",
				len(alignment), len(seq), len(seq)-s.K+2)
		}
		if alignment[0] != 0 {
			tst.Fatal("alignment must start at 0")
		}
		for j := 1; j < len(alignment); j++ {
			if alignment[j] < alignment[j-1] {
				tst.Fatal("alignment must be non-decreasing")
			}
		}
	}
}

func TestFixedDwellSignal(tst *testing.T) {
	sim, err := NewSimulator(cleanFixedSettings(5, 3), nil)
	if err != nil {
		tst.Fatal(err)
	}
	// one window only
	signal, alignment, err := sim.GenerateSignal("ACGTA")
	if err != nil {
		tst.Fatal(err)
	}
	if len(signal) != 3 {
		tst.Fatalf("signal has %v samples, want 3", len(signal))
	}
	idx, _ := kmer.Index("ACGTA")
	want := sim.Table().Level(idx)
	for _, v := range signal {
		if v != want {
			tst.Fatalf("sample %v, want table level %v", v, want)
		}
	}
	if len(alignment) != 2 || alignment[0] != 0 || alignment[1] != 2 {
		tst.Fatal("unexpected alignment:", alignment)
	}
}

func TestSequenceTooShort(tst *testing.T) {
	sim, err := NewSimulator(cleanFixedSettings(5, 3), nil)
	if err != nil {
		tst.Fatal(err)
	}
	if _, _, err := sim.GenerateSignal("ACGT"); err != ErrSequenceTooShort {
		tst.Error("expected ErrSequenceTooShort, got", err)
	}
}

func TestInvalidSequence(tst *testing.T) {
	sim, err := NewSimulator(cleanFixedSettings(2, 3), nil)
	if err != nil {
		tst.Fatal(err)
	}
	if _, _, err := sim.GenerateSignal("ACGTN"); err == nil {
		tst.Error("expected error for non-ACGT symbol")
	}
}

func TestInvalidConfiguration(tst *testing.T) {
	rng := rand.New(rand.NewSource(1))
	bad := []Settings{
		{K: 0, MeanDwell: 10, SNR: 250, DwellPolicy: "fixed", NoisePolicy: "clean", LevelPolicy: "even_space"},
		{K: 5, MeanDwell: 10, SNR: 250, DwellPolicy: "weird", NoisePolicy: "clean", LevelPolicy: "even_space"},
		{K: 5, MeanDwell: 10, SNR: 250, DwellPolicy: "fixed", NoisePolicy: "weird", LevelPolicy: "even_space"},
		{K: 5, MeanDwell: 10, SNR: 250, DwellPolicy: "fixed", NoisePolicy: "clean", LevelPolicy: "weird"},
		{K: 5, MeanDwell: 10, SNR: 0, DwellPolicy: "fixed", NoisePolicy: "clean", LevelPolicy: "even_space"},
	}
	for i, s := range bad {
		if _, err := NewSimulator(s, rng); err == nil {
			tst.Errorf("settings %v: expected construction to fail", i)
		}
	}
}

func TestReproducibleDraws(tst *testing.T) {
	s := DefaultSettings()
	simA, err := NewSimulator(s, rand.New(rand.NewSource(7)))
	if err != nil {
		tst.Fatal(err)
	}
	simB, err := NewSimulator(s, rand.New(rand.NewSource(7)))
	if err != nil {
		tst.Fatal(err)
	}
	seq := "ACGTACGTACGTACGTACGT"
	sa, aa, _ := simA.GenerateSignal(seq)
	sb, ab, _ := simB.GenerateSignal(seq)
	if len(sa) != len(sb) {
		tst.Fatal("signal lengths differ under the same seed")
	}
	for i := range sa {
		if sa[i] != sb[i] {
			tst.Fatal("signals differ under the same seed")
		}
	}
	for i := range aa {
		if aa[i] != ab[i] {
			tst.Fatal("alignments differ under the same seed")
		}
	}
}

func TestStream(tst *testing.T) {
	rng := rand.New(rand.NewSource(1))
	sim, err := NewSimulator(DefaultSettings(), rng)
	if err != nil {
		tst.Fatal(err)
	}
	// lengths that frequently fall below k get resampled
	src := seqgen.NewSource(rng, seqgen.Uniform{Min: 1, Max: 30}, 0)
	st := NewStream(sim, src)
	for i := 0; i < 50; i++ {
		d := st.Next()
		if len(d.Sequence) < sim.K() {
			tst.Fatal("stream yielded a sequence shorter than k")
		}
		if len(d.Signal) == 0 {
			tst.Fatal("stream yielded an empty signal")
		}
		if len(d.Alignment) != len(d.Sequence)-sim.K()+2 {
			tst.Fatal("stream yielded a malformed alignment")
		}
	}
}
