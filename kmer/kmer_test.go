package kmer

import (
	"testing"
)

// Test that index computation and decoding are inverse for every
// k-mer in the product-order enumeration.
func TestRoundTrip(tst *testing.T) {
	for k := 1; k <= 5; k++ {
		for i, s := range All(k) {
			idx, err := Index(s)
			if err != nil {
				tst.Error("error computing index for", s, err)
			}
			if idx != i {
				tst.Errorf("k-mer %v has index %v, enumerated at %v", s, idx, i)
			}
			if String(idx, k) != s {
				tst.Errorf("index %v decodes to %v, want %v", idx, String(idx, k), s)
			}
		}
	}
}

func TestEnumerationOrder(tst *testing.T) {
	want := []string{
		"AA", "AC", "AG", "AT",
		"CA", "CC", "CG", "CT",
		"GA", "GC", "GG", "GT",
		"TA", "TC", "TG", "TT",
	}
	kmers := All(2)
	if len(kmers) != len(want) {
		tst.Fatalf("expected %v 2-mers, got %v", len(want), len(kmers))
	}
	for i := range want {
		if kmers[i] != want[i] {
			tst.Errorf("2-mer %v is %v, want %v", i, kmers[i], want[i])
		}
	}
}

func TestIndexFold(tst *testing.T) {
	// ACGT = 0b00011011
	idx, err := Index("ACGT")
	if err != nil {
		tst.Fatal(err)
	}
	if idx != 0x1b {
		tst.Errorf("Index(ACGT)=%v, want 27", idx)
	}
	// anagrams disagree
	idx2, _ := Index("CAGT")
	if idx == idx2 {
		tst.Error("anagrams should map to different indices")
	}
}

func TestInvalidSymbol(tst *testing.T) {
	if _, err := Index("ACGN"); err == nil {
		tst.Error("expected error for non-ACGT symbol")
	}
	if err := Valid("ACGU"); err == nil {
		tst.Error("expected error for RNA letter")
	}
	if err := Valid("ACGT"); err != nil {
		tst.Error("unexpected error for valid sequence:", err)
	}
}

func TestN(tst *testing.T) {
	for k, want := range map[int]int{1: 4, 2: 16, 3: 64, 5: 1024} {
		if N(k) != want {
			tst.Errorf("N(%v)=%v, want %v", k, N(k), want)
		}
	}
}
