// Package kmer provides the nucleotide alphabet and the dense k-mer
// index used throughout the simulator and the decoder.
package kmer

import (
	"fmt"
)

// Alphabet is the ordered nucleotide alphabet. The order is
// load-bearing: it defines both the 2-bit symbol codes and the
// lexicographic enumeration of k-mers.
var Alphabet = [4]byte{'A', 'C', 'G', 'T'}

// rAlphabet is the reverse alphabet (letter to a number).
var rAlphabet = map[byte]byte{'A': 0, 'C': 1, 'G': 2, 'T': 3}

// Code returns the 2-bit code of a nucleotide letter (capital).
func Code(b byte) (byte, error) {
	c, ok := rAlphabet[b]
	if !ok {
		return 0, fmt.Errorf("unknown nucleotide %q", string(b))
	}
	return c, nil
}

// N returns the number of k-mers of length k (4^k).
func N(k int) int {
	return 1 << uint(2*k)
}

// Index computes the dense index of a k-mer string by folding the
// symbol codes left to right: index = (index << 2) | code. Only the
// exact symbol order determines the index; rotations and anagrams map
// to different values.
func Index(s string) (int, error) {
	idx := 0
	for i := 0; i < len(s); i++ {
		c, ok := rAlphabet[s[i]]
		if !ok {
			return 0, fmt.Errorf("unknown nucleotide %q in k-mer %q", string(s[i]), s)
		}
		idx = idx<<2 | int(c)
	}
	return idx, nil
}

// String decodes a k-mer index back into its k-mer string. It is the
// inverse of Index for every value in [0, 4^k).
func String(idx, k int) string {
	b := make([]byte, k)
	for i := k - 1; i >= 0; i-- {
		b[i] = Alphabet[idx&3]
		idx >>= 2
	}
	return string(b)
}

// All enumerates all k-mers of length k in the product order of the
// alphabet (AA.., AC.., ..., TT..), which coincides with index order.
func All(k int) []string {
	n := N(k)
	kmers := make([]string, n)
	for i := 0; i < n; i++ {
		kmers[i] = String(i, k)
	}
	return kmers
}

// Valid returns an error if s contains a symbol outside the alphabet.
func Valid(s string) error {
	for i := 0; i < len(s); i++ {
		if _, ok := rAlphabet[s[i]]; !ok {
			return fmt.Errorf("unknown nucleotide %q at position %d", string(s[i]), i)
		}
	}
	return nil
}
