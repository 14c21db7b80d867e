// Package decode reconstructs a base sequence from a squiggle: it
// segments the signal into events, summarizes each event by its mean
// level and maps means back to k-mers by nearest table level.
package decode

import (
	"fmt"
)

// Segment detects event boundaries in a signal with a sliding-window
// range heuristic. For every window start i it computes
// max-min over signal[i:i+w]; a boundary is emitted at i+w/2 whenever
// the range crosses the threshold t from below. A k-mer transition
// produces a local spike in sample-to-sample variability; the window
// smooths single-sample noise while staying short enough to catch
// short dwell events.
//
// The result is strictly increasing and bracketed by 0 and
// len(signal), so there are always at least two boundaries. The first
// window never emits: the first event starts at sample 0 regardless
// of local signal behavior.
func Segment(signal []float64, w int, t float64) ([]int, error) {
	if w < 2 {
		return nil, fmt.Errorf("window size must be at least 2, got %v", w)
	}

	boundaries := []int{0}

	if len(signal) >= w {
		n := len(signal) - w + 1
		ranges := make([]float64, n)
		for i := 0; i < n; i++ {
			lo, hi := signal[i], signal[i]
			for _, v := range signal[i+1 : i+w] {
				if v < lo {
					lo = v
				}
				if v > hi {
					hi = v
				}
			}
			ranges[i] = hi - lo
		}
		for i := 1; i < n; i++ {
			if ranges[i-1] < t && ranges[i] >= t {
				b := i + w/2
				if b > boundaries[len(boundaries)-1] && b < len(signal) {
					boundaries = append(boundaries, b)
				}
			}
		}
	}

	boundaries = append(boundaries, len(signal))
	return boundaries, nil
}

// Means reduces each event to the arithmetic mean of its samples.
// The sample at each boundary is skipped so a transition sample is
// not counted in two adjacent events; consequently the first event's
// mean excludes sample 0. When skipping would empty a span the skip
// is dropped instead.
//
// Boundaries must come from Segment: malformed boundaries are a
// programming error and panic.
func Means(signal []float64, boundaries []int) []float64 {
	if len(boundaries) < 2 || boundaries[0] != 0 || boundaries[len(boundaries)-1] != len(signal) {
		panic("malformed event boundaries")
	}
	means := make([]float64, len(boundaries)-1)
	for i := 0; i+1 < len(boundaries); i++ {
		start, end := boundaries[i]+1, boundaries[i+1]
		if start >= end {
			start = boundaries[i]
		}
		if start >= end {
			panic("empty event")
		}
		sum := 0.0
		for _, v := range signal[start:end] {
			sum += v
		}
		means[i] = sum / float64(end-start)
	}
	return means
}
