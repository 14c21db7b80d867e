package decode

import (
	"math"
	"strings"

	"bitbucket.org/mrrlab/squiggle/kmer"
	"bitbucket.org/mrrlab/squiggle/pore"
)

// Scorer evaluates a decoded sequence against the ground truth. The
// alignment engine itself is an external collaborator; the decoder
// only consumes an edit distance and a normalized accuracy.
type Scorer interface {
	EditDistance(decoded, reference string) int
	Accuracy(decoded, reference string) float64
}

// Decoder maps event means back to k-mers with a nearest-level
// lookup. It is a greedy, context-free classifier per event: no
// transition probabilities and no smoothing across events.
type Decoder struct {
	table *pore.Table
	kmers []string
}

// NewDecoder builds a decoder over a current-level table. The k-mer
// lookup is the alphabet's k-fold product in lexicographic order,
// parallel to the table's levels.
func NewDecoder(table *pore.Table) *Decoder {
	return &Decoder{
		table: table,
		kmers: kmer.All(table.K),
	}
}

// Nearest returns the index of the table level closest to m. Ties go
// to the lowest k-mer index.
func (d *Decoder) Nearest(m float64) int {
	best := 0
	bestDist := math.Abs(d.table.Levels[0] - m)
	for i := 1; i < len(d.table.Levels); i++ {
		dist := math.Abs(d.table.Levels[i] - m)
		if dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}

// Calls maps each event mean to the first symbol of its nearest-level
// k-mer. The concatenation is the decoded sequence, one symbol per
// event. O(events * 4^k).
func (d *Decoder) Calls(means []float64) string {
	var b strings.Builder
	b.Grow(len(means))
	for _, m := range means {
		b.WriteByte(d.kmers[d.Nearest(m)][0])
	}
	return b.String()
}

// Decode runs the full event pipeline on a signal: segmentation with
// window w and threshold t, event means, nearest-level calls.
func (d *Decoder) Decode(signal []float64, w int, t float64) (string, error) {
	boundaries, err := Segment(signal, w, t)
	if err != nil {
		return "", err
	}
	return d.Calls(Means(signal, boundaries)), nil
}
