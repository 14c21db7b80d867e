// Package align scores a decoded sequence against its ground truth.
// It implements unit-cost Levenshtein distance with full traceback;
// the decoder consumes it through a small interface and treats the
// algorithm as opaque.
package align

import (
	"strings"

	"github.com/gonum/matrix/mat64"
)

// Scorer computes edit distances and normalized accuracies.
type Scorer struct{}

// dpTable fills the (len(a)+1) x (len(b)+1) Levenshtein score
// matrix.
func dpTable(a, b string) *mat64.Dense {
	rows, cols := len(a)+1, len(b)+1
	d := mat64.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		d.Set(i, 0, float64(i))
	}
	for j := 0; j < cols; j++ {
		d.Set(0, j, float64(j))
	}
	for i := 1; i < rows; i++ {
		for j := 1; j < cols; j++ {
			sub := d.At(i-1, j-1)
			if a[i-1] != b[j-1] {
				sub++
			}
			del := d.At(i-1, j) + 1
			ins := d.At(i, j-1) + 1
			best := sub
			if del < best {
				best = del
			}
			if ins < best {
				best = ins
			}
			d.Set(i, j, best)
		}
	}
	return d
}

// EditDistance returns the unit-cost Levenshtein distance between two
// sequences.
func (Scorer) EditDistance(decoded, reference string) int {
	d := dpTable(decoded, reference)
	return int(d.At(len(decoded), len(reference)))
}

// Accuracy returns 1 - editDistance/len(reference). It can be
// negative for a decoded sequence much longer than the reference.
func (s Scorer) Accuracy(decoded, reference string) float64 {
	return 1 - float64(s.EditDistance(decoded, reference))/float64(len(reference))
}

// Alignment is a three-row textual alignment for display: the query
// (decoded) on top, a match line ('|' match, '.' substitution, ' '
// indel) and the reference at the bottom.
type Alignment struct {
	Query     string
	Match     string
	Reference string
	Distance  int
}

// String renders an alignment as three lines.
func (a Alignment) String() string {
	return a.Query + "\n" + a.Match + "\n" + a.Reference
}

// Align computes the edit distance together with one optimal
// alignment path, recovered by traceback through the score matrix.
func (Scorer) Align(decoded, reference string) Alignment {
	d := dpTable(decoded, reference)
	var q, m, r strings.Builder
	i, j := len(decoded), len(reference)
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && d.At(i, j) == d.At(i-1, j-1) && decoded[i-1] == reference[j-1]:
			q.WriteByte(decoded[i-1])
			m.WriteByte('|')
			r.WriteByte(reference[j-1])
			i--
			j--
		case i > 0 && j > 0 && d.At(i, j) == d.At(i-1, j-1)+1:
			q.WriteByte(decoded[i-1])
			m.WriteByte('.')
			r.WriteByte(reference[j-1])
			i--
			j--
		case i > 0 && d.At(i, j) == d.At(i-1, j)+1:
			q.WriteByte(decoded[i-1])
			m.WriteByte(' ')
			r.WriteByte('-')
			i--
		default:
			q.WriteByte('-')
			m.WriteByte(' ')
			r.WriteByte(reference[j-1])
			j--
		}
	}
	return Alignment{
		Query:     reverse(q.String()),
		Match:     reverse(m.String()),
		Reference: reverse(r.String()),
		Distance:  int(d.At(len(decoded), len(reference))),
	}
}

func reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}
