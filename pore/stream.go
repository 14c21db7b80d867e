package pore

import (
	"bitbucket.org/mrrlab/squiggle/seqgen"
)

// Draw is one item of a simulation stream: a source sequence, its
// simulated squiggle and the ground-truth alignment.
type Draw struct {
	Sequence  string
	Signal    []float64
	Alignment []int
}

// Stream is an infinite pull-based source of simulated reads.
// Consumers call Next for one read at a time; there is no
// backpressure and no cancellation, production is CPU-bound and
// synchronous. A stream is restartable only via a freshly seeded
// source and simulator.
type Stream struct {
	sim *Simulator
	src *seqgen.Source
}

// NewStream couples a sequence source to a simulator. The source's
// minimum length is raised to k so the simulator never sees a
// sequence without a window.
func NewStream(sim *Simulator, src *seqgen.Source) *Stream {
	if src.MinLength < sim.K() {
		src.MinLength = sim.K()
	}
	return &Stream{sim: sim, src: src}
}

// Next pulls the next simulated read. Sequences the simulator still
// refuses (a length-distribution clamp below k, for instance) are
// skipped and resampled, never propagated as an error.
func (st *Stream) Next() Draw {
	for {
		seq := st.src.Next()
		signal, alignment, err := st.sim.GenerateSignal(seq)
		if err != nil {
			log.Debugf("skipping sequence of length %d: %v", len(seq), err)
			continue
		}
		return Draw{Sequence: seq, Signal: signal, Alignment: alignment}
	}
}
