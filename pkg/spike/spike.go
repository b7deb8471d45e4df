// Package spike holds the value types for timestamped firing events and
// the ordered spike-pairs derived from them — the points a per-neuron
// quadtree indexes.
package spike

import "github.com/gnatfinder/gnatfinder/pkg/core"

// Spike is a single neuron firing event. Ts is an integer timestamp in an
// implementation-chosen time unit (the CLI reads it hex-encoded).
type Spike struct {
	NeuronID uint32
	Ts       int64
}

// Equal reports whether two spikes are the same firing event: identical
// (NeuronID, Ts). Two spikes with the same pair of fields are considered
// identical even if they were appended separately.
func (s Spike) Equal(o Spike) bool {
	return s.NeuronID == o.NeuronID && s.Ts == o.Ts
}

// Before reports whether s occurred strictly earlier than o.
func (s Spike) Before(o Spike) bool { return s.Ts < o.Ts }

// Pair is an ordered pair of two distinct spikes belonging to the same
// neuron, interpreted as the point (A.Ts, B.Ts) in the 2-D plane.
//
// Pair ordering is the argument order given to NewPair; the pair is never
// renormalized to ts1 < ts2. raster.Raster.Pairs generates both (s_i, s_j)
// and (s_j, s_i) for every two distinct spikes of a neuron, so A may be
// the later spike in file order.
type Pair struct {
	A, B Spike
}

// NewPair validates and constructs a Pair. Both spikes must belong to the
// same neuron and have distinct timestamps.
func NewPair(a, b Spike) (Pair, error) {
	if a.NeuronID != b.NeuronID {
		return Pair{}, core.ErrNeuronMismatch
	}
	if a.Ts == b.Ts {
		return Pair{}, core.ErrSameTimestamp
	}
	return Pair{A: a, B: b}, nil
}

// Point returns the 2-D plane coordinates of the pair: (A.Ts, B.Ts).
func (p Pair) Point() (x, y float64) {
	return float64(p.A.Ts), float64(p.B.Ts)
}

// NeuronID returns the shared neuron id of both spikes in the pair.
func (p Pair) NeuronID() uint32 { return p.A.NeuronID }
