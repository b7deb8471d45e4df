// Package netgraph holds the physical synaptic connectivity: synapses and
// the per-target presynaptic adjacency it's indexed by.
package netgraph

import (
	"fmt"
	"math"

	"github.com/gnatfinder/gnatfinder/pkg/core"
)

// Synapse is a directed connection from Src to Tgt with a relative weight,
// a delay, and the precomputed -ln(RelWeight) the causal kernel needs.
type Synapse struct {
	Src, Tgt        uint64
	RelWeight       float32
	Delay           float32
	NegLogRelWeight float32
}

// NewSynapse constructs a Synapse, precomputing NegLogRelWeight = -ln(RelWeight).
// RelWeight must be strictly positive, detected here rather than silently
// producing a non-finite NegLogRelWeight.
func NewSynapse(src, tgt uint64, relWeight, delay float32) (Synapse, error) {
	if relWeight <= 0 {
		return Synapse{}, fmt.Errorf("synapse %d->%d: %w", src, tgt, core.ErrNonPositiveWeight)
	}
	return Synapse{
		Src:             src,
		Tgt:             tgt,
		RelWeight:       relWeight,
		Delay:           delay,
		NegLogRelWeight: float32(-math.Log(float64(relWeight))),
	}, nil
}

// Network is a fixed-population mapping tgt_id -> incoming synapses.
type Network struct {
	NCells  uint64
	presyns [][]Synapse
}

// New allocates a Network for a fixed population of nCells neurons.
func New(nCells uint64) *Network {
	return &Network{
		NCells:  nCells,
		presyns: make([][]Synapse, nCells),
	}
}

// AddSynapse prepends s to the presynaptic list of s.Tgt.
func (n *Network) AddSynapse(s Synapse) error {
	if s.Tgt >= n.NCells {
		return fmt.Errorf("synapse target %d: %w", s.Tgt, core.ErrNeuronOutOfBounds)
	}
	n.presyns[s.Tgt] = append([]Synapse{s}, n.presyns[s.Tgt]...)
	return nil
}

// Presynaptic returns the incoming synapses of tgt, in
// most-recently-added-first order.
func (n *Network) Presynaptic(tgt uint64) []Synapse {
	if tgt >= n.NCells {
		return nil
	}
	return n.presyns[tgt]
}
