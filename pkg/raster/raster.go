// Package raster holds the per-neuron spike raster: the append-only
// record of every spike observed per neuron, plus the pair-generation
// walk that turns a neuron's spike list into its spike-pair set.
package raster

import (
	"fmt"

	"github.com/gnatfinder/gnatfinder/pkg/core"
	"github.com/gnatfinder/gnatfinder/pkg/spike"
)

// Raster is a fixed-population mapping neuron_id -> ordered sequence of
// spikes, plus aggregate bookkeeping (t_min, t_max, n_spikes).
type Raster struct {
	NCells  uint32
	spikes  [][]spike.Spike
	tMin    []int64
	tMax    []int64
	hasAny  []bool
	nSpikes int64
}

// New allocates a Raster for a fixed population of nCells neurons.
func New(nCells uint32) *Raster {
	return &Raster{
		NCells: nCells,
		spikes: make([][]spike.Spike, nCells),
		tMin:   make([]int64, nCells),
		tMax:   make([]int64, nCells),
		hasAny: make([]bool, nCells),
	}
}

// Append records a spike, updating per-neuron and global aggregate state.
// Input is expected to already be time-sorted; Append preserves whatever
// order it's called in — it does not sort.
func (r *Raster) Append(s spike.Spike) error {
	if s.NeuronID >= r.NCells {
		return fmt.Errorf("neuron %d: %w", s.NeuronID, core.ErrNeuronOutOfBounds)
	}
	r.spikes[s.NeuronID] = append(r.spikes[s.NeuronID], s)
	if !r.hasAny[s.NeuronID] {
		r.tMin[s.NeuronID] = s.Ts
		r.tMax[s.NeuronID] = s.Ts
		r.hasAny[s.NeuronID] = true
	} else {
		if s.Ts < r.tMin[s.NeuronID] {
			r.tMin[s.NeuronID] = s.Ts
		}
		if s.Ts > r.tMax[s.NeuronID] {
			r.tMax[s.NeuronID] = s.Ts
		}
	}
	r.nSpikes++
	return nil
}

// Finalize is a no-op retained for symmetry with the reference design's
// append-then-reverse dance: this implementation appends directly to a
// growable tail slice, so the sequence is already in file (non-decreasing
// ts, per input contract) order with no reversal needed.
func (r *Raster) Finalize() {}

// Spikes returns the read-only spike sequence for a neuron, in file order.
func (r *Raster) Spikes(neuron uint32) []spike.Spike {
	if neuron >= r.NCells {
		return nil
	}
	return r.spikes[neuron]
}

// TMin returns the minimum recorded timestamp for a neuron. Returns 0 if
// the neuron never spiked.
func (r *Raster) TMin(neuron uint32) int64 {
	if neuron >= r.NCells {
		return 0
	}
	return r.tMin[neuron]
}

// TMax returns the maximum recorded timestamp for a neuron. Returns 0 if
// the neuron never spiked.
func (r *Raster) TMax(neuron uint32) int64 {
	if neuron >= r.NCells {
		return 0
	}
	return r.tMax[neuron]
}

// NSpikes returns the total number of spikes appended across all neurons.
func (r *Raster) NSpikes() int64 { return r.nSpikes }

// Pairs generates every ordered spike-pair (s_a, s_b) for a neuron: both
// cursors range over the full spike list, every (i, j) with i != j forms
// a pair, and pairs where the two spikes compare equal (spike_equals) are
// skipped. This deliberately includes both (spikes[i], spikes[j]) and
// (spikes[j], spikes[i]) as distinct pairs: pair generation does not
// enforce sp1.ts < sp2.ts, so 3 spikes per neuron yield 6 ordered pairs,
// not C(3,2)=3.
func (r *Raster) Pairs(neuron uint32) []spike.Pair {
	spikes := r.Spikes(neuron)
	if len(spikes) < 2 {
		return nil
	}

	pairs := make([]spike.Pair, 0, len(spikes)*(len(spikes)-1))
	for i := 0; i < len(spikes); i++ {
		for j := 0; j < len(spikes); j++ {
			if i == j {
				continue
			}
			a, b := spikes[i], spikes[j]
			if a.Equal(b) {
				continue
			}
			p, err := spike.NewPair(a, b)
			if err != nil {
				// a.NeuronID == b.NeuronID always holds here and a.Equal(b)
				// was already excluded, so this cannot happen; skip
				// defensively rather than panic on a raster in an
				// inconsistent state.
				continue
			}
			pairs = append(pairs, p)
		}
	}
	return pairs
}
