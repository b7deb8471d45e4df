package raster

import (
	"errors"
	"testing"

	"github.com/gnatfinder/gnatfinder/pkg/core"
	"github.com/gnatfinder/gnatfinder/pkg/spike"
)

func TestRaster_AppendTracksAggregates(t *testing.T) {
	r := New(2)

	if err := r.Append(spike.Spike{NeuronID: 0, Ts: 10}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Append(spike.Spike{NeuronID: 0, Ts: 20}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Append(spike.Spike{NeuronID: 1, Ts: 5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r.TMin(0) != 10 || r.TMax(0) != 20 {
		t.Errorf("neuron 0: want tMin=10 tMax=20, got tMin=%d tMax=%d", r.TMin(0), r.TMax(0))
	}
	if r.TMin(1) != 5 || r.TMax(1) != 5 {
		t.Errorf("neuron 1: want tMin=tMax=5, got tMin=%d tMax=%d", r.TMin(1), r.TMax(1))
	}
	if r.NSpikes() != 3 {
		t.Errorf("expected 3 total spikes, got %d", r.NSpikes())
	}
}

func TestRaster_AppendOutOfBounds(t *testing.T) {
	r := New(1)
	err := r.Append(spike.Spike{NeuronID: 1, Ts: 0})
	if !errors.Is(err, core.ErrNeuronOutOfBounds) {
		t.Fatalf("expected ErrNeuronOutOfBounds, got %v", err)
	}
}

func TestRaster_PairsBothDirections(t *testing.T) {
	r := New(1)
	for _, ts := range []int64{10, 20, 30} {
		if err := r.Append(spike.Spike{NeuronID: 0, Ts: ts}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	pairs := r.Pairs(0)
	// 3 spikes -> 3*2 = 6 ordered pairs.
	if len(pairs) != 6 {
		t.Fatalf("expected 6 pairs from 3 spikes, got %d", len(pairs))
	}

	seen := make(map[[2]int64]bool)
	for _, p := range pairs {
		if p.A.Equal(p.B) {
			t.Errorf("pair %v has equal spikes, violates invariant 6", p)
		}
		seen[[2]int64{p.A.Ts, p.B.Ts}] = true
	}

	for _, want := range [][2]int64{
		{10, 20}, {20, 10}, {10, 30}, {30, 10}, {20, 30}, {30, 20},
	} {
		if !seen[want] {
			t.Errorf("expected pair %v to be generated", want)
		}
	}
}

func TestRaster_PairsSingleSpikeIsEmpty(t *testing.T) {
	r := New(1)
	r.Append(spike.Spike{NeuronID: 0, Ts: 42})
	if pairs := r.Pairs(0); len(pairs) != 0 {
		t.Fatalf("single-spike neuron should produce no pairs, got %d", len(pairs))
	}
}
