// Package core holds the types and configuration shared across the
// gnatfinder pipeline: sentinel errors, the CLI/YAML/env configuration
// hierarchy, and startup logging helpers.
package core

import "errors"

// Sentinel errors, one per fatal condition named in the error-kind table.
// Every one of them is terminal: gnatfinder has no retry or recovery path,
// so callers wrap these with fmt.Errorf("...: %w", err) and the CLI prints
// the resulting message to stderr before exiting non-zero.
var (
	// ErrInputOpen is returned when the spike, network, or output file
	// cannot be opened.
	ErrInputOpen = errors.New("cannot open file")

	// ErrParse is returned for a malformed field in a spike or network line.
	ErrParse = errors.New("malformed input line")

	// ErrNeuronOutOfBounds is returned when a spike's or synapse's neuron
	// id is >= the configured population size.
	ErrNeuronOutOfBounds = errors.New("neuron id out of bounds")

	// ErrNonPositiveWeight is returned when a synapse's rel_w is <= 0,
	// which would make -log(rel_w) non-finite.
	ErrNonPositiveWeight = errors.New("synapse relative weight must be > 0")

	// ErrPointDropped names the condition of a spike-pair point falling
	// outside its neuron's root bounding box. The build phase does not
	// return it: quadtree.BuildFromPairs and pipeline.Build report such
	// points as a count.
	ErrPointDropped = errors.New("spike-pair point outside quadtree root boundary")

	// ErrSameTimestamp is returned when constructing a SpikePair from two
	// spikes with identical timestamps.
	ErrSameTimestamp = errors.New("spike pair requires two distinct timestamps")

	// ErrNeuronMismatch is returned when constructing a SpikePair from two
	// spikes belonging to different neurons.
	ErrNeuronMismatch = errors.New("spike pair requires both spikes from the same neuron")
)
