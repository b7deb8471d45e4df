package main

import (
	"fmt"
	"strconv"
)

// positionalArgs holds the six mandatory positional CLI arguments:
// gnatfinder <n_cells> <spike_file> <network_file> <tau> <thresh> <c_radius>.
type positionalArgs struct {
	nCells      uint32
	spikeFile   string
	networkFile string
	tau         float64
	thresh      float64
	cRadius     float64
}

func parsePositionalArgs(args []string) (positionalArgs, error) {
	var p positionalArgs

	nCells, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return p, fmt.Errorf("n_cells must be a non-negative integer, got %q: %w", args[0], err)
	}
	p.nCells = uint32(nCells)
	p.spikeFile = args[1]
	p.networkFile = args[2]

	p.tau, err = strconv.ParseFloat(args[3], 64)
	if err != nil {
		return p, fmt.Errorf("tau must be a float, got %q: %w", args[3], err)
	}
	p.thresh, err = strconv.ParseFloat(args[4], 64)
	if err != nil {
		return p, fmt.Errorf("thresh must be a float, got %q: %w", args[4], err)
	}
	p.cRadius, err = strconv.ParseFloat(args[5], 64)
	if err != nil {
		return p, fmt.Errorf("c_radius must be a float, got %q: %w", args[5], err)
	}

	return p, nil
}
