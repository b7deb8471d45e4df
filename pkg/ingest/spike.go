// Package ingest parses the two ASCII line-oriented input files (spike
// train, synaptic network) into a raster.Raster and netgraph.Network.
package ingest

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gnatfinder/gnatfinder/pkg/core"
	"github.com/gnatfinder/gnatfinder/pkg/raster"
	"github.com/gnatfinder/gnatfinder/pkg/spike"
)

// LoadSpikes reads a spike file into a freshly-created raster of the given
// population size. Each non-empty line is "<type> <timestamp:hex> <neuron_id>";
// type is parsed and discarded. Records must be pre-sorted in non-decreasing
// timestamp order; LoadSpikes does not verify this, it trusts the input.
func LoadSpikes(path string, nCells uint32) (*raster.Raster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening spike file %s: %w", path, core.ErrInputOpen)
	}
	defer f.Close()

	r := raster.New(nCells)

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, fmt.Errorf("%s:%d: expected 3 fields, got %d: %w", path, lineNo, len(fields), core.ErrParse)
		}

		// fields[0] is the spike type; parsed for validation, then discarded.
		if _, err := strconv.Atoi(fields[0]); err != nil {
			return nil, fmt.Errorf("%s:%d: malformed type field %q: %w", path, lineNo, fields[0], core.ErrParse)
		}

		ts, err := strconv.ParseInt(fields[1], 16, 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: malformed hex timestamp %q: %w", path, lineNo, fields[1], core.ErrParse)
		}

		neuronID, err := strconv.ParseUint(fields[2], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: malformed neuron id %q: %w", path, lineNo, fields[2], core.ErrParse)
		}

		if err := r.Append(spike.Spike{NeuronID: uint32(neuronID), Ts: ts}); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading spike file %s: %w", path, err)
	}

	r.Finalize()
	return r, nil
}
