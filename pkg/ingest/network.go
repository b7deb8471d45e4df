package ingest

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gnatfinder/gnatfinder/pkg/core"
	"github.com/gnatfinder/gnatfinder/pkg/netgraph"
)

// LoadNetwork reads a synaptic connectivity file into a freshly-created
// Network of the given population size. Each non-empty line is
// "<src_id> <tgt_id> <rel_w> <delay>".
func LoadNetwork(path string, nCells uint64) (*netgraph.Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening network file %s: %w", path, core.ErrInputOpen)
	}
	defer f.Close()

	n := netgraph.New(nCells)

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 4 {
			return nil, fmt.Errorf("%s:%d: expected 4 fields, got %d: %w", path, lineNo, len(fields), core.ErrParse)
		}

		src, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: malformed src_id %q: %w", path, lineNo, fields[0], core.ErrParse)
		}
		tgt, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: malformed tgt_id %q: %w", path, lineNo, fields[1], core.ErrParse)
		}
		relW, err := strconv.ParseFloat(fields[2], 32)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: malformed rel_w %q: %w", path, lineNo, fields[2], core.ErrParse)
		}
		delay, err := strconv.ParseFloat(fields[3], 32)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: malformed delay %q: %w", path, lineNo, fields[3], core.ErrParse)
		}

		syn, err := netgraph.NewSynapse(src, tgt, float32(relW), float32(delay))
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		if err := n.AddSynapse(syn); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading network file %s: %w", path, err)
	}

	return n, nil
}
