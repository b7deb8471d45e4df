// Package emit implements the bounded, flushing output sink the
// orchestrator streams accepted GNAT graph edges to.
package emit

import (
	"bufio"
	"fmt"
	"os"
	"sync"

	"github.com/gnatfinder/gnatfinder/pkg/spike"
)

// DefaultBufferSize mirrors N_EDGBUF from the original GNATFinder.
const DefaultBufferSize = 8192

// edge is one pending line: "<pre_n_id> <a1.ts> <a2.ts> <post_n_id> <b1.ts> <b2.ts>".
type edge struct {
	preNeuron, postNeuron uint32
	a1, a2, b1, b2        int64
}

// Writer is the capability the orchestrator needs from a sink: accept an
// accepted match and guarantee it is eventually flushed. ConcurrentSink
// and Sink both satisfy it.
type Writer interface {
	Add(pre, post spike.Pair, cdRatio float64) error
	Flush() error
	Close() error
}

// Sink is a fixed-size buffer of pending edges backing a text output file.
// Not safe for concurrent use from multiple goroutines — see ConcurrentSink.
type Sink struct {
	f          *os.File
	w          *bufio.Writer
	bufferSize int
	pending    []edge
}

// Open truncate-creates path and returns an empty Sink with the given
// pending-edge buffer capacity.
func Open(path string, bufferSize int) (*Sink, error) {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("opening edge output %s: %w", path, err)
	}
	return &Sink{
		f:          f,
		w:          bufio.NewWriter(f),
		bufferSize: bufferSize,
		pending:    make([]edge, 0, bufferSize),
	}, nil
}

// Add appends one accepted match. cdRatio is accepted for forward
// compatibility but is not written to the output format; the pipeline
// currently always passes 1.0. If the pending buffer is full, Add flushes
// it first.
func (s *Sink) Add(pre, post spike.Pair, cdRatio float64) error {
	if len(s.pending) >= s.bufferSize {
		if err := s.Flush(); err != nil {
			return err
		}
	}
	s.pending = append(s.pending, edge{
		preNeuron:  pre.NeuronID(),
		postNeuron: post.NeuronID(),
		a1:         pre.A.Ts,
		a2:         pre.B.Ts,
		b1:         post.A.Ts,
		b2:         post.B.Ts,
	})
	return nil
}

// Flush writes all buffered edges in insertion order and resets the
// pending buffer.
func (s *Sink) Flush() error {
	for _, e := range s.pending {
		if _, err := fmt.Fprintf(s.w, "%d %d %d %d %d %d\n", e.preNeuron, e.a1, e.a2, e.postNeuron, e.b1, e.b2); err != nil {
			return fmt.Errorf("writing edge: %w", err)
		}
	}
	s.pending = s.pending[:0]
	return s.w.Flush()
}

// Close flushes any pending edges and closes the underlying file.
func (s *Sink) Close() error {
	if err := s.Flush(); err != nil {
		s.f.Close()
		return err
	}
	return s.f.Close()
}

// ConcurrentSink wraps a Sink behind a mutex so multiple Phase-2 workers
// may share one output file, serialising access to the edge emitter's
// buffer.
type ConcurrentSink struct {
	mu   sync.Mutex
	sink *Sink
}

// NewConcurrentSink wraps sink for safe concurrent use.
func NewConcurrentSink(sink *Sink) *ConcurrentSink {
	return &ConcurrentSink{sink: sink}
}

// Add appends one accepted match under the sink's mutex.
func (c *ConcurrentSink) Add(pre, post spike.Pair, cdRatio float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sink.Add(pre, post, cdRatio)
}

// Flush flushes the underlying sink under its mutex.
func (c *ConcurrentSink) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sink.Flush()
}

// Close closes the underlying sink under its mutex.
func (c *ConcurrentSink) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sink.Close()
}
