package pipeline

import (
	"context"
	"sync"
)

// neuronPool runs a fixed number of worker goroutines, each pulling
// postsynaptic neuron ids off a shared channel and invoking process on
// them, until the channel is drained or ctx is cancelled. Adapted from
// the channel-plus-WaitGroup worker loop in qubicDB's
// pkg/concurrency.BrainWorker — here there is one short-lived pool per
// run instead of one long-lived worker per user, since Phase 2 is a
// single bounded fan-out rather than a persistent per-tenant queue.
type neuronPool struct {
	jobs     chan uint64
	wg       sync.WaitGroup
	errOnce  sync.Once
	firstErr error
}

// runNeuronPool partitions [0, n) across workers workers, calling process
// for each id. It returns the first error any worker returns, after all
// workers have drained their remaining jobs — no job is skipped on error,
// since the reference design has no partial-progress contract.
func runNeuronPool(ctx context.Context, n uint64, workers int, process func(ctx context.Context, v uint64) error) error {
	if workers < 1 {
		workers = 1
	}

	p := &neuronPool{jobs: make(chan uint64, workers*2)}

	p.wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer p.wg.Done()
			for v := range p.jobs {
				if err := process(ctx, v); err != nil {
					p.errOnce.Do(func() { p.firstErr = err })
				}
			}
		}()
	}

feed:
	for v := uint64(0); v < n; v++ {
		select {
		case p.jobs <- v:
		case <-ctx.Done():
			break feed
		}
	}
	close(p.jobs)
	p.wg.Wait()

	if p.firstErr != nil {
		return p.firstErr
	}
	return ctx.Err()
}
