// Package pipeline implements the orchestrator: Phase 1 builds one
// quadtree per neuron from its spike-pair set; Phase 2 drives the
// nested range-query enumeration that produces the GNAT graph.
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/gnatfinder/gnatfinder/pkg/causal"
	"github.com/gnatfinder/gnatfinder/pkg/core"
	"github.com/gnatfinder/gnatfinder/pkg/emit"
	"github.com/gnatfinder/gnatfinder/pkg/geom"
	"github.com/gnatfinder/gnatfinder/pkg/netgraph"
	"github.com/gnatfinder/gnatfinder/pkg/quadtree"
	"github.com/gnatfinder/gnatfinder/pkg/raster"
	"github.com/gnatfinder/gnatfinder/pkg/spike"
)

// Params holds the tunables of one pipeline run: the three causal-kernel
// scalars from the CLI plus the ambient Phase-2 concurrency and
// progress-reporting knobs (core.PipelineConfig).
type Params struct {
	Tau     float64
	Thresh  float64
	CRadius float64

	Workers       int
	BufferSize    int
	ProgressEvery int
}

// Stats summarises one completed run.
type Stats struct {
	NeuronsProcessed int
	EdgesEmitted     int64
	PointsDropped    int64
}

// Build is Phase 1: for every neuron, generate its spike-pair set from the
// raster and bulk-insert it into a freshly-created quadtree over a root
// box spanning that neuron's own [t_min, t_max], widened by half a tick.
// Sizing the box per neuron to its own timestamp range is a strictly
// tighter choice than a single shared box; the half-tick margin puts the
// integer timestamps t_min and t_max strictly inside, so every generated
// pair lies strictly inside.
func Build(r *raster.Raster, log *core.Logger) ([]*quadtree.Tree, int64, error) {
	trees := make([]*quadtree.Tree, r.NCells)
	var dropped int64

	for v := uint32(0); v < r.NCells; v++ {
		pairs := r.Pairs(v)
		bbox := quadtree.RootBox(r.TMin(v), r.TMax(v))
		bbox.HalfWidth += 0.5
		tree, n := quadtree.BuildFromPairs(bbox, pairs)
		trees[v] = tree
		dropped += int64(n)
		if log != nil && n > 0 {
			log.Warnf("neuron %d: dropped %d spike-pair points outside its root boundary", v, n)
		}
	}

	return trees, dropped, nil
}

// Run is Phase 2: for every postsynaptic neuron v, for every post-pair of
// v, for every presynaptic synapse u->v, range-query u's quadtree, keep
// the pre-pairs strictly inside the c_radius box around the post-pair, and
// apply the causal edge predicate, streaming accepted matches to sink.
//
// Sequential when p.Workers <= 1, the reference design. Otherwise
// partitions [0, n_cells) across a worker pool (pkg/pipeline's
// neuronPool, adapted from qubicDB's pkg/concurrency worker idiom) — the
// quadtrees, network and raster are read-only during Phase 2, so the only
// resource requiring synchronisation is sink itself; callers must pass an
// emit.ConcurrentSink when p.Workers > 1.
func Run(ctx context.Context, r *raster.Raster, net *netgraph.Network, trees []*quadtree.Tree, sink emit.Writer, p Params, log *core.Logger) (Stats, error) {
	var edgesEmitted int64
	var mu sync.Mutex // guards progress bookkeeping only, not sink
	durations := make([]float64, 0, r.NCells)
	processed := 0

	processNeuron := func(ctx context.Context, v uint64) error {
		start := time.Now()
		n, err := processPostsynapticNeuron(uint32(v), r, net, trees, sink, p)
		if err != nil {
			return err
		}

		mu.Lock()
		edgesEmitted += n
		processed++
		durations = append(durations, time.Since(start).Seconds())
		reportProgress(log, p.ProgressEvery, processed, int(r.NCells), durations)
		mu.Unlock()
		return nil
	}

	var err error
	if p.Workers > 1 {
		err = runNeuronPool(ctx, uint64(r.NCells), p.Workers, processNeuron)
	} else {
		for v := uint32(0); v < r.NCells; v++ {
			if ctxErr := ctx.Err(); ctxErr != nil {
				err = ctxErr
				break
			}
			if procErr := processNeuron(ctx, uint64(v)); procErr != nil {
				err = procErr
				break
			}
		}
	}

	if flushErr := sink.Flush(); flushErr != nil && err == nil {
		err = flushErr
	}

	return Stats{NeuronsProcessed: processed, EdgesEmitted: edgesEmitted}, err
}

// processPostsynapticNeuron enumerates every (post_pair, presynaptic
// synapse) combination for neuron v and returns the number of accepted
// edges it streamed to sink.
func processPostsynapticNeuron(v uint32, r *raster.Raster, net *netgraph.Network, trees []*quadtree.Tree, sink emit.Writer, p Params) (int64, error) {
	var emitted int64

	postPairs := r.Pairs(v)
	presyns := net.Presynaptic(uint64(v))
	if len(presyns) == 0 {
		return 0, nil
	}

	for _, postPair := range postPairs {
		cx, cy := postPair.Point()
		queryBox := geom.New(cx, cy, p.CRadius)

		for _, e := range presyns {
			if e.Src >= uint64(len(trees)) {
				continue
			}
			qtU := trees[e.Src]
			if qtU == nil {
				continue
			}

			var sinkErr error
			qtU.Query(queryBox, func(prePair spike.Pair) bool {
				// Query visits a superset; keep only pre-pairs strictly
				// inside the c_radius box around the post-pair.
				if x, y := prePair.Point(); !queryBox.ContainsPoint(x, y) {
					return true
				}
				if !causal.EdgePairs(prePair, postPair, e, p.Tau, p.Thresh) {
					return true
				}
				if err := sink.Add(prePair, postPair, 1.0); err != nil {
					sinkErr = fmt.Errorf("emitting edge: %w", err)
					return false
				}
				emitted++
				return true
			})
			if sinkErr != nil {
				return emitted, sinkErr
			}
		}
	}

	return emitted, nil
}

func reportProgress(log *core.Logger, every, processed, total int, durations []float64) {
	if log == nil || every <= 0 || processed%every != 0 {
		return
	}

	sorted := append([]float64(nil), durations...)
	sort.Float64s(sorted)
	weights := make([]float64, len(sorted))
	for i := range weights {
		weights[i] = 1
	}
	p50 := stat.Quantile(0.5, stat.Empirical, sorted, weights)
	p99 := stat.Quantile(0.99, stat.Empirical, sorted, weights)

	log.Infof("progress: %d/%d neurons (p50=%.4fs p99=%.4fs per neuron)", processed, total, p50, p99)
}
