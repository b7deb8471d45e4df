// Package causal implements the causal-distance kernel (gamma) and its
// sibling activation-contribution function (omega), plus the edge
// predicate the orchestrator applies to every candidate spike-pair match.
package causal

import (
	"math"

	"github.com/gnatfinder/gnatfinder/pkg/netgraph"
	"github.com/gnatfinder/gnatfinder/pkg/spike"
)

// LargeGamma is the sentinel causal distance used when the Heaviside
// factor would zero the activation (Δ < delay), replacing the +∞ that
// -log(0) would otherwise produce. It keeps Gamma finite, monotone, and
// cheap to compare against a threshold.
const LargeGamma = 999_999

// Omega computes the activation contribution of a pre/post spike pair
// across a synapse: H(delta >= delay) * relWeight * exp(-(delta-delay)/tau).
// Exported for callers that want the activation value itself; the hot
// enumeration path uses Gamma instead.
func Omega(delta, delay float64, relWeight, tau float64) float64 {
	if delta < delay {
		return 0
	}
	return relWeight * math.Exp(-(delta-delay)/tau)
}

// Gamma computes the causal distance for a single pre->post spike
// correspondence: LargeGamma if delta < delay (sub-threshold causal
// direction), otherwise negLogRelWeight + (delta-delay)/tau. No exp is
// evaluated on this path.
func Gamma(delta, delay float64, negLogRelWeight, tau float64) float64 {
	if delta < delay {
		return LargeGamma
	}
	return negLogRelWeight + (delta-delay)/tau
}

// Edge is the component-wise causal predicate: both pre->post deltas must
// pass Gamma against thresh. Pairing is positional (aDelta<->first
// component, bDelta<->second component); no alternative alignments are
// tried.
func Edge(aDelta, bDelta float64, e netgraph.Synapse, tau, thresh float64) bool {
	delay := float64(e.Delay)
	negLogRelWeight := float64(e.NegLogRelWeight)
	return Gamma(aDelta, delay, negLogRelWeight, tau) <= thresh &&
		Gamma(bDelta, delay, negLogRelWeight, tau) <= thresh
}

// EdgePairs evaluates the edge predicate directly from a candidate
// pre-pair and post-pair: pre.A -> post.A is the first causal test,
// pre.B -> post.B is the second.
func EdgePairs(pre, post spike.Pair, e netgraph.Synapse, tau, thresh float64) bool {
	aDelta := float64(post.A.Ts - pre.A.Ts)
	bDelta := float64(post.B.Ts - pre.B.Ts)
	return Edge(aDelta, bDelta, e, tau, thresh)
}
