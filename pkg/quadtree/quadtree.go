// Package quadtree implements a point quadtree over spike.Pair values,
// used as a bounded range index: one tree per neuron, built once from
// that neuron's spike-pairs and never mutated again.
package quadtree

import (
	"github.com/gnatfinder/gnatfinder/pkg/core"
	"github.com/gnatfinder/gnatfinder/pkg/geom"
	"github.com/gnatfinder/gnatfinder/pkg/spike"
)

// MaxLeafCapacity bounds per-leaf linear scans, corresponding to
// QT_MAX_CAP in the original GNATFinder.
const MaxLeafCapacity = 4

// Tree is a node of the quadtree: either a leaf holding up to
// MaxLeafCapacity points, or an internal node with exactly four children.
// An internal node holds only the points that lie exactly on one of its
// split lines, since no child strictly contains those.
type Tree struct {
	bdry     geom.Box
	points   []spike.Pair // for an internal node: split-line points only
	children *[4]*Tree    // nil for leaves
}

// New returns an empty leaf with the given boundary.
func New(bdry geom.Box) *Tree {
	return &Tree{bdry: bdry}
}

// Boundary returns the node's bounding box.
func (t *Tree) Boundary() geom.Box { return t.bdry }

// IsLeaf reports whether t currently holds points directly rather than
// delegating to children.
func (t *Tree) IsLeaf() bool { return t.children == nil }

// Insert attempts to place p into the subtree rooted at t. It returns
// true if accepted (p lies within t's boundary somewhere), false if p
// falls entirely outside t.bdry — a recoverable failure; the caller may
// retry against a sibling subtree.
func (t *Tree) Insert(p spike.Pair) bool {
	x, y := p.Point()
	if !t.bdry.ContainsPoint(x, y) {
		return false
	}

	if t.IsLeaf() {
		if len(t.points) < MaxLeafCapacity {
			t.points = append(t.points, p)
			return true
		}
		t.subdivide()
		// fall through to internal insertion below
	}

	for _, c := range t.children {
		if c.Insert(p) {
			return true
		}
	}
	// p lies exactly on one of t's split lines, which no child strictly
	// contains; keep it on this node so it is not lost.
	t.points = append(t.points, p)
	return true
}

// subdivide turns a full leaf into an internal node, draining its
// existing points into four fresh child leaves in NW, SW, NE, SE order;
// a point on a split line stays on t.
func (t *Tree) subdivide() {
	boxes := t.bdry.ChildBoxes()
	var children [4]*Tree
	for i, b := range boxes {
		children[i] = New(b)
	}

	old := t.points
	t.points = nil
	t.children = &children

	for _, p := range old {
		t.Insert(p)
	}
}

// Query invokes visit on every pair stored in the subtree whose containing
// node's boundary intersects region. visit may be invoked for pairs that
// turn out not to lie strictly inside region — the visitor, not the
// traversal, is the filter of record. Returning false from visit stops
// the traversal early.
func (t *Tree) Query(region geom.Box, visit func(spike.Pair) bool) {
	t.query(region, visit)
}

// query is Query's recursion; it returns false once visit has asked to stop.
func (t *Tree) query(region geom.Box, visit func(spike.Pair) bool) bool {
	if !t.bdry.Intersects(region) {
		return true
	}

	for _, p := range t.points {
		if !visit(p) {
			return false
		}
	}

	if t.IsLeaf() {
		return true
	}
	for _, c := range t.children {
		if !c.query(region, visit) {
			return false
		}
	}
	return true
}

// Collect is a convenience wrapper over Query that appends every visited
// pair to a slice; useful for tests and for checking the insert/query
// round-trip.
func (t *Tree) Collect(region geom.Box) []spike.Pair {
	var out []spike.Pair
	t.Query(region, func(p spike.Pair) bool {
		out = append(out, p)
		return true
	})
	return out
}

// BuildFromPairs constructs a tree over bdry and bulk-inserts pairs,
// returning the tree and the count of points that fell outside bdry.
// Dropped points are surfaced as a count rather than discarded silently;
// the caller may treat a non-zero count as core.ErrPointDropped.
func BuildFromPairs(bdry geom.Box, pairs []spike.Pair) (*Tree, int) {
	t := New(bdry)
	dropped := 0
	for _, p := range pairs {
		if !t.Insert(p) {
			dropped++
		}
	}
	return t, dropped
}

// RootBox computes the top-level bounding box for a neuron whose
// spikes span [tMin, tMax]: centred at ((tMax+tMin)/2, (tMax+tMin)/2) with
// half-width (tMax-tMin)/2. When tMin == tMax the box has zero half-width
// and no pair can ever be inserted into it, so single-spike neurons emit
// no edges.
func RootBox(tMin, tMax int64) geom.Box {
	c := float64(tMax+tMin) / 2
	hw := float64(tMax-tMin) / 2
	return geom.New(c, c, hw)
}

// ErrPointDropped is re-exported for callers that want to compare against
// it directly without importing pkg/core.
var ErrPointDropped = core.ErrPointDropped
