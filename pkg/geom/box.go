// Package geom implements the axis-aligned square boxes used to bound
// quadtree nodes and range queries over the (t1, t2) plane.
package geom

// Box is an axis-aligned square centred at (CenterX, CenterY) with half
// the side length HalfWidth.
//
// Containment is strict and intersection is inclusive; this asymmetry is
// intentional: a point strictly inside a box away from its split lines
// is strictly inside exactly one child, a point lying exactly on a split
// line is strictly inside none of them, and a range query on a boundary
// still reaches every relevant region. Do not "fix" one to match the
// other — round-trip and boundary tests depend on the distinction
// exactly as written here.
type Box struct {
	CenterX, CenterY float64
	HalfWidth        float64
}

// New returns a Box centred at (cx, cy) with the given half-width.
func New(cx, cy, halfWidth float64) Box {
	return Box{CenterX: cx, CenterY: cy, HalfWidth: halfWidth}
}

// ContainsPoint reports whether (x, y) lies strictly inside the box:
// |x-CenterX| < HalfWidth && |y-CenterY| < HalfWidth.
func (b Box) ContainsPoint(x, y float64) bool {
	return absLess(x-b.CenterX, b.HalfWidth) && absLess(y-b.CenterY, b.HalfWidth)
}

// Intersects reports whether b and other overlap or touch:
// |dx| <= w1+w2 && |dy| <= w1+w2, inclusive on both axes.
func (b Box) Intersects(other Box) bool {
	sum := b.HalfWidth + other.HalfWidth
	return absLessEq(b.CenterX-other.CenterX, sum) && absLessEq(b.CenterY-other.CenterY, sum)
}

// ChildBoxes returns the four equal sub-squares that exactly tile b, in
// the fixed NW, SW, NE, SE order in which the quadtree tries them.
func (b Box) ChildBoxes() [4]Box {
	h := b.HalfWidth / 2
	return [4]Box{
		New(b.CenterX-h, b.CenterY+h, h), // NW
		New(b.CenterX-h, b.CenterY-h, h), // SW
		New(b.CenterX+h, b.CenterY+h, h), // NE
		New(b.CenterX+h, b.CenterY-h, h), // SE
	}
}

func absLess(d, w float64) bool {
	if d < 0 {
		d = -d
	}
	return d < w
}

func absLessEq(d, w float64) bool {
	if d < 0 {
		d = -d
	}
	return d <= w
}
