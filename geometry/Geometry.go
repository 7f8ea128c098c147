// Package geometry implements the planar geometry used by the
// navigation environments: points, segments, closed polygons, and the
// intersection predicates needed for collision detection and range
// sensing.
//
// Intersection follows closed-set semantics: shapes that merely touch
// on their boundaries intersect, and a segment lying entirely inside a
// polygon intersects it.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Eps is the tolerance used when deciding whether three points are
// collinear
const Eps float64 = 1e-9

// Point is a point in the plane
type Point = r2.Vec

// Pt is shorthand for constructing a Point
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Segment is the closed line segment between A and B
type Segment struct {
	A, B Point
}

// Seg is shorthand for constructing a Segment
func Seg(a, b Point) Segment {
	return Segment{A: a, B: b}
}

// Len returns the length of the segment
func (s Segment) Len() float64 {
	return r2.Norm(r2.Sub(s.B, s.A))
}

// Degenerate returns whether the segment is a single point
func (s Segment) Degenerate() bool {
	return s.A == s.B
}

// Bounds returns the axis aligned bounding box of the segment
func (s Segment) Bounds() r2.Box {
	return r2.Box{
		Min: Pt(math.Min(s.A.X, s.B.X), math.Min(s.A.Y, s.B.Y)),
		Max: Pt(math.Max(s.A.X, s.B.X), math.Max(s.A.Y, s.B.Y)),
	}
}

// Distance returns the Euclidean distance between two points
func Distance(p, q Point) float64 {
	return r2.Norm(r2.Sub(q, p))
}

// orientation returns the sign of the turn p -> q -> r: 1 for counter
// clockwise, -1 for clockwise, and 0 for collinear points.
func orientation(p, q, r Point) int {
	cross := r2.Cross(r2.Sub(q, p), r2.Sub(r, p))
	switch {
	case cross > Eps:
		return 1
	case cross < -Eps:
		return -1
	default:
		return 0
	}
}

// onSegment returns whether r, known to be collinear with s, lies
// within the bounding box of s
func onSegment(s Segment, r Point) bool {
	return r.X <= math.Max(s.A.X, s.B.X)+Eps &&
		r.X >= math.Min(s.A.X, s.B.X)-Eps &&
		r.Y <= math.Max(s.A.Y, s.B.Y)+Eps &&
		r.Y >= math.Min(s.A.Y, s.B.Y)-Eps
}

// SegmentsIntersect returns whether two closed segments share at least
// one point
func SegmentsIntersect(s, t Segment) bool {
	o1 := orientation(s.A, s.B, t.A)
	o2 := orientation(s.A, s.B, t.B)
	o3 := orientation(t.A, t.B, s.A)
	o4 := orientation(t.A, t.B, s.B)

	// General case: each segment straddles the line through the other
	if o1 != o2 && o3 != o4 {
		return true
	}

	// Collinear cases
	if o1 == 0 && onSegment(s, t.A) {
		return true
	}
	if o2 == 0 && onSegment(s, t.B) {
		return true
	}
	if o3 == 0 && onSegment(t, s.A) {
		return true
	}
	if o4 == 0 && onSegment(t, s.B) {
		return true
	}
	return false
}

func boxesOverlap(a, b r2.Box) bool {
	return a.Min.X <= b.Max.X+Eps && b.Min.X <= a.Max.X+Eps &&
		a.Min.Y <= b.Max.Y+Eps && b.Min.Y <= a.Max.Y+Eps
}
