package geometry

// Collider decides intersection between the shapes the navigation
// environments are built from
type Collider interface {
	// Overlaps returns whether two polygons share at least one point
	Overlaps(a, b Polygon) bool

	// Hits returns whether a segment shares at least one point with a
	// polygon
	Hits(s Segment, p Polygon) bool

	// Supports returns an error wrapping ErrInvalidGeometry if p cannot
	// be used with the Collider
	Supports(p Polygon) error
}

// Exact is a Collider which evaluates closed-set predicates directly
// on polygon edges. It supports any simple polygon.
type Exact struct{}

// NewExact returns a new Exact Collider
func NewExact() Exact {
	return Exact{}
}

// Overlaps returns whether polygons a and b share at least one point.
// Either the boundaries cross, or one polygon lies inside the other.
func (Exact) Overlaps(a, b Polygon) bool {
	return PolygonsIntersect(a, b)
}

// Hits returns whether segment s shares at least one point with p
func (Exact) Hits(s Segment, p Polygon) bool {
	return SegmentIntersectsPolygon(s, p)
}

// Supports validates p
func (Exact) Supports(p Polygon) error {
	return p.Validate()
}

// SegmentIntersectsPolygon returns whether the closed segment s
// intersects the closed polygon p. A degenerate segment intersects p
// if its point lies in p.
func SegmentIntersectsPolygon(s Segment, p Polygon) bool {
	if !boxesOverlap(s.Bounds(), p.Bounds()) {
		return false
	}

	if p.Contains(s.A) || p.Contains(s.B) {
		return true
	}
	if s.Degenerate() {
		return false
	}

	for _, edge := range p.Edges() {
		if SegmentsIntersect(s, edge) {
			return true
		}
	}
	return false
}

// PolygonsIntersect returns whether the closed polygons a and b
// intersect
func PolygonsIntersect(a, b Polygon) bool {
	if !boxesOverlap(a.Bounds(), b.Bounds()) {
		return false
	}

	bEdges := b.Edges()
	for _, ea := range a.Edges() {
		for _, eb := range bEdges {
			if SegmentsIntersect(ea, eb) {
				return true
			}
		}
	}

	// No boundary crossings, so either one contains the other or they
	// are disjoint
	return b.Contains(a[0]) || a.Contains(b[0])
}
