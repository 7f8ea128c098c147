package geometry

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// ErrInvalidGeometry reports a polygon that cannot take part in
// intersection tests: fewer than three vertices, non-finite
// coordinates, zero area, or self-intersecting edges.
var ErrInvalidGeometry = errors.New("invalid geometry")

// IsInvalidGeometry returns whether err reports malformed geometry
func IsInvalidGeometry(err error) bool {
	return errors.Is(err, ErrInvalidGeometry)
}

// Polygon is a closed simple polygon. The last vertex connects back to
// the first; the first vertex is not repeated.
type Polygon []Point

// NewPolygon copies and validates vertices into a Polygon
func NewPolygon(vertices []Point) (Polygon, error) {
	p := make(Polygon, len(vertices))
	copy(p, vertices)

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// MustPolygon is like NewPolygon but panics on malformed vertices. It
// is intended for package level fixtures.
func MustPolygon(vertices ...Point) Polygon {
	p, err := NewPolygon(vertices)
	if err != nil {
		panic(err)
	}
	return p
}

// Rect returns the axis aligned rectangle with corners min and max
func Rect(min, max Point) Polygon {
	return Polygon{
		Pt(min.X, min.Y),
		Pt(max.X, min.Y),
		Pt(max.X, max.Y),
		Pt(min.X, max.Y),
	}
}

// Validate returns an error wrapping ErrInvalidGeometry if p is not a
// simple polygon of at least three vertices with non-zero area
func (p Polygon) Validate() error {
	if len(p) < 3 {
		return fmt.Errorf("validate: polygon has %d vertices, need at least "+
			"3: %w", len(p), ErrInvalidGeometry)
	}

	for i, v := range p {
		if math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsInf(v.X, 0) ||
			math.IsInf(v.Y, 0) {
			return fmt.Errorf("validate: vertex %d = %v is not finite: %w", i,
				v, ErrInvalidGeometry)
		}
	}

	if math.Abs(p.Area()) <= Eps {
		return fmt.Errorf("validate: polygon has zero area: %w",
			ErrInvalidGeometry)
	}

	edges := p.Edges()
	n := len(edges)
	for i := 0; i < n; i++ {
		if edges[i].Degenerate() {
			return fmt.Errorf("validate: edge %d has zero length: %w", i,
				ErrInvalidGeometry)
		}
		for j := i + 1; j < n; j++ {
			adjacent := j == i+1 || (i == 0 && j == n-1)
			if adjacent {
				// Adjacent edges share a vertex; they only self-intersect
				// if they fold back over each other.
				if folded(edges[i], edges[j]) {
					return fmt.Errorf("validate: edges %d and %d overlap: %w",
						i, j, ErrInvalidGeometry)
				}
				continue
			}
			if SegmentsIntersect(edges[i], edges[j]) {
				return fmt.Errorf("validate: edges %d and %d intersect: %w",
					i, j, ErrInvalidGeometry)
			}
		}
	}
	return nil
}

// folded reports whether two edges sharing a vertex are collinear and
// point back over each other
func folded(s, t Segment) bool {
	var shared, a, b Point
	switch {
	case s.B == t.A:
		shared, a, b = s.B, s.A, t.B
	case s.A == t.B:
		shared, a, b = s.A, s.B, t.A
	default:
		return false
	}
	u, v := r2.Sub(a, shared), r2.Sub(b, shared)
	return math.Abs(r2.Cross(u, v)) <= Eps && r2.Dot(u, v) > 0
}

// Edges returns the closed sequence of polygon edges
func (p Polygon) Edges() []Segment {
	edges := make([]Segment, len(p))
	for i := range p {
		edges[i] = Seg(p[i], p[(i+1)%len(p)])
	}
	return edges
}

// Area returns the signed area of the polygon, positive when its
// vertices are ordered counter clockwise
func (p Polygon) Area() float64 {
	area := 0.0
	for i := range p {
		area += r2.Cross(p[i], p[(i+1)%len(p)])
	}
	return area / 2
}

// Centroid returns the mean of the polygon vertices
func (p Polygon) Centroid() Point {
	var c Point
	for _, v := range p {
		c = r2.Add(c, v)
	}
	return r2.Scale(1/float64(len(p)), c)
}

// Bounds returns the axis aligned bounding box of the polygon
func (p Polygon) Bounds() r2.Box {
	box := r2.Box{Min: p[0], Max: p[0]}
	for _, v := range p[1:] {
		box.Min.X = math.Min(box.Min.X, v.X)
		box.Min.Y = math.Min(box.Min.Y, v.Y)
		box.Max.X = math.Max(box.Max.X, v.X)
		box.Max.Y = math.Max(box.Max.Y, v.Y)
	}
	return box
}

// Convex returns whether the polygon is convex
func (p Polygon) Convex() bool {
	sign := 0
	for i := range p {
		o := orientation(p[i], p[(i+1)%len(p)], p[(i+2)%len(p)])
		if o == 0 {
			continue
		}
		if sign == 0 {
			sign = o
		} else if o != sign {
			return false
		}
	}
	return true
}

// Contains returns whether q lies inside or on the boundary of p
func (p Polygon) Contains(q Point) bool {
	inside := false
	for i, j := 0, len(p)-1; i < len(p); j, i = i, i+1 {
		a, b := p[j], p[i]

		if orientation(a, b, q) == 0 && onSegment(Seg(a, b), q) {
			return true
		}

		// Even-odd rule on a ray cast towards +x
		if (a.Y > q.Y) != (b.Y > q.Y) {
			x := a.X + (q.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if q.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// Clone returns a copy of p
func (p Polygon) Clone() Polygon {
	c := make(Polygon, len(p))
	copy(c, p)
	return c
}
