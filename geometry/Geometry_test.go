package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

var square = Rect(Pt(0, 0), Pt(10, 10))

func TestSegmentsIntersect(t *testing.T) {
	cases := []struct {
		name string
		s, u Segment
		want bool
	}{
		{"crossing", Seg(Pt(0, 0), Pt(10, 10)), Seg(Pt(0, 10), Pt(10, 0)), true},
		{"disjoint parallel", Seg(Pt(0, 0), Pt(10, 0)), Seg(Pt(0, 1), Pt(10, 1)), false},
		{"shared endpoint", Seg(Pt(0, 0), Pt(5, 5)), Seg(Pt(5, 5), Pt(10, 0)), true},
		{"touching interior", Seg(Pt(0, 0), Pt(10, 0)), Seg(Pt(5, 0), Pt(5, 5)), true},
		{"collinear overlap", Seg(Pt(0, 0), Pt(10, 0)), Seg(Pt(5, 0), Pt(15, 0)), true},
		{"collinear apart", Seg(Pt(0, 0), Pt(4, 0)), Seg(Pt(5, 0), Pt(15, 0)), false},
		{"near miss", Seg(Pt(0, 0), Pt(10, 0)), Seg(Pt(5, 0.1), Pt(5, 5)), false},
		{"degenerate on segment", Seg(Pt(0, 0), Pt(10, 0)), Seg(Pt(3, 0), Pt(3, 0)), true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, SegmentsIntersect(c.s, c.u))
			assert.Equal(t, c.want, SegmentsIntersect(c.u, c.s))
		})
	}
}

func TestSegment(t *testing.T) {
	s := Seg(Pt(3, 4), Pt(0, 0))
	assert.InDelta(t, 5.0, s.Len(), 1e-12)
	assert.False(t, s.Degenerate())
	assert.True(t, Seg(Pt(1, 1), Pt(1, 1)).Degenerate())
	assert.Equal(t, r2.Box{Min: Pt(0, 0), Max: Pt(3, 4)}, s.Bounds())
	assert.InDelta(t, 5.0, Distance(Pt(0, 0), Pt(-3, -4)), 1e-12)
}

func TestPolygonContains(t *testing.T) {
	assert.True(t, square.Contains(Pt(5, 5)), "interior")
	assert.True(t, square.Contains(Pt(0, 5)), "edge")
	assert.True(t, square.Contains(Pt(10, 10)), "vertex")
	assert.False(t, square.Contains(Pt(10.5, 5)), "outside")
	assert.False(t, square.Contains(Pt(-1, -1)), "outside corner")

	// Concave L shape, the notch is outside
	l := MustPolygon(Pt(0, 0), Pt(10, 0), Pt(10, 5), Pt(5, 5), Pt(5, 10),
		Pt(0, 10))
	assert.True(t, l.Contains(Pt(2, 8)))
	assert.False(t, l.Contains(Pt(8, 8)))
}

func TestPolygonValidate(t *testing.T) {
	cases := []struct {
		name    string
		polygon Polygon
	}{
		{"too few vertices", Polygon{Pt(0, 0), Pt(1, 1)}},
		{"non-finite", Polygon{Pt(0, 0), Pt(math.NaN(), 0), Pt(1, 1)}},
		{"infinite", Polygon{Pt(0, 0), Pt(math.Inf(1), 0), Pt(1, 1)}},
		{"zero area", Polygon{Pt(0, 0), Pt(1, 1), Pt(2, 2)}},
		{"repeated vertex", Polygon{Pt(0, 0), Pt(1, 0), Pt(1, 0), Pt(0, 1)}},
		{"bowtie", Polygon{Pt(0, 0), Pt(10, 10), Pt(10, 0), Pt(0, 10)}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.polygon.Validate()
			require.Error(t, err)
			assert.True(t, IsInvalidGeometry(err))

			_, err = NewPolygon(c.polygon)
			assert.True(t, IsInvalidGeometry(err))
		})
	}

	assert.NoError(t, square.Validate())
	assert.Panics(t, func() { MustPolygon(Pt(0, 0), Pt(1, 1)) })
}

func TestPolygonProperties(t *testing.T) {
	assert.InDelta(t, 100.0, square.Area(), 1e-12)
	assert.InDelta(t, -100.0, Polygon{Pt(0, 0), Pt(0, 10), Pt(10, 10),
		Pt(10, 0)}.Area(), 1e-12)
	assert.Equal(t, Pt(5, 5), square.Centroid())
	assert.Equal(t, r2.Box{Min: Pt(0, 0), Max: Pt(10, 10)}, square.Bounds())
	assert.True(t, square.Convex())
	assert.False(t, MustPolygon(Pt(0, 0), Pt(10, 0), Pt(10, 5), Pt(5, 5),
		Pt(5, 10), Pt(0, 10)).Convex())

	c := square.Clone()
	c[0] = Pt(-1, -1)
	assert.Equal(t, Pt(0, 0), square[0])
}

func TestPolygonsIntersect(t *testing.T) {
	cases := []struct {
		name string
		a    Polygon
		want bool
	}{
		{"overlapping", Rect(Pt(5, 5), Pt(15, 15)), true},
		{"touching edge", Rect(Pt(10, 0), Pt(20, 10)), true},
		{"touching corner", Rect(Pt(10, 10), Pt(20, 20)), true},
		{"contained", Rect(Pt(2, 2), Pt(4, 4)), true},
		{"containing", Rect(Pt(-5, -5), Pt(20, 20)), true},
		{"disjoint", Rect(Pt(11, 11), Pt(20, 20)), false},
		{"disjoint with overlapping bounds", Polygon{Pt(11, 0), Pt(20, 0),
			Pt(20, 20), Pt(0, 20), Pt(0, 11), Pt(11, 11)}, false},
	}

	exact := NewExact()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, PolygonsIntersect(c.a, square))
			assert.Equal(t, c.want, PolygonsIntersect(square, c.a))
			assert.Equal(t, c.want, exact.Overlaps(c.a, square))
		})
	}
}

func TestSegmentIntersectsPolygon(t *testing.T) {
	cases := []struct {
		name string
		s    Segment
		want bool
	}{
		{"crossing", Seg(Pt(-5, 5), Pt(15, 5)), true},
		{"inside", Seg(Pt(2, 2), Pt(8, 8)), true},
		{"entering", Seg(Pt(-5, 5), Pt(5, 5)), true},
		{"touching vertex", Seg(Pt(-5, -5), Pt(0, 0)), true},
		{"along edge", Seg(Pt(-5, 0), Pt(15, 0)), true},
		{"outside", Seg(Pt(-5, 11), Pt(15, 11)), false},
		{"degenerate inside", Seg(Pt(5, 5), Pt(5, 5)), true},
		{"degenerate outside", Seg(Pt(-5, 5), Pt(-5, 5)), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, SegmentIntersectsPolygon(c.s, square))
		})
	}
}
