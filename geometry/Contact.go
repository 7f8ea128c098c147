package geometry

import (
	"math"

	polyclip "github.com/akavel/polyclip-go"
)

// ContactRegion returns the region shared by polygons a and b as a
// list of polygons. Shapes which only touch along their boundaries
// share no area and produce no region.
func ContactRegion(a, b Polygon) []Polygon {
	if !boxesOverlap(a.Bounds(), b.Bounds()) {
		return nil
	}

	subject := polyclip.Polygon{toContour(a)}
	clipping := polyclip.Polygon{toContour(b)}

	result := subject.Construct(polyclip.INTERSECTION, clipping)

	regions := make([]Polygon, 0, len(result))
	for _, contour := range result {
		if len(contour) < 3 {
			continue
		}
		region := make(Polygon, len(contour))
		for i, p := range contour {
			region[i] = Pt(p.X, p.Y)
		}
		if math.Abs(region.Area()) <= Eps {
			continue
		}
		regions = append(regions, region)
	}
	return regions
}

// ContactArea returns the total area shared by polygons a and b
func ContactArea(a, b Polygon) float64 {
	area := 0.0
	for _, region := range ContactRegion(a, b) {
		area += math.Abs(region.Area())
	}
	return area
}

func toContour(p Polygon) polyclip.Contour {
	contour := make(polyclip.Contour, len(p))
	for i, v := range p {
		contour[i] = polyclip.Point{X: v.X, Y: v.Y}
	}
	return contour
}
