package navigation

import (
	"fmt"

	"github.com/samuelfneumann/avnav/geometry"
)

// WallThickness is the thickness of the walls bounding the arena
const WallThickness float64 = 5.0

// Walls returns the four wall polygons bounding a width x height arena
// with its lower left corner at the origin. Each wall is WallThickness
// thick and lies inside the arena.
func Walls(width, height float64) []geometry.Polygon {
	t := WallThickness
	return []geometry.Polygon{
		// Bottom
		{geometry.Pt(0, t), geometry.Pt(width, t), geometry.Pt(width, 0),
			geometry.Pt(0, 0)},

		// Top
		{geometry.Pt(0, height-t), geometry.Pt(width, height-t),
			geometry.Pt(width, height), geometry.Pt(0, height)},

		// Right
		{geometry.Pt(width-t, height), geometry.Pt(width, height),
			geometry.Pt(width, 0), geometry.Pt(width-t, 0)},

		// Left
		{geometry.Pt(t, height), geometry.Pt(0, height), geometry.Pt(0, 0),
			geometry.Pt(t, 0)},
	}
}

// Obstacles is an immutable registry of obstacle polygons. All
// intersection queries against the registry go through a broad phase
// spatial index and then the registry's Collider.
type Obstacles struct {
	polygons []geometry.Polygon
	index    *geometry.Index
	collider geometry.Collider
}

// NewObstacles returns a registry over copies of polygons. Every
// polygon must be supported by the collider, otherwise an error
// wrapping geometry.ErrInvalidGeometry is returned.
func NewObstacles(polygons []geometry.Polygon,
	collider geometry.Collider) (*Obstacles, error) {
	stored := make([]geometry.Polygon, len(polygons))
	for i, p := range polygons {
		if err := collider.Supports(p); err != nil {
			return nil, fmt.Errorf("newObstacles: obstacle %d: %w", i, err)
		}
		stored[i] = p.Clone()
	}

	index, err := geometry.NewIndex(stored)
	if err != nil {
		return nil, fmt.Errorf("newObstacles: could not index obstacles: %v",
			err)
	}

	return &Obstacles{
		polygons: stored,
		index:    index,
		collider: collider,
	}, nil
}

// Len returns the number of obstacles
func (o *Obstacles) Len() int {
	return len(o.polygons)
}

// At returns a copy of obstacle i
func (o *Obstacles) At(i int) geometry.Polygon {
	return o.polygons[i].Clone()
}

// Polygons returns copies of all obstacles
func (o *Obstacles) Polygons() []geometry.Polygon {
	polygons := make([]geometry.Polygon, len(o.polygons))
	for i := range o.polygons {
		polygons[i] = o.At(i)
	}
	return polygons
}

// Collides returns whether the polygon p intersects any obstacle
func (o *Obstacles) Collides(p geometry.Polygon) bool {
	for _, id := range o.index.Search(p.Bounds()) {
		if o.collider.Overlaps(p, o.polygons[id]) {
			return true
		}
	}
	return false
}

// Contact returns the regions shared by p and the obstacles it
// intersects
func (o *Obstacles) Contact(p geometry.Polygon) []geometry.Polygon {
	var regions []geometry.Polygon
	for _, id := range o.index.Search(p.Bounds()) {
		regions = append(regions, geometry.ContactRegion(p, o.polygons[id])...)
	}
	return regions
}
