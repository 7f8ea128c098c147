package geometry

import (
	"fmt"

	"github.com/ByteArena/box2d"
)

// MaxBox2DVertices is the largest polygon Box2D can represent
const MaxBox2DVertices int = 8

// Box2D is a Collider backed by the Box2D narrow phase. Overlap is
// decided with GJK distance queries between convex shapes, so only
// convex polygons of at most MaxBox2DVertices vertices are supported.
//
// Box2D pads every polygon and edge with a skin of
// box2d.B2_polygonRadius, so shapes closer than roughly twice that
// radius are reported as overlapping.
type Box2D struct {
	xf box2d.B2Transform
}

// NewBox2D returns a new Box2D Collider
func NewBox2D() *Box2D {
	xf := box2d.MakeB2Transform()
	xf.SetIdentity()
	return &Box2D{xf: xf}
}

// Supports returns an error if p cannot be converted into a Box2D
// polygon shape
func (c *Box2D) Supports(p Polygon) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if len(p) > MaxBox2DVertices {
		return fmt.Errorf("supports: box2d polygons have at most %d "+
			"vertices, got %d: %w", MaxBox2DVertices, len(p),
			ErrInvalidGeometry)
	}
	if !p.Convex() {
		return fmt.Errorf("supports: box2d polygons must be convex: %w",
			ErrInvalidGeometry)
	}
	return nil
}

// Overlaps returns whether polygons a and b overlap
func (c *Box2D) Overlaps(a, b Polygon) bool {
	if !boxesOverlap(a.Bounds(), b.Bounds()) {
		return false
	}
	shapeA := polygonShape(a)
	shapeB := polygonShape(b)
	return box2d.B2TestOverlapShapes(&shapeA, 0, &shapeB, 0, c.xf, c.xf)
}

// Hits returns whether segment s overlaps polygon p
func (c *Box2D) Hits(s Segment, p Polygon) bool {
	if !boxesOverlap(s.Bounds(), p.Bounds()) {
		return false
	}

	// Box2D edges need two distinct vertices
	if s.Degenerate() {
		return p.Contains(s.A)
	}

	edge := box2d.MakeB2EdgeShape()
	edge.Set(toB2Vec2(s.A), toB2Vec2(s.B))
	shape := polygonShape(p)
	return box2d.B2TestOverlapShapes(&edge, 0, &shape, 0, c.xf, c.xf)
}

func polygonShape(p Polygon) box2d.B2PolygonShape {
	vertices := make([]box2d.B2Vec2, len(p))
	for i, v := range p {
		vertices[i] = toB2Vec2(v)
	}

	shape := box2d.MakeB2PolygonShape()
	shape.Set(vertices, len(vertices))
	return shape
}

func toB2Vec2(p Point) box2d.B2Vec2 {
	return box2d.MakeB2Vec2(p.X, p.Y)
}
