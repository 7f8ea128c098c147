package navigation

import (
	"math"
	"testing"

	"github.com/samuelfneumann/avnav/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWalls(t *testing.T, collider geometry.Collider,
	extra ...geometry.Polygon) *Obstacles {
	t.Helper()
	o, err := NewObstacles(append(Walls(200, 200), extra...), collider)
	require.NoError(t, err)
	return o
}

func TestSensorRayDirections(t *testing.T) {
	v := NewVehicle(Pose{X: 100, Y: 100}, DefaultVehicleParams())
	rays := SensorRays(v.Outline(), v.Pose().Heading)

	// Heading 0: left is -x, forward is +y
	want := [NumSensors]geometry.Point{
		geometry.Pt(-1, 0), geometry.Pt(0, -1), // rear-left
		geometry.Pt(-1, 0), geometry.Pt(0, 1), // front-left
		geometry.Pt(1, 0), geometry.Pt(0, 1), // front-right
		geometry.Pt(1, 0), geometry.Pt(0, -1), // rear-right
	}
	for i, ray := range rays {
		assert.InDelta(t, want[i].X, ray.Direction.X, tol, "ray %d", i)
		assert.InDelta(t, want[i].Y, ray.Direction.Y, tol, "ray %d", i)
		assert.Equal(t, v.Outline()[i/SensorsPerCorner], ray.Origin)
	}

	// Every ray points away from the vehicle centre
	v = NewVehicle(Pose{X: 50, Y: 70, Heading: 2.2}, DefaultVehicleParams())
	for i, ray := range SensorRays(v.Outline(), v.Pose().Heading) {
		outward := geometry.Pt(ray.Origin.X-50, ray.Origin.Y-70)
		dot := outward.X*ray.Direction.X + outward.Y*ray.Direction.Y
		assert.Greater(t, dot, 0.0, "ray %d", i)
		assert.InDelta(t, 1.0, math.Hypot(ray.Direction.X, ray.Direction.Y),
			tol)
	}
}

func TestSenseInEmptyArena(t *testing.T) {
	for name, collider := range map[string]geometry.Collider{
		"exact": geometry.NewExact(),
		"box2d": geometry.NewBox2D(),
	} {
		t.Run(name, func(t *testing.T) {
			o := newWalls(t, collider)
			v := NewVehicle(Pose{X: 100, Y: 100}, DefaultVehicleParams())

			// Sides are 87.5 from the walls, front and rear 80
			readings := o.Sense(v.Outline(), v.Pose().Heading, 100)
			want := [NumSensors]float64{87, 79, 87, 79, 87, 79, 87, 79}
			assert.Equal(t, want, readings)
		})
	}
}

func TestSenseRange(t *testing.T) {
	o := newWalls(t, geometry.NewExact())
	v := NewVehicle(Pose{X: 100, Y: 100, Heading: 0.3},
		DefaultVehicleParams())

	for _, sensorRange := range []float64{10, 50.5, 100, 300} {
		for i, r := range o.Sense(v.Outline(), v.Pose().Heading, sensorRange) {
			assert.GreaterOrEqual(t, r, 0.0, "sensor %d", i)
			assert.LessOrEqual(t, r, sensorRange, "sensor %d", i)
		}
	}

	// Nothing within 10 units, all sensors read their full range
	for _, r := range o.Sense(v.Outline(), v.Pose().Heading, 10) {
		assert.Equal(t, 10.0, r)
	}
}

func TestCastMonotone(t *testing.T) {
	ray := Ray{Origin: geometry.Pt(100, 100), Direction: geometry.Pt(1, 0)}

	previous := math.Inf(1)
	for _, x := range []float64{190, 170, 150, 130, 110} {
		o := newWalls(t, geometry.NewExact(),
			geometry.Rect(geometry.Pt(x, 90), geometry.Pt(x+5, 110)))

		reading := o.Cast(ray, 100)
		assert.Less(t, reading, previous)
		assert.False(t, o.collider.Hits(ray.Segment(reading), o.At(4)))
		previous = reading
	}
}

func TestCastUnitResolution(t *testing.T) {
	ray := Ray{Origin: geometry.Pt(100, 100), Direction: geometry.Pt(1, 0)}
	o := newWalls(t, geometry.NewExact(),
		geometry.Rect(geometry.Pt(120.5, 90), geometry.Pt(130, 110)))

	// The obstacle is 20.5 away, 20 is the longest unit length clear
	assert.Equal(t, 20.0, o.Cast(ray, 100))
}

func TestCastStartingInsideObstacle(t *testing.T) {
	o := newWalls(t, geometry.NewExact(),
		geometry.Rect(geometry.Pt(90, 90), geometry.Pt(110, 110)))

	for _, d := range []geometry.Point{geometry.Pt(1, 0), geometry.Pt(0, -1)} {
		ray := Ray{Origin: geometry.Pt(100, 100), Direction: d}
		assert.Zero(t, o.Cast(ray, 100))
		assert.Zero(t, o.Cast(ray, 100.5))
	}
}

func TestObstacles(t *testing.T) {
	square := geometry.Rect(geometry.Pt(50, 50), geometry.Pt(60, 60))
	o := newWalls(t, geometry.NewExact(), square)

	assert.Equal(t, 5, o.Len())
	assert.Equal(t, square, o.At(4))

	// Registry holds copies
	polygons := o.Polygons()
	polygons[4][0] = geometry.Pt(0, 0)
	assert.Equal(t, square, o.At(4))

	assert.True(t, o.Collides(geometry.Rect(geometry.Pt(55, 55),
		geometry.Pt(70, 70))))
	assert.True(t, o.Collides(geometry.Rect(geometry.Pt(1, 1),
		geometry.Pt(3, 3))))
	assert.False(t, o.Collides(geometry.Rect(geometry.Pt(100, 100),
		geometry.Pt(110, 110))))

	contact := o.Contact(geometry.Rect(geometry.Pt(55, 55),
		geometry.Pt(70, 70)))
	require.Len(t, contact, 1)
	assert.InDelta(t, 25.0, math.Abs(contact[0].Area()), 1e-9)
}

func TestNewObstaclesRejectsInvalidGeometry(t *testing.T) {
	_, err := NewObstacles([]geometry.Polygon{
		{geometry.Pt(0, 0), geometry.Pt(1, 1)},
	}, geometry.NewExact())
	assert.True(t, geometry.IsInvalidGeometry(err))

	concave := geometry.Polygon{
		geometry.Pt(0, 0), geometry.Pt(10, 0), geometry.Pt(10, 5),
		geometry.Pt(5, 5), geometry.Pt(5, 10), geometry.Pt(0, 10),
	}
	_, err = NewObstacles([]geometry.Polygon{concave}, geometry.NewExact())
	assert.NoError(t, err)
	_, err = NewObstacles([]geometry.Polygon{concave}, geometry.NewBox2D())
	assert.True(t, geometry.IsInvalidGeometry(err))
}

func TestWalls(t *testing.T) {
	walls := Walls(200, 100)
	require.Len(t, walls, 4)

	for i, w := range walls {
		assert.NoError(t, w.Validate(), "wall %d", i)
		b := w.Bounds()
		assert.GreaterOrEqual(t, b.Min.X, 0.0)
		assert.GreaterOrEqual(t, b.Min.Y, 0.0)
		assert.LessOrEqual(t, b.Max.X, 200.0)
		assert.LessOrEqual(t, b.Max.Y, 100.0)
		assert.InDelta(t, WallThickness,
			math.Min(b.Max.X-b.Min.X, b.Max.Y-b.Min.Y), tol)
	}
}
