package navigation

import (
	"math"

	"github.com/samuelfneumann/avnav/geometry"
	"github.com/samuelfneumann/avnav/utils/floatutils"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// SensorsPerCorner is the number of range sensors mounted on each
	// corner of the vehicle outline
	SensorsPerCorner int = 2

	// NumSensors is the total number of range sensors on a vehicle
	NumSensors int = 4 * SensorsPerCorner
)

// cornerSigns selects the outward directions probed from a corner.
// For heading h the first ray points along (s1 cos h, s2 sin h), the
// side of the vehicle, and the second along (s3 sin h, s4 cos h), the
// front or rear of the vehicle.
type cornerSigns struct {
	s1, s2, s3, s4 float64
}

var sensorSigns = [4]cornerSigns{
	{-1, 1, -1, -1}, // rear-left: left, backward
	{-1, 1, 1, 1},   // front-left: left, forward
	{1, -1, 1, 1},   // front-right: right, forward
	{1, -1, -1, -1}, // rear-right: right, backward
}

// Ray is a sensor ray with a unit direction
type Ray struct {
	Origin    geometry.Point
	Direction geometry.Point
}

// Segment returns the segment covered by the first length units of
// the ray
func (r Ray) Segment(length float64) geometry.Segment {
	return geometry.Seg(r.Origin, r2.Add(r.Origin, r2.Scale(length, r.Direction)))
}

// SensorRays returns the rays of all range sensors for a vehicle with
// the given outline and heading, ordered corner 0 ray 1, corner 0 ray
// 2, corner 1 ray 1, and so on.
func SensorRays(outline Outline, heading float64) [NumSensors]Ray {
	sin, cos := math.Sincos(heading)

	var rays [NumSensors]Ray
	for i, corner := range outline {
		s := sensorSigns[i]
		rays[SensorsPerCorner*i] = Ray{
			Origin:    corner,
			Direction: geometry.Pt(s.s1*cos, s.s2*sin),
		}
		rays[SensorsPerCorner*i+1] = Ray{
			Origin:    corner,
			Direction: geometry.Pt(s.s3*sin, s.s4*cos),
		}
	}
	return rays
}

// Sense returns the reading of every range sensor on a vehicle with
// the given outline and heading. Readings are in [0, sensorRange].
func (o *Obstacles) Sense(outline Outline, heading,
	sensorRange float64) [NumSensors]float64 {
	var readings [NumSensors]float64
	for i, ray := range SensorRays(outline, heading) {
		readings[i] = o.Cast(ray, sensorRange)
	}
	return readings
}

// Cast returns the distance along ray to the closest obstacle, capped
// at sensorRange. Distances are found by shortening the ray in unit
// decrements from its full length until it no longer intersects an
// obstacle, so readings have unit resolution. A ray which starts
// inside an obstacle reads 0.
func (o *Obstacles) Cast(ray Ray, sensorRange float64) float64 {
	reading := sensorRange
	full := ray.Segment(sensorRange)

	for _, id := range o.index.Search(full.Bounds()) {
		obstacle := o.polygons[id]

		// Lengths at or above the closest reading so far cannot lower
		// it. Intersection is monotone in length, so the search may
		// resume from that reading rather than the full range.
		length := reading
		for length > 0 && o.collider.Hits(ray.Segment(length), obstacle) {
			length--
		}
		reading = length
	}

	return floatutils.Clip(reading, 0, sensorRange)
}
