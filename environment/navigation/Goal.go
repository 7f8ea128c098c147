package navigation

import (
	"math"

	"github.com/samuelfneumann/avnav/geometry"
)

// DefaultGoalRadius is the radius of the disks placed around the
// vehicle and the goal when checking whether the goal was reached
const DefaultGoalRadius float64 = 10.0

// InGoal returns whether a disk of radius around position intersects
// a disk of radius around goal
func InGoal(position, goal geometry.Point, radius float64) bool {
	return geometry.Distance(position, goal) < 2*radius
}

// Bearing returns the absolute bearing from one point to another in
// [0, 2π), measured clockwise from the +y axis. The bearing of a point
// to itself is 0.
func Bearing(from, to geometry.Point) float64 {
	dx := to.X - from.X
	dy := to.Y - from.Y

	if dy == 0 {
		switch {
		case dx == 0:
			return 0
		case dx > 0:
			return math.Pi / 2
		default:
			return 3 * math.Pi / 2
		}
	}

	angle := math.Atan(math.Abs(dx) / math.Abs(dy))
	if dy > 0 {
		if dx >= 0 {
			return angle
		}
		return 2*math.Pi - angle
	}
	if dx >= 0 {
		return math.Pi - angle
	}
	return math.Pi + angle
}
