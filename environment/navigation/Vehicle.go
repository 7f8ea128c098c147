package navigation

import (
	"fmt"
	"math"

	"github.com/samuelfneumann/avnav/geometry"
	"github.com/samuelfneumann/avnav/utils/floatutils"
)

const (
	DefaultVehicleWidth       float64 = 15
	DefaultVehicleLength      float64 = 30
	DefaultSensorRange        float64 = 100
	DefaultMaxSpeed           float64 = 5
	DefaultMaxAngularVelocity float64 = 0.1
)

// Pose is the position and heading of a vehicle. Heading is measured
// in radians clockwise from the +y axis, so that a vehicle with heading
// 0 drives along +y and a vehicle with heading π/2 drives along +x.
type Pose struct {
	X, Y    float64
	Heading float64
}

// Position returns the position of the pose
func (p Pose) Position() geometry.Point {
	return geometry.Pt(p.X, p.Y)
}

// Outline is the oriented rectangle covered by a vehicle. Corners are
// ordered rear-left, front-left, front-right, rear-right, where left
// is the direction (-cos h, sin h) for heading h.
type Outline [4]geometry.Point

// Polygon returns the outline as a closed polygon
func (o Outline) Polygon() geometry.Polygon {
	return geometry.Polygon{o[0], o[1], o[2], o[3]}
}

// VehicleParams are the fixed physical parameters of a vehicle
type VehicleParams struct {
	Width              float64 `json:"width" yaml:"width"`
	Length             float64 `json:"length" yaml:"length"`
	SensorRange        float64 `json:"sensor_range" yaml:"sensor_range"`
	MaxSpeed           float64 `json:"max_speed" yaml:"max_speed"`
	MaxAngularVelocity float64 `json:"max_angular_velocity" yaml:"max_angular_velocity"`
}

// DefaultVehicleParams returns the default vehicle parameters
func DefaultVehicleParams() VehicleParams {
	return VehicleParams{
		Width:              DefaultVehicleWidth,
		Length:             DefaultVehicleLength,
		SensorRange:        DefaultSensorRange,
		MaxSpeed:           DefaultMaxSpeed,
		MaxAngularVelocity: DefaultMaxAngularVelocity,
	}
}

// Validate returns an error if any parameter is not positive and finite
func (p VehicleParams) Validate() error {
	params := []struct {
		name  string
		value float64
	}{
		{"width", p.Width},
		{"length", p.Length},
		{"sensor range", p.SensorRange},
		{"max speed", p.MaxSpeed},
		{"max angular velocity", p.MaxAngularVelocity},
	}
	for _, param := range params {
		if !(param.value > 0) || math.IsInf(param.value, 1) {
			return fmt.Errorf("validate: vehicle %v must be positive and "+
				"finite, got %v", param.name, param.value)
		}
	}
	return nil
}

// VehicleState is a snapshot of a vehicle's kinematic state
type VehicleState struct {
	Pose
	Speed           float64
	AngularVelocity float64
	Outline         Outline
}

// Vehicle is a rectangular vehicle driven by linear and angular
// acceleration commands. Accelerations are held constant over each
// call to Integrate.
type Vehicle struct {
	VehicleParams

	pose            Pose
	speed           float64
	angularVelocity float64

	acceleration        float64
	angularAcceleration float64

	outline Outline
}

// NewVehicle returns a vehicle at rest at the argument pose. The
// heading is normalized into (-π, π].
func NewVehicle(pose Pose, params VehicleParams) *Vehicle {
	pose.Heading = NormalizeAngle(pose.Heading)
	v := &Vehicle{VehicleParams: params, pose: pose}
	v.updateOutline()
	return v
}

// SetAcceleration sets the linear acceleration command
func (v *Vehicle) SetAcceleration(a float64) {
	v.acceleration = a
}

// SetAngularAcceleration sets the angular acceleration command
func (v *Vehicle) SetAngularAcceleration(alpha float64) {
	v.angularAcceleration = alpha
}

// Integrate advances the vehicle dt time units under the current
// acceleration commands. Angular velocity is updated before heading,
// and speed before position, so each step moves along the new
// heading at the new speed.
func (v *Vehicle) Integrate(dt float64) {
	v.angularVelocity += v.angularAcceleration * dt
	v.angularVelocity = floatutils.Clip(v.angularVelocity,
		-v.MaxAngularVelocity, v.MaxAngularVelocity)

	// A single wrap suffices since |angularVelocity*dt| is small
	v.pose.Heading += v.angularVelocity * dt
	if v.pose.Heading > math.Pi {
		v.pose.Heading -= 2 * math.Pi
	} else if v.pose.Heading <= -math.Pi {
		v.pose.Heading += 2 * math.Pi
	}

	v.speed += v.acceleration * dt
	v.speed = floatutils.Clip(v.speed, -v.MaxSpeed, v.MaxSpeed)

	v.pose.X += v.speed * dt * math.Sin(v.pose.Heading)
	v.pose.Y += v.speed * dt * math.Cos(v.pose.Heading)

	v.updateOutline()
}

func (v *Vehicle) updateOutline() {
	sin, cos := math.Sincos(v.pose.Heading)
	halfL, halfW := v.Length/2, v.Width/2

	rear := geometry.Pt(v.pose.X-halfL*sin, v.pose.Y-halfL*cos)
	front := geometry.Pt(v.pose.X+halfL*sin, v.pose.Y+halfL*cos)
	left := geometry.Pt(-halfW*cos, halfW*sin)

	v.outline = Outline{
		geometry.Pt(rear.X+left.X, rear.Y+left.Y),
		geometry.Pt(front.X+left.X, front.Y+left.Y),
		geometry.Pt(front.X-left.X, front.Y-left.Y),
		geometry.Pt(rear.X-left.X, rear.Y-left.Y),
	}
}

// Pose returns the current pose
func (v *Vehicle) Pose() Pose {
	return v.pose
}

// Outline returns the current outline
func (v *Vehicle) Outline() Outline {
	return v.outline
}

// Speed returns the current signed speed
func (v *Vehicle) Speed() float64 {
	return v.speed
}

// AngularVelocity returns the current signed angular velocity
func (v *Vehicle) AngularVelocity() float64 {
	return v.angularVelocity
}

// Acceleration returns the current linear acceleration command
func (v *Vehicle) Acceleration() float64 {
	return v.acceleration
}

// AngularAcceleration returns the current angular acceleration command
func (v *Vehicle) AngularAcceleration() float64 {
	return v.angularAcceleration
}

// State returns a snapshot of the vehicle's kinematic state
func (v *Vehicle) State() VehicleState {
	return VehicleState{
		Pose:            v.pose,
		Speed:           v.speed,
		AngularVelocity: v.angularVelocity,
		Outline:         v.outline,
	}
}

// NormalizeAngle maps an angle in radians into (-π, π]
func NormalizeAngle(angle float64) float64 {
	angle = math.Mod(angle, 2*math.Pi)
	if angle > math.Pi {
		angle -= 2 * math.Pi
	} else if angle <= -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}
