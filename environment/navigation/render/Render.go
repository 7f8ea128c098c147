// Package render draws navigation environments to images
package render

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"github.com/samuelfneumann/avnav/environment/navigation"
	"github.com/samuelfneumann/avnav/geometry"
)

// Scene is the view of an environment needed to draw it
type Scene interface {
	Arena() navigation.Arena
	Obstacles() []geometry.Polygon
	Goal() geometry.Point
	GoalRadius() float64
	Vehicle() navigation.VehicleState
	SensorSegments() [navigation.NumSensors]geometry.Segment
	Contact() []geometry.Polygon
	Collided() bool
}

// Renderer draws scenes. World units are multiplied by Scale to get
// pixels, and the y axis points up.
type Renderer struct {
	Scale float64

	background    color.Color
	obstacleShade color.Color
	goalShade     color.Color
	vehicleShade  color.Color
	collidedShade color.Color
	sensorShade   color.Color
	contactShade  color.Color
}

// New returns a new Renderer drawing scale pixels per world unit
func New(scale float64) (*Renderer, error) {
	if !(scale > 0) {
		return nil, fmt.Errorf("new: scale must be positive, got %v", scale)
	}

	return &Renderer{
		Scale:         scale,
		background:    color.RGBA{R: 245, G: 245, B: 240, A: 255},
		obstacleShade: color.RGBA{R: 80, G: 80, B: 90, A: 255},
		goalShade:     color.RGBA{R: 90, G: 190, B: 90, A: 160},
		vehicleShade:  color.RGBA{R: 60, G: 110, B: 200, A: 255},
		collidedShade: color.RGBA{R: 200, G: 60, B: 60, A: 255},
		sensorShade:   color.RGBA{R: 230, G: 150, B: 30, A: 200},
		contactShade:  color.RGBA{R: 255, G: 0, B: 0, A: 255},
	}, nil
}

// Draw returns a new drawing context holding the scene
func (r *Renderer) Draw(s Scene) *gg.Context {
	arena := s.Arena()
	w := int(arena.Width*r.Scale + 0.5)
	h := int(arena.Height*r.Scale + 0.5)

	dc := gg.NewContext(w, h)
	dc.SetColor(r.background)
	dc.Clear()

	dc.InvertY()
	dc.Scale(r.Scale, r.Scale)

	// Obstacles
	dc.SetColor(r.obstacleShade)
	for _, o := range s.Obstacles() {
		polygonPath(dc, o)
		dc.Fill()
	}

	// Goal
	goal := s.Goal()
	dc.SetColor(r.goalShade)
	dc.DrawCircle(goal.X, goal.Y, s.GoalRadius())
	dc.Fill()

	// Sensors
	dc.SetColor(r.sensorShade)
	dc.SetLineWidth(1)
	for _, seg := range s.SensorSegments() {
		dc.DrawLine(seg.A.X, seg.A.Y, seg.B.X, seg.B.Y)
	}
	dc.Stroke()

	// Vehicle
	vehicle := s.Vehicle()
	if s.Collided() {
		dc.SetColor(r.collidedShade)
	} else {
		dc.SetColor(r.vehicleShade)
	}
	polygonPath(dc, vehicle.Outline.Polygon())
	dc.Fill()

	// Mark the front of the vehicle
	front := geometry.Pt(
		(vehicle.Outline[1].X+vehicle.Outline[2].X)/2,
		(vehicle.Outline[1].Y+vehicle.Outline[2].Y)/2,
	)
	dc.SetColor(color.White)
	dc.DrawCircle(front.X, front.Y, 1.5)
	dc.Fill()

	// Contact regions
	dc.SetColor(r.contactShade)
	for _, region := range s.Contact() {
		polygonPath(dc, region)
		dc.Fill()
	}

	return dc
}

// Image draws the scene to an image
func (r *Renderer) Image(s Scene) image.Image {
	return r.Draw(s).Image()
}

// SavePNG draws the scene and saves it as a PNG at path
func (r *Renderer) SavePNG(s Scene, path string) error {
	if err := r.Draw(s).SavePNG(path); err != nil {
		return fmt.Errorf("savePNG: %v", err)
	}
	return nil
}

// EncodePNG draws the scene and writes it to w as a PNG
func (r *Renderer) EncodePNG(s Scene, w io.Writer) error {
	if err := r.Draw(s).EncodePNG(w); err != nil {
		return fmt.Errorf("encodePNG: %v", err)
	}
	return nil
}

func polygonPath(dc *gg.Context, p geometry.Polygon) {
	dc.NewSubPath()
	for _, v := range p {
		dc.LineTo(v.X, v.Y)
	}
	dc.ClosePath()
}
