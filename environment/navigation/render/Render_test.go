package render

import (
	"bytes"
	"image/png"
	"math"
	"path/filepath"
	"testing"

	env "github.com/samuelfneumann/avnav/environment"
	"github.com/samuelfneumann/avnav/environment/navigation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r1"
)

func newScene(t *testing.T, x, y, heading float64) *navigation.Navigation {
	t.Helper()

	bounds := make([]r1.Interval, 0, navigation.StartDims)
	for _, v := range []float64{x, y, heading, 150, 150} {
		bounds = append(bounds, r1.Interval{Min: v, Max: v})
	}
	s := env.NewSeededUniformStarter(bounds, 1)

	n, _, err := navigation.New(navigation.NewReach(s, 10, nil),
		navigation.DefaultArena(), navigation.DefaultVehicleParams(), nil, 1)
	require.NoError(t, err)
	return n
}

func TestImageSize(t *testing.T) {
	r, err := New(2)
	require.NoError(t, err)

	img := r.Image(newScene(t, 100, 100, 0))
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 400, img.Bounds().Dy())

	_, err = New(0)
	assert.Error(t, err)
}

func TestImageContents(t *testing.T) {
	r, err := New(1)
	require.NoError(t, err)

	img := r.Image(newScene(t, 100, 100, 0))

	// The y axis is flipped, world (x, y) is pixel (x, H-y)
	pixel := func(x, y float64) (uint32, uint32, uint32) {
		red, green, blue, _ := img.At(int(x), 200-int(y)-1).RGBA()
		return red >> 8, green >> 8, blue >> 8
	}

	red, green, blue := pixel(100, 100)
	assert.Equal(t, [3]uint32{60, 110, 200}, [3]uint32{red, green, blue},
		"vehicle")

	red, green, blue = pixel(2, 100)
	assert.Equal(t, [3]uint32{80, 80, 90}, [3]uint32{red, green, blue},
		"wall")

	red, green, blue = pixel(50, 160)
	assert.Equal(t, [3]uint32{245, 245, 240}, [3]uint32{red, green, blue},
		"background")
}

func TestCollidedVehicle(t *testing.T) {
	r, err := New(1)
	require.NoError(t, err)

	// Overlapping the bottom wall
	n := newScene(t, 100, 12, math.Pi)
	require.True(t, n.Collided())
	require.NotEmpty(t, n.Contact())

	img := r.Image(n)
	red, green, blue, _ := img.At(100, 200-20-1).RGBA()
	assert.Equal(t, [3]uint32{200, 60, 60},
		[3]uint32{red >> 8, green >> 8, blue >> 8})
}

func TestEncodeAndSavePNG(t *testing.T) {
	r, err := New(1)
	require.NoError(t, err)
	n := newScene(t, 60, 80, 1)

	var buf bytes.Buffer
	require.NoError(t, r.EncodePNG(n, &buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())

	path := filepath.Join(t.TempDir(), "frame.png")
	assert.NoError(t, r.SavePNG(n, path))
	assert.Error(t, r.SavePNG(n, filepath.Join(t.TempDir(), "missing",
		"frame.png")))
}
