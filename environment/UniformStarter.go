package environment

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat/distmv"
)

// UniformStarter samples starting states uniformly from a box given
// by one interval per feature. Degenerate intervals (Min == Max) pin
// their feature to a constant.
type UniformStarter struct {
	bounds []r1.Interval
	rand   *distmv.Uniform
}

// NewUniformStarter returns a UniformStarter drawing from src. The
// source is owned by the starter from this point on; callers wanting
// reproducible episodes should pass a freshly seeded source.
func NewUniformStarter(bounds []r1.Interval, src rand.Source) *UniformStarter {
	b := make([]r1.Interval, len(bounds))
	copy(b, bounds)

	return &UniformStarter{
		bounds: b,
		rand:   distmv.NewUniform(b, src),
	}
}

// NewSeededUniformStarter is a convenience wrapper around
// NewUniformStarter which seeds a new source
func NewSeededUniformStarter(bounds []r1.Interval, seed uint64) *UniformStarter {
	return NewUniformStarter(bounds, rand.NewSource(seed))
}

// Start returns a starting state vector
func (u *UniformStarter) Start() *mat.VecDense {
	sample := u.rand.Rand(nil)

	// distmv.Uniform draws Min + (Max-Min)*U which already handles
	// degenerate intervals, but pin them explicitly so that constant
	// features are bit-for-bit the configured value.
	for i, b := range u.bounds {
		if b.Min == b.Max {
			sample[i] = b.Min
		}
	}
	return mat.NewVecDense(len(sample), sample)
}

// Bounds returns the intervals the starter samples from
func (u *UniformStarter) Bounds() []r1.Interval {
	b := make([]r1.Interval, len(u.bounds))
	copy(b, u.bounds)
	return b
}
