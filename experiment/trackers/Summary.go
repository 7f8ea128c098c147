package trackers

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds summary statistics of per-episode data
type Summary struct {
	Episodes int
	Mean     float64
	StdDev   float64
	Min      float64
	Max      float64
}

// Summarize returns the summary statistics of data. Statistics of
// empty data are NaN.
func Summarize(data []float64) Summary {
	if len(data) == 0 {
		nan := math.NaN()
		return Summary{Mean: nan, StdDev: nan, Min: nan, Max: nan}
	}

	mean, std := stat.MeanStdDev(data, nil)
	if len(data) == 1 {
		std = 0
	}
	return Summary{
		Episodes: len(data),
		Mean:     mean,
		StdDev:   std,
		Min:      floats.Min(data),
		Max:      floats.Max(data),
	}
}

func (s Summary) String() string {
	return fmt.Sprintf("episodes: %d  |  mean: %.3f ± %.3f  |  min: %.3f  |  "+
		"max: %.3f", s.Episodes, s.Mean, s.StdDev, s.Min, s.Max)
}
