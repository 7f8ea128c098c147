package trackers

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/samuelfneumann/avnav/experiment/tracker"
	ts "github.com/samuelfneumann/avnav/timestep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// episode returns the timesteps of an episode with the given rewards
// on each step after the first, ending with end
func episode(end ts.EndType, rewards ...float64) []ts.TimeStep {
	steps := []ts.TimeStep{ts.New(ts.First, 0, 1, nil, 0)}
	for i, r := range rewards {
		stepType := ts.Mid
		if i == len(rewards)-1 {
			stepType = ts.Last
		}
		step := ts.New(stepType, r, 1, nil, i+1)
		if stepType == ts.Last {
			step.SetEnd(end)
		}
		steps = append(steps, step)
	}
	return steps
}

func trackAll(t tracker.Tracker, steps ...[]ts.TimeStep) {
	for _, ep := range steps {
		for _, step := range ep {
			t.Track(step)
		}
	}
}

func TestReturn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "return.bin")
	r := NewReturn(path)

	trackAll(r,
		episode(ts.Timeout, -1, -1, -1),
		episode(ts.GoalReached, -1, 1000),
		episode(ts.Collision, -1000),
	)
	assert.Equal(t, []float64{-3, 999, -1000}, r.Data())

	require.NoError(t, r.Save())
	data, err := tracker.LoadData(path)
	require.NoError(t, err)
	assert.Equal(t, r.Data(), data)
}

func TestReturnDropsUnfinishedEpisode(t *testing.T) {
	r := NewReturn(filepath.Join(t.TempDir(), "return.bin"))

	unfinished := episode(ts.Timeout, -1, -1, -1)[:2]
	trackAll(r, unfinished, episode(ts.Timeout, -5))
	assert.Equal(t, []float64{-5}, r.Data())
}

func TestReturnNonSequentialPanics(t *testing.T) {
	r := NewReturn("")
	steps := episode(ts.Timeout, -1, -1, -1)

	r.Track(steps[0])
	assert.Panics(t, func() { r.Track(steps[2]) })
}

func TestEpisodeLength(t *testing.T) {
	path := filepath.Join(t.TempDir(), "length.bin")
	l := NewEpisodeLength(path)

	trackAll(l, episode(ts.Timeout, -1, -1, -1), episode(ts.Collision, -1))
	assert.Equal(t, []float64{3, 1}, l.Data())

	require.NoError(t, l.Save())
	data, err := tracker.LoadData(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1}, data)
}

func TestEndReasons(t *testing.T) {
	e := NewEndReasons(filepath.Join(t.TempDir(), "ends.bin"))

	trackAll(e,
		episode(ts.Timeout, -1),
		episode(ts.Collision, -1),
		episode(ts.Timeout, -1),
	)
	assert.Equal(t, []ts.EndType{ts.Timeout, ts.Collision, ts.Timeout},
		e.Data())
	assert.Equal(t, map[ts.EndType]int{ts.Timeout: 2, ts.Collision: 1},
		e.Counts())
}

func TestSaveErrors(t *testing.T) {
	r := NewReturn(filepath.Join(t.TempDir(), "missing", "return.bin"))
	assert.Error(t, r.Save())

	_, err := tracker.LoadData(filepath.Join(t.TempDir(), "none.bin"))
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{1, 2, 3, 4})
	assert.Equal(t, 4, s.Episodes)
	assert.InDelta(t, 2.5, s.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(5.0/3.0), s.StdDev, 1e-12)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 4.0, s.Max)

	s = Summarize([]float64{7})
	assert.Zero(t, s.StdDev)
	assert.Equal(t, 7.0, s.Mean)

	s = Summarize(nil)
	assert.Zero(t, s.Episodes)
	assert.True(t, math.IsNaN(s.Mean))
	assert.Contains(t, Summarize([]float64{1}).String(), "episodes: 1")
}
