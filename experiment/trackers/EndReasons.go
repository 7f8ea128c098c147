package trackers

import (
	"github.com/samuelfneumann/avnav/experiment/tracker"
	ts "github.com/samuelfneumann/avnav/timestep"
)

// EndReasons tracks and saves why each episode in an experiment ended
type EndReasons struct {
	reasons  []ts.EndType
	filename string
}

// NewEndReasons returns a new EndReasons tracker which will save its
// data at the specified location filename
func NewEndReasons(filename string) *EndReasons {
	return &EndReasons{filename: filename}
}

// Track caches the end reason if t is the last timestep in its episode
func (e *EndReasons) Track(t ts.TimeStep) {
	if t.Last() {
		e.reasons = append(e.reasons, t.EndType())
	}
}

// Data returns the end reasons of all finished episodes
func (e *EndReasons) Data() []ts.EndType {
	return append([]ts.EndType(nil), e.reasons...)
}

// Counts returns the number of episodes that ended for each reason
func (e *EndReasons) Counts() map[ts.EndType]int {
	counts := make(map[ts.EndType]int)
	for _, r := range e.reasons {
		counts[r]++
	}
	return counts
}

// Save saves the data tracked by the EndReasons Tracker to disk.
func (e *EndReasons) Save() error {
	return tracker.Save(e.filename, e.reasons)
}
