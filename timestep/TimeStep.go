// Package timestep implements timesteps of the agent-environment interaction
package timestep

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// StepType denotes the type of step that a TimeStep can be, either  first
// environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// EndType describes why an episode ended. Only TimeSteps with StepType
// Last carry a meaningful EndType.
type EndType int

const (
	// Unfinished is the EndType of every TimeStep that is not the last
	// in its episode
	Unfinished EndType = iota

	// Collision ends an episode when the vehicle outline touches an
	// obstacle
	Collision

	// GoalReached ends an episode when the vehicle reaches the goal
	GoalReached

	// Timeout ends an episode when the step limit is exceeded
	Timeout
)

func (e EndType) String() string {
	switch e {
	case Collision:
		return "Collision"
	case GoalReached:
		return "GoalReached"
	case Timeout:
		return "Timeout"
	default:
		return "Unfinished"
	}
}

// TimeStep packages together a single timestep in an environment
type TimeStep struct {
	StepType
	Reward      float64
	Discount    float64
	Observation *mat.VecDense
	Number      int

	endType EndType
}

// New constructs a new TimeStep
func New(t StepType, r, d float64, o *mat.VecDense, n int) TimeStep {
	return TimeStep{
		StepType:    t,
		Reward:      r,
		Discount:    d,
		Observation: o,
		Number:      n,
	}
}

// First returns whether a TimeStep is the first in an environment
func (t *TimeStep) First() bool {
	return t.StepType == First
}

// Mid returns whether a TimeStep is a middle step in an environment
func (t *TimeStep) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a TimeStep is the last step in an environment
func (t *TimeStep) Last() bool {
	return t.StepType == Last
}

// SetEnd records the reason the episode ended. The first reason set
// wins, so that enders checked in priority order do not overwrite a
// higher priority reason.
func (t *TimeStep) SetEnd(e EndType) {
	if t.endType == Unfinished {
		t.endType = e
	}
}

// EndType returns why the episode ended, or Unfinished if the TimeStep
// is not the last in its episode.
func (t *TimeStep) EndType() EndType {
	return t.endType
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  Reward:  %.2f  |  Discount: %.2f  |  " +
		"Step Number:  %v  |  End: %v"

	return fmt.Sprintf(str, t.StepType, t.Reward, t.Discount, t.Number,
		t.endType)
}
