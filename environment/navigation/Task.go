package navigation

import (
	"math"

	env "github.com/samuelfneumann/avnav/environment"
	ts "github.com/samuelfneumann/avnav/timestep"
	"gonum.org/v1/gonum/mat"
)

const (
	CollisionReward float64 = -1000
	GoalReward      float64 = 1000
	StepReward      float64 = -1

	DefaultCutoff int = 100
)

// RewardFunc computes the reward of a transition from whether the
// vehicle collided with an obstacle and whether it reached the goal
type RewardFunc func(collided, atGoal bool) float64

// SparseReward returns a RewardFunc paying collision on a collision,
// goal on reaching the goal without colliding, and step otherwise
func SparseReward(collision, goal, step float64) RewardFunc {
	return func(collided, atGoal bool) float64 {
		if collided {
			return collision
		} else if atGoal {
			return goal
		}
		return step
	}
}

// navigationTask is a Task which needs access to the environment it
// is used in to compute rewards and detect episode ends
type navigationTask interface {
	env.Task
	registerEnv(*Navigation)
}

// Reach implements the task of driving the vehicle to the goal without
// touching an obstacle.
//
// Rewards are given by a RewardFunc, by default SparseReward with
// CollisionReward, GoalReward, and StepReward. Rewards do not depend
// on the step limit.
//
// Episodes end when the vehicle collides, when it reaches the goal, or
// when the step counter exceeds the cutoff, checked in that order.
type Reach struct {
	env.Starter
	reward RewardFunc

	collisionEnder *env.FunctionEnder
	goalEnder      *env.FunctionEnder
	stepLimit      env.StepLimit

	env *Navigation
}

// NewReach creates a new Reach task. Starting states are drawn from s,
// episodes are cut off after cutoff steps, and rewards are computed by
// reward. If reward is nil the default sparse reward is used.
func NewReach(s env.Starter, cutoff int, reward RewardFunc) *Reach {
	if reward == nil {
		reward = SparseReward(CollisionReward, GoalReward, StepReward)
	}

	r := &Reach{
		Starter:   s,
		reward:    reward,
		stepLimit: env.NewStepLimit(cutoff),
	}

	r.collisionEnder = env.NewFunctionEnder(func(*mat.VecDense) bool {
		return r.env != nil && r.env.Collided()
	}, ts.Collision)

	r.goalEnder = env.NewFunctionEnder(func(*mat.VecDense) bool {
		return r.env != nil && r.env.ReachedGoal()
	}, ts.GoalReached)

	return r
}

func (r *Reach) registerEnv(n *Navigation) {
	r.env = n
}

// Cutoff returns the step limit of the task
func (r *Reach) Cutoff() int {
	return r.stepLimit.Limit()
}

// GetReward returns the reward for the transition into the current
// environment state
func (r *Reach) GetReward(_, _, _ mat.Vector) float64 {
	if r.env == nil {
		panic("getReward: task is not registered with an environment")
	}
	return r.reward(r.env.Collided(), r.env.ReachedGoal())
}

// AtGoal returns whether an observation places the vehicle in the
// goal region of the registered environment
func (r *Reach) AtGoal(state mat.Matrix) bool {
	rows, cols := state.Dims()
	if rows*cols != ObservationDims || r.env == nil {
		return false
	}

	var distance float64
	if cols == 1 {
		distance = state.At(GoalDistanceIndex, 0)
	} else {
		distance = state.At(0, GoalDistanceIndex)
	}
	return distance < 2*r.env.GoalRadius()
}

// End determines if a timestep is the last timestep in the episode.
// If so, it changes the TimeStep's StepType to timestep.Last and
// records the reason. This function returns true if the argument
// timestep is the last timestep in the episode and false otherwise.
func (r *Reach) End(t *ts.TimeStep) bool {
	if end := r.collisionEnder.End(t); end {
		return true
	}

	if end := r.goalEnder.End(t); end {
		return true
	}

	return r.stepLimit.End(t)
}

// Min returns the minimum attainable reward over all timesteps
func (r *Reach) Min() float64 {
	return math.Min(
		math.Min(r.reward(true, true), r.reward(true, false)),
		math.Min(r.reward(false, true), r.reward(false, false)),
	)
}

// Max returns the maximum attainable reward over all timesteps
func (r *Reach) Max() float64 {
	return math.Max(
		math.Max(r.reward(true, true), r.reward(true, false)),
		math.Max(r.reward(false, true), r.reward(false, false)),
	)
}
