// Package random implements a policy selecting discrete actions
// uniformly at random
package random

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/avnav/agent"
	"github.com/samuelfneumann/avnav/environment"
	ts "github.com/samuelfneumann/avnav/timestep"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

func init() {
	agent.Register(agent.Random, Config{})
}

// Config configures a Random policy. If Actions is empty, all actions
// in the environment's action spec are selected from.
type Config struct {
	Actions []int `json:"actions,omitempty" yaml:"actions,omitempty"`
}

// CreatePolicy creates a new Random policy for env
func (c Config) CreatePolicy(env environment.Environment,
	seed uint64) (agent.Policy, error) {
	return New(env, c.Actions, seed)
}

// Type returns the type of policy the Config creates
func (c Config) Type() agent.Type {
	return agent.Random
}

// Validate returns an error if the Config lists an action twice
func (c Config) Validate() error {
	seen := make(map[int]bool, len(c.Actions))
	for _, a := range c.Actions {
		if seen[a] {
			return fmt.Errorf("validate: action %v listed twice", a)
		}
		seen[a] = true
	}
	return nil
}

// Random implements a policy selecting uniformly at random from a set
// of discrete actions
type Random struct {
	actions []int
	dist    distuv.Categorical
	eval    bool
}

// New returns a new Random policy for env, selecting from actions. If
// actions is empty, all actions in the environment's action spec are
// selected from.
func New(env environment.Environment, actions []int,
	seed uint64) (*Random, error) {
	spec := env.ActionSpec()

	// Ensure actions are 1-dimensional
	if spec.Shape.Len() != 1 {
		return nil, fmt.Errorf("new: random policy can only be used with " +
			"1-dimensional actions")
	}

	// Ensure actions are discrete
	if spec.Cardinality != environment.Discrete {
		return nil, fmt.Errorf("new: random policy can only be used with " +
			"discrete actions")
	}

	if len(actions) == 0 {
		min := int(spec.LowerBound.AtVec(0))
		max := int(spec.UpperBound.AtVec(0))
		for a := min; a <= max; a++ {
			actions = append(actions, a)
		}
	} else {
		actions = append([]int(nil), actions...)
		for _, a := range actions {
			if !spec.Contains(mat.NewVecDense(1, []float64{float64(a)})) {
				return nil, fmt.Errorf("new: action %v not in action spec", a)
			}
		}
	}

	probs := make([]float64, len(actions))
	for i := range probs {
		probs[i] = 1.0 / float64(len(actions))
	}

	return &Random{
		actions: actions,
		dist:    distuv.NewCategorical(probs, rand.NewSource(seed)),
	}, nil
}

// SelectAction selects an action uniformly at random. The TimeStep is
// ignored.
func (r *Random) SelectAction(_ ts.TimeStep) *mat.VecDense {
	action := r.actions[int(r.dist.Rand())]
	return mat.NewVecDense(1, []float64{float64(action)})
}

// Eval sets the policy to evaluation mode
func (r *Random) Eval() { r.eval = true }

// Train sets the policy to training mode
func (r *Random) Train() { r.eval = false }

// IsEval returns whether the policy is in evaluation mode
func (r *Random) IsEval() bool { return r.eval }
