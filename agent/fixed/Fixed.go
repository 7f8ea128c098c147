// Package fixed implements a policy which always selects the same
// action
package fixed

import (
	"fmt"

	"github.com/samuelfneumann/avnav/agent"
	"github.com/samuelfneumann/avnav/environment"
	ts "github.com/samuelfneumann/avnav/timestep"
	"gonum.org/v1/gonum/mat"
)

func init() {
	agent.Register(agent.Fixed, Config{})
}

// Config configures a Fixed policy
type Config struct {
	Action []float64 `json:"action" yaml:"action"`
}

// CreatePolicy creates a new Fixed policy for env. The seed is
// ignored.
func (c Config) CreatePolicy(env environment.Environment,
	_ uint64) (agent.Policy, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("createPolicy: %v", err)
	}
	return New(env, mat.NewVecDense(len(c.Action), c.Action))
}

// Type returns the type of policy the Config creates
func (c Config) Type() agent.Type {
	return agent.Fixed
}

// Validate returns an error if the Config has no action
func (c Config) Validate() error {
	if len(c.Action) == 0 {
		return fmt.Errorf("validate: fixed policy needs an action")
	}
	return nil
}

// Fixed implements a policy which selects the same action in every
// state
type Fixed struct {
	action *mat.VecDense
	eval   bool
}

// New returns a new Fixed policy selecting action, which must lie in
// the environment's action spec
func New(env environment.Environment, action mat.Vector) (*Fixed, error) {
	if action.Len() == 0 || !env.ActionSpec().Contains(action) {
		return nil, fmt.Errorf("new: action %v not in action spec",
			mat.Formatted(action.T()))
	}
	return &Fixed{action: mat.VecDenseCopyOf(action)}, nil
}

// SelectAction returns a copy of the fixed action
func (f *Fixed) SelectAction(_ ts.TimeStep) *mat.VecDense {
	return mat.VecDenseCopyOf(f.action)
}

// Eval sets the policy to evaluation mode
func (f *Fixed) Eval() { f.eval = true }

// Train sets the policy to training mode
func (f *Fixed) Train() { f.eval = false }

// IsEval returns whether the policy is in evaluation mode
func (f *Fixed) IsEval() bool { return f.eval }
