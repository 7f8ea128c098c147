package navigation

import (
	"fmt"

	env "github.com/samuelfneumann/avnav/environment"
)

const (
	// ActionsPerAxis is the number of discrete acceleration levels for
	// each of the linear and angular acceleration commands
	ActionsPerAxis int = 11

	MinDiscreteAction int = 0
	MaxDiscreteAction int = ActionsPerAxis*ActionsPerAxis - 1

	// ActionDims is the dimensionality of actions passed to Step
	ActionDims int = 1

	// Acceleration levels are centred on this index, which maps to
	// zero acceleration
	neutralLevel int = ActionsPerAxis / 2

	linearScale  float64 = 2
	angularScale float64 = 200
)

// DecodeAction maps a discrete action onto linear and angular
// acceleration commands. The action enumerates an 11 x 11 grid, with
// the linear level a mod 11 and the angular level a div 11:
//
//	linear  = (a mod 11 - 5) / 2     in [-2.5, 2.5]
//	angular = (a div 11 - 5) / 200   in [-0.025, 0.025]
//
// Actions outside [MinDiscreteAction, MaxDiscreteAction] return an
// error wrapping environment.ErrInvalidAction.
func DecodeAction(action int) (linear, angular float64, err error) {
	if action < MinDiscreteAction || action > MaxDiscreteAction {
		return 0, 0, fmt.Errorf("decodeAction: action %v ∉ [%v, %v]: %w",
			action, MinDiscreteAction, MaxDiscreteAction, env.ErrInvalidAction)
	}

	n1 := action % ActionsPerAxis
	n2 := action / ActionsPerAxis

	linear = float64(n1-neutralLevel) / linearScale
	angular = float64(n2-neutralLevel) / angularScale
	return linear, angular, nil
}

// EncodeAction returns the discrete action selecting the given linear
// and angular acceleration levels, each in [0, ActionsPerAxis)
func EncodeAction(linearLevel, angularLevel int) (int, error) {
	if linearLevel < 0 || linearLevel >= ActionsPerAxis ||
		angularLevel < 0 || angularLevel >= ActionsPerAxis {
		return 0, fmt.Errorf("encodeAction: levels (%v, %v) ∉ [0, %v): %w",
			linearLevel, angularLevel, ActionsPerAxis, env.ErrInvalidAction)
	}
	return angularLevel*ActionsPerAxis + linearLevel, nil
}

// NoOp is the action which commands no acceleration
const NoOp int = neutralLevel*ActionsPerAxis + neutralLevel

// PossibleActions returns all legal discrete actions in increasing
// order
func PossibleActions() []int {
	actions := make([]int, 0, MaxDiscreteAction-MinDiscreteAction+1)
	for a := MinDiscreteAction; a <= MaxDiscreteAction; a++ {
		actions = append(actions, a)
	}
	return actions
}
