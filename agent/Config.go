package agent

import (
	"github.com/samuelfneumann/avnav/environment"
)

// Config represents a configuration for creating a policy
type Config interface {
	// CreatePolicy creates the policy that the config describes
	CreatePolicy(env environment.Environment, seed uint64) (Policy, error)

	// Type returns the Type of policies the Config creates
	Type() Type

	// Validate returns an error describing whether or not the
	// configuration is valid or not.
	Validate() error
}
