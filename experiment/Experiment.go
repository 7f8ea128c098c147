// Package experiment implements functionality for running an experiment
package experiment

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/samuelfneumann/avnav/agent"
	"github.com/samuelfneumann/avnav/agent/random"
	"github.com/samuelfneumann/avnav/environment/envconfig"
	"github.com/samuelfneumann/avnav/experiment/tracker"
)

// Interface Experiment outlines structs that can run experiments.
// Experiments send each environment TimeStep to Trackers, which cache
// the data in RAM to be later saved to disk. The Save() function
// will then take all cached data and save it to disk. This is usually
// performed after an experiment has been run. The Run() method will
// run all episodes until the step or episode limit is reached, or the
// context is cancelled. The RunEpisode() function will run a single
// episode.
type Experiment interface {
	Run(ctx context.Context) error

	// RunEpisode returns whether or not the experiment is finished
	RunEpisode(ctx context.Context) (bool, error)

	// Save all tracked data to disk
	Save() error

	// Adds a new tracker.Tracker to the (possibly already running)
	// experiment. Useful if you want to track data only after a
	// specified event.
	Register(t tracker.Tracker)
}

// Type is a type of experiment
type Type string

const (
	OnlineExp Type = "OnlineExperiment"
)

// Config represents a configuration of an experiment.
type Config struct {
	Type        Type              `json:"type" yaml:"type"`
	MaxSteps    int               `json:"max_steps" yaml:"max_steps"`
	MaxEpisodes int               `json:"max_episodes" yaml:"max_episodes"`
	EnvConf     envconfig.Config  `json:"environment" yaml:"environment"`
	PolicyConf  agent.TypedConfig `json:"policy" yaml:"policy"`
}

// DefaultConfig returns an online experiment running a random policy
// on the default environment for episodes episodes
func DefaultConfig(episodes int) Config {
	return Config{
		Type:        OnlineExp,
		MaxEpisodes: episodes,
		EnvConf:     envconfig.Default(),
		PolicyConf:  agent.NewTypedConfig(random.Config{}),
	}
}

// LoadConfig reads an experiment Config from a YAML or JSON file,
// chosen by the file extension. Fields missing from the file keep
// their values from DefaultConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("loadConfig: could not read config: %v",
			err)
	}

	c := DefaultConfig(0)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &c)

	case ".json":
		err = json.Unmarshal(data, &c)

	default:
		return Config{}, fmt.Errorf("loadConfig: unknown config extension %q",
			ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("loadConfig: could not decode %v: %v",
			path, err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate returns an error if the Config cannot create experiments
func (c Config) Validate() error {
	if c.Type != OnlineExp {
		return fmt.Errorf("validate: no such experiment type %q", c.Type)
	}
	if c.MaxSteps < 0 || c.MaxEpisodes < 0 {
		return fmt.Errorf("validate: step and episode limits must be "+
			"non-negative, got %v and %v", c.MaxSteps, c.MaxEpisodes)
	}
	if c.MaxSteps == 0 && c.MaxEpisodes == 0 {
		return fmt.Errorf("validate: one of max_steps or max_episodes " +
			"must be set")
	}

	if err := c.EnvConf.Validate(); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	if err := c.PolicyConf.Validate(); err != nil {
		return fmt.Errorf("validate: %v", err)
	}
	return nil
}

// CreateExp creates a new experiment with its own environment and
// policy, both seeded with seed
func (c Config) CreateExp(seed uint64, logger *zap.Logger,
	t ...tracker.Tracker) (Experiment, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("createExp: %w", err)
	}

	env, _, err := c.EnvConf.Create(seed)
	if err != nil {
		return nil, fmt.Errorf("createExp: could not create environment: %w",
			err)
	}

	policy, err := c.PolicyConf.CreatePolicy(env, seed)
	if err != nil {
		return nil, fmt.Errorf("createExp: could not create policy: %v", err)
	}

	switch c.Type {
	case OnlineExp:
		return NewOnline(env, policy, c.MaxSteps, c.MaxEpisodes, logger, t...),
			nil
	}

	return nil, fmt.Errorf("createExp: no such experiment type %v", c.Type)
}
