// Package envconfig provides configuration structs for configuring
// navigation environments with physical parameters, rewards, and
// tasks. Configurations are JSON and YAML serializable.
package envconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r1"
	"gopkg.in/yaml.v3"

	env "github.com/samuelfneumann/avnav/environment"
	"github.com/samuelfneumann/avnav/environment/navigation"
	"github.com/samuelfneumann/avnav/geometry"
	ts "github.com/samuelfneumann/avnav/timestep"
)

// ErrInvalidConfig reports a configuration which cannot be used to
// create an environment
var ErrInvalidConfig = errors.New("invalid config")

// IsInvalidConfig returns whether err reports an unusable
// configuration
func IsInvalidConfig(err error) bool {
	return errors.Is(err, ErrInvalidConfig)
}

// ColliderName stores the name of intersection backends that can be
// configured with this package
type ColliderName string

// Colliders available for configuration
const (
	Exact ColliderName = "exact"
	Box2D ColliderName = "box2d"
)

// Rewards configures the sparse reward of the Reach task
type Rewards struct {
	Collision float64 `json:"collision" yaml:"collision"`
	Goal      float64 `json:"goal" yaml:"goal"`
	Step      float64 `json:"step" yaml:"step"`
}

// Config implements a specific configuration of the navigation
// environment
type Config struct {
	Arena         navigation.Arena         `json:"arena" yaml:"arena"`
	Vehicle       navigation.VehicleParams `json:"vehicle" yaml:"vehicle"`
	Rewards       Rewards                  `json:"rewards" yaml:"rewards"`
	EpisodeCutoff int                      `json:"episode_cutoff" yaml:"episode_cutoff"`
	Discount      float64                  `json:"discount" yaml:"discount"`
	Collider      ColliderName             `json:"collider" yaml:"collider"`

	// Start optionally overrides the intervals starting states are
	// drawn from: x, y, heading, goal x, goal y. If empty, the
	// arena's start bounds are used.
	Start []r1.Interval `json:"start,omitempty" yaml:"start,omitempty"`
}

// Default returns the default navigation configuration
func Default() Config {
	return Config{
		Arena:   navigation.DefaultArena(),
		Vehicle: navigation.DefaultVehicleParams(),
		Rewards: Rewards{
			Collision: navigation.CollisionReward,
			Goal:      navigation.GoalReward,
			Step:      navigation.StepReward,
		},
		EpisodeCutoff: navigation.DefaultCutoff,
		Discount:      1.0,
		Collider:      Exact,
	}
}

// Load reads a Config from a YAML or JSON file, chosen by the file
// extension. Fields missing from the file keep their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load: could not read config: %v", err)
	}

	c := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &c)

	case ".json":
		err = json.Unmarshal(data, &c)

	default:
		return Config{}, fmt.Errorf("load: unknown config extension %q: %w",
			ext, ErrInvalidConfig)
	}
	if err != nil {
		return Config{}, fmt.Errorf("load: could not decode %v: %v: %w", path,
			err, ErrInvalidConfig)
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Save writes the Config to a YAML or JSON file, chosen by the file
// extension
func (c Config) Save(path string) error {
	var data []byte
	var err error

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)

	case ".json":
		data, err = json.MarshalIndent(c, "", "\t")

	default:
		return fmt.Errorf("save: unknown config extension %q: %w", ext,
			ErrInvalidConfig)
	}
	if err != nil {
		return fmt.Errorf("save: could not encode config: %v", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save: could not write config: %v", err)
	}
	return nil
}

// Validate returns an error wrapping ErrInvalidConfig if the Config
// cannot be used to create an environment
func (c Config) Validate() error {
	if err := c.Arena.Validate(); err != nil {
		return fmt.Errorf("validate: %v: %w", err, ErrInvalidConfig)
	}
	if err := c.Vehicle.Validate(); err != nil {
		return fmt.Errorf("validate: %v: %w", err, ErrInvalidConfig)
	}

	if c.EpisodeCutoff <= 0 {
		return fmt.Errorf("validate: episode cutoff must be positive, got "+
			"%v: %w", c.EpisodeCutoff, ErrInvalidConfig)
	}
	if c.Discount < 0 || c.Discount > 1 {
		return fmt.Errorf("validate: discount %v ∉ [0, 1]: %w", c.Discount,
			ErrInvalidConfig)
	}

	for _, r := range []float64{c.Rewards.Collision, c.Rewards.Goal,
		c.Rewards.Step} {
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return fmt.Errorf("validate: rewards must be finite, got %v: %w",
				c.Rewards, ErrInvalidConfig)
		}
	}

	if _, err := c.collider(); err != nil {
		return err
	}

	if len(c.Start) != 0 && len(c.Start) != navigation.StartDims {
		return fmt.Errorf("validate: need %d start intervals, got %d: %w",
			navigation.StartDims, len(c.Start), ErrInvalidConfig)
	}
	for i, interval := range c.Start {
		if interval.Max < interval.Min {
			return fmt.Errorf("validate: start interval %d has max < min: %w",
				i, ErrInvalidConfig)
		}
	}

	return nil
}

func (c Config) collider() (geometry.Collider, error) {
	switch c.Collider {
	case Exact, "":
		return geometry.NewExact(), nil

	case Box2D:
		return geometry.NewBox2D(), nil
	}

	return nil, fmt.Errorf("collider: no such collider %q: %w", c.Collider,
		ErrInvalidConfig)
}

// Starter returns the Starter described by the Config, seeded with
// seed
func (c Config) Starter(seed uint64) env.Starter {
	bounds := c.Start
	if len(bounds) == 0 {
		bounds = c.Arena.StartBounds()
	}
	return env.NewUniformStarter(bounds, rand.NewSource(seed))
}

// Create returns the environment described by the Config as well as
// the first timestep of the environment. Environments created with
// the same Config and seed produce identical episodes.
func (c Config) Create(seed uint64) (*navigation.Navigation, ts.TimeStep,
	error) {
	if err := c.Validate(); err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("create: %w", err)
	}

	collider, err := c.collider()
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("create: %w", err)
	}

	reward := navigation.SparseReward(c.Rewards.Collision, c.Rewards.Goal,
		c.Rewards.Step)
	task := navigation.NewReach(c.Starter(seed), c.EpisodeCutoff, reward)

	n, step, err := navigation.New(task, c.Arena, c.Vehicle, collider,
		c.Discount)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("create: %w", err)
	}
	return n, step, nil
}
