package agent

import (
	"encoding/json"
	"fmt"

	"github.com/samuelfneumann/avnav/environment"
	"gopkg.in/yaml.v3"
)

// TypedConfig implements functionality for typing a Config. In this
// way, a Config can explicitly have its type stored so that when
// deserializing the Config, we can deserialize it into its concrete
// type without knowing beforehand or declaring beforehand a variable
// of its concrete type.
type TypedConfig struct {
	Type   Type   `json:"type" yaml:"type"`
	Config Config `json:"config" yaml:"config"`
}

// NewTypedConfig types the argument Config and returns it as a
// TypedConfig which explicitly holds its Type.
func NewTypedConfig(c Config) TypedConfig {
	return TypedConfig{Type: c.Type(), Config: c}
}

// CreatePolicy creates the policy described by the typed Config
func (t TypedConfig) CreatePolicy(env environment.Environment,
	seed uint64) (Policy, error) {
	if t.Config == nil {
		return nil, fmt.Errorf("createPolicy: no config for type %q", t.Type)
	}
	return t.Config.CreatePolicy(env, seed)
}

// Validate validates the typed Config
func (t TypedConfig) Validate() error {
	if t.Config == nil {
		return fmt.Errorf("validate: no config for type %q", t.Type)
	}
	if t.Config.Type() != t.Type {
		return fmt.Errorf("validate: config of type %q typed as %q",
			t.Config.Type(), t.Type)
	}
	return t.Config.Validate()
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (t *TypedConfig) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type   Type            `json:"type"`
		Config json.RawMessage `json:"config"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	return t.unmarshal(raw.Type, func(v interface{}) error {
		if len(raw.Config) == 0 {
			return nil
		}
		return json.Unmarshal(raw.Config, v)
	})
}

// UnmarshalYAML implements the yaml.Unmarshaler interface
func (t *TypedConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Type   Type      `yaml:"type"`
		Config yaml.Node `yaml:"config"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	return t.unmarshal(raw.Type, func(v interface{}) error {
		if raw.Config.Kind == 0 {
			return nil
		}
		return raw.Config.Decode(v)
	})
}

// unmarshal uses reflection to decode a Config into the concrete type
// registered with typeName
func (t *TypedConfig) unmarshal(typeName Type,
	decode func(interface{}) error) error {
	value, err := newConfig(typeName)
	if err != nil {
		return fmt.Errorf("unmarshal: %v", err)
	}

	if err := decode(value.Interface()); err != nil {
		return fmt.Errorf("unmarshal: could not decode %v config: %v",
			typeName, err)
	}

	t.Type = typeName
	t.Config = value.Elem().Interface().(Config)
	return nil
}
