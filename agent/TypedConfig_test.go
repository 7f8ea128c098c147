package agent_test

import (
	"encoding/json"
	"testing"

	"github.com/samuelfneumann/avnav/agent"
	"github.com/samuelfneumann/avnav/agent/fixed"
	"github.com/samuelfneumann/avnav/agent/random"
	"github.com/samuelfneumann/avnav/environment/envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRegistered(t *testing.T) {
	assert.True(t, agent.Registered(agent.Random))
	assert.True(t, agent.Registered(agent.Fixed))
	assert.False(t, agent.Registered("DeepQ"))

	assert.Panics(t, func() { agent.Register(agent.Random, random.Config{}) })
}

func TestTypedConfigJSON(t *testing.T) {
	in := agent.NewTypedConfig(random.Config{Actions: []int{1, 2, 3}})
	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out agent.TypedConfig
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
	assert.NoError(t, out.Validate())
}

func TestTypedConfigYAML(t *testing.T) {
	data := []byte(`
type: Fixed
config:
  action: [60]
`)

	var c agent.TypedConfig
	require.NoError(t, yaml.Unmarshal(data, &c))
	assert.Equal(t, agent.Fixed, c.Type)
	assert.Equal(t, fixed.Config{Action: []float64{60}}, c.Config)

	out, err := yaml.Marshal(c)
	require.NoError(t, err)
	var again agent.TypedConfig
	require.NoError(t, yaml.Unmarshal(out, &again))
	assert.Equal(t, c, again)

	// Configs may be omitted for types which need none
	require.NoError(t, yaml.Unmarshal([]byte("type: Random"), &c))
	assert.Equal(t, random.Config{}, c.Config)
}

func TestTypedConfigUnknownType(t *testing.T) {
	var c agent.TypedConfig
	assert.Error(t, json.Unmarshal([]byte(`{"type": "DeepQ"}`), &c))
	assert.Error(t, yaml.Unmarshal([]byte("type: DeepQ"), &c))
}

func TestTypedConfigCreatePolicy(t *testing.T) {
	env, step, err := envconfig.Default().Create(1)
	require.NoError(t, err)

	c := agent.NewTypedConfig(fixed.Config{Action: []float64{60}})
	require.NoError(t, c.Validate())
	p, err := c.CreatePolicy(env, 1)
	require.NoError(t, err)
	assert.Equal(t, 60.0, p.SelectAction(step).AtVec(0))

	mistyped := agent.TypedConfig{Type: agent.Random,
		Config: fixed.Config{Action: []float64{60}}}
	assert.Error(t, mistyped.Validate())

	_, err = agent.TypedConfig{Type: agent.Random}.CreatePolicy(env, 1)
	assert.Error(t, err)
}
