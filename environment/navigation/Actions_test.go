package navigation

import (
	"math"
	"testing"

	env "github.com/samuelfneumann/avnav/environment"
	"github.com/samuelfneumann/avnav/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAction(t *testing.T) {
	cases := []struct {
		action          int
		linear, angular float64
	}{
		{NoOp, 0, 0},
		{0, -2.5, -0.025},
		{MaxDiscreteAction, 2.5, 0.025},
		{10, 2.5, -0.025},
		{110, -2.5, 0.025},
		{65, 2.5, 0},
		{61, 0.5, 0},
		{71, 0, 0.005},
	}

	for _, c := range cases {
		linear, angular, err := DecodeAction(c.action)
		require.NoError(t, err)
		assert.InDelta(t, c.linear, linear, tol, "action %d", c.action)
		assert.InDelta(t, c.angular, angular, tol, "action %d", c.action)
	}
	assert.Equal(t, 60, NoOp)
}

func TestDecodeActionInvalid(t *testing.T) {
	for _, a := range []int{-1, MaxDiscreteAction + 1, 1000} {
		_, _, err := DecodeAction(a)
		assert.True(t, env.IsInvalidAction(err), "action %d", a)
	}
}

func TestEncodeAction(t *testing.T) {
	for _, a := range PossibleActions() {
		lin, ang := a%ActionsPerAxis, a/ActionsPerAxis
		encoded, err := EncodeAction(lin, ang)
		require.NoError(t, err)
		assert.Equal(t, a, encoded)
	}

	_, err := EncodeAction(ActionsPerAxis, 0)
	assert.True(t, env.IsInvalidAction(err))
	_, err = EncodeAction(0, -1)
	assert.True(t, env.IsInvalidAction(err))

	assert.Len(t, PossibleActions(), 121)
}

func TestInGoal(t *testing.T) {
	goal := geometry.Pt(50, 50)
	assert.True(t, InGoal(goal, goal, DefaultGoalRadius))
	assert.True(t, InGoal(geometry.Pt(50, 69.9), goal, DefaultGoalRadius))
	assert.False(t, InGoal(geometry.Pt(50, 70), goal, DefaultGoalRadius))
	assert.False(t, InGoal(geometry.Pt(80, 80), goal, DefaultGoalRadius))
}

func TestBearing(t *testing.T) {
	origin := geometry.Pt(0, 0)
	cases := []struct {
		to   geometry.Point
		want float64
	}{
		{geometry.Pt(0, 0), 0},
		{geometry.Pt(0, 1), 0},
		{geometry.Pt(1, 1), math.Pi / 4},
		{geometry.Pt(1, 0), math.Pi / 2},
		{geometry.Pt(1, -1), 3 * math.Pi / 4},
		{geometry.Pt(0, -1), math.Pi},
		{geometry.Pt(-1, -1), 5 * math.Pi / 4},
		{geometry.Pt(-1, 0), 3 * math.Pi / 2},
		{geometry.Pt(-1, 1), 7 * math.Pi / 4},
	}

	for _, c := range cases {
		b := Bearing(origin, c.to)
		assert.InDelta(t, c.want, b, tol, "bearing to %v", c.to)
		assert.GreaterOrEqual(t, b, 0.0)
		assert.Less(t, b, 2*math.Pi)
	}
}
