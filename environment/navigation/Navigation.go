// Package navigation implements an autonomous navigation environment.
//
// A rectangular vehicle drives through a walled arena towards a goal.
// The vehicle observes its surroundings through eight range sensors,
// two on each corner of its outline, and is rewarded for reaching the
// goal and penalized for touching a wall.
package navigation

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	env "github.com/samuelfneumann/avnav/environment"
	"github.com/samuelfneumann/avnav/geometry"
	ts "github.com/samuelfneumann/avnav/timestep"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

const (
	DefaultArenaWidth  float64 = 200
	DefaultArenaHeight float64 = 200

	// Starting positions and goals are drawn from the interior of the
	// arena, StartMargin of the arena size away from each edge
	StartMargin float64 = 0.1

	// StartDims is the length of vectors produced by Starters used
	// with Navigation: x, y, heading, goal x, goal y
	StartDims int = 5

	// Observation layout
	ObservationDims      int = NumSensors + 4
	SpeedIndex           int = NumSensors
	AngularVelocityIndex int = NumSensors + 1
	GoalDistanceIndex    int = NumSensors + 2
	GoalBearingIndex     int = NumSensors + 3

	// Integration timestep of a single environment step
	dt float64 = 1.0
)

// Arena describes the world a vehicle drives in
type Arena struct {
	Width      float64 `json:"width" yaml:"width"`
	Height     float64 `json:"height" yaml:"height"`
	GoalRadius float64 `json:"goal_radius" yaml:"goal_radius"`

	// Obstacles are placed in the arena in addition to its walls
	Obstacles []geometry.Polygon `json:"obstacles,omitempty" yaml:"obstacles,omitempty"`
}

// DefaultArena returns an empty 200 x 200 arena
func DefaultArena() Arena {
	return Arena{
		Width:      DefaultArenaWidth,
		Height:     DefaultArenaHeight,
		GoalRadius: DefaultGoalRadius,
	}
}

// Validate returns an error if the arena cannot hold a vehicle
func (a Arena) Validate() error {
	if !(a.Width > 2*WallThickness) || !(a.Height > 2*WallThickness) ||
		math.IsInf(a.Width, 1) || math.IsInf(a.Height, 1) {
		return fmt.Errorf("validate: arena %v x %v must be finite and "+
			"larger than its walls", a.Width, a.Height)
	}
	if !(a.GoalRadius > 0) || math.IsInf(a.GoalRadius, 1) {
		return fmt.Errorf("validate: goal radius must be positive and "+
			"finite, got %v", a.GoalRadius)
	}
	return nil
}

// StartBounds returns the intervals from which starting states are
// drawn: positions and goals uniformly over the central 80% of the
// arena, headings uniformly over [0, 2π)
func (a Arena) StartBounds() []r1.Interval {
	x := r1.Interval{
		Min: StartMargin * a.Width,
		Max: (1 - StartMargin) * a.Width,
	}
	y := r1.Interval{
		Min: StartMargin * a.Height,
		Max: (1 - StartMargin) * a.Height,
	}
	heading := r1.Interval{Min: 0, Max: 2 * math.Pi}

	return []r1.Interval{x, y, heading, x, y}
}

// NewStarter returns a Starter drawing starting states uniformly from
// the arena's start bounds using src
func NewStarter(a Arena, src rand.Source) env.Starter {
	return env.NewUniformStarter(a.StartBounds(), src)
}

// Navigation implements the autonomous navigation environment. Each
// episode places the vehicle at rest at a random pose and the goal at
// a random point, both taken from the Task's Starter.
//
// Observations are 12-dimensional:
//
//	Index	Feature
//	0-7		Range sensor readings, corner 0 ray 1, corner 0 ray 2, ...
//	8		Speed
//	9		Angular velocity
//	10		Distance to goal
//	11		Bearing to goal in [0, 2π), clockwise from +y
//
// Actions are 1-dimensional and discrete in [0, 120], see
// DecodeAction.
//
// A Navigation owns all of its state, including the random source of
// its Starter, and must not be shared between goroutines. Parallel
// rollouts should construct one Navigation per goroutine.
//
// Navigation implements the environment.Environment interface
type Navigation struct {
	env.Task
	arena    Arena
	params   VehicleParams
	collider geometry.Collider
	discount float64

	vehicle   *Vehicle
	obstacles *Obstacles
	goal      geometry.Point
	collided  bool

	lastStep ts.TimeStep
}

// New creates a new Navigation environment with the argument task and
// returns it along with the first TimeStep of the first episode. If
// collider is nil, a geometry.Exact collider is used.
func New(task env.Task, arena Arena, params VehicleParams,
	collider geometry.Collider, discount float64) (*Navigation, ts.TimeStep,
	error) {
	if err := arena.Validate(); err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %v", err)
	}
	if err := params.Validate(); err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %v", err)
	}
	if collider == nil {
		collider = geometry.NewExact()
	}

	n := &Navigation{
		Task:     task,
		arena:    arena,
		params:   params,
		collider: collider,
		discount: discount,
	}

	if t, ok := task.(navigationTask); ok {
		t.registerEnv(n)
	}

	step, err := n.Reset()
	if err != nil {
		return nil, ts.TimeStep{}, err
	}
	return n, step, nil
}

// Reset starts a new episode. The vehicle, obstacles, and goal are
// rebuilt from scratch, with the vehicle pose and goal drawn from the
// Task's Starter.
func (n *Navigation) Reset() (ts.TimeStep, error) {
	start := n.Start()
	if start.Len() != StartDims {
		return ts.TimeStep{}, &env.Error{
			Op: "reset",
			Err: fmt.Errorf("starter produced %d features, expected %d",
				start.Len(), StartDims),
		}
	}

	polygons := append(Walls(n.arena.Width, n.arena.Height),
		n.arena.Obstacles...)
	obstacles, err := NewObstacles(polygons, n.collider)
	if err != nil {
		return ts.TimeStep{}, &env.Error{Op: "reset", Err: err}
	}

	pose := Pose{X: start.AtVec(0), Y: start.AtVec(1), Heading: start.AtVec(2)}
	n.vehicle = NewVehicle(pose, n.params)
	n.obstacles = obstacles
	n.goal = geometry.Pt(start.AtVec(3), start.AtVec(4))
	n.collided = n.obstacles.Collides(n.vehicle.Outline().Polygon())

	step := ts.New(ts.First, 0, n.discount, n.observation(), 0)
	n.lastStep = step

	return step, nil
}

// Step takes one environmental step given a 1-dimensional action
// holding a discrete action index and returns the next timestep and
// whether or not the episode has ended
func (n *Navigation) Step(action *mat.VecDense) (ts.TimeStep, bool, error) {
	if action.Len() != ActionDims {
		return ts.TimeStep{}, false, &env.Error{
			Op: "step",
			Err: fmt.Errorf("actions should be %d-dimensional, got %d: %w",
				ActionDims, action.Len(), env.ErrInvalidAction),
		}
	}

	a := action.AtVec(0)
	if a != math.Trunc(a) {
		return ts.TimeStep{}, false, &env.Error{
			Op: "step",
			Err: fmt.Errorf("action %v is not a whole number: %w", a,
				env.ErrInvalidAction),
		}
	}

	return n.StepIndex(int(a))
}

// StepIndex takes one environmental step given a discrete action index
// and returns the next timestep and whether or not the episode has
// ended.
//
// The action's accelerations are applied for one time unit, after
// which the Task computes the reward and decides whether the episode
// has ended. Stepping after the last timestep of an episode returns
// an error wrapping environment.ErrEpisodeOver.
func (n *Navigation) StepIndex(action int) (ts.TimeStep, bool, error) {
	if n.lastStep.Last() {
		return ts.TimeStep{}, true, &env.Error{Op: "step",
			Err: env.ErrEpisodeOver}
	}

	linear, angular, err := DecodeAction(action)
	if err != nil {
		return ts.TimeStep{}, false, &env.Error{Op: "step", Err: err}
	}

	n.vehicle.SetAcceleration(linear)
	n.vehicle.SetAngularAcceleration(angular)
	n.vehicle.Integrate(dt)

	n.collided = n.obstacles.Collides(n.vehicle.Outline().Polygon())
	nextState := n.observation()

	actionVec := mat.NewVecDense(ActionDims, []float64{float64(action)})
	reward := n.GetReward(n.lastStep.Observation, actionVec, nextState)

	nextStep := ts.New(ts.Mid, reward, n.discount, nextState,
		n.lastStep.Number+1)
	last := n.End(&nextStep)

	n.lastStep = nextStep
	return nextStep, last, nil
}

// observation computes the observation of the current state
func (n *Navigation) observation() *mat.VecDense {
	state := n.vehicle.State()
	readings := n.obstacles.Sense(state.Outline, state.Heading,
		n.params.SensorRange)

	position := state.Position()

	obs := make([]float64, ObservationDims)
	copy(obs, readings[:])
	obs[SpeedIndex] = state.Speed
	obs[AngularVelocityIndex] = state.AngularVelocity
	obs[GoalDistanceIndex] = geometry.Distance(position, n.goal)
	obs[GoalBearingIndex] = Bearing(position, n.goal)

	return mat.NewVecDense(ObservationDims, obs)
}

// CurrentTimeStep returns the last TimeStep produced by the
// environment
func (n *Navigation) CurrentTimeStep() ts.TimeStep {
	return n.lastStep
}

// State returns a copy of the current observation without advancing
// the environment
func (n *Navigation) State() *mat.VecDense {
	return mat.VecDenseCopyOf(n.lastStep.Observation)
}

// PossibleActions returns all legal discrete actions
func (n *Navigation) PossibleActions() []int {
	return PossibleActions()
}

// Collided returns whether the vehicle currently intersects an
// obstacle
func (n *Navigation) Collided() bool {
	return n.collided
}

// ReachedGoal returns whether the vehicle is currently at the goal
func (n *Navigation) ReachedGoal() bool {
	return InGoal(n.vehicle.Pose().Position(), n.goal, n.arena.GoalRadius)
}

// Contact returns the regions in which the vehicle overlaps
// obstacles, or nil if the vehicle does not overlap any obstacle
func (n *Navigation) Contact() []geometry.Polygon {
	if !n.collided {
		return nil
	}
	return n.obstacles.Contact(n.vehicle.Outline().Polygon())
}

// Vehicle returns a snapshot of the vehicle state
func (n *Navigation) Vehicle() VehicleState {
	return n.vehicle.State()
}

// VehicleParams returns the physical parameters of the vehicle
func (n *Navigation) VehicleParams() VehicleParams {
	return n.params
}

// Obstacles returns copies of all obstacles, walls first
func (n *Navigation) Obstacles() []geometry.Polygon {
	return n.obstacles.Polygons()
}

// Goal returns the goal position of the current episode
func (n *Navigation) Goal() geometry.Point {
	return n.goal
}

// GoalRadius returns the radius of the disks used to check whether the
// vehicle is at the goal
func (n *Navigation) GoalRadius() float64 {
	return n.arena.GoalRadius
}

// Arena returns the arena the environment was created with
func (n *Navigation) Arena() Arena {
	return n.arena
}

// SensorSegments returns the segments swept by each range sensor up to
// its current reading, in observation order
func (n *Navigation) SensorSegments() [NumSensors]geometry.Segment {
	state := n.vehicle.State()
	rays := SensorRays(state.Outline, state.Heading)

	var segments [NumSensors]geometry.Segment
	for i, ray := range rays {
		segments[i] = ray.Segment(n.lastStep.Observation.AtVec(i))
	}
	return segments
}

// ActionSpec returns the action specification of the environment
func (n *Navigation) ActionSpec() env.Spec {
	shape := mat.NewVecDense(ActionDims, nil)
	lowerBound := mat.NewVecDense(ActionDims,
		[]float64{float64(MinDiscreteAction)})
	upperBound := mat.NewVecDense(ActionDims,
		[]float64{float64(MaxDiscreteAction)})

	return env.NewSpec(shape, env.Action, lowerBound, upperBound,
		env.Discrete)
}

// ObservationSpec returns the observation specification of the
// environment
func (n *Navigation) ObservationSpec() env.Spec {
	shape := mat.NewVecDense(ObservationDims, nil)
	lower := make([]float64, ObservationDims)
	upper := make([]float64, ObservationDims)

	for i := 0; i < NumSensors; i++ {
		upper[i] = n.params.SensorRange
	}
	lower[SpeedIndex], upper[SpeedIndex] = -n.params.MaxSpeed,
		n.params.MaxSpeed
	lower[AngularVelocityIndex], upper[AngularVelocityIndex] =
		-n.params.MaxAngularVelocity, n.params.MaxAngularVelocity

	// The vehicle may leave the arena if it drives through a wall
	// without the episode ending, so distances are unbounded
	upper[GoalDistanceIndex] = math.Inf(1)
	upper[GoalBearingIndex] = 2 * math.Pi

	return env.NewSpec(shape, env.Observation,
		mat.NewVecDense(ObservationDims, lower),
		mat.NewVecDense(ObservationDims, upper), env.Continuous)
}

// RewardSpec returns the reward specification of the environment. If
// the Task reports its reward range through Min and Max methods, those
// bound the spec, otherwise rewards are unbounded.
func (n *Navigation) RewardSpec() env.Spec {
	min, max := math.Inf(-1), math.Inf(1)
	if t, ok := n.Task.(interface {
		Min() float64
		Max() float64
	}); ok {
		min, max = t.Min(), t.Max()
	}

	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{min})
	upperBound := mat.NewVecDense(1, []float64{max})

	return env.NewSpec(shape, env.Reward, lowerBound, upperBound,
		env.Continuous)
}

// DiscountSpec returns the discounting specification of the
// environment
func (n *Navigation) DiscountSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{n.discount})

	return env.NewSpec(shape, env.Discount, lowerBound, lowerBound,
		env.Continuous)
}

// String returns a string representation of the environment
func (n *Navigation) String() string {
	str := "Navigation  |  Position: (%.2f, %.2f)  |  Heading: %.3f  |  " +
		"Speed: %.2f  |  Goal: (%.2f, %.2f)  |  Step: %v"
	state := n.vehicle.State()
	return fmt.Sprintf(str, state.X, state.Y, state.Heading, state.Speed,
		n.goal.X, n.goal.Y, n.lastStep.Number)
}
