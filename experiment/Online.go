package experiment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/samuelfneumann/avnav/agent"
	env "github.com/samuelfneumann/avnav/environment"
	"github.com/samuelfneumann/avnav/experiment/tracker"
	ts "github.com/samuelfneumann/avnav/timestep"
)

// Online is an Experiment that runs a policy online only. No offline
// evaluation is performed. If the policy is also an agent.Learner, it
// observes every transition and is stepped after each one.
type Online struct {
	env     env.Environment
	policy  agent.Policy
	learner agent.Learner

	maxSteps        int
	maxEpisodes     int
	currentSteps    int
	currentEpisodes int

	trackers []tracker.Tracker
	logger   *zap.Logger
}

// NewOnline creates and returns a new online experiment on a given
// environment with a given policy. The experiment ends after steps
// environment steps or episodes finished episodes, whichever comes
// first; a limit of 0 disables that limit. The t parameter is a
// slice of tracker.Tracker which determine what data is saved. If
// logger is nil, nothing is logged.
func NewOnline(e env.Environment, p agent.Policy, steps, episodes int,
	logger *zap.Logger, t ...tracker.Tracker) *Online {
	if logger == nil {
		logger = zap.NewNop()
	}

	learner, _ := p.(agent.Learner)

	return &Online{
		env:         e,
		policy:      p,
		learner:     learner,
		maxSteps:    steps,
		maxEpisodes: episodes,
		trackers:    t,
		logger:      logger,
	}
}

// Register registers a tracker.Tracker with an Experiment so that data
// generated during the experiment can be tracked and saved
func (o *Online) Register(t tracker.Tracker) {
	o.trackers = append(o.trackers, t)
}

// RunEpisode runs a single episode of the experiment and returns
// whether the experiment is finished. An episode cut short by the step
// limit does not count as a finished episode.
func (o *Online) RunEpisode(ctx context.Context) (bool, error) {
	step, err := o.env.Reset()
	if err != nil {
		return true, fmt.Errorf("runEpisode: %w", err)
	}
	if o.learner != nil {
		if err := o.learner.ObserveFirst(step); err != nil {
			return true, fmt.Errorf("runEpisode: %v", err)
		}
	}
	o.track(step)

	id := uuid.New()
	episodeReturn := 0.0

	// Run the next timestep
	for !step.Last() && !o.stepLimitReached() {
		if err := ctx.Err(); err != nil {
			return true, err
		}
		o.currentSteps++

		// Select action, step in environment
		action := o.policy.SelectAction(step)
		step, _, err = o.env.Step(action)
		if err != nil {
			return true, fmt.Errorf("runEpisode: %w", err)
		}
		episodeReturn += step.Reward

		// Cache the environment step in each Tracker
		o.track(step)

		// Observe the timestep and step the learner
		if o.learner != nil {
			if err := o.learner.Observe(action, step); err != nil {
				return true, fmt.Errorf("runEpisode: %v", err)
			}
			if err := o.learner.Step(); err != nil {
				return true, fmt.Errorf("runEpisode: %v", err)
			}
		}
	}

	if step.Last() {
		o.currentEpisodes++
		if o.learner != nil {
			o.learner.EndEpisode()
		}
		o.logger.Debug("episode finished",
			zap.String("episode", id.String()),
			zap.Int("steps", step.Number),
			zap.Float64("return", episodeReturn),
			zap.Stringer("end", step.EndType()),
		)
	} else {
		o.logger.Debug("episode cut short by step limit",
			zap.String("episode", id.String()),
			zap.Int("steps", step.Number),
		)
	}

	return o.finished(), nil
}

// Run runs the entire experiment until a limit is reached or ctx is
// cancelled
func (o *Online) Run(ctx context.Context) error {
	for {
		finished, err := o.RunEpisode(ctx)
		if err != nil {
			return err
		}
		if finished {
			return nil
		}
	}
}

// Env returns the environment the experiment runs on
func (o *Online) Env() env.Environment {
	return o.env
}

// Steps returns the number of environment steps taken so far
func (o *Online) Steps() int {
	return o.currentSteps
}

// Episodes returns the number of episodes finished so far
func (o *Online) Episodes() int {
	return o.currentEpisodes
}

func (o *Online) stepLimitReached() bool {
	return o.maxSteps > 0 && o.currentSteps >= o.maxSteps
}

func (o *Online) finished() bool {
	return o.stepLimitReached() ||
		(o.maxEpisodes > 0 && o.currentEpisodes >= o.maxEpisodes)
}

// Save saves the data cached by the Trackers to disk
func (o *Online) Save() error {
	var err error
	for _, t := range o.trackers {
		err = multierr.Append(err, t.Save())
	}
	if err != nil {
		return fmt.Errorf("save: %v", err)
	}
	return nil
}

// track tracks the current timestep by caching its data in each
// Tracker
func (o *Online) track(t ts.TimeStep) {
	for _, tr := range o.trackers {
		tr.Track(t)
	}
}
