// Command avnav runs navigation experiments. Experiments are described
// by a YAML or JSON config file, run in parallel over several seeds,
// and their per-episode data is saved to an output directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"go.uber.org/zap"

	_ "github.com/samuelfneumann/avnav/agent/fixed"
	_ "github.com/samuelfneumann/avnav/agent/random"
	"github.com/samuelfneumann/avnav/environment/navigation/render"
	"github.com/samuelfneumann/avnav/experiment"
	"github.com/samuelfneumann/avnav/experiment/tracker"
	"github.com/samuelfneumann/avnav/experiment/trackers"
	ts "github.com/samuelfneumann/avnav/timestep"
	"github.com/samuelfneumann/avnav/utils/progressbar"
)

// progress is a Tracker which advances a progress bar for every
// finished episode, or for every step if the experiment is limited by
// steps only
type progress struct {
	bar     *progressbar.ProgressBar
	byStep  bool
	display bool
}

func (p progress) Track(t ts.TimeStep) {
	if (p.byStep && !t.First()) || (!p.byStep && t.Last()) {
		p.bar.Increment()
		if p.display {
			p.bar.Display()
		}
	}
}

func (p progress) Save() error { return nil }

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.DisableStacktrace = true
	return cfg.Build()
}

func main() {
	configPath := flag.String("config", "", "Experiment config file, "+
		"YAML or JSON; the default experiment is run if empty")
	episodes := flag.Int("episodes", 10, "Episodes per worker, used "+
		"when no config file is given")
	workers := flag.Int("workers", 1, "Number of experiments to run in "+
		"parallel, each with its own seed")
	seed := flag.Uint64("seed", 1, "Seed of the first worker; worker i "+
		"uses seed+i")
	out := flag.String("out", ".", "Directory to save tracked data to")
	renderPath := flag.String("render", "", "If set, the final scene of "+
		"the first worker is saved as a PNG to this path")
	scale := flag.Float64("scale", 3, "Pixels per world unit when "+
		"rendering")
	debug := flag.Bool("debug", false, "Log every episode")
	flag.Parse()

	logger, err := newLogger(*debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(logger, *configPath, *episodes, *workers, *seed, *out,
		*renderPath, *scale, !*debug); err != nil {
		logger.Fatal("experiment failed", zap.Error(err))
	}
}

func run(logger *zap.Logger, configPath string, episodes, workers int,
	seed uint64, out, renderPath string, scale float64,
	showProgress bool) error {
	conf := experiment.DefaultConfig(episodes)
	if configPath != "" {
		var err error
		if conf, err = experiment.LoadConfig(configPath); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(out, 0o755); err != nil {
		return fmt.Errorf("could not create output directory: %v", err)
	}

	total := conf.MaxEpisodes
	byStep := total == 0
	if byStep {
		total = conf.MaxSteps
	}
	bar, err := progressbar.New(os.Stderr, 50, total*workers)
	if err != nil {
		return err
	}

	returns := make([]*trackers.Return, workers)
	ends := make([]*trackers.EndReasons, workers)
	newTrackers := func(worker int) []tracker.Tracker {
		name := func(data string) string {
			return filepath.Join(out, fmt.Sprintf("%s_%d.bin", data,
				seed+uint64(worker)))
		}
		returns[worker] = trackers.NewReturn(name("return"))
		ends[worker] = trackers.NewEndReasons(name("ends"))

		return []tracker.Tracker{
			returns[worker],
			ends[worker],
			trackers.NewEpisodeLength(name("length")),
			progress{bar: bar, byStep: byStep, display: showProgress},
		}
	}

	p, err := experiment.NewParallelFromConfig(conf, workers, seed, logger,
		newTrackers)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("starting experiment",
		zap.Int("workers", workers),
		zap.Uint64("seed", seed),
		zap.Int("max_episodes", conf.MaxEpisodes),
		zap.Int("max_steps", conf.MaxSteps),
		zap.String("collider", string(conf.EnvConf.Collider)),
		zap.String("policy", string(conf.PolicyConf.Type)),
	)

	runErr := p.Run(ctx)
	if showProgress {
		bar.Close()
	}
	if runErr != nil {
		logger.Warn("experiment stopped early", zap.Error(runErr))
	}

	if err := p.Save(); err != nil {
		return err
	}

	var all []float64
	counts := make(map[ts.EndType]int)
	for i := range returns {
		all = append(all, returns[i].Data()...)
		for end, n := range ends[i].Counts() {
			counts[end] += n
		}
	}
	summary := trackers.Summarize(all)
	logger.Info("episodic return",
		zap.Int("episodes", summary.Episodes),
		zap.Float64("mean", summary.Mean),
		zap.Float64("std", summary.StdDev),
		zap.Float64("min", summary.Min),
		zap.Float64("max", summary.Max),
		zap.Int("collisions", counts[ts.Collision]),
		zap.Int("goals", counts[ts.GoalReached]),
		zap.Int("timeouts", counts[ts.Timeout]),
	)

	if renderPath != "" {
		if err := renderFinal(p, renderPath, scale); err != nil {
			return err
		}
		logger.Info("saved render", zap.String("path", renderPath))
	}

	return runErr
}

func renderFinal(p *experiment.Parallel, path string, scale float64) error {
	online, ok := p.At(0).(*experiment.Online)
	if !ok {
		return fmt.Errorf("renderFinal: cannot render experiment %T", p.At(0))
	}
	scene, ok := online.Env().(render.Scene)
	if !ok {
		return fmt.Errorf("renderFinal: cannot render environment %T",
			online.Env())
	}

	r, err := render.New(scale)
	if err != nil {
		return fmt.Errorf("renderFinal: %v", err)
	}
	return r.SavePNG(scene, path)
}
