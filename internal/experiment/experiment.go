package experiment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/isingsim/internal/ising"
	"github.com/san-kum/isingsim/internal/metrics"
)

type Config struct {
	Algorithm  string
	Size       int
	K          float64
	J          float64
	T          float64
	Iterations int
	Burnin     int
	Seed       int64
	SaveConfig bool
}

type Result struct {
	History []ising.Snapshot
	Metrics map[string]float64
	Final   *ising.Lattice
	Tc      float64
	Elapsed time.Duration
}

type Experiment struct {
	cfg     Config
	step    Stepper
	metrics []metrics.Metric
	logger  *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Experiment {
	if logger == nil {
		logger = slog.Default()
	}
	return &Experiment{cfg: cfg, logger: logger}
}

func (e *Experiment) Setup(step Stepper, ms []metrics.Metric) error {
	if step == nil {
		return fmt.Errorf("experiment %s: nil stepper", e.cfg.Algorithm)
	}
	e.step = step
	e.metrics = ms
	return nil
}

// progressEvery controls how often debug progress lines are emitted.
const progressEvery = 1000

// Run builds a seeded engine and advances it one iteration at a time so that
// cancellation is honoured between iterations. Snapshots within the burn-in
// window are kept in the history but excluded from the metrics.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.step == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	engine, err := ising.New(e.cfg.Size, ising.Options{
		K:          e.cfg.K,
		J:          e.cfg.J,
		T:          e.cfg.T,
		SaveConfig: e.cfg.SaveConfig,
		Rand:       ising.NewRand(uint64(e.cfg.Seed)),
	})
	if err != nil {
		return nil, err
	}

	log := e.logger.With("algorithm", e.cfg.Algorithm, "size", e.cfg.Size, "T", engine.T())
	log.Info("run started", "iterations", e.cfg.Iterations, "Tc", engine.Tc(), "seed", e.cfg.Seed)
	start := time.Now()

	for i := 0; i < e.cfg.Iterations; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		e.step(engine, 1)

		if (i+1)%progressEvery == 0 {
			log.Debug("progress", "iteration", i+1, "H", engine.H(), "M", engine.M())
		}
	}

	history := engine.History()
	burnin := max(0, min(e.cfg.Burnin, len(history)))

	result := &Result{
		History: history,
		Metrics: metrics.Collect(history[burnin:], e.metrics),
		Final:   engine.Lattice(),
		Tc:      engine.Tc(),
		Elapsed: time.Since(start),
	}

	log.Info("run finished", "elapsed", result.Elapsed, "H", engine.H(), "M", engine.M())
	return result, nil
}

func (e *Experiment) Config() Config { return e.cfg }
