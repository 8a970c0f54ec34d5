package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/san-kum/isingsim/internal/experiment"
	"github.com/san-kum/isingsim/internal/ising"
)

// ScanPoint is the outcome of one temperature on a scan grid.
type ScanPoint struct {
	T       float64
	Tc      float64
	Metrics map[string]float64
	TauM    float64
}

// Scan runs one independent experiment per temperature. Each experiment owns
// its engine; runs execute concurrently and results keep the order of temps.
// Every temperature must be positive.
func Scan(ctx context.Context, base experiment.Config, temps []float64, logger *slog.Logger) ([]ScanPoint, error) {
	for _, t := range temps {
		if t <= 0 {
			return nil, fmt.Errorf("scan temperature must be positive, got %g", t)
		}
	}

	registry := experiment.NewRegistry()
	step, err := registry.GetAlgorithm(base.Algorithm)
	if err != nil {
		return nil, err
	}

	points := make([]ScanPoint, len(temps))
	errs := make([]error, len(temps))

	var wg sync.WaitGroup
	for i, t := range temps {
		wg.Add(1)
		go func(idx int, t float64) {
			defer wg.Done()

			cfg := base
			cfg.T = t
			cfg.Seed = base.Seed + int64(idx)
			cfg.SaveConfig = false

			exp := experiment.New(cfg, logger)
			if errs[idx] = exp.Setup(step, registry.DefaultMetrics(cfg.Size)); errs[idx] != nil {
				return
			}

			result, err := exp.Run(ctx)
			if err != nil {
				errs[idx] = err
				return
			}

			burnin := max(0, min(cfg.Burnin, len(result.History)))
			mags := Series(result.History[burnin:], func(s ising.Snapshot) float64 { return s.M })
			points[idx] = ScanPoint{
				T:       t,
				Tc:      result.Tc,
				Metrics: result.Metrics,
				TauM:    IntegratedAutocorrelationTime(mags),
			}
		}(i, t)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return points, nil
}

// Peak returns the scan point with the largest value of the named metric.
// The susceptibility peak is the finite-size estimate of Tc.
func Peak(points []ScanPoint, metric string) (ScanPoint, error) {
	if len(points) == 0 {
		return ScanPoint{}, fmt.Errorf("peak %s: no scan points", metric)
	}
	best := -1
	for i, p := range points {
		v, ok := p.Metrics[metric]
		if !ok {
			return ScanPoint{}, fmt.Errorf("peak %s: metric missing at T=%.4f", metric, p.T)
		}
		if best == -1 || v > points[best].Metrics[metric] {
			best = i
		}
	}
	return points[best], nil
}
