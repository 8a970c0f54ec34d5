// Package analysis provides post-processing of Ising run histories.
//
//   - [Autocorrelation]: normalised autocorrelation of an observable series
//   - [IntegratedAutocorrelationTime]: decorrelation time in iterations
//   - [Scan]: independent runs over a fixed temperature grid
//
// # Locating the transition
//
// Susceptibility and specific heat peak near Tc on finite lattices:
//
//	points, _ := analysis.Scan(ctx, cfg, []float64{2.0, 2.2, 2.4}, nil)
//	for _, p := range points {
//	    fmt.Println(p.T, p.Metrics["susceptibility"])
//	}
package analysis
