package ising

import "math"

// MetropolisSweep performs the given number of full-lattice sweeps. Each
// sweep visits every site once in a shuffled row order, with an independently
// shuffled column order per row, so no raster bias enters the chain. Flips are
// applied immediately and seen by later visits in the same sweep.
func (e *Engine) MetropolisSweep(iterations int) {
	for it := 0; it < iterations; it++ {
		e.updateDerived()

		l := e.lattice
		for _, r := range permutation(e.rng, l.size) {
			for _, c := range permutation(e.rng, l.size) {
				site := &l.sites[r*l.size+c]
				neighbours := l.NeighbourSum(r, c)
				state := int(site.Spin) * neighbours
				flipped := -state
				dH := -e.j * float64(flipped-state)

				if dH < 0 {
					site.Spin = site.Spin.Flip()
				} else if e.rng.Float64() < math.Exp(-e.beta*dH) {
					site.Spin = site.Spin.Flip()
				}

				site.State = int(site.Spin) * neighbours
			}
		}

		e.RecalculateObservables()
		e.snapshot()
	}
}
