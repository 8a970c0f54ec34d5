package ising

// RecalculateObservables recomputes H and M from the current spins and
// refreshes every site's local state. Each bond appears in the neighbour sums
// of both endpoints, so the bond sum is halved.
func (e *Engine) RecalculateObservables() {
	l := e.lattice
	spinTotal := 0
	bondSum := 0

	for r := 0; r < l.size; r++ {
		for c := 0; c < l.size; c++ {
			site := &l.sites[r*l.size+c]
			state := int(site.Spin) * l.NeighbourSum(r, c)

			site.State = state
			bondSum += state
			spinTotal += int(site.Spin)
		}
	}

	e.m = float64(spinTotal) / float64(l.size*l.size)
	e.h = -e.j * float64(bondSum) / 2
}
