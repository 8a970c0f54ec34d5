package ising

import "math"

var offsets = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Wolff performs the given number of cluster steps. A cluster grows from a
// uniformly chosen seed across like-signed bonds with probability
// 1 - exp(-2βJ) and is flipped as a whole; a single-site cluster is valid.
func (e *Engine) Wolff(iterations int) {
	l := e.lattice
	n := l.size * l.size
	inCluster := make([]bool, n)
	queue := make([]int, 0, n)

	for it := 0; it < iterations; it++ {
		e.updateDerived()
		p := 1 - math.Exp(-2*e.beta*e.j)

		clear(inCluster)
		queue = queue[:0]

		seed := l.index(e.rng.IntN(l.size), e.rng.IntN(l.size))
		queue = append(queue, seed)
		inCluster[seed] = true

		// Sites flip as they are popped. Unpopped sites are still unflipped,
		// so the like-sign test always compares pre-flip spins.
		for head := 0; head < len(queue); head++ {
			i := queue[head]
			r, c := i/l.size, i%l.size
			si := l.sites[i].Spin

			for _, d := range offsets {
				j := l.index(r+d[0], c+d[1])
				if l.sites[j].Spin == si && e.rng.Float64() < p && !inCluster[j] {
					inCluster[j] = true
					queue = append(queue, j)
				}
			}

			l.sites[i].Spin = si.Flip()
		}

		e.RecalculateObservables()
		e.snapshot()
	}
}
