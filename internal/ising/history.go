package ising

// Snapshot records the observables and parameters after one completed sweep
// or cluster step. Config is nil unless the engine saves configurations.
type Snapshot struct {
	H      float64  `json:"H"`
	M      float64  `json:"M"`
	K      float64  `json:"k"`
	J      float64  `json:"J"`
	T      float64  `json:"T"`
	Config *Lattice `json:"config"`
}

func (e *Engine) snapshot() {
	s := Snapshot{H: e.h, M: e.m, K: e.k, J: e.j, T: e.t}
	if e.saveConfig {
		s.Config = e.lattice.Clone()
	}
	e.history = append(e.history, s)
}

// History returns the snapshots recorded so far, oldest first. The returned
// slice is a copy; stored configurations are never written after creation.
func (e *Engine) History() []Snapshot {
	out := make([]Snapshot, len(e.history))
	copy(out, e.history)
	return out
}

// Iterations returns the number of completed sweeps and cluster steps.
func (e *Engine) Iterations() int { return len(e.history) }
