package ising

import (
	"fmt"
	"math"
)

// Parameter defaults selected by zero-valued Options fields. DefaultT is close
// enough to zero that a fresh engine relaxes towards the ground state.
const (
	DefaultK = 1.0
	DefaultJ = 1.0
	DefaultT = 0.01
)

// Options configures a new engine. Zero K, J or T select the defaults.
type Options struct {
	K          float64
	J          float64
	T          float64
	SaveConfig bool
	Rand       Rand
}

// Engine owns one lattice, its thermodynamic parameters and the snapshot history.
type Engine struct {
	size       int
	lattice    *Lattice
	k, j, t    float64
	tc, beta   float64
	h, m       float64
	saveConfig bool
	rng        Rand
	history    []Snapshot
}

// New allocates a size×size lattice with uniformly random spins and computes
// its initial observables. No snapshot is recorded.
func New(size int, opts Options) (*Engine, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: size %d", ErrInvalidDimension, size)
	}

	e := &Engine{
		size:       size,
		lattice:    newLattice(size),
		k:          orDefault(opts.K, DefaultK),
		j:          orDefault(opts.J, DefaultJ),
		t:          orDefault(opts.T, DefaultT),
		saveConfig: opts.SaveConfig,
		rng:        opts.Rand,
		history:    make([]Snapshot, 0),
	}
	if e.rng == nil {
		e.rng = defaultRand()
	}

	e.updateDerived()

	for i := range e.lattice.sites {
		if e.rng.Float64() < 0.5 {
			e.lattice.sites[i].Spin = Up
		} else {
			e.lattice.sites[i].Spin = Down
		}
	}

	e.RecalculateObservables()
	return e, nil
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

// updateDerived recomputes Tc (Onsager) and β = 1/(kT).
func (e *Engine) updateDerived() {
	e.tc = 2 * e.j / (e.k * math.Log(1+math.Sqrt2))
	e.beta = 1 / (e.k * e.t)
}

// Size is the lattice edge length.
func (e *Engine) Size() int { return e.size }

// H is the total energy as of the last RecalculateObservables.
func (e *Engine) H() float64 { return e.h }

// M is the mean spin per site as of the last RecalculateObservables.
func (e *Engine) M() float64 { return e.m }

func (e *Engine) K() float64 { return e.k }
func (e *Engine) J() float64 { return e.j }
func (e *Engine) T() float64 { return e.t }

// Tc is the Onsager critical temperature 2J/(k ln(1+√2)) for the current J and k.
func (e *Engine) Tc() float64 { return e.tc }

// Beta is the inverse temperature 1/(kT).
func (e *Engine) Beta() float64 { return e.beta }

// SaveConfig reports whether snapshots carry lattice copies.
func (e *Engine) SaveConfig() bool { return e.saveConfig }

// SetTemperature changes T and re-derives β.
func (e *Engine) SetTemperature(t float64) {
	e.t = t
	e.updateDerived()
}

// Lattice returns a deep copy of the current lattice.
func (e *Engine) Lattice() *Lattice { return e.lattice.Clone() }

// Site returns the site at (row, col) with periodic wrapping.
func (e *Engine) Site(row, col int) Site { return e.lattice.At(row, col) }

// Spin returns the spin at (row, col) with periodic wrapping.
func (e *Engine) Spin(row, col int) Spin { return e.lattice.spin(row, col) }

// SetSpin overwrites a single spin. Observables are stale until
// RecalculateObservables is called. It panics if s is neither Up nor Down.
func (e *Engine) SetSpin(row, col int, s Spin) {
	mustBeSpin(s)
	e.lattice.sites[e.lattice.index(row, col)].Spin = s
}

// Fill sets every spin to s. Observables are stale until
// RecalculateObservables is called. It panics if s is neither Up nor Down.
func (e *Engine) Fill(s Spin) {
	mustBeSpin(s)
	for i := range e.lattice.sites {
		e.lattice.sites[i].Spin = s
	}
}

func mustBeSpin(s Spin) {
	if s != Up && s != Down {
		panic(fmt.Sprintf("ising: invalid spin %d", s))
	}
}
