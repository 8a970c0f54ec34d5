package metrics

import "github.com/san-kum/isingsim/internal/ising"

// Energy is the mean Hamiltonian per site.
type Energy struct {
	name  string
	sites int
	m     moments
}

func NewEnergy(sites int) *Energy {
	return &Energy{name: "energy_per_site", sites: sites}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(s ising.Snapshot) { e.m.add(s.H) }

func (e *Energy) Value() float64 {
	if e.m.n == 0 || e.sites == 0 {
		return 0
	}
	return e.m.mean() / float64(e.sites)
}

func (e *Energy) Reset() { e.m.reset() }

// SpecificHeat estimates C = (<H²> - <H>²) / (k T² N) from energy fluctuations.
// k and T are taken from the most recent snapshot.
type SpecificHeat struct {
	name  string
	sites int
	k, t  float64
	m     moments
}

func NewSpecificHeat(sites int) *SpecificHeat {
	return &SpecificHeat{name: "specific_heat", sites: sites}
}

func (c *SpecificHeat) Name() string { return c.name }

func (c *SpecificHeat) Observe(s ising.Snapshot) {
	c.k, c.t = s.K, s.T
	c.m.add(s.H)
}

func (c *SpecificHeat) Value() float64 {
	if c.m.n == 0 || c.sites == 0 {
		return 0
	}
	mean := c.m.mean()
	variance := c.m.mean2() - mean*mean
	return variance / (c.k * c.t * c.t * float64(c.sites))
}

func (c *SpecificHeat) Reset() {
	c.m.reset()
	c.k, c.t = 0, 0
}
