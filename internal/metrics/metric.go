package metrics

import "github.com/san-kum/isingsim/internal/ising"

// Metric accumulates a statistic over a run's snapshot history.
type Metric interface {
	Name() string
	Observe(s ising.Snapshot)
	Value() float64
	Reset()
}

// Defaults returns the standard thermodynamic estimators for a lattice
// with the given number of sites.
func Defaults(sites int) []Metric {
	return []Metric{
		NewEnergy(sites),
		NewMagnetisation(),
		NewSpecificHeat(sites),
		NewSusceptibility(sites),
		NewBinder(),
	}
}

// Collect feeds every snapshot to every metric and returns their values by name.
func Collect(history []ising.Snapshot, ms []Metric) map[string]float64 {
	for _, m := range ms {
		m.Reset()
	}
	for _, s := range history {
		for _, m := range ms {
			m.Observe(s)
		}
	}
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}

// moments keeps running sums of x, x², x⁴.
type moments struct {
	n               int
	sum, sum2, sum4 float64
}

func (m *moments) add(x float64) {
	m.n++
	m.sum += x
	x2 := x * x
	m.sum2 += x2
	m.sum4 += x2 * x2
}

func (m *moments) mean() float64  { return m.sum / float64(m.n) }
func (m *moments) mean2() float64 { return m.sum2 / float64(m.n) }
func (m *moments) mean4() float64 { return m.sum4 / float64(m.n) }
func (m *moments) reset()         { *m = moments{} }
