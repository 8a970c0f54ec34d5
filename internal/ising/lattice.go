package ising

import (
	"encoding/json"
	"fmt"
)

// Spin is a site orientation, Up (+1) or Down (-1).
type Spin int8

const (
	Up   Spin = 1
	Down Spin = -1
)

// Flip returns the opposite orientation.
func (s Spin) Flip() Spin { return -s }

// Site is a single lattice site. State caches spin × (sum of the four
// neighbour spins) as of the last observable calculation or Metropolis visit.
type Site struct {
	Spin  Spin `json:"spin"`
	State int  `json:"state"`
}

// Lattice is a size×size toroidal grid of sites stored in row-major order.
type Lattice struct {
	size  int
	sites []Site
}

func newLattice(size int) *Lattice {
	return &Lattice{size: size, sites: make([]Site, size*size)}
}

// Size returns the lattice dimension.
func (l *Lattice) Size() int { return l.size }

// At returns the site at (row, col) with periodic wrapping.
func (l *Lattice) At(row, col int) Site {
	return l.sites[l.index(row, col)]
}

func (l *Lattice) index(row, col int) int {
	return mod(row, l.size)*l.size + mod(col, l.size)
}

func (l *Lattice) spin(row, col int) Spin {
	return l.sites[l.index(row, col)].Spin
}

// NeighbourSum returns the sum of the four nearest-neighbour spins of (row, col).
func (l *Lattice) NeighbourSum(row, col int) int {
	return int(l.spin(row, col-1)) +
		int(l.spin(row, col+1)) +
		int(l.spin(row-1, col)) +
		int(l.spin(row+1, col))
}

// Clone returns an independent deep copy.
func (l *Lattice) Clone() *Lattice {
	c := &Lattice{size: l.size, sites: make([]Site, len(l.sites))}
	copy(c.sites, l.sites)
	return c
}

// Rows returns a fresh [][]Site view of the lattice.
func (l *Lattice) Rows() [][]Site {
	rows := make([][]Site, l.size)
	for r := range rows {
		rows[r] = make([]Site, l.size)
		copy(rows[r], l.sites[r*l.size:(r+1)*l.size])
	}
	return rows
}

// Spins returns the spin values in row-major order.
func (l *Lattice) Spins() []Spin {
	out := make([]Spin, len(l.sites))
	for i, s := range l.sites {
		out[i] = s.Spin
	}
	return out
}

func (l *Lattice) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Rows())
}

func (l *Lattice) UnmarshalJSON(data []byte) error {
	var rows [][]Site
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	for i, row := range rows {
		if len(row) != len(rows) {
			return fmt.Errorf("%w: row %d has %d sites, want %d", ErrInvalidDimension, i, len(row), len(rows))
		}
	}
	l.size = len(rows)
	l.sites = make([]Site, 0, l.size*l.size)
	for _, row := range rows {
		l.sites = append(l.sites, row...)
	}
	return nil
}
