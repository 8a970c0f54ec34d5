// Package ising simulates a two-dimensional square-lattice Ising ferromagnet
// with periodic boundaries and no external field.
//
// The package provides the lattice engine and its two update algorithms:
//
//   - [Engine.MetropolisSweep]: randomised single-spin Metropolis-Hastings sweeps
//   - [Engine.Wolff]: cluster flips grown with bond probability 1 - exp(-2βJ)
//   - [Engine.RecalculateObservables]: full-lattice Hamiltonian and magnetisation
//
// Every completed sweep or cluster step appends one [Snapshot] to the engine
// history.
//
// # Example
//
//	e, _ := ising.New(32, ising.Options{T: 2.0, Rand: ising.NewRand(42)})
//	e.Wolff(1000)
//	fmt.Println(e.H(), e.M())
//
// # Thread Safety
//
// Engine instances are NOT thread-safe. Run independent engines for
// parallel work; each one owns its lattice and random source.
//
// # Preconditions
//
// k > 0 and T > 0 are required for a finite β. Other values are not trapped
// and follow IEEE-754 infinity/NaN propagation. SetSpin and Fill panic on a
// spin other than Up or Down.
package ising
