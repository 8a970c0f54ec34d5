// Package viz provides terminal rendering for Ising lattices and run histories.
//
//   - [RenderLattice]: coloured spin grid
//   - [PlotSeries], [PlotHistory]: asciigraph traces of H and M
//   - [Model]: Bubble Tea live view stepping an engine in real time
//
// # Key Bindings
//
//	Space - Pause/Resume
//	A     - Toggle Metropolis/Wolff
//	↑/↓   - Raise/lower temperature
//	C     - Jump to Tc
//	T     - Cycle colour themes
//	R     - Reset to a fresh random lattice
//	?     - Show help
package viz
