package ising

import "errors"

// ErrInvalidDimension indicates a lattice size that is not strictly positive,
// or a decoded lattice that is not square.
var ErrInvalidDimension = errors.New("ising: invalid lattice dimension")
