// Package solver implements numerical solvers for systems of nonlinear
// equations F(x) = 0 over dense gonum vectors
package solver

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// ErrNoConverge is returned when a solver exhausts its iteration
// budget before the residual drops below tolerance. Callers can test
// for it with errors.Is.
var ErrNoConverge = errors.New("residual did not converge")

// Func evaluates the residual F(x). Implementations must not retain
// or modify x, and must return a vector of the same length.
type Func func(x mat.Vector) *mat.VecDense

// Solver finds a root of F, starting the search at x0
type Solver interface {
	Solve(f Func, x0 mat.Vector) (*mat.VecDense, error)
}

// maxAbs returns the infinity norm of a vector
func maxAbs(v mat.Vector) float64 {
	var max float64
	for i := 0; i < v.Len(); i++ {
		abs := v.AtVec(i)
		if abs < 0 {
			abs = -abs
		}
		if abs > max {
			max = abs
		}
	}
	return max
}
