package solver

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// FixedPoint finds roots of F by the simple iteration x <- x + F(x).
// When F(x) = Tx - x for a contraction T this is exactly fixed-point
// iteration on T; applied to the Bellman optimality residual it is
// value iteration with a max-norm stopping rule.
type FixedPoint struct {
	tol     float64
	maxIter int
}

// NewFixedPoint returns a fixed-point solver stopping when the
// infinity norm of the residual falls below tol, or failing after
// maxIter sweeps
func NewFixedPoint(tol float64, maxIter int) (*FixedPoint, error) {
	if tol <= 0 {
		return nil, fmt.Errorf("newFixedPoint: non-positive tolerance %v",
			tol)
	}
	if maxIter <= 0 {
		return nil, fmt.Errorf("newFixedPoint: non-positive iteration "+
			"budget %d", maxIter)
	}

	return &FixedPoint{tol: tol, maxIter: maxIter}, nil
}

// Solve finds x with F(x) = 0 starting from x0
func (s *FixedPoint) Solve(f Func, x0 mat.Vector) (*mat.VecDense, error) {
	x := mat.NewVecDense(x0.Len(), nil)
	x.CopyVec(x0)

	var residual float64
	for i := 0; i < s.maxIter; i++ {
		fx := f(x)
		if fx.Len() != x.Len() {
			return nil, fmt.Errorf("solve: F returns %d values for %d "+
				"unknowns", fx.Len(), x.Len())
		}

		residual = maxAbs(fx)
		if residual < s.tol {
			return x, nil
		}

		x.AddVec(x, fx)
	}

	return nil, fmt.Errorf("solve: %w after %d iterations "+
		"(residual %v, tolerance %v)", ErrNoConverge, s.maxIter,
		residual, s.tol)
}
