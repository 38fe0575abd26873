package solver

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Broyden finds roots with Broyden's method: a quasi-Newton iteration
// that starts from a finite-difference Jacobian and applies rank-one
// secant updates to it between steps, so F is evaluated only once per
// iteration after the initial Jacobian is built.
//
// The Bellman optimality operator is piecewise linear, which Newton
// family methods handle well; the secant updates simply relearn the
// Jacobian when the iterate crosses into a region where a different
// action achieves the maximum.
type Broyden struct {
	tol     float64
	maxIter int
	step    float64 // finite-difference step for the initial Jacobian
}

// NewBroyden returns a Broyden solver stopping when the infinity norm
// of the residual falls below tol, or failing after maxIter iterations
func NewBroyden(tol float64, maxIter int) (*Broyden, error) {
	if tol <= 0 {
		return nil, fmt.Errorf("newBroyden: non-positive tolerance %v", tol)
	}
	if maxIter <= 0 {
		return nil, fmt.Errorf("newBroyden: non-positive iteration "+
			"budget %d", maxIter)
	}

	return &Broyden{tol: tol, maxIter: maxIter, step: 1e-7}, nil
}

// Solve finds x with F(x) = 0 starting from x0
func (b *Broyden) Solve(f Func, x0 mat.Vector) (*mat.VecDense, error) {
	n := x0.Len()

	x := mat.NewVecDense(n, nil)
	x.CopyVec(x0)
	fx := f(x)
	if fx.Len() != n {
		return nil, fmt.Errorf("solve: F returns %d values for %d "+
			"unknowns", fx.Len(), n)
	}

	jacobian, err := b.jacobian(f, x, fx)
	if err != nil {
		return nil, err
	}

	dx := mat.NewVecDense(n, nil)
	df := mat.NewVecDense(n, nil)

	for i := 0; i < b.maxIter; i++ {
		if maxAbs(fx) < b.tol {
			return x, nil
		}

		// Solve J dx = -F(x)
		var negFx mat.VecDense
		negFx.ScaleVec(-1.0, fx)
		if err := dx.SolveVec(jacobian, &negFx); err != nil {
			// Secant updates degraded the Jacobian; rebuild it once
			// from finite differences before giving up
			jacobian, err = b.jacobian(f, x, fx)
			if err != nil {
				return nil, err
			}
			if err := dx.SolveVec(jacobian, &negFx); err != nil {
				return nil, fmt.Errorf("solve: singular jacobian: %v", err)
			}
		}

		x.AddVec(x, dx)

		next := f(x)
		df.SubVec(next, fx)
		fx = next

		b.update(jacobian, dx, df)
	}

	return nil, fmt.Errorf("solve: %w after %d iterations "+
		"(residual %v, tolerance %v)", ErrNoConverge, b.maxIter,
		maxAbs(fx), b.tol)
}

// update applies the good-Broyden rank-one secant update
// J += (df - J dx) dx' / (dx' dx)
func (b *Broyden) update(jacobian *mat.Dense, dx, df *mat.VecDense) {
	norm := mat.Dot(dx, dx)
	if norm == 0 {
		return
	}

	var jdx mat.VecDense
	jdx.MulVec(jacobian, dx)

	var residual mat.VecDense
	residual.SubVec(df, &jdx)
	residual.ScaleVec(1.0/norm, &residual)

	var correction mat.Dense
	correction.Outer(1.0, &residual, dx)
	jacobian.Add(jacobian, &correction)
}

// jacobian approximates the Jacobian of f at x by forward differences
func (b *Broyden) jacobian(f Func, x *mat.VecDense,
	fx *mat.VecDense) (*mat.Dense, error) {
	n := x.Len()
	jacobian := mat.NewDense(n, n, nil)

	perturbed := mat.NewVecDense(n, nil)
	for j := 0; j < n; j++ {
		perturbed.CopyVec(x)
		perturbed.SetVec(j, perturbed.AtVec(j)+b.step)

		fp := f(perturbed)
		if fp.Len() != n {
			return nil, fmt.Errorf("jacobian: F returns %d values for "+
				"%d unknowns", fp.Len(), n)
		}

		for i := 0; i < n; i++ {
			jacobian.Set(i, j, (fp.AtVec(i)-fx.AtVec(i))/b.step)
		}
	}

	return jacobian, nil
}
