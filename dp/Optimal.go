package dp

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/dgrieger/rlbook/solver"
)

// OptimalValues solves the Bellman optimality equations, finding the
// value function of the best policy as the root of the optimality
// residual with the given numerical solver. The search starts from the
// zero value function.
func OptimalValues(m Model, s solver.Solver) (*mat.VecDense, error) {
	residual := func(v mat.Vector) *mat.VecDense {
		return OptimalityResidual(m, v)
	}

	v, err := s.Solve(residual, mat.NewVecDense(m.NumStates(), nil))
	if err != nil {
		return nil, fmt.Errorf("optimalValues: %w", err)
	}
	return v, nil
}

// GreedyActions returns, for each state, the set of actions whose
// backups under v come within tol of the best backup. With the optimal
// value function this is the set of optimal actions per state.
func GreedyActions(m Model, v mat.Vector, tol float64) [][]int {
	states := m.NumStates()
	greedy := make([][]int, states)

	for s := 0; s < states; s++ {
		backups := make([]float64, m.NumActions())
		best := 0.0
		for a := range backups {
			backups[a] = Backup(m, v, s, a)
			if a == 0 || backups[a] > best {
				best = backups[a]
			}
		}

		for a, backup := range backups {
			if best-backup <= tol {
				greedy[s] = append(greedy[s], a)
			}
		}
	}
	return greedy
}
