// Package dp implements exact planners for environments that expose
// their full transition model
package dp

import (
	"gonum.org/v1/gonum/mat"
)

// Model describes a finite Markov decision process through its
// four-argument dynamics p(next, reward | action, state), where reward
// indexes the Rewards() slice
type Model interface {
	Prob(next, reward, action, state int) float64
	Rewards() []float64
	NumStates() int
	NumActions() int
	Discount() float64
}

// Backup computes the one-step Bellman backup for a state-action pair:
// the expected immediate reward plus the discounted value of the
// successor state under v
func Backup(m Model, v mat.Vector, state, action int) float64 {
	rewards := m.Rewards()
	gamma := m.Discount()

	var backup float64
	for next := 0; next < m.NumStates(); next++ {
		for r := range rewards {
			p := m.Prob(next, r, action, state)
			if p == 0 {
				continue
			}
			backup += p * (rewards[r] + gamma*v.AtVec(next))
		}
	}
	return backup
}

// Residual returns the Bellman-equation residual of v under a policy:
// for each state, the policy-weighted backup minus v(s). A value
// function solving the Bellman equations has zero residual.
func Residual(m Model, v mat.Vector, policy mat.Matrix) *mat.VecDense {
	states := m.NumStates()
	residual := mat.NewVecDense(states, nil)

	for s := 0; s < states; s++ {
		var expected float64
		for a := 0; a < m.NumActions(); a++ {
			expected += policy.At(s, a) * Backup(m, v, s, a)
		}
		residual.SetVec(s, expected-v.AtVec(s))
	}
	return residual
}

// OptimalityResidual returns the Bellman optimality residual of v:
// for each state, the best single-action backup minus v(s). The
// optimal value function is the root of this residual.
func OptimalityResidual(m Model, v mat.Vector) *mat.VecDense {
	states := m.NumStates()
	residual := mat.NewVecDense(states, nil)

	for s := 0; s < states; s++ {
		best := Backup(m, v, s, 0)
		for a := 1; a < m.NumActions(); a++ {
			if backup := Backup(m, v, s, a); backup > best {
				best = backup
			}
		}
		residual.SetVec(s, best-v.AtVec(s))
	}
	return residual
}
