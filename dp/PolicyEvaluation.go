package dp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// PolicyEvaluation solves the Bellman equations for a fixed stochastic
// policy exactly, by assembling the linear system (I - gamma P) v = r
// and solving it with a dense LU factorization. The policy argument is
// a state-by-action matrix of action probabilities; each row must be a
// probability distribution.
func PolicyEvaluation(m Model, policy mat.Matrix) (*mat.VecDense, error) {
	states, actions := m.NumStates(), m.NumActions()

	if r, c := policy.Dims(); r != states || c != actions {
		return nil, fmt.Errorf("policyEvaluation: policy is (%d, %d), "+
			"model has %d states and %d actions", r, c, states, actions)
	}
	for s := 0; s < states; s++ {
		var total float64
		for a := 0; a < actions; a++ {
			total += policy.At(s, a)
		}
		if math.Abs(total-1.0) > 1e-9 {
			return nil, fmt.Errorf("policyEvaluation: action probabilities "+
				"in state %d sum to %v", s, total)
		}
	}

	rewards := m.Rewards()
	gamma := m.Discount()

	// system = I - gamma * P_policy, rhs = expected one-step reward
	system := mat.NewDense(states, states, nil)
	rhs := mat.NewVecDense(states, nil)

	for s := 0; s < states; s++ {
		system.Set(s, s, 1.0)

		for a := 0; a < actions; a++ {
			prob := policy.At(s, a)
			if prob == 0 {
				continue
			}

			for next := 0; next < states; next++ {
				for r := range rewards {
					p := prob * m.Prob(next, r, a, s)
					if p == 0 {
						continue
					}
					system.Set(s, next, system.At(s, next)-gamma*p)
					rhs.SetVec(s, rhs.AtVec(s)+p*rewards[r])
				}
			}
		}
	}

	v := mat.NewVecDense(states, nil)
	if err := v.SolveVec(system, rhs); err != nil {
		return nil, fmt.Errorf("policyEvaluation: singular Bellman "+
			"system: %v", err)
	}
	return v, nil
}
