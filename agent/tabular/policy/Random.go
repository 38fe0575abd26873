package policy

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/dgrieger/rlbook/timestep"
)

// Random implements the equiprobable-random policy over a discrete
// action set
type Random struct {
	dist    distuv.Categorical
	actions int
}

// NewRandom returns a policy selecting uniformly among actions
// (0, 1, ... actions-1)
func NewRandom(actions int, seed uint64) *Random {
	weights := make([]float64, actions)
	for i := range weights {
		weights[i] = 1.0 / float64(actions)
	}

	source := rand.NewSource(seed)
	return &Random{distuv.NewCategorical(weights, source), actions}
}

// SelectAction selects an action uniformly at random
func (p *Random) SelectAction(t timestep.TimeStep) *mat.VecDense {
	return mat.NewVecDense(1, []float64{p.dist.Rand()})
}

// Prob returns the probability of selecting each action, as the
// rows of a state-by-action matrix for a tabular environment with
// the given number of states
func (p *Random) Prob(states int) *mat.Dense {
	probs := mat.NewDense(states, p.actions, nil)
	for s := 0; s < states; s++ {
		for a := 0; a < p.actions; a++ {
			probs.Set(s, a, 1.0/float64(p.actions))
		}
	}
	return probs
}
