package policy

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/dgrieger/rlbook/agent"
	"github.com/dgrieger/rlbook/timestep"
)

// ExploringStarts wraps a policy so that the first action of every
// episode is selected uniformly at random while all later actions come
// from the wrapped policy. Together with an environment that starts in
// uniformly random states this guarantees every state-action pair is
// visited, which action-value prediction needs for states the wrapped
// policy would otherwise never act in.
type ExploringStarts struct {
	agent.Policy
	first distuv.Categorical
}

// NewExploringStarts wraps p so episodes open with a uniformly random
// choice among actions (0, 1, ... actions-1)
func NewExploringStarts(p agent.Policy, actions int,
	seed uint64) *ExploringStarts {
	weights := make([]float64, actions)
	for i := range weights {
		weights[i] = 1.0 / float64(actions)
	}

	source := rand.NewSource(seed)
	return &ExploringStarts{
		Policy: p,
		first:  distuv.NewCategorical(weights, source),
	}
}

// SelectAction selects a random action on the first timestep of an
// episode and defers to the wrapped policy afterwards
func (p *ExploringStarts) SelectAction(t timestep.TimeStep) *mat.VecDense {
	if t.First() {
		return mat.NewVecDense(1, []float64{p.first.Rand()})
	}
	return p.Policy.SelectAction(t)
}
