package policy

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/dgrieger/rlbook/environment"
	"github.com/dgrieger/rlbook/timestep"
	"github.com/dgrieger/rlbook/utils/matutils"
)

// Greedy selects the action with the highest estimated action value in
// each state. The value table is held by reference, so a learner
// updating the table changes the actions Greedy selects.
type Greedy struct {
	values  mat.Matrix // states x actions
	indexer environment.Tabular
}

// NewGreedy returns a greedy policy over the action values in values,
// whose rows are keyed by env's state indices
func NewGreedy(values mat.Matrix, env environment.Tabular) (*Greedy, error) {
	r, c := values.Dims()
	if r != env.NumStates() || c != env.NumActions() {
		return nil, fmt.Errorf("newGreedy: value table is (%d, %d), "+
			"environment has %d states and %d actions", r, c,
			env.NumStates(), env.NumActions())
	}

	return &Greedy{values: values, indexer: env}, nil
}

// SelectAction selects the greedy action for the current observation.
// Ties go to the lowest-numbered action.
func (p *Greedy) SelectAction(t timestep.TimeStep) *mat.VecDense {
	state := p.indexer.StateIndex(t.Observation)
	if state < 0 {
		panic(fmt.Sprintf("selectAction: observation %v has no state index",
			t.Observation))
	}

	row := p.values.(mat.RowViewer).RowView(state)
	action := matutils.MaxVec(row)

	return mat.NewVecDense(1, []float64{float64(action)})
}
