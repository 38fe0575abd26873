// Package policy implements fixed policies over tabular state spaces
package policy

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/dgrieger/rlbook/timestep"
)

// Table implements a table-driven policy: the action is read from a
// fixed table indexed by one scalar feature of the observation. The
// blackjack stick/hit tables indexed by the player's hand value are
// policies of this form.
type Table struct {
	actions []int
	offset  int
	feature int
}

// NewTable returns a policy reading its action from actions, indexed
// by observation element feature shifted down by offset. Every entry
// must name one of the environment's numActions actions.
func NewTable(actions []int, offset, feature,
	numActions int) (*Table, error) {
	if len(actions) == 0 {
		return nil, fmt.Errorf("newTable: empty action table")
	}
	if feature < 0 {
		return nil, fmt.Errorf("newTable: negative feature index %d", feature)
	}
	for i, a := range actions {
		if a < 0 || a >= numActions {
			return nil, fmt.Errorf("newTable: entry %d names action %d, "+
				"environment has %d actions", i, a, numActions)
		}
	}

	table := make([]int, len(actions))
	copy(table, actions)

	return &Table{actions: table, offset: offset, feature: feature}, nil
}

// SelectAction reads the action for the current observation from the
// table
func (p *Table) SelectAction(t timestep.TimeStep) *mat.VecDense {
	value := int(t.Observation.AtVec(p.feature)) - p.offset
	if value < 0 || value >= len(p.actions) {
		panic(fmt.Sprintf("selectAction: observation value %d outside "+
			"action table of length %d", value+p.offset, len(p.actions)))
	}

	return mat.NewVecDense(1, []float64{float64(p.actions[value])})
}

// Action returns the table entry for a raw (unshifted) feature value
func (p *Table) Action(value int) int {
	return p.actions[value-p.offset]
}
