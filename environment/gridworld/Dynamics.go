package gridworld

import (
	"fmt"

	"gorgonia.org/tensor"
)

// Directions an agent can move in a GridWorld. Action vectors hold one
// of these values in their single element.
const (
	Left int = iota
	Right
	Up
	Down
)

// NumActions is the number of actions available in every GridWorld state
const NumActions int = 4

// Teleport is a grid cell that sends the agent to a fixed landing cell
// with a fixed reward, regardless of the action taken. Cells are given
// as flat state indices (row*cols + col).
type Teleport struct {
	From   int
	To     int
	Reward float64
}

// Dynamics holds the full transition model of a GridWorld as a
// 4-dimensional probability tensor p(next, reward, action, state),
// constructed once from the grid geometry and the teleport cells.
//
// The tensor has shape (S, R, A, S) where S is the number of states,
// A the number of actions and R the number of distinct reward values.
// Entry (s', r, a, s) is the probability of landing in s' with the
// r'th reward value after taking action a in state s. Moves that
// would leave the grid keep the state unchanged and earn the step-off
// penalty; all other ordinary moves earn the neutral reward.
type Dynamics struct {
	rows, cols int
	probs      *tensor.Dense
	rewards    []float64
	discount   float64
}

// Reward values indexed by the reward axis of the dynamics tensor. The
// teleport rewards are appended after these two.
const (
	offGrid float64 = -1.0
	neutral float64 = 0.0
)

// NewDynamics constructs the transition model for a rows x cols grid
// with the given teleport cells and discount factor.
func NewDynamics(rows, cols int, teleports []Teleport,
	discount float64) (*Dynamics, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("newDynamics: non-positive grid size (%d, %d)",
			rows, cols)
	}
	if discount < 0.0 || discount > 1.0 {
		return nil, fmt.Errorf("newDynamics: discount %v not in [0, 1]",
			discount)
	}

	states := rows * cols
	byState := make(map[int]Teleport, len(teleports))
	rewards := []float64{offGrid, neutral}
	for _, tp := range teleports {
		if tp.From < 0 || tp.From >= states || tp.To < 0 || tp.To >= states {
			return nil, fmt.Errorf("newDynamics: teleport %d -> %d outside "+
				"grid of %d states", tp.From, tp.To, states)
		}
		if _, ok := byState[tp.From]; ok {
			return nil, fmt.Errorf("newDynamics: duplicate teleport at "+
				"state %d", tp.From)
		}
		byState[tp.From] = tp
		rewards = append(rewards, tp.Reward)
	}

	probs := tensor.New(
		tensor.WithShape(states, len(rewards), NumActions, states),
		tensor.Of(tensor.Float64),
	)

	d := &Dynamics{
		rows:     rows,
		cols:     cols,
		probs:    probs,
		rewards:  rewards,
		discount: discount,
	}

	for s := 0; s < states; s++ {
		for a := 0; a < NumActions; a++ {
			next, reward := d.move(s, a, byState)
			d.setProb(next, d.rewardIndex(reward), a, s, 1.0)
		}
	}

	return d, nil
}

// move applies the deterministic grid rules: teleports fire for every
// action, off-grid moves leave the state unchanged.
func (d *Dynamics) move(s, a int, teleports map[int]Teleport) (int, float64) {
	if tp, ok := teleports[s]; ok {
		return tp.To, tp.Reward
	}

	row, col := s/d.cols, s%d.cols
	switch a {
	case Left:
		col--
	case Right:
		col++
	case Up:
		row--
	case Down:
		row++
	}

	if row < 0 || row >= d.rows || col < 0 || col >= d.cols {
		return s, offGrid
	}
	return row*d.cols + col, neutral
}

func (d *Dynamics) rewardIndex(reward float64) int {
	for i, r := range d.rewards {
		if r == reward {
			return i
		}
	}
	panic(fmt.Sprintf("rewardIndex: no such reward value %v", reward))
}

func (d *Dynamics) setProb(next, reward, action, state int, p float64) {
	err := d.probs.SetAt(p, next, reward, action, state)
	if err != nil {
		panic(fmt.Sprintf("setProb: out-of-range tensor index: %v", err))
	}
}

// Prob returns p(next, reward | action, state), where reward indexes
// the Rewards() slice
func (d *Dynamics) Prob(next, reward, action, state int) float64 {
	p, err := d.probs.At(next, reward, action, state)
	if err != nil {
		panic(fmt.Sprintf("prob: out-of-range tensor index: %v", err))
	}
	return p.(float64)
}

// Tensor returns the underlying dynamics tensor of shape
// (states, rewards, actions, states)
func (d *Dynamics) Tensor() *tensor.Dense {
	return d.probs
}

// Rewards returns the distinct reward values, in the order they are
// indexed on the reward axis of the dynamics tensor
func (d *Dynamics) Rewards() []float64 {
	return d.rewards
}

// NumStates returns the number of states in the grid
func (d *Dynamics) NumStates() int {
	return d.rows * d.cols
}

// NumActions returns the number of actions available in each state
func (d *Dynamics) NumActions() int {
	return NumActions
}

// Discount returns the discount factor of the model
func (d *Dynamics) Discount() float64 {
	return d.discount
}

// Dims gets the rows and columns of the grid
func (d *Dynamics) Dims() (r, c int) {
	return d.rows, d.cols
}

// ExpectedReward returns the expected immediate reward of taking
// action a in state s
func (d *Dynamics) ExpectedReward(s, a int) float64 {
	var expected float64
	for next := 0; next < d.NumStates(); next++ {
		for r := range d.rewards {
			expected += d.Prob(next, r, a, s) * d.rewards[r]
		}
	}
	return expected
}
