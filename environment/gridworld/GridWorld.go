// Package gridworld implements 2D gridworld environments with explicit
// transition models
package gridworld

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/dgrieger/rlbook/environment"
	"github.com/dgrieger/rlbook/timestep"
	"github.com/dgrieger/rlbook/utils/floatutils"
	"github.com/dgrieger/rlbook/utils/matutils"
)

// GridWorld represents a continuing gridworld environment backed by a
// Dynamics transition model. The grid is represented as a flattened
// matrix, and observations are one-hot vectors over the grid cells.
//
// A GridWorld never reaches a goal state; rollouts are cut into
// episodes by a step limit.
type GridWorld struct {
	*Dynamics
	environment.Starter
	ender       environment.Ender
	source      rand.Source
	position    int
	currentStep timestep.TimeStep
}

// New creates a new gridworld with r rows and c columns, the given
// teleport cells, discount factor, start-state distribution and
// episode cutoff
func New(r, c int, teleports []Teleport, discount float64,
	s environment.Starter, cutoff int,
	seed uint64) (*GridWorld, timestep.TimeStep, error) {
	dynamics, err := NewDynamics(r, c, teleports, discount)
	if err != nil {
		return nil, timestep.TimeStep{}, fmt.Errorf("new: %v", err)
	}

	g := &GridWorld{
		Dynamics: dynamics,
		Starter:  s,
		ender:    environment.NewStepLimit(cutoff),
		source:   rand.NewSource(seed),
	}

	return g, g.Reset(), nil
}

// NewDefault creates the classic 5x5 gridworld of the introductory
// exercises: teleport cell A at (0, 1) lands at (4, 1) with reward +10
// and teleport cell B at (0, 3) lands at (2, 3) with reward +5, with
// 0.9 discounting and a uniform start-state distribution.
func NewDefault(cutoff int, seed uint64) (*GridWorld, timestep.TimeStep,
	error) {
	r, c := 5, 5
	starter := NewUniformStart(r, c, seed)
	return New(r, c, DefaultTeleports(), 0.9, starter, cutoff, seed)
}

// DefaultTeleports returns the A and B teleport cells of the classic
// 5x5 gridworld
func DefaultTeleports() []Teleport {
	return []Teleport{
		{From: 1, To: 21, Reward: 10.0},
		{From: 3, To: 13, Reward: 5.0},
	}
}

// Reset resets the GridWorld between episodes, sampling a new start
// state from its Starter
func (g *GridWorld) Reset() timestep.TimeStep {
	startVec := g.Start()
	g.position = g.StateIndex(startVec)
	obs := g.getObservation()

	startStep := timestep.New(timestep.First, 0, g.Discount(), obs, 0)
	g.currentStep = startStep
	return startStep
}

// Step takes a single environmental step given some action, sampling
// the successor state and reward from the dynamics tensor
func (g *GridWorld) Step(action mat.Vector) (timestep.TimeStep, bool) {
	if l := action.Len(); l != 1 {
		panic(fmt.Sprintf("step: action dimension - want 1, have %d", l))
	}
	direction := int(action.AtVec(0))
	if direction < 0 || direction >= NumActions {
		panic(fmt.Sprintf("step: no such action %d", direction))
	}

	next, reward := g.sample(g.position, direction)
	g.position = next

	number := g.currentStep.Number + 1
	step := timestep.New(timestep.Mid, reward, g.Discount(),
		g.getObservation(), number)
	last := g.ender.End(&step)
	g.currentStep = step

	return step, last
}

// sample draws (next state, reward) from p(., . | action, state)
func (g *GridWorld) sample(state, action int) (int, float64) {
	states := g.NumStates()
	rewards := g.Rewards()

	weights := make([]float64, states*len(rewards))
	for next := 0; next < states; next++ {
		for r := range rewards {
			weights[next*len(rewards)+r] = g.Prob(next, r, action, state)
		}
	}

	dist := distuv.NewCategorical(weights, g.source)
	outcome := int(dist.Rand())

	return outcome / len(rewards), rewards[outcome%len(rewards)]
}

// GetReward returns the expected immediate reward of taking action a
// at the state observed in timestep t
func (g *GridWorld) GetReward(t timestep.TimeStep, a mat.Vector) float64 {
	state := g.StateIndex(t.Observation)
	return g.ExpectedReward(state, int(a.AtVec(0)))
}

// AtGoal always returns false: the gridworld is a continuing
// environment with no terminal states
func (g *GridWorld) AtGoal(state mat.Matrix) bool {
	return false
}

// StateIndex converts a one-hot observation vector to a flat state index
func (g *GridWorld) StateIndex(obs mat.Vector) int {
	for i := 0; i < obs.Len(); i++ {
		if obs.AtVec(i) != 0.0 {
			return i
		}
	}
	return -1
}

// At checks the value at position (i, j) in the gridworld. A value of 1.0
// indicates that the agent is at position (i, j).
func (g *GridWorld) At(i, j int) float64 {
	_, c := g.Dims()
	if (i*c)+j == g.position {
		return 1.0
	}
	return 0.0
}

func (g *GridWorld) getObservation() *mat.VecDense {
	position := mat.NewVecDense(g.NumStates(), nil)
	position.SetVec(g.position, 1.0)
	return position
}

// ObservationSpec returns the observation specification of the environment
func (g *GridWorld) ObservationSpec() environment.Spec {
	states := g.NumStates()
	shape := mat.NewVecDense(states, nil)
	lowerBound := mat.NewVecDense(states, nil)
	upperBound := matutils.VecOnes(states)

	return environment.NewSpec(shape, environment.Observation, lowerBound,
		upperBound, environment.Discrete)
}

// ActionSpec returns the action specification of the environment
func (g *GridWorld) ActionSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{float64(Left)})
	upperBound := mat.NewVecDense(1, []float64{float64(Down)})

	return environment.NewSpec(shape, environment.Action, lowerBound,
		upperBound, environment.Discrete)
}

// RewardSpec returns the reward specification of the environment
func (g *GridWorld) RewardSpec() environment.Spec {
	rewards := g.Rewards()
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{floatutils.Min(rewards...)})
	upperBound := mat.NewVecDense(1, []float64{floatutils.Max(rewards...)})

	return environment.NewSpec(shape, environment.Reward, lowerBound,
		upperBound, environment.Discrete)
}

// DiscountSpec returns the discount specification of the environment
func (g *GridWorld) DiscountSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	bound := mat.NewVecDense(1, []float64{g.Discount()})

	return environment.NewSpec(shape, environment.Discount, bound, bound,
		environment.Continuous)
}

func (g *GridWorld) String() string {
	r, c := g.Dims()
	return fmt.Sprintf("GridWorld | At: %d  |  Bounds: (%d, %d)",
		g.position, r, c)
}
