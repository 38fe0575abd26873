// Package environment outlines the interfaces and structs needed to implement
// concrete environments
package environment

import (
	"gonum.org/v1/gonum/mat"

	"github.com/dgrieger/rlbook/timestep"
)

// Starter implements a distribution of starting states and samples starting
// states for environments
type Starter interface {
	Start() mat.Vector
}

// Task implements the reward scheme for taking actions in some environment
type Task interface {
	GetReward(t timestep.TimeStep, a mat.Vector) float64
	AtGoal(state mat.Matrix) bool
}

// Ender determines when an episode in an environment should be cut off.
// Enders modify a TimeStep in-place, setting its StepType to
// timestep.Last when the episode should end.
type Ender interface {
	End(*timestep.TimeStep) bool
}

// Environment implements a simulated environment. An Environment starts
// ready to use; Reset() restarts it between episodes.
type Environment interface {
	Starter
	Reset() timestep.TimeStep
	Step(action mat.Vector) (timestep.TimeStep, bool)
	RewardSpec() Spec
	DiscountSpec() Spec
	ObservationSpec() Spec
	ActionSpec() Spec
}

// Tabular describes environments with finitely many states and actions
// whose observations can be mapped to a flat state index. Tabular
// learners use this mapping to key their value tables.
type Tabular interface {
	NumStates() int
	NumActions() int
	StateIndex(obs mat.Vector) int
}
