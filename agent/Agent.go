// Package agent defines an agent interface
package agent

import (
	"gonum.org/v1/gonum/mat"

	"github.com/dgrieger/rlbook/timestep"
)

// Agent determines the implementation details of an agent or algorithm
//
// An Agent is composed of a Learner, which learns value estimates, and
// a Policy which chooses actions in each state. For prediction, the
// Policy is fixed and the Learner estimates its value functions from
// the experience the Policy generates.
type Agent interface {
	Learner
	Policy
}

// Learner implements a learning algorithm that defines how value
// estimates are updated.
type Learner interface {
	// Step performs a single update to the learner
	Step() error

	// Observe records that an action lead to some timestep
	Observe(action mat.Vector, nextObs timestep.TimeStep) error

	// ObserveFirst records the first timestep in an episode
	ObserveFirst(timestep.TimeStep) error

	// EndEpisode performs cleanup at the end of an episode
	EndEpisode()
}

// Policy represents a policy that an agent can have.
//
// Policies determine how agents select actions given the current
// environment timestep.
type Policy interface {
	SelectAction(t timestep.TimeStep) *mat.VecDense
}
