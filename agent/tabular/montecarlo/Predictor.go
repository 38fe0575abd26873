// Package montecarlo implements Monte-Carlo prediction of value
// functions for fixed policies on tabular environments
package montecarlo

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/dgrieger/rlbook/agent"
	"github.com/dgrieger/rlbook/environment"
	"github.com/dgrieger/rlbook/timestep"
)

// Config holds the prediction hyperparameters
type Config struct {
	// Discount applied to returns when accumulating them backwards
	// through an episode
	Discount float64

	// FirstVisit selects first-visit averaging; otherwise every visit
	// to a state (or state-action pair) in an episode contributes a
	// return to its estimate
	FirstVisit bool
}

// Predictor estimates the state-value function v(s) and action-value
// function q(s, a) of a fixed policy by averaging sampled returns.
//
// A Predictor is an Agent: the embedded Policy generates behaviour,
// while the Learner half records the episode's trajectory through
// ObserveFirst and Observe and commits averaged returns to its value
// tables when the episode ends. Estimates are incremental averages, so
// memory stays constant in the number of episodes.
type Predictor struct {
	agent.Policy
	env  environment.Tabular
	conf Config

	v       *mat.VecDense
	q       *mat.Dense
	vCounts []float64
	qCounts *mat.Dense

	// Current episode trajectory. states[i] is the state in which
	// actions[i] was taken, earning rewards[i].
	states  []int
	actions []int
	rewards []float64
}

// New returns a Predictor estimating the value functions of p on env
func New(p agent.Policy, env environment.Tabular,
	conf Config) (*Predictor, error) {
	if p == nil {
		return nil, fmt.Errorf("newPredictor: no policy to evaluate")
	}
	if conf.Discount < 0.0 || conf.Discount > 1.0 {
		return nil, fmt.Errorf("newPredictor: discount %v not in [0, 1]",
			conf.Discount)
	}

	states, actions := env.NumStates(), env.NumActions()
	return &Predictor{
		Policy:  p,
		env:     env,
		conf:    conf,
		v:       mat.NewVecDense(states, nil),
		q:       mat.NewDense(states, actions, nil),
		vCounts: make([]float64, states),
		qCounts: mat.NewDense(states, actions, nil),
	}, nil
}

// ObserveFirst records the first timestep in an episode
func (p *Predictor) ObserveFirst(t timestep.TimeStep) error {
	if !t.First() {
		return fmt.Errorf("observeFirst: timestep %d is not the first "+
			"in its episode", t.Number)
	}

	state := p.env.StateIndex(t.Observation)
	if state < 0 {
		return fmt.Errorf("observeFirst: observation %v has no state index",
			t.Observation)
	}

	p.states = p.states[:0]
	p.actions = p.actions[:0]
	p.rewards = p.rewards[:0]
	p.states = append(p.states, state)
	return nil
}

// Observe records that an action lead to some timestep
func (p *Predictor) Observe(action mat.Vector, next timestep.TimeStep) error {
	if len(p.states) != len(p.actions)+1 {
		return fmt.Errorf("observe: no state recorded for this action; " +
			"was ObserveFirst called?")
	}

	p.actions = append(p.actions, int(action.AtVec(0)))
	p.rewards = append(p.rewards, next.Reward)

	// Terminal observations have no value and are not indexed
	if !next.Last() {
		state := p.env.StateIndex(next.Observation)
		if state < 0 {
			return fmt.Errorf("observe: observation %v has no state index",
				next.Observation)
		}
		p.states = append(p.states, state)
	}
	return nil
}

// Step is a no-op: Monte-Carlo methods only update once complete
// returns are known, at the end of the episode
func (p *Predictor) Step() error {
	return nil
}

// EndEpisode folds the recorded trajectory into the value estimates.
// Returns are accumulated backwards so each step's return is computed
// in constant time.
func (p *Predictor) EndEpisode() {
	var G float64
	for i := len(p.actions) - 1; i >= 0; i-- {
		G = p.conf.Discount*G + p.rewards[i]

		s, a := p.states[i], p.actions[i]

		if !p.conf.FirstVisit || p.firstStateVisit(i) {
			p.vCounts[s]++
			p.v.SetVec(s, p.v.AtVec(s)+(G-p.v.AtVec(s))/p.vCounts[s])
		}

		if !p.conf.FirstVisit || p.firstPairVisit(i) {
			count := p.qCounts.At(s, a) + 1
			p.qCounts.Set(s, a, count)
			p.q.Set(s, a, p.q.At(s, a)+(G-p.q.At(s, a))/count)
		}
	}

	p.states = p.states[:0]
	p.actions = p.actions[:0]
	p.rewards = p.rewards[:0]
}

// firstStateVisit reports whether step i is the episode's first visit
// to its state
func (p *Predictor) firstStateVisit(i int) bool {
	for j := 0; j < i; j++ {
		if p.states[j] == p.states[i] {
			return false
		}
	}
	return true
}

// firstPairVisit reports whether step i is the episode's first visit
// to its state-action pair
func (p *Predictor) firstPairVisit(i int) bool {
	for j := 0; j < i; j++ {
		if p.states[j] == p.states[i] && p.actions[j] == p.actions[i] {
			return false
		}
	}
	return true
}

// V returns the current state-value estimates, indexed by the
// environment's state indices
func (p *Predictor) V() *mat.VecDense {
	out := mat.NewVecDense(p.v.Len(), nil)
	out.CopyVec(p.v)
	return out
}

// Q returns the current action-value estimates as a state-by-action
// matrix
func (p *Predictor) Q() *mat.Dense {
	var out mat.Dense
	out.CloneFrom(p.q)
	return &out
}

// Visits returns how many returns have been averaged into each state's
// estimate
func (p *Predictor) Visits(state int) int {
	return int(p.vCounts[state])
}
