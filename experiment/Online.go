package experiment

import (
	"fmt"

	"github.com/dgrieger/rlbook/agent"
	env "github.com/dgrieger/rlbook/environment"
	"github.com/dgrieger/rlbook/experiment/trackers"
	ts "github.com/dgrieger/rlbook/timestep"
)

// Online is an Experiment that runs an agent online only: the agent
// learns from every episode it generates, with no offline evaluation.
type Online struct {
	env.Environment
	agent.Agent
	maxEpisodes     uint
	currentEpisodes uint
	trackers        []trackers.Tracker
}

// NewOnline creates and returns a new online experiment on a given
// environment with a given agent. The episodes parameter determines
// how many episodes the experiment is run for, and the t parameter is
// a slice of trackers.Tracker which determine what data is saved.
func NewOnline(e env.Environment, a agent.Agent, episodes uint,
	t []trackers.Tracker) *Online {
	return &Online{e, a, episodes, 0, t}
}

// Register registers a trackers.Tracker with an Experiment so that
// data generated during the experiment can be tracked and saved
func (o *Online) Register(t trackers.Tracker) {
	o.trackers = append(o.trackers, t)
}

// RunEpisode runs a single episode of the experiment
func (o *Online) RunEpisode() error {
	step := o.Environment.Reset()
	if err := o.Agent.ObserveFirst(step); err != nil {
		return fmt.Errorf("runEpisode: %v", err)
	}
	o.track(step)

	for !step.Last() {
		// Select action, step in environment
		action := o.Agent.SelectAction(step)
		step, _ = o.Environment.Step(action)

		// Cache the environment step in each Tracker
		o.track(step)

		// Observe the timestep and step the agent
		if err := o.Agent.Observe(action, step); err != nil {
			return fmt.Errorf("runEpisode: %v", err)
		}
		if err := o.Agent.Step(); err != nil {
			return fmt.Errorf("runEpisode: %v", err)
		}
	}

	o.Agent.EndEpisode()
	o.currentEpisodes++
	return nil
}

// Run runs the entire experiment for all episodes
func (o *Online) Run() error {
	for o.currentEpisodes < o.maxEpisodes {
		if err := o.RunEpisode(); err != nil {
			return err
		}
	}
	return nil
}

// Save saves all the data cached by the Trackers to disk
func (o *Online) Save() {
	for _, tracker := range o.trackers {
		tracker.Save()
	}
}

// track tracks the current timestep by caching its data in each tracker
func (o *Online) track(t ts.TimeStep) {
	for _, tracker := range o.trackers {
		tracker.Track(t)
	}
}
