// Package experiment implements functionality for running an experiment
package experiment

import (
	ts "github.com/dgrieger/rlbook/timestep"

	"github.com/dgrieger/rlbook/experiment/trackers"
)

// Interface Experiment outlines structs that can run experiments.
// Experiments track environment TimeSteps, caching each TimeStep's
// data in RAM to be later saved to disk. The Save() function
// will then take all cached data and save it to disk. This is usually
// performed after an experiment has been run. The Run() method will
// run all episodes until the episode budget is exhausted. The
// RunEpisode() function will run a single episode.
//
// In order to save data, Experiments use Trackers. Trackers determine
// which data generated during the experiment is saved. Experiments
// send each TimeStep to Trackers using the Tracker's Track() method.
// The Tracker then determines which data from the TimeStep it caches
// and saves. New Trackers can be registered with an Experiment through
// the constructor or through an Experiment's Register() function.
type Experiment interface {
	Run() error
	RunEpisode() error

	// Save all tracked data to disk
	Save()

	// Adds a new Tracker to the (possibly already running) experiment.
	// Useful if you want to track data only after a specified event.
	Register(t trackers.Tracker)

	// Tracks current timestep by sending it to Trackers
	track(ts.TimeStep)
}
