// Package envconfig provides configuration structs for configuring
// environments and the exercises run on them. Configurations in this
// package are JSON and YAML serializable.
package envconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	env "github.com/dgrieger/rlbook/environment"
	"github.com/dgrieger/rlbook/environment/blackjack"
	"github.com/dgrieger/rlbook/environment/gridworld"
	ts "github.com/dgrieger/rlbook/timestep"
)

// EnvName stores the name of environments that can be configured with
// this package
type EnvName string

// Environments available for configuration
const (
	Blackjack EnvName = "Blackjack"
	GridWorld EnvName = "GridWorld"
)

// Config implements a specific configuration of a specific environment
// and the exercise run on it. Fields that do not apply to an
// environment are ignored when creating it: the solver fields only
// concern GridWorld and the episode fields only concern Blackjack.
type Config struct {
	Environment     EnvName `json:"environment" yaml:"environment"`
	Seed            uint64  `json:"seed" yaml:"seed"`
	Discount        float64 `json:"discount" yaml:"discount"`
	Episodes        uint    `json:"episodes" yaml:"episodes"`
	ExploringStarts bool    `json:"exploringStarts" yaml:"exploringStarts"`
	FirstVisit      bool    `json:"firstVisit" yaml:"firstVisit"`
	EpisodeCutoff   int     `json:"episodeCutoff" yaml:"episodeCutoff"`
	Tolerance       float64 `json:"tolerance" yaml:"tolerance"`
	MaxIterations   int     `json:"maxIterations" yaml:"maxIterations"`
	DataDir         string  `json:"dataDir" yaml:"dataDir"`
}

// NewConfig returns the default configuration for the named environment
func NewConfig(envName EnvName) Config {
	conf := Config{
		Environment:   envName,
		Seed:          1923812,
		Episodes:      500_000,
		FirstVisit:    true,
		EpisodeCutoff: 1_000,
		Tolerance:     1e-8,
		MaxIterations: 10_000,
		DataDir:       ".",
	}

	switch envName {
	case Blackjack:
		conf.Discount = 1.0
	case GridWorld:
		conf.Discount = 0.9
	}
	return conf
}

// Load reads a Config from a YAML file. Fields absent from the file
// keep the default values for the configured environment.
func Load(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("load: %v", err)
	}

	var named struct {
		Environment EnvName `yaml:"environment"`
	}
	if err := yaml.Unmarshal(data, &named); err != nil {
		return Config{}, fmt.Errorf("load: %v", err)
	}

	conf := NewConfig(named.Environment)
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return Config{}, fmt.Errorf("load: %v", err)
	}

	if conf.Environment != Blackjack && conf.Environment != GridWorld {
		return Config{}, fmt.Errorf("load: no such environment %v",
			conf.Environment)
	}
	return conf, nil
}

// Create returns the environment described by the Config as well as
// the first timestep of the environment
func (c Config) Create() (env.Environment, ts.TimeStep, error) {
	switch c.Environment {
	case Blackjack:
		if c.ExploringStarts {
			b, step := blackjack.NewExploringStarts(c.Seed)
			return b, step, nil
		}
		b, step := blackjack.New(c.Seed)
		return b, step, nil

	case GridWorld:
		rows, cols := 5, 5
		starter := gridworld.NewUniformStart(rows, cols, c.Seed)
		return gridworld.New(rows, cols, gridworld.DefaultTeleports(),
			c.Discount, starter, c.EpisodeCutoff, c.Seed)
	}

	return nil, ts.TimeStep{}, fmt.Errorf("create: cannot create "+
		"environment %v, no such environment", c.Environment)
}
