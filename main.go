package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/logrusorgru/aurora"

	"github.com/dgrieger/rlbook/environment/envconfig"
	"github.com/dgrieger/rlbook/examples"
)

var (
	exercise = flag.String("exercise", "all",
		"which exercise to run: blackjack, gridworld, or all")
	configFile = flag.String("config", "",
		"optional YAML run configuration; overrides the defaults "+
			"for its environment")
)

func main() {
	flag.Parse()

	var loaded *envconfig.Config
	if *configFile != "" {
		conf, err := envconfig.Load(*configFile)
		if err != nil {
			log.Fatalf("could not load config: %v", err)
		}
		loaded = &conf
	}

	runBlackjack := *exercise == "blackjack" || *exercise == "all"
	runGridworld := *exercise == "gridworld" || *exercise == "all"
	if !runBlackjack && !runGridworld {
		log.Fatalf("no such exercise %q", *exercise)
	}

	if runBlackjack {
		conf := configFor(envconfig.Blackjack, loaded)
		fmt.Println(aurora.Bold(aurora.Green("== Blackjack: Monte-Carlo " +
			"prediction ==")))
		if err := examples.Blackjack(conf); err != nil {
			log.Fatal(err)
		}
	}

	if runGridworld {
		conf := configFor(envconfig.GridWorld, loaded)
		fmt.Println(aurora.Bold(aurora.Green("== Gridworld: Bellman " +
			"equations ==")))
		if err := examples.Gridworld(conf); err != nil {
			log.Fatal(err)
		}
	}
}

// configFor returns the loaded configuration when it targets the given
// environment, and the environment's defaults otherwise
func configFor(env envconfig.EnvName, loaded *envconfig.Config) envconfig.Config {
	if loaded != nil && loaded.Environment == env {
		return *loaded
	}
	return envconfig.NewConfig(env)
}
