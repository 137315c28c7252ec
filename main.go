package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"machikoro/engine"
	"machikoro/experiments"
	"machikoro/game"
	"machikoro/policy"
	"machikoro/searcher"
)

func main() {
	configPath := flag.String("config", "", "experiment config file; runs a single demo game when empty")
	outputDir := flag.String("out", "results", "output directory for experiment records")
	players := flag.Int("players", 2, "number of players in the demo game (2-4)")
	seed := flag.Uint64("seed", 0, "dice seed for the demo game; 0 seeds from the clock")
	episodes := flag.Int("episodes", 0, "seat an mcts agent with this episode budget in the demo game")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()

	if *configPath != "" {
		config, err := experiments.LoadConfig(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("loading experiment config")
		}
		if err := experiments.Run(config, *outputDir); err != nil {
			log.Fatal().Err(err).Msg("running experiment")
		}
		return
	}

	runDemo(*players, *seed, *episodes)
}

// runDemo plays one game and prints the final table. Seat 0 is greedy, or an
// mcts agent when an episode budget is given; every other seat plays random.
func runDemo(players int, seed uint64, episodes int) {
	if players < 2 || players > 4 {
		log.Fatal().Int("players", players).Msg("demo needs 2 to 4 players")
	}

	policies := make([]policy.Policy, players)
	if episodes > 0 {
		policies[0] = searcher.NewAgent(searcher.NewMCTS(searcher.WithEpisodes(episodes)))
	} else {
		policies[0] = policy.NewGreedy()
	}
	for i := 1; i < players; i++ {
		policies[i] = policy.NewRandom(seed + uint64(i))
	}

	state := game.NewGameState(players, game.WithSeed(seed))
	winner, metric, _ := engine.New(state, policies).Run()

	fmt.Println(state)
	if winner == "" {
		log.Warn().Msg("no winner")
		return
	}
	log.Info().
		Str("winner", winner).
		Str("policy", policies[state.Current].Name()).
		Int("moves", metric.TotalMoves).
		Msg("demo finished")
}
