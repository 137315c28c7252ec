package experiments

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"machikoro/engine"
	"machikoro/experiments/metrics"
	"machikoro/game"
	"machikoro/policy"
	"machikoro/searcher"
)

// Run plays the configured matchup and writes agent, game, and move records
// as CSV under <outputDir>/<name>/<timestamp>.
func Run(config Config, outputDir string) error {
	if err := config.Validate(); err != nil {
		return err
	}

	writer, err := metrics.NewWriter(outputDir, config.Name)
	if err != nil {
		return err
	}
	logger := log.With().Str("experiment", config.Name).Logger()
	logger.Info().
		Int("games", config.Games).
		Int("agents", len(config.Agents)).
		Str("output", writer.Dir()).
		Msg("experiment started")

	configs := make([]metrics.AgentConfig, len(config.Agents))
	policies := make([]policy.Policy, len(config.Agents))
	seats := make([]int, len(config.Agents))
	for i, spec := range config.Agents {
		configs[i] = agentConfig(i, spec)
		policies[i] = buildPolicy(spec)
		seats[i] = i
	}

	gameRecords := make([]metrics.GameRecord, 0, config.Games)
	moveRecords := make([]metrics.MoveRecord, 0, config.Games*128)
	wins := make(map[string]int)
	for i := 0; i < config.Games; i++ {
		state := game.NewGameState(len(policies), game.WithSeed(config.Seed+uint64(i)))
		e := engine.New(state, policies)
		winner, gameMetric, moveMetrics := e.Run()

		gameRecords = append(gameRecords, metrics.GameRecord{
			GameMetric: gameMetric,
			Agents:     seats,
		})
		for _, move := range moveMetrics {
			moveRecords = append(moveRecords, metrics.MoveRecord{
				Game:       gameMetric.ID,
				MoveMetric: move,
			})
		}
		wins[winner]++
		logger.Info().
			Int("game", i+1).
			Str("winner", winner).
			Int("moves", gameMetric.TotalMoves).
			Msg("game finished")
	}

	if err := writer.WriteAgentConfigs(configs); err != nil {
		return err
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return err
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return err
	}

	for player, count := range wins {
		logger.Info().Str("player", player).Int("wins", count).Msg("standing")
	}
	logger.Info().Str("output", writer.Dir()).Msg("experiment completed")
	return nil
}

func agentConfig(id int, spec AgentSpec) metrics.AgentConfig {
	return metrics.AgentConfig{
		ID:         id,
		Kind:       spec.Kind,
		Seed:       spec.Seed,
		Goroutines: spec.Goroutines,
		Episodes:   spec.Episodes,
		Duration:   spec.Duration,
		Cutoff:     spec.Cutoff,
	}
}

// buildPolicy seats one agent. Config validation has already vetted the kind.
func buildPolicy(spec AgentSpec) policy.Policy {
	switch spec.Kind {
	case KindRandom:
		return policy.NewRandom(spec.Seed)
	case KindGreedy:
		return policy.NewGreedy()
	case KindMCTS:
		options := []searcher.Option{searcher.WithMetrics(metrics.NewCollector())}
		if spec.Goroutines > 0 {
			options = append(options, searcher.WithGoroutines(spec.Goroutines))
		}
		if spec.Duration > 0 {
			options = append(options, searcher.WithDuration(spec.Duration))
		} else if spec.Episodes > 0 {
			options = append(options, searcher.WithEpisodes(spec.Episodes))
		}
		if spec.Cutoff > 0 {
			options = append(options, searcher.WithCutoff(spec.Cutoff))
		}
		return searcher.NewAgent(searcher.NewMCTS(options...))
	default:
		panic(fmt.Sprintf("unknown agent kind %q", spec.Kind))
	}
}
