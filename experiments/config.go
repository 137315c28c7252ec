package experiments

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Agent kinds accepted in experiment configs.
const (
	KindRandom = "random"
	KindGreedy = "greedy"
	KindMCTS   = "mcts"
)

// AgentSpec configures one seated agent. Search settings only apply to the
// mcts kind.
type AgentSpec struct {
	Kind       string        `yaml:"kind"`
	Seed       uint64        `yaml:"seed"`
	Goroutines int           `yaml:"goroutines"`
	Episodes   int           `yaml:"episodes"`
	Duration   time.Duration `yaml:"duration"`
	Cutoff     int           `yaml:"cutoff"`
}

// Config describes one experiment: a fixed table of agents playing a number
// of games.
type Config struct {
	Name   string      `yaml:"name"`
	Games  int         `yaml:"games"`
	Seed   uint64      `yaml:"seed"`
	Agents []AgentSpec `yaml:"agents"`
}

// DefaultConfig is a quick smoke matchup of a greedy agent against a random
// one.
func DefaultConfig() Config {
	return Config{
		Name:  "greedy-vs-random",
		Games: 10,
		Seed:  1,
		Agents: []AgentSpec{
			{Kind: KindGreedy},
			{Kind: KindRandom, Seed: 1},
		},
	}
}

// LoadConfig reads a YAML experiment config and validates it.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	config := DefaultConfig()
	config.Agents = nil
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate checks table size, agent kinds, and search settings.
func (c Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("config: name is required")
	}
	if c.Games < 1 {
		return fmt.Errorf("config: games must be at least 1, got %d", c.Games)
	}
	if len(c.Agents) < 2 || len(c.Agents) > 4 {
		return fmt.Errorf("config: need 2 to 4 agents, got %d", len(c.Agents))
	}
	for i, agent := range c.Agents {
		switch agent.Kind {
		case KindRandom, KindGreedy:
		case KindMCTS:
			if agent.Episodes <= 0 && agent.Duration <= 0 {
				return fmt.Errorf("config: agent %d needs episodes or duration", i)
			}
			if agent.Goroutines < 0 || agent.Cutoff < 0 {
				return fmt.Errorf("config: agent %d has negative search settings", i)
			}
		default:
			return fmt.Errorf("config: agent %d has unknown kind %q", i, agent.Kind)
		}
	}
	return nil
}
