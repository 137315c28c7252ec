package experiments

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "experiment.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
name: mcts-vs-greedy
games: 20
seed: 42
agents:
  - kind: mcts
    goroutines: 4
    episodes: 500
    cutoff: 100
  - kind: greedy
`)

	config, err := LoadConfig(path)

	require.NoError(t, err)
	require.Equal(t, "mcts-vs-greedy", config.Name)
	require.Equal(t, 20, config.Games)
	require.Equal(t, uint64(42), config.Seed)
	require.Len(t, config.Agents, 2)
	require.Equal(t, KindMCTS, config.Agents[0].Kind)
	require.Equal(t, 500, config.Agents[0].Episodes)
	require.Equal(t, KindGreedy, config.Agents[1].Kind)
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
agents:
  - kind: random
  - kind: random
`)

	config, err := LoadConfig(path)

	require.NoError(t, err)
	require.Equal(t, DefaultConfig().Name, config.Name)
	require.Equal(t, DefaultConfig().Games, config.Games)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := DefaultConfig()

	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"default", func(c *Config) {}, true},
		{"no name", func(c *Config) { c.Name = "" }, false},
		{"zero games", func(c *Config) { c.Games = 0 }, false},
		{"one agent", func(c *Config) { c.Agents = c.Agents[:1] }, false},
		{"five agents", func(c *Config) {
			for len(c.Agents) < 5 {
				c.Agents = append(c.Agents, AgentSpec{Kind: KindRandom})
			}
		}, false},
		{"unknown kind", func(c *Config) { c.Agents[0].Kind = "alphazero" }, false},
		{"mcts without budget", func(c *Config) { c.Agents[0] = AgentSpec{Kind: KindMCTS} }, false},
		{"mcts with episodes", func(c *Config) {
			c.Agents[0] = AgentSpec{Kind: KindMCTS, Episodes: 100}
		}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			config := base
			config.Agents = append([]AgentSpec(nil), base.Agents...)
			tc.mutate(&config)
			if tc.ok {
				require.NoError(t, config.Validate())
			} else {
				require.Error(t, config.Validate())
			}
		})
	}
}

func TestBuildPolicyKinds(t *testing.T) {
	require.Equal(t, "random", buildPolicy(AgentSpec{Kind: KindRandom}).Name())
	require.Equal(t, "greedy", buildPolicy(AgentSpec{Kind: KindGreedy}).Name())
	require.Equal(t, "mcts", buildPolicy(AgentSpec{Kind: KindMCTS, Episodes: 10}).Name())
}

func TestRunWritesRecords(t *testing.T) {
	config := Config{
		Name:  "smoke",
		Games: 2,
		Seed:  3,
		Agents: []AgentSpec{
			{Kind: KindGreedy},
			{Kind: KindRandom, Seed: 3},
		},
	}
	outputDir := t.TempDir()

	require.NoError(t, Run(config, outputDir))

	runs, err := os.ReadDir(filepath.Join(outputDir, "smoke"))
	require.NoError(t, err)
	require.Len(t, runs, 1)
	for _, filename := range []string{"agent_configs.csv", "game_records.csv", "move_records.csv"} {
		data, err := os.ReadFile(filepath.Join(outputDir, "smoke", runs[0].Name(), filename))
		require.NoError(t, err)
		require.NotEmpty(t, data)
	}
}
