package env

import (
	"testing"

	"github.com/stretchr/testify/require"

	"machikoro/game"
	"machikoro/policy"
)

func newTestEnv(players, agent int) *Env {
	return New(players, agent, policy.NewRandom(1), game.WithTestMode(), game.WithSeed(1))
}

func TestResetReturnsInitialObservation(t *testing.T) {
	e := newTestEnv(4, 0)

	obs := e.Reset()

	require.Len(t, obs, 4*observationWidth)
	require.Equal(t, 0, e.State().Current)
	require.Equal(t, game.RollDice, e.State().Turn)
	require.Equal(t, float64(game.RollDice), obs[0], "agent row carries the sub-state")
	for seat := 1; seat < 4; seat++ {
		require.Equal(t, -1.0, obs[seat*observationWidth], "idle rows carry no sub-state")
	}
	// Starting position: 3 coins, one wheat field, one bakery.
	require.Equal(t, 3.0, obs[1])
	require.Equal(t, 1.0, obs[2+int(game.WheatField)])
	require.Equal(t, 1.0, obs[2+int(game.Bakery)])
}

func TestAgentSeatedLast(t *testing.T) {
	e := newTestEnv(4, 3)

	require.Equal(t, 3, e.State().Current, "fillers play through before the first step")
	require.Equal(t, game.RollDice, e.State().Turn)

	result := e.Step(game.Roll1, game.Dice{D1: 1})

	require.Equal(t, 3, e.State().Current)
	require.Equal(t, game.MayBuy, e.State().Turn)
	require.False(t, result.TurnEnded)
	require.False(t, result.Done)
	require.Equal(t, float64(game.MayBuy), result.Observation[0])
}

func TestIllegalActionKeepsTurn(t *testing.T) {
	e := newTestEnv(2, 0)

	result := e.Step(game.Pass)

	require.Equal(t, game.IllegalMoveReward, result.Reward)
	require.False(t, result.Done)
	require.False(t, result.TurnEnded)
	require.Equal(t, game.RollDice, e.State().Turn)
	require.Equal(t, 0, e.State().Current)
}

func TestRelativeRewardIsZeroWhenTied(t *testing.T) {
	e := newTestEnv(4, 0)

	// A throw of 1 pays every wheat field owner, keeping net worths equal.
	result := e.Step(game.Roll1, game.Dice{D1: 1})

	require.Equal(t, 0, result.Reward)
	require.Equal(t, 4, e.State().Funds(0))
}

func TestTurnEndRunsFillers(t *testing.T) {
	e := newTestEnv(3, 0)

	e.Step(game.Roll1, game.Dice{D1: 1})
	result := e.Step(game.Pass)

	require.True(t, result.TurnEnded)
	if !result.Done {
		require.Equal(t, 0, e.State().Current, "control returns to the agent")
		require.Equal(t, game.RollDice, e.State().Turn)
	}
}

func TestBadAgentSeatPanics(t *testing.T) {
	require.Panics(t, func() { New(2, 2, policy.NewRandom(1)) })
	require.Panics(t, func() { New(2, -1, policy.NewRandom(1)) })
}

func TestEpisodeRunsToCompletion(t *testing.T) {
	e := New(2, 0, policy.NewRandom(7), game.WithSeed(7))
	agent := policy.NewGreedy()

	done := false
	for step := 0; step < 50000; step++ {
		result := e.Step(agent.Action(e.State()))
		if result.Done {
			done = true
			break
		}
	}

	require.True(t, done, "a greedy agent should finish the game")
	for seat := range e.State().Players {
		require.GreaterOrEqual(t, e.State().Funds(seat), 0)
	}
}

func TestWinRewardPassesThrough(t *testing.T) {
	e := newTestEnv(2, 0)
	s := e.State()
	for _, id := range []game.CardID{game.Station, game.Mall, game.AmusementPark} {
		s.Players[0].Cards[id] = 1
	}
	s.Players[0].Coins = game.Price(game.RadioTower)

	e.Step(game.Roll1, game.Dice{D1: 1})
	result := e.Step(game.BuyAction(game.RadioTower))

	require.True(t, result.Done)
	require.Equal(t, game.WinReward, result.Reward)
	require.Equal(t, "Player0", e.State().Winner())
}
