package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"machikoro/game"
	"machikoro/policy"
)

func TestRunCompletesRandomGame(t *testing.T) {
	state := game.NewGameState(2, game.WithSeed(11))
	e := New(state, []policy.Policy{policy.NewRandom(11), policy.NewRandom(12)})

	winner, gameMetric, moveMetrics := e.Run()

	require.NotEmpty(t, winner)
	require.Equal(t, winner, state.Winner())
	require.Equal(t, winner, gameMetric.Winner)
	require.Equal(t, len(moveMetrics), gameMetric.TotalMoves)
	require.Greater(t, gameMetric.TotalMoves, 0)
	require.Equal(t, e.ID(), gameMetric.ID)

	for seat := range state.Players {
		require.GreaterOrEqual(t, state.Funds(seat), 0, "funds never go negative")
	}
	require.Equal(t, 4, state.MonumentCount(state.Current), "the winner owns every monument")
}

func TestRunGreedyBeatsTable(t *testing.T) {
	state := game.NewGameState(3, game.WithSeed(5))
	e := New(state, []policy.Policy{
		policy.NewGreedy(),
		policy.NewRandom(5),
		policy.NewRandom(6),
	})

	winner, gameMetric, _ := e.Run()

	require.NotEmpty(t, winner)
	require.LessOrEqual(t, gameMetric.TotalMoves, MaxMoves)
	require.False(t, gameMetric.EndTime.Before(gameMetric.StartTime))
}

func TestNewRejectsSeatMismatch(t *testing.T) {
	state := game.NewGameState(2, game.WithSeed(1))
	require.Panics(t, func() {
		New(state, []policy.Policy{policy.NewRandom(1)})
	})
}

func TestMoveMetricsTrackIllegalMoves(t *testing.T) {
	state := game.NewGameState(2, game.WithSeed(3))
	e := New(state, []policy.Policy{policy.NewRandom(3), policy.NewRandom(4)})

	_, gameMetric, moveMetrics := e.Run()

	illegal := 0
	for _, move := range moveMetrics {
		if move.Illegal {
			illegal++
		}
	}
	require.Equal(t, illegal, gameMetric.IllegalMoves)
}
