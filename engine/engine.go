package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"machikoro/experiments/metrics"
	"machikoro/game"
	"machikoro/policy"
)

// MaxMoves aborts games where no seat manages to finish, such as a table of
// policies that keep playing illegal moves.
const MaxMoves = 10000

// SearchMetrics is implemented by policies that run a search per move and
// can report its statistics.
type SearchMetrics interface {
	LastSearch() metrics.SearchMetric
}

// Engine drives one game to completion, asking each seat's policy for the
// current player's action.
type Engine struct {
	id       string
	state    *game.GameState
	policies []policy.Policy
}

// New seats one policy per player of the given state.
func New(state *game.GameState, policies []policy.Policy) *Engine {
	if len(policies) != len(state.Players) {
		panic(fmt.Sprintf("engine: %d policies for %d players", len(policies), len(state.Players)))
	}
	return &Engine{
		id:       uuid.NewString(),
		state:    state,
		policies: policies,
	}
}

// ID returns the engine's game id.
func (e *Engine) ID() string {
	return e.id
}

// Run plays the game until a player wins or MaxMoves is reached, returning
// the winner's name (empty on abort) and the collected metrics.
func (e *Engine) Run() (string, metrics.GameMetric, []metrics.MoveMetric) {
	logger := log.With().Str("game", e.id).Logger()
	logger.Info().Int("players", len(e.policies)).Msg("game started")

	gameMetric := metrics.GameMetric{
		ID:        e.id,
		StartTime: time.Now(),
	}
	moveMetrics := make([]metrics.MoveMetric, 0, 256)

	winner := ""
	for step := 0; step < MaxMoves; step++ {
		seat := e.state.Current
		seatPolicy := e.policies[seat]
		action := seatPolicy.Action(e.state)
		result := e.state.Step(action)

		move := metrics.MoveMetric{
			Step:    step,
			Player:  seat,
			Action:  int(action),
			Illegal: result.Reward == game.IllegalMoveReward,
		}
		if searcher, ok := seatPolicy.(SearchMetrics); ok {
			move.SearchMetric = searcher.LastSearch()
		}
		moveMetrics = append(moveMetrics, move)
		if move.Illegal {
			gameMetric.IllegalMoves++
			logger.Debug().Int("player", seat).Int("action", int(action)).Msg("illegal move")
		}

		if result.GameOver {
			winner = e.state.Winner()
			break
		}
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	gameMetric.Winner = winner

	if winner == "" {
		logger.Warn().Int("moves", gameMetric.TotalMoves).Msg("game aborted without a winner")
	} else {
		logger.Info().
			Str("winner", winner).
			Int("moves", gameMetric.TotalMoves).
			Int("illegal", gameMetric.IllegalMoves).
			Dur("duration", gameMetric.Duration).
			Msg("game completed")
	}
	return winner, gameMetric, moveMetrics
}
