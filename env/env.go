package env

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"machikoro/game"
	"machikoro/policy"
)

// maxFillerSteps bounds the filler loop so a filler policy stuck on illegal
// moves cannot hang the environment.
const maxFillerSteps = 10000

// observationWidth is the per-player slice of the observation vector: the
// turn sub-state, the coin count, one count per card, and the two dice.
const observationWidth = 23

// Env exposes the game as a single-agent environment. One seat is controlled
// through Step; every other seat is played by the filler policy whenever the
// turn passes to it.
type Env struct {
	state   *game.GameState
	agent   int
	filler  policy.Policy
	players int
	options []game.Option
}

// StepResult is the outcome of one environment step.
type StepResult struct {
	Observation []float64
	Reward      int
	TurnEnded   bool
	Done        bool
}

// New creates an environment with numPlayers seats where the seat at agent is
// externally controlled. Options are forwarded to every NewGameState call, so
// seeding and test mode work the same as on a bare game.
func New(numPlayers, agent int, filler policy.Policy, options ...game.Option) *Env {
	if agent < 0 || agent >= numPlayers {
		panic(fmt.Sprintf("env: agent seat %d out of range for %d players", agent, numPlayers))
	}
	e := &Env{
		agent:   agent,
		filler:  filler,
		players: numPlayers,
		options: options,
	}
	e.Reset()
	return e
}

// Reset starts a fresh game and fast-forwards the filler seats until it is
// the agent's turn. It returns the initial observation.
func (e *Env) Reset() []float64 {
	e.state = game.NewGameState(e.players, e.options...)
	e.advanceFillers()
	return e.Observation()
}

// Step applies the agent's action. When the action ends the agent's turn the
// filler seats play on synchronously until the turn comes back around or the
// game ends. Illegal actions keep the turn and pass the penalty through.
func (e *Env) Step(action game.Action, forced ...game.Dice) StepResult {
	result := e.state.Step(action, forced...)

	if result.GameOver {
		// The agent's own action ended the game, so its win reward carries
		// through unchanged.
		return StepResult{
			Observation: e.Observation(),
			Reward:      result.Reward,
			TurnEnded:   result.TurnEnded,
			Done:        true,
		}
	}
	if result.Reward == game.IllegalMoveReward {
		return StepResult{
			Observation: e.Observation(),
			Reward:      game.IllegalMoveReward,
		}
	}

	done := false
	if result.TurnEnded {
		done = e.advanceFillers()
	}
	return StepResult{
		Observation: e.Observation(),
		Reward:      e.relativeReward(),
		TurnEnded:   result.TurnEnded,
		Done:        done,
	}
}

// advanceFillers plays filler seats until the agent is current again,
// reporting whether a filler ended the game.
func (e *Env) advanceFillers() bool {
	for steps := 0; e.state.Current != e.agent; steps++ {
		if steps >= maxFillerSteps {
			log.Warn().Int("agent", e.agent).Msg("filler step budget exhausted, ending episode")
			return true
		}
		action := e.filler.Action(e.state)
		if e.state.Step(action).GameOver {
			return true
		}
	}
	return false
}

// relativeReward is the agent's standing: its net worth minus the highest net
// worth at the table. Zero when the agent leads, negative otherwise.
func (e *Env) relativeReward() int {
	best := 0
	for i := range e.state.Players {
		if worth := e.state.NetWorth(i); worth > best {
			best = worth
		}
	}
	return e.state.NetWorth(e.agent) - best
}

// Observation flattens the state into one row of observationWidth values per
// player, agent first, the remaining seats in turn order after it. Only the
// current player's row carries a sub-state; other rows hold -1 there.
func (e *Env) Observation() []float64 {
	obs := make([]float64, 0, e.players*observationWidth)
	for offset := 0; offset < e.players; offset++ {
		seat := (e.agent + offset) % e.players
		obs = append(obs, e.playerRow(seat)...)
	}
	return obs
}

func (e *Env) playerRow(seat int) []float64 {
	row := make([]float64, 0, observationWidth)
	if seat == e.state.Current {
		row = append(row, float64(e.state.Turn))
	} else {
		row = append(row, -1)
	}
	row = append(row, float64(e.state.Funds(seat)))
	for id := game.CardID(0); int(id) < game.NumCards; id++ {
		row = append(row, float64(e.state.Count(seat, id)))
	}
	dice := e.state.Players[seat].Dice
	row = append(row, float64(dice.D1), float64(dice.D2))
	return row
}

// State exposes the wrapped game for inspection.
func (e *Env) State() *game.GameState {
	return e.state
}

// Render writes a human-readable dump of the current state.
func (e *Env) Render(w io.Writer) {
	fmt.Fprintln(w, e.state.String())
}
