package searcher

import (
	"sync"

	"machikoro/experiments/metrics"
	"machikoro/game"
)

// Agent plays the most visited move of a tree search. It satisfies
// policy.Policy so it can be seated against other agents.
type Agent struct {
	mcts *MCTS

	mu   sync.Mutex
	last metrics.SearchMetric
}

func NewAgent(mcts *MCTS) *Agent {
	return &Agent{mcts: mcts}
}

func (a *Agent) Name() string {
	return "mcts"
}

func (a *Agent) Action(state *game.GameState) game.Action {
	policy, metric := a.mcts.Simulate(state)

	a.mu.Lock()
	a.last = metric
	a.mu.Unlock()

	var best game.Move
	bestProb := -1.0
	for move, prob := range policy {
		if prob > bestProb {
			best, bestProb = move, prob
		}
	}
	if best == nil {
		// No legal moves should not happen on the agent's turn; losing one
		// move to the illegal penalty keeps the game going.
		return game.Pass
	}
	return best.(game.Action)
}

// LastSearch returns the statistics of the most recent search.
func (a *Agent) LastSearch() metrics.SearchMetric {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last
}
