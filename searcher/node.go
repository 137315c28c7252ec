package searcher

import (
	"math"

	"machikoro/game"
)

// CSquared is the squared exploration constant in the UCB1 formula.
const CSquared = 2.0

// Terminal scores from the perspective of the winning player.
const (
	Win  = 1.0
	Loss = -Win
)

// Node is a node in the search tree. A decision node branches on the moves
// available to a player. A chance node stands for a stochastic move and
// branches on its observed outcomes.
type Node interface {
	// SelectOrExpand either selects an existing child or expands a new one,
	// returning the child, the game state at the child, and whether the child
	// was selected rather than expanded. Terminal nodes return themselves.
	SelectOrExpand(state game.State) (child Node, childState game.State, selected bool)
	// Backup propagates a playout result one level, returning the parent.
	Backup(perspective string, score float64) Node
	// Visits returns the number of backed-up episodes through this node.
	Visits() float64

	applyLoss()
	score(normalizer float64) float64
}

// ucb1 balances exploitation against exploration. Unvisited nodes score
// infinity so each child is tried at least once.
func ucb1(rewards, visits, normalizer float64) float64 {
	if visits == 0 {
		return math.Inf(1)
	}
	return rewards/visits + math.Sqrt(normalizer/visits)
}

// computeReward flips the playout score when the node's player is not the
// player the score was computed for.
func computeReward(scorePlayer string, score float64, nodePlayer string) float64 {
	if scorePlayer == nodePlayer {
		return score
	}
	return -score
}
