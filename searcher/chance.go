package searcher

import (
	"sync"

	"machikoro/game"
)

// chance is a node for a stochastic move, such as a dice roll. Each distinct
// observed outcome gets its own decision child, keyed by state hash.
type chance struct {
	sync.RWMutex
	parent   Node
	player   string
	outcomes map[game.StateHash]*decision
	rewards  float64
	visits   float64
}

func newChance(parent Node, player string) *chance {
	return &chance{
		parent:   parent,
		player:   player,
		outcomes: make(map[game.StateHash]*decision),
	}
}

// SelectOrExpand receives an already sampled outcome state and selects the
// matching child, expanding one the first time the outcome is seen.
func (c *chance) SelectOrExpand(state game.State) (Node, game.State, bool) {
	c.Lock()
	defer c.Unlock()

	hash := state.Hash()
	child, selected := c.outcomes[hash]
	if !selected {
		child = newDecision(c, c.player, state)
		c.outcomes[hash] = child
	}
	child.applyLoss()
	return child, state, selected
}

func (c *chance) Backup(perspective string, score float64) Node {
	c.Lock()
	defer c.Unlock()

	c.reverseLoss()
	c.rewards += computeReward(perspective, score, c.player)
	c.visits++
	return c.parent
}

func (c *chance) applyLoss() {
	c.Lock()
	defer c.Unlock()
	c.rewards += Loss
	c.visits++
}

func (c *chance) reverseLoss() {
	c.rewards -= Loss
	c.visits--
}

func (c *chance) score(normalizer float64) float64 {
	c.RLock()
	defer c.RUnlock()
	return ucb1(c.rewards, c.visits, normalizer)
}

func (c *chance) Visits() float64 {
	c.RLock()
	defer c.RUnlock()
	return c.visits
}
