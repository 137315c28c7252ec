package searcher

import (
	"math"
	"sync"

	"machikoro/game"
)

// decision is a node where a player picks among legal moves. Children are
// aligned with moves by index and expanded left to right. Rewards are scored
// from the perspective of player, the one whose move led to this node, so a
// parent maximizing its children's scores picks moves good for itself.
type decision struct {
	sync.RWMutex
	parent   Node
	player   string
	mover    string
	moves    []game.Move
	children []Node
	rewards  float64
	visits   float64
}

func newDecision(parent Node, player string, state game.State) *decision {
	return &decision{
		parent: parent,
		player: player,
		mover:  state.Player(),
		moves:  state.LegalMoves(),
	}
}

func (d *decision) SelectOrExpand(state game.State) (Node, game.State, bool) {
	d.Lock()
	defer d.Unlock()

	if len(d.moves) == 0 { // Terminal node
		return d, state, false
	}

	if len(d.children) < len(d.moves) { // Expandable node
		child, childState := d.addChild(state)
		child.applyLoss()
		return child, childState, false
	}

	// Fully expanded node
	ith := d.pickChild()
	child := d.children[ith]
	child.applyLoss()
	return child, state.Play(d.moves[ith]), true
}

// addChild expands the next unexplored move. A stochastic move expands to a
// chance node; its outcome states materialize on later traversals.
func (d *decision) addChild(state game.State) (Node, game.State) {
	move := d.moves[len(d.children)]
	childState := state.Play(move)
	var child Node
	if move.IsStochastic() {
		child = newChance(d, d.mover)
	} else {
		child = newDecision(d, d.mover, childState)
	}
	d.children = append(d.children, child)
	return child, childState
}

// pickChild returns the index of the child with the highest UCB1 score.
func (d *decision) pickChild() int {
	normalizer := CSquared * math.Log(d.visits)
	best, bestScore := 0, math.Inf(-1)
	for i, child := range d.children {
		if score := child.score(normalizer); score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

func (d *decision) Backup(perspective string, score float64) Node {
	d.Lock()
	defer d.Unlock()

	if d.parent != nil {
		d.reverseLoss()
	}
	d.rewards += computeReward(perspective, score, d.player)
	d.visits++
	return d.parent
}

// applyLoss discourages other goroutines from descending the same path while
// an episode is in flight.
func (d *decision) applyLoss() {
	d.Lock()
	defer d.Unlock()
	d.rewards += Loss
	d.visits++
}

func (d *decision) reverseLoss() {
	d.rewards -= Loss
	d.visits--
}

func (d *decision) score(normalizer float64) float64 {
	d.RLock()
	defer d.RUnlock()
	return ucb1(d.rewards, d.visits, normalizer)
}

func (d *decision) Visits() float64 {
	d.RLock()
	defer d.RUnlock()
	return d.visits
}

// Policy returns each move's share of the episodes through this node.
func (d *decision) Policy() map[game.Move]float64 {
	d.RLock()
	defer d.RUnlock()

	policy := make(map[game.Move]float64, len(d.children))
	total := 0.0
	for _, child := range d.children {
		total += child.Visits()
	}
	if total == 0 {
		return policy
	}
	for i, child := range d.children {
		policy[d.moves[i]] = child.Visits() / total
	}
	return policy
}
