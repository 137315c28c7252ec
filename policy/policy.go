// Package policy provides the fixed policies that drive non-learning seats:
// a uniformly random filler and a greedy buyer baseline.
package policy

import (
	"time"

	"golang.org/x/exp/rand"

	"machikoro/game"
)

// Policy produces one action for the current player of a game state. A
// policy is not required to be fully legal: the driving loop tolerates the
// illegal-move penalty and simply asks again on the next step.
type Policy interface {
	Action(gs *game.GameState) game.Action
	Name() string
}

// Random picks uniformly from the current sub-state's action menu without
// checking funds, stock, or ownership.
type Random struct {
	rng *rand.Rand
}

// NewRandom returns a random policy seeded from seed, or from the clock when
// seed is 0.
func NewRandom(seed uint64) *Random {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (p *Random) Name() string { return "random" }

func (p *Random) Action(gs *game.GameState) game.Action {
	switch gs.Turn {
	case game.RollDice:
		return p.choice(game.Roll1, game.Roll2)
	case game.MayReroll:
		return p.choice(game.Reroll, game.Pass)
	case game.MayBuy:
		menu := []game.Action{game.Pass}
		for a := game.BuyStation; a <= game.BuyMarket; a++ {
			menu = append(menu, a)
		}
		return p.choice(menu...)
	case game.MayChooseCard:
		menu := make([]game.Action, 0, game.NumCards)
		for a := game.BuyStation; a <= game.BuyMarket; a++ {
			menu = append(menu, a)
		}
		return p.choice(menu...)
	case game.MayChoosePlayerForCoins, game.MayChoosePlayerForCard:
		menu := make([]game.Action, 0, gs.NumPlayers())
		for i := 0; i < gs.NumPlayers(); i++ {
			menu = append(menu, game.ChoosePlayer(i))
		}
		return p.choice(menu...)
	}
	return game.Pass
}

func (p *Random) choice(menu ...game.Action) game.Action {
	return menu[p.rng.Intn(len(menu))]
}

// Greedy rolls two dice when it can, keeps its throws, and always buys the
// most expensive card it can afford, monuments first. Steals target the
// richest opponent. Its moves are legal except in a card-steal sub-state
// with no legal choice, where it leans on the driving loop's illegal-move
// tolerance.
type Greedy struct{}

func NewGreedy() *Greedy { return &Greedy{} }

func (p *Greedy) Name() string { return "greedy" }

func (p *Greedy) Action(gs *game.GameState) game.Action {
	switch gs.Turn {
	case game.RollDice:
		if gs.Owns(gs.Current, game.Station) {
			return game.Roll2
		}
		return game.Roll1
	case game.MayReroll:
		return game.Pass
	case game.MayChoosePlayerForCoins:
		return game.ChoosePlayer(p.richestOpponent(gs))
	case game.MayChoosePlayerForCard:
		return game.ChoosePlayer(p.bestCardTarget(gs))
	case game.MayChooseCard, game.MayBuy:
		return p.bestBuy(gs)
	}
	return game.Pass
}

func (p *Greedy) richestOpponent(gs *game.GameState) int {
	best, bestWorth := -1, -1
	for i := 0; i < gs.NumPlayers(); i++ {
		if i == gs.Current {
			continue
		}
		if worth := gs.NetWorth(i); worth > bestWorth {
			best, bestWorth = i, worth
		}
	}
	return best
}

// bestCardTarget picks the opponent holding the most expensive stealable
// card, so the follow-up card choice cannot dead-end.
func (p *Greedy) bestCardTarget(gs *game.GameState) int {
	best, bestPrice := p.richestOpponent(gs), -1
	for i := 0; i < gs.NumPlayers(); i++ {
		if i == gs.Current {
			continue
		}
		for id := game.WheatField; id <= game.Market; id++ {
			if gs.Count(i, id) == 0 {
				continue
			}
			if game.Lookup(id).Unique && gs.Owns(gs.Current, id) {
				continue
			}
			if price := game.Price(id); price > bestPrice {
				best, bestPrice = i, price
			}
		}
	}
	return best
}

func (p *Greedy) bestBuy(gs *game.GameState) game.Action {
	best := game.Pass
	bestScore := -1
	for _, move := range gs.LegalMoves() {
		action := move.(game.Action)
		if action == game.Pass {
			continue
		}
		card := game.CardID(action - game.BuyStation)
		score := game.Price(card)
		if game.IsMonument(card) {
			// A monument is always worth more than any production card.
			score += 100
		}
		if score > bestScore {
			best, bestScore = action, score
		}
	}
	if best == game.Pass && gs.Turn == game.MayChooseCard {
		// Target owns nothing stealable; there is no legal way out of this
		// sub-state, so surface a fixed action and let the loop's move
		// budget end the game.
		return game.BuyWheatField
	}
	return best
}
