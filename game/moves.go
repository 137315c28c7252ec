package game

// Move is what a search agent plays. Dice actions are stochastic: replaying
// them can land on a different outcome state.
type Move interface {
	IsStochastic() bool
}

// State is the search-facing view of the game. Play never mutates the
// receiver; it returns an advanced copy.
type State interface {
	Player() string
	LegalMoves() []Move
	Play(Move) State
	Hash() StateHash
	Winner() string
}

// Evaluate scores a non-terminal state between -1 and 1 from the current
// player's perspective.
type Evaluate func(State) float64

// Play returns a copy of the state advanced by move.
func (gs *GameState) Play(move Move) State {
	next := gs.Copy()
	next.Step(move.(Action))
	return next
}

// LegalMoves returns the strictly legal actions for the current sub-state,
// or nil when the game is over.
func (gs *GameState) LegalMoves() []Move {
	if gs.Winner() != "" {
		return nil
	}

	switch gs.Turn {

	case RollDice:
		moves := []Move{Roll1}
		if gs.owns(Station) {
			moves = append(moves, Roll2)
		}
		return moves

	case MayReroll:
		return []Move{Reroll, Pass}

	case MayChoosePlayerForCoins, MayChoosePlayerForCard:
		var moves []Move
		for i := range gs.Players {
			if i != gs.Current {
				moves = append(moves, ChoosePlayer(i))
			}
		}
		return moves

	case MayChooseCard:
		var moves []Move
		for id := WheatField; id <= Market; id++ {
			if gs.Count(gs.stealTarget, id) == 0 {
				continue
			}
			if Lookup(id).Unique && gs.owns(id) {
				continue
			}
			moves = append(moves, BuyAction(id))
		}
		return moves

	case MayBuy:
		moves := []Move{Pass}
		for id := CardID(0); int(id) < NumCards; id++ {
			if gs.Inventory[id] == 0 || gs.Funds(gs.Current) < Price(id) {
				continue
			}
			if Lookup(id).Unique && gs.owns(id) {
				continue
			}
			moves = append(moves, BuyAction(id))
		}
		return moves
	}

	return nil
}
