package game

// Rewards surfaced by Step. Illegal moves leave the state untouched; the
// penalty is how callers (and learning agents) discover legality.
const (
	IllegalMoveReward = -3
	WinReward         = 1000
)

// StepResult is what a single Step call reports back. The GameState itself
// is the state snapshot; callers that need isolation take a Copy.
type StepResult struct {
	Reward    int
	TurnEnded bool
	GameOver  bool
}

func illegalMove() StepResult {
	return StepResult{Reward: IllegalMoveReward}
}

// Step validates action against the current turn sub-state, applies it, and
// advances the sub-state and turn rotation. One player turn spans several
// Step calls. Forced dice are honored only in test mode.
func (gs *GameState) Step(action Action, forced ...Dice) StepResult {
	if action < 0 || int(action) >= NumActions {
		return illegalMove()
	}

	// Monument abilities are read before the action so that a monument
	// bought this step takes effect next turn, not retroactively.
	hasReroll := gs.owns(RadioTower)
	hasSecondTurn := gs.owns(AmusementPark)
	hasTwoDice := gs.owns(Station)

	switch gs.Turn {

	case RollDice:
		if action != Roll1 && action != Roll2 {
			return illegalMove()
		}
		if action == Roll2 && !hasTwoDice {
			return illegalMove()
		}
		gs.roll(action, forced)

		if hasReroll {
			gs.Turn = MayReroll
		} else {
			// MayBuy is set before resolution so an interactive card can
			// override it with a choice sub-state.
			gs.Turn = MayBuy
			gs.resolveEconomy()
		}
		return StepResult{Reward: gs.Reward()}

	case MayReroll:
		if action != Reroll && action != Pass {
			return illegalMove()
		}
		if action == Reroll {
			gs.roll(Reroll, forced)
		}
		gs.Turn = MayBuy
		gs.resolveEconomy()
		return StepResult{Reward: gs.Reward()}

	case MayChoosePlayerForCoins:
		target, ok := gs.validChoice(action)
		if !ok {
			return illegalMove()
		}
		gs.stealCoinsFrom(target, Lookup(TVStation).Amount)
		gs.Turn = MayBuy
		gs.resolveEconomy()
		return StepResult{Reward: gs.Reward()}

	case MayChoosePlayerForCard:
		target, ok := gs.validChoice(action)
		if !ok {
			return illegalMove()
		}
		gs.stealTarget = target
		gs.Turn = MayChooseCard
		return StepResult{Reward: gs.Reward()}

	case MayChooseCard:
		if !action.isCompanyCard() {
			return illegalMove()
		}
		if !gs.stealCardFromTarget(action.card()) {
			return illegalMove()
		}
		gs.Turn = MayBuy
		// Re-resolve what is left of the activation batch. A no-op under the
		// fixed catalogue unless the steal just handed the current player
		// another card activated by the same total.
		gs.resolveEconomy()
		return StepResult{Reward: gs.Reward()}

	case MayBuy:
		if !action.isCard() && action != Pass {
			return illegalMove()
		}
		if !gs.buy(action) {
			return illegalMove()
		}

		if gs.MonumentCount(gs.Current) == 4 {
			return StepResult{Reward: WinReward, GameOver: true}
		}

		if gs.Throw().Doubles() && hasSecondTurn && !gs.SecondTurn {
			// One bonus turn per turn-cycle: same player rolls again.
			gs.Turn = RollDice
			gs.setThrow(Dice{})
			gs.SecondTurn = true
			gs.stealTarget = -1
			return StepResult{Reward: gs.Reward()}
		}

		gs.endTurn()
		return StepResult{Reward: gs.Reward(), TurnEnded: true}
	}

	return illegalMove()
}

// roll resolves a throw for action, keeping the die count of the original
// throw on a reroll. In test mode a forced throw wins over the roller.
func (gs *GameState) roll(action Action, forced []Dice) {
	if gs.testMode && len(forced) > 0 {
		gs.setThrow(forced[0])
		return
	}

	numDice := 1
	switch action {
	case Roll2:
		numDice = 2
	case Reroll:
		if gs.Throw().D2 != 0 {
			numDice = 2
		}
	}
	gs.setThrow(gs.roller.Roll(numDice))
}

// validChoice checks a player-choice action: must address another seat.
func (gs *GameState) validChoice(action Action) (int, bool) {
	if !action.isChoice() {
		return 0, false
	}
	target := action.chosenPlayer()
	if target == gs.Current || target >= len(gs.Players) {
		return 0, false
	}
	return target, true
}

// stealCoinsFrom moves amount coins from target to the current player,
// clamped at the target's funds.
func (gs *GameState) stealCoinsFrom(target, amount int) {
	take := amount
	if take > gs.Funds(target) {
		take = gs.Funds(target)
	}
	gs.setFunds(target, gs.Funds(target)-take)
	gs.setFunds(gs.Current, gs.Funds(gs.Current)+take)
}

// stealCardFromTarget moves one copy of card from the pending steal target
// to the current player. Fails when the target lacks the card or the card is
// unique and already owned.
func (gs *GameState) stealCardFromTarget(card CardID) bool {
	if gs.stealTarget < 0 {
		return false
	}
	if Lookup(card).Unique && gs.owns(card) {
		return false
	}
	if gs.Count(gs.stealTarget, card) == 0 {
		return false
	}
	gs.Players[gs.stealTarget].Cards[card]--
	gs.Players[gs.Current].Cards[card]++
	return true
}

// buy validates stock, price, funds, and uniqueness, then transfers the card
// from inventory to the current player. Pass is always a valid buy action.
func (gs *GameState) buy(action Action) bool {
	if action == Pass {
		return true
	}
	card := action.card()
	if gs.Inventory[card] == 0 {
		return false
	}
	price := Price(card)
	if gs.Funds(gs.Current) < price {
		return false
	}
	if Lookup(card).Unique && gs.owns(card) {
		return false
	}
	gs.Inventory[card]--
	gs.Players[gs.Current].Cards[card]++
	gs.setFunds(gs.Current, gs.Funds(gs.Current)-price)
	return true
}

// endTurn rotates to the next player and resets the per-turn bookkeeping.
func (gs *GameState) endTurn() {
	gs.Current = (gs.Current + 1) % len(gs.Players)
	gs.Turn = RollDice
	gs.setThrow(Dice{})
	gs.SecondTurn = false
	gs.stealTarget = -1
}
