package game

// resolveEconomy applies the effects of the cards activated by the current
// throw, in a fixed order: debt to other players first, then bank-funded
// payouts in catalogue order. An interactive landmark suspends resolution by
// switching the turn sub-state and returning; the cards not yet processed
// stay in the activated set and resolve after the choice completes.
func (gs *GameState) resolveEconomy() {
	bonus := 0
	if gs.owns(Mall) {
		bonus = 1
	}

	// Debt first: the current player pays restaurant owners out of pocket.
	for _, id := range []CardID{Cafe, FamilyRestaurant} {
		if gs.removeActivated(id) {
			gs.payOthersFromSelf(id, gs.effectAmount(id, bonus))
		}
	}

	remaining := make([]CardID, len(gs.activated))
	copy(remaining, gs.activated)

	for _, id := range remaining {
		c := Lookup(id)
		amount := gs.effectAmount(id, bonus)

		switch c.Effect {
		case PayAllFromBank:
			gs.payAllFromBank(id, amount)
		case PaySelfFromBank:
			gs.paySelfFromBank(id, amount)
		case PaySelfMultiplied:
			gs.paySelfMultiplied(id, c.Counts, amount)
		case PaySelfFromOthers:
			gs.paySelfFromOthers(id, amount)
		case StealCoins:
			if gs.owns(id) {
				gs.Turn = MayChoosePlayerForCoins
				gs.removeActivated(id)
				return
			}
			// Unowned interactive cards stay pending: a card steal later in
			// the same batch can hand one to the current player.
			continue
		case StealCard:
			if gs.owns(id) {
				gs.Turn = MayChoosePlayerForCard
				gs.removeActivated(id)
				return
			}
			continue
		}
		gs.removeActivated(id)
	}
}

// effectAmount is the per-unit payout of card, with the current player's
// Shopping Mall bonus where the catalogue grants one.
func (gs *GameState) effectAmount(id CardID, bonus int) int {
	c := Lookup(id)
	amount := c.Amount
	if c.MallBonus {
		amount += bonus
	}
	return amount
}

// removeActivated takes card out of the pending activation set, reporting
// whether it was there.
func (gs *GameState) removeActivated(id CardID) bool {
	for i, a := range gs.activated {
		if a == id {
			gs.activated = append(gs.activated[:i], gs.activated[i+1:]...)
			return true
		}
	}
	return false
}

// payAllFromBank pays every player amount per owned copy of card.
func (gs *GameState) payAllFromBank(card CardID, amount int) {
	for i := range gs.Players {
		gs.setFunds(i, gs.Funds(i)+amount*gs.Count(i, card))
	}
}

// paySelfFromBank pays the current player amount per owned copy of card.
func (gs *GameState) paySelfFromBank(card CardID, amount int) {
	cur := gs.Current
	gs.setFunds(cur, gs.Funds(cur)+amount*gs.Count(cur, card))
}

// paySelfMultiplied pays the current player amount per owned copy of each
// counted card, multiplied by the number of activated cards owned. Example:
// 2 Cheese Factories and 3 Ranches pay 2 * (3 ranches * 3 coins).
func (gs *GameState) paySelfMultiplied(card CardID, counts []CardID, amount int) {
	cur := gs.Current
	multiplier := gs.Count(cur, card)
	for _, counted := range counts {
		gs.setFunds(cur, gs.Funds(cur)+amount*gs.Count(cur, counted)*multiplier)
	}
}

// payOthersFromSelf pays every other owner of card out of the current
// player's funds, in reverse turn order. Payments are clamped at the payer's
// remaining funds: once they hit zero, later creditors get nothing.
func (gs *GameState) payOthersFromSelf(card CardID, amount int) {
	cur := gs.Current
	for i := len(gs.Players) - 1; i >= 0; i-- {
		if i == cur {
			continue
		}
		due := amount * gs.Count(i, card)
		if due > gs.Funds(cur) {
			due = gs.Funds(cur)
		}
		gs.setFunds(cur, gs.Funds(cur)-due)
		gs.setFunds(i, gs.Funds(i)+due)
	}
}

// paySelfFromOthers collects amount per owned copy of card from every other
// player, clamped per player at their funds.
func (gs *GameState) paySelfFromOthers(card CardID, amount int) {
	cur := gs.Current
	take := amount * gs.Count(cur, card)
	for i := range gs.Players {
		if i == cur {
			continue
		}
		t := take
		if t > gs.Funds(i) {
			t = gs.Funds(i)
		}
		gs.setFunds(i, gs.Funds(i)-t)
		gs.setFunds(cur, gs.Funds(cur)+t)
	}
}
