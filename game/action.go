package game

// Action is the stable integer vocabulary consumed by Step. The numbering is
// part of the external interface and must not change.
type Action int

const (
	Roll1 Action = iota
	Roll2
	Reroll
	BuyStation
	BuyMall
	BuyAmusementPark
	BuyRadioTower
	BuyWheatField
	BuyRanch
	BuyBakery
	BuyCafe
	BuyKombini
	BuyForest
	BuyStadium
	BuyTVStation
	BuyBusinessCenter
	BuyCheeseFactory
	BuyFurnitureFactory
	BuyMine
	BuyFamilyRestaurant
	BuyAppleOrchard
	BuyMarket
	Pass
	ChoosePlayer0
	ChoosePlayer1
	ChoosePlayer2
	ChoosePlayer3
)

const NumActions = int(ChoosePlayer3) + 1

// BuyAction returns the action that purchases the given card.
func BuyAction(id CardID) Action {
	return BuyStation + Action(id)
}

// ChoosePlayer returns the action that selects player slot i.
func ChoosePlayer(i int) Action {
	return ChoosePlayer0 + Action(i)
}

// card translates a buy or steal action into its card id.
func (a Action) card() CardID {
	return CardID(a - BuyStation)
}

// isCard reports whether a addresses a catalogue card at all.
func (a Action) isCard() bool {
	return a >= BuyStation && a <= BuyMarket
}

// isCompanyCard reports whether a addresses a non-monument card, the only
// kind that can be stolen.
func (a Action) isCompanyCard() bool {
	return a >= BuyWheatField && a <= BuyMarket
}

// isChoice reports whether a selects a player slot.
func (a Action) isChoice() bool {
	return a >= ChoosePlayer0 && a <= ChoosePlayer3
}

// chosenPlayer returns the slot index selected by a choice action.
func (a Action) chosenPlayer() int {
	return int(a - ChoosePlayer0)
}

// IsStochastic reports whether playing a resolves through the dice roller.
// Rolls and rerolls are the only chance moves in the game.
func (a Action) IsStochastic() bool {
	return a == Roll1 || a == Roll2 || a == Reroll
}
