package game

// CardID indexes the fixed 19-card catalogue: 4 monuments followed by 15
// production/landmark cards. The order matches the action vocabulary.
type CardID int

const (
	Station CardID = iota
	Mall
	AmusementPark
	RadioTower
	WheatField
	Ranch
	Bakery
	Cafe
	Kombini
	Forest
	Stadium
	TVStation
	BusinessCenter
	CheeseFactory
	FurnitureFactory
	Mine
	FamilyRestaurant
	AppleOrchard
	Market
)

const NumCards = int(Market) + 1

// EffectKind selects how an activated card moves money. Adding a card is a
// data change in the catalogue, not a new code path.
type EffectKind int

const (
	NoEffect          EffectKind = iota // monuments
	PayAllFromBank                      // bank pays every owner
	PaySelfFromBank                     // bank pays the current player
	PaySelfMultiplied                   // bank pays current player, scaled by other owned cards
	PaySelfFromOthers                   // current player collects from every other player
	PayOthersFromSelf                   // current player pays every other owner
	StealCoins                          // interactive: pick a player, take coins
	StealCard                           // interactive: pick a player, then a card
)

// Card is an immutable catalogue entry.
type Card struct {
	ID         CardID
	Name       string
	Price      int
	Activation []int // dice totals that trigger the card
	Effect     EffectKind
	Amount     int      // coins per unit, meaning depends on Effect
	MallBonus  bool     // +1 per unit when the current player owns the Mall
	Counts     []CardID // PaySelfMultiplied: cards whose total scales the payout
	Unique     bool     // at most one copy per player
	Stock      int      // starting inventory
}

var catalogue = [NumCards]Card{
	{ID: Station, Name: "Station", Price: 4, Unique: true, Stock: 4},
	{ID: Mall, Name: "Shopping Mall", Price: 10, Unique: true, Stock: 4},
	{ID: AmusementPark, Name: "Amusement Park", Price: 16, Unique: true, Stock: 4},
	{ID: RadioTower, Name: "Radio Tower", Price: 22, Unique: true, Stock: 4},
	{ID: WheatField, Name: "Wheat Field", Price: 1, Activation: []int{1}, Effect: PayAllFromBank, Amount: 1, Stock: 5},
	{ID: Ranch, Name: "Ranch", Price: 1, Activation: []int{2}, Effect: PayAllFromBank, Amount: 1, Stock: 5},
	{ID: Bakery, Name: "Bakery", Price: 1, Activation: []int{2, 3}, Effect: PaySelfFromBank, Amount: 1, MallBonus: true, Stock: 5},
	{ID: Cafe, Name: "Cafe", Price: 2, Activation: []int{3}, Effect: PayOthersFromSelf, Amount: 1, MallBonus: true, Stock: 5},
	{ID: Kombini, Name: "Kombini", Price: 2, Activation: []int{4}, Effect: PaySelfFromBank, Amount: 3, MallBonus: true, Stock: 5},
	{ID: Forest, Name: "Forest", Price: 3, Activation: []int{5}, Effect: PayAllFromBank, Amount: 1, Stock: 5},
	{ID: Stadium, Name: "Stadium", Price: 6, Activation: []int{6}, Effect: PaySelfFromOthers, Amount: 2, Unique: true, Stock: 4},
	{ID: TVStation, Name: "TV Station", Price: 7, Activation: []int{6}, Effect: StealCoins, Amount: 5, Unique: true, Stock: 4},
	{ID: BusinessCenter, Name: "Business Center", Price: 8, Activation: []int{6}, Effect: StealCard, Unique: true, Stock: 4},
	{ID: CheeseFactory, Name: "Cheese Factory", Price: 5, Activation: []int{7}, Effect: PaySelfMultiplied, Amount: 3, Counts: []CardID{Ranch}, Stock: 5},
	{ID: FurnitureFactory, Name: "Furniture Factory", Price: 3, Activation: []int{8}, Effect: PaySelfMultiplied, Amount: 3, Counts: []CardID{Forest, Mine}, Stock: 5},
	{ID: Mine, Name: "Mine", Price: 6, Activation: []int{9}, Effect: PayAllFromBank, Amount: 5, Stock: 5},
	{ID: FamilyRestaurant, Name: "Family Restaurant", Price: 3, Activation: []int{9, 10}, Effect: PayOthersFromSelf, Amount: 2, MallBonus: true, Stock: 5},
	{ID: AppleOrchard, Name: "Apple Orchard", Price: 3, Activation: []int{10}, Effect: PayAllFromBank, Amount: 3, Stock: 5},
	{ID: Market, Name: "Market", Price: 2, Activation: []int{11, 12}, Effect: PaySelfMultiplied, Amount: 2, Counts: []CardID{WheatField, AppleOrchard}, Stock: 5},
}

// byThrow maps each dice total to its activation set, in catalogue order.
var byThrow = func() map[int][]CardID {
	m := make(map[int][]CardID)
	for _, c := range catalogue {
		for _, total := range c.Activation {
			m[total] = append(m[total], c.ID)
		}
	}
	return m
}()

// Lookup returns the catalogue entry for id.
func Lookup(id CardID) Card {
	if id < 0 || int(id) >= NumCards {
		panic("card id out of range")
	}
	return catalogue[id]
}

// Price returns the purchase price of id.
func Price(id CardID) int {
	return Lookup(id).Price
}

// CardsByThrow returns the activation set for a dice total, in catalogue
// order. The returned slice is a copy and safe to mutate.
func CardsByThrow(total int) []CardID {
	ids := byThrow[total]
	out := make([]CardID, len(ids))
	copy(out, ids)
	return out
}

// IsMonument reports whether id is one of the four win-condition monuments.
func IsMonument(id CardID) bool {
	return id >= Station && id <= RadioTower
}

// startingInventory seeds the purchasable stock for a new game.
func startingInventory() [NumCards]int {
	var inv [NumCards]int
	for i, c := range catalogue {
		inv[i] = c.Stock
	}
	return inv
}
