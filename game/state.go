package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"strings"
)

// TurnState is the sub-state of the current player's turn. Every turn starts
// in RollDice; the interactive states are entered only when a landmark card
// suspends economy resolution.
type TurnState int

const (
	RollDice TurnState = iota
	MayReroll
	MayChoosePlayerForCoins
	MayChoosePlayerForCard
	MayChooseCard
	MayBuy
)

func (ts TurnState) String() string {
	switch ts {
	case RollDice:
		return "ROLL_DICE"
	case MayReroll:
		return "MAY_REROLL"
	case MayChoosePlayerForCoins:
		return "MAY_CHOOSE_PLAYER_FOR_COINS"
	case MayChoosePlayerForCard:
		return "MAY_CHOOSE_PLAYER_FOR_CARD"
	case MayChooseCard:
		return "MAY_CHOOSE_CARD"
	case MayBuy:
		return "MAY_BUY"
	}
	return fmt.Sprintf("TurnState(%d)", int(ts))
}

type StateHash uint64

// PlayerSlot holds one player's mutable state.
type PlayerSlot struct {
	Coins int
	Cards [NumCards]int
	Dice  Dice
}

// GameState is the single mutable game structure. All mutation goes through
// Step; the catalogue it reads from is immutable and shared.
type GameState struct {
	Players    []PlayerSlot
	Inventory  [NumCards]int
	Current    int       // index of the active player
	Turn       TurnState // sub-state of the active player's turn
	SecondTurn bool      // bonus turn already taken this turn-cycle

	stealTarget int      // pending steal victim, -1 when none
	activated   []CardID // cards still to resolve for the current throw

	roller   Roller
	testMode bool
}

type Option func(*GameState)

// WithRoller replaces the dice source.
func WithRoller(r Roller) Option {
	return func(gs *GameState) {
		if r != nil {
			gs.roller = r
		}
	}
}

// WithSeed seeds the default dice source deterministically.
func WithSeed(seed uint64) Option {
	return func(gs *GameState) {
		gs.roller = NewRoller(seed)
	}
}

// WithTestMode makes Step honor forced dice values.
func WithTestMode() Option {
	return func(gs *GameState) {
		gs.testMode = true
	}
}

// NewGameState initializes a game of 2-4 players: every player starts with 3
// coins, one Wheat Field and one Bakery, and player 0 rolls first.
func NewGameState(numPlayers int, options ...Option) *GameState {
	if numPlayers < 2 || numPlayers > 4 {
		panic("number of players must be 2..4")
	}

	gs := &GameState{
		Players:     make([]PlayerSlot, numPlayers),
		Inventory:   startingInventory(),
		Current:     0,
		Turn:        RollDice,
		stealTarget: -1,
		roller:      NewRoller(0),
	}
	for i := range gs.Players {
		gs.Players[i].Coins = 3
		gs.Players[i].Cards[WheatField] = 1
		gs.Players[i].Cards[Bakery] = 1
	}

	for _, option := range options {
		option(gs)
	}
	return gs
}

// NumPlayers returns the number of seats.
func (gs *GameState) NumPlayers() int {
	return len(gs.Players)
}

// Copy returns a deep copy sharing only the roller.
func (gs *GameState) Copy() *GameState {
	playersCopy := make([]PlayerSlot, len(gs.Players))
	copy(playersCopy, gs.Players) // Cards is an array, copied by value

	activatedCopy := make([]CardID, len(gs.activated))
	copy(activatedCopy, gs.activated)

	return &GameState{
		Players:     playersCopy,
		Inventory:   gs.Inventory,
		Current:     gs.Current,
		Turn:        gs.Turn,
		SecondTurn:  gs.SecondTurn,
		stealTarget: gs.stealTarget,
		activated:   activatedCopy,
		roller:      gs.roller,
		testMode:    gs.testMode,
	}
}

// checkPlayer panics on an out-of-range slot index.
func (gs *GameState) checkPlayer(i int) {
	if i < 0 || i >= len(gs.Players) {
		panic(fmt.Sprintf("player index %d out of range", i))
	}
}

// Funds returns player i's coins.
func (gs *GameState) Funds(i int) int {
	gs.checkPlayer(i)
	return gs.Players[i].Coins
}

// setFunds enforces the no-debt invariant at the mutation boundary. Payment
// clamping is the caller's job; reaching a negative amount here is a bug.
func (gs *GameState) setFunds(i, coins int) {
	gs.checkPlayer(i)
	if coins < 0 {
		panic(fmt.Sprintf("player %d funds would become negative (%d)", i, coins))
	}
	gs.Players[i].Coins = coins
}

// Count returns how many copies of card player i owns.
func (gs *GameState) Count(i int, card CardID) int {
	gs.checkPlayer(i)
	return gs.Players[i].Cards[card]
}

// Owns reports whether player i owns at least one copy of card.
func (gs *GameState) Owns(i int, card CardID) bool {
	return gs.Count(i, card) >= 1
}

// owns is Owns for the current player.
func (gs *GameState) owns(card CardID) bool {
	return gs.Owns(gs.Current, card)
}

// Throw returns the current player's dice.
func (gs *GameState) Throw() Dice {
	return gs.Players[gs.Current].Dice
}

// setThrow records a throw for the current player and precomputes its
// activation set. Malformed dice are a fault.
func (gs *GameState) setThrow(d Dice) {
	d.validate()
	gs.Players[gs.Current].Dice = d
	gs.activated = CardsByThrow(d.Total())
}

// MonumentCount returns how many of the four monuments player i owns.
func (gs *GameState) MonumentCount(i int) int {
	gs.checkPlayer(i)
	n := 0
	for id := Station; id <= RadioTower; id++ {
		n += gs.Players[i].Cards[id]
	}
	return n
}

// NetWorth is the reward proxy: coins plus the historical purchase value of
// every owned card.
func (gs *GameState) NetWorth(i int) int {
	gs.checkPlayer(i)
	worth := gs.Players[i].Coins
	for id := 0; id < NumCards; id++ {
		worth += gs.Players[i].Cards[id] * catalogue[id].Price
	}
	return worth
}

// Reward is the default per-step reward: the current player's net worth.
func (gs *GameState) Reward() int {
	return gs.NetWorth(gs.Current)
}

// Player returns the identifier of the current player.
func (gs *GameState) Player() string {
	return fmt.Sprintf("Player%d", gs.Current)
}

// Winner returns the identifier of the player owning all four monuments, or
// "" while the game is running.
func (gs *GameState) Winner() string {
	for i := range gs.Players {
		if gs.MonumentCount(i) == 4 {
			return fmt.Sprintf("Player%d", i)
		}
	}
	return ""
}

// Hash folds the full game state into a 64-bit value for search-tree reuse.
func (gs *GameState) Hash() StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(gs.Current))
	binary.Write(hasher, binary.LittleEndian, int64(gs.Turn))
	binary.Write(hasher, binary.LittleEndian, int64(gs.stealTarget))
	var second int64
	if gs.SecondTurn {
		second = 1
	}
	binary.Write(hasher, binary.LittleEndian, second)

	for i := range gs.Players {
		binary.Write(hasher, binary.LittleEndian, int64(gs.Players[i].Coins))
		for _, n := range gs.Players[i].Cards {
			binary.Write(hasher, binary.LittleEndian, int64(n))
		}
		binary.Write(hasher, binary.LittleEndian, int64(gs.Players[i].Dice.D1))
		binary.Write(hasher, binary.LittleEndian, int64(gs.Players[i].Dice.D2))
	}

	for _, id := range gs.activated {
		binary.Write(hasher, binary.LittleEndian, int64(id))
	}

	return StateHash(hasher.Sum64())
}

// String is a diagnostic dump with no parseable contract.
func (gs *GameState) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "current player: %d  sub-state: %s  dice: %d,%d  reward: %d\n",
		gs.Current, gs.Turn, gs.Throw().D1, gs.Throw().D2, gs.Reward())
	for i := range gs.Players {
		marker := " "
		if i == gs.Current {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s player %d: %2d coins  cards %v\n",
			marker, i, gs.Players[i].Coins, gs.Players[i].Cards)
	}
	return b.String()
}
