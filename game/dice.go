package game

import (
	"sync"
	"time"

	"golang.org/x/exp/rand"
)

// Dice is one throw: D2 is 0 when only one die was rolled, both are 0 before
// the first roll of a turn.
type Dice struct {
	D1, D2 int
}

// Total is the activation total of the throw.
func (d Dice) Total() int {
	return d.D1 + d.D2
}

// Doubles reports whether both dice show the same face.
func (d Dice) Doubles() bool {
	return d.D2 != 0 && d.D1 == d.D2
}

// validate panics on die values outside 0..6; a malformed throw is a caller
// bug, not a game-rule violation.
func (d Dice) validate() {
	if d.D1 < 0 || d.D1 > 6 || d.D2 < 0 || d.D2 > 6 {
		panic("die value out of range 0..6")
	}
}

// Roller produces dice throws. Production uses a seeded PRNG; tests inject a
// fixed sequence instead. Copy shares the roller across state copies, so an
// implementation must be safe for concurrent use.
type Roller interface {
	Roll(dice int) Dice
}

type randRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRoller returns a Roller backed by a PRNG seeded from seed, or from the
// clock when seed is 0.
func NewRoller(seed uint64) Roller {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &randRoller{rng: rand.New(rand.NewSource(seed))}
}

// Roll is safe for concurrent use: state copies share one roller, and a
// parallel search plays stochastic moves from many goroutines at once.
func (r *randRoller) Roll(dice int) Dice {
	r.mu.Lock()
	defer r.mu.Unlock()

	d := Dice{D1: r.rng.Intn(6) + 1}
	if dice == 2 {
		d.D2 = r.rng.Intn(6) + 1
	}
	return d
}
