package engine

import "math/rand"

// Dice rolls two six-sided dice from the game's random source.
type Dice struct {
	rng *rand.Rand
}

// NewDice creates a dice pair over a random source.
func NewDice(rng *rand.Rand) *Dice {
	return &Dice{rng: rng}
}

// Roll returns both dice faces.
func (d *Dice) Roll() (int, int) {
	return d.rng.Intn(6) + 1, d.rng.Intn(6) + 1
}

// RollSum rolls both dice and returns the total. Utility rent is
// computed from a fresh roll like this, not from the movement roll.
func (d *Dice) RollSum() int {
	a, b := d.Roll()
	return a + b
}
