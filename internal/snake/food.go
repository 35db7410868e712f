package snake

import (
	"math/rand"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// FoodConfig describes the food spawner.
type FoodConfig struct {
	Bound float64 // Respawn range is [-Bound, +Bound] on both axes
	Look  core.Appearance
}

// Food is the single piece of food on the board.
type Food struct {
	sprite
	rng   *rand.Rand
	bound int
}

// NewFood spawns the food on d and places it at a random position.
func NewFood(d core.Display, rng *rand.Rand, cfg FoodConfig) *Food {
	f := &Food{
		sprite: spawn(d, core.Vec{}, cfg.Look),
		rng:    rng,
		bound:  int(cfg.Bound),
	}
	f.Respawn()
	return f
}

// Respawn moves the food to integer coordinates drawn uniformly from
// [-bound, +bound] on each axis. The snake body is not avoided.
func (f *Food) Respawn() {
	f.MoveTo(core.V(f.coord(), f.coord()))
}

func (f *Food) coord() float64 {
	if f.bound <= 0 {
		return 0
	}
	return float64(f.rng.Intn(2*f.bound+1) - f.bound)
}
