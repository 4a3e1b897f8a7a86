package manager

import (
	"log"

	"golang.org/x/exp/rand"

	"snake-np/game/entity"
	"snake-np/game/types"
)

// FoodManager places food on free cells
type FoodManager struct {
	grid        types.Grid
	rng         *rand.Rand
	maxAttempts int
}

// NewFoodManager builds a food manager drawing from rng. maxAttempts caps the
// rejection sampling; a negative value selects the default of 4 draws per cell.
func NewFoodManager(grid types.Grid, rng *rand.Rand, maxAttempts int) *FoodManager {
	if maxAttempts < 0 {
		maxAttempts = 4 * grid.Cells()
	}
	return &FoodManager{
		grid:        grid,
		rng:         rng,
		maxAttempts: maxAttempts,
	}
}

// GenerateFood draws uniformly random cells until one misses the snake. When
// the attempt budget runs out it falls back to the first free cell in row-major
// order. It returns false only if the snake covers the whole board.
func (fm *FoodManager) GenerateFood(snake entity.Snake) (types.Point, bool) {
	for i := 0; i < fm.maxAttempts; i++ {
		food := types.Point{
			X: fm.rng.Intn(fm.grid.Width),
			Y: fm.rng.Intn(fm.grid.Height),
		}
		if !snake.Contains(food) {
			return food, true
		}
	}

	if snake.Len() < fm.grid.Cells() {
		log.Printf("food: %d random draws missed, scanning for a free cell", fm.maxAttempts)
	}
	return fm.firstFree(snake)
}

func (fm *FoodManager) firstFree(snake entity.Snake) (types.Point, bool) {
	occupied := make(map[types.Point]struct{}, snake.Len())
	for _, p := range snake.Body {
		occupied[p] = struct{}{}
	}
	for y := 0; y < fm.grid.Height; y++ {
		for x := 0; x < fm.grid.Width; x++ {
			p := types.Point{X: x, Y: y}
			if _, ok := occupied[p]; !ok {
				return p, true
			}
		}
	}
	return types.Point{}, false
}
