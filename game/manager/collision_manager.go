package manager

import (
	"snake-np/game/entity"
	"snake-np/game/types"
)

// CollisionManager answers board-geometry questions for a toroidal grid.
// There are no walls: leaving one edge re-enters from the opposite one.
type CollisionManager struct {
	grid types.Grid
}

func NewCollisionManager(grid types.Grid) *CollisionManager {
	return &CollisionManager{
		grid: grid,
	}
}

// Wrap folds a position that stepped one cell off the board back onto it
func (cm *CollisionManager) Wrap(pos types.Point) types.Point {
	if pos.X < 0 {
		pos.X = cm.grid.Width - 1
	} else if pos.X >= cm.grid.Width {
		pos.X = 0
	}
	if pos.Y < 0 {
		pos.Y = cm.grid.Height - 1
	} else if pos.Y >= cm.grid.Height {
		pos.Y = 0
	}
	return pos
}

// IsSelfCollision checks pos against every segment except the head.
// The tail counts as occupied even though it may be vacated this tick.
func (cm *CollisionManager) IsSelfCollision(pos types.Point, snake entity.Snake) bool {
	for i := 1; i < len(snake.Body); i++ {
		if pos == snake.Body[i] {
			return true
		}
	}
	return false
}

// IsFoodCollision checks if a position collides with food
func (cm *CollisionManager) IsFoodCollision(pos types.Point, food types.Point) bool {
	return pos == food
}
