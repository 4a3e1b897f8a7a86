package game

import (
	"time"

	"snake-np/game/entity"
	"snake-np/game/types"
)

// EndReason explains why a game stopped
type EndReason int

const (
	EndNone EndReason = iota
	EndCollision
	EndBoardFull // no free cell left for food
)

func (r EndReason) String() string {
	switch r {
	case EndCollision:
		return "collision"
	case EndBoardFull:
		return "board full"
	default:
		return "none"
	}
}

// State is one snapshot of the simulation. While Over is false the head is
// unique within the snake and Food lies outside it.
type State struct {
	Snake            entity.Snake
	Food             types.Point
	CurrentDirection types.Direction
	PendingDirection types.Direction
	Score            int
	TickInterval     time.Duration
	Over             bool
	EndReason        EndReason
}

// Clone returns a State that shares no memory with s
func (s State) Clone() State {
	s.Snake = s.Snake.Clone()
	return s
}
