package entity

import "snake-np/game/types"

// Snake is an ordered body, head first and tail last.
// Grow and WithoutTail return new snakes; a Snake handed out in a
// game state is never modified afterwards.
type Snake struct {
	Body []types.Point
}

// NewSnake lays out length cells in a straight line trailing behind head,
// opposite to the facing direction.
func NewSnake(head types.Point, length int, facing types.Direction) Snake {
	if length < 1 {
		length = 1
	}
	back := facing.Opposite().ToPoint()
	body := make([]types.Point, length)
	body[0] = head
	for i := 1; i < length; i++ {
		body[i] = body[i-1].Add(back)
	}
	return Snake{Body: body}
}

func (s Snake) Head() types.Point {
	return s.Body[0]
}

func (s Snake) Tail() types.Point {
	return s.Body[len(s.Body)-1]
}

func (s Snake) Len() int {
	return len(s.Body)
}

// Contains reports whether any segment occupies p
func (s Snake) Contains(p types.Point) bool {
	for _, part := range s.Body {
		if part == p {
			return true
		}
	}
	return false
}

// Grow returns a copy with newHead prepended
func (s Snake) Grow(newHead types.Point) Snake {
	body := make([]types.Point, 0, len(s.Body)+1)
	body = append(body, newHead)
	body = append(body, s.Body...)
	return Snake{Body: body}
}

// WithoutTail returns a copy minus the last segment. A single-cell snake is
// returned unchanged.
func (s Snake) WithoutTail() Snake {
	if len(s.Body) <= 1 {
		return s.Clone()
	}
	body := make([]types.Point, len(s.Body)-1)
	copy(body, s.Body)
	return Snake{Body: body}
}

func (s Snake) Clone() Snake {
	body := make([]types.Point, len(s.Body))
	copy(body, s.Body)
	return Snake{Body: body}
}
