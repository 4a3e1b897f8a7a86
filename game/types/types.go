package types

import "time"

// Point is a single board cell
type Point struct {
	X, Y int
}

// Add returns the point offset by d
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Grid represents the game grid dimensions
type Grid struct {
	Width  int
	Height int
}

// Contains reports whether p lies on the board
func (g Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Cells is the number of cells on the board
func (g Grid) Cells() int {
	return g.Width * g.Height
}

// Center returns the middle cell, rounded down
func (g Grid) Center() Point {
	return Point{X: g.Width / 2, Y: g.Height / 2}
}

// Game constants
const (
	GridSize           = 20 // Cells per side
	InitialSnakeLength = 3

	InitialTickInterval = 150 * time.Millisecond
	MinTickInterval     = 50 * time.Millisecond
	SpeedFactor         = 0.97 // 3% faster per food
)
