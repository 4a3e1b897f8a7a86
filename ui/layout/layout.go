// Package layout holds the geometry and colours shared by the window and
// terminal front-ends. Nothing here draws.
package layout

import (
	"snake-np/game/types"
)

// Rect is an axis-aligned rectangle in screen units
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Center of the rectangle, rounded down
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// CellSize fits the board into the screen: 95% of the width and 75% of the
// height (60% when touch controls take the space below the board), never
// smaller than minCell.
func CellSize(screenW, screenH, gridSize int, touch bool, minCell int) int {
	if gridSize <= 0 {
		return minCell
	}
	heightShare := 0.75
	if touch {
		heightShare = 0.60
	}
	availableW := float64(screenW) * 0.95
	availableH := float64(screenH) * heightShare

	board := availableW
	if availableH < board {
		board = availableH
	}
	cell := int(board) / gridSize
	if cell < minCell {
		return minCell
	}
	return cell
}

// Board places a gridSize×gridSize board of cell-sized squares centred
// horizontally with its top edge at top.
func Board(screenW, top, gridSize, cell int) Rect {
	side := gridSize * cell
	return Rect{X: (screenW - side) / 2, Y: top, W: side, H: side}
}

// CellRect is the screen rectangle of a board cell
func CellRect(board Rect, cell int, p types.Point) Rect {
	return Rect{X: board.X + p.X*cell, Y: board.Y + p.Y*cell, W: cell, H: cell}
}

// DPad is the on-screen direction pad: a 3×3 grid with buttons on the
// middle of each edge.
type DPad struct {
	Area    Rect
	Buttons map[types.Direction]Rect
}

// NewDPad lays out a pad of the given side length centred at (cx, top+side/2)
func NewDPad(cx, top, side int) DPad {
	slot := side / 3
	gap := slot / 8
	area := Rect{X: cx - side/2, Y: top, W: side, H: side}

	button := func(col, row int) Rect {
		return Rect{
			X: area.X + col*slot + gap,
			Y: area.Y + row*slot + gap,
			W: slot - 2*gap,
			H: slot - 2*gap,
		}
	}
	return DPad{
		Area: area,
		Buttons: map[types.Direction]Rect{
			types.Up:    button(1, 0),
			types.Left:  button(0, 1),
			types.Right: button(2, 1),
			types.Down:  button(1, 2),
		},
	}
}

// HitTest maps a press at (x, y) to a direction
func (d DPad) HitTest(x, y int) (types.Direction, bool) {
	if !d.Area.Contains(x, y) {
		return 0, false
	}
	for dir, r := range d.Buttons {
		if r.Contains(x, y) {
			return dir, true
		}
	}
	return 0, false
}
