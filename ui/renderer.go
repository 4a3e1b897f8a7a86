package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"snake-np/game"
	"snake-np/game/manager"
	"snake-np/game/types"
	"snake-np/ui/layout"
)

const (
	borderPadding = 10
	headerHeight  = 90
	footerHeight  = 30
	maxPadSide    = 240
)

// View is everything the renderer needs for one frame
type View struct {
	Phase game.Phase
	State game.State
	Best  int
	Grid  types.Grid
	Stats *manager.StatsManager
}

type Renderer struct {
	minCell      int
	touch        bool
	palette      layout.Palette
	screenWidth  int32
	screenHeight int32
	cellSize     int32
	board        layout.Rect
	pad          layout.DPad
}

func NewRenderer(theme string, touch bool, minCell int) *Renderer {
	r := &Renderer{
		minCell: minCell,
		touch:   touch,
		palette: layout.Theme(theme),
	}
	r.UpdateDimensions(types.Grid{Width: types.GridSize, Height: types.GridSize})
	return r
}

func (r *Renderer) SetTheme(theme string) {
	r.palette = layout.Theme(theme)
}

// UpdateDimensions recomputes cell size, board and pad from the window size
func (r *Renderer) UpdateDimensions(grid types.Grid) {
	r.screenWidth = int32(rl.GetScreenWidth())
	r.screenHeight = int32(rl.GetScreenHeight())

	cell := layout.CellSize(int(r.screenWidth), int(r.screenHeight), grid.Width, r.touch, r.minCell)
	r.cellSize = int32(cell)
	r.board = layout.Board(int(r.screenWidth), headerHeight, grid.Width, cell)

	if r.touch {
		top := r.board.Y + r.board.H + borderPadding
		side := int(r.screenHeight) - top - footerHeight
		if side > maxPadSide {
			side = maxPadSide
		}
		r.pad = layout.NewDPad(int(r.screenWidth)/2, top, side)
	}
}

// Pad returns the on-screen direction pad of the last frame
func (r *Renderer) Pad() layout.DPad {
	return r.pad
}

func color(c layout.RGB) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: 255}
}

func (r *Renderer) Draw(v View) {
	r.UpdateDimensions(v.Grid)
	rl.BeginDrawing()
	defer rl.EndDrawing()

	p := r.palette
	rl.ClearBackground(color(p.Background))

	switch v.Phase {
	case game.Stopped:
		r.drawStartScreen(v)
		return
	default:
		r.drawHeader(v)
		r.drawBoard(v)
		r.drawFooter()
		if r.touch {
			r.drawPad()
		}
	}
	if v.Phase == game.GameOver {
		r.drawGameOver(v)
	}
}

func (r *Renderer) drawHeader(v View) {
	p := r.palette
	fontSize := int32(36)
	title := "Snake NP"
	w := rl.MeasureText(title, fontSize)
	rl.DrawText(title, (r.screenWidth-w)/2, borderPadding, fontSize, color(p.Title))

	scoreSize := int32(20)
	line := fmt.Sprintf("Score: %d    High Score: %d", v.State.Score, v.Best)
	if v.Stats != nil && v.Stats.GamesPlayed() > 0 {
		line += fmt.Sprintf("    Games: %d    Avg: %.1f", v.Stats.GamesPlayed(), v.Stats.AverageScore())
	}
	w = rl.MeasureText(line, scoreSize)
	rl.DrawText(line, (r.screenWidth-w)/2, borderPadding+fontSize+10, scoreSize, color(p.Score))
}

func (r *Renderer) drawBoard(v View) {
	p := r.palette
	b := r.board

	border := p.Border
	if v.State.Over {
		border = p.BorderOver
	}
	rl.DrawRectangle(int32(b.X-2), int32(b.Y-2), int32(b.W+4), int32(b.H+4), color(border))
	rl.DrawRectangle(int32(b.X), int32(b.Y), int32(b.W), int32(b.H), color(p.Board))

	cell := int(r.cellSize)
	body := v.State.Snake.Body
	for j := len(body) - 1; j >= 0; j-- {
		c := layout.CellRect(b, cell, body[j])
		segColor := p.Body
		if j == 0 {
			segColor = p.Head
		}
		rl.DrawRectangle(int32(c.X), int32(c.Y), int32(c.W-1), int32(c.H-1), color(segColor))
	}
	if len(body) > 0 {
		r.drawHeadIndicator(layout.CellRect(b, cell, body[0]), v.State.CurrentDirection)
	}

	if !v.State.Over {
		f := layout.CellRect(b, cell, v.State.Food)
		rl.DrawRectangle(int32(f.X), int32(f.Y), int32(f.W-1), int32(f.H-1), color(p.Food))
	}
}

// drawHeadIndicator paints a small triangle pointing where the head moves
func (r *Renderer) drawHeadIndicator(c layout.Rect, dir types.Direction) {
	headX := float32(c.X)
	headY := float32(c.Y)
	size := float32(c.W)
	half := size / 2
	ind := color(r.palette.Background)

	switch dir {
	case types.Right:
		rl.DrawTriangle(
			rl.Vector2{X: headX + size, Y: headY + half},
			rl.Vector2{X: headX + half, Y: headY},
			rl.Vector2{X: headX + half, Y: headY + size},
			ind)
	case types.Left:
		rl.DrawTriangle(
			rl.Vector2{X: headX, Y: headY + half},
			rl.Vector2{X: headX + half, Y: headY + size},
			rl.Vector2{X: headX + half, Y: headY},
			ind)
	case types.Down:
		rl.DrawTriangle(
			rl.Vector2{X: headX + half, Y: headY + size},
			rl.Vector2{X: headX + size, Y: headY + half},
			rl.Vector2{X: headX, Y: headY + half},
			ind)
	default:
		rl.DrawTriangle(
			rl.Vector2{X: headX + half, Y: headY},
			rl.Vector2{X: headX, Y: headY + half},
			rl.Vector2{X: headX + size, Y: headY + half},
			ind)
	}
}

func (r *Renderer) drawFooter() {
	hint := "Use Arrow Keys or WASD to move. Pass through walls!  [T] theme  [Backspace] menu"
	if r.touch {
		hint = "Use on-screen controls to move. Pass through walls!"
	}
	fontSize := int32(14)
	w := rl.MeasureText(hint, fontSize)
	rl.DrawText(hint, (r.screenWidth-w)/2, r.screenHeight-footerHeight+8, fontSize, color(r.palette.Muted))
}

func (r *Renderer) drawPad() {
	p := r.palette
	arrows := map[types.Direction]string{types.Up: "^", types.Down: "v", types.Left: "<", types.Right: ">"}
	for dir, b := range r.pad.Buttons {
		rl.DrawRectangle(int32(b.X), int32(b.Y), int32(b.W), int32(b.H), rl.Fade(color(p.Button), 0.8))
		fontSize := int32(b.H / 2)
		label := arrows[dir]
		w := rl.MeasureText(label, fontSize)
		cx, cy := b.Center()
		rl.DrawText(label, int32(cx)-w/2, int32(cy)-fontSize/2, fontSize, color(p.Text))
	}
}

func (r *Renderer) drawStartScreen(v View) {
	p := r.palette
	rl.DrawRectangle(0, 0, r.screenWidth, r.screenHeight, color(p.Overlay))

	y := r.screenHeight / 4
	r.centered("Snake NP", y, 56, p.Title)
	y += 80
	if r.touch {
		r.centered("Use the on-screen arrows to control the snake.", y, 20, p.Text)
	} else {
		r.centered("Use Arrow Keys or WASD to control the snake.", y, 20, p.Text)
	}
	y += 32
	r.centered("Eat the dots to grow and score points!", y, 20, p.Text)
	y += 48
	if v.Best > 0 {
		r.centered(fmt.Sprintf("High Score: %d", v.Best), y, 28, p.Score)
		y += 48
	}
	r.centered("Press Enter or click to start", y, 28, p.Border)
}

func (r *Renderer) drawGameOver(v View) {
	p := r.palette
	rl.DrawRectangle(0, 0, r.screenWidth, r.screenHeight, rl.Fade(color(p.Overlay), 0.95))

	y := r.screenHeight / 3
	r.centered("Game Over!", y, 60, p.BorderOver)
	y += 84
	r.centered(fmt.Sprintf("Your Score: %d", v.State.Score), y, 32, p.Text)
	y += 44
	r.centered(fmt.Sprintf("High Score: %d", v.Best), y, 26, p.Score)
	y += 60
	r.centered("Press Enter or click to restart", y, 24, p.Border)
}

func (r *Renderer) centered(text string, y, fontSize int32, c layout.RGB) {
	w := rl.MeasureText(text, fontSize)
	rl.DrawText(text, (r.screenWidth-w)/2, y, fontSize, color(c))
}
