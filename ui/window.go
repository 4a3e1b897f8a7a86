package ui

import (
	"log"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"snake-np/game"
	"snake-np/game/types"
	"snake-np/sound"
	"snake-np/ui/layout"
)

// Options for the window front-end
type Options struct {
	Theme         string
	TouchControls bool
	BaseCellSize  int
	MinCellSize   int
	Sound         *sound.Player
}

// Checked in order; when several keys land in one frame the last one wins,
// the same as the pending direction it feeds.
var keyDirections = []struct {
	key int32
	dir types.Direction
}{
	{rl.KeyUp, types.Up},
	{rl.KeyW, types.Up},
	{rl.KeyDown, types.Down},
	{rl.KeyS, types.Down},
	{rl.KeyLeft, types.Left},
	{rl.KeyA, types.Left},
	{rl.KeyRight, types.Right},
	{rl.KeyD, types.Right},
}

// Window runs the game in a raylib window. The frame loop is the only
// goroutine touching the controller.
type Window struct {
	ctrl     *game.Controller
	sched    *game.FrameScheduler
	renderer *Renderer
	opts     Options
	theme    string
}

func NewWindow(ctrl *game.Controller, sched *game.FrameScheduler, opts Options) *Window {
	return &Window{
		ctrl:  ctrl,
		sched: sched,
		opts:  opts,
		theme: opts.Theme,
	}
}

// Run opens the window and blocks until it is closed
func (w *Window) Run() error {
	grid := w.ctrl.Grid()
	width := int32(grid.Width*w.opts.BaseCellSize) + 2*borderPadding
	height := int32(grid.Height*w.opts.BaseCellSize) + headerHeight + footerHeight + borderPadding
	if w.opts.TouchControls {
		height += maxPadSide
	}
	if width < 640 {
		width = 640
	}

	rl.InitWindow(width, height, "Snake NP")
	rl.SetWindowState(rl.FlagWindowResizable)
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	w.renderer = NewRenderer(w.theme, w.opts.TouchControls, w.opts.MinCellSize)
	log.Printf("window: %dx%d, theme %s, touch %v", width, height, w.theme, w.opts.TouchControls)

	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) {
			break
		}
		w.handleInput()

		if w.sched.Due(time.Now()) {
			before := w.ctrl.State()
			w.opts.Sound.Observe(before, w.ctrl.Advance())
		}

		w.renderer.Draw(View{
			Phase: w.ctrl.Phase(),
			State: w.ctrl.State(),
			Best:  w.ctrl.BestScore(),
			Grid:  grid,
			Stats: w.ctrl.Stats(),
		})
	}

	w.ctrl.Stop()
	return nil
}

func (w *Window) handleInput() {
	if rl.IsKeyPressed(rl.KeyT) {
		w.theme = layout.Toggle(w.theme)
		w.renderer.SetTheme(w.theme)
	}

	switch w.ctrl.Phase() {
	case game.Stopped, game.GameOver:
		if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeySpace) || rl.IsMouseButtonPressed(rl.MouseLeftButton) {
			w.ctrl.Start()
			return
		}
		if w.ctrl.Phase() == game.GameOver && rl.IsKeyPressed(rl.KeyBackspace) {
			w.ctrl.Stop()
		}

	case game.Running:
		if rl.IsKeyPressed(rl.KeyBackspace) {
			w.ctrl.Stop()
			return
		}
		for _, kd := range keyDirections {
			if rl.IsKeyPressed(kd.key) {
				w.ctrl.Direction(kd.dir)
			}
		}
		if w.opts.TouchControls && rl.IsMouseButtonPressed(rl.MouseLeftButton) {
			pos := rl.GetMousePosition()
			if dir, ok := w.renderer.Pad().HitTest(int(pos.X), int(pos.Y)); ok {
				w.ctrl.Direction(dir)
			}
		}
	}
}
