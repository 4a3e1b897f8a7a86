// Package terminal plays the game in a terminal through tcell. Each board
// cell is two columns wide so the board looks square.
package terminal

import (
	"context"
	"fmt"
	"log"

	"github.com/gdamore/tcell/v2"

	"snake-np/game"
	"snake-np/game/types"
	"snake-np/sound"
	"snake-np/ui/layout"
)

const (
	headerRows = 3
	footerRows = 2
	cellCols   = 2
)

type Frontend struct {
	screen  tcell.Screen
	ctrl    *game.Controller
	sched   *game.TickerScheduler
	theme   string
	palette layout.Palette
	sound   *sound.Player
}

// New wraps an initialised screen. The caller owns screen.Fini. A nil
// player runs silent.
func New(screen tcell.Screen, ctrl *game.Controller, sched *game.TickerScheduler, theme string, player *sound.Player) *Frontend {
	return &Frontend{
		screen:  screen,
		ctrl:    ctrl,
		sched:   sched,
		theme:   theme,
		palette: layout.Theme(theme),
		sound:   player,
	}
}

// Run drives input and ticks until the player quits or ctx is done
func (f *Frontend) Run(ctx context.Context) error {
	f.screen.HideCursor()
	events := make(chan tcell.Event, 32)
	go func() {
		for {
			ev := f.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	defer f.ctrl.Stop()
	f.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if quit := f.HandleEvent(ev); quit {
				log.Printf("terminal: quit")
				return nil
			}
		case <-f.sched.C():
			before := f.ctrl.State()
			f.sound.Observe(before, f.ctrl.Advance())
		}
		f.Draw()
	}
}

// HandleEvent applies one tcell event and reports whether to quit
func (f *Frontend) HandleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventResize:
		f.screen.Sync()
	case *tcell.EventKey:
		return f.handleKey(e)
	}
	return false
}

func (f *Frontend) handleKey(e *tcell.EventKey) bool {
	switch e.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return true
	case tcell.KeyEnter:
		if f.ctrl.Phase() != game.Running {
			f.ctrl.Start()
		}
		return false
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		f.ctrl.Stop()
		return false
	case tcell.KeyUp:
		f.ctrl.Direction(types.Up)
	case tcell.KeyDown:
		f.ctrl.Direction(types.Down)
	case tcell.KeyLeft:
		f.ctrl.Direction(types.Left)
	case tcell.KeyRight:
		f.ctrl.Direction(types.Right)
	case tcell.KeyRune:
		return f.handleRune(e.Rune())
	}
	return false
}

func (f *Frontend) handleRune(r rune) bool {
	switch r {
	case 'q', 'Q':
		return true
	case ' ':
		if f.ctrl.Phase() != game.Running {
			f.ctrl.Start()
		}
	case 't', 'T':
		f.theme = layout.Toggle(f.theme)
		f.palette = layout.Theme(f.theme)
	case 'w', 'W', 'k':
		f.ctrl.Direction(types.Up)
	case 's', 'S', 'j':
		f.ctrl.Direction(types.Down)
	case 'a', 'A', 'h':
		f.ctrl.Direction(types.Left)
	case 'd', 'D', 'l':
		f.ctrl.Direction(types.Right)
	}
	return false
}

// Theme returns the active theme name
func (f *Frontend) Theme() string {
	return f.theme
}

func rgb(c layout.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// BoardOrigin is the screen position of cell (0,0)
func (f *Frontend) BoardOrigin() (int, int) {
	w, _ := f.screen.Size()
	grid := f.ctrl.Grid()
	return (w - grid.Width*cellCols) / 2, headerRows + 1
}

// MinSize is the smallest screen that fits the header, the bordered board
// and both footer lines
func (f *Frontend) MinSize() (int, int) {
	grid := f.ctrl.Grid()
	_, oy := f.BoardOrigin()
	return grid.Width*cellCols + 2, oy + grid.Height + footerRows + 1
}

// Draw renders the current phase
func (f *Frontend) Draw() {
	p := f.palette
	base := tcell.StyleDefault.Background(rgb(p.Background)).Foreground(rgb(p.Text))
	f.screen.SetStyle(base)
	f.screen.Clear()

	w, h := f.screen.Size()
	minW, minH := f.MinSize()
	if w < minW || h < minH {
		f.centered(h/2, "Terminal too small", base.Foreground(rgb(p.BorderOver)))
		f.screen.Show()
		return
	}

	switch f.ctrl.Phase() {
	case game.Stopped:
		f.drawStart(base)
	case game.Running, game.GameOver:
		f.drawGame(base)
	}
	f.screen.Show()
}

func (f *Frontend) drawStart(base tcell.Style) {
	p := f.palette
	_, h := f.screen.Size()
	y := h / 3
	f.centered(y, "Snake NP", base.Foreground(rgb(p.Title)).Bold(true))
	f.centered(y+2, "Use the arrow keys, WASD or hjkl to move.", base)
	f.centered(y+3, "Eat the dots to grow and score points!", base)
	if best := f.ctrl.BestScore(); best > 0 {
		f.centered(y+5, fmt.Sprintf("High Score: %d", best), base.Foreground(rgb(p.Score)))
	}
	f.centered(y+7, "Press Enter to start", base.Foreground(rgb(p.Border)).Bold(true))
	f.centered(y+9, "[t] theme  [q] quit", base.Foreground(rgb(p.Muted)))
}

func (f *Frontend) drawGame(base tcell.Style) {
	p := f.palette
	st := f.ctrl.State()
	grid := f.ctrl.Grid()

	f.centered(0, "Snake NP", base.Foreground(rgb(p.Title)).Bold(true))
	f.centered(1, fmt.Sprintf("Score: %d   High Score: %d", st.Score, f.ctrl.BestScore()), base.Foreground(rgb(p.Score)))

	ox, oy := f.BoardOrigin()
	border := p.Border
	if st.Over {
		border = p.BorderOver
	}
	f.drawBox(ox-1, oy-1, grid.Width*cellCols+2, grid.Height+2, base.Foreground(rgb(border)))

	boardStyle := base.Background(rgb(p.Board))
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			f.paintCell(ox, oy, types.Point{X: x, Y: y}, boardStyle)
		}
	}
	if !st.Over {
		f.paintCell(ox, oy, st.Food, base.Background(rgb(p.Food)))
	}
	for i := len(st.Snake.Body) - 1; i >= 0; i-- {
		c := p.Body
		if i == 0 {
			c = p.Head
		}
		f.paintCell(ox, oy, st.Snake.Body[i], base.Background(rgb(c)))
	}

	footer := oy + grid.Height + 1
	if st.Over {
		f.centered(footer, fmt.Sprintf("Game Over! Your Score: %d", st.Score), base.Foreground(rgb(p.BorderOver)).Bold(true))
		f.centered(footer+1, "Enter: restart  Backspace: menu  q: quit", base.Foreground(rgb(p.Muted)))
		return
	}
	f.centered(footer, "Pass through walls!  [Backspace] menu  [t] theme", base.Foreground(rgb(p.Muted)))
}

func (f *Frontend) paintCell(ox, oy int, p types.Point, style tcell.Style) {
	x := ox + p.X*cellCols
	for i := 0; i < cellCols; i++ {
		f.screen.SetContent(x+i, oy+p.Y, ' ', nil, style)
	}
}

func (f *Frontend) drawBox(x, y, w, h int, style tcell.Style) {
	for i := x + 1; i < x+w-1; i++ {
		f.screen.SetContent(i, y, tcell.RuneHLine, nil, style)
		f.screen.SetContent(i, y+h-1, tcell.RuneHLine, nil, style)
	}
	for j := y + 1; j < y+h-1; j++ {
		f.screen.SetContent(x, j, tcell.RuneVLine, nil, style)
		f.screen.SetContent(x+w-1, j, tcell.RuneVLine, nil, style)
	}
	f.screen.SetContent(x, y, tcell.RuneULCorner, nil, style)
	f.screen.SetContent(x+w-1, y, tcell.RuneURCorner, nil, style)
	f.screen.SetContent(x, y+h-1, tcell.RuneLLCorner, nil, style)
	f.screen.SetContent(x+w-1, y+h-1, tcell.RuneLRCorner, nil, style)
}

func (f *Frontend) centered(y int, text string, style tcell.Style) {
	w, _ := f.screen.Size()
	runes := []rune(text)
	x := (w - len(runes)) / 2
	if x < 0 {
		x = 0
	}
	for i, r := range runes {
		f.screen.SetContent(x+i, y, r, nil, style)
	}
}
