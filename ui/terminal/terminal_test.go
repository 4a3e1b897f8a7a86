package terminal

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/exp/rand"

	"snake-np/game"
	"snake-np/game/types"
	"snake-np/ui/layout"
)

func newTestFrontend(t *testing.T, w, h int) (*Frontend, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(w, h)

	g, err := game.NewGame(game.DefaultConfig(), game.WithRand(rand.New(rand.NewSource(3))))
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	sched := game.NewTickerScheduler()
	ctrl := game.NewController(g, sched, nil)
	t.Cleanup(ctrl.Stop)
	return New(s, ctrl, sched, "light", nil), s
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func char(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestHandleEventPhases(t *testing.T) {
	f, _ := newTestFrontend(t, 80, 30)

	if f.HandleEvent(key(tcell.KeyUp)) {
		t.Fatal("arrow key quit")
	}
	if f.ctrl.Phase() != game.Stopped {
		t.Fatalf("phase = %v", f.ctrl.Phase())
	}

	f.HandleEvent(key(tcell.KeyEnter))
	if f.ctrl.Phase() != game.Running {
		t.Fatalf("Enter did not start: %v", f.ctrl.Phase())
	}

	f.HandleEvent(char('w'))
	if got := f.ctrl.State().PendingDirection; got != types.Up {
		t.Errorf("pending after w = %v", got)
	}
	f.HandleEvent(key(tcell.KeyLeft))
	if got := f.ctrl.State().PendingDirection; got != types.Left {
		t.Errorf("pending after Left = %v", got)
	}

	f.HandleEvent(key(tcell.KeyBackspace2))
	if f.ctrl.Phase() != game.Stopped {
		t.Errorf("Backspace did not stop: %v", f.ctrl.Phase())
	}

	f.HandleEvent(char(' '))
	if f.ctrl.Phase() != game.Running {
		t.Errorf("Space did not start: %v", f.ctrl.Phase())
	}
}

func TestHandleEventQuitAndTheme(t *testing.T) {
	f, _ := newTestFrontend(t, 80, 30)

	f.HandleEvent(char('t'))
	if f.Theme() != "dark" {
		t.Errorf("theme = %q", f.Theme())
	}

	for _, ev := range []*tcell.EventKey{char('q'), key(tcell.KeyEscape), key(tcell.KeyCtrlC)} {
		if !f.HandleEvent(ev) {
			t.Errorf("%v did not quit", ev.Name())
		}
	}
}

func TestDrawBoard(t *testing.T) {
	f, s := newTestFrontend(t, 80, 30)
	f.HandleEvent(key(tcell.KeyEnter))
	f.Draw()

	st := f.ctrl.State()
	ox, oy := f.BoardOrigin()
	p := layout.Theme("light")

	bgAt := func(pt types.Point) tcell.Color {
		_, _, style, _ := s.GetContent(ox+pt.X*cellCols, oy+pt.Y)
		_, bg, _ := style.Decompose()
		return bg
	}

	if got := bgAt(st.Snake.Head()); got != rgb(p.Head) {
		t.Errorf("head cell bg = %v, want %v", got, rgb(p.Head))
	}
	if got := bgAt(st.Snake.Body[1]); got != rgb(p.Body) {
		t.Errorf("body cell bg = %v, want %v", got, rgb(p.Body))
	}
	if got := bgAt(st.Food); got != rgb(p.Food) {
		t.Errorf("food cell bg = %v, want %v", got, rgb(p.Food))
	}

	r, _, _, _ := s.GetContent(ox-1, oy-1)
	if r != tcell.RuneULCorner {
		t.Errorf("corner = %q", r)
	}
}

func TestDrawTooSmall(t *testing.T) {
	f, s := newTestFrontend(t, 20, 10)
	f.Draw()

	cells, w, _ := s.GetContents()
	var line []rune
	for x := 0; x < w; x++ {
		if rs := cells[5*w+x].Runes; len(rs) > 0 {
			line = append(line, rs[0])
		}
	}
	if got := string(line); !strings.Contains(got, "Terminal too small") {
		t.Errorf("row = %q", got)
	}
}

func rowText(s tcell.SimulationScreen, y int) string {
	cells, w, _ := s.GetContents()
	var line []rune
	for x := 0; x < w; x++ {
		if rs := cells[y*w+x].Runes; len(rs) > 0 {
			line = append(line, rs[0])
		}
	}
	return string(line)
}

func TestMinSizeFitsBothFooterLines(t *testing.T) {
	f, s := newTestFrontend(t, 80, 30)
	minW, minH := f.MinSize()
	grid := f.ctrl.Grid()
	_, oy := f.BoardOrigin()
	lastFooter := oy + grid.Height + 2
	if lastFooter != minH-1 {
		t.Fatalf("last footer row %d, min height %d", lastFooter, minH)
	}

	s.SetSize(minW, minH)
	f.HandleEvent(key(tcell.KeyEnter))
	f.Draw()
	if strings.Contains(rowText(s, minH/2), "Terminal too small") {
		t.Fatal("minimum size reported as too small")
	}
	if !strings.Contains(rowText(s, oy+grid.Height+1), "Pass through walls") {
		t.Errorf("footer row = %q", rowText(s, oy+grid.Height+1))
	}

	s.SetSize(minW, minH-1)
	f.Draw()
	if !strings.Contains(rowText(s, (minH-1)/2), "Terminal too small") {
		t.Error("one row short was not reported")
	}
}
