package layout

import (
	"testing"

	"snake-np/game/types"
)

func TestCellSize(t *testing.T) {
	tests := []struct {
		name  string
		w, h  int
		touch bool
		want  int
	}{
		{"desktop height bound", 1280, 800, false, 30},  // 600/20
		{"desktop width bound", 400, 2000, false, 19},   // 380/20
		{"touch uses less height", 1280, 800, true, 24}, // 480/20
		{"tiny screen clamps", 100, 100, false, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CellSize(tt.w, tt.h, 20, tt.touch, 10); got != tt.want {
				t.Errorf("CellSize(%d, %d, touch=%v) = %d, want %d", tt.w, tt.h, tt.touch, got, tt.want)
			}
		})
	}
	if got := CellSize(800, 600, 0, false, 7); got != 7 {
		t.Errorf("zero grid: got %d", got)
	}
}

func TestBoardAndCellRect(t *testing.T) {
	b := Board(1000, 50, 20, 30)
	if b != (Rect{X: 200, Y: 50, W: 600, H: 600}) {
		t.Fatalf("Board = %+v", b)
	}
	c := CellRect(b, 30, types.Point{X: 2, Y: 3})
	if c != (Rect{X: 260, Y: 140, W: 30, H: 30}) {
		t.Errorf("CellRect = %+v", c)
	}
}

func TestDPadHitTest(t *testing.T) {
	pad := NewDPad(150, 0, 240)
	for dir, r := range pad.Buttons {
		x, y := r.Center()
		got, ok := pad.HitTest(x, y)
		if !ok || got != dir {
			t.Errorf("centre of %v button hit %v, %v", dir, got, ok)
		}
	}

	cx, cy := pad.Area.Center()
	if _, ok := pad.HitTest(cx, cy); ok {
		t.Error("middle of the pad should not be a button")
	}
	if _, ok := pad.HitTest(pad.Area.X-1, cy); ok {
		t.Error("press outside the pad registered")
	}
}

func TestTheme(t *testing.T) {
	if Theme("dark") != Dark || Theme("light") != Light || Theme("other") != Light {
		t.Error("Theme lookup wrong")
	}
	if Toggle("dark") != "light" || Toggle("light") != "dark" {
		t.Error("Toggle wrong")
	}
}
