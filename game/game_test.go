package game

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"golang.org/x/exp/rand"

	"snake-np/game/entity"
	"snake-np/game/manager"
	"snake-np/game/types"
)

func newTestGame(t *testing.T, seed uint64, opts ...Option) *Game {
	t.Helper()
	opts = append([]Option{WithRand(rand.New(rand.NewSource(seed)))}, opts...)
	g, err := NewGame(DefaultConfig(), opts...)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g
}

func pts(xy ...int) []types.Point {
	out := make([]types.Point, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, types.Point{X: xy[i], Y: xy[i+1]})
	}
	return out
}

// place swaps in a hand-built state after Initialize
func place(g *Game, body []types.Point, dir types.Direction, food types.Point) {
	g.Initialize()
	g.state.Snake = entity.Snake{Body: body}
	g.state.CurrentDirection = dir
	g.state.PendingDirection = dir
	g.state.Food = food
}

func TestInitialize(t *testing.T) {
	g := newTestGame(t, 1)
	st := g.Initialize()

	want := pts(10, 10, 9, 10, 8, 10)
	if !reflect.DeepEqual(st.Snake.Body, want) {
		t.Errorf("snake = %v, want %v", st.Snake.Body, want)
	}
	if st.CurrentDirection != types.Right || st.PendingDirection != types.Right {
		t.Errorf("direction = %v/%v, want right", st.CurrentDirection, st.PendingDirection)
	}
	if st.Score != 0 || st.Over || st.TickInterval != 150*time.Millisecond {
		t.Errorf("unexpected state %+v", st)
	}
	if st.Snake.Contains(st.Food) || !g.Grid().Contains(st.Food) {
		t.Errorf("food %v invalid", st.Food)
	}
}

func TestTickEatsFood(t *testing.T) {
	g := newTestGame(t, 2)
	place(g, pts(10, 10, 9, 10, 8, 10), types.Right, types.Point{X: 11, Y: 10})

	st := g.Tick()

	want := pts(11, 10, 10, 10, 9, 10, 8, 10)
	if !reflect.DeepEqual(st.Snake.Body, want) {
		t.Errorf("snake = %v, want %v", st.Snake.Body, want)
	}
	if st.Score != 1 {
		t.Errorf("score = %d, want 1", st.Score)
	}
	if st.Food == (types.Point{X: 11, Y: 10}) || st.Snake.Contains(st.Food) {
		t.Errorf("food not replaced correctly: %v", st.Food)
	}
	if st.TickInterval != 145*time.Millisecond {
		t.Errorf("interval = %v, want 145ms", st.TickInterval)
	}
	if g.BestScore() != 1 {
		t.Errorf("best = %d, want 1", g.BestScore())
	}
}

func TestTickMovesWithoutFood(t *testing.T) {
	g := newTestGame(t, 3)
	place(g, pts(10, 10, 9, 10, 8, 10), types.Right, types.Point{X: 0, Y: 0})

	st := g.Tick()
	want := pts(11, 10, 10, 10, 9, 10)
	if !reflect.DeepEqual(st.Snake.Body, want) {
		t.Errorf("snake = %v, want %v", st.Snake.Body, want)
	}
	if st.Score != 0 || st.TickInterval != 150*time.Millisecond {
		t.Errorf("score/interval changed: %+v", st)
	}
}

func TestTickWrapsAround(t *testing.T) {
	tests := []struct {
		name string
		body []types.Point
		dir  types.Direction
		head types.Point
	}{
		{"left edge", pts(0, 10, 1, 10, 2, 10), types.Left, types.Point{X: 19, Y: 10}},
		{"right edge", pts(19, 10, 18, 10, 17, 10), types.Right, types.Point{X: 0, Y: 10}},
		{"top edge", pts(4, 0, 4, 1, 4, 2), types.Up, types.Point{X: 4, Y: 19}},
		{"bottom edge", pts(4, 19, 4, 18, 4, 17), types.Down, types.Point{X: 4, Y: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, 4)
			place(g, tt.body, tt.dir, types.Point{X: 10, Y: 10})
			st := g.Tick()
			if st.Over {
				t.Fatal("wrap must not end the game")
			}
			if st.Snake.Head() != tt.head {
				t.Errorf("head = %v, want %v", st.Snake.Head(), tt.head)
			}
		})
	}
}

func TestTickIgnoresReversal(t *testing.T) {
	g := newTestGame(t, 5)
	place(g, pts(10, 10, 9, 10, 8, 10), types.Right, types.Point{X: 0, Y: 0})

	g.SetPendingDirection(types.Left)
	st := g.Tick()
	if st.CurrentDirection != types.Right {
		t.Errorf("direction = %v, reversal should be ignored", st.CurrentDirection)
	}
	if st.Snake.Head() != (types.Point{X: 11, Y: 10}) {
		t.Errorf("head = %v, want (11,10)", st.Snake.Head())
	}
}

func TestLastIntentBeforeTickWins(t *testing.T) {
	g := newTestGame(t, 6)
	place(g, pts(10, 10, 9, 10, 8, 10), types.Right, types.Point{X: 0, Y: 0})

	g.SetPendingDirection(types.Up)
	g.SetPendingDirection(types.Down)
	st := g.Tick()
	if st.CurrentDirection != types.Down || st.Snake.Head() != (types.Point{X: 10, Y: 11}) {
		t.Errorf("dir %v head %v, want down (10,11)", st.CurrentDirection, st.Snake.Head())
	}
}

func TestCollisionFreezesState(t *testing.T) {
	g := newTestGame(t, 7)
	// Heading down puts the new head on the second segment
	place(g, pts(5, 5, 5, 6, 4, 6), types.Down, types.Point{X: 15, Y: 15})
	g.state.Score = 3
	before := g.State()

	st := g.Tick()
	if !st.Over || st.EndReason != EndCollision {
		t.Fatalf("Over = %v reason = %v, want collision", st.Over, st.EndReason)
	}
	if !reflect.DeepEqual(st.Snake.Body, before.Snake.Body) || st.Food != before.Food || st.Score != before.Score {
		t.Errorf("state changed on collision: %+v vs %+v", st, before)
	}

	again := g.Tick()
	if !reflect.DeepEqual(again, st) {
		t.Error("tick after game over must not change anything")
	}
}

func TestChasingTailIsFatal(t *testing.T) {
	g := newTestGame(t, 8)
	// 2x2 loop: the head steps onto the cell the tail is about to leave
	place(g, pts(5, 5, 6, 5, 6, 6, 5, 6), types.Down, types.Point{X: 15, Y: 15})

	st := g.Tick()
	if !st.Over {
		t.Error("moving into the vacating tail cell should end the game")
	}
}

func TestSetPendingDirectionAfterGameOver(t *testing.T) {
	g := newTestGame(t, 9)
	place(g, pts(5, 5, 5, 6, 4, 6), types.Down, types.Point{X: 15, Y: 15})
	g.Tick()

	g.SetPendingDirection(types.Left)
	if g.State().PendingDirection != types.Down {
		t.Error("pending direction changed after game over")
	}
}

func TestTickDoesNotMutatePreviousState(t *testing.T) {
	g := newTestGame(t, 10)
	place(g, pts(10, 10, 9, 10, 8, 10), types.Right, types.Point{X: 11, Y: 10})
	before := g.State()
	snapshot := before.Clone()

	g.Tick()
	if !reflect.DeepEqual(before, snapshot) {
		t.Error("Tick mutated a previously returned state")
	}
}

func TestBoardFullEndsGame(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GridSize = 4
	g, err := NewGame(cfg, WithRand(rand.New(rand.NewSource(1))), WithMaxFoodAttempts(0))
	if err != nil {
		t.Fatal(err)
	}
	g.Initialize()
	// Snake fills 15 of 16 cells; the head eats the last free one
	body := pts(
		0, 0, 0, 1, 0, 2, 0, 3,
		1, 3, 1, 2, 1, 1, 1, 0,
		2, 0, 2, 1, 2, 2, 2, 3,
		3, 3, 3, 2, 3, 1,
	)
	g.state.Snake = entity.Snake{Body: body}
	g.state.CurrentDirection = types.Left
	g.state.PendingDirection = types.Left
	g.state.Food = types.Point{X: 3, Y: 0}

	st := g.Tick()
	if !st.Over || st.EndReason != EndBoardFull {
		t.Fatalf("Over = %v reason = %v, want board full", st.Over, st.EndReason)
	}
	if st.Score != 1 || st.Snake.Len() != 16 {
		t.Errorf("score %d len %d", st.Score, st.Snake.Len())
	}
}

func TestInvariantsOverRandomPlay(t *testing.T) {
	store, _ := manager.NewScoreManager("")
	g := newTestGame(t, 42, WithScoreStore(store))
	input := rand.New(rand.NewSource(99))
	dirs := []types.Direction{types.Up, types.Right, types.Down, types.Left}

	maxSeen := 0
	for game := 0; game < 20; game++ {
		prev := g.Initialize()
		for step := 0; step < 2000 && !prev.Over; step++ {
			if input.Intn(3) == 0 {
				g.SetPendingDirection(dirs[input.Intn(4)])
			}
			pending := g.State().PendingDirection
			st := g.Tick()

			if pending.IsOpposite(prev.CurrentDirection) && st.CurrentDirection != prev.CurrentDirection {
				t.Fatalf("reversal changed direction %v -> %v", prev.CurrentDirection, st.CurrentDirection)
			}
			for _, p := range st.Snake.Body {
				if !g.Grid().Contains(p) {
					t.Fatalf("segment %v off the board", p)
				}
			}
			if st.TickInterval > prev.TickInterval || st.TickInterval < 50*time.Millisecond {
				t.Fatalf("interval %v after %v", st.TickInterval, prev.TickInterval)
			}

			if st.Over {
				if st.Score != prev.Score || st.Snake.Len() != prev.Snake.Len() {
					t.Fatalf("collision tick changed score or length")
				}
				break
			}
			if st.Snake.Contains(st.Food) {
				t.Fatalf("food %v inside snake", st.Food)
			}
			switch st.Score - prev.Score {
			case 0:
				if st.Snake.Len() != prev.Snake.Len() {
					t.Fatalf("length %d -> %d without eating", prev.Snake.Len(), st.Snake.Len())
				}
			case 1:
				if st.Snake.Len() != prev.Snake.Len()+1 {
					t.Fatalf("length %d -> %d after eating", prev.Snake.Len(), st.Snake.Len())
				}
			default:
				t.Fatalf("score jumped %d -> %d", prev.Score, st.Score)
			}
			if st.Score > maxSeen {
				maxSeen = st.Score
			}
			if g.BestScore() != maxSeen {
				t.Fatalf("best = %d, max seen = %d", g.BestScore(), maxSeen)
			}
			prev = st
		}
	}
}

func TestNextIntervalRamp(t *testing.T) {
	cfg := DefaultConfig()
	interval := cfg.InitialInterval
	for i := 0; i < 200; i++ {
		next := cfg.NextInterval(interval)
		if next > interval {
			t.Fatalf("interval grew %v -> %v", interval, next)
		}
		if next < cfg.MinInterval {
			t.Fatalf("interval %v below minimum", next)
		}
		interval = next
	}
	if interval != cfg.MinInterval {
		t.Errorf("interval settled at %v, want %v", interval, cfg.MinInterval)
	}
	if got := cfg.NextInterval(150 * time.Millisecond); got != 145*time.Millisecond {
		t.Errorf("NextInterval(150ms) = %v, want 145ms", got)
	}
}

func TestConfigValidate(t *testing.T) {
	base := DefaultConfig()
	if err := base.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	bad := []func(*Config){
		func(c *Config) { c.GridSize = 3 },
		func(c *Config) { c.MinInterval = 0 },
		func(c *Config) { c.InitialInterval = c.MinInterval - time.Millisecond },
		func(c *Config) { c.SpeedFactor = 0 },
		func(c *Config) { c.SpeedFactor = 1.5 },
	}
	for i, mutate := range bad {
		c := base
		mutate(&c)
		if err := c.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("case %d: Validate() = %v, want ErrInvalidConfig", i, err)
		}
		if _, err := NewGame(c); err == nil {
			t.Errorf("case %d: NewGame accepted invalid config", i)
		}
	}
}
