package game

import (
	"fmt"
	"log"
	"time"

	"golang.org/x/exp/rand"

	"snake-np/game/entity"
	"snake-np/game/manager"
	"snake-np/game/types"
)

// BestScoreStore keeps the process-wide best score
type BestScoreStore interface {
	Best() int
	Record(score int) (bool, error)
}

// Game is the discrete-time snake simulation. It is driven by a single
// owner; nothing here is safe for concurrent use.
type Game struct {
	cfg          Config
	grid         types.Grid
	rng          *rand.Rand
	scores       BestScoreStore
	maxFoodTries int

	collisionMgr *manager.CollisionManager
	foodMgr      *manager.FoodManager

	state State
}

type Option func(*Game)

// WithRand sets the random source used for food placement
func WithRand(rng *rand.Rand) Option {
	return func(g *Game) { g.rng = rng }
}

// WithScoreStore sets where the best score lives. Defaults to memory.
func WithScoreStore(store BestScoreStore) Option {
	return func(g *Game) { g.scores = store }
}

// WithMaxFoodAttempts caps rejection sampling before the free-cell scan
func WithMaxFoodAttempts(n int) Option {
	return func(g *Game) { g.maxFoodTries = n }
}

func NewGame(cfg Config, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Game{
		cfg:          cfg,
		grid:         cfg.Grid(),
		maxFoodTries: -1,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	if g.scores == nil {
		sm, err := manager.NewScoreManager("")
		if err != nil {
			return nil, fmt.Errorf("score store: %w", err)
		}
		g.scores = sm
	}

	g.collisionMgr = manager.NewCollisionManager(g.grid)
	g.foodMgr = manager.NewFoodManager(g.grid, g.rng, g.maxFoodTries)
	g.state = State{Over: true}
	return g, nil
}

// Initialize discards the current game and starts a fresh one: a 3-cell
// snake with its head at the centre facing right, random food, score 0.
func (g *Game) Initialize() State {
	snake := entity.NewSnake(g.grid.Center(), types.InitialSnakeLength, types.Right)
	food, _ := g.foodMgr.GenerateFood(snake)

	g.state = State{
		Snake:            snake,
		Food:             food,
		CurrentDirection: types.Right,
		PendingDirection: types.Right,
		Score:            0,
		TickInterval:     g.cfg.InitialInterval,
	}
	return g.state.Clone()
}

// SetPendingDirection records the latest input intent. Reversals are not
// rejected here; Tick ignores them so only the last intent before a tick counts.
func (g *Game) SetPendingDirection(d types.Direction) {
	if g.state.Over || !d.Valid() {
		return
	}
	g.state.PendingDirection = d
}

// Tick advances the simulation by one cell and returns the new state
func (g *Game) Tick() State {
	g.state = g.advance(g.state)
	return g.state.Clone()
}

func (g *Game) advance(prev State) State {
	if prev.Over || prev.Snake.Len() == 0 {
		return prev
	}
	next := prev

	// Reversals are dropped, anything else becomes the heading
	if !prev.CurrentDirection.IsOpposite(prev.PendingDirection) {
		next.CurrentDirection = prev.PendingDirection
	}

	newHead := g.collisionMgr.Wrap(prev.Snake.Head().Add(next.CurrentDirection.ToPoint()))

	if g.collisionMgr.IsSelfCollision(newHead, prev.Snake) {
		next.Over = true
		next.EndReason = EndCollision
		return next
	}

	grown := prev.Snake.Grow(newHead)
	if !g.collisionMgr.IsFoodCollision(newHead, prev.Food) {
		next.Snake = grown.WithoutTail()
		return next
	}

	next.Snake = grown
	next.Score = prev.Score + 1
	if _, err := g.scores.Record(next.Score); err != nil {
		log.Printf("game: persist best score %d: %v", next.Score, err)
	}
	next.TickInterval = g.cfg.NextInterval(prev.TickInterval)

	food, ok := g.foodMgr.GenerateFood(grown)
	if !ok {
		next.Over = true
		next.EndReason = EndBoardFull
		return next
	}
	next.Food = food
	return next
}

// State returns a copy of the current state
func (g *Game) State() State {
	return g.state.Clone()
}

func (g *Game) BestScore() int {
	return g.scores.Best()
}

func (g *Game) Config() Config {
	return g.cfg
}

func (g *Game) Grid() types.Grid {
	return g.grid
}
