package game

import (
	"log"
	"time"

	"github.com/google/uuid"

	"snake-np/game/manager"
	"snake-np/game/types"
)

// Phase of the controller state machine
type Phase int

const (
	Stopped Phase = iota // start screen
	Running
	GameOver
)

func (p Phase) String() string {
	switch p {
	case Running:
		return "running"
	case GameOver:
		return "game over"
	default:
		return "stopped"
	}
}

// Controller owns a Game and its timer and moves between
// Stopped → Running → GameOver. Input and ticks must come from one goroutine.
type Controller struct {
	game      *Game
	scheduler Scheduler
	stats     *manager.StatsManager

	phase     Phase
	sessionID string
	startedAt time.Time
	now       func() time.Time
}

func NewController(g *Game, s Scheduler, stats *manager.StatsManager) *Controller {
	if stats == nil {
		stats = manager.NewStatsManager()
	}
	return &Controller{
		game:      g,
		scheduler: s,
		stats:     stats,
		phase:     Stopped,
		now:       time.Now,
	}
}

// Start begins a fresh game from the start screen or after a game over.
// It is a no-op while a game is running.
func (c *Controller) Start() {
	if c.phase == Running {
		return
	}
	c.sessionID = uuid.New().String()
	c.startedAt = c.now()
	st := c.game.Initialize()

	c.scheduler.Stop()
	c.scheduler.Start(st.TickInterval)
	c.phase = Running
	log.Printf("session %s: started, interval %v, food at %v", c.sessionID, st.TickInterval, st.Food)
}

// Stop returns to the start screen, discarding any running game
func (c *Controller) Stop() {
	c.scheduler.Stop()
	if c.phase != Stopped {
		log.Printf("session %s: stopped in phase %v", c.sessionID, c.phase)
	}
	c.phase = Stopped
}

// Advance runs one tick. Call it each time the scheduler fires.
func (c *Controller) Advance() State {
	if c.phase != Running {
		return c.game.State()
	}

	before := c.game.state.TickInterval
	st := c.game.Tick()

	switch {
	case st.Over:
		c.scheduler.Stop()
		c.phase = GameOver
		c.stats.AddGame(c.sessionID, st.Score, c.startedAt, c.now())
		log.Printf("session %s: over (%v), score %d, best %d", c.sessionID, st.EndReason, st.Score, c.game.BestScore())
	case st.TickInterval != before:
		c.scheduler.Stop()
		c.scheduler.Start(st.TickInterval)
		log.Printf("session %s: score %d, interval %v", c.sessionID, st.Score, st.TickInterval)
	}
	return st
}

// Direction forwards an input intent. Ignored unless a game is running.
func (c *Controller) Direction(d types.Direction) {
	if c.phase != Running {
		return
	}
	c.game.SetPendingDirection(d)
}

func (c *Controller) Phase() Phase {
	return c.phase
}

func (c *Controller) State() State {
	return c.game.State()
}

func (c *Controller) BestScore() int {
	return c.game.BestScore()
}

func (c *Controller) Stats() *manager.StatsManager {
	return c.stats
}

func (c *Controller) SessionID() string {
	return c.sessionID
}

func (c *Controller) Grid() types.Grid {
	return c.game.Grid()
}
