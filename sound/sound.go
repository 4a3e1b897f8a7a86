// Package sound plays short sine cues for game events through the system
// speaker.
package sound

import (
	"fmt"
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"snake-np/game"
)

const sampleRate = beep.SampleRate(44100)

// Cue is one tone
type Cue struct {
	Freq     float64
	Duration time.Duration
}

var (
	EatCue      = Cue{Freq: 880, Duration: 50 * time.Millisecond}
	GameOverCue = Cue{Freq: 220, Duration: 300 * time.Millisecond}
)

// CueFor picks the cue for a tick that moved the game from before to after
func CueFor(before, after game.State) (Cue, bool) {
	switch {
	case after.Over && !before.Over:
		return GameOverCue, true
	case after.Score > before.Score:
		return EatCue, true
	}
	return Cue{}, false
}

// Player is a speaker handle. A nil *Player is silent.
type Player struct{}

// Init opens the speaker. Callers treat an error as "run without sound".
func Init() (*Player, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return &Player{}, nil
}

// Observe plays the cue for a tick, if any
func (p *Player) Observe(before, after game.State) {
	if p == nil {
		return
	}
	if cue, ok := CueFor(before, after); ok {
		p.Play(cue)
	}
}

func (p *Player) Play(c Cue) {
	if p == nil {
		return
	}
	sine, err := generators.SineTone(sampleRate, c.Freq)
	if err != nil {
		log.Printf("sound: %v", err)
		return
	}
	speaker.Play(beep.Take(sampleRate.N(c.Duration), sine))
}

func (p *Player) Close() {
	if p == nil {
		return
	}
	speaker.Close()
}
