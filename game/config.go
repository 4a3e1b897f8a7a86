package game

import (
	"errors"
	"fmt"
	"time"

	"snake-np/game/types"
)

var ErrInvalidConfig = errors.New("invalid game config")

// Config holds the simulation constants
type Config struct {
	GridSize        int
	InitialInterval time.Duration
	MinInterval     time.Duration
	SpeedFactor     float64
}

func DefaultConfig() Config {
	return Config{
		GridSize:        types.GridSize,
		InitialInterval: types.InitialTickInterval,
		MinInterval:     types.MinTickInterval,
		SpeedFactor:     types.SpeedFactor,
	}
}

// Validate checks that the initial snake fits and that the speed ramp is sane
func (c Config) Validate() error {
	switch {
	case c.GridSize < 4:
		return fmt.Errorf("%w: grid size %d, need at least 4", ErrInvalidConfig, c.GridSize)
	case c.MinInterval < time.Millisecond:
		return fmt.Errorf("%w: minimum interval %v", ErrInvalidConfig, c.MinInterval)
	case c.InitialInterval < c.MinInterval:
		return fmt.Errorf("%w: initial interval %v below minimum %v", ErrInvalidConfig, c.InitialInterval, c.MinInterval)
	case c.SpeedFactor <= 0 || c.SpeedFactor > 1:
		return fmt.Errorf("%w: speed factor %v outside (0,1]", ErrInvalidConfig, c.SpeedFactor)
	}
	return nil
}

func (c Config) Grid() types.Grid {
	return types.Grid{Width: c.GridSize, Height: c.GridSize}
}

// NextInterval applies one step of the speed ramp:
// max(min, floor(old × factor)) in whole milliseconds.
func (c Config) NextInterval(old time.Duration) time.Duration {
	ms := int64(float64(old.Milliseconds()) * c.SpeedFactor)
	next := time.Duration(ms) * time.Millisecond
	if next < c.MinInterval {
		return c.MinInterval
	}
	return next
}
