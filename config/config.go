// Package config loads snake.ini and maps it onto the game and UI settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	dark "github.com/thiagokokada/dark-mode-go"
	"gopkg.in/ini.v1"

	"snake-np/game"
	"snake-np/game/types"
)

const DefaultPath = "snake.ini"

const (
	FrontendWindow   = "window"
	FrontendTerminal = "terminal"

	ThemeLight = "light"
	ThemeDark  = "dark"
	ThemeAuto  = "auto" // follow the desktop setting
)

var ErrInvalid = errors.New("invalid config")

var isDarkMode = dark.IsDarkMode

type Config struct {
	Game struct {
		GridSize       int     `ini:"GridSize"`
		InitialSpeedMs int     `ini:"InitialSpeedMs"`
		MinSpeedMs     int     `ini:"MinSpeedMs"`
		SpeedFactor    float64 `ini:"SpeedFactor"`
	} `ini:"Game"`

	Display struct {
		Frontend      string `ini:"Frontend"`
		Theme         string `ini:"Theme"`
		BaseCellSize  int    `ini:"BaseCellSize"`
		MinCellSize   int    `ini:"MinCellSize"`
		TouchControls bool   `ini:"TouchControls"`
		Sound         bool   `ini:"Sound"`
	} `ini:"Display"`

	Storage struct {
		BestScoreFile string `ini:"BestScoreFile"`
	} `ini:"Storage"`

	Chat struct {
		Model       string  `ini:"Model"`
		Temperature float64 `ini:"Temperature"`
		APIKey      string  `ini:"APIKey"`
	} `ini:"Chat"`
}

// Default returns the built-in settings
func Default() *Config {
	cfg := &Config{}
	cfg.Game.GridSize = types.GridSize
	cfg.Game.InitialSpeedMs = int(types.InitialTickInterval / time.Millisecond)
	cfg.Game.MinSpeedMs = int(types.MinTickInterval / time.Millisecond)
	cfg.Game.SpeedFactor = types.SpeedFactor

	cfg.Display.Frontend = FrontendWindow
	cfg.Display.Theme = ThemeAuto
	cfg.Display.BaseCellSize = 20
	cfg.Display.MinCellSize = 10

	cfg.Storage.BestScoreFile = "snake_highscore.json"

	cfg.Chat.Model = "gemini-2.5-flash"
	cfg.Chat.Temperature = 0.7
	return cfg
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}

	iniFile, err := ini.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("load %s: %w", path, err)
	}
	if err := iniFile.MapTo(cfg); err != nil {
		return cfg, fmt.Errorf("map %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the current values to path
func (c *Config) Save(path string) error {
	iniFile := ini.Empty()
	if err := ini.ReflectFrom(iniFile, c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return iniFile.SaveTo(path)
}

// Validate checks display settings and the derived game config
func (c *Config) Validate() error {
	if err := c.GameConfig().Validate(); err != nil {
		return err
	}
	switch c.Display.Frontend {
	case FrontendWindow, FrontendTerminal:
	default:
		return fmt.Errorf("%w: frontend %q", ErrInvalid, c.Display.Frontend)
	}
	switch c.Display.Theme {
	case ThemeLight, ThemeDark, ThemeAuto:
	default:
		return fmt.Errorf("%w: theme %q", ErrInvalid, c.Display.Theme)
	}
	if c.Display.MinCellSize < 1 || c.Display.BaseCellSize < c.Display.MinCellSize {
		return fmt.Errorf("%w: cell sizes %d/%d", ErrInvalid, c.Display.BaseCellSize, c.Display.MinCellSize)
	}
	return nil
}

// GameConfig converts the [Game] section for the engine
func (c *Config) GameConfig() game.Config {
	return game.Config{
		GridSize:        c.Game.GridSize,
		InitialInterval: time.Duration(c.Game.InitialSpeedMs) * time.Millisecond,
		MinInterval:     time.Duration(c.Game.MinSpeedMs) * time.Millisecond,
		SpeedFactor:     c.Game.SpeedFactor,
	}
}

// ChatAPIKey picks the key from the file, then GEMINI_API_KEY, then API_KEY
func (c *Config) ChatAPIKey() string {
	if c.Chat.APIKey != "" {
		return c.Chat.APIKey
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return os.Getenv("API_KEY")
}

// ResolveTheme turns "auto" into light or dark from the desktop setting.
// Detection failure falls back to light.
func ResolveTheme(name string) string {
	if name != ThemeAuto {
		return name
	}
	darkMode, err := isDarkMode()
	if err != nil {
		log.Printf("config: dark mode detection: %v", err)
		return ThemeLight
	}
	if darkMode {
		return ThemeDark
	}
	return ThemeLight
}
