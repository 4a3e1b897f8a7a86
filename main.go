package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"

	"snake-np/config"
	"snake-np/game"
	"snake-np/game/manager"
	"snake-np/logging"
	"snake-np/sound"
	"snake-np/ui"
	"snake-np/ui/terminal"
)

var (
	colorTitle = color.New(color.FgGreen, color.Bold)
	colorInfo  = color.New(color.FgCyan)
	colorScore = color.New(color.FgYellow)
	colorAlert = color.New(color.FgRed)
)

// options holds the command line. Only flags given explicitly override the
// config file.
type options struct {
	configPath  string
	frontend    string
	grid        int
	speed       int
	theme       string
	touch       bool
	sound       bool
	scores      string
	debug       bool
	best        bool
	writeConfig bool
}

func newFlagSet(o *options) *flag.FlagSet {
	fs := flag.NewFlagSet("snake-np", flag.ExitOnError)
	fs.StringVar(&o.configPath, "config", config.DefaultPath, "Path to the ini config file")
	fs.StringVar(&o.frontend, "frontend", "", "Front-end: window or terminal")
	fs.IntVar(&o.grid, "grid", 0, "Grid size in cells")
	fs.IntVar(&o.speed, "speed", 0, "Initial tick interval in milliseconds")
	fs.StringVar(&o.theme, "theme", "", "Theme: light, dark or auto")
	fs.BoolVar(&o.touch, "touch", false, "Show on-screen direction controls")
	fs.BoolVar(&o.sound, "sound", false, "Play sound cues")
	fs.StringVar(&o.scores, "scores", "", "Best score file")
	fs.BoolVar(&o.debug, "debug", false, "Write a debug log to logs/snake.log")
	fs.BoolVar(&o.best, "best", false, "Print the best score and exit")
	fs.BoolVar(&o.writeConfig, "write-config", false, "Write the effective config to -config and exit")
	return fs
}

const recentGames = 5

func main() {
	var opts options
	fs := newFlagSet(&opts)
	fs.Parse(os.Args[1:])

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fail("config: %v", err)
	}
	applyFlags(fs, &opts, cfg)
	if err := cfg.Validate(); err != nil {
		fail("config: %v", err)
	}

	if opts.writeConfig {
		if err := cfg.Save(opts.configPath); err != nil {
			fail("write config: %v", err)
		}
		colorInfo.Printf("Wrote %s\n", opts.configPath)
		return
	}

	logFile, err := logging.Setup(opts.debug, logging.DefaultDir, "snake.log")
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging disabled: %v\n", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	scoreStore, err := manager.NewScoreManager(cfg.Storage.BestScoreFile)
	if err != nil {
		// corrupt file: keep playing from zero, the next record overwrites it
		log.Printf("best score: %v", err)
	}
	if opts.best {
		colorScore.Printf("High Score: %d\n", scoreStore.Best())
		return
	}

	g, err := game.NewGame(cfg.GameConfig(), game.WithScoreStore(scoreStore))
	if err != nil {
		fail("game: %v", err)
	}

	var player *sound.Player
	if cfg.Display.Sound {
		if player, err = sound.Init(); err != nil {
			log.Printf("sound disabled: %v", err)
		}
		defer player.Close()
	}

	var ctrl *game.Controller
	switch cfg.Display.Frontend {
	case config.FrontendTerminal:
		ctrl, err = runTerminal(g, cfg, player)
	default:
		ctrl, err = runWindow(g, cfg, player)
	}
	if err != nil {
		fail("%v", err)
	}

	printSummary(ctrl, scoreStore)
}

// applyFlags copies the flags that were set on the command line onto cfg
func applyFlags(fs *flag.FlagSet, o *options, cfg *config.Config) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "frontend":
			cfg.Display.Frontend = o.frontend
		case "grid":
			cfg.Game.GridSize = o.grid
		case "speed":
			cfg.Game.InitialSpeedMs = o.speed
		case "theme":
			cfg.Display.Theme = o.theme
		case "touch":
			cfg.Display.TouchControls = o.touch
		case "sound":
			cfg.Display.Sound = o.sound
		case "scores":
			cfg.Storage.BestScoreFile = o.scores
		}
	})
}

func runWindow(g *game.Game, cfg *config.Config, player *sound.Player) (*game.Controller, error) {
	sched := game.NewFrameScheduler()
	ctrl := game.NewController(g, sched, nil)
	w := ui.NewWindow(ctrl, sched, ui.Options{
		Theme:         config.ResolveTheme(cfg.Display.Theme),
		TouchControls: cfg.Display.TouchControls,
		BaseCellSize:  cfg.Display.BaseCellSize,
		MinCellSize:   cfg.Display.MinCellSize,
		Sound:         player,
	})
	return ctrl, w.Run()
}

func runTerminal(g *game.Game, cfg *config.Config, player *sound.Player) (*game.Controller, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched := game.NewTickerScheduler()
	ctrl := game.NewController(g, sched, nil)
	err = terminal.New(screen, ctrl, sched, config.ResolveTheme(cfg.Display.Theme), player).Run(ctx)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	return ctrl, err
}

func printSummary(ctrl *game.Controller, scores *manager.ScoreManager) {
	stats := ctrl.Stats()
	colorTitle.Println("Snake NP")
	if stats.GamesPlayed() == 0 {
		colorInfo.Println("No games finished this session.")
	} else {
		colorInfo.Printf("Games played:      %d\n", stats.GamesPlayed())
		colorInfo.Printf("Average score:     %.1f\n", stats.AverageScore())
		colorInfo.Printf("Median score:      %.1f\n", stats.MedianScore())
		colorInfo.Printf("Best this session: %d\n", stats.MaxScore())
		colorInfo.Printf("Average duration:  %v\n", stats.AverageDuration().Round(time.Second))
		colorInfo.Println("Recent games:")
		for _, r := range stats.Recent(recentGames) {
			colorInfo.Printf("  %s  score %3d  %v\n", r.StartTime.Format("15:04:05"), r.Score, r.Duration().Round(time.Second))
		}
	}
	colorScore.Printf("High Score: %d\n", scores.Best())
	if path := scores.Path(); path != "" {
		colorInfo.Printf("Saved in %s\n", path)
	}
}

func fail(format string, args ...any) {
	colorAlert.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
