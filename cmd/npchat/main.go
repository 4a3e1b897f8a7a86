// npchat is a terminal chat client for the Gemini API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"

	"snake-np/chat"
	"snake-np/config"
	"snake-np/logging"
	"snake-np/ui/chatview"
)

var (
	colorModel = color.New(color.FgHiWhite)
	colorAlert = color.New(color.FgRed)
	colorMuted = color.New(color.FgHiBlack)
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "Path to the ini config file")
	debug := flag.Bool("debug", false, "Write a debug log to logs/npchat.log")
	prompt := flag.String("prompt", "", "Send one prompt, stream the reply to stdout and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fail("config: %v", err)
	}

	logFile, err := logging.Setup(*debug, logging.DefaultDir, "npchat.log")
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging disabled: %v\n", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	streamer, err := chat.NewGeminiStreamer(ctx, cfg.ChatAPIKey(), cfg.Chat.Model, cfg.Chat.Temperature)
	if err != nil {
		fail("%v", err)
	}
	conv := chat.NewConversation()

	if *prompt != "" {
		if err := oneShot(ctx, conv, streamer, *prompt); err != nil {
			fail("%v", err)
		}
		return
	}

	if _, err := tea.NewProgram(chatview.New(conv, streamer), tea.WithAltScreen(), tea.WithMouseCellMotion()).Run(); err != nil {
		fail("%v", err)
	}
}

func oneShot(ctx context.Context, conv *chat.Conversation, s chat.Streamer, prompt string) error {
	err := conv.Send(ctx, prompt, s, func(chunk string) {
		colorModel.Print(chunk)
	})
	fmt.Println()
	if errors.Is(ctx.Err(), context.Canceled) {
		colorMuted.Println("(stopped)")
	}
	return err
}

func fail(format string, args ...any) {
	colorAlert.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
