package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/voice-blob/internal/config"
	"github.com/iburimskiy/voice-blob/internal/game"
)

func main() {
	presetPath := flag.String("preset", "", "TOML `file` with blob scale ranges, max level and tint")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn or error")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [audio file]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid -log-level %q: %v\n", *logLevel, err)
		os.Exit(2)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(*presetPath, flag.Arg(0)); err != nil {
		slog.Error("voice blob", "err", err)
		os.Exit(1)
	}
}

func run(presetPath, audioPath string) error {
	preset := config.Default()
	if presetPath != "" {
		var err error
		if preset, err = config.Load(presetPath); err != nil {
			return err
		}
	}

	g, err := game.New(preset)
	if err != nil {
		return err
	}
	defer g.Close()

	if audioPath != "" {
		if err := g.LoadAudio(audioPath); err != nil {
			return err
		}
	}

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("Voice Blob - Start/Pause, pick a color, O: open audio, Space: play/pause, Esc/Q: quit")
	ebiten.SetTPS(config.TPS)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
