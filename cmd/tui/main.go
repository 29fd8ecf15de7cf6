package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Block-Launch/internal/board"
	"github.com/Garsondee/Block-Launch/internal/config"
	"github.com/Garsondee/Block-Launch/internal/logger"
	"github.com/Garsondee/Block-Launch/internal/tui"
)

func main() {
	cfgPath := flag.String("config", "", "YAML board config (defaults when empty)")
	logPath := flag.String("log", "", "write logs to this file (the terminal is busy)")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		c, err := config.Load(*cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = c
	}

	log := logger.Discard()
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		mode, err := logger.ParseMode(cfg.Log.Mode)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
			os.Exit(1)
		}
		log = logger.New(mode, f)
	}

	b, err := board.New(cfg, board.WithLogger(log))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	sound, err := tui.NewSound(cfg.Display.Mute)
	if err != nil {
		// Non-fatal, the board runs without sound.
		log.Warn("audio initialization failed", "err", err)
	}
	defer sound.Close()

	tui.New(screen, b, sound, log).Run()
}
