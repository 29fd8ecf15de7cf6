package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Block-Launch/internal/config"
	"github.com/Garsondee/Block-Launch/internal/game"
	"github.com/Garsondee/Block-Launch/internal/logger"
)

func main() {
	cfgPath := flag.String("config", "", "YAML board config (defaults when empty)")
	seed := flag.Int64("seed", 0, "RNG seed override (0 keeps the config value)")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		c, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = c
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	mode, err := logger.ParseMode(cfg.Log.Mode)
	if err != nil {
		log.Fatal(err)
	}

	g, err := game.New(cfg, logger.New(mode, nil))
	if err != nil {
		log.Fatal(err)
	}
	ebiten.SetWindowTitle("Block Launch")
	ebiten.SetWindowSize(g.WindowSize())
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
