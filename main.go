package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	configPath := flag.String("config", "", "path to config file (default ~/.miru.json)")
	flag.Parse()

	initLogging(*debug)

	if err := InitGraphics(); err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize graphics")
	}

	var result ConfigLoadResult
	if *configPath != "" {
		result = loadConfigFromPath(*configPath)
	} else {
		result = loadConfig()
	}
	for _, warning := range result.Warnings {
		logger.Warn().Msg(warning)
	}

	initialPath := ""
	if flag.NArg() > 0 {
		initialPath = flag.Arg(0)
	}

	game, err := NewGame(result, initialPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "miru: %v\n", err)
		os.Exit(1)
	}

	cfg := result.Config
	ebiten.SetWindowTitle("miru")
	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	if cfg.WindowX >= 0 && cfg.WindowY >= 0 {
		ebiten.SetWindowPosition(cfg.WindowX, cfg.WindowY)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.Fullscreen {
		ebiten.SetFullscreen(true)
	}

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal().Err(err).Msg("game loop failed")
	}
}
