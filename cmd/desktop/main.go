package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/qwerfighter/internal/config"
	"github.com/tomz197/qwerfighter/internal/desktop"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger(os.Stderr, settings.LogLevel)

	ebiten.SetWindowTitle("qwerfighter")
	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetTPS(config.TickRate)

	g := desktop.New(desktop.Options{Seed: settings.Seed, Logger: logger})
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal("game error", "err", err)
	}
}
