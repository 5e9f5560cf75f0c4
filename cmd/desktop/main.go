package main

import (
	"errors"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/rocketarena/internal/config"
	"github.com/tomz197/rocketarena/internal/desktop"
	"github.com/tomz197/rocketarena/internal/loop"
)

func main() {
	logger := config.NewLogger("desktop")
	opts := loop.ServerOptionsFromEnv(logger)

	g := desktop.NewGame(opts.Arena, opts.Seed, logger)

	ebiten.SetWindowSize(int(opts.Arena.Width), int(opts.Arena.Height))
	ebiten.SetWindowTitle("Rocket Arena")
	ebiten.SetWindowResizable(true)
	ebiten.SetTPS(opts.TickRate)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("game error", "err", err)
		os.Exit(1)
	}
}
