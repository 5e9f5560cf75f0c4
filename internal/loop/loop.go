// Package loop wires a game server and its terminal clients together for
// the local and SSH front ends.
package loop

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/tomz197/rocketarena/internal/config"
	"github.com/tomz197/rocketarena/internal/draw"
	"github.com/tomz197/rocketarena/internal/loop/client"
	lconfig "github.com/tomz197/rocketarena/internal/loop/config"
	"github.com/tomz197/rocketarena/internal/loop/server"
	"github.com/tomz197/rocketarena/internal/physics"
)

// ServerOptionsFromEnv reads the server options from the environment:
// ARENA_WIDTH, ARENA_HEIGHT, TICK_RATE, MAX_FRAME_TIME and SIM_SEED.
func ServerOptionsFromEnv(logger *log.Logger) server.Options {
	return server.Options{
		Arena: physics.Arena{
			Width:  config.GetEnvFloat("ARENA_WIDTH", lconfig.DefaultArenaWidth),
			Height: config.GetEnvFloat("ARENA_HEIGHT", lconfig.DefaultArenaHeight),
		},
		TickRate:     config.GetEnvInt("TICK_RATE", lconfig.ServerTickRate),
		MaxFrameTime: config.GetEnvDuration("MAX_FRAME_TIME", lconfig.MaxFrameTime),
		Seed:         uint64(config.GetEnvInt("SIM_SEED", 0)),
		Logger:       logger,
	}
}

// Run plays a single-terminal session: an in-process server and one client
// reading r and drawing to w. Blocks until the player quits.
func Run(r io.ByteReader, w io.Writer, opts server.Options, sizeFunc draw.TermSizeFunc) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gs := server.NewServer(opts)
	go gs.Run(ctx)

	c := client.NewClient(gs, r, w, client.ClientOptions{
		TermSizeFunc: sizeFunc,
		Username:     config.GetEnv("USER", "player"),
		Arena:        gs.Arena(),
		Logger:       opts.Logger,
	})
	return c.Run()
}
