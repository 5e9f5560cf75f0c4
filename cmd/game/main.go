package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/tomz197/rocketarena/internal/config"
	"github.com/tomz197/rocketarena/internal/draw"
	"github.com/tomz197/rocketarena/internal/loop"
)

func main() {
	logger := config.NewLogger("game")
	// Log output would tear the raw-mode screen.
	if os.Getenv("LOG_FILE") == "" {
		logger.SetOutput(io.Discard)
	} else if f, err := os.OpenFile(os.Getenv("LOG_FILE"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
		defer f.Close()
		logger.SetOutput(f)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	opts := loop.ServerOptionsFromEnv(logger)
	if err := loop.Run(reader, os.Stdout, opts, draw.DefaultTermSizeFunc); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
