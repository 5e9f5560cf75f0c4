package main

import (
	"context"
	"errors"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/rocketarena/internal/config"
	"github.com/tomz197/rocketarena/internal/loop"
	lconfig "github.com/tomz197/rocketarena/internal/loop/config"
	"github.com/tomz197/rocketarena/internal/loop/server"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	listenerGrace      = 5 * time.Second
)

func main() {
	logger := config.NewLogger("ssh")
	if err := run(logger); err != nil {
		logger.Fatal("ssh server failed", "err", err)
	}
}

func run(logger *log.Logger) error {
	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	logger.Info("ssh config", "host", host, "port", port, "hostKey", hostKeyPath)

	// One arena shared by every session.
	opts := loop.ServerOptionsFromEnv(logger.WithPrefix("arena"))
	arena := server.NewServer(opts)
	ctx, cancelArena := context.WithCancel(context.Background())
	defer cancelArena()
	go arena.Run(ctx)
	logger.Info("arena started", "width", opts.Arena.Width, "height", opts.Arena.Height, "tps", opts.TickRate)

	sessions := &sessionHandler{arena: arena, log: logger.WithPrefix("session")}

	sshOpts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			sessions.middleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Game input is latency sensitive.
		ssh.WrapConn(func(_ ssh.Context, conn net.Conn) net.Conn {
			if tcp, ok := conn.(*net.TCPConn); ok {
				_ = tcp.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		sshOpts = append(sshOpts, wish.WithHostKeyPath(hostKeyPath))
	}

	srv, err := wish.NewServer(sshOpts...)
	if err != nil {
		return err
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			serveErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	select {
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig)
	case err := <-serveErr:
		return err
	}

	// Players get a countdown screen before the arena goes away.
	arena.Shutdown(lconfig.ShutdownTimeout)
	cancelArena()
	logger.Info("arena stopped")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), listenerGrace)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
