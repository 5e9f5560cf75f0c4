package main

import (
	"bufio"
	"fmt"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"

	"github.com/tomz197/rocketarena/internal/draw"
	"github.com/tomz197/rocketarena/internal/loop/client"
	"github.com/tomz197/rocketarena/internal/loop/server"
)

// sessionHandler runs one terminal client per SSH session against the
// shared arena.
type sessionHandler struct {
	arena *server.Server
	log   *log.Logger
}

func (h *sessionHandler) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		h.log.Info("session started", "user", sess.User(), "term", pty.Term,
			"cols", pty.Window.Width, "rows", pty.Window.Height, "remote", sess.RemoteAddr())

		size := newWindowSize(pty.Window)
		go size.follow(winCh)

		c := client.NewClient(h.arena, bufio.NewReader(sess), sess, client.ClientOptions{
			TermSizeFunc: size.get,
			Username:     sess.User(),
			Arena:        h.arena.Arena(),
			Logger:       h.log.With("user", sess.User()),
		})
		if err := c.Run(); err != nil {
			h.log.Error("session failed", "user", sess.User(), "err", err)
		}

		h.log.Info("session ended", "user", sess.User())
		next(sess)
	}
}

// windowSize tracks a session's terminal size from window-change events.
type windowSize struct {
	packed atomic.Uint64 // cols<<32 | rows
}

var _ draw.TermSizeFunc = (*windowSize)(nil).get

func newWindowSize(w ssh.Window) *windowSize {
	s := &windowSize{}
	s.set(w)
	return s
}

func (s *windowSize) set(w ssh.Window) {
	s.packed.Store(uint64(uint32(w.Width))<<32 | uint64(uint32(w.Height)))
}

// follow applies window changes until the channel closes with the session.
func (s *windowSize) follow(ch <-chan ssh.Window) {
	for w := range ch {
		s.set(w)
	}
}

func (s *windowSize) get() (int, int, error) {
	v := s.packed.Load()
	return int(v >> 32), int(uint32(v)), nil
}
