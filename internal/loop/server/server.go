// Package server hosts one simulation world shared by many clients. A
// single goroutine owns the world; clients talk to it through channels and
// read immutable snapshots published atomically.
package server

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/rocketarena/internal/loop/config"
	"github.com/tomz197/rocketarena/internal/physics"
	"github.com/tomz197/rocketarena/internal/sim"
)

// GameServer is the interface clients use to communicate with the game server.
// Decouples the Client from the concrete Server implementation.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	SendControl(clientID int, control sim.Control)
	GetSnapshot() *WorldSnapshot
	SpawnShip(clientID int) int
}

// Options configures a Server. Zero fields take the config defaults.
type Options struct {
	Arena        physics.Arena
	TickRate     int
	MaxFrameTime time.Duration
	Seed         uint64 // 0 seeds from the clock
	Logger       *log.Logger
}

func (o *Options) withDefaults() {
	if o.Arena.Width <= 0 || o.Arena.Height <= 0 {
		o.Arena = physics.Arena{Width: config.DefaultArenaWidth, Height: config.DefaultArenaHeight}
	}
	if o.TickRate <= 0 {
		o.TickRate = config.ServerTickRate
	}
	if o.MaxFrameTime <= 0 {
		o.MaxFrameTime = config.MaxFrameTime
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
}

// Server manages the shared world and processes controls from all clients.
type Server struct {
	opts Options
	log  *log.Logger

	world        *sim.World
	snapshot     atomic.Pointer[WorldSnapshot]
	clients      map[int]*ClientHandle
	nextClientID int
	inputChan    chan ClientInput
	registerCh   chan *ClientHandle
	unregisterCh chan int
	mu           sync.RWMutex // Guards world and clients

	tick     uint64
	controls []sim.Control // Reused per step
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID       int
	Username string           // Display name for this client
	Ship     int              // Ship index, -1 until spawned
	Control  sim.Control      // Latest control received
	EventsCh chan ClientEvent // Events sent to the client
}

// ClientInput is a control record from a specific client.
type ClientInput struct {
	ClientID int
	Control  sim.Control
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type  ClientEventType
	Round int // For round events
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventRoundCleared ClientEventType = iota
	EventWaveSpawned
	EventServerShutdown
)

// NewServer creates a game server with its own world.
func NewServer(opts Options) *Server {
	opts.withDefaults()

	s := &Server{
		opts:         opts,
		log:          opts.Logger,
		world:        sim.NewWorld(opts.Arena, sim.NewRand(opts.Seed)),
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		inputChan:    make(chan ClientInput, 256),
		registerCh:   make(chan *ClientHandle, 16),
		unregisterCh: make(chan int, 16),
	}
	s.world.Start()
	s.createSnapshot(0)
	return s
}

// Arena returns the bounds of the hosted world.
func (s *Server) Arena() physics.Arena {
	return s.opts.Arena
}

// Run starts the server loop. Blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second / time.Duration(s.opts.TickRate))
	defer ticker.Stop()

	s.log.Info("game server started",
		"arena", s.opts.Arena, "tick_rate", s.opts.TickRate, "max_frame", s.opts.MaxFrameTime)

	lastTime := time.Now()
	for {
		select {
		case <-ctx.Done():
			s.log.Info("game server stopped", "ticks", s.tick)
			return
		case now := <-ticker.C:
			s.step(now.Sub(lastTime))
			lastTime = now
		}
	}
}

// step runs one server frame with the given elapsed time.
func (s *Server) step(elapsed time.Duration) {
	s.processRegistrations()
	s.collectInputs()

	// The world treats dt as exact; long stalls are clamped here.
	if elapsed > s.opts.MaxFrameTime {
		s.log.Debug("clamping frame time", "elapsed", elapsed, "max", s.opts.MaxFrameTime)
		elapsed = s.opts.MaxFrameTime
	}

	s.updateWorld(elapsed)
	s.createSnapshot(elapsed)
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
// The caller should cancel the server context after Shutdown returns.
func (s *Server) Shutdown(timeout time.Duration) {
	s.broadcast(ClientEvent{Type: EventServerShutdown})

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			s.log.Warn("shutdown timed out", "clients", s.clientCount())
			return
		case <-ticker.C:
			if s.clientCount() == 0 {
				return
			}
		}
	}
}

func (s *Server) clientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// RegisterClient registers a new client with the given username and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	id := s.nextClientID
	s.nextClientID++
	s.mu.Unlock()

	handle := &ClientHandle{
		ID:       id,
		Username: username,
		Ship:     -1,
		EventsCh: make(chan ClientEvent, 16),
	}

	s.registerCh <- handle
	return handle
}

// UnregisterClient removes a client and its ship from the server.
func (s *Server) UnregisterClient(clientID int) {
	s.unregisterCh <- clientID
}

// SendControl sends a control record from a client to the server. The ship
// index is filled in by the server. Records are dropped when the queue is full.
func (s *Server) SendControl(clientID int, control sim.Control) {
	select {
	case s.inputChan <- ClientInput{ClientID: clientID, Control: control}:
	default:
	}
}

// GetSnapshot returns the current world snapshot.
func (s *Server) GetSnapshot() *WorldSnapshot {
	return s.snapshot.Load()
}

// SpawnShip gives the client a ship if it has none and returns the ship
// index, or -1 if the client is unknown. Registration is asynchronous, so a
// client may have to retry on the next frame.
func (s *Server) SpawnShip(clientID int) int {
	s.processRegistrations()

	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := s.clients[clientID]
	if !ok {
		return -1
	}
	if handle.Ship >= 0 {
		return handle.Ship
	}
	handle.Ship = s.world.CreateShip(config.ShipColor(s.world.ShipCount()))
	s.log.Info("ship spawned", "client", clientID, "user", handle.Username, "ship", handle.Ship)
	return handle.Ship
}

// processRegistrations handles pending client registrations/unregistrations.
func (s *Server) processRegistrations() {
	for {
		select {
		case handle := <-s.registerCh:
			s.mu.Lock()
			s.clients[handle.ID] = handle
			s.mu.Unlock()
			s.log.Info("client registered", "client", handle.ID, "user", handle.Username)
		case clientID := <-s.unregisterCh:
			s.mu.Lock()
			if handle, ok := s.clients[clientID]; ok {
				if handle.Ship >= 0 {
					s.world.RemoveShip(handle.Ship)
				}
				close(handle.EventsCh)
				delete(s.clients, clientID)
				s.log.Info("client left", "client", clientID, "user", handle.Username, "ship", handle.Ship)
			}
			s.mu.Unlock()
		default:
			return
		}
	}
}

// collectInputs keeps the latest control record per client.
func (s *Server) collectInputs() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		select {
		case ci := <-s.inputChan:
			if handle, ok := s.clients[ci.ClientID]; ok {
				handle.Control = ci.Control
			}
		default:
			return
		}
	}
}

// updateWorld steps the world with every spawned client's latest control.
func (s *Server) updateWorld(elapsed time.Duration) {
	s.mu.Lock()

	s.controls = s.controls[:0]
	for _, handle := range s.clients {
		if handle.Ship < 0 {
			continue
		}
		c := handle.Control
		c.Ship = handle.Ship
		s.controls = append(s.controls, c)
	}

	report := s.world.Step(elapsed.Seconds(), s.controls)
	s.tick++
	s.mu.Unlock()

	if report.RoundCleared {
		s.log.Info("round cleared", "next_round", report.Round)
		s.broadcast(ClientEvent{Type: EventRoundCleared, Round: report.Round})
	}
	if report.WaveSpawned {
		s.log.Info("wave spawned", "round", report.Round, "live", report.Live)
		s.broadcast(ClientEvent{Type: EventWaveSpawned, Round: report.Round})
	}
}

// broadcast delivers ev to every client without blocking.
func (s *Server) broadcast(ev ClientEvent) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ev:
		default:
		}
	}
}

// createSnapshot publishes an immutable copy of the world. Each snapshot
// owns its entity slice, so readers never observe a later frame.
func (s *Server) createSnapshot(elapsed time.Duration) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	size := s.world.Len()
	if prev := s.snapshot.Load(); prev != nil {
		size = max(size, len(prev.Entities))
	}
	snap := &WorldSnapshot{
		Snapshot: s.world.Snapshot(make([]sim.EntitySnapshot, 0, size)),
		Players:  len(s.clients),
		Tick:     s.tick,
		Delta:    elapsed,
	}
	s.snapshot.Store(snap)
}
