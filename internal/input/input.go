// Package input turns a raw terminal byte stream into held-key state and
// maps it onto per-ship simulation controls.
package input

import (
	"io"
	"time"

	"github.com/tomz197/rocketarena/internal/sim"
)

// DefaultHold is how long a key counts as held after its last byte.
// Terminals only report repeats, so a held key arrives as a byte stream.
const DefaultHold = 80 * time.Millisecond

// Input represents the current frame's input state.
type Input struct {
	Quit   bool
	Closed bool // The underlying reader is gone
	Left   bool
	Right  bool
	Up     bool // Thrust
	Down   bool // Shield
	Space  bool // Fire
	Enter  bool
	Escape bool

	Pressed []byte
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit   time.Time
	left   time.Time
	right  time.Time
	up     time.Time
	down   time.Time
	space  time.Time
	enter  time.Time
	escape time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch     chan byte
	state  keyState
	hold   time.Duration
	closed bool
	now    func() time.Time
	buf    []byte
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The goroutine exits when r returns an error.
func StartStream(r io.ByteReader) *Stream {
	s := &Stream{
		ch:   make(chan byte, 128),
		hold: DefaultHold,
		now:  time.Now,
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// SetHold changes how long a key stays held after its last byte.
func (s *Stream) SetHold(d time.Duration) {
	s.hold = d
}

// ResetKeyInput forgets all held keys and discards buffered bytes, so a
// key used to leave a menu does not leak into the next screen.
func ResetKeyInput(s *Stream) {
	s.state = keyState{}
	for {
		select {
		case _, ok := <-s.ch:
			if !ok {
				s.closed = true
				return
			}
		default:
			return
		}
	}
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and accumulates all pressed keys.
// Uses key state persistence to allow detecting simultaneous key combinations.
func ReadInput(s *Stream) Input {
	now := s.now()
	s.buf = s.buf[:0]

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			s.buf = append(s.buf, b)
		default:
			break drain
		}
	}

	parse(&s.state, s.buf, now)

	held := func(t time.Time) bool { return now.Sub(t) < s.hold }
	return Input{
		Quit:    held(s.state.quit) || s.closed,
		Closed:  s.closed,
		Left:    held(s.state.left),
		Right:   held(s.state.right),
		Up:      held(s.state.up),
		Down:    held(s.state.down),
		Space:   held(s.state.space),
		Enter:   held(s.state.enter),
		Escape:  held(s.state.escape),
		Pressed: s.buf,
	}
}

// parse updates key timestamps from the bytes received this frame.
func parse(state *keyState, buf []byte, now time.Time) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				state.up = now
				i += 2
				continue
			case 'B':
				state.down = now
				i += 2
				continue
			case 'C':
				state.right = now
				i += 2
				continue
			case 'D':
				state.left = now
				i += 2
				continue
			}
		}

		applyByteToState(state, b, now)
	}
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', 0x03: // Ctrl+C arrives as a byte in raw mode
		state.quit = now
	case 'a', 'A', 'j', 'J':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case 'w', 'W', 'i', 'I':
		state.up = now
	case 's', 'S', 'k', 'K':
		state.down = now
	case ' ':
		state.space = now
	case '\n', '\r':
		state.enter = now
	case '\x1b':
		state.escape = now
	}
}

// Control maps held keys onto the control record for ship index.
// Left/Right steer at full rate, Up is full throttle, Down raises the
// shield and Space fires.
func (in Input) Control(ship int) sim.Control {
	c := sim.Control{
		Ship:   ship,
		Shield: in.Down,
		Fire:   in.Space,
	}
	if in.Left {
		c.Steer--
	}
	if in.Right {
		c.Steer++
	}
	if in.Up {
		c.Throttle = 1
	}
	return c
}
