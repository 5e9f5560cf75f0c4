package input

import (
	"bufio"
	"io"
	"strings"
	"testing"
	"time"
)

// newTestStream builds a stream fed from a pipe with a controllable clock.
func newTestStream(t *testing.T) (*Stream, *io.PipeWriter, *time.Time) {
	t.Helper()
	pr, pw := io.Pipe()
	s := StartStream(bufio.NewReader(pr))
	clock := time.Unix(1000, 0)
	s.now = func() time.Time { return clock }
	t.Cleanup(func() { pw.Close() })
	return s, pw, &clock
}

// feed writes b and waits until the reader goroutine has queued it.
func feed(t *testing.T, s *Stream, pw *io.PipeWriter, b string) {
	t.Helper()
	if _, err := pw.Write([]byte(b)); err != nil {
		t.Fatal(err)
	}
	deadline := time.Now().Add(time.Second)
	for len(s.ch) < len(b) {
		if time.Now().After(deadline) {
			t.Fatalf("bytes %q never reached the stream", b)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestReadInputKeys(t *testing.T) {
	s, pw, _ := newTestStream(t)
	feed(t, s, pw, "w \x1b[D")

	in := ReadInput(s)
	if !in.Up || !in.Space || !in.Left {
		t.Fatalf("input = %+v, want up, space and left", in)
	}
	if in.Right || in.Down || in.Quit || in.Escape {
		t.Fatalf("input = %+v has stray keys", in)
	}
	if string(in.Pressed) != "w \x1b[D" {
		t.Fatalf("pressed = %q", in.Pressed)
	}
}

func TestKeyHold(t *testing.T) {
	s, pw, clock := newTestStream(t)
	feed(t, s, pw, "s")
	if !ReadInput(s).Down {
		t.Fatal("s not reported as shield")
	}

	*clock = clock.Add(DefaultHold / 2)
	if !ReadInput(s).Down {
		t.Fatal("key released inside the hold window")
	}

	*clock = clock.Add(DefaultHold)
	if ReadInput(s).Down {
		t.Fatal("key still held after the hold window")
	}
}

func TestResetKeyInput(t *testing.T) {
	s, pw, _ := newTestStream(t)
	feed(t, s, pw, " ")
	ReadInput(s)
	feed(t, s, pw, "dd")
	ResetKeyInput(s)
	in := ReadInput(s)
	if in.Space || in.Right {
		t.Fatalf("input after reset = %+v", in)
	}
}

func TestClosedStreamQuits(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("")))
	deadline := time.Now().Add(time.Second)
	for {
		in := ReadInput(s)
		if in.Closed {
			if !in.Quit {
				t.Fatal("closed stream did not request quit")
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("stream never reported closed")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestControl(t *testing.T) {
	tests := []struct {
		in   Input
		want [2]float64 // steer, throttle
	}{
		{Input{}, [2]float64{0, 0}},
		{Input{Left: true}, [2]float64{-1, 0}},
		{Input{Right: true, Up: true}, [2]float64{1, 1}},
		{Input{Left: true, Right: true}, [2]float64{0, 0}},
	}
	for _, tt := range tests {
		c := tt.in.Control(3)
		if c.Ship != 3 || c.Steer != tt.want[0] || c.Throttle != tt.want[1] {
			t.Errorf("Control(%+v) = %+v, want steer %v throttle %v", tt.in, c, tt.want[0], tt.want[1])
		}
	}
	c := Input{Down: true, Space: true}.Control(0)
	if !c.Shield || !c.Fire {
		t.Fatalf("control = %+v, want shield and fire", c)
	}
}
