package main

import (
	"testing"

	"github.com/charmbracelet/ssh"
)

func TestWindowSizeFollowsChanges(t *testing.T) {
	s := newWindowSize(ssh.Window{Width: 80, Height: 24})
	if w, h, _ := s.get(); w != 80 || h != 24 {
		t.Fatalf("initial size = %dx%d", w, h)
	}

	ch := make(chan ssh.Window, 2)
	ch <- ssh.Window{Width: 200, Height: 60}
	ch <- ssh.Window{Width: 132, Height: 43}
	close(ch)
	s.follow(ch)

	if w, h, _ := s.get(); w != 132 || h != 43 {
		t.Fatalf("size after resize = %dx%d, want 132x43", w, h)
	}
}
