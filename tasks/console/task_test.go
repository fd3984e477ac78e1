package console

import (
	"strings"
	"testing"

	"pulse/kernel"
	"pulse/services/logger"
)

type lines []string

func (l *lines) WriteLineString(s string) { *l = append(*l, s) }
func (l *lines) WriteLineBytes(b []byte)  { *l = append(*l, string(b)) }

func TestConsoleEchoesLines(t *testing.T) {
	var out lines
	svc := logger.New(&out, 1)
	con := New(svc)
	s, err := kernel.New([]kernel.Task{con, svc}, kernel.WithSlotCount(2))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	s.Round()

	// RX interrupt: bytes arrive split across chunks.
	con.Feed([]byte("hel"))
	con.Feed([]byte("lo\r\nwor"))
	s.Signal(0)
	con.Feed([]byte("ld\n"))
	s.Signal(0)

	for r := s.Round(); !r.Idle; r = s.Round() {
	}

	if len(out) != 2 || out[0] != "> hello" || out[1] != "> world" {
		t.Fatalf("output = %q, want [> hello > world]", out)
	}
	if con.Lines() != 2 {
		t.Fatalf("Lines() = %d, want 2", con.Lines())
	}
}

func TestConsoleProgressesThroughBacklog(t *testing.T) {
	con := New(nil)
	s, err := kernel.New([]kernel.Task{con}, kernel.WithSlotCount(1))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	s.Round()

	for i := 0; i < 5; i++ {
		con.Feed([]byte("x\n"))
	}
	s.Signal(0)
	s.Round()

	r := s.Round()
	if !r.Progressed.Has(0) {
		t.Fatalf("Progressed = %s with backlog, want {0}", r.Progressed)
	}
	for r := s.Round(); !r.Idle; r = s.Round() {
	}
	if con.Lines() != 5 {
		t.Fatalf("Lines() = %d, want 5", con.Lines())
	}
}

func TestConsoleFeedOverrun(t *testing.T) {
	con := New(nil)
	big := []byte(strings.Repeat("a", kernel.MaxMessageBytes*9))
	if got := con.Feed(big); got != kernel.MaxMessageBytes*8 {
		t.Fatalf("Feed() = %d, want %d", got, kernel.MaxMessageBytes*8)
	}
}
