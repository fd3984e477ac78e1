package blink

import (
	"testing"

	"pulse/kernel"
)

type led struct{ levels []bool }

func (l *led) High() { l.levels = append(l.levels, true) }
func (l *led) Low()  { l.levels = append(l.levels, false) }

func TestBlinkTogglesEveryN(t *testing.T) {
	const tick kernel.Event = 3

	var l led
	task := New(&l, tick, 2)
	s, err := kernel.New([]kernel.Task{task}, kernel.WithSlotCount(1))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	s.Round()

	for i := 0; i < 6; i++ {
		s.Raise(tick)
		s.Round()
		if r := s.Round(); r.Runnable != kernel.Bit(0) {
			t.Fatalf("tick %d Runnable = %s, want {0}", i, r.Runnable)
		}
	}

	want := []bool{true, false, true}
	if len(l.levels) != len(want) {
		t.Fatalf("levels = %v, want %v", l.levels, want)
	}
	for i := range want {
		if l.levels[i] != want[i] {
			t.Fatalf("levels = %v, want %v", l.levels, want)
		}
	}
	if !task.On() {
		t.Fatal("On() = false after odd number of toggles, want true")
	}
}

func TestBlinkIgnoresUnrelatedWake(t *testing.T) {
	var l led
	task := New(&l, 0, 1)
	s, err := kernel.New([]kernel.Task{task}, kernel.WithSlotCount(1))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	s.Round()
	s.Raise(1)
	s.Round()
	if r := s.Round(); r.Runnable != 0 {
		t.Fatalf("Runnable = %s after unrouted raise, want {}", r.Runnable)
	}
	if len(l.levels) != 0 {
		t.Fatalf("levels = %v, want none", l.levels)
	}
}
