package logger

import (
	"fmt"
	"testing"

	"pulse/kernel"
)

type lines []string

func (l *lines) WriteLineString(s string) { *l = append(*l, s) }
func (l *lines) WriteLineBytes(b []byte)  { *l = append(*l, string(b)) }

func TestServiceWritesPostedLines(t *testing.T) {
	var out lines
	svc := New(&out, 1)

	posts := 0
	poster := kernel.TaskFunc(func(ctx *kernel.Context) kernel.Outcome {
		posts++
		svc.Post(ctx, []byte(fmt.Sprintf("line %d", posts)))
		return kernel.Suspended
	})

	s, err := kernel.New([]kernel.Task{poster, svc}, kernel.WithSlotCount(2))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	r := s.Round()
	if len(out) != 1 || out[0] != "line 1" {
		t.Fatalf("output = %q, want [line 1]", out)
	}
	// The post signaled the service again; the line was already written in
	// the same round because slot 1 runs after slot 0.
	if r.Next != kernel.Bit(1) {
		t.Fatalf("Round().Next = %s, want {1}", r.Next)
	}
	if r := s.Round(); r.Next != 0 {
		t.Fatalf("second Round().Next = %s, want {}", r.Next)
	}
}

func TestServiceBatchesAndReportsProgress(t *testing.T) {
	var out lines
	svc := New(&out, 1)

	burst := kernel.TaskFunc(func(ctx *kernel.Context) kernel.Outcome {
		for i := 0; i < 6; i++ {
			svc.Post(ctx, []byte(fmt.Sprintf("b%d", i)))
		}
		return kernel.Suspended
	})
	s, err := kernel.New([]kernel.Task{burst, svc}, kernel.WithSlotCount(2))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	r := s.Round()
	if len(out) != batch {
		t.Fatalf("lines after first round = %d, want %d", len(out), batch)
	}
	if !r.Progressed.Has(1) {
		t.Fatalf("Round().Progressed = %s, want slot 1", r.Progressed)
	}

	s.Round()
	if len(out) != 6 || out[5] != "b5" {
		t.Fatalf("output = %q, want b0..b5", out)
	}
}

func TestServiceCountsDrops(t *testing.T) {
	var out lines
	svc := New(&out, 1)

	flood := kernel.TaskFunc(func(ctx *kernel.Context) kernel.Outcome {
		for i := 0; i < 10; i++ {
			svc.Post(ctx, []byte("x"))
		}
		return kernel.Suspended
	})
	s, err := kernel.New([]kernel.Task{flood, svc}, kernel.WithSlotCount(2))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	s.Round()
	s.Round()
	last := out[len(out)-1]
	if last != "logger: dropped 2 lines" {
		t.Fatalf("last line = %q, want drop report", last)
	}
}
