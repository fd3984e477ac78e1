package trace

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/fatih/color"

	"pulse/internal/logging"
	"pulse/kernel"
)

// twoSlots builds a scheduler whose slot 0 progresses once and whose slot 1
// only ever suspends.
func twoSlots(t *testing.T) *kernel.Scheduler {
	t.Helper()
	var busy int
	tasks := []kernel.Task{
		kernel.TaskFunc(func(*kernel.Context) kernel.Outcome {
			busy++
			if busy == 1 {
				return kernel.Progressed
			}
			return kernel.Suspended
		}),
		kernel.TaskFunc(func(*kernel.Context) kernel.Outcome { return kernel.Suspended }),
	}
	s, err := kernel.New(tasks, kernel.WithSlotCount(2))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRecorderReplaysRounds(t *testing.T) {
	var buf bytes.Buffer
	rec := NewRecorder(&buf)
	s := twoSlots(t)

	for i := 0; i < 3; i++ {
		rec.Round(s.Round())
	}
	if rec.Err() != nil || rec.Rounds() != 3 {
		t.Fatalf("Recorder = %d rounds, err %v; want 3, nil", rec.Rounds(), rec.Err())
	}

	recs, err := ReadAll(&buf)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("ReadAll() = %d records, want 3", len(recs))
	}
	first := recs[0]
	if first.Seq != 0 || len(first.Order) != 2 || first.Progressed != uint32(kernel.Bit(0)) {
		t.Fatalf("first record = %+v, want both slots advanced and slot 0 progressed", first)
	}
	if !recs[1].Idle || len(recs[1].Order) != 1 || recs[1].Order[0] != 0 {
		t.Fatalf("second record = %+v, want slot 0 only and idle", recs[1])
	}
	if len(recs[2].Order) != 0 {
		t.Fatalf("third record = %+v, want no advances", recs[2])
	}
}

func TestRecorderKeepsFirstError(t *testing.T) {
	rec := NewRecorder(failWriter{})
	s := twoSlots(t)
	rec.Round(s.Round())
	rec.Round(s.Round())
	if rec.Err() == nil {
		t.Fatal("Err() = nil, want write error")
	}
	if rec.Rounds() != 0 {
		t.Fatalf("Rounds() = %d, want 0", rec.Rounds())
	}
}

func TestReaderRejectsGarbage(t *testing.T) {
	rd := NewReader(strings.NewReader("\xc1not msgpack"))
	if _, err := rd.Next(); err == nil || errors.Is(err, io.EOF) {
		t.Fatalf("Next() error = %v, want decode error", err)
	}
}

func TestPrinterFormatsRounds(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	var out bytes.Buffer
	p := NewPrinter(&out)
	err := p.Print(Record{
		Seq:        12,
		Runnable:   uint32(kernel.Bit(0) | kernel.Bit(2)),
		Order:      []uint8{0, 2},
		Progressed: uint32(kernel.Bit(2)),
		Next:       uint32(kernel.Bit(2)),
	})
	if err != nil {
		t.Fatalf("Print() error = %v", err)
	}
	p.Print(Record{Seq: 13, Idle: true})

	want := "#12 run {0,2} adv 0 2+ next {2}\n#13 run {} adv next {} idle\n"
	if out.String() != want {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}
}

func TestPrinterReplay(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	var stream bytes.Buffer
	rec := NewRecorder(&stream)
	s := twoSlots(t)
	rec.Round(s.Round())
	rec.Round(s.Round())

	var out bytes.Buffer
	n, err := NewPrinter(&out).Replay(&stream)
	if err != nil || n != 2 {
		t.Fatalf("Replay() = %d, %v; want 2, nil", n, err)
	}
	if !strings.HasSuffix(out.String(), "idle\n") {
		t.Fatalf("output = %q, want idle second round", out.String())
	}
}

func TestMulti(t *testing.T) {
	if Multi(nil, nil) != nil {
		t.Fatal("Multi(nil, nil) != nil")
	}

	var a, b []uint64
	obs := Multi(
		kernel.ObserverFunc(func(r kernel.Report) { a = append(a, r.Seq) }),
		nil,
		kernel.ObserverFunc(func(r kernel.Report) { b = append(b, r.Seq) }),
	)
	obs.Round(kernel.Report{Seq: 4})
	if len(a) != 1 || len(b) != 1 || a[0] != 4 || b[0] != 4 {
		t.Fatalf("observers saw %v and %v, want [4] each", a, b)
	}
}

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLoggerWithWriter(slog.LevelDebug, "text", &buf)
	s := twoSlots(t)
	Log(logger).Round(s.Round())

	out := buf.String()
	for _, want := range []string{"component=scheduler", "seq=0", "progressed={0}", "idle=false"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log = %q, want %q", out, want)
		}
	}

	buf.Reset()
	LogStats(logger, s.Stats())
	if !strings.Contains(buf.String(), "rounds=1") || !strings.Contains(buf.String(), "slot0=1") {
		t.Fatalf("stats log = %q", buf.String())
	}
}
