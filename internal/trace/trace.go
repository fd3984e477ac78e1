// Package trace observes scheduler rounds: it logs them, records them to a
// msgpack stream, and replays a recorded stream as a colored table.
package trace

import (
	"fmt"
	"log/slog"

	"pulse/kernel"
)

// Record is the stored form of one kernel.Report.
type Record struct {
	Seq        uint64  `msgpack:"seq"`
	Runnable   uint32  `msgpack:"runnable"`
	Order      []uint8 `msgpack:"order"`
	Progressed uint32  `msgpack:"progressed"`
	Next       uint32  `msgpack:"next"`
	Idle       bool    `msgpack:"idle"`
}

// FromReport copies r into a Record.
func FromReport(r kernel.Report) Record {
	rec := Record{
		Seq:        r.Seq,
		Runnable:   uint32(r.Runnable),
		Order:      make([]uint8, 0, r.Advanced),
		Progressed: uint32(r.Progressed),
		Next:       uint32(r.Next),
		Idle:       r.Idle,
	}
	for _, s := range r.Advances() {
		rec.Order = append(rec.Order, uint8(s))
	}
	return rec
}

// Multi fans one report out to several observers, in order. Nil entries are
// skipped; with nothing left it returns nil.
func Multi(obs ...kernel.Observer) kernel.Observer {
	var live []kernel.Observer
	for _, o := range obs {
		if o != nil {
			live = append(live, o)
		}
	}
	switch len(live) {
	case 0:
		return nil
	case 1:
		return live[0]
	}
	return kernel.ObserverFunc(func(r kernel.Report) {
		for _, o := range live {
			o.Round(r)
		}
	})
}

// Log returns an observer writing one debug line per round.
func Log(logger *slog.Logger) kernel.Observer {
	logger = logger.With("component", "scheduler")
	return kernel.ObserverFunc(func(r kernel.Report) {
		logger.Debug("round",
			"seq", r.Seq,
			"runnable", r.Runnable.String(),
			"advanced", r.Advanced,
			"progressed", r.Progressed.String(),
			"next", r.Next.String(),
			"idle", r.Idle,
		)
	})
}

// LogStats writes the loop counters at info level.
func LogStats(logger *slog.Logger, st kernel.Stats) {
	attrs := []any{
		"component", "scheduler",
		"rounds", st.Rounds,
		"idles", st.Idles,
		"spurious_wakes", st.SpuriousWakes,
	}
	for i, n := range st.Advances {
		if n == 0 {
			continue
		}
		attrs = append(attrs, slog.Uint64(fmt.Sprintf("slot%d", i), n))
	}
	logger.Info("scheduler stopped", attrs...)
}
