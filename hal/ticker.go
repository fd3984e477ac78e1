package hal

import "time"

// ticker stands in for the timer interrupt. Each tick publishes its sequence
// number; a tick the consumer has not taken yet is dropped, as a real
// interrupt would be coalesced.
type ticker struct {
	ch  chan uint64
	seq uint64
}

func newTicker(period time.Duration) *ticker {
	if period <= 0 {
		period = DefaultTickPeriod
	}
	t := &ticker{ch: make(chan uint64, 16)}
	go func() {
		tk := time.NewTicker(period)
		defer tk.Stop()
		for range tk.C {
			t.seq++
			select {
			case t.ch <- t.seq:
			default:
			}
		}
	}()
	return t
}

func (t *ticker) Ticks() <-chan uint64 { return t.ch }
