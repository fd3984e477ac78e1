package hal

import (
	"testing"
	"time"
)

func TestTickerDropsUntakenTicks(t *testing.T) {
	tk := newTicker(time.Millisecond)
	time.Sleep(100 * time.Millisecond)

	// Nobody read for ~100 ticks: the first cap(ch) are queued in order,
	// the rest were dropped.
	queued := cap(tk.ch)
	for want := uint64(1); want <= uint64(queued); want++ {
		if got := <-tk.Ticks(); got != want {
			t.Fatalf("queued tick = %d, want %d", got, want)
		}
	}
	if next := <-tk.Ticks(); next <= uint64(queued)+1 {
		t.Fatalf("tick after the queue = %d, want a gap after %d", next, queued)
	}
}

func TestTickerDefaultsPeriod(t *testing.T) {
	tk := newTicker(0)
	select {
	case seq := <-tk.Ticks():
		t.Fatalf("tick %d arrived immediately with the default period", seq)
	case <-time.After(20 * time.Millisecond):
	}
}
