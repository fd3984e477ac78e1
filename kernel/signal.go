package kernel

import "sync/atomic"

// SignalWord is the pending-wake bitmask shared between interrupt handlers,
// tasks and the scheduler.
//
// Set may be called from any context. Take is called by the single consumer.
// Both are a single atomic read-modify-write on one word: no lock, no waiting
// beyond the CAS retry when another producer races on the same word.
type SignalWord struct {
	_    [0]func() // prevent accidental copying.
	bits atomic.Uint32
}

// Set marks bit i. Setting an already set bit is a no-op.
func (w *SignalWord) Set(i uint8) {
	if i >= 32 {
		Halt(PanicInfo{Slot: NoSlot, Value: errBitRange(i)})
		return
	}
	w.Or(Mask(1) << i)
}

// Or merges m into the word.
func (w *SignalWord) Or(m Mask) {
	for {
		old := w.bits.Load()
		if old&uint32(m) == uint32(m) {
			return
		}
		if w.bits.CompareAndSwap(old, old|uint32(m)) {
			return
		}
	}
}

// Take returns every bit set since the previous Take and clears the word.
func (w *SignalWord) Take() Mask {
	return Mask(w.bits.Swap(0))
}

// Peek returns the pending bits without clearing them.
func (w *SignalWord) Peek() Mask {
	return Mask(w.bits.Load())
}
