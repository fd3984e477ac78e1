package kernel

import (
	"sync"
	"sync/atomic"
)

// NoSlot marks a PanicInfo raised outside any task, such as an interrupt
// handler signaling a slot that does not exist.
const NoSlot Slot = 0xFF

// PanicInfo describes why the system halted.
type PanicInfo struct {
	Slot  Slot
	Value any
	Stack []byte
}

// halted holds the process-wide halt state. Only the first Halt reaches the
// handler.
var halted struct {
	once    sync.Once
	active  atomic.Bool
	handler atomic.Pointer[func(PanicInfo)]
}

// Halted reports whether Halt has run.
func Halted() bool {
	return halted.active.Load()
}

// SetPanicHandler installs the function told about the first halt. It runs
// on the halting goroutine, before the panic unwinds, and must not panic
// itself. A nil fn removes the handler.
func SetPanicHandler(fn func(PanicInfo)) {
	if fn == nil {
		halted.handler.Store(nil)
		return
	}
	halted.handler.Store(&fn)
}

// Halt reports info to the panic handler and panics with info.Value.
// It never returns.
func Halt(info PanicInfo) {
	report(info)
	panic(info.Value)
}

func report(info PanicInfo) {
	halted.once.Do(func() {
		halted.active.Store(true)
		info.Stack = captureStack()
		if fn := halted.handler.Load(); fn != nil {
			(*fn)(info)
		}
	})
}
