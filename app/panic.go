package app

import (
	"fmt"
	"strings"
	"time"

	"pulse/hal"
	"pulse/kernel"
)

// panicBlink is the LED half-period while halted.
const panicBlink = 100 * time.Millisecond

func installPanicHandler(h hal.HAL) {
	kernel.SetPanicHandler(func(info kernel.PanicInfo) {
		if l := h.Logger(); l != nil {
			l.WriteLineString(panicHeadline(info))
			if len(info.Stack) > 0 {
				for _, line := range strings.Split(string(info.Stack), "\n") {
					if line == "" {
						continue
					}
					l.WriteLineString(line)
				}
			}
		}

		if !haltOnPanic {
			return
		}
		led := h.LED()
		if led == nil {
			select {}
		}
		for {
			led.High()
			time.Sleep(panicBlink)
			led.Low()
			time.Sleep(panicBlink)
		}
	})
}

func panicHeadline(info kernel.PanicInfo) string {
	if info.Slot == kernel.NoSlot {
		return fmt.Sprintf("Pulse panic: panic=%v", info.Value)
	}
	return fmt.Sprintf("Pulse panic: slot=%d panic=%v", info.Slot, info.Value)
}
