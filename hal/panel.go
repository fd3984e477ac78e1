//go:build !tinygo

package hal

import "sync/atomic"

// Panel mirrors the slot lights and the LED for a front-panel view. The HAL
// writes it from scheduler context; a window reads it from its own goroutine.
type Panel struct {
	lights atomic.Uint32
	led    atomic.Bool
}

// Snapshot returns the light bar bits and the LED level.
func (p *Panel) Snapshot() (lights uint8, led bool) {
	return uint8(p.lights.Load()), p.led.Load()
}

func (p *Panel) setLights(bits uint8) {
	if p != nil {
		p.lights.Store(uint32(bits))
	}
}

func (p *Panel) setLED(on bool) {
	if p != nil {
		p.led.Store(on)
	}
}
