//go:build tinygo && baremetal && slotlights

package hal

import (
	"image/color"
	"machine"

	"tinygo.org/x/drivers/ws2812"
)

// LightsPin drives an 8-pixel WS2812 strip, one pixel per task slot.
const LightsPin = machine.GP16

var (
	lightOn  = color.RGBA{R: 0, G: 24, B: 8, A: 255}
	lightOff = color.RGBA{}
)

type stripLights struct {
	dev  ws2812.Device
	buf  [8]color.RGBA
	last uint8
	init bool
}

func newLights() Lights {
	LightsPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return &stripLights{dev: ws2812.New(LightsPin)}
}

func (l *stripLights) Show(bits uint8) {
	if l.init && bits == l.last {
		return
	}
	l.init = true
	l.last = bits
	for i := range l.buf {
		if bits&(1<<i) != 0 {
			l.buf[i] = lightOn
		} else {
			l.buf[i] = lightOff
		}
	}
	_ = l.dev.WriteColors(l.buf[:])
}
