//go:build tinygo && baremetal

package hal

import "machine"

// Board wiring.
const (
	consoleBaud = 115200
	consoleTX   = machine.GP0
	consoleRX   = machine.GP1
)

type boardHAL struct {
	console *uartLines
	led     *boardLED
	tick    *ticker
	rx      *uartRX
	cpu     CPU
	lights  Lights
}

// New returns the Pico HAL: UART0 console at 115200 8N1, the on-board LED,
// a DefaultTickPeriod timer interrupt and, with the slotlights tag, the
// WS2812 light bar.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{BaudRate: consoleBaud, TX: consoleTX, RX: consoleRX})

	pin := machine.LED
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})

	return &boardHAL{
		console: &uartLines{uart: uart},
		led:     &boardLED{pin: pin},
		tick:    newTicker(DefaultTickPeriod),
		rx:      &uartRX{uart: uart},
		cpu:     NewCPU(),
		lights:  newLights(),
	}
}

func (h *boardHAL) Logger() Logger { return h.console }
func (h *boardHAL) LED() LED       { return h.led }
func (h *boardHAL) Time() Time     { return h.tick }
func (h *boardHAL) Serial() Serial { return h.rx }
func (h *boardHAL) CPU() CPU       { return h.cpu }
func (h *boardHAL) Lights() Lights { return h.lights }
