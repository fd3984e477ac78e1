package hal

import (
	"errors"
	"time"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a minimal output pin abstraction.
type LED interface {
	High()
	Low()
}

var ErrNotImplemented = errors.New("not implemented")

// DefaultTickPeriod matches the demo SysTick reload (one interrupt per second).
const DefaultTickPeriod = time.Second

// Time provides a base tick stream.
//
// Each value is the sequence number of a timer interrupt. Ticks are dropped,
// not queued, when the consumer falls behind.
type Time interface {
	Ticks() <-chan uint64
}

// Serial is a byte stream (UART on hardware, stdin/stdout on host).
type Serial interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
}

// CPU is the processor's wait-for-interrupt primitive.
//
// Idle blocks until an interrupt has been pended since the previous wake.
// It may return for an interrupt that signaled nothing; callers re-check
// their own state.
type CPU interface {
	Idle()
	Pend()
}

// Lights shows one bit per task slot (bit i lights LED i).
type Lights interface {
	Show(bits uint8)
}

// HAL provides the only contact point between the OS and the outside world.
type HAL interface {
	Logger() Logger
	LED() LED
	Time() Time
	Serial() Serial
	CPU() CPU
	Lights() Lights
}
