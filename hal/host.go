//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// HostConfig controls the host HAL.
type HostConfig struct {
	TickPeriod time.Duration
	Out        io.Writer // task output; defaults to stdout
	In         io.Reader // serial input; nil disables serial RX
	// Panel, when set, also receives every LED and light bar change.
	Panel *Panel
}

type hostHAL struct {
	logger *hostLogger
	led    *hostLED
	t      *ticker
	serial *hostSerial
	cpu    CPU
	lights *hostLights
}

// NewHost returns the host HAL: task output and state changes are printed
// as lines, serial RX reads cfg.In.
func NewHost(cfg HostConfig) HAL {
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	logger := &hostLogger{w: cfg.Out}
	return &hostHAL{
		logger: logger,
		led:    &hostLED{logger: logger, panel: cfg.Panel},
		t:      newTicker(cfg.TickPeriod),
		serial: &hostSerial{r: cfg.In, w: cfg.Out},
		cpu:    NewCPU(),
		lights: &hostLights{logger: logger, panel: cfg.Panel},
	}
}

func (h *hostHAL) Logger() Logger { return h.logger }
func (h *hostHAL) LED() LED       { return h.led }
func (h *hostHAL) Time() Time     { return h.t }
func (h *hostHAL) Serial() Serial { return h.serial }
func (h *hostHAL) CPU() CPU       { return h.cpu }
func (h *hostHAL) Lights() Lights { return h.lights }

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

type hostLED struct {
	logger *hostLogger
	panel  *Panel
}

func (l *hostLED) High() {
	l.panel.setLED(true)
	l.logger.WriteLineString("led: HIGH")
}

func (l *hostLED) Low() {
	l.panel.setLED(false)
	l.logger.WriteLineString("led: LOW")
}

type hostSerial struct {
	mu sync.Mutex
	r  io.Reader
	w  io.Writer
}

func (s *hostSerial) Read(p []byte) (int, error) {
	if s.r == nil {
		return 0, ErrNotImplemented
	}
	return s.r.Read(p)
}

func (s *hostSerial) Write(p []byte) (int, error) {
	if s.w == nil {
		return 0, ErrNotImplemented
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// hostLights prints the light bar when it changes.
type hostLights struct {
	mu     sync.Mutex
	last   uint8
	shown  bool
	logger *hostLogger
	panel  *Panel
}

func (l *hostLights) Show(bits uint8) {
	l.panel.setLights(bits)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.shown && bits == l.last {
		return
	}
	l.shown = true
	l.last = bits
	l.logger.WriteLineString(fmt.Sprintf("lights: %08b", bits))
}
