//go:build tinygo && !baremetal

package hal

import "os"

// New returns the HAL for TinyGo builds without a board (linux, wasm):
// output through the runtime's println, serial on stdin/stdout, no lights.
func New() HAL {
	return &printHAL{tick: newTicker(DefaultTickPeriod), cpu: NewCPU()}
}

type printHAL struct {
	tick *ticker
	cpu  CPU
}

func (h *printHAL) Logger() Logger { return printLines{} }
func (h *printHAL) LED() LED       { return printLED{} }
func (h *printHAL) Time() Time     { return h.tick }
func (h *printHAL) Serial() Serial { return stdio{} }
func (h *printHAL) CPU() CPU       { return h.cpu }
func (h *printHAL) Lights() Lights { return nullLights{} }

type printLines struct{}

func (printLines) WriteLineString(s string) { println(s) }
func (printLines) WriteLineBytes(b []byte)  { println(string(b)) }

type printLED struct{}

func (printLED) High() { println("led: HIGH") }
func (printLED) Low()  { println("led: LOW") }

type stdio struct{}

func (stdio) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdio) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
