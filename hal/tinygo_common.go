//go:build tinygo && baremetal

package hal

import "machine"

// uartLines writes task output as CRLF-terminated lines on the console UART.
type uartLines struct {
	uart *machine.UART
}

func (l *uartLines) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.crlf()
}

func (l *uartLines) WriteLineBytes(b []byte) {
	l.uart.Write(b)
	l.crlf()
}

func (l *uartLines) crlf() {
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

type boardLED struct {
	pin machine.Pin
}

func (l *boardLED) High() { l.pin.High() }
func (l *boardLED) Low()  { l.pin.Low() }

// uartRX never blocks: with an empty RX FIFO, Read returns 0 and the app's
// RX source polls again later.
type uartRX struct {
	uart *machine.UART
}

func (s *uartRX) Read(p []byte) (int, error) {
	if s.uart.Buffered() == 0 {
		return 0, nil
	}
	return s.uart.Read(p)
}

func (s *uartRX) Write(p []byte) (int, error) {
	return s.uart.Write(p)
}
