package console

import (
	"pulse/kernel"
	"pulse/services/logger"
)

// MsgRX carries bytes received by the UART interrupt.
const MsgRX uint8 = 1

const (
	maxLine = 40
	batch   = 2
)

// Task assembles lines from UART RX chunks and echoes them to the logger.
type Task struct {
	rx    kernel.Mailbox
	out   *logger.Service
	line  [maxLine]byte
	n     int
	lines uint32
}

func New(out *logger.Service) *Task {
	return &Task{out: out}
}

// Feed queues received bytes. It is called from the RX interrupt handler,
// which then signals the task's slot. It returns the number of bytes
// accepted; the rest is lost to overrun.
func (t *Task) Feed(b []byte) int {
	sent := 0
	for len(b) > 0 {
		chunk := b
		if len(chunk) > kernel.MaxMessageBytes {
			chunk = chunk[:kernel.MaxMessageBytes]
		}
		if !t.rx.TrySend(kernel.NewMessage(kernel.FromInterrupt, MsgRX, chunk)) {
			break
		}
		sent += len(chunk)
		b = b[len(chunk):]
	}
	return sent
}

// Lines returns the number of lines echoed.
func (t *Task) Lines() uint32 { return t.lines }

func (t *Task) Advance(ctx *kernel.Context) kernel.Outcome {
	for i := 0; i < batch; i++ {
		msg, ok := t.rx.TryRecv()
		if !ok {
			return kernel.Suspended
		}
		for _, c := range msg.Payload() {
			t.put(ctx, c)
		}
	}
	if t.rx.Len() == 0 {
		return kernel.Suspended
	}
	return kernel.Progressed
}

func (t *Task) put(ctx *kernel.Context, c byte) {
	switch c {
	case '\r', '\n':
		if t.n == 0 {
			return
		}
		var buf [maxLine + 2]byte
		line := append(buf[:0], "> "...)
		line = append(line, t.line[:t.n]...)
		if t.out != nil {
			t.out.Post(ctx, line)
		}
		t.lines++
		t.n = 0
	default:
		if t.n < maxLine {
			t.line[t.n] = c
			t.n++
		}
	}
}
