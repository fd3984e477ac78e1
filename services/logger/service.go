package logger

import (
	"strconv"

	"pulse/hal"
	"pulse/kernel"
)

// MsgLogLine is the only message kind the service accepts.
const MsgLogLine uint8 = 1

// batch bounds the lines written per advance so one chatty round cannot
// starve the slots after this one.
const batch = 4

// Service owns the hal.Logger. Other tasks post lines to its mailbox and
// signal its slot; it writes them out in order.
type Service struct {
	log     hal.Logger
	slot    kernel.Slot
	inbox   kernel.Mailbox
	dropped uint32
}

func New(log hal.Logger, slot kernel.Slot) *Service {
	return &Service{log: log, slot: slot}
}

// Post queues a line and wakes the service. It reports false (and counts a
// drop) when the mailbox is full.
func (s *Service) Post(ctx *kernel.Context, line []byte) bool {
	if !s.inbox.TrySend(kernel.NewMessage(ctx.Slot(), MsgLogLine, line)) {
		s.dropped++
		return false
	}
	ctx.Signal(s.slot)
	return true
}

func (s *Service) Advance(ctx *kernel.Context) kernel.Outcome {
	for i := 0; i < batch; i++ {
		msg, ok := s.inbox.TryRecv()
		if !ok {
			s.flushDropped()
			return kernel.Suspended
		}
		if s.log == nil || msg.Kind != MsgLogLine {
			continue
		}
		s.log.WriteLineBytes(msg.Payload())
	}
	if s.inbox.Len() == 0 {
		s.flushDropped()
		return kernel.Suspended
	}
	return kernel.Progressed
}

func (s *Service) flushDropped() {
	if s.dropped == 0 || s.log == nil {
		return
	}
	var buf [32]byte
	line := append(buf[:0], "logger: dropped "...)
	line = strconv.AppendUint(line, uint64(s.dropped), 10)
	line = append(line, " lines"...)
	s.log.WriteLineBytes(line)
	s.dropped = 0
}
