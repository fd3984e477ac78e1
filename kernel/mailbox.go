package kernel

import "sync/atomic"

// MaxMessageBytes is the maximum payload size for mailbox messages.
const MaxMessageBytes = 48

// FromInterrupt is the From value of messages posted by interrupt handlers.
const FromInterrupt = NoSlot

// Message is a fixed-size message envelope.
type Message struct {
	From Slot
	Kind uint8
	Len  uint8
	Data [MaxMessageBytes]byte
}

// Payload returns the valid part of Data.
func (m *Message) Payload() []byte {
	n := int(m.Len)
	if n > MaxMessageBytes {
		n = MaxMessageBytes
	}
	return m.Data[:n]
}

// NewMessage copies payload (truncated to MaxMessageBytes) into a message.
func NewMessage(from Slot, kind uint8, payload []byte) Message {
	msg := Message{From: from, Kind: kind}
	n := copy(msg.Data[:], payload)
	msg.Len = uint8(n)
	return msg
}

const mailboxSlots = 8

// Mailbox is a fixed-size single-producer, single-consumer queue.
//
// The producer may be an interrupt handler and the consumer a task; neither
// side blocks. Tasks all run in scheduler context, so any number of tasks
// count as one producer. Waking the consumer is the producer's job
// (Scheduler.Signal or Context.Signal).
type Mailbox struct {
	_     [0]func() // prevent accidental copying.
	head  atomic.Uint32
	tail  atomic.Uint32
	slots [mailboxSlots]Message
}

// TrySend enqueues a message, returning false if the mailbox is full.
func (mb *Mailbox) TrySend(msg Message) bool {
	head := mb.head.Load()
	tail := mb.tail.Load()
	if head-tail >= mailboxSlots {
		return false
	}

	mb.slots[head%mailboxSlots] = msg
	mb.head.Store(head + 1)
	return true
}

// TryRecv dequeues one message, returning false if empty.
func (mb *Mailbox) TryRecv() (Message, bool) {
	tail := mb.tail.Load()
	head := mb.head.Load()
	if tail == head {
		return Message{}, false
	}

	msg := mb.slots[tail%mailboxSlots]
	mb.tail.Store(tail + 1)
	return msg, true
}

// Len returns the number of queued messages.
func (mb *Mailbox) Len() int {
	return int(mb.head.Load() - mb.tail.Load())
}
