// Package pingpong bounces a counter between two slots through their
// mailboxes, waking each other with task-to-task signals.
package pingpong

import (
	"encoding/binary"
	"strconv"

	"pulse/kernel"
	"pulse/services/logger"
)

const (
	msgPing uint8 = iota + 1
	msgPong
)

const (
	stateArm kernel.State = iota
	stateServe
	stateAwaitReply
)

// Ping starts a rally of Volleys exchanges on every raise of its line.
type Ping struct {
	*kernel.Machine[pingLocals]
}

type pingLocals struct {
	self, peer kernel.Slot
	ev         kernel.Event
	volleys    uint32

	inbox   kernel.Mailbox
	pong    *Pong
	out     *logger.Service
	rally   uint32
	volley  uint32
	dropped uint32
	lineBuf [kernel.MaxMessageBytes]byte
}

// Pong answers every ping it finds in its mailbox.
type Pong struct {
	self  kernel.Slot
	inbox kernel.Mailbox
	ping    *Ping
	seen    uint32
	dropped uint32
}

// New returns the two halves of a rally. ping and pong are the slots they
// will be registered at.
func New(ping, pong kernel.Slot, ev kernel.Event, volleys uint32, out *logger.Service) (*Ping, *Pong) {
	if volleys == 0 {
		volleys = 1
	}
	pi := &Ping{}
	po := &Pong{self: pong, ping: pi}
	pi.Machine = kernel.NewMachine(pingLocals{
		self:    ping,
		peer:    pong,
		ev:      ev,
		volleys: volleys,
		pong:    po,
		out:     out,
	}, armStep, serveStep, replyStep)
	return pi, po
}

// Rallies returns the number of completed rallies.
func (p *Ping) Rallies() uint32 { return p.Locals.rally }

// Dropped returns the number of volleys lost to a full pong mailbox. Each
// one abandons its rally.
func (p *Ping) Dropped() uint32 { return p.Locals.dropped }

// Seen returns the number of pings answered.
func (p *Pong) Seen() uint32 { return p.seen }

// Dropped returns the number of replies lost to a full ping mailbox.
func (p *Pong) Dropped() uint32 { return p.dropped }

func armStep(c *kernel.Context, l *pingLocals) kernel.Resume {
	c.Await(l.ev)
	return kernel.Yield(stateServe)
}

func serveStep(c *kernel.Context, l *pingLocals) kernel.Resume {
	l.volley = 0
	if !l.send(c) {
		return l.abandon(c)
	}
	return kernel.Yield(stateAwaitReply)
}

func replyStep(c *kernel.Context, l *pingLocals) kernel.Resume {
	msg, ok := l.inbox.TryRecv()
	if !ok {
		// Woken by something other than the reply.
		return kernel.Yield(stateAwaitReply)
	}
	if msg.Kind != msgPong || binary.LittleEndian.Uint32(msg.Payload()) != l.volley {
		return kernel.Yield(stateAwaitReply)
	}
	if l.volley < l.volleys {
		if !l.send(c) {
			return l.abandon(c)
		}
		return kernel.Yield(stateAwaitReply)
	}

	l.rally++
	if l.out != nil {
		line := append(l.lineBuf[:0], "rally #"...)
		line = strconv.AppendUint(line, uint64(l.rally), 10)
		line = append(line, ": "...)
		line = strconv.AppendUint(line, uint64(l.volleys), 10)
		line = append(line, " volleys"...)
		l.out.Post(c, line)
	}
	return kernel.Goto(stateArm)
}

// send passes the next volley to pong. It reports false when pong's
// mailbox is full; pong is not woken then.
func (l *pingLocals) send(c *kernel.Context) bool {
	l.volley++
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], l.volley)
	if !l.pong.inbox.TrySend(kernel.NewMessage(l.self, msgPing, buf[:])) {
		l.dropped++
		return false
	}
	c.Signal(l.peer)
	return true
}

// abandon reports a rally cut short by a dropped volley and waits for the
// next serve.
func (l *pingLocals) abandon(c *kernel.Context) kernel.Resume {
	if l.out != nil {
		line := append(l.lineBuf[:0], "rally abandoned at volley "...)
		line = strconv.AppendUint(line, uint64(l.volley), 10)
		l.out.Post(c, line)
	}
	return kernel.Goto(stateArm)
}

func (p *Pong) Advance(c *kernel.Context) kernel.Outcome {
	for {
		msg, ok := p.inbox.TryRecv()
		if !ok {
			return kernel.Suspended
		}
		if msg.Kind != msgPing {
			continue
		}
		p.seen++
		reply := kernel.NewMessage(p.self, msgPong, msg.Payload())
		if !p.ping.Locals.inbox.TrySend(reply) {
			p.dropped++
			continue
		}
		c.Signal(msg.From)
	}
}
