package kernel

import (
	"context"
	"fmt"
)

// Idler is the low-power wait primitive.
//
// Idle blocks until some interrupt has occurred. It may return spuriously.
type Idler interface {
	Idle()
}

// IdleFunc adapts a function to Idler.
type IdleFunc func()

func (f IdleFunc) Idle() { f() }

type spinIdler struct{}

func (spinIdler) Idle() {}

// Observer receives a report after every round, before the idle decision
// is acted on.
type Observer interface {
	Round(Report)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Report)

func (f ObserverFunc) Round(r Report) { f(r) }

// Report describes one round.
type Report struct {
	Seq        uint64
	Runnable   Mask
	Order      [MaxSlots]Slot
	Advanced   uint8
	Progressed Mask
	Next       Mask
	Idle       bool
}

// Advances returns the slots advanced in this round, in order.
func (r *Report) Advances() []Slot { return r.Order[:r.Advanced] }

// Stats are scheduler counters. They are only touched from scheduler context.
type Stats struct {
	Rounds        uint64
	Idles         uint64
	SpuriousWakes uint64
	Advances      [MaxSlots]uint64
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithSlotCount sets the table size (1..MaxSlots). The default is MaxSlots.
func WithSlotCount(n int) Option {
	return func(s *Scheduler) { s.n = n }
}

// WithIdler sets the idle primitive. The default returns immediately.
func WithIdler(i Idler) Option {
	return func(s *Scheduler) {
		if i != nil {
			s.idler = i
		}
	}
}

// WithObserver installs a round observer.
func WithObserver(o Observer) Option {
	return func(s *Scheduler) { s.obs = o }
}

type slotState struct {
	task Task
	ctx  Context
}

// Scheduler drives a fixed table of tasks in rounds and idles the core when
// a round leaves nothing runnable.
type Scheduler struct {
	_ [0]func() // prevent accidental copying.

	slots [MaxSlots]slotState
	n     int

	signals SignalWord
	events  SignalWord
	routes  [MaxEvents]Mask

	next Mask
	seq  uint64

	idler Idler
	obs   Observer

	advancing bool
	current   Slot

	stats Stats
}

// New builds a scheduler over exactly one task per slot.
//
// Every slot is advanced once in the first round.
func New(tasks []Task, opts ...Option) (*Scheduler, error) {
	s := &Scheduler{n: MaxSlots, idler: spinIdler{}}
	for _, opt := range opts {
		opt(s)
	}
	if s.n < 1 || s.n > MaxSlots {
		return nil, fmt.Errorf("%d slots: %w", s.n, ErrSlotCount)
	}
	if len(tasks) != s.n {
		return nil, fmt.Errorf("%d tasks for %d slots: %w", len(tasks), s.n, ErrTaskCount)
	}
	for i, t := range tasks {
		if t == nil {
			return nil, fmt.Errorf("slot %d: %w", i, ErrNilTask)
		}
		s.slots[i] = slotState{task: t, ctx: Context{s: s, slot: Slot(i)}}
	}
	s.next = All(s.n)
	return s, nil
}

// Slots returns the table size.
func (s *Scheduler) Slots() int { return s.n }

// Stats returns a copy of the counters.
func (s *Scheduler) Stats() Stats { return s.stats }

// Signal marks slot runnable. It is safe to call from interrupt handlers
// and other goroutines. An out-of-range slot halts.
func (s *Scheduler) Signal(slot Slot) {
	if int(slot) >= s.n {
		Halt(PanicInfo{Slot: slot, Value: errSlot(slot, s.n)})
	}
	s.signals.Set(uint8(slot))
}

// Raise marks ev raised. It is safe to call from interrupt handlers and
// other goroutines. Waiters routed with Context.Await run in the next round;
// a raise with no waiter is dropped.
func (s *Scheduler) Raise(ev Event) {
	if ev >= MaxEvents {
		Halt(PanicInfo{Slot: NoSlot, Value: errEvent(ev)})
	}
	s.events.Set(uint8(ev))
}

// Pending returns the slots signaled since the last take, without events.
func (s *Scheduler) Pending() Mask { return s.signals.Peek() }

func (s *Scheduler) route(ev Event, slot Slot) {
	if ev >= MaxEvents {
		Halt(PanicInfo{Slot: slot, Value: errEvent(ev)})
	}
	s.routes[ev] |= Bit(slot)
}

// take drains both signal words into a runnable mask.
func (s *Scheduler) take() Mask {
	m := s.signals.Take()
	for ev := s.events.Take(); ; {
		e, rest, ok := ev.Lowest()
		if !ok {
			break
		}
		m |= s.routes[e]
		s.routes[e] = 0
		ev = rest
	}
	return m
}

// Round advances every runnable slot once, in index order, and computes the
// runnable set of the next round. It never idles.
func (s *Scheduler) Round() Report {
	defer s.recoverTask()

	r := Report{Seq: s.seq, Runnable: s.next}
	s.next = 0

	for rest := r.Runnable; ; {
		slot, more, ok := rest.Lowest()
		if !ok {
			break
		}
		rest = more

		r.Order[r.Advanced] = slot
		r.Advanced++
		if s.advance(slot) == Progressed {
			r.Progressed |= Bit(slot)
		}
	}

	// Signals raised by tasks during the round and by interrupts that fired
	// mid-round are merged only now, after every advance has been counted.
	r.Next = r.Progressed | s.take()
	r.Idle = r.Progressed.Empty() && r.Next.Empty()
	s.next = r.Next

	s.seq++
	s.stats.Rounds++
	return r
}

func (s *Scheduler) advance(slot Slot) Outcome {
	st := &s.slots[slot]
	s.advancing = true
	s.current = slot
	out := st.task.Advance(&st.ctx)
	s.advancing = false
	s.stats.Advances[slot]++
	return out
}

func (s *Scheduler) recoverTask() {
	if !s.advancing {
		return
	}
	if v := recover(); v != nil {
		s.advancing = false
		report(PanicInfo{Slot: s.current, Value: v})
		panic(v)
	}
}

// Run is the main loop. It returns only when ctx is done; on bare metal it
// is called with a context that never is.
//
// The core idles only after a round in which no task progressed and nothing
// was signaled. After each wake the signal words are taken again; a wake that
// finds nothing pending idles again without running a round.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		r := s.Round()
		if s.obs != nil {
			s.obs.Round(r)
		}
		if !r.Idle {
			continue
		}

		for s.next.Empty() {
			if err := ctx.Err(); err != nil {
				return err
			}
			s.stats.Idles++
			s.idler.Idle()
			s.next |= s.take()
			if s.next.Empty() {
				s.stats.SpuriousWakes++
			}
		}
	}
}
