package kernel

import "fmt"

type handoff struct {
	out      Outcome
	panicked bool
	value    any
	returned bool
}

// Yielder is the body's handle to its coroutine.
type Yielder struct {
	ctx    *Context
	resume chan *Context
	yield  chan handoff
}

// Context returns the context of the advance currently running the body.
func (y *Yielder) Context() *Context { return y.ctx }

// Suspend ends the current advance as Suspended. It returns when the
// scheduler advances the task again.
func (y *Yielder) Suspend() { y.park(Suspended) }

// Progress ends the current advance as Progressed. It returns in the next
// round.
func (y *Yielder) Progress() { y.park(Progressed) }

func (y *Yielder) park(out Outcome) {
	y.yield <- handoff{out: out}
	y.ctx = <-y.resume
}

// Coroutine runs a body function on its own goroutine, handing control back
// and forth with the scheduler so exactly one side runs at a time. Local
// variables of the body survive every suspension.
//
// Machine is the heap-free equivalent.
type Coroutine struct {
	body    func(*Yielder)
	y       Yielder
	started bool
}

// NewCoroutine returns a coroutine that starts body on its first advance.
// The body must never return.
func NewCoroutine(body func(*Yielder)) *Coroutine {
	return &Coroutine{
		body: body,
		y: Yielder{
			resume: make(chan *Context),
			yield:  make(chan handoff),
		},
	}
}

func (co *Coroutine) Advance(c *Context) Outcome {
	if !co.started {
		co.started = true
		co.y.ctx = c
		go co.run()
	} else {
		co.y.resume <- c
	}

	h := <-co.y.yield
	switch {
	case h.panicked:
		panic(h.value)
	case h.returned:
		Halt(PanicInfo{Slot: c.Slot(), Value: fmt.Errorf("slot %d: %w", c.Slot(), ErrTaskReturned)})
	}
	return h.out
}

func (co *Coroutine) run() {
	defer func() {
		if v := recover(); v != nil {
			co.y.yield <- handoff{panicked: true, value: v}
			return
		}
		co.y.yield <- handoff{returned: true}
	}()
	co.body(&co.y)
}
