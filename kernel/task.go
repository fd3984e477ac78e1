package kernel

// Task is a cooperative unit of execution that never terminates.
//
// Advance must not block. A task with nothing to do returns Suspended and is
// advanced again only after its slot has been signaled.
type Task interface {
	Advance(*Context) Outcome
}

// TaskFunc adapts a poll-style function to Task.
//
// The function re-evaluates its readiness from scratch on every call; any
// state it needs across calls lives in variables it closes over.
type TaskFunc func(*Context) Outcome

func (f TaskFunc) Advance(c *Context) Outcome { return f(c) }

// Context gives a task access to the scheduler while it is being advanced.
type Context struct {
	s    *Scheduler
	slot Slot
}

// Slot returns the slot of the task being advanced.
func (c *Context) Slot() Slot {
	if c == nil {
		return NoSlot
	}
	return c.slot
}

// Round returns the sequence number of the current round.
func (c *Context) Round() uint64 {
	if c == nil || c.s == nil {
		return 0
	}
	return c.s.seq
}

// Signal wakes slot to in the next round. It may name the calling task.
func (c *Context) Signal(to Slot) {
	if c == nil || c.s == nil {
		return
	}
	c.s.Signal(to)
}

// Await routes the next raise of ev to the calling task.
//
// The route is consumed when the event is delivered; a task that wants
// every raise awaits again before suspending.
func (c *Context) Await(ev Event) {
	if c == nil || c.s == nil {
		return
	}
	c.s.route(ev, c.slot)
}

// Stats returns the scheduler counters as of the start of this advance.
func (c *Context) Stats() Stats {
	if c == nil || c.s == nil {
		return Stats{}
	}
	return c.s.stats
}
