package kernel

import "fmt"

// State is a resume point of a Machine.
type State uint8

// Resume tells a Machine where to continue and what the advance reports.
type Resume struct {
	next State
	out  Outcome
	jump bool
}

// Yield suspends the task; it continues at next once woken.
func Yield(next State) Resume { return Resume{next: next, out: Suspended} }

// Progress reports progress; the task continues at next in the following round.
func Progress(next State) Resume { return Resume{next: next, out: Progressed} }

// Goto continues at next within the same advance.
func Goto(next State) Resume { return Resume{next: next, jump: true} }

// Step is the code between two resume points. Locals that must survive a
// suspension live in *L, not on the Go stack.
type Step[L any] func(c *Context, l *L) Resume

// Machine is a heap-free coroutine: each suspension point is a State, the
// saved locals are L, and resuming is a dispatch on the saved State.
type Machine[L any] struct {
	state  State
	Locals L
	steps  []Step[L]
}

// NewMachine returns a machine that starts at state 0.
func NewMachine[L any](locals L, steps ...Step[L]) *Machine[L] {
	return &Machine[L]{Locals: locals, steps: steps}
}

// State returns the resume point of the next advance.
func (m *Machine[L]) State() State { return m.state }

func (m *Machine[L]) Advance(c *Context) Outcome {
	// A chain of Gotos longer than the table is a loop with no suspension
	// point; it is cut and reported as progress.
	for hops := 0; hops <= len(m.steps); hops++ {
		if int(m.state) >= len(m.steps) {
			Halt(PanicInfo{
				Slot:  c.Slot(),
				Value: fmt.Errorf("state %d of %d: %w", m.state, len(m.steps), ErrStateRange),
			})
		}
		r := m.steps[m.state](c, &m.Locals)
		m.state = r.next
		if !r.jump {
			return r.out
		}
	}
	return Progressed
}
