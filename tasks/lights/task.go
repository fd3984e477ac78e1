package lights

import (
	"pulse/hal"
	"pulse/kernel"
)

// Task lights the slots that were advanced since the previous raise of its
// line.
type Task struct {
	out  hal.Lights
	ev   kernel.Event
	last [kernel.MaxSlots]uint64
	bits uint8
}

func New(out hal.Lights, ev kernel.Event) *Task {
	return &Task{out: out, ev: ev}
}

// Bits returns the last pattern shown.
func (t *Task) Bits() uint8 { return t.bits }

func (t *Task) Advance(ctx *kernel.Context) kernel.Outcome {
	st := ctx.Stats()
	var bits uint8
	for i, n := range st.Advances {
		if n != t.last[i] {
			bits |= 1 << i
		}
		t.last[i] = n
	}
	t.bits = bits
	if t.out != nil {
		t.out.Show(bits)
	}
	ctx.Await(t.ev)
	return kernel.Suspended
}
