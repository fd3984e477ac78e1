package blink

import (
	"pulse/hal"
	"pulse/kernel"
)

// Task toggles the LED every Every raises of its tick line.
//
// It is poll-style: every advance rebuilds what to do from its fields.
type Task struct {
	led   hal.LED
	ev    kernel.Event
	every uint32

	armed bool
	ticks uint32
	on    bool
}

func New(led hal.LED, ev kernel.Event, every uint32) *Task {
	if every == 0 {
		every = 1
	}
	return &Task{led: led, ev: ev, every: every}
}

// On reports the current LED level.
func (t *Task) On() bool { return t.on }

func (t *Task) Advance(ctx *kernel.Context) kernel.Outcome {
	defer ctx.Await(t.ev)

	if !t.armed {
		t.armed = true
		return kernel.Suspended
	}

	t.ticks++
	if t.ticks%t.every != 0 {
		return kernel.Suspended
	}
	t.on = !t.on
	if t.led == nil {
		return kernel.Suspended
	}
	if t.on {
		t.led.High()
	} else {
		t.led.Low()
	}
	return kernel.Suspended
}
