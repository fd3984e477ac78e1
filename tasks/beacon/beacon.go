// Package beacon reports every raise of an interrupt line, once per wake.
//
// The same behavior is offered on both coroutine backends: NewMachine keeps
// its resume point and counter in a kernel.Machine, NewCoroutine keeps them
// on a goroutine stack.
package beacon

import (
	"strconv"

	"pulse/kernel"
	"pulse/services/logger"
)

const (
	stateArm kernel.State = iota
	stateWoken
)

type locals struct {
	name  string
	ev    kernel.Event
	out   *logger.Service
	count uint64
	buf   [kernel.MaxMessageBytes]byte
}

// NewMachine returns the heap-free flavor.
func NewMachine(name string, ev kernel.Event, out *logger.Service) *kernel.Machine[locals] {
	return kernel.NewMachine(locals{name: name, ev: ev, out: out},
		func(c *kernel.Context, l *locals) kernel.Resume {
			c.Await(l.ev)
			return kernel.Yield(stateWoken)
		},
		func(c *kernel.Context, l *locals) kernel.Resume {
			l.count++
			l.out.Post(c, format(l.buf[:0], l.name, l.count))
			c.Await(l.ev)
			return kernel.Yield(stateWoken)
		},
	)
}

// NewCoroutine returns the goroutine-backed flavor.
func NewCoroutine(name string, ev kernel.Event, out *logger.Service) *kernel.Coroutine {
	return kernel.NewCoroutine(func(y *kernel.Yielder) {
		var buf [kernel.MaxMessageBytes]byte
		var count uint64
		for {
			y.Context().Await(ev)
			y.Suspend()
			count++
			out.Post(y.Context(), format(buf[:0], name, count))
		}
	})
}

func format(dst []byte, name string, n uint64) []byte {
	dst = append(dst, name...)
	dst = append(dst, " #"...)
	return strconv.AppendUint(dst, n, 10)
}
