package kernel

import (
	"math/bits"
	"strconv"
)

// MaxSlots is the size of the task table.
const MaxSlots = 8

// MaxEvents is the number of routable interrupt lines.
const MaxEvents = 32

// Slot identifies a task table entry.
type Slot uint8

// Event identifies an interrupt line that tasks can await.
type Event uint8

// Mask is a set of slots (or events), bit i for index i.
type Mask uint32

// Bit returns the mask holding only s.
func Bit(s Slot) Mask { return 1 << s }

// All returns the mask of the first n slots.
func All(n int) Mask {
	if n >= 32 {
		return ^Mask(0)
	}
	return Mask(1)<<uint(n) - 1
}

func (m Mask) Has(s Slot) bool { return m&Bit(s) != 0 }
func (m Mask) Empty() bool     { return m == 0 }
func (m Mask) Count() int      { return bits.OnesCount32(uint32(m)) }

// Lowest returns the lowest slot in m and the mask without it.
func (m Mask) Lowest() (Slot, Mask, bool) {
	if m == 0 {
		return 0, 0, false
	}
	s := Slot(bits.TrailingZeros32(uint32(m)))
	return s, m &^ Bit(s), true
}

// String formats m as a set, e.g. "{0,3}".
func (m Mask) String() string {
	buf := make([]byte, 0, 2+3*m.Count())
	buf = append(buf, '{')
	first := true
	for rest := m; ; {
		s, next, ok := rest.Lowest()
		if !ok {
			break
		}
		if !first {
			buf = append(buf, ',')
		}
		first = false
		buf = strconv.AppendUint(buf, uint64(s), 10)
		rest = next
	}
	buf = append(buf, '}')
	return string(buf)
}

// Outcome is the result of one advance.
type Outcome uint8

const (
	// Suspended means the task yielded and waits to be signaled.
	Suspended Outcome = iota
	// Progressed means the task did work and is reconsidered next round.
	Progressed
)

func (o Outcome) String() string {
	switch o {
	case Suspended:
		return "suspended"
	case Progressed:
		return "progressed"
	default:
		return "unknown"
	}
}
