package kernel

import (
	"errors"
	"fmt"
)

var (
	ErrSlotCount     = errors.New("kernel: slot count out of range")
	ErrTaskCount     = errors.New("kernel: task count does not match slot count")
	ErrNilTask       = errors.New("kernel: unpopulated slot")
	ErrSlotRange     = errors.New("kernel: slot index out of range")
	ErrEventRange    = errors.New("kernel: event index out of range")
	ErrTaskReturned  = errors.New("kernel: task body returned")
	ErrStateRange    = errors.New("kernel: machine state out of range")
	errWordBitsRange = errors.New("kernel: signal bit out of range")
)

func errSlot(s Slot, n int) error {
	return fmt.Errorf("signal slot %d (have %d): %w", s, n, ErrSlotRange)
}

func errEvent(ev Event) error {
	return fmt.Errorf("event %d (max %d): %w", ev, MaxEvents, ErrEventRange)
}

func errBitRange(i uint8) error {
	return fmt.Errorf("bit %d: %w", i, errWordBitsRange)
}
