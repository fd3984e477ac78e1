package hal

// pendCPU models the interrupt-pending latch of a core.
//
// On TinyGo bare metal a goroutine blocked in Idle lets the runtime sleep the
// core until the timer or UART goroutine pends; on host it parks the
// scheduler goroutine.
type pendCPU struct {
	pend chan struct{}
}

// NewCPU returns a CPU whose Idle returns once per batch of Pend calls.
func NewCPU() CPU {
	return &pendCPU{pend: make(chan struct{}, 1)}
}

func (c *pendCPU) Idle() { <-c.pend }

func (c *pendCPU) Pend() {
	select {
	case c.pend <- struct{}{}:
	default:
	}
}

type nullLights struct{}

func (nullLights) Show(uint8) {}
