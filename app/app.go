package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"pulse/hal"
	"pulse/internal/buildinfo"
	"pulse/kernel"
	"pulse/services/logger"
	"pulse/tasks/beacon"
	"pulse/tasks/blink"
	"pulse/tasks/console"
	"pulse/tasks/lights"
	"pulse/tasks/pingpong"
)

// Slot assignments. Every slot is populated before the first round.
const (
	SlotT1 kernel.Slot = iota
	SlotT2
	SlotBlink
	SlotPing
	SlotPong
	SlotConsole
	SlotLogger
	SlotLights
)

// Interrupt lines raised by the timer handler.
const (
	// EvTick is raised on every timer interrupt.
	EvTick kernel.Event = iota
	// EvTick2 is raised on every second timer interrupt.
	EvTick2
)

// rxPoll is how often the RX source polls a non-blocking serial port.
const rxPoll = 10 * time.Millisecond

// Config selects demo parameters.
type Config struct {
	BlinkEvery     uint32
	Volleys        uint32
	StopAfterTicks uint64
	SerialRX       bool
	Observer       kernel.Observer
}

// DefaultConfig returns the demo defaults.
func DefaultConfig() Config {
	return Config{BlinkEvery: 1, Volleys: 3, SerialRX: true}
}

// System is the scheduler plus the task instances the interrupt handlers
// talk to.
type System struct {
	Sched *kernel.Scheduler

	h       hal.HAL
	cfg     Config
	console *console.Task
	ticks   uint64
}

// ErrConfig reports a Config the demo cannot run with.
var ErrConfig = errors.New("app: bad config")

// New builds the eight-task system. The halt handler is installed first, so
// a configuration error escalated with kernel.Halt is reported like any
// other halt.
func New(h hal.HAL, cfg Config) (*System, error) {
	installPanicHandler(h)
	if cfg.BlinkEvery == 0 || cfg.Volleys == 0 {
		return nil, fmt.Errorf("%w: blink every %d, volleys %d", ErrConfig, cfg.BlinkEvery, cfg.Volleys)
	}

	log := logger.New(h.Logger(), SlotLogger)
	ping, pong := pingpong.New(SlotPing, SlotPong, EvTick2, cfg.Volleys, log)
	con := console.New(log)

	tasks := []kernel.Task{
		SlotT1:      beacon.NewMachine("T1", EvTick, log),
		SlotT2:      beacon.NewCoroutine("T2", EvTick2, log),
		SlotBlink:   blink.New(h.LED(), EvTick, cfg.BlinkEvery),
		SlotPing:    ping,
		SlotPong:    pong,
		SlotConsole: con,
		SlotLogger:  log,
		SlotLights:  lights.New(h.Lights(), EvTick),
	}

	opts := []kernel.Option{kernel.WithIdler(h.CPU())}
	if cfg.Observer != nil {
		opts = append(opts, kernel.WithObserver(cfg.Observer))
	}
	sched, err := kernel.New(tasks, opts...)
	if err != nil {
		return nil, err
	}

	return &System{Sched: sched, h: h, cfg: cfg, console: con}, nil
}

// Tick is the timer interrupt handler.
func (s *System) Tick(seq uint64) {
	s.Sched.Raise(EvTick)
	if seq%2 == 0 {
		s.Sched.Raise(EvTick2)
	}
	s.h.CPU().Pend()
}

// Receive is the UART RX interrupt handler.
func (s *System) Receive(b []byte) {
	if len(b) == 0 {
		return
	}
	s.console.Feed(b)
	s.Sched.Signal(SlotConsole)
	s.h.CPU().Pend()
}

// Run starts the interrupt sources and the scheduler loop. It returns when
// ctx is done or after Config.StopAfterTicks timer interrupts. Nothing it
// started touches the scheduler after it returns.
func (s *System) Run(ctx context.Context) error {
	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.h.Logger().WriteLineString("pulse " + buildinfo.Short() + ": scheduler up")

	g, ctx := errgroup.WithContext(ctx)
	if s.cfg.SerialRX && s.h.Serial() != nil {
		chunks := make(chan rxChunk)
		go readSerial(ctx, s.h.Serial(), chunks)
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case c, ok := <-chunks:
					if !ok {
						return nil
					}
					s.Receive(c.data[:c.n])
				}
			}
		})
	}
	g.Go(func() error {
		ticks := s.h.Time().Ticks()
		for {
			select {
			case <-ctx.Done():
				// Wake the core so the loop sees the cancellation.
				s.h.CPU().Pend()
				return nil
			case seq := <-ticks:
				s.Tick(seq)
				s.ticks++
				if s.cfg.StopAfterTicks > 0 && s.ticks >= s.cfg.StopAfterTicks {
					cancel()
				}
			}
		}
	})
	g.Go(func() error {
		return s.Sched.Run(ctx)
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) && parent.Err() == nil {
		return nil
	}
	return err
}

// RunForever is the bare-metal entry point. A configuration error halts.
func RunForever(h hal.HAL, cfg Config) {
	sys, err := New(h, cfg)
	if err != nil {
		kernel.Halt(kernel.PanicInfo{Slot: kernel.NoSlot, Value: err})
	}
	_ = sys.Run(context.Background())
}

type rxChunk struct {
	n    int
	data [kernel.MaxMessageBytes]byte
}

// readSerial copies port input to out until ctx is done or the port fails,
// then closes out. It only ever touches out, so it may stay blocked in Read
// after Run has returned (host stdin cannot be interrupted).
func readSerial(ctx context.Context, port hal.Serial, out chan<- rxChunk) {
	defer close(out)
	for ctx.Err() == nil {
		var c rxChunk
		n, err := port.Read(c.data[:])
		if n > 0 {
			c.n = n
			select {
			case out <- c:
			case <-ctx.Done():
				return
			}
		}
		if err != nil {
			// EOF or no RX on this HAL.
			return
		}
		if n == 0 {
			time.Sleep(rxPoll)
		}
	}
}
