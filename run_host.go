//go:build !tinygo

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"fortio.org/safecast"
	"github.com/spf13/cobra"

	"pulse/app"
	"pulse/hal"
	"pulse/hal/window"
	"pulse/internal/buildinfo"
	"pulse/internal/config"
	"pulse/internal/logging"
	"pulse/internal/trace"
	"pulse/kernel"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the demo system",
	Long: `run starts the eight-slot system. By default a window shows one light per
slot and the LED; with --headless those changes are printed to stdout.`,
	Args: cobra.NoArgs,
	RunE: runSystem,
}

func init() {
	f := runCmd.Flags()
	f.String("config", "", "TOML configuration file")
	f.Duration("tick", 0, "timer interrupt period (overrides [tick].period)")
	f.Uint64("ticks", 0, "stop after N timer interrupts, 0 runs until interrupted")
	f.String("trace", "", "record every round to this msgpack file")
	f.Bool("trace-rounds", false, "log every round (raises the log level to debug)")
	f.Bool("no-serial", false, "do not read stdin as UART input")
	f.Bool("headless", false, "run without the front-panel window")
	f.Int("scale", 0, "window scale factor (overrides [window].scale)")
	f.String("log-level", "", "diagnostic log level (debug|info|warn|error)")
	f.String("log-format", "", "diagnostic log format (text|json)")
}

func loadRunConfig(cmd *cobra.Command) (config.Config, error) {
	f := cmd.Flags()
	cfg := config.Default()
	if path, _ := f.GetString("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return config.Config{}, err
		}
	}

	if f.Changed("tick") {
		d, _ := f.GetDuration("tick")
		cfg.Tick.Period = d.String()
	}
	if f.Changed("ticks") {
		n, _ := f.GetUint64("ticks")
		stop, err := safecast.Conv[int64](n)
		if err != nil {
			return config.Config{}, fmt.Errorf("--ticks: %w", err)
		}
		cfg.Tick.Stop = stop
	}
	if f.Changed("trace") {
		cfg.Trace.Path, _ = f.GetString("trace")
	}
	if f.Changed("trace-rounds") {
		cfg.Trace.Rounds, _ = f.GetBool("trace-rounds")
	}
	if f.Changed("no-serial") {
		off, _ := f.GetBool("no-serial")
		cfg.Serial.Enabled = !off
	}
	if f.Changed("headless") {
		cfg.Window.Headless, _ = f.GetBool("headless")
	}
	if f.Changed("scale") {
		scale, _ := f.GetInt("scale")
		cfg.Window.Scale = int64(scale)
	}
	if f.Changed("log-level") {
		cfg.Log.Level, _ = f.GetString("log-level")
	}
	if f.Changed("log-format") {
		cfg.Log.Format, _ = f.GetString("log-format")
	}
	return cfg, cfg.Validate()
}

// logLevel is the configured level, lowered to debug when rounds are traced
// so the round lines are not filtered out.
func logLevel(cfg config.Config) slog.Level {
	level := logging.ParseLevel(cfg.Log.Level)
	if cfg.Trace.Rounds && level > slog.LevelDebug {
		level = slog.LevelDebug
	}
	return level
}

// createTrace opens the round trace file.
var createTrace = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

// traceFile buffers the recorder's output. Close flushes and closes once and
// keeps the first error.
type traceFile struct {
	*bufio.Writer
	c      io.Closer
	closed bool
	err    error
}

func openTrace(path string) (*traceFile, error) {
	wc, err := createTrace(path)
	if err != nil {
		return nil, fmt.Errorf("trace: %w", err)
	}
	return &traceFile{Writer: bufio.NewWriter(wc), c: wc}, nil
}

func (t *traceFile) Close() error {
	if t.closed {
		return t.err
	}
	t.closed = true
	if err := t.Flush(); err != nil {
		t.err = fmt.Errorf("trace: %w", err)
	}
	if err := t.c.Close(); err != nil && t.err == nil {
		t.err = fmt.Errorf("trace: %w", err)
	}
	return t.err
}

func runSystem(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}
	logger := logging.NewLoggerWithWriter(logLevel(cfg), cfg.Log.Format, cmd.ErrOrStderr())

	period, err := cfg.TickPeriod()
	if err != nil {
		return err
	}
	appCfg, err := cfg.App()
	if err != nil {
		return err
	}
	scale, err := cfg.WindowScale()
	if err != nil {
		return err
	}

	var observers []kernel.Observer
	if cfg.Trace.Rounds {
		observers = append(observers, trace.Log(logger))
	}
	var (
		rec  *trace.Recorder
		sink *traceFile
	)
	if cfg.Trace.Path != "" {
		if sink, err = openTrace(cfg.Trace.Path); err != nil {
			return err
		}
		defer sink.Close()
		rec = trace.NewRecorder(sink)
		observers = append(observers, rec)
	}
	appCfg.Observer = trace.Multi(observers...)

	var in io.Reader
	if cfg.Serial.Enabled {
		in = cmd.InOrStdin()
	}
	panel := &hal.Panel{}
	h := hal.NewHost(hal.HostConfig{TickPeriod: period, Out: cmd.OutOrStdout(), In: in, Panel: panel})

	sys, err := app.New(h, appCfg)
	if err != nil {
		return err
	}
	logger.Info("starting",
		"slots", sys.Sched.Slots(),
		"tick", period,
		"stop_after", appCfg.StopAfterTicks,
		"headless", cfg.Window.Headless,
	)

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	defer stop()

	if cfg.Window.Headless {
		err = sys.Run(ctx)
	} else {
		wcfg := window.Config{Title: "pulse (" + buildinfo.Short() + ")", Scale: scale}
		err = window.Run(ctx, wcfg, panel, sys.Run)
		if errors.Is(err, window.ErrUnavailable) {
			logger.Warn("window unavailable, running headless", "err", err)
			err = sys.Run(ctx)
		}
	}
	trace.LogStats(logger, sys.Sched.Stats())
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	if err != nil {
		return err
	}
	if sink != nil {
		if err := rec.Err(); err != nil {
			return err
		}
		if err := sink.Close(); err != nil {
			return err
		}
		logger.Info("trace written", "path", cfg.Trace.Path, "rounds", rec.Rounds())
	}
	return nil
}
