// Package config loads the host run configuration from a TOML file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"

	"pulse/app"
	"pulse/hal"
)

var (
	ErrUnknownKey = errors.New("unknown key")
	ErrBadValue   = errors.New("bad value")
)

// Config mirrors pulse.toml. Integer fields are wide on purpose so that a
// negative or oversized value is reported instead of wrapped.
type Config struct {
	Tick     TickConfig     `toml:"tick"`
	Blink    BlinkConfig    `toml:"blink"`
	PingPong PingPongConfig `toml:"pingpong"`
	Serial   SerialConfig   `toml:"serial"`
	Log      LogConfig      `toml:"log"`
	Trace    TraceConfig    `toml:"trace"`
	Window   WindowConfig   `toml:"window"`
}

type TickConfig struct {
	Period string `toml:"period"`
	// Stop ends the run after this many timer interrupts; 0 runs forever.
	Stop int64 `toml:"stop"`
}

type BlinkConfig struct {
	Every int64 `toml:"every"`
}

type PingPongConfig struct {
	Volleys int64 `toml:"volleys"`
}

type SerialConfig struct {
	Enabled bool `toml:"enabled"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type TraceConfig struct {
	// Path receives a msgpack round trace when set.
	Path   string `toml:"path"`
	Rounds bool   `toml:"rounds"`
}

// WindowConfig selects the front-panel window. Headless runs print the
// panel changes as lines instead.
type WindowConfig struct {
	Headless bool  `toml:"headless"`
	Scale    int64 `toml:"scale"`
}

const maxWindowScale = 8

// Default returns the configuration used when no file is given.
func Default() Config {
	d := app.DefaultConfig()
	return Config{
		Tick:     TickConfig{Period: hal.DefaultTickPeriod.String()},
		Blink:    BlinkConfig{Every: int64(d.BlinkEvery)},
		PingPong: PingPongConfig{Volleys: int64(d.Volleys)},
		Serial:   SerialConfig{Enabled: d.SerialRX},
		Log:      LogConfig{Level: "info", Format: "text"},
		Window:   WindowConfig{Scale: 2},
	}
}

// Load reads path on top of Default. Keys missing from the file keep their
// default; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: %w: %s", path, ErrUnknownKey, strings.Join(keys, ", "))
	}
	if meta.IsDefined("tick", "period") && strings.TrimSpace(cfg.Tick.Period) == "" {
		return Config{}, fmt.Errorf("%s: %w: empty [tick].period", path, ErrBadValue)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every field without building anything.
func (c Config) Validate() error {
	if _, err := c.TickPeriod(); err != nil {
		return err
	}
	if _, err := c.WindowScale(); err != nil {
		return err
	}
	_, err := c.App()
	return err
}

// WindowScale converts [window].scale.
func (c Config) WindowScale() (int, error) {
	scale, err := safecast.Conv[int](c.Window.Scale)
	if err != nil || scale < 1 || scale > maxWindowScale {
		return 0, fmt.Errorf("%w: [window].scale = %d, want 1..%d", ErrBadValue, c.Window.Scale, maxWindowScale)
	}
	return scale, nil
}

// TickPeriod parses [tick].period.
func (c Config) TickPeriod() (time.Duration, error) {
	d, err := time.ParseDuration(c.Tick.Period)
	if err != nil {
		return 0, fmt.Errorf("%w: [tick].period: %w", ErrBadValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: [tick].period must be positive, got %s", ErrBadValue, d)
	}
	return d, nil
}

// App converts the file values to app.Config.
func (c Config) App() (app.Config, error) {
	every, err := safecast.Conv[uint32](c.Blink.Every)
	if err != nil || every == 0 {
		return app.Config{}, fmt.Errorf("%w: [blink].every = %d", ErrBadValue, c.Blink.Every)
	}
	volleys, err := safecast.Conv[uint32](c.PingPong.Volleys)
	if err != nil || volleys == 0 {
		return app.Config{}, fmt.Errorf("%w: [pingpong].volleys = %d", ErrBadValue, c.PingPong.Volleys)
	}
	stop, err := safecast.Conv[uint64](c.Tick.Stop)
	if err != nil {
		return app.Config{}, fmt.Errorf("%w: [tick].stop = %d", ErrBadValue, c.Tick.Stop)
	}
	return app.Config{
		BlinkEvery:     every,
		Volleys:        volleys,
		StopAfterTicks: stop,
		SerialRX:       c.Serial.Enabled,
	}, nil
}
