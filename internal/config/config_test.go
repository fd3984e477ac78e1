package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pulse.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
	d, err := cfg.TickPeriod()
	if err != nil || d != time.Second {
		t.Fatalf("TickPeriod() = %v, %v, want 1s", d, err)
	}
	ac, err := cfg.App()
	if err != nil {
		t.Fatalf("App() error = %v", err)
	}
	if ac.BlinkEvery != 1 || ac.Volleys != 3 || ac.StopAfterTicks != 0 || !ac.SerialRX {
		t.Fatalf("App() = %+v, want demo defaults", ac)
	}
}

func TestLoadOverridesOnlyGivenKeys(t *testing.T) {
	path := writeFile(t, `
[tick]
period = "250ms"
stop = 20

[pingpong]
volleys = 5

[trace]
path = "run.trace"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if d, _ := cfg.TickPeriod(); d != 250*time.Millisecond {
		t.Fatalf("TickPeriod() = %v, want 250ms", d)
	}
	ac, err := cfg.App()
	if err != nil {
		t.Fatalf("App() error = %v", err)
	}
	if ac.StopAfterTicks != 20 || ac.Volleys != 5 {
		t.Fatalf("App() = %+v, want stop 20 and 5 volleys", ac)
	}
	if ac.BlinkEvery != 1 {
		t.Fatalf("BlinkEvery = %d, want default 1", ac.BlinkEvery)
	}
	if cfg.Log.Level != "info" || cfg.Trace.Path != "run.trace" {
		t.Fatalf("Log/Trace = %+v %+v", cfg.Log, cfg.Trace)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeFile(t, `
[tick]
perid = "1s"
`)
	if _, err := Load(path); !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("Load() error = %v, want ErrUnknownKey", err)
	}
}

func TestLoadRejectsNegativeCounts(t *testing.T) {
	path := writeFile(t, `
[blink]
every = -1
`)
	if _, err := Load(path); !errors.Is(err, ErrBadValue) {
		t.Fatalf("Load() error = %v, want ErrBadValue", err)
	}
}

func TestLoadRejectsOversizedCounts(t *testing.T) {
	path := writeFile(t, `
[pingpong]
volleys = 5000000000
`)
	if _, err := Load(path); !errors.Is(err, ErrBadValue) {
		t.Fatalf("Load() error = %v, want ErrBadValue", err)
	}
}

func TestLoadRejectsBadPeriod(t *testing.T) {
	for _, period := range []string{`"soon"`, `"-1s"`, `""`} {
		path := writeFile(t, "[tick]\nperiod = "+period+"\n")
		if _, err := Load(path); !errors.Is(err, ErrBadValue) {
			t.Fatalf("Load(period=%s) error = %v, want ErrBadValue", period, err)
		}
	}
}

func TestLoadReportsSyntaxErrors(t *testing.T) {
	path := writeFile(t, "[tick\n")
	if _, err := Load(path); err == nil {
		t.Fatal("Load() error = nil, want parse error")
	}
}

func TestLoadWindowSection(t *testing.T) {
	path := writeFile(t, "[window]\nheadless = true\nscale = 3\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Window.Headless {
		t.Fatal("Window.Headless = false, want true")
	}
	if scale, err := cfg.WindowScale(); err != nil || scale != 3 {
		t.Fatalf("WindowScale() = %d, %v; want 3", scale, err)
	}

	path = writeFile(t, "[window]\nscale = 0\n")
	if _, err := Load(path); !errors.Is(err, ErrBadValue) {
		t.Fatalf("Load(scale 0) error = %v, want ErrBadValue", err)
	}
}
