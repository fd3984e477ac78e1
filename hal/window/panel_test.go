package window

import (
	"testing"

	"pulse/kernel"
)

func centerOf(s kernel.Slot) (int, int) {
	r := SlotRect(s)
	return (r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2
}

func TestRenderLightsSlots(t *testing.T) {
	frame := NewFrame()
	Render(frame, 0b1000_0101, true)

	for s := kernel.Slot(0); s < kernel.MaxSlots; s++ {
		want := slotOff
		if s == 0 || s == 2 || s == 7 {
			want = slotOn
		}
		x, y := centerOf(s)
		if got := frame.RGBAAt(x, y); got != want {
			t.Fatalf("slot %d = %v, want %v", s, got, want)
		}
	}
	led := LEDRect()
	if got := frame.RGBAAt(led.Min.X+1, led.Min.Y+1); got != ledOn {
		t.Fatalf("LED = %v, want %v", got, ledOn)
	}
	if got := frame.RGBAAt(0, 0); got != background {
		t.Fatalf("corner = %v, want background", got)
	}
}

func TestRenderRedrawsWholeFrame(t *testing.T) {
	frame := NewFrame()
	Render(frame, 0xFF, true)
	Render(frame, 0, false)

	x, y := centerOf(3)
	if got := frame.RGBAAt(x, y); got != slotOff {
		t.Fatalf("slot 3 = %v, want off", got)
	}
	led := LEDRect()
	if got := frame.RGBAAt(led.Max.X-1, led.Max.Y-1); got != ledOff {
		t.Fatalf("LED = %v, want off", got)
	}
}

func TestLayoutFits(t *testing.T) {
	last := SlotRect(kernel.MaxSlots - 1)
	led := LEDRect()
	if last.Max.X+ledGap != led.Min.X {
		t.Fatalf("LED starts at %d, want %d", led.Min.X, last.Max.X+ledGap)
	}
	if led.Max.X+margin != Width || led.Max.Y+margin != Height {
		t.Fatalf("LED %v does not end a margin from the %dx%d frame", led, Width, Height)
	}
}
