// Package window shows the front panel (one light per task slot plus the
// LED) in a desktop window while the system runs.
package window

import (
	"errors"
	"image"
	"image/color"
	"image/draw"

	"pulse/kernel"
)

// ErrUnavailable is returned by Run in builds without a window backend.
var ErrUnavailable = errors.New("window: not available in this build (needs cgo)")

// Panel geometry in unscaled pixels.
const (
	cell   = 24
	gap    = 8
	margin = 12
	// ledGap separates the LED from the slot bar.
	ledGap = 24

	Width  = 2*margin + kernel.MaxSlots*cell + (kernel.MaxSlots-1)*gap + ledGap + cell
	Height = 2*margin + cell
)

var (
	background = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	slotOff    = color.RGBA{R: 44, G: 44, B: 52, A: 255}
	slotOn     = color.RGBA{R: 0, G: 200, B: 90, A: 255}
	ledOff     = color.RGBA{R: 60, G: 20, B: 20, A: 255}
	ledOn      = color.RGBA{R: 255, G: 64, B: 40, A: 255}
)

// NewFrame returns a frame sized for Render.
func NewFrame() *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, Width, Height))
}

// SlotRect returns the square of slot s.
func SlotRect(s kernel.Slot) image.Rectangle {
	x := margin + int(s)*(cell+gap)
	return image.Rect(x, margin, x+cell, margin+cell)
}

// LEDRect returns the square of the LED.
func LEDRect() image.Rectangle {
	x := Width - margin - cell
	return image.Rect(x, margin, x+cell, margin+cell)
}

// Render draws the panel state into dst, which must come from NewFrame.
func Render(dst *image.RGBA, lights uint8, led bool) {
	fill(dst, dst.Bounds(), background)
	for s := kernel.Slot(0); s < kernel.MaxSlots; s++ {
		c := slotOff
		if lights&(1<<s) != 0 {
			c = slotOn
		}
		fill(dst, SlotRect(s), c)
	}
	if led {
		fill(dst, LEDRect(), ledOn)
	} else {
		fill(dst, LEDRect(), ledOff)
	}
}

func fill(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(dst, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
}
