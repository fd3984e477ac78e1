//go:build !tinygo && cgo

package window

import (
	"context"
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"pulse/hal"
)

// Config controls the window.
type Config struct {
	Title string
	// Scale multiplies the panel size; values below 1 mean 1.
	Scale int
}

// Run opens the window and calls run on its own goroutine with a context
// that is canceled when the window is closed. The window closes when run
// returns. Run returns the window error if there was one, else run's
// result.
//
// Run must be called from the main goroutine.
func Run(ctx context.Context, cfg Config, panel *hal.Panel, run func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	var runErr error
	go func() {
		defer close(done)
		runErr = run(ctx)
	}()

	if cfg.Scale < 1 {
		cfg.Scale = 1
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(Width*cfg.Scale, Height*cfg.Scale)
	ebiten.SetTPS(30)

	g := &panelGame{panel: panel, done: done, frame: NewFrame()}
	err := ebiten.RunGame(g)

	cancel()
	<-done
	if err != nil {
		return err
	}
	return runErr
}

type panelGame struct {
	panel *hal.Panel
	done  <-chan struct{}
	frame *image.RGBA
	tex   *ebiten.Image
}

func (g *panelGame) Update() error {
	select {
	case <-g.done:
		return ebiten.Termination
	default:
		return nil
	}
}

func (g *panelGame) Draw(screen *ebiten.Image) {
	if g.tex == nil {
		g.tex = ebiten.NewImage(Width, Height)
	}
	lights, led := g.panel.Snapshot()
	Render(g.frame, lights, led)
	g.tex.WritePixels(g.frame.Pix)
	screen.DrawImage(g.tex, nil)
}

func (g *panelGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return Width, Height
}
