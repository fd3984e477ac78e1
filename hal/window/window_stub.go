//go:build !tinygo && !cgo

package window

import (
	"context"

	"pulse/hal"
)

type Config struct {
	Title string
	Scale int
}

func Run(_ context.Context, _ Config, _ *hal.Panel, _ func(context.Context) error) error {
	return ErrUnavailable
}
