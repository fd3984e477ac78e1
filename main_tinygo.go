//go:build tinygo

package main

import (
	"pulse/app"
	"pulse/hal"
)

func main() {
	app.RunForever(hal.New(), app.DefaultConfig())
}
