//go:build tinygo

package app

const haltOnPanic = true
