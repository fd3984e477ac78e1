//go:build !tinygo

package app

// On host the panic unwinds to the caller after it is logged.
const haltOnPanic = false
