//go:build race

// Package race reports whether the binary was built with the race
// detector and exposes its error count.
package race

import "runtime"

// Enabled represents the -race is enabled or not.
const Enabled = true

// Errors returns the number of races reported so far.
func Errors() int { return runtime.RaceErrors() }
