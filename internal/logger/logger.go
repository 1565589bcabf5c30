package logger

import (
	"github.com/fatih/color"
)

// Info prints progress and success messages in green.
var Info = color.New(color.FgGreen).PrintfFunc()

// Warn prints non-fatal problems in bright magenta.
var Warn = color.New(color.FgHiMagenta).PrintfFunc()

// Error prints failures in red.
var Error = color.New(color.FgRed).PrintfFunc()

// Debug prints in cyan once enabled with Init. It is a no-op otherwise.
var Debug = func(format string, a ...any) {}

// Init switches debug output on or off.
func Init(enableDebug bool) {
	if enableDebug {
		Debug = color.New(color.FgCyan).PrintfFunc()
		return
	}
	Debug = func(format string, a ...any) {}
}
