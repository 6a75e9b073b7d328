// Package term holds the escape sequences the animatrix logger and banner
// splice into their output, and decides whether stdout gets them at all.
// With colors off every sequence is "", so callers concatenate freely.
package term

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/backmassage/animatrix/internal/config"
)

// Escape sequences per log level: Blue info, Green success, Yellow warn,
// Red error, Magenta render, Cyan debug.
var (
	Red     = ""
	Green   = ""
	Yellow  = ""
	Blue    = ""
	Cyan    = ""
	Magenta = ""
	NC      = "" // Reset sequence.
)

// Configure switches the sequences on or off for mode. The logger calls
// it when it is built; library renders with the discard logger never do,
// so they stay plain.
func Configure(mode config.ColorMode) {
	if resolve(mode) {
		Red = "\033[1;91m"
		Green = "\033[1;92m"
		Yellow = "\033[1;93m"
		Blue = "\033[1;94m"
		Cyan = "\033[1;96m"
		Magenta = "\033[1;95m"
		NC = "\033[0m"
	} else {
		Red, Green, Yellow, Blue, Cyan, Magenta, NC = "", "", "", "", "", "", ""
	}
}

// Enabled reports whether the sequences are non-empty.
func Enabled() bool { return NC != "" }

// resolve maps mode to on/off. Auto needs a terminal on stdout, no
// NO_COLOR (https://no-color.org) and a TERM other than "dumb", so piping
// `animatrix render` into a file keeps the log readable.
func resolve(mode config.ColorMode) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default: // ColorAuto
		return IsTerminal(os.Stdout) &&
			os.Getenv("NO_COLOR") == "" &&
			strings.ToLower(os.Getenv("TERM")) != "dumb"
	}
}

// IsTerminal reports whether f is a terminal, Cygwin/MSYS ptys included.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
