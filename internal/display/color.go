// Package display renders prayer schedules for the terminal with ANSI
// styling.
//
// Styling honors NO_COLOR (https://no-color.org/) and FORCE_COLOR, and is
// otherwise enabled only when stdout is a terminal.
package display

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
	fgGray = "\033[90m"
)

var enabled = shouldEnable(os.Stdout)

func shouldEnable(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if _, ok := os.LookupEnv("FORCE_COLOR"); ok {
		return true
	}
	return IsTerminal(w)
}

// IsTerminal reports whether w is a terminal, Cygwin and MSYS ptys included.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SetEnabled overrides the detected styling state, e.g. for --json output
// or tests.
func SetEnabled(b bool) {
	enabled = b
}

// Enabled reports whether styling is active.
func Enabled() bool {
	return enabled
}

// DetectFor re-evaluates styling for output written to w.
func DetectFor(w io.Writer) {
	enabled = shouldEnable(w)
}

func wrap(code, text string) string {
	if !enabled {
		return text
	}
	return code + text + reset
}

// Bold returns the text in bold.
func Bold(text string) string {
	return wrap(bold, text)
}

// Dim returns the text dimmed.
func Dim(text string) string {
	return wrap(dim, text)
}

// Green returns the text in green.
func Green(text string) string {
	return wrap(green, text)
}

// Yellow returns the text in yellow.
func Yellow(text string) string {
	return wrap(yellow, text)
}

// Cyan returns the text in cyan.
func Cyan(text string) string {
	return wrap(cyan, text)
}

// Gray returns the text in gray.
func Gray(text string) string {
	return wrap(fgGray, text)
}

// Accent marks the upcoming prayer (bold cyan).
func Accent(text string) string {
	if !enabled {
		return text
	}
	return bold + cyan + text + reset
}

// Boldf formats and bolds a string.
func Boldf(format string, a ...any) string {
	return Bold(fmt.Sprintf(format, a...))
}
