// Package terminal inspects the process's terminal.
package terminal

import (
	"io"
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// fd returns the descriptor behind w when w is an open file.
func fd(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return 0, false
	}
	return int(f.Fd()), true
}

// Size returns the width and height of the terminal w writes to, or the
// defaults when w is not a terminal.
func Size(w io.Writer) (width, height int) {
	if d, ok := fd(w); ok {
		if width, height, err := term.GetSize(d); err == nil {
			return width, height
		}
	}
	return DefaultWidth, DefaultHeight
}

func Width(w io.Writer) int {
	width, _ := Size(w)
	return width
}

// IsInteractive reports whether w is attached to a terminal.
func IsInteractive(w io.Writer) bool {
	d, ok := fd(w)
	return ok && term.IsTerminal(d)
}

// ColorsWanted reports whether coloured output should go to w. NO_COLOR
// and the disabled flag both turn it off.
func ColorsWanted(w io.Writer, disabled bool) bool {
	if disabled {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return IsInteractive(w)
}
