package backend

import (
	"os"

	"golang.org/x/term"
)

// Fallback terminal size when detection fails.
const (
	FallbackWidth  = 80
	FallbackHeight = 24
)

// DetectSize probes the controlling terminal on stdout. Any failure, or a
// non-terminal stdout, yields 80x24.
func DetectSize() (width, height int) {
	return detectSize(int(os.Stdout.Fd()))
}

func detectSize(fd int) (width, height int) {
	if !term.IsTerminal(fd) {
		return FallbackWidth, FallbackHeight
	}
	w, h, err := term.GetSize(fd)
	if err != nil || w <= 0 || h <= 0 {
		return FallbackWidth, FallbackHeight
	}
	return w, h
}
