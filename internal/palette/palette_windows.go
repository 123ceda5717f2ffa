//go:build windows

package palette

import (
	"io"

	"github.com/muesli/termenv"
)

// enableColor turns on virtual terminal processing so the console
// interprets escape sequences. Consoles that refuse fall back to plain text.
func enableColor(w io.Writer) bool {
	if _, err := termenv.EnableVirtualTerminalProcessing(termenv.NewOutput(w)); err != nil {
		return false
	}
	return true
}
