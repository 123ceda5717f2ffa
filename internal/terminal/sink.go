// Package terminal owns the process's terminal resources: the output sink
// frames are drawn to and the input line source the menu and monitoring
// loop read from.
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/Dicklesworthstone/hostmon/internal/errors"
)

// Sink is the output side of the terminal. Write errors are sticky: once a
// write fails every later call reports the same error.
type Sink struct {
	w   *stickyWriter
	out *termenv.Output
}

// NewSink wraps w. The caller keeps ownership of w and closes it, if needed,
// after the run ends.
func NewSink(w io.Writer) *Sink {
	sw := &stickyWriter{w: w}
	return &Sink{
		w:   sw,
		out: termenv.NewOutput(sw, termenv.WithProfile(termenv.Ascii)),
	}
}

// Writer exposes the sink as an io.Writer.
func (s *Sink) Writer() io.Writer { return s.w }

// Clear erases the screen and moves the cursor to the top-left corner.
func (s *Sink) Clear() error {
	s.out.ClearScreen()
	return s.Err()
}

// Frame clears the screen and writes lines from the origin.
func (s *Sink) Frame(lines []string) error {
	if err := s.Clear(); err != nil {
		return err
	}
	return s.Lines(lines...)
}

// Lines writes each line followed by a newline.
func (s *Sink) Lines(lines ...string) error {
	if len(lines) == 0 {
		return s.Err()
	}
	_, _ = io.WriteString(s.w, strings.Join(lines, "\n")+"\n")
	return s.Err()
}

// Printf writes formatted text.
func (s *Sink) Printf(format string, args ...any) error {
	_, _ = fmt.Fprintf(s.w, format, args...)
	return s.Err()
}

// Err returns the first write error, wrapped as a terminal error.
func (s *Sink) Err() error {
	if s.w.err == nil {
		return nil
	}
	return errors.WrapWithCode(s.w.err, errors.ErrTerminal,
		"Failed to write to the terminal",
		"The dashboard cannot continue without its output")
}

type stickyWriter struct {
	w   io.Writer
	err error
}

func (s *stickyWriter) Write(p []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	n, err := s.w.Write(p)
	if err != nil {
		s.err = err
	}
	return n, err
}
