package terminal

import (
	"bufio"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Dicklesworthstone/hostmon/internal/errors"
)

// Keys is a line-oriented input that can be waited on with a deadline.
type Keys interface {
	// Poll waits up to timeout for a complete input line. ok is false when
	// the timeout elapses first.
	Poll(timeout time.Duration) (line string, ok bool, err error)
}

// Input reads lines from the terminal. A single buffered reader serves both
// the blocking menu prompts and the monitoring poll so no typed input is lost
// between them.
type Input struct {
	r  *bufio.Reader
	fd uintptr
	// pollable is false for readers without a file descriptor; Poll then
	// degrades to a blocking read.
	pollable bool
}

// NewInput reads from f, polling its file descriptor.
func NewInput(f *os.File) *Input {
	return &Input{r: bufio.NewReader(f), fd: f.Fd(), pollable: true}
}

// NewReaderInput reads from r without deadline support.
func NewReaderInput(r io.Reader) *Input {
	return &Input{r: bufio.NewReader(r)}
}

// ReadLine blocks until a line is available and returns it without the
// trailing newline. A final unterminated line is returned with a nil error;
// io.EOF is returned only when nothing was read.
func (in *Input) ReadLine() (string, error) {
	line, err := in.r.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if err == io.EOF {
			return "", io.EOF
		}
		return "", errors.WrapWithCode(err, errors.ErrInput,
			"Failed to read from standard input", "")
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Poll implements Keys.
func (in *Input) Poll(timeout time.Duration) (string, bool, error) {
	if in.pollable && in.r.Buffered() == 0 {
		ready, err := waitReadable(in.fd, timeout)
		if err != nil {
			return "", false, errors.WrapWithCode(err, errors.ErrInput,
				"Failed to poll standard input", "")
		}
		if !ready {
			return "", false, nil
		}
	}
	line, err := in.ReadLine()
	if err != nil {
		return "", false, err
	}
	return line, true, nil
}
