package terminal

import (
	"bytes"
	"io"
	"os"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dicklesworthstone/hostmon/internal/errors"
)

const clearHome = "\x1b[2J\x1b[1;1H"

func TestSinkFrame(t *testing.T) {
	var buf bytes.Buffer
	s := NewSink(&buf)

	require.NoError(t, s.Frame([]string{"CPU 1%", "RAM 2%"}))

	assert.Equal(t, clearHome+"CPU 1%\nRAM 2%\n", buf.String())
}

func TestSinkFrameEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewSink(&buf).Frame(nil))
	assert.Equal(t, clearHome, buf.String())
}

func TestSinkPrintf(t *testing.T) {
	var buf bytes.Buffer
	s := NewSink(&buf)

	require.NoError(t, s.Printf("%s %d\n", "a", 1))
	assert.Equal(t, "a 1\n", buf.String())
}

type failingWriter struct{ writes int }

func (f *failingWriter) Write(p []byte) (int, error) {
	f.writes++
	return 0, io.ErrClosedPipe
}

func TestSinkStickyError(t *testing.T) {
	fw := &failingWriter{}
	s := NewSink(fw)

	err := s.Frame([]string{"x"})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrTerminal))
	assert.ErrorIs(t, err, io.ErrClosedPipe)

	assert.Error(t, s.Lines("again"))
	assert.Equal(t, 1, fw.writes, "no writes after the first failure")
}

func TestReaderInputReadLine(t *testing.T) {
	in := NewReaderInput(strings.NewReader("1\r\n2\nlast"))

	for _, want := range []string{"1", "2", "last"} {
		got, err := in.ReadLine()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := in.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReaderInputPollReadsImmediately(t *testing.T) {
	in := NewReaderInput(strings.NewReader("q\n"))

	line, ok, err := in.Poll(time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "q", line)
}

func TestInputPollTimeoutAndReady(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("pipe handles are not waitable like console handles")
	}
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	in := NewInput(r)

	start := time.Now()
	_, ok, err := in.Poll(50 * time.Millisecond)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)

	_, err = w.WriteString("q\nnext\n")
	require.NoError(t, err)

	line, ok, err := in.Poll(time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "q", line)

	// The second line is already buffered, so Poll must not wait on the fd.
	line, ok, err = in.Poll(0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "next", line)
}

func TestInputPollEOF(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("pipe handles are not waitable like console handles")
	}
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	require.NoError(t, w.Close())

	_, ok, err := NewInput(r).Poll(time.Second)
	assert.False(t, ok)
	assert.ErrorIs(t, err, io.EOF)
}

func TestScanConsole(t *testing.T) {
	focus := consoleEvent{}
	resize := consoleEvent{}
	keyUp := consoleEvent{key: true, vk: 'Q', char: 'q'}
	q := consoleEvent{key: true, down: true, vk: 'Q', char: 'q'}
	enter := consoleEvent{key: true, down: true, vk: vkReturn, char: charEnter}

	tests := []struct {
		name      string
		events    []consoleEvent
		wantDrop  int
		wantEnter bool
	}{
		{"empty", nil, 0, false},
		{"only window events", []consoleEvent{focus, resize}, 2, false},
		{"key without enter", []consoleEvent{q}, 0, false},
		{"events before typed line", []consoleEvent{resize, keyUp, q, enter}, 2, true},
		{"enter after later resize", []consoleEvent{q, resize, enter}, 0, true},
		{"enter key up only", []consoleEvent{{key: true, vk: vkReturn, char: charEnter}}, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drop, enter := scanConsole(tt.events)
			assert.Equal(t, tt.wantDrop, drop)
			assert.Equal(t, tt.wantEnter, enter)
		})
	}
}
