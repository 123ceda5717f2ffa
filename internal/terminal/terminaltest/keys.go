// Package terminaltest provides test doubles for the terminal package.
package terminaltest

import (
	"time"
)

// Press is one scripted Poll result.
type Press struct {
	Line string
	OK   bool
	Err  error
}

// Keys replays scripted poll results. When the script is exhausted every
// Poll returns "q" so loops under test terminate.
type Keys struct {
	Script []Press

	Timeouts []time.Duration
}

// Timeout is a poll that saw no input.
func Timeout() Press { return Press{} }

// Line is a poll that received a line.
func Line(s string) Press { return Press{Line: s, OK: true} }

func (k *Keys) Poll(timeout time.Duration) (string, bool, error) {
	k.Timeouts = append(k.Timeouts, timeout)
	if len(k.Script) == 0 {
		return "q", true, nil
	}
	p := k.Script[0]
	k.Script = k.Script[1:]
	return p.Line, p.OK, p.Err
}
