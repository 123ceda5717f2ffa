//go:build windows

package terminal

import (
	"encoding/binary"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	kernel32              = windows.NewLazySystemDLL("kernel32.dll")
	procPeekConsoleInputW = kernel32.NewProc("PeekConsoleInputW")
	procReadConsoleInputW = kernel32.NewProc("ReadConsoleInputW")
)

// pendingBackoff paces the poll while records without an Enter sit in the
// queue, since the handle stays signalled until they are read.
const pendingBackoff = 50 * time.Millisecond

// inputRecord mirrors INPUT_RECORD: a 2-byte event type, padding, and a
// 16-byte event union.
type inputRecord struct {
	eventType uint16
	_         uint16
	event     [16]byte
}

// waitReadable reports ready only once a complete line can be read, so the
// read that follows never blocks on a half-typed line or on console events
// that carry no input. Non-console handles (pipes, files) are reported ready.
func waitReadable(fd uintptr, timeout time.Duration) (bool, error) {
	h := windows.Handle(fd)
	var mode uint32
	if windows.GetConsoleMode(h, &mode) != nil {
		return true, nil
	}

	deadline := time.Now().Add(timeout)
	for {
		enter, pending, err := scanConsoleInput(h)
		if err != nil {
			return false, err
		}
		if enter {
			return true, nil
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return false, nil
		}
		if pending {
			time.Sleep(min(remaining, pendingBackoff))
			continue
		}
		ev, err := windows.WaitForSingleObject(h, uint32(remaining/time.Millisecond))
		if err != nil {
			return false, err
		}
		if ev != windows.WAIT_OBJECT_0 {
			return false, nil
		}
	}
}

// scanConsoleInput discards leading records a line read ignores and reports
// whether an Enter key press is queued and whether any records remain.
func scanConsoleInput(h windows.Handle) (enter, pending bool, err error) {
	var n uint32
	if err := windows.GetNumberOfConsoleInputEvents(h, &n); err != nil {
		return false, false, err
	}
	if n == 0 {
		return false, false, nil
	}

	recs := make([]inputRecord, n)
	var got uint32
	r, _, callErr := procPeekConsoleInputW.Call(uintptr(h),
		uintptr(unsafe.Pointer(&recs[0])), uintptr(n), uintptr(unsafe.Pointer(&got)))
	if r == 0 {
		return false, false, callErr
	}
	recs = recs[:got]

	events := make([]consoleEvent, len(recs))
	for i, rec := range recs {
		events[i] = toConsoleEvent(rec)
	}
	drop, enter := scanConsole(events)
	if drop > 0 {
		discard := make([]inputRecord, drop)
		var read uint32
		r, _, callErr := procReadConsoleInputW.Call(uintptr(h),
			uintptr(unsafe.Pointer(&discard[0])), uintptr(drop), uintptr(unsafe.Pointer(&read)))
		if r == 0 {
			return false, false, callErr
		}
	}
	return enter, len(events) > drop, nil
}

// toConsoleEvent decodes KEY_EVENT_RECORD: bKeyDown (4 bytes),
// wRepeatCount, wVirtualKeyCode, wVirtualScanCode, UnicodeChar.
func toConsoleEvent(rec inputRecord) consoleEvent {
	if rec.eventType != windows.KEY_EVENT {
		return consoleEvent{}
	}
	return consoleEvent{
		key:  true,
		down: binary.LittleEndian.Uint32(rec.event[0:4]) != 0,
		vk:   binary.LittleEndian.Uint16(rec.event[6:8]),
		char: binary.LittleEndian.Uint16(rec.event[10:12]),
	}
}
