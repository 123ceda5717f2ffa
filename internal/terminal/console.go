package terminal

// Virtual-key code and character the console reports for Enter.
const (
	vkReturn  = 0x0D
	charEnter = '\r'
)

// consoleEvent is the part of a console input record the poll inspects.
type consoleEvent struct {
	key  bool // KEY_EVENT record
	down bool
	vk   uint16
	char uint16
}

// scanConsole looks at the queued console input. drop counts the leading
// records a line read would never consume (focus, resize, mouse, menu and
// key-up records). enter reports whether a key-down Enter is queued, which is
// the point at which a cooked-mode line read returns without blocking.
func scanConsole(events []consoleEvent) (drop int, enter bool) {
	for drop < len(events) && !(events[drop].key && events[drop].down) {
		drop++
	}
	for _, ev := range events[drop:] {
		if ev.key && ev.down && (ev.vk == vkReturn || ev.char == charEnter) {
			return drop, true
		}
	}
	return drop, false
}
