//go:build !windows

package palette

import "io"

func enableColor(io.Writer) bool { return true }
