// Package palette is the color capability set used by the renderer. A
// Palette either emits ANSI escapes or passes text through unchanged, so the
// rendering code is identical on every platform.
package palette

import (
	"io"

	"github.com/muesli/termenv"
)

// Tone is a named foreground color.
type Tone int

const (
	Green Tone = iota
	Yellow
	Orange
	Red
)

// Color modes accepted by ForOutput.
const (
	ModeAuto   = "auto"
	ModeAlways = "always"
	ModeNever  = "never"
)

// Terminal color codes: 16-color for green, yellow and red, 256-color for
// orange and the alert background.
var toneCodes = map[Tone]string{
	Green:  "2",
	Yellow: "3",
	Orange: "208",
	Red:    "1",
}

const alertBackground = "208"

// Palette wraps text in color sequences.
type Palette interface {
	// SupportsColor reports whether Paint and Alert emit escape sequences.
	SupportsColor() bool
	// Paint sets the tone's foreground color around s and resets afterwards.
	Paint(t Tone, s string) string
	// Alert highlights s with a background color.
	Alert(s string) string
}

type ansiPalette struct {
	profile termenv.Profile
}

// New returns a palette for the given termenv profile. TrueColor is capped
// at ANSI256 so the emitted codes stay the fixed 16/256-color ones.
func New(p termenv.Profile) Palette {
	if p == termenv.Ascii {
		return Plain()
	}
	if p < termenv.ANSI256 {
		p = termenv.ANSI256
	}
	return ansiPalette{profile: p}
}

// ANSI256 returns a palette that always emits 256-color sequences.
func ANSI256() Palette { return New(termenv.ANSI256) }

func (a ansiPalette) SupportsColor() bool { return true }

func (a ansiPalette) Paint(t Tone, s string) string {
	if s == "" {
		return s
	}
	code, ok := toneCodes[t]
	if !ok {
		return s
	}
	return a.profile.String(s).Foreground(a.profile.Color(code)).String()
}

func (a ansiPalette) Alert(s string) string {
	return a.profile.String(s).Background(a.profile.Color(alertBackground)).String()
}

type plainPalette struct{}

// Plain returns a palette that never colors.
func Plain() Palette { return plainPalette{} }

func (plainPalette) SupportsColor() bool          { return false }
func (plainPalette) Paint(_ Tone, s string) string { return s }
func (plainPalette) Alert(s string) string         { return s }

// ForOutput picks a palette for w according to mode. In auto mode the
// profile is detected from the environment and whether w is a terminal.
func ForOutput(w io.Writer, mode string) Palette {
	switch mode {
	case ModeNever:
		return Plain()
	case ModeAlways:
		enableColor(w)
		return ANSI256()
	}
	out := termenv.NewOutput(w)
	p := out.EnvColorProfile()
	if p == termenv.Ascii || !enableColor(w) {
		return Plain()
	}
	return New(p)
}

// Profile reports the termenv profile matching a palette, for libraries
// that need one (lipgloss renderers).
func Profile(p Palette) termenv.Profile {
	if a, ok := p.(ansiPalette); ok {
		return a.profile
	}
	return termenv.Ascii
}
