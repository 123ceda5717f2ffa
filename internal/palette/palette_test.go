package palette

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestANSI256Paint(t *testing.T) {
	p := ANSI256()

	tests := []struct {
		name string
		tone Tone
		want string
	}{
		{"green", Green, "\x1b[32m#\x1b[0m"},
		{"yellow", Yellow, "\x1b[33m#\x1b[0m"},
		{"orange", Orange, "\x1b[38;5;208m#\x1b[0m"},
		{"red", Red, "\x1b[31m#\x1b[0m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Paint(tt.tone, "#"))
		})
	}
}

func TestPaintEmptyAndUnknown(t *testing.T) {
	p := ANSI256()

	assert.Equal(t, "", p.Paint(Green, ""))
	assert.Equal(t, "x", p.Paint(Tone(99), "x"))
}

func TestAlert(t *testing.T) {
	assert.Equal(t, "\x1b[48;5;208m hot \x1b[0m", ANSI256().Alert(" hot "))
	assert.Equal(t, " hot ", Plain().Alert(" hot "))
}

func TestPlain(t *testing.T) {
	p := Plain()

	assert.False(t, p.SupportsColor())
	assert.Equal(t, "50%", p.Paint(Orange, "50%"))
}

func TestNewProfiles(t *testing.T) {
	assert.False(t, New(termenv.Ascii).SupportsColor())
	assert.True(t, New(termenv.ANSI).SupportsColor())
	assert.Equal(t, termenv.ANSI256, Profile(New(termenv.TrueColor)))
	assert.Equal(t, termenv.Ascii, Profile(Plain()))
}

func TestForOutputModes(t *testing.T) {
	var buf bytes.Buffer

	assert.False(t, ForOutput(&buf, ModeNever).SupportsColor())
	assert.True(t, ForOutput(&buf, ModeAlways).SupportsColor())
	// A bytes.Buffer is not a terminal, so auto detection yields no color.
	t.Setenv("CLICOLOR_FORCE", "")
	assert.False(t, ForOutput(&buf, ModeAuto).SupportsColor())
}
