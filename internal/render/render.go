// Package render turns a sampled frame into the dashboard's text lines.
//
// Rendering is a pure function of the frame, the display settings and the
// palette: identical inputs produce byte-identical lines.
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/hostmon/internal/model"
	"github.com/Dicklesworthstone/hostmon/internal/palette"
	"github.com/Dicklesworthstone/hostmon/internal/settings"
	"github.com/Dicklesworthstone/hostmon/internal/severity"
)

// Layout constants.
const (
	BarCells       = 10
	DiskFieldWidth = 80
	SeparatorWidth = 50

	// OverloadPercent flags a disk. It is deliberately lower than the
	// critical severity boundary.
	OverloadPercent = 70.0

	barFill        = "#"
	overloadMarker = " !!! overloaded "
)

// Renderer formats frames using a palette.
type Renderer struct {
	pal palette.Palette
}

// New returns a renderer drawing colors through p.
func New(p palette.Palette) *Renderer {
	if p == nil {
		p = palette.Plain()
	}
	return &Renderer{pal: p}
}

// Render returns the dashboard lines for one frame.
func (r *Renderer) Render(f model.Frame, s settings.Display) []string {
	lines := make([]string, 0, 5+len(f.Disks))
	lines = append(lines,
		"CPU "+r.load(f.CPUPercent, s),
		"RAM "+r.load(f.RAMPercent, s),
		fmt.Sprintf("Network Received: %.2f KB/s", f.Net.RecvKBps(f.Interval)),
		fmt.Sprintf("Network Transmitted: %.2f KB/s", f.Net.SentKBps(f.Interval)),
		strings.Repeat("-", SeparatorWidth),
	)
	for i, d := range f.Disks {
		lines = append(lines, r.DiskLine(i+1, d, s))
	}
	return lines
}

// DiskLine formats one disk row. The usage and capacity text fills a fixed
// visible width so the overload marker lines up across rows.
func (r *Renderer) DiskLine(index int, d model.DiskReading, s settings.Display) string {
	usage := d.UsedPercent()
	var load string
	if s.BarsMode {
		load = r.Bar(usage)
	} else {
		load = r.pal.Paint(diskTone(severity.Classify(usage)), percentText(usage))
	}
	info := fmt.Sprintf("ROM %s (Disk %d: %.2f GB / %.2f GB)", load, index, d.UsedGiB(), d.TotalGiB())
	line := padRight(info, DiskFieldWidth)
	if usage > OverloadPercent {
		line += r.pal.Alert(overloadMarker)
	}
	return line
}

// Bar draws a bracketed 10-cell bar. Cell color follows the cell's
// position (1-5 normal, 6-7 warning, 8-10 critical) rather than the overall
// percentage.
func (r *Renderer) Bar(percent float64) string {
	filled := FilledCells(percent)

	var b strings.Builder
	b.WriteString("[")
	for start := 1; start <= filled; {
		band := CellBand(start)
		end := start
		for end < filled && CellBand(end+1) == band {
			end++
		}
		b.WriteString(r.pal.Paint(loadTone(band), strings.Repeat(barFill, end-start+1)))
		start = end + 1
	}
	b.WriteString(strings.Repeat(" ", BarCells-filled))
	b.WriteString("]")
	return b.String()
}

// Percent renders the rounded percentage colored by its own band.
func (r *Renderer) Percent(percent float64) string {
	return r.pal.Paint(loadTone(severity.Classify(percent)), percentText(percent))
}

func (r *Renderer) load(percent float64, s settings.Display) string {
	if s.BarsMode {
		return r.Bar(percent)
	}
	return r.Percent(percent)
}

// FilledCells is round(percent/10) clamped to the bar width.
func FilledCells(percent float64) int {
	if math.IsNaN(percent) {
		return 0
	}
	n := int(math.Round(percent / 10))
	if n < 0 {
		return 0
	}
	if n > BarCells {
		return BarCells
	}
	return n
}

// CellBand is the band of the cumulative percentage a 1-based cell reaches.
func CellBand(cell int) severity.Band {
	return severity.Classify(float64(cell * 100 / BarCells))
}

// CPU and RAM use orange for critical.
func loadTone(b severity.Band) palette.Tone {
	switch b {
	case severity.Warning:
		return palette.Yellow
	case severity.Critical:
		return palette.Orange
	default:
		return palette.Green
	}
}

// Disk percentages use red for critical.
func diskTone(b severity.Band) palette.Tone {
	if b == severity.Critical {
		return palette.Red
	}
	return loadTone(b)
}

func percentText(percent float64) string {
	if math.IsNaN(percent) {
		percent = 0
	}
	return fmt.Sprintf("%d%%", int(math.Round(percent)))
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
