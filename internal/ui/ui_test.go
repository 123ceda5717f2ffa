package ui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dicklesworthstone/hostmon/internal/model"
	"github.com/Dicklesworthstone/hostmon/internal/monitor"
	"github.com/Dicklesworthstone/hostmon/internal/sampler/samplertest"
	"github.com/Dicklesworthstone/hostmon/internal/settings"
)

func snap(rx uint64) model.Snapshot {
	return model.Snapshot{
		CPUPercent:  40,
		MemoryUsed:  1,
		MemoryTotal: 2,
		Disks:       []model.DiskReading{{Mountpoint: "/", TotalBytes: 100 << 30, AvailableBytes: 10 << 30}},
		Interfaces:  []model.NetCounter{{Name: "eth0", BytesRecv: rx}},
	}
}

func newModel(p *samplertest.Provider) *Model {
	return New(Options{
		Session:  monitor.NewSession(p, time.Second),
		Display:  settings.Display{BarsMode: false},
		Hostname: "box",
	})
}

func step(t *testing.T, m *Model, msg tea.Msg) tea.Cmd {
	t.Helper()
	_, cmd := m.Update(msg)
	return cmd
}

func TestWatchShowsFrames(t *testing.T) {
	p := samplertest.NewProvider(snap(1000), snap(3048))
	m := newModel(p)

	assert.Contains(t, m.View(), "Sampling...")

	primed := m.Init()()
	require.IsType(t, primedMsg{}, primed)
	require.NotNil(t, step(t, m, primed))

	sample := step(t, m, tickMsg{})
	require.NotNil(t, sample)
	frame := sample()
	require.IsType(t, frameMsg{}, frame)
	require.NotNil(t, step(t, m, frame))

	view := m.View()
	assert.Contains(t, view, "hostmon")
	assert.Contains(t, view, "box")
	assert.Contains(t, view, "CPU 40%")
	assert.Contains(t, view, "RAM 50%")
	assert.Contains(t, view, "Network Received: 2.00 KB/s")
	assert.Contains(t, view, "ROM 90% (Disk 1: 90.00 GB / 100.00 GB)")
	assert.Contains(t, view, "!!! overloaded")
	assert.Contains(t, view, Footer)
	assert.NotContains(t, view, "Sampling...")
	assert.Equal(t, 2, p.Refreshes)
}

func TestWatchKeepsLastFrameOnFailure(t *testing.T) {
	p := samplertest.NewProvider(snap(0), snap(0))
	p.Errs = []error{nil, nil, errors.New("sensor gone")}
	m := newModel(p)

	step(t, m, m.Init()())
	step(t, m, step(t, m, tickMsg{})())
	require.Contains(t, m.View(), "CPU 40%")

	next := step(t, m, step(t, m, tickMsg{})())
	assert.NotNil(t, next, "a failed sample still schedules the next tick")

	view := m.View()
	assert.Contains(t, view, "CPU 40%")
	assert.Contains(t, view, "last sample failed: sensor gone")
}

func TestWatchQuitKeys(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyEsc},
	} {
		t.Run(key.String(), func(t *testing.T) {
			m := newModel(samplertest.NewProvider(snap(0)))
			cmd := step(t, m, key)
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
			assert.Error(t, m.ctx.Err())
		})
	}
}

func TestWatchIgnoresOtherKeys(t *testing.T) {
	m := newModel(samplertest.NewProvider(snap(0)))
	assert.Nil(t, step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}))
}

func TestWatchWindowWidth(t *testing.T) {
	p := samplertest.NewProvider(snap(0))
	m := newModel(p)
	step(t, m, m.Init()())
	step(t, m, step(t, m, tickMsg{})())
	step(t, m, tea.WindowSizeMsg{Width: 20, Height: 10})

	assert.NotContains(t, m.View(), "!!! overloaded")
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "Failed", firstLine("✗ Failed\n\n  cause\n"))
	assert.Equal(t, "plain", firstLine("plain"))
}
