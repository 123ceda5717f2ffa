// Package ui is the full-screen watch view: the same dashboard lines as the
// menu's monitoring state, redrawn by Bubble Tea in the alternate screen.
package ui

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/hostmon/internal/errors"
	"github.com/Dicklesworthstone/hostmon/internal/logger"
	"github.com/Dicklesworthstone/hostmon/internal/monitor"
	"github.com/Dicklesworthstone/hostmon/internal/palette"
	"github.com/Dicklesworthstone/hostmon/internal/render"
	"github.com/Dicklesworthstone/hostmon/internal/settings"
)

// Footer is shown under the dashboard.
const Footer = "Press q to quit."

// Options configures a watch Model.
type Options struct {
	Session  *monitor.Session
	Palette  palette.Palette
	Display  settings.Display
	Hostname string
	Logger   *slog.Logger
}

// Model renders live frames from a monitor session.
type Model struct {
	session  *monitor.Session
	renderer *render.Renderer
	disp     settings.Display
	hostname string
	log      *slog.Logger

	ctx       context.Context
	ctxCancel context.CancelFunc

	lines   []string
	taken   time.Time
	lastErr error
	width   int

	bodyStyle   lipgloss.Style
	titleStyle  lipgloss.Style
	subtleStyle lipgloss.Style
	warnStyle   lipgloss.Style
}

func New(opts Options) *Model {
	pal := opts.Palette
	if pal == nil {
		pal = palette.Plain()
	}
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	lr := lipgloss.NewRenderer(io.Discard)
	lr.SetColorProfile(palette.Profile(pal))

	ctx, cancel := context.WithCancel(context.Background())
	return &Model{
		session:     opts.Session,
		renderer:    render.New(pal),
		disp:        opts.Display,
		hostname:    opts.Hostname,
		log:         log,
		ctx:         ctx,
		ctxCancel:   cancel,
		bodyStyle:   lr.NewStyle(),
		titleStyle:  lr.NewStyle().Bold(true).Foreground(lipgloss.Color("45")),
		subtleStyle: lr.NewStyle().Foreground(lipgloss.Color("244")),
		warnStyle:   lr.NewStyle().Foreground(lipgloss.Color("208")),
	}
}

// Messages
type (
	tickMsg   struct{}
	primedMsg struct{ err error }
	frameMsg  struct {
		lines []string
		taken time.Time
		err   error
	}
)

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(m.session.Interval(), func(time.Time) tea.Msg { return tickMsg{} })
}

func (m *Model) primeCmd() tea.Cmd {
	return func() tea.Msg {
		return primedMsg{err: m.session.Prime(m.ctx)}
	}
}

// sampleCmd runs one session step. Only one is in flight at a time: the
// next tick is scheduled when its frameMsg arrives.
func (m *Model) sampleCmd() tea.Cmd {
	return func() tea.Msg {
		frame, snap, err := m.session.Step(m.ctx)
		if err != nil {
			return frameMsg{err: err}
		}
		return frameMsg{lines: m.renderer.Render(frame, m.disp), taken: snap.Timestamp}
	}
}

func (m *Model) Init() tea.Cmd { return m.primeCmd() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.ctxCancel()
			return m, tea.Quit
		}
	case primedMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			m.log.Warn("initial sample failed", "err", msg.err)
		}
		return m, m.tickCmd()
	case tickMsg:
		return m, m.sampleCmd()
	case frameMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			m.log.Warn("sample failed, skipping frame", "err", msg.err)
		} else {
			m.lines, m.taken, m.lastErr = msg.lines, msg.taken, nil
		}
		return m, m.tickCmd()
	}
	return m, nil
}

func (m *Model) View() string {
	header := m.titleStyle.Render("hostmon")
	if m.hostname != "" {
		header += "  " + m.subtleStyle.Render(m.hostname)
	}
	if !m.taken.IsZero() {
		header += "  " + m.subtleStyle.Render(m.taken.Format("Mon Jan 2 15:04:05 MST 2006"))
	}

	body := "Sampling..."
	if len(m.lines) > 0 {
		body = strings.Join(m.lines, "\n")
	}
	if m.width > 0 {
		body = m.bodyStyle.MaxWidth(m.width).Render(body)
	}

	parts := []string{header, "", body}
	if m.lastErr != nil {
		parts = append(parts, "", m.warnStyle.Render("last sample failed: "+firstLine(m.lastErr.Error())))
	}
	parts = append(parts, "", m.subtleStyle.Render(Footer))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// firstLine keeps structured errors on one row.
func firstLine(s string) string {
	s = strings.TrimPrefix(s, "✗ ")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, m *Model, in io.Reader, out io.Writer) error {
	defer m.ctxCancel()
	prog := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	if _, err := prog.Run(); err != nil {
		if stderrors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return errors.WrapWithCode(err, errors.ErrTerminal,
			"Watch view failed",
			"Run 'hostmon' without a subcommand for the line-based dashboard")
	}
	return nil
}
