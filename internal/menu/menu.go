// Package menu is the numbered text menu hostmon starts in. It reads one
// line per prompt and dispatches to monitoring, settings, credits and the
// debug log.
package menu

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/hostmon/internal/logger"
	"github.com/Dicklesworthstone/hostmon/internal/palette"
	"github.com/Dicklesworthstone/hostmon/internal/settings"
	"github.com/Dicklesworthstone/hostmon/internal/terminal"
)

// Monitor runs the monitoring state until the user leaves it.
type Monitor interface {
	Run(ctx context.Context, disp settings.Display) error
}

// DebugLogger writes the debug log and returns its contents.
type DebugLogger interface {
	Generate(ctx context.Context, disp settings.Display) (string, error)
}

// Credits shown by menu option 3.
var Credits = []string{
	"GitHub: https://github.com/ideikiPIX",
	"Author: ideikiPIX",
}

const pressEnter = "Press Enter to return to the main menu..."

// promptPoll bounds how long a prompt waits before rechecking ctx.
const promptPoll = 250 * time.Millisecond

// Menu is the interactive shell. Settings are loaded once per Run and saved
// after every change and on exit.
type Menu struct {
	Input    terminal.Keys
	Sink     *terminal.Sink
	Palette  palette.Palette
	Store    *settings.Store
	Monitor  Monitor
	DebugLog DebugLogger
	Logger   *slog.Logger
}

// Run shows the main menu until Exit is chosen, input ends or ctx is
// cancelled. Settings are saved before returning; a failed save is returned.
func (m *Menu) Run(ctx context.Context) error {
	if m.Logger == nil {
		m.Logger = logger.Discard()
	}
	if m.Palette == nil {
		m.Palette = palette.Plain()
	}
	disp := m.Store.Load()

	keepScreen := false
	for {
		if ctx.Err() != nil {
			return m.Store.Save(disp)
		}
		if !keepScreen {
			if err := m.Sink.Clear(); err != nil {
				return err
			}
		}
		keepScreen = false

		if err := m.Sink.Lines(
			"Main Menu:",
			"1. Start agent",
			"2. Settings",
			"3. Credits",
			"4. Debug Log",
			"5. Exit",
			"",
			"Enter your choice:",
		); err != nil {
			return err
		}

		choice, err := m.readLine(ctx)
		if stderrors.Is(err, io.EOF) {
			choice = "5"
		} else if err != nil {
			return m.interrupted(ctx, disp, err)
		}

		switch strings.TrimSpace(choice) {
		case "1":
			if err := m.Sink.Lines("Starting agent..."); err != nil {
				return err
			}
			if err := m.Monitor.Run(ctx, disp); err != nil {
				return m.interrupted(ctx, disp, err)
			}
		case "2":
			next, err := m.settingsMenu(ctx, disp)
			disp = next
			if err != nil {
				return m.interrupted(ctx, disp, err)
			}
			if err := m.Store.Save(disp); err != nil {
				return err
			}
		case "3":
			if err := m.credits(ctx); err != nil {
				return m.interrupted(ctx, disp, err)
			}
		case "4":
			if err := m.debugLog(ctx, disp); err != nil {
				return m.interrupted(ctx, disp, err)
			}
		case "5":
			if err := m.Sink.Lines("Exiting..."); err != nil {
				return err
			}
			return m.Store.Save(disp)
		default:
			if err := m.Sink.Lines("Invalid choice. Please enter a number from 1 to 5."); err != nil {
				return err
			}
			keepScreen = true
		}
	}
}

func (m *Menu) settingsMenu(ctx context.Context, disp settings.Display) (settings.Display, error) {
	keepScreen := false
	for {
		if !keepScreen {
			if err := m.Sink.Clear(); err != nil {
				return disp, err
			}
		}
		keepScreen = false

		debugTone := palette.Red
		if disp.DebugEnabled {
			debugTone = palette.Green
		}
		if err := m.Sink.Lines(
			"Settings:",
			"1. Change the load display type (Currently: "+m.Palette.Paint(palette.Green, disp.ModeLabel())+")",
			"2. Debug information toggled (Currently: "+m.Palette.Paint(debugTone, disp.DebugLabel())+")",
			"3. Back to Main Menu",
			"",
			"Enter your choice:",
		); err != nil {
			return disp, err
		}

		choice, err := m.readLine(ctx)
		if stderrors.Is(err, io.EOF) {
			return disp, nil
		} else if err != nil {
			return disp, err
		}

		var msg string
		switch strings.TrimSpace(choice) {
		case "1":
			disp.BarsMode = !disp.BarsMode
			msg = "Load display type now: " + disp.ModeLabel()
		case "2":
			disp.DebugEnabled = !disp.DebugEnabled
			msg = "Debug information toggled: Disabled"
			if disp.DebugEnabled {
				msg = "Debug information toggled: Enabled"
			}
		case "3":
			return disp, nil
		default:
			msg = "Invalid choice. Please enter a number from 1 to 3."
			keepScreen = true
		}
		if err := m.Sink.Lines(msg); err != nil {
			return disp, err
		}
	}
}

func (m *Menu) credits(ctx context.Context) error {
	r := lipgloss.NewRenderer(m.Sink.Writer())
	r.SetColorProfile(palette.Profile(m.Palette))
	card := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Render(strings.Join(Credits, "\n"))

	if err := m.Sink.Lines("Credits:", card, "", pressEnter); err != nil {
		return err
	}
	return m.waitEnter(ctx)
}

func (m *Menu) debugLog(ctx context.Context, disp settings.Display) error {
	if err := m.Sink.Lines("Generating debug log..."); err != nil {
		return err
	}
	body, err := m.DebugLog.Generate(ctx, disp)
	if err != nil {
		m.Logger.Warn("debug log failed", "err", err)
		if err := m.Sink.Lines(strings.TrimRight(err.Error(), "\n"), "", pressEnter); err != nil {
			return err
		}
		return m.waitEnter(ctx)
	}
	if err := m.Sink.Lines("Debug Log:", strings.TrimRight(body, "\n"), pressEnter); err != nil {
		return err
	}
	if err := m.waitEnter(ctx); err != nil {
		return err
	}
	return m.Sink.Lines("Debug log generated successfully.")
}

func (m *Menu) waitEnter(ctx context.Context) error {
	_, err := m.readLine(ctx)
	if err != nil && !stderrors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// readLine waits for a line, giving up when ctx is cancelled.
func (m *Menu) readLine(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		line, ok, err := m.Input.Poll(promptPoll)
		if err != nil || ok {
			return line, err
		}
	}
}

// interrupted saves and returns nil when err is the result of ctx being
// cancelled; any other error is returned as is.
func (m *Menu) interrupted(ctx context.Context, disp settings.Display, err error) error {
	if ctx.Err() != nil {
		return m.Store.Save(disp)
	}
	return err
}
