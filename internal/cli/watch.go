package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/hostmon/internal/errors"
	"github.com/Dicklesworthstone/hostmon/internal/monitor"
	"github.com/Dicklesworthstone/hostmon/internal/palette"
	"github.com/Dicklesworthstone/hostmon/internal/ui"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Full-screen live dashboard",
		Long: `Open the dashboard in the terminal's alternate screen and redraw it every
interval until q, Esc or Ctrl+C is pressed. Uses the display settings saved
from the main menu.

Examples:
  hostmon watch
  hostmon watch --interval 500ms`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runWatch(cmd.Context())
		},
	}
}

func (a *app) runWatch(ctx context.Context) error {
	if !a.isTerminal(a.stdin) || !a.isTerminal(a.stdout) {
		return errors.New(errors.ErrTerminal,
			"watch needs an interactive terminal",
			"Run 'hostmon snapshot' for non-interactive output")
	}

	pal := palette.ForOutput(a.stdout, a.cfg.Color)
	m := ui.New(ui.Options{
		Session:  monitor.NewSession(a.newProvider(a.cfg.AllDisks), a.cfg.Interval),
		Palette:  pal,
		Display:  a.settingsStore().Load(),
		Hostname: a.hostInfo(ctx).Hostname,
		Logger:   a.log,
	})
	return ui.Run(ctx, m, a.stdin, a.stdout)
}
