package cli

import (
	"context"

	"github.com/Dicklesworthstone/hostmon/internal/debuglog"
	"github.com/Dicklesworthstone/hostmon/internal/menu"
	"github.com/Dicklesworthstone/hostmon/internal/monitor"
	"github.com/Dicklesworthstone/hostmon/internal/palette"
	"github.com/Dicklesworthstone/hostmon/internal/render"
	"github.com/Dicklesworthstone/hostmon/internal/terminal"
)

// runMenu wires the interactive menu. The monitoring loop and the menu share
// one input reader and one output sink.
func (a *app) runMenu(ctx context.Context) error {
	sink := terminal.NewSink(a.stdout)
	input := a.input()
	pal := palette.ForOutput(a.stdout, a.cfg.Color)
	provider := a.newProvider(a.cfg.AllDisks)

	m := &menu.Menu{
		Input:   input,
		Sink:    sink,
		Palette: pal,
		Store:   a.settingsStore(),
		Monitor: &monitor.Loop{
			Provider: provider,
			Renderer: render.New(pal),
			Sink:     sink,
			Keys:     input,
			Interval: a.cfg.Interval,
			Logger:   a.log,
		},
		DebugLog: &debuglog.Generator{
			FS:       a.fs,
			Path:     a.cfg.DebugLogFile,
			Provider: provider,
			Logger:   a.log,
		},
		Logger: a.log,
	}
	return m.Run(ctx)
}
