// Package monitor runs the monitoring state: refresh the provider, derive
// throughput, draw the frame, then wait up to one interval for the user to
// cancel. Everything happens on the caller's goroutine.
package monitor

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/Dicklesworthstone/hostmon/internal/logger"
	"github.com/Dicklesworthstone/hostmon/internal/render"
	"github.com/Dicklesworthstone/hostmon/internal/sampler"
	"github.com/Dicklesworthstone/hostmon/internal/settings"
	"github.com/Dicklesworthstone/hostmon/internal/terminal"
)

// DefaultInterval is the tick length.
const DefaultInterval = time.Second

// Footer is printed after every frame.
const Footer = "Press 'q' and enter to return to the main menu."

// Loop wires the collaborators of one monitoring run.
type Loop struct {
	Provider sampler.Provider
	Renderer *render.Renderer
	Sink     *terminal.Sink
	Keys     terminal.Keys
	Interval time.Duration
	Logger   *slog.Logger
}

// Run monitors until the user enters a line starting with "q", input
// closes, or ctx is cancelled. Terminal write failures end the run with an
// error; metric refresh failures skip the tick.
func (l *Loop) Run(ctx context.Context, disp settings.Display) error {
	interval := l.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	log := l.Logger
	if log == nil {
		log = logger.Discard()
	}

	sess := NewSession(l.Provider, interval)
	if err := sess.Prime(ctx); err != nil {
		log.Warn("baseline sample failed", "err", err)
	}
	log.Info("monitoring started", "interval", interval, "mode", disp.ModeLabel())
	defer log.Info("monitoring stopped")

	for ticks := 0; ; ticks++ {
		if ctx.Err() != nil {
			return nil
		}

		frame, _, err := sess.Step(ctx)
		switch {
		case err != nil && ctx.Err() != nil:
			return nil
		case err != nil:
			log.Warn("metrics refresh failed, skipping tick", "tick", ticks, "err", err)
		default:
			lines := append(l.Renderer.Render(frame, disp), "", Footer)
			if err := l.Sink.Frame(lines); err != nil {
				return err
			}
		}

		line, ok, err := l.Keys.Poll(interval)
		if err != nil {
			if stderrors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if ok && isQuit(line) {
			return nil
		}
	}
}

func isQuit(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "q")
}
