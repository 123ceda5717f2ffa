// Package debuglog writes a plain-text summary of the host's current
// resource usage for bug reports.
package debuglog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/Dicklesworthstone/hostmon/internal/errors"
	"github.com/Dicklesworthstone/hostmon/internal/logger"
	"github.com/Dicklesworthstone/hostmon/internal/model"
	"github.com/Dicklesworthstone/hostmon/internal/sampler"
	"github.com/Dicklesworthstone/hostmon/internal/settings"
)

// TimestampLayout is the format of the optional Timestamp line.
const TimestampLayout = "2006-01-02 15:04:05.000"

// Format renders the log body. The timestamp line is only included when
// debug information is enabled.
func Format(s model.Snapshot, disp settings.Display, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Average CPU Usage: %.2f%%\n", s.CPUPercent)
	fmt.Fprintf(&b, "Average RAM Usage: %.2f%%\n", s.MemoryPercent())
	fmt.Fprintf(&b, "Total Network Received: %.2f GB\n", model.BytesToGiB(s.TotalRecv()))
	fmt.Fprintf(&b, "Total Network Transmitted: %.2f GB\n", model.BytesToGiB(s.TotalSent()))
	for i, d := range s.Disks {
		fmt.Fprintf(&b, "Disk %d Usage: %.2f%%\n", i+1, d.UsedPercent())
	}
	if disp.DebugEnabled {
		fmt.Fprintf(&b, "Timestamp: %s\n", now.Format(TimestampLayout))
	}
	return b.String()
}

// Generator samples a provider and writes the log file.
type Generator struct {
	FS       afero.Fs
	Path     string
	Provider sampler.Provider
	Logger   *slog.Logger
	Now      func() time.Time
}

// Generate refreshes the provider, writes the log and returns its contents.
func (g *Generator) Generate(ctx context.Context, disp settings.Display) (string, error) {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	log := g.Logger
	if log == nil {
		log = logger.Discard()
	}

	if err := g.Provider.Refresh(ctx); err != nil {
		return "", err
	}
	ts := now()
	body := Format(sampler.Take(g.Provider, ts), disp, ts)

	if err := afero.WriteFile(g.FS, g.Path, []byte(body), 0o644); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrDebugLog,
			"Failed to write debug log "+g.Path,
			"Check that the directory is writable, or pass --debug-log")
	}
	log.Info("debug log written", "path", g.Path, "bytes", len(body))
	return body, nil
}
