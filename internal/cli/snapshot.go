package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Dicklesworthstone/hostmon/internal/errors"
	"github.com/Dicklesworthstone/hostmon/internal/model"
	"github.com/Dicklesworthstone/hostmon/internal/monitor"
	"github.com/Dicklesworthstone/hostmon/internal/render"
	"github.com/Dicklesworthstone/hostmon/internal/sampler"
	"github.com/Dicklesworthstone/hostmon/internal/severity"
)

var snapshotFormat string

func newSnapshotCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Print one sample as JSON or YAML",
		Long: `Sample twice, one interval apart, and print the result. Network throughput
is the counter delta between the two samples.

Examples:
  hostmon snapshot
  hostmon snapshot --format yaml --interval 2s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runSnapshot(cmd.Context(), snapshotFormat)
		},
	}
	cmd.Flags().StringVarP(&snapshotFormat, "format", "f", "json", "output format: json|yaml")
	return cmd
}

// snapshotReport is the exported shape of one frame.
type snapshotReport struct {
	Host            sampler.Host  `json:"host" yaml:"host"`
	Timestamp       time.Time     `json:"timestamp" yaml:"timestamp"`
	IntervalSeconds float64       `json:"interval_seconds" yaml:"interval_seconds"`
	CPU             loadReport    `json:"cpu" yaml:"cpu"`
	RAM             memoryReport  `json:"ram" yaml:"ram"`
	Network         networkReport `json:"network" yaml:"network"`
	Disks           []diskReport  `json:"disks" yaml:"disks"`
}

type loadReport struct {
	Percent  float64 `json:"percent" yaml:"percent"`
	Severity string  `json:"severity" yaml:"severity"`
}

type memoryReport struct {
	loadReport `yaml:",inline"`
	UsedBytes  uint64 `json:"used_bytes" yaml:"used_bytes"`
	TotalBytes uint64 `json:"total_bytes" yaml:"total_bytes"`
}

type networkReport struct {
	ReceivedKBps    float64 `json:"received_kbps" yaml:"received_kbps"`
	TransmittedKBps float64 `json:"transmitted_kbps" yaml:"transmitted_kbps"`
}

type diskReport struct {
	Mountpoint     string  `json:"mountpoint" yaml:"mountpoint"`
	TotalBytes     uint64  `json:"total_bytes" yaml:"total_bytes"`
	AvailableBytes uint64  `json:"available_bytes" yaml:"available_bytes"`
	UsedPercent    float64 `json:"used_percent" yaml:"used_percent"`
	Severity       string  `json:"severity" yaml:"severity"`
	Overloaded     bool    `json:"overloaded" yaml:"overloaded"`
}

func (a *app) runSnapshot(ctx context.Context, format string) error {
	if format != "json" && format != "yaml" {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown snapshot format %q", format),
			"Use --format json or --format yaml")
	}

	sess := monitor.NewSession(a.newProvider(a.cfg.AllDisks), a.cfg.Interval)
	if err := sess.Prime(ctx); err != nil {
		return err
	}
	timer := time.NewTimer(sess.Interval())
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}
	frame, snap, err := sess.Step(ctx)
	if err != nil {
		return err
	}

	report := buildReport(a.hostInfo(ctx), frame, snap)
	a.log.Debug("snapshot taken", "disks", len(report.Disks), "format", format)
	return writeReport(a.stdout, format, report)
}

func buildReport(host sampler.Host, f model.Frame, s model.Snapshot) snapshotReport {
	r := snapshotReport{
		Host:            host,
		Timestamp:       s.Timestamp,
		IntervalSeconds: f.Interval.Seconds(),
		CPU:             loadReport{Percent: f.CPUPercent, Severity: severity.Classify(f.CPUPercent).String()},
		RAM: memoryReport{
			loadReport: loadReport{Percent: f.RAMPercent, Severity: severity.Classify(f.RAMPercent).String()},
			UsedBytes:  s.MemoryUsed,
			TotalBytes: s.MemoryTotal,
		},
		Network: networkReport{
			ReceivedKBps:    f.Net.RecvKBps(f.Interval),
			TransmittedKBps: f.Net.SentKBps(f.Interval),
		},
		Disks: make([]diskReport, 0, len(f.Disks)),
	}
	for _, d := range f.Disks {
		used := d.UsedPercent()
		r.Disks = append(r.Disks, diskReport{
			Mountpoint:     d.Mountpoint,
			TotalBytes:     d.TotalBytes,
			AvailableBytes: d.AvailableBytes,
			UsedPercent:    used,
			Severity:       severity.Classify(used).String(),
			Overloaded:     used > render.OverloadPercent,
		})
	}
	return r
}

func writeReport(w io.Writer, format string, r snapshotReport) error {
	var err error
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(r); err == nil {
			err = enc.Close()
		}
	} else {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(r)
	}
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrTerminal,
			"Failed to write snapshot", "")
	}
	return nil
}
