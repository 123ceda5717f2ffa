package sampler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"

	"github.com/Dicklesworthstone/hostmon/internal/errors"
	"github.com/Dicklesworthstone/hostmon/internal/model"
)

// Provider is a refreshable source of host metrics. Accessors return the
// values captured by the most recent Refresh. Interfaces must enumerate in
// a stable order across refreshes of the same provider.
type Provider interface {
	Refresh(ctx context.Context) error
	CPUPercent() float64
	Memory() (used, total uint64)
	Disks() []model.DiskReading
	Interfaces() []model.NetCounter
}

// Take copies the provider's current state into a Snapshot.
func Take(p Provider, now time.Time) model.Snapshot {
	used, total := p.Memory()
	return model.Snapshot{
		Timestamp:   now,
		CPUPercent:  p.CPUPercent(),
		MemoryUsed:  used,
		MemoryTotal: total,
		Disks:       p.Disks(),
		Interfaces:  p.Interfaces(),
	}
}

// System reads metrics from the local host through gopsutil.
type System struct {
	// AllDisks includes virtual and pseudo filesystems.
	AllDisks bool

	cpuPct   float64
	memUsed  uint64
	memTotal uint64
	disks    []model.DiskReading
	ifaces   []model.NetCounter
}

func New(allDisks bool) *System {
	return &System{AllDisks: allDisks}
}

// Refresh re-reads every metric. CPU usage is measured against the previous
// call, so the first refresh reports usage since process start.
func (s *System) Refresh(ctx context.Context) error {
	pcts, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return metricsErr(err, "CPU usage")
	}
	if len(pcts) > 0 {
		s.cpuPct = pcts[0]
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return metricsErr(err, "memory usage")
	}
	s.memUsed, s.memTotal = vm.Used, vm.Total

	disks, err := s.readDisks(ctx)
	if err != nil {
		return metricsErr(err, "disk partitions")
	}
	s.disks = disks

	counters, err := net.IOCountersWithContext(ctx, true)
	if err != nil {
		return metricsErr(err, "network counters")
	}
	ifaces := make([]model.NetCounter, 0, len(counters))
	for _, c := range counters {
		ifaces = append(ifaces, model.NetCounter{Name: c.Name, BytesRecv: c.BytesRecv, BytesSent: c.BytesSent})
	}
	s.ifaces = ifaces
	return nil
}

func (s *System) readDisks(ctx context.Context) ([]model.DiskReading, error) {
	parts, err := disk.PartitionsWithContext(ctx, s.AllDisks)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(parts))
	var out []model.DiskReading
	for _, p := range parts {
		// Skip loop devices (snaps, images) and repeated mounts of one device.
		if strings.HasPrefix(p.Device, "/dev/loop") || (p.Device != "" && seen[p.Device]) {
			continue
		}
		usage, err := disk.UsageWithContext(ctx, p.Mountpoint)
		if err != nil || usage.Total == 0 {
			continue
		}
		seen[p.Device] = true
		out = append(out, model.DiskReading{
			Mountpoint:     p.Mountpoint,
			TotalBytes:     usage.Total,
			AvailableBytes: usage.Free,
		})
	}
	return out, nil
}

func (s *System) CPUPercent() float64            { return s.cpuPct }
func (s *System) Memory() (used, total uint64)   { return s.memUsed, s.memTotal }
func (s *System) Disks() []model.DiskReading     { return append([]model.DiskReading(nil), s.disks...) }
func (s *System) Interfaces() []model.NetCounter { return append([]model.NetCounter(nil), s.ifaces...) }

// Host describes the machine for one-shot exports.
type Host struct {
	Hostname string `json:"hostname" yaml:"hostname"`
	Platform string `json:"platform" yaml:"platform"`
	Arch     string `json:"arch" yaml:"arch"`
}

// HostInfo returns best-effort host identification.
func HostInfo(ctx context.Context) Host {
	info, err := host.InfoWithContext(ctx)
	if err != nil || info == nil {
		return Host{}
	}
	return Host{
		Hostname: info.Hostname,
		Platform: strings.TrimSpace(info.Platform + " " + info.PlatformVersion),
		Arch:     info.KernelArch,
	}
}

func metricsErr(err error, what string) error {
	return errors.WrapWithCode(err, errors.ErrMetrics,
		fmt.Sprintf("Failed to read %s", what),
		"The sample is skipped; check that /proc and /sys are readable")
}
